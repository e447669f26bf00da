package model

import (
	"github.com/oneconcern/gpmodel/pkg/revision"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

// Kinds of records
const (
	KindFeatureStore      revision.Kind = "gpml:FeatureStore"
	KindFeatureCollection revision.Kind = "gpml:FeatureCollection"
	KindFeature           revision.Kind = "gpml:Feature"
	KindTopLevelProperty  revision.Kind = "gpml:TopLevelProperty"
)

// Record is a revisioned node of the feature hierarchy
type Record interface {
	revision.Revisionable

	recordLayer()
}

type recordOwner struct {
	revision.Owner
}

func (recordOwner) recordLayer() {}

type recordBase struct {
	revision.Base
}

func (recordBase) recordLayer() {}

func newBase(ctx revision.Context) recordBase {
	return recordBase{Base: revision.NewBase(ctx)}
}

// recordRevision restricts mutation scopes of this package to record revisions
type recordRevision interface {
	revision.Revision
	recordLayer()
}

// edit opens a mutation scope on a record
func edit[R recordRevision](r Record) (*revision.Handler[R], error) {
	return revision.NewHandler[R](r)
}

// update edits a record in one go
func update[R recordRevision](r Record, change func(*revision.Transaction, R) error) error {
	h, err := edit[R](r)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := change(h.Transaction(), h.Revision()); err != nil {
		h.Discard()
		return err
	}

	return h.Commit()
}

func current[R recordRevision](r Record) R {
	return revision.Current[R](r)
}

type container interface {
	Record
	CreateBubbleUpRevision(tx *revision.Transaction) (revision.Revision, error)
}

func bubbleUp[R recordRevision](r container, tx *revision.Transaction) (R, error) {
	var zero R
	rev, err := r.CreateBubbleUpRevision(tx)
	if err != nil {
		return zero, err
	}
	typed, ok := rev.(R)
	if !ok {
		panic(revision.Invariant(revstatus.ErrRevisionType, zap.Stringer("kind", rev.Kind())))
	}
	return typed, nil
}
