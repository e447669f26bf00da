package property

import (
	"fmt"

	"github.com/oneconcern/gpmodel/pkg/revision"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

// Kinds of property values
const (
	KindXsString              revision.Kind = "xs:string"
	KindXsInteger             revision.Kind = "xs:integer"
	KindXsDouble              revision.Kind = "xs:double"
	KindXsBoolean             revision.Kind = "xs:boolean"
	KindGmlPoint              revision.Kind = "gml:Point"
	KindGmlLineString         revision.Kind = "gml:LineString"
	KindGmlTimeInstant        revision.Kind = "gml:TimeInstant"
	KindGmlTimePeriod         revision.Kind = "gml:TimePeriod"
	KindGpmlConstantValue     revision.Kind = "gpml:ConstantValue"
	KindGpmlTimeSample        revision.Kind = "gpml:TimeSample"
	KindGpmlIrregularSampling revision.Kind = "gpml:IrregularSampling"

	// KindValue is the element kind of vectors of any property value
	KindValue revision.Kind = "gpml:PropertyValue"

	kindLatLon revision.Kind = "gpml:LatLon"
)

// Value is a revisioned property value
type Value interface {
	revision.Revisionable
	fmt.Stringer

	// Kind of the value
	Kind() revision.Kind

	valueLayer()
}

// valueOwner is embedded by all property values
type valueOwner struct {
	revision.Owner
}

func (valueOwner) valueLayer() {}

// Kind of the value
func (o *valueOwner) Kind() revision.Kind {
	return o.Revision().Kind()
}

// valueBase is embedded by all property value revisions
type valueBase struct {
	revision.Base
}

func (valueBase) valueLayer() {}

func newBase(ctx revision.Context) valueBase {
	return valueBase{Base: revision.NewBase(ctx)}
}

// valueRevision restricts mutation scopes of this package to property value revisions
type valueRevision interface {
	revision.Revision
	valueLayer()
}

// edit opens a mutation scope on a property value
func edit[R valueRevision](v Value) (*revision.Handler[R], error) {
	return revision.NewHandler[R](v)
}

// update edits a property value in one go
func update[R valueRevision](v Value, change func(*revision.Transaction, R) error) error {
	h, err := edit[R](v)
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

func current[R valueRevision](v Value) R {
	return revision.Current[R](v)
}

// container is a property value holding other revisionables
type container interface {
	Value
	CreateBubbleUpRevision(tx *revision.Transaction) (revision.Revision, error)
}

// bubbleUp registers a new revision for a container of an edited child
func bubbleUp[R valueRevision](v container, tx *revision.Transaction) (R, error) {
	var zero R
	rev, err := v.CreateBubbleUpRevision(tx)
	if err != nil {
		return zero, err
	}
	r, ok := rev.(R)
	if !ok {
		panic(revision.Invariant(revstatus.ErrRevisionType, zap.Stringer("kind", rev.Kind())))
	}
	return r, nil
}

func childNotFound(v Value, child revision.Revisionable) error {
	return revision.Invariant(revstatus.ErrChildNotFound,
		zap.Stringer("context", v.Kind()),
		zap.Stringer("child", child.Revision().Kind()),
	)
}

// Clone deeply clones a property value. The clone is detached.
func Clone(v Value) (Value, error) {
	c, err := v.CloneInto(nil)
	if err != nil {
		return nil, err
	}
	return c.(Value), nil
}

func mustInit(o *valueOwner, self Value, build func(*revision.Transaction) (revision.Revision, error)) {
	if err := o.Init(self, build); err != nil {
		panic(revision.Invariant(err))
	}
}
