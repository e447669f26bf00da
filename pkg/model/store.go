package model

import (
	"github.com/oneconcern/gpmodel/pkg/model/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

var (
	_ revision.Context        = &FeatureStore{}
	_ revision.NotifierSource = &FeatureStore{}
)

// FeatureStore is the root of the feature hierarchy: it holds ordered feature collections.
//
// The revision of the store is a snapshot of the whole hierarchy.
type FeatureStore struct {
	recordOwner
	model *Model
}

type storeRevision struct {
	recordBase
	collections revision.References[*FeatureCollection]
}

func (r *storeRevision) Kind() revision.Kind {
	return KindFeatureStore
}

func (r *storeRevision) Clone(ctx revision.Context) revision.Revision {
	return &storeRevision{recordBase: newBase(ctx), collections: r.collections.Clone()}
}

func (r *storeRevision) Equal(other revision.Revision) bool {
	return r.collections.Equal(revision.Peer[*storeRevision](other).collections)
}

func newFeatureStore(m *Model) *FeatureStore {
	s := &FeatureStore{model: m}
	if err := s.Init(s, func(*revision.Transaction) (revision.Revision, error) {
		return &storeRevision{}, nil
	}); err != nil {
		panic(revision.Invariant(err))
	}
	return s
}

func (s *FeatureStore) current() *storeRevision {
	return current[*storeRevision](s)
}

// Model yields the model of the store
func (s *FeatureStore) Model() *Model {
	return s.model
}

// Notifier of the store
func (s *FeatureStore) Notifier() revision.Notifier {
	if s.model == nil {
		return nil
	}
	return s.model
}

func (s *FeatureStore) writable() error {
	if s.model != nil && s.model.ReadOnly() {
		return status.ErrReadOnly
	}
	return nil
}

// Collections yields the collections of the store, in order
func (s *FeatureStore) Collections() []*FeatureCollection {
	return s.current().collections.Children()
}

// Len yields the number of collections
func (s *FeatureStore) Len() int {
	return len(s.current().collections)
}

// Find the first collection with some filename
func (s *FeatureStore) Find(filename string) (*FeatureCollection, bool) {
	for _, c := range s.Collections() {
		if c.Filename() == filename {
			return c, true
		}
	}
	return nil, false
}

// FindFeature looks up a feature by id in all collections
func (s *FeatureStore) FindFeature(id FeatureID) (*Feature, bool) {
	for _, c := range s.Collections() {
		if f, ok := c.Find(id); ok {
			return f, true
		}
	}
	return nil, false
}

// Add appends detached collections to the store
func (s *FeatureStore) Add(collections ...*FeatureCollection) error {
	if err := s.writable(); err != nil {
		return err
	}
	return update(s, func(tx *revision.Transaction, r *storeRevision) error {
		for _, c := range collections {
			ref, err := revision.Attach(tx, s, c)
			if err != nil {
				return err
			}
			r.collections = append(r.collections, ref)
		}
		return nil
	})
}

// Remove detaches a collection from the store
func (s *FeatureStore) Remove(c *FeatureCollection) error {
	if err := s.writable(); err != nil {
		return err
	}
	if c == nil {
		return status.ErrCollectionNotFound
	}
	if s.current().collections.IndexOf(c) < 0 {
		return status.ErrCollectionNotFound.WrapMessage(c.Filename())
	}
	return update(s, func(tx *revision.Transaction, r *storeRevision) error {
		i := r.collections.IndexOf(c)
		r.collections[i].Detach(tx)
		r.collections = append(r.collections[:i:i], r.collections[i+1:]...)
		return nil
	})
}

// BubbleUp clones the edited collection slot.
//
// Edits are rejected when the model is read-only: nothing in the hierarchy changes.
func (s *FeatureStore) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	if err := s.writable(); err != nil {
		return nil, err
	}
	rev, err := bubbleUp[*storeRevision](s, tx)
	if err != nil {
		return nil, err
	}
	if rev.collections.IndexOf(child) < 0 {
		panic(revision.Invariant(revstatus.ErrChildNotFound, zap.Stringer("child", child.Revision().Kind())))
	}
	return rev.collections.CloneRevision(tx, child), nil
}

// CloneInto deeply clones the store. The clone belongs to no model.
func (s *FeatureStore) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	src := s.current()
	c := &FeatureStore{}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		collections, err := src.collections.DeepClone(c)
		if err != nil {
			return nil, err
		}
		return &storeRevision{recordBase: newBase(ctx), collections: collections}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
