package model

import (
	iradix "github.com/hashicorp/go-immutable-radix"
	"github.com/oneconcern/gpmodel/pkg/model/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

var _ revision.Context = &FeatureCollection{}

// FeatureCollection is an ordered set of features, usually loaded from one file.
//
// Features are indexed by id. The index is a persistent tree: revisions share it,
// an edit yields a new tree sharing most of its nodes with the former one.
type FeatureCollection struct {
	recordOwner
}

type collectionRevision struct {
	recordBase
	filename string
	features revision.References[*Feature]
	index    *iradix.Tree
}

func (r *collectionRevision) Kind() revision.Kind {
	return KindFeatureCollection
}

func (r *collectionRevision) Clone(ctx revision.Context) revision.Revision {
	return &collectionRevision{
		recordBase: newBase(ctx),
		filename:   r.filename,
		features:   r.features.Clone(),
		index:      r.index,
	}
}

func (r *collectionRevision) Equal(other revision.Revision) bool {
	o := revision.Peer[*collectionRevision](other)
	return r.filename == o.filename && r.features.Equal(o.features)
}

func (r *collectionRevision) add(tx *revision.Transaction, ctx revision.Context, f *Feature) error {
	key := []byte(f.ID())
	if _, found := r.index.Get(key); found {
		return status.ErrDuplicateFeature.WrapMessage(f.ID().String())
	}
	ref, err := revision.Attach(tx, ctx, f)
	if err != nil {
		return err
	}
	r.features = append(r.features, ref)
	r.index, _, _ = r.index.Insert(key, f)
	return nil
}

// NewFeatureCollection builds a detached collection from detached features
func NewFeatureCollection(filename string, features ...*Feature) (*FeatureCollection, error) {
	c := &FeatureCollection{}
	err := c.Init(c, func(tx *revision.Transaction) (revision.Revision, error) {
		rev := &collectionRevision{
			filename: filename,
			features: make(revision.References[*Feature], 0, len(features)),
			index:    iradix.New(),
		}
		for _, f := range features {
			if err := rev.add(tx, c, f); err != nil {
				return nil, err
			}
		}
		return rev, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *FeatureCollection) current() *collectionRevision {
	return current[*collectionRevision](c)
}

// Filename of the collection
func (c *FeatureCollection) Filename() string {
	return c.current().filename
}

// SetFilename changes the filename of the collection
func (c *FeatureCollection) SetFilename(filename string) error {
	return update(c, func(_ *revision.Transaction, r *collectionRevision) error {
		r.filename = filename
		return nil
	})
}

// Store yields the store holding this collection, if any
func (c *FeatureCollection) Store() *FeatureStore {
	s, _ := c.Context().(*FeatureStore)
	return s
}

// Len yields the number of features
func (c *FeatureCollection) Len() int {
	return len(c.current().features)
}

// Features yields all features, in order
func (c *FeatureCollection) Features() []*Feature {
	return c.current().features.Children()
}

// Find a feature by id
func (c *FeatureCollection) Find(id FeatureID) (*Feature, bool) {
	v, ok := c.current().index.Get([]byte(id))
	if !ok {
		return nil, false
	}
	return v.(*Feature), true
}

// FindPrefix yields the features with an id starting with prefix, ordered by id
func (c *FeatureCollection) FindPrefix(prefix string) []*Feature {
	var found []*Feature
	c.current().index.Root().WalkPrefix([]byte(prefix), func(_ []byte, v interface{}) bool {
		found = append(found, v.(*Feature))
		return false
	})
	return found
}

// Add appends detached features. Feature ids must be unique within the collection.
func (c *FeatureCollection) Add(features ...*Feature) error {
	return update(c, func(tx *revision.Transaction, r *collectionRevision) error {
		for _, f := range features {
			if err := r.add(tx, c, f); err != nil {
				return err
			}
		}
		return nil
	})
}

// Remove detaches a feature from the collection
func (c *FeatureCollection) Remove(f *Feature) error {
	if f == nil {
		return status.ErrFeatureNotFound
	}
	if c.current().features.IndexOf(f) < 0 {
		return status.ErrFeatureNotFound.WrapMessage(f.ID().String())
	}
	return update(c, func(tx *revision.Transaction, r *collectionRevision) error {
		i := r.features.IndexOf(f)
		r.features[i].Detach(tx)
		r.features = append(r.features[:i:i], r.features[i+1:]...)
		r.index, _, _ = r.index.Delete([]byte(f.ID()))
		return nil
	})
}

// BubbleUp clones the edited feature slot
func (c *FeatureCollection) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*collectionRevision](c, tx)
	if err != nil {
		return nil, err
	}
	if rev.features.IndexOf(child) < 0 {
		panic(revision.Invariant(revstatus.ErrChildNotFound,
			zap.String("collection", rev.filename),
			zap.Stringer("child", child.Revision().Kind()),
		))
	}
	return rev.features.CloneRevision(tx, child), nil
}

// CloneInto deeply clones the collection into ctx. Cloned features have new ids.
func (c *FeatureCollection) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	return c.cloneInto(ctx)
}

// Clone deeply clones the collection. The clone is detached and its features have new ids.
func (c *FeatureCollection) Clone() (*FeatureCollection, error) {
	return c.cloneInto(nil)
}

func (c *FeatureCollection) cloneInto(ctx revision.Context) (*FeatureCollection, error) {
	src := c.current()
	clone := &FeatureCollection{}
	err := clone.Init(clone, func(*revision.Transaction) (revision.Revision, error) {
		features, err := src.features.DeepClone(clone)
		if err != nil {
			return nil, err
		}
		index := iradix.New().Txn()
		for _, f := range features.Children() {
			index.Insert([]byte(f.ID()), f)
		}
		return &collectionRevision{
			recordBase: newBase(ctx),
			filename:   src.filename,
			features:   features,
			index:      index.Commit(),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}
