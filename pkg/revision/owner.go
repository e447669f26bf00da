package revision

import (
	"github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

// Revisionable is an object whose state is held by a current revision.
//
// CloneInto performs a deep clone: the owner and all its revisioned children are duplicated,
// and the new owner is attached to ctx.
//
// Concrete revisionables embed Owner.
type Revisionable interface {
	Revision() Revision
	CloneInto(ctx Context) (Revisionable, error)

	owner() *Owner
}

// Context is a revisionable containing other revisionables.
//
// BubbleUp is called by a child about to be edited. The context obtains its own new revision
// (bubbling further up to its own context, if any), locates the slot holding child in this
// new revision, clones the child revision from that slot and returns it. Every new revision
// is registered in tx.
//
// A child which is not found is a broken invariant: BubbleUp panics.
type Context interface {
	Revisionable
	BubbleUp(tx *Transaction, child Revisionable) (Revision, error)
}

// Owner holds the current revision of a revisionable.
//
// The current revision is only ever replaced by a committed Transaction.
type Owner struct {
	self    Revisionable
	current Revision
	anchor  *anchor
}

func (o *Owner) owner() *Owner {
	return o
}

// Revision yields the current revision.
//
// It panics if the owner has not been initialized.
func (o *Owner) Revision() Revision {
	if o.current == nil {
		panic(Invariant(status.ErrNotInitialized))
	}
	return o.current
}

// Initialized tells if the owner holds a revision
func (o *Owner) Initialized() bool {
	return o.current != nil
}

// Context yields the context of the current revision, if any
func (o *Owner) Context() Context {
	return o.Revision().Context()
}

// Init binds the owner to the value embedding it, then builds and commits its initial revision.
//
// The build function runs within the initial transaction: children attached by build
// are committed together with the owner. Nothing is committed when build fails.
//
// Sample usage:
//
//	f := &Feature{}
//	err := f.Init(f, func(tx *revision.Transaction) (revision.Revision, error) {
//	  return &featureRevision{Base: revision.NewBase(nil)}, nil
//	})
func (o *Owner) Init(self Revisionable, build func(*Transaction) (Revision, error)) error {
	if self == nil || self.owner() != o {
		panic(Invariant(status.ErrOwnerMismatch))
	}
	if o.current != nil {
		return status.ErrInitialized
	}

	o.self = self
	if ctx, ok := self.(Context); ok {
		o.anchor = &anchor{ctx: ctx}
	}

	tx := NewTransaction()
	rev, err := build(tx)
	if err != nil {
		tx.Discard()
		return status.ErrBuild.Wrap(err)
	}
	if rev == nil {
		tx.Discard()
		return status.ErrBuild.Wrap(status.ErrNotInitialized)
	}
	tx.Add(self, rev)

	return tx.Commit()
}

// CreateBubbleUpRevision registers a new revision for this owner in tx and returns it.
//
// A detached owner clones its current revision. An attached owner lets its context
// bubble the edit up.
func (o *Owner) CreateBubbleUpRevision(tx *Transaction) (Revision, error) {
	current := o.Revision()
	ctx := current.Context()
	if ctx == nil {
		rev := current.Clone(nil)
		tx.Add(o.self, rev)
		return rev, nil
	}

	rev, err := ctx.BubbleUp(tx, o.self)
	if err != nil {
		return nil, err
	}
	if rev.Kind() != current.Kind() {
		panic(Invariant(status.ErrKindMismatch,
			zap.Stringer("expected", current.Kind()),
			zap.Stringer("actual", rev.Kind()),
		))
	}
	return rev, nil
}
