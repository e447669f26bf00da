package revision

import (
	"slices"

	"github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

// Reference is a child slot held by the revision of a parent: it references one child owner
// and one specific revision of that child.
//
// A reference never changes the current revision of its child: every new child revision
// is registered in a transaction.
type Reference[T Revisionable] struct {
	child T
	rev   Revision
}

// Attach places child in a context.
//
// The current revision of the child is cloned, attached to ctx and registered in tx.
// Only a detached child may be attached.
func Attach[T Revisionable](tx *Transaction, ctx Context, child T) (Reference[T], error) {
	current := revisionIn(tx, child)
	if current.Context() != nil {
		return Reference[T]{}, status.ErrAttached
	}

	rev := current.Clone(ctx)
	tx.Add(child, rev)

	return Reference[T]{child: child, rev: rev}, nil
}

// MustAttach is like Attach, but panics if the child is attached already
func MustAttach[T Revisionable](tx *Transaction, ctx Context, child T) Reference[T] {
	ref, err := Attach(tx, ctx, child)
	if err != nil {
		panic(Invariant(err, zap.Stringer("kind", child.Revision().Kind())))
	}
	return ref
}

// Detach removes the child from its context and returns that context.
//
// The referenced revision is cloned with no context and registered in tx.
func (r *Reference[T]) Detach(tx *Transaction) Context {
	ctx := r.rev.Context()
	rev := r.rev.Clone(nil)
	tx.Add(r.child, rev)
	r.rev = rev

	return ctx
}

// Change replaces the referenced child by another, detached, child.
//
// The current child is detached and the new child is attached to the context
// the former child had.
func (r *Reference[T]) Change(tx *Transaction, child T) error {
	if r.Is(child) {
		return nil
	}
	if revisionIn(tx, child).Context() != nil {
		return status.ErrAttached
	}

	ctx := r.Detach(tx)
	ref, err := Attach(tx, ctx, child)
	if err != nil {
		return err
	}
	*r = ref

	return nil
}

// CloneRevision registers a new revision of the referenced child, with the same context, and returns it.
//
// This is how a parent edits a child in place.
func (r *Reference[T]) CloneRevision(tx *Transaction) Revision {
	rev := r.rev.Clone(r.rev.Context())
	tx.Add(r.child, rev)
	r.rev = rev

	return rev
}

// Clone deeply clones the child into ctx and references the clone
func (r Reference[T]) Clone(ctx Context) (Reference[T], error) {
	clone, err := r.child.CloneInto(ctx)
	if err != nil {
		return Reference[T]{}, err
	}

	child, ok := clone.(T)
	if !ok {
		panic(Invariant(status.ErrRevisionType, zap.Stringer("kind", clone.Revision().Kind())))
	}

	return Reference[T]{child: child, rev: child.Revision()}, nil
}

// Get yields the child owner
func (r Reference[T]) Get() T {
	return r.child
}

// Revision yields the referenced revision of the child
func (r Reference[T]) Revision() Revision {
	return r.rev
}

// IsZero tells if the reference is unset
func (r Reference[T]) IsZero() bool {
	return r.rev == nil
}

// Is tells if the reference holds this child owner
func (r Reference[T]) Is(child Revisionable) bool {
	if r.rev == nil || child == nil {
		return false
	}
	return r.child.owner() == child.owner()
}

// Equal compares the referenced revisions by value
func (r Reference[T]) Equal(other Reference[T]) bool {
	return EqualRevisions(r.rev, other.rev)
}

// References is an ordered set of child slots
type References[T Revisionable] []Reference[T]

// IndexOf yields the position of the slot holding child, or -1
func (refs References[T]) IndexOf(child Revisionable) int {
	for i := range refs {
		if refs[i].Is(child) {
			return i
		}
	}
	return -1
}

// Clone copies the slots. Referenced revisions are shared.
func (refs References[T]) Clone() References[T] {
	if refs == nil {
		return nil
	}
	return slices.Clone(refs)
}

// CloneRevision registers a new revision for child in its slot and returns it.
//
// A child which is not in any slot is a broken invariant.
func (refs References[T]) CloneRevision(tx *Transaction, child Revisionable) Revision {
	i := refs.IndexOf(child)
	if i < 0 {
		panic(Invariant(status.ErrChildNotFound, zap.Stringer("kind", child.Revision().Kind())))
	}
	return refs[i].CloneRevision(tx)
}

// DeepClone clones all children into ctx
func (refs References[T]) DeepClone(ctx Context) (References[T], error) {
	if refs == nil {
		return nil, nil
	}
	clones := make(References[T], 0, len(refs))
	for _, ref := range refs {
		clone, err := ref.Clone(ctx)
		if err != nil {
			return nil, err
		}
		clones = append(clones, clone)
	}
	return clones, nil
}

// Equal compares two sets of slots, element by element, by value
func (refs References[T]) Equal(other References[T]) bool {
	if len(refs) != len(other) {
		return false
	}
	for i := range refs {
		if !refs[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Children yields the child owners
func (refs References[T]) Children() []T {
	children := make([]T, 0, len(refs))
	for _, ref := range refs {
		children = append(children, ref.child)
	}
	return children
}

// revisionIn yields the revision of owner as seen from within tx
func revisionIn(tx *Transaction, owner Revisionable) Revision {
	if rev, ok := tx.Pending(owner); ok && rev != nil {
		return rev
	}
	return owner.Revision()
}
