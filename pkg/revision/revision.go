package revision

import (
	"weak"

	"github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

// Kind tags the concrete type of a revision.
//
// Two revisions may only be compared when their kinds are the same.
type Kind string

func (k Kind) String() string {
	return string(k)
}

// Revision is an immutable snapshot of the state of one owner at one point in time.
//
// Clone returns a shallow copy of the snapshot, attached to ctx (or to no context when ctx is nil).
// Revisioned children are not cloned: the copy shares them with the original.
//
// Equal compares the payload of two revisions of the same kind, children included, by value.
//
// Concrete revisions embed Base.
type Revision interface {
	Kind() Kind
	Context() Context
	Clone(ctx Context) Revision
	Equal(other Revision) bool

	base() *Base
}

// Releaser may be implemented by revisions holding resources.
//
// Release is called once a committed transaction has displaced the revision from its owner.
type Releaser interface {
	Release() error
}

// anchor is the target of the weak links held by child revisions.
// Only the owner of a context keeps it alive.
type anchor struct {
	ctx Context
}

// Base holds the link from a revision to the context containing its owner.
//
// The link is weak: a revision does not keep its parent alive. It is set at construction
// time and never changes afterwards.
type Base struct {
	link weak.Pointer[anchor]
}

// NewBase builds a revision base attached to ctx. A nil ctx yields a detached base.
func NewBase(ctx Context) Base {
	if ctx == nil {
		return Base{}
	}
	a := ctx.owner().anchor
	if a == nil {
		panic(Invariant(status.ErrNotContext, zap.Stringer("kind", kindOf(ctx.owner()))))
	}
	return Base{link: weak.Make(a)}
}

// Context yields the parent context of the owner of this revision, if any
func (b *Base) Context() Context {
	a := b.link.Value()
	if a == nil {
		return nil
	}
	return a.ctx
}

func (b *Base) base() *Base {
	return b
}

// EqualRevisions compares two revisions by value.
//
// Revisions of different kinds are not equal.
func EqualRevisions(a, b Revision) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	return a.Equal(b)
}

// Equal compares two owners by the value of their current revisions
func Equal(a, b Revisionable) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return EqualRevisions(a.Revision(), b.Revision())
}

// Peer yields the other side of an Equal comparison with its concrete type.
//
// It panics if other has not the expected type: kinds must have been checked before.
func Peer[R Revision](other Revision) R {
	r, ok := other.(R)
	if !ok {
		panic(Invariant(status.ErrKindMismatch, zap.Stringer("kind", other.Kind())))
	}
	return r
}

// Current yields the current revision of an owner with its concrete type
func Current[R Revision](o Revisionable) R {
	rev := o.Revision()
	r, ok := rev.(R)
	if !ok {
		panic(Invariant(status.ErrRevisionType, zap.Stringer("kind", rev.Kind())))
	}
	return r
}

func kindOf(o *Owner) Kind {
	if o == nil || o.current == nil {
		return ""
	}
	return o.current.Kind()
}
