package revision

import (
	"github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

// VectorKind yields the kind of a vector of elements of some kind
func VectorKind(elem Kind) Kind {
	return "vector<" + elem + ">"
}

var (
	_ Context  = &Vector[Revisionable]{}
	_ Revision = &vectorRevision[Revisionable]{}
)

// Vector is an ordered, revisioned, sequence of revisioned children.
//
// A vector is the context of its elements: editing an element yields a new vector revision,
// in which all other elements keep their revisions.
type Vector[T Revisionable] struct {
	Owner
}

type vectorRevision[T Revisionable] struct {
	Base
	kind  Kind
	elems References[T]
}

func (r *vectorRevision[T]) Kind() Kind {
	return r.kind
}

func (r *vectorRevision[T]) Clone(ctx Context) Revision {
	return &vectorRevision[T]{
		Base:  NewBase(ctx),
		kind:  r.kind,
		elems: r.elems.Clone(),
	}
}

func (r *vectorRevision[T]) Equal(other Revision) bool {
	return r.elems.Equal(Peer[*vectorRevision[T]](other).elems)
}

// NewVector builds a detached vector and attaches elems to it.
//
// elem is the kind of the elements' revisions.
func NewVector[T Revisionable](elem Kind, elems ...T) (*Vector[T], error) {
	v := &Vector[T]{}
	err := v.Init(v, func(tx *Transaction) (Revision, error) {
		rev := &vectorRevision[T]{
			kind:  VectorKind(elem),
			elems: make(References[T], 0, len(elems)),
		}
		for _, e := range elems {
			ref, err := Attach(tx, v, e)
			if err != nil {
				return nil, err
			}
			rev.elems = append(rev.elems, ref)
		}
		return rev, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vector[T]) current() *vectorRevision[T] {
	return Current[*vectorRevision[T]](v)
}

// Len yields the number of elements
func (v *Vector[T]) Len() int {
	return len(v.current().elems)
}

// At yields the element at position i
func (v *Vector[T]) At(i int) T {
	return v.current().elems[i].Get()
}

// Elements yields all elements
func (v *Vector[T]) Elements() []T {
	return v.current().elems.Children()
}

// References yields the element slots of the current revision
func (v *Vector[T]) References() References[T] {
	return v.current().elems.Clone()
}

// IndexOf yields the position of an element, or -1
func (v *Vector[T]) IndexOf(elem Revisionable) int {
	return v.current().elems.IndexOf(elem)
}

// Append attaches elements at the end of the vector
func (v *Vector[T]) Append(elems ...T) error {
	return v.Insert(v.Len(), elems...)
}

// Insert attaches elements at position i
func (v *Vector[T]) Insert(i int, elems ...T) error {
	if i < 0 || i > v.Len() {
		return status.ErrIndexOutOfRange
	}
	if len(elems) == 0 {
		return nil
	}

	h, err := NewHandler[*vectorRevision[T]](v)
	if err != nil {
		return err
	}
	defer h.Close()

	refs := make(References[T], 0, len(elems))
	for _, e := range elems {
		ref, err := Attach(h.Transaction(), v, e)
		if err != nil {
			h.Discard()
			return err
		}
		refs = append(refs, ref)
	}

	rev := h.Revision()
	rev.elems = append(rev.elems[:i:i], append(refs, rev.elems[i:]...)...)

	return h.Commit()
}

// Set replaces the element at position i. The former element is detached.
func (v *Vector[T]) Set(i int, elem T) error {
	if i < 0 || i >= v.Len() {
		return status.ErrIndexOutOfRange
	}

	h, err := NewHandler[*vectorRevision[T]](v)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Revision().elems[i].Change(h.Transaction(), elem); err != nil {
		h.Discard()
		return err
	}

	return h.Commit()
}

// Remove detaches and removes the element at position i
func (v *Vector[T]) Remove(i int) (T, error) {
	var removed T
	if i < 0 || i >= v.Len() {
		return removed, status.ErrIndexOutOfRange
	}

	h, err := NewHandler[*vectorRevision[T]](v)
	if err != nil {
		return removed, err
	}
	defer h.Close()

	rev := h.Revision()
	rev.elems[i].Detach(h.Transaction())
	removed = rev.elems[i].Get()
	rev.elems = append(rev.elems[:i:i], rev.elems[i+1:]...)

	return removed, h.Commit()
}

// Clear detaches all elements
func (v *Vector[T]) Clear() error {
	if v.Len() == 0 {
		return nil
	}

	h, err := NewHandler[*vectorRevision[T]](v)
	if err != nil {
		return err
	}
	defer h.Close()

	rev := h.Revision()
	for i := range rev.elems {
		rev.elems[i].Detach(h.Transaction())
	}
	rev.elems = References[T]{}

	return h.Commit()
}

// BubbleUp registers a new revision of the vector, and a new revision of child in its slot.
//
// Other elements keep their revisions.
func (v *Vector[T]) BubbleUp(tx *Transaction, child Revisionable) (Revision, error) {
	rev, err := v.CreateBubbleUpRevision(tx)
	if err != nil {
		return nil, err
	}

	r, ok := rev.(*vectorRevision[T])
	if !ok {
		panic(Invariant(status.ErrRevisionType, zap.Stringer("kind", rev.Kind())))
	}

	return r.elems.CloneRevision(tx, child), nil
}

// CloneInto deeply clones the vector and its elements into ctx
func (v *Vector[T]) CloneInto(ctx Context) (Revisionable, error) {
	return v.cloneInto(ctx)
}

// Clone deeply clones the vector and its elements. The clone is detached.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return v.cloneInto(nil)
}

func (v *Vector[T]) cloneInto(ctx Context) (*Vector[T], error) {
	src := v.current()
	clone := &Vector[T]{}
	err := clone.Init(clone, func(_ *Transaction) (Revision, error) {
		elems, err := src.elems.DeepClone(clone)
		if err != nil {
			return nil, err
		}
		return &vectorRevision[T]{
			Base:  NewBase(ctx),
			kind:  src.kind,
			elems: elems,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}
