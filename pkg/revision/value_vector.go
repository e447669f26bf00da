package revision

import (
	"slices"

	"github.com/oneconcern/gpmodel/pkg/revision/status"
	"github.com/tiendc/go-deepcopy"
)

// Equaler compares plain values
type Equaler[T any] interface {
	Equal(T) bool
}

// ValueVectorKind yields the kind of a vector of plain values of some kind
func ValueVectorKind(elem Kind) Kind {
	return "values<" + elem + ">"
}

// ValueVector is an ordered, revisioned, sequence of plain values.
//
// Values are not revisioned: a value vector is not a context and its values never bubble up.
// Values are copied when a revision is cloned, and deep-copied when the vector is cloned.
type ValueVector[T Equaler[T]] struct {
	Owner
}

type valueVectorRevision[T Equaler[T]] struct {
	Base
	kind   Kind
	values []T
}

func (r *valueVectorRevision[T]) Kind() Kind {
	return r.kind
}

func (r *valueVectorRevision[T]) Clone(ctx Context) Revision {
	return &valueVectorRevision[T]{
		Base:   NewBase(ctx),
		kind:   r.kind,
		values: slices.Clone(r.values),
	}
}

func (r *valueVectorRevision[T]) Equal(other Revision) bool {
	return slices.EqualFunc(r.values, Peer[*valueVectorRevision[T]](other).values, func(a, b T) bool {
		return a.Equal(b)
	})
}

// NewValueVector builds a detached vector holding deep copies of values.
//
// elem is the kind of the values.
func NewValueVector[T Equaler[T]](elem Kind, values ...T) (*ValueVector[T], error) {
	copied, err := copyValues(values)
	if err != nil {
		return nil, err
	}

	v := &ValueVector[T]{}
	err = v.Init(v, func(_ *Transaction) (Revision, error) {
		return &valueVectorRevision[T]{
			kind:   ValueVectorKind(elem),
			values: copied,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *ValueVector[T]) current() *valueVectorRevision[T] {
	return Current[*valueVectorRevision[T]](v)
}

// Len yields the number of values
func (v *ValueVector[T]) Len() int {
	return len(v.current().values)
}

// At yields the value at position i
func (v *ValueVector[T]) At(i int) T {
	return v.current().values[i]
}

// Values yields a copy of all values
func (v *ValueVector[T]) Values() []T {
	return slices.Clone(v.current().values)
}

// Append adds values at the end of the vector
func (v *ValueVector[T]) Append(values ...T) error {
	return v.Insert(v.Len(), values...)
}

// Insert adds values at position i
func (v *ValueVector[T]) Insert(i int, values ...T) error {
	if i < 0 || i > v.Len() {
		return status.ErrIndexOutOfRange
	}
	if len(values) == 0 {
		return nil
	}
	copied, err := copyValues(values)
	if err != nil {
		return err
	}

	return v.edit(func(rev *valueVectorRevision[T]) {
		rev.values = slices.Insert(rev.values, i, copied...)
	})
}

// Set replaces the value at position i
func (v *ValueVector[T]) Set(i int, value T) error {
	if i < 0 || i >= v.Len() {
		return status.ErrIndexOutOfRange
	}
	copied, err := copyValues([]T{value})
	if err != nil {
		return err
	}

	return v.edit(func(rev *valueVectorRevision[T]) {
		rev.values[i] = copied[0]
	})
}

// Remove removes the value at position i
func (v *ValueVector[T]) Remove(i int) (T, error) {
	var removed T
	if i < 0 || i >= v.Len() {
		return removed, status.ErrIndexOutOfRange
	}

	err := v.edit(func(rev *valueVectorRevision[T]) {
		removed = rev.values[i]
		rev.values = slices.Delete(rev.values, i, i+1)
	})
	return removed, err
}

// Clear removes all values
func (v *ValueVector[T]) Clear() error {
	if v.Len() == 0 {
		return nil
	}
	return v.edit(func(rev *valueVectorRevision[T]) {
		rev.values = []T{}
	})
}

// Update replaces all values at once
func (v *ValueVector[T]) Update(values []T) error {
	copied, err := copyValues(values)
	if err != nil {
		return err
	}
	return v.edit(func(rev *valueVectorRevision[T]) {
		rev.values = copied
	})
}

func (v *ValueVector[T]) edit(change func(*valueVectorRevision[T])) error {
	h, err := NewHandler[*valueVectorRevision[T]](v)
	if err != nil {
		return err
	}
	defer h.Close()

	change(h.Revision())

	return h.Commit()
}

// CloneInto deeply clones the vector into ctx
func (v *ValueVector[T]) CloneInto(ctx Context) (Revisionable, error) {
	return v.cloneInto(ctx)
}

// Clone deeply clones the vector. The clone is detached.
func (v *ValueVector[T]) Clone() (*ValueVector[T], error) {
	return v.cloneInto(nil)
}

func (v *ValueVector[T]) cloneInto(ctx Context) (*ValueVector[T], error) {
	src := v.current()
	values, err := copyValues(src.values)
	if err != nil {
		return nil, err
	}

	clone := &ValueVector[T]{}
	err = clone.Init(clone, func(_ *Transaction) (Revision, error) {
		return &valueVectorRevision[T]{
			Base:   NewBase(ctx),
			kind:   src.kind,
			values: values,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

func copyValues[T any](values []T) ([]T, error) {
	copied := make([]T, 0, len(values))
	if len(values) == 0 {
		return copied, nil
	}
	if err := deepcopy.Copy(&copied, values); err != nil {
		return nil, status.ErrValueCopy.Wrap(err)
	}
	return copied, nil
}
