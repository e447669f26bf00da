package property

import (
	"strconv"

	"github.com/oneconcern/gpmodel/pkg/revision"
)

var (
	_ Value = &XsString{}
	_ Value = &XsInteger{}
	_ Value = &XsDouble{}
	_ Value = &XsBoolean{}
)

type scalarRevision[T comparable] struct {
	valueBase
	kind  revision.Kind
	value T
}

func (r *scalarRevision[T]) Kind() revision.Kind {
	return r.kind
}

func (r *scalarRevision[T]) Clone(ctx revision.Context) revision.Revision {
	return &scalarRevision[T]{
		valueBase: newBase(ctx),
		kind:      r.kind,
		value:     r.value,
	}
}

func (r *scalarRevision[T]) Equal(other revision.Revision) bool {
	return r.value == revision.Peer[*scalarRevision[T]](other).value
}

func initScalar[T comparable](o *valueOwner, self Value, kind revision.Kind, ctx revision.Context, value T) {
	mustInit(o, self, func(*revision.Transaction) (revision.Revision, error) {
		return &scalarRevision[T]{valueBase: newBase(ctx), kind: kind, value: value}, nil
	})
}

func scalarOf[T comparable](v Value) T {
	return current[*scalarRevision[T]](v).value
}

func setScalar[T comparable](v Value, value T) error {
	return update(v, func(_ *revision.Transaction, r *scalarRevision[T]) error {
		r.value = value
		return nil
	})
}

// XsString is a string property value
type XsString struct {
	valueOwner
}

// NewXsString builds a string property value
func NewXsString(value string) *XsString {
	v := &XsString{}
	initScalar(&v.valueOwner, v, KindXsString, nil, value)
	return v
}

// Value of the string
func (v *XsString) Value() string {
	return scalarOf[string](v)
}

// SetValue changes the string
func (v *XsString) SetValue(value string) error {
	return setScalar(v, value)
}

func (v *XsString) String() string {
	return v.Value()
}

// CloneInto deeply clones the value into ctx
func (v *XsString) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	c := &XsString{}
	initScalar(&c.valueOwner, c, KindXsString, ctx, v.Value())
	return c, nil
}

// XsInteger is an integer property value
type XsInteger struct {
	valueOwner
}

// NewXsInteger builds an integer property value
func NewXsInteger(value int64) *XsInteger {
	v := &XsInteger{}
	initScalar(&v.valueOwner, v, KindXsInteger, nil, value)
	return v
}

// Value of the integer
func (v *XsInteger) Value() int64 {
	return scalarOf[int64](v)
}

// SetValue changes the integer
func (v *XsInteger) SetValue(value int64) error {
	return setScalar(v, value)
}

func (v *XsInteger) String() string {
	return strconv.FormatInt(v.Value(), 10)
}

// CloneInto deeply clones the value into ctx
func (v *XsInteger) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	c := &XsInteger{}
	initScalar(&c.valueOwner, c, KindXsInteger, ctx, v.Value())
	return c, nil
}

// XsDouble is a floating point property value
type XsDouble struct {
	valueOwner
}

// NewXsDouble builds a floating point property value
func NewXsDouble(value float64) *XsDouble {
	v := &XsDouble{}
	initScalar(&v.valueOwner, v, KindXsDouble, nil, value)
	return v
}

// Value of the double
func (v *XsDouble) Value() float64 {
	return scalarOf[float64](v)
}

// SetValue changes the double
func (v *XsDouble) SetValue(value float64) error {
	return setScalar(v, value)
}

func (v *XsDouble) String() string {
	return strconv.FormatFloat(v.Value(), 'g', -1, 64)
}

// CloneInto deeply clones the value into ctx
func (v *XsDouble) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	c := &XsDouble{}
	initScalar(&c.valueOwner, c, KindXsDouble, ctx, v.Value())
	return c, nil
}

// XsBoolean is a boolean property value
type XsBoolean struct {
	valueOwner
}

// NewXsBoolean builds a boolean property value
func NewXsBoolean(value bool) *XsBoolean {
	v := &XsBoolean{}
	initScalar(&v.valueOwner, v, KindXsBoolean, nil, value)
	return v
}

// Value of the boolean
func (v *XsBoolean) Value() bool {
	return scalarOf[bool](v)
}

// SetValue changes the boolean
func (v *XsBoolean) SetValue(value bool) error {
	return setScalar(v, value)
}

func (v *XsBoolean) String() string {
	return strconv.FormatBool(v.Value())
}

// CloneInto deeply clones the value into ctx
func (v *XsBoolean) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	c := &XsBoolean{}
	initScalar(&c.valueOwner, c, KindXsBoolean, ctx, v.Value())
	return c, nil
}
