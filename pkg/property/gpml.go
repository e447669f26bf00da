package property

import (
	"strings"

	"github.com/oneconcern/gpmodel/pkg/property/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
)

var (
	_ revision.Context = &GpmlConstantValue{}
	_ revision.Context = &GpmlTimeSample{}
	_ revision.Context = &GpmlIrregularSampling{}
)

// GpmlConstantValue is a property value which does not vary with time
type GpmlConstantValue struct {
	valueOwner
}

type constantValueRevision struct {
	valueBase
	value       revision.Reference[Value]
	description string
}

func (r *constantValueRevision) Kind() revision.Kind {
	return KindGpmlConstantValue
}

func (r *constantValueRevision) Clone(ctx revision.Context) revision.Revision {
	return &constantValueRevision{valueBase: newBase(ctx), value: r.value, description: r.description}
}

func (r *constantValueRevision) Equal(other revision.Revision) bool {
	o := revision.Peer[*constantValueRevision](other)
	return r.description == o.description && r.value.Equal(o.value)
}

// NewGpmlConstantValue wraps a detached value
func NewGpmlConstantValue(value Value, description string) (*GpmlConstantValue, error) {
	v := &GpmlConstantValue{}
	err := v.Init(v, func(tx *revision.Transaction) (revision.Revision, error) {
		ref, err := revision.Attach(tx, v, value)
		if err != nil {
			return nil, err
		}
		return &constantValueRevision{value: ref, description: description}, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Value yields the wrapped value
func (v *GpmlConstantValue) Value() Value {
	return current[*constantValueRevision](v).value.Get()
}

// SetValue replaces the wrapped value by another, detached, value
func (v *GpmlConstantValue) SetValue(value Value) error {
	return update(v, func(tx *revision.Transaction, r *constantValueRevision) error {
		return r.value.Change(tx, value)
	})
}

// Description of the value
func (v *GpmlConstantValue) Description() string {
	return current[*constantValueRevision](v).description
}

// SetDescription changes the description
func (v *GpmlConstantValue) SetDescription(description string) error {
	return update(v, func(_ *revision.Transaction, r *constantValueRevision) error {
		r.description = description
		return nil
	})
}

func (v *GpmlConstantValue) String() string {
	return v.Value().String()
}

// BubbleUp clones the wrapped value for an edit
func (v *GpmlConstantValue) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*constantValueRevision](v, tx)
	if err != nil {
		return nil, err
	}
	if !rev.value.Is(child) {
		panic(childNotFound(v, child))
	}
	return rev.value.CloneRevision(tx), nil
}

// CloneInto deeply clones the constant value into ctx
func (v *GpmlConstantValue) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	src := current[*constantValueRevision](v)
	c := &GpmlConstantValue{}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		value, err := src.value.Clone(c)
		if err != nil {
			return nil, err
		}
		return &constantValueRevision{valueBase: newBase(ctx), value: value, description: src.description}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GpmlTimeSample is a value valid at some time
type GpmlTimeSample struct {
	valueOwner
}

type timeSampleRevision struct {
	valueBase
	value       revision.Reference[Value]
	validTime   revision.Reference[*GmlTimeInstant]
	description string
	disabled    bool
}

func (r *timeSampleRevision) Kind() revision.Kind {
	return KindGpmlTimeSample
}

func (r *timeSampleRevision) Clone(ctx revision.Context) revision.Revision {
	return &timeSampleRevision{
		valueBase:   newBase(ctx),
		value:       r.value,
		validTime:   r.validTime,
		description: r.description,
		disabled:    r.disabled,
	}
}

func (r *timeSampleRevision) Equal(other revision.Revision) bool {
	o := revision.Peer[*timeSampleRevision](other)
	return r.description == o.description &&
		r.disabled == o.disabled &&
		r.value.Equal(o.value) &&
		r.validTime.Equal(o.validTime)
}

// NewGpmlTimeSample builds a sample from a detached value and a detached time instant
func NewGpmlTimeSample(value Value, validTime *GmlTimeInstant, description string) (*GpmlTimeSample, error) {
	v := &GpmlTimeSample{}
	err := v.Init(v, func(tx *revision.Transaction) (revision.Revision, error) {
		val, err := revision.Attach(tx, v, value)
		if err != nil {
			return nil, err
		}
		at, err := revision.Attach(tx, v, validTime)
		if err != nil {
			return nil, err
		}
		return &timeSampleRevision{value: val, validTime: at, description: description}, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *GpmlTimeSample) current() *timeSampleRevision {
	return current[*timeSampleRevision](v)
}

// Value of the sample
func (v *GpmlTimeSample) Value() Value {
	return v.current().value.Get()
}

// SetValue replaces the value of the sample by another, detached, value
func (v *GpmlTimeSample) SetValue(value Value) error {
	if s := v.sampling(); s != nil && value.Kind() != s.ValueType() {
		return status.ErrValueType
	}
	return update(v, func(tx *revision.Transaction, r *timeSampleRevision) error {
		return r.value.Change(tx, value)
	})
}

// sampling yields the irregular sampling holding the sample, if any
func (v *GpmlTimeSample) sampling() *GpmlIrregularSampling {
	vec, ok := v.Context().(*revision.Vector[*GpmlTimeSample])
	if !ok {
		return nil
	}
	s, _ := vec.Context().(*GpmlIrregularSampling)
	return s
}

// ValidTime yields the time instant of the sample
func (v *GpmlTimeSample) ValidTime() *GmlTimeInstant {
	return v.current().validTime.Get()
}

// Description of the sample
func (v *GpmlTimeSample) Description() string {
	return v.current().description
}

// SetDescription changes the description of the sample
func (v *GpmlTimeSample) SetDescription(description string) error {
	return update(v, func(_ *revision.Transaction, r *timeSampleRevision) error {
		r.description = description
		return nil
	})
}

// Disabled tells if the sample is ignored
func (v *GpmlTimeSample) Disabled() bool {
	return v.current().disabled
}

// SetDisabled enables or disables the sample
func (v *GpmlTimeSample) SetDisabled(disabled bool) error {
	return update(v, func(_ *revision.Transaction, r *timeSampleRevision) error {
		r.disabled = disabled
		return nil
	})
}

func (v *GpmlTimeSample) String() string {
	var b strings.Builder
	b.WriteString(v.Value().String())
	b.WriteString(" @ ")
	b.WriteString(v.ValidTime().String())
	if v.Disabled() {
		b.WriteString(" (disabled)")
	}
	return b.String()
}

// BubbleUp clones the value or the time instant for an edit
func (v *GpmlTimeSample) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*timeSampleRevision](v, tx)
	if err != nil {
		return nil, err
	}
	switch {
	case rev.value.Is(child):
		return rev.value.CloneRevision(tx), nil
	case rev.validTime.Is(child):
		return rev.validTime.CloneRevision(tx), nil
	default:
		panic(childNotFound(v, child))
	}
}

// CloneInto deeply clones the sample into ctx
func (v *GpmlTimeSample) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	src := v.current()
	c := &GpmlTimeSample{}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		value, err := src.value.Clone(c)
		if err != nil {
			return nil, err
		}
		at, err := src.validTime.Clone(c)
		if err != nil {
			return nil, err
		}
		return &timeSampleRevision{
			valueBase:   newBase(ctx),
			value:       value,
			validTime:   at,
			description: src.description,
			disabled:    src.disabled,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GpmlIrregularSampling is a property value sampled at irregular times.
//
// All samples hold values of the same kind.
type GpmlIrregularSampling struct {
	valueOwner
}

type irregularSamplingRevision struct {
	valueBase
	samples   revision.Reference[*revision.Vector[*GpmlTimeSample]]
	valueType revision.Kind
}

func (r *irregularSamplingRevision) Kind() revision.Kind {
	return KindGpmlIrregularSampling
}

func (r *irregularSamplingRevision) Clone(ctx revision.Context) revision.Revision {
	return &irregularSamplingRevision{valueBase: newBase(ctx), samples: r.samples, valueType: r.valueType}
}

func (r *irregularSamplingRevision) Equal(other revision.Revision) bool {
	o := revision.Peer[*irregularSamplingRevision](other)
	return r.valueType == o.valueType && r.samples.Equal(o.samples)
}

// NewGpmlIrregularSampling builds a sampling of values of some kind, from detached samples
func NewGpmlIrregularSampling(valueType revision.Kind, samples ...*GpmlTimeSample) (*GpmlIrregularSampling, error) {
	for _, s := range samples {
		if s.Value().Kind() != valueType {
			return nil, status.ErrValueType
		}
	}
	vec, err := revision.NewVector(KindGpmlTimeSample, samples...)
	if err != nil {
		return nil, err
	}

	v := &GpmlIrregularSampling{}
	err = v.Init(v, func(tx *revision.Transaction) (revision.Revision, error) {
		ref, err := revision.Attach(tx, v, vec)
		if err != nil {
			return nil, err
		}
		return &irregularSamplingRevision{samples: ref, valueType: valueType}, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (v *GpmlIrregularSampling) current() *irregularSamplingRevision {
	return current[*irregularSamplingRevision](v)
}

// ValueType yields the kind of the sampled values
func (v *GpmlIrregularSampling) ValueType() revision.Kind {
	return v.current().valueType
}

// SampleVector yields the revisioned vector of samples. Edits to the vector bubble up to the sampling.
func (v *GpmlIrregularSampling) SampleVector() *revision.Vector[*GpmlTimeSample] {
	return v.current().samples.Get()
}

// Samples yields all samples
func (v *GpmlIrregularSampling) Samples() []*GpmlTimeSample {
	return v.SampleVector().Elements()
}

// AddSamples appends detached samples
func (v *GpmlIrregularSampling) AddSamples(samples ...*GpmlTimeSample) error {
	for _, s := range samples {
		if s.Value().Kind() != v.ValueType() {
			return status.ErrValueType
		}
	}
	return v.SampleVector().Append(samples...)
}

// RemoveSample removes the sample at position i
func (v *GpmlIrregularSampling) RemoveSample(i int) (*GpmlTimeSample, error) {
	return v.SampleVector().Remove(i)
}

// ValueAt yields the value of the enabled sample valid at t, if any
func (v *GpmlIrregularSampling) ValueAt(t GeoTime) (Value, bool) {
	for _, s := range v.Samples() {
		if !s.Disabled() && s.ValidTime().Time().Equal(t) {
			return s.Value(), true
		}
	}
	return nil, false
}

func (v *GpmlIrregularSampling) String() string {
	samples := v.Samples()
	parts := make([]string, 0, len(samples))
	for _, s := range samples {
		parts = append(parts, s.String())
	}
	return string(v.ValueType()) + "{" + strings.Join(parts, "; ") + "}"
}

// BubbleUp clones the sample vector for an edit
func (v *GpmlIrregularSampling) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*irregularSamplingRevision](v, tx)
	if err != nil {
		return nil, err
	}
	if !rev.samples.Is(child) {
		panic(childNotFound(v, child))
	}
	return rev.samples.CloneRevision(tx), nil
}

// CloneInto deeply clones the sampling into ctx
func (v *GpmlIrregularSampling) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	src := v.current()
	c := &GpmlIrregularSampling{}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		samples, err := src.samples.Clone(c)
		if err != nil {
			return nil, err
		}
		return &irregularSamplingRevision{valueBase: newBase(ctx), samples: samples, valueType: src.valueType}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
