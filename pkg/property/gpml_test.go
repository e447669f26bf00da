package property

import (
	"testing"

	"github.com/oneconcern/gpmodel/pkg/property/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSample(t testing.TB, value float64, ma float64) *GpmlTimeSample {
	s, err := NewGpmlTimeSample(NewXsDouble(value), NewGmlTimeInstant(RealTime(ma)), "")
	require.NoError(t, err)
	return s
}

func TestGpmlConstantValue(t *testing.T) {
	inner := NewXsString("plate")
	c, err := NewGpmlConstantValue(inner, "name")
	require.NoError(t, err)
	assert.Equal(t, KindGpmlConstantValue, c.Kind())
	assert.Equal(t, "plate", c.String())
	assert.Equal(t, "name", c.Description())

	t.Run("an attached value cannot be wrapped twice", func(t *testing.T) {
		_, err := NewGpmlConstantValue(inner, "")
		require.ErrorIs(t, err, revstatus.ErrBuild)
		require.ErrorIs(t, err, revstatus.ErrAttached)
	})

	t.Run("nested edit bubbles up", func(t *testing.T) {
		before := c.Revision()
		require.NoError(t, inner.SetValue("crust"))
		assert.NotSame(t, before, c.Revision())
		assert.Equal(t, "crust", c.String())
		assert.Equal(t, "plate", before.(*constantValueRevision).value.Revision().(*scalarRevision[string]).value)
	})

	t.Run("replace value", func(t *testing.T) {
		other := NewXsInteger(3)
		require.NoError(t, c.SetValue(other))
		assert.Same(t, Value(other), c.Value())
		assert.Nil(t, inner.Context())
		require.NoError(t, c.SetValue(other), "same value is a no-op")
	})

	t.Run("description", func(t *testing.T) {
		require.NoError(t, c.SetDescription("count"))
		assert.Equal(t, "count", c.Description())
	})

	t.Run("deep clone", func(t *testing.T) {
		v, err := Clone(c)
		require.NoError(t, err)
		clone := v.(*GpmlConstantValue)
		assert.True(t, revision.Equal(c, clone))
		require.NoError(t, clone.Value().(*XsInteger).SetValue(4))
		assert.Equal(t, "3", c.String())
		assert.Equal(t, "4", clone.String())
	})
}

func TestGpmlIrregularSampling(t *testing.T) {
	_, err := NewGpmlIrregularSampling(KindXsString, newSample(t, 1, 10))
	require.ErrorIs(t, err, status.ErrValueType)

	first, second := newSample(t, 1, 10), newSample(t, 2, 20)
	s, err := NewGpmlIrregularSampling(KindXsDouble, first, second)
	require.NoError(t, err)
	assert.Equal(t, KindGpmlIrregularSampling, s.Kind())
	assert.Equal(t, KindXsDouble, s.ValueType())
	assert.Equal(t, "xs:double{1 @ 10 Ma; 2 @ 20 Ma}", s.String())
	assert.Same(t, s, first.sampling())

	t.Run("a sample value edit bubbles up through the vector", func(t *testing.T) {
		vec := s.SampleVector()
		samplingBefore, vecBefore, secondBefore := s.Revision(), vec.Revision(), second.Revision()

		require.NoError(t, first.Value().(*XsDouble).SetValue(1.5))

		assert.NotSame(t, samplingBefore, s.Revision())
		assert.NotSame(t, vecBefore, vec.Revision())
		assert.Same(t, secondBefore, second.Revision())
		v, ok := s.ValueAt(RealTime(10))
		require.True(t, ok)
		assert.Equal(t, "1.5", v.String())
	})

	t.Run("sample values keep the value type", func(t *testing.T) {
		require.ErrorIs(t, first.SetValue(NewXsString("x")), status.ErrValueType)
		require.NoError(t, first.SetValue(NewXsDouble(7)))
		require.ErrorIs(t, s.AddSamples(newSampleOf(t, NewXsBoolean(true))), status.ErrValueType)
	})

	t.Run("disabled samples are ignored", func(t *testing.T) {
		require.NoError(t, second.SetDisabled(true))
		assert.True(t, second.Disabled())
		_, ok := s.ValueAt(RealTime(20))
		assert.False(t, ok)
		assert.Contains(t, s.String(), "(disabled)")
	})

	t.Run("add and remove samples", func(t *testing.T) {
		require.NoError(t, s.AddSamples(newSample(t, 3, 30)))
		assert.Len(t, s.Samples(), 3)

		removed, err := s.RemoveSample(0)
		require.NoError(t, err)
		assert.Same(t, first, removed)
		assert.Nil(t, first.sampling(), "a removed sample is detached")
		assert.Len(t, s.Samples(), 2)
	})

	t.Run("deep clone", func(t *testing.T) {
		v, err := Clone(s)
		require.NoError(t, err)
		clone := v.(*GpmlIrregularSampling)
		assert.True(t, revision.Equal(s, clone))
		assert.NotSame(t, s.Samples()[0], clone.Samples()[0])
		assert.Same(t, clone, clone.Samples()[0].sampling())

		require.NoError(t, clone.Samples()[0].SetDescription("cloned"))
		assert.False(t, revision.Equal(s, clone))
		assert.Empty(t, s.Samples()[0].Description())
	})
}

func newSampleOf(t testing.TB, v Value) *GpmlTimeSample {
	s, err := NewGpmlTimeSample(v, NewGmlTimeInstant(RealTime(1)), "")
	require.NoError(t, err)
	return s
}
