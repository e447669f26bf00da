package model

import (
	"testing"

	"github.com/oneconcern/gpmodel/pkg/model/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureCollection(t *testing.T) {
	fx := newFixture(t)
	c := fx.collection

	assert.Equal(t, "coastlines.gpml", c.Filename())
	assert.Equal(t, 2, c.Len())
	assert.Same(t, fx.model.Store(), c.Store())
	assert.Same(t, c, fx.coastline.Collection())

	found, ok := c.Find(fx.isochron.ID())
	require.True(t, ok)
	assert.Same(t, fx.isochron, found)
	_, ok = c.Find("GPlates-unknown")
	assert.False(t, ok)

	t.Run("duplicate ids are rejected", func(t *testing.T) {
		before := c.Revision()
		dup, err := NewFeature("gpml:Coastline", WithID(fx.coastline.ID()))
		require.NoError(t, err)
		fresh, err := NewFeature("gpml:Coastline")
		require.NoError(t, err)

		require.ErrorIs(t, c.Add(fresh, dup), status.ErrDuplicateFeature)
		assert.Same(t, before, c.Revision(), "a failed add leaves the collection untouched")
		assert.Nil(t, fresh.Collection(), "a failed add leaves the features detached")

		_, err = NewFeatureCollection("dup.gpml", fresh, dup, mustFeature(t, WithID(dup.ID())))
		require.ErrorIs(t, err, status.ErrDuplicateFeature)
	})

	t.Run("index follows edits", func(t *testing.T) {
		before := c.Revision()
		f, err := NewFeature("gpml:Isochron", WithID("GPlates-isochron-2"))
		require.NoError(t, err)
		require.NoError(t, c.Add(f))

		found, ok := c.Find(f.ID())
		require.True(t, ok)
		assert.Same(t, f, found)
		_, ok = before.(*collectionRevision).index.Get([]byte(f.ID()))
		assert.False(t, ok, "the former revision keeps its own index")

		assert.Equal(t, []*Feature{f}, c.FindPrefix("GPlates-isochron"))

		require.NoError(t, c.Remove(f))
		_, ok = c.Find(f.ID())
		assert.False(t, ok)
		assert.Nil(t, f.Collection())
		require.ErrorIs(t, c.Remove(f), status.ErrFeatureNotFound)
		require.ErrorIs(t, c.Remove(nil), status.ErrFeatureNotFound)
	})

	t.Run("filename", func(t *testing.T) {
		require.NoError(t, c.SetFilename("global.gpml"))
		assert.Equal(t, "global.gpml", c.Filename())
		_, ok := fx.model.Store().Find("global.gpml")
		assert.True(t, ok)
	})

	t.Run("clone", func(t *testing.T) {
		clone, err := c.Clone()
		require.NoError(t, err)
		assert.Nil(t, clone.Store())
		assert.Equal(t, c.Len(), clone.Len())
		assert.True(t, revision.Equal(c, clone))

		for _, f := range clone.Features() {
			_, ok := c.Find(f.ID())
			assert.False(t, ok, "cloned features have new ids")
			found, ok := clone.Find(f.ID())
			require.True(t, ok)
			assert.Same(t, f, found)
			assert.Same(t, clone, f.Collection())
		}
	})
}

func mustFeature(t testing.TB, opts ...FeatureOption) *Feature {
	f, err := NewFeature("gpml:UnclassifiedFeature", opts...)
	require.NoError(t, err)
	return f
}
