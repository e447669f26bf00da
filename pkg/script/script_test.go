package script

import (
	"testing"

	"github.com/oneconcern/gpmodel/pkg/model"
	"github.com/oneconcern/gpmodel/pkg/property"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"github.com/oneconcern/gpmodel/pkg/script/status"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/scripts/edit.yaml", []byte(fixtureScript), 0o644))

	s, err := Load(fs, "/scripts/edit.yaml")
	require.NoError(t, err)
	require.Len(t, s.Collections, 2)
	assert.Len(t, s.Edits, 7)
	assert.Equal(t, "africa/gml:name[0]", s.Edits[0].Target())
	assert.Equal(t, "isochrons.gpml", s.Edits[4].Target())

	_, err = Load(fs, "/scripts/missing.yaml")
	require.ErrorIs(t, err, status.ErrRead)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		err    error
	}{
		{name: "not yaml", script: "collections: [", err: status.ErrParse},
		{name: "unknown field", script: "collections: []\nfeatures: []\n", err: status.ErrParse},
		{
			name: "duplicate alias",
			script: `
collections:
  - filename: a.gpml
    features:
      - {alias: x, type: gpml:Coastline}
  - filename: b.gpml
    features:
      - {alias: x, type: gpml:Coastline}
`,
			err: status.ErrDuplicateAlias,
		},
	}
	for _, toPin := range tests {
		tt := toPin
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.script))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBuild(t *testing.T) {
	s, err := Parse([]byte(fixtureScript))
	require.NoError(t, err)

	m := model.New()
	require.NoError(t, s.Build(m))
	assert.Equal(t, 2, m.Store().Len())

	africa, ok := s.Feature("africa")
	require.True(t, ok)
	assert.Equal(t, "gpml:Coastline", africa.Type())
	assert.Len(t, africa.Properties(), 4)

	name, ok := africa.Property("gml:name")
	require.True(t, ok)
	lang, _ := name.Attribute("xml:lang")
	assert.Equal(t, "en", lang)

	ridge, ok := s.Feature("ridge")
	require.True(t, ok)
	assert.Equal(t, model.FeatureID("GPlates-ridge-1"), ridge.ID())
	rate, ok := ridge.Property("gpml:spreadingRate")
	require.True(t, ok)
	v, ok := rate.Value()
	require.True(t, ok)
	sampling := v.(*property.GpmlIrregularSampling)
	assert.Equal(t, property.KindXsDouble, sampling.ValueType())
	assert.Len(t, sampling.Samples(), 2)

	_, ok = s.Feature("nobody")
	assert.False(t, ok)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		err    error
	}{
		{
			name:   "empty value",
			script: "collections:\n  - filename: a\n    features:\n      - type: t\n        properties:\n          - name: p\n            values:\n              - {}\n",
			err:    status.ErrValueSpec,
		},
		{
			name:   "two values",
			script: "collections:\n  - filename: a\n    features:\n      - type: t\n        properties:\n          - name: p\n            values:\n              - {string: a, integer: 1}\n",
			err:    status.ErrValueSpec,
		},
		{
			name:   "bad feature id",
			script: "collections:\n  - filename: a\n    features:\n      - {type: t, id: f-1}\n",
			err:    status.ErrBuild,
		},
		{
			name:   "empty sampling",
			script: "collections:\n  - filename: a\n    features:\n      - type: t\n        properties:\n          - name: p\n            values:\n              - sampling: {samples: []}\n",
			err:    status.ErrValueSpec,
		},
	}
	for _, toPin := range tests {
		tt := toPin
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(tt.script))
			require.NoError(t, err)

			m := model.New()
			err = s.Build(m)
			require.ErrorIs(t, err, status.ErrBuild)
			require.ErrorIs(t, err, tt.err)
			assert.Zero(t, m.Store().Len(), "nothing is added on failure")
		})
	}
}

func TestRun(t *testing.T) {
	s, err := Parse([]byte(fixtureScript))
	require.NoError(t, err)

	m := model.New()
	report, err := s.Run(m, RunOptions{})
	require.NoError(t, err)
	require.Len(t, report.Edits, 7)
	assert.Zero(t, report.Failed())
	assert.Equal(t, 7, report.Events)
	assert.Nil(t, report.Changes)

	for _, e := range report.Edits {
		assert.Equal(t, StatusOK, e.Status, "step %d", e.Step)
	}
	assert.Equal(t, []string{"africa"}, report.Edits[0].Changes.Updated)
	assert.Equal(t, []string{"africa"}, report.Edits[1].Changes.Updated)
	assert.Equal(t, []string{"ridge"}, report.Edits[3].Changes.Updated)
	assert.Equal(t, []string{"isochron"}, report.Edits[4].Changes.Added)
	assert.True(t, report.Edits[5].Changes.Added == nil && report.Edits[5].Changes.Deleted == nil)
	assert.Equal(t, []string{"ridge"}, report.Edits[6].Changes.Deleted)

	africa, _ := s.Feature("africa")
	name, _ := africa.Property("gml:name")
	v, _ := name.Value()
	assert.Equal(t, "Nubia", v.String())

	plate, _ := africa.Property("gpml:reconstructionPlateId")
	v, _ = plate.Value()
	constant := v.(*property.GpmlConstantValue)
	assert.Equal(t, "709", constant.String(), "scalars nested in constant values are set in place")
	assert.Equal(t, "plate id", constant.Description())

	line, _ := africa.Property("gpml:centerLineOf")
	v, _ = line.Value()
	assert.Equal(t, property.LatLon{Lat: 6, Lon: 16}, v.(*property.GmlLineString).Points()[1])

	_, ok := m.Store().Find("all-isochrons.gpml")
	assert.True(t, ok)
	ridge, _ := s.Feature("ridge")
	assert.Nil(t, ridge.Collection())
}

func TestRunGuarded(t *testing.T) {
	s, err := Parse([]byte(fixtureScript))
	require.NoError(t, err)

	report, err := s.Run(model.New(), RunOptions{Guarded: true})
	require.NoError(t, err)
	assert.True(t, report.Guarded)
	assert.Equal(t, 1, report.Events, "one consolidated event")
	for _, e := range report.Edits {
		assert.Empty(t, e.Changes.Updated)
	}
	require.NotNil(t, report.Changes)
	assert.Equal(t, []string{"isochron"}, report.Changes.Added)
	assert.Equal(t, []string{"ridge"}, report.Changes.Deleted)
	assert.Equal(t, []string{"africa"}, report.Changes.Updated)
}

const failingScript = `
collections:
  - filename: a.gpml
    features:
      - alias: f
        type: gpml:Coastline
        properties:
          - name: gml:validTime
            values:
              - period: {begin: "100", end: "0"}
          - name: gml:name
            values:
              - string: a
edits:
  - op: set
    feature: f
    property: gml:name
    index: 3
    value: {string: b}
  - op: explode
    feature: f
  - op: readOnly
    enabled: true
  - op: setType
    feature: f
    to: gpml:Isochron
  - op: readOnly
    enabled: false
  - op: set
    feature: f
    property: gml:name
    value: {string: c}
`

func TestRunFailures(t *testing.T) {
	t.Run("stop on first failure", func(t *testing.T) {
		s, err := Parse([]byte(failingScript))
		require.NoError(t, err)

		report, err := s.Run(model.New(), RunOptions{})
		require.ErrorIs(t, err, status.ErrEdit)
		require.ErrorIs(t, err, revstatus.ErrIndexOutOfRange)
		assert.Equal(t, StatusFailed, report.Edits[0].Status)
		for _, e := range report.Edits[1:] {
			assert.Equal(t, StatusSkipped, e.Status)
		}
	})

	t.Run("continue on error", func(t *testing.T) {
		s, err := Parse([]byte(failingScript))
		require.NoError(t, err)

		report, err := s.Run(model.New(), RunOptions{ContinueOnError: true})
		require.NoError(t, err)
		assert.Equal(t, 3, report.Failed())
		assert.Contains(t, report.Edits[1].Error, "unknown edit operation")
		assert.Contains(t, report.Edits[3].Error, "read-only")
		assert.Equal(t, StatusOK, report.Edits[5].Status)

		f, _ := s.Feature("f")
		assert.Equal(t, "gpml:Coastline", f.Type(), "a rejected edit changes nothing")
		name, _ := f.Property("gml:name")
		v, _ := name.Value()
		assert.Equal(t, "c", v.String())
	})
}

func TestRunEditErrors(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
		err  error
	}{
		{name: "unknown alias", edit: Edit{Op: OpSetType, Feature: "nobody", To: "t"}, err: status.ErrUnknownAlias},
		{name: "unknown property", edit: Edit{Op: OpSet, Feature: "f", Property: "p", Value: &ValueSpec{}}, err: status.ErrUnknownProperty},
		{name: "unknown collection", edit: Edit{Op: OpRenameCollection, Collection: "b.gpml", To: "c"}, err: status.ErrUnknownCollection},
		{name: "missing value", edit: Edit{Op: OpSet, Feature: "f", Property: "gml:name"}, err: status.ErrMissingArgument},
		{name: "missing position", edit: Edit{Op: OpMovePoint, Feature: "f", Property: "gml:name"}, err: status.ErrMissingArgument},
		{name: "wrong target", edit: Edit{Op: OpRemoveSample, Feature: "f", Property: "gml:name"}, err: status.ErrTarget},
		{name: "missing collection", edit: Edit{Op: OpAddFeature}, err: status.ErrMissingArgument},
		{name: "missing key", edit: Edit{Op: OpSetAttribute, Feature: "f", Property: "gml:name"}, err: status.ErrMissingArgument},
	}
	for _, toPin := range tests {
		tt := toPin
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse([]byte(failingScript))
			require.NoError(t, err)
			s.Edits = []Edit{tt.edit}

			report, err := s.Run(model.New(), RunOptions{})
			require.ErrorIs(t, err, tt.err)
			assert.Equal(t, StatusFailed, report.Edits[0].Status)
		})
	}
}
