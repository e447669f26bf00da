package model

import (
	"testing"

	"github.com/oneconcern/gpmodel/pkg/errors"
	"github.com/oneconcern/gpmodel/pkg/property"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var errSubscriber = errors.New("subscriber failed")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type fixture struct {
	model      *Model
	collection *FeatureCollection
	coastline  *Feature
	isochron   *Feature
	name       *TopLevelProperty
	plateID    *TopLevelProperty
	plate      *property.XsInteger
}

func newFixture(t testing.TB, opts ...Option) *fixture {
	fx := &fixture{model: New(opts...)}

	var err error
	fx.plate = property.NewXsInteger(701)
	fx.plateID, err = NewTopLevelProperty("gpml:reconstructionPlateId", fx.plate)
	require.NoError(t, err)
	fx.name, err = NewTopLevelProperty("gml:name", property.NewXsString("Africa"))
	require.NoError(t, err)

	fx.coastline, err = NewFeature("gpml:Coastline", WithProperties(fx.name, fx.plateID))
	require.NoError(t, err)
	fx.isochron, err = NewFeature("gpml:Isochron")
	require.NoError(t, err)

	fx.collection, err = NewFeatureCollection("coastlines.gpml", fx.coastline, fx.isochron)
	require.NoError(t, err)
	require.NoError(t, fx.model.Store().Add(fx.collection))

	return fx
}

type events struct {
	received []Event
	err      error
}

func (e *events) subscriber(ev Event) error {
	e.received = append(e.received, ev)
	return e.err
}
