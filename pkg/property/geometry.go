package property

import (
	"fmt"
	"strings"

	"github.com/oneconcern/gpmodel/pkg/property/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
)

var (
	_ Value            = &GmlPoint{}
	_ Value            = &GmlLineString{}
	_ revision.Context = &GmlLineString{}
)

// LatLon is a position on the globe, in degrees
type LatLon struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Equal positions
func (p LatLon) Equal(other LatLon) bool {
	return p.Lat == other.Lat && p.Lon == other.Lon
}

// Validate the range of the coordinates
func (p LatLon) Validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return status.ErrInvalidCoordinate.WrapMessage(fmt.Sprintf("latitude %g", p.Lat))
	}
	if p.Lon < -180 || p.Lon > 180 {
		return status.ErrInvalidCoordinate.WrapMessage(fmt.Sprintf("longitude %g", p.Lon))
	}
	return nil
}

func (p LatLon) String() string {
	return fmt.Sprintf("(%g %g)", p.Lat, p.Lon)
}

func validatePoints(points []LatLon) error {
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// GmlPoint is a point geometry
type GmlPoint struct {
	valueOwner
}

type pointRevision struct {
	valueBase
	position LatLon
}

func (r *pointRevision) Kind() revision.Kind {
	return KindGmlPoint
}

func (r *pointRevision) Clone(ctx revision.Context) revision.Revision {
	return &pointRevision{valueBase: newBase(ctx), position: r.position}
}

func (r *pointRevision) Equal(other revision.Revision) bool {
	return r.position.Equal(revision.Peer[*pointRevision](other).position)
}

// NewGmlPoint builds a point geometry
func NewGmlPoint(position LatLon) (*GmlPoint, error) {
	if err := position.Validate(); err != nil {
		return nil, err
	}
	v := &GmlPoint{}
	v.init(nil, position)
	return v, nil
}

func (v *GmlPoint) init(ctx revision.Context, position LatLon) {
	mustInit(&v.valueOwner, v, func(*revision.Transaction) (revision.Revision, error) {
		return &pointRevision{valueBase: newBase(ctx), position: position}, nil
	})
}

// Position of the point
func (v *GmlPoint) Position() LatLon {
	return current[*pointRevision](v).position
}

// Move the point to a new position
func (v *GmlPoint) Move(position LatLon) error {
	if err := position.Validate(); err != nil {
		return err
	}
	return update(v, func(_ *revision.Transaction, r *pointRevision) error {
		r.position = position
		return nil
	})
}

func (v *GmlPoint) String() string {
	return "POINT" + v.Position().String()
}

// CloneInto deeply clones the point into ctx
func (v *GmlPoint) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	c := &GmlPoint{}
	c.init(ctx, v.Position())
	return c, nil
}

// GmlLineString is a polyline geometry.
//
// Its points are held by a value vector: points are plain values, not revisioned objects.
type GmlLineString struct {
	valueOwner
}

type lineStringRevision struct {
	valueBase
	points revision.Reference[*revision.ValueVector[LatLon]]
}

func (r *lineStringRevision) Kind() revision.Kind {
	return KindGmlLineString
}

func (r *lineStringRevision) Clone(ctx revision.Context) revision.Revision {
	return &lineStringRevision{valueBase: newBase(ctx), points: r.points}
}

func (r *lineStringRevision) Equal(other revision.Revision) bool {
	return r.points.Equal(revision.Peer[*lineStringRevision](other).points)
}

// NewGmlLineString builds a polyline from at least two points
func NewGmlLineString(points ...LatLon) (*GmlLineString, error) {
	if len(points) < 2 {
		return nil, status.ErrTooFewPoints
	}
	if err := validatePoints(points); err != nil {
		return nil, err
	}
	vec, err := revision.NewValueVector(kindLatLon, points...)
	if err != nil {
		return nil, err
	}

	v := &GmlLineString{}
	err = v.Init(v, func(tx *revision.Transaction) (revision.Revision, error) {
		ref, err := revision.Attach(tx, v, vec)
		if err != nil {
			return nil, err
		}
		return &lineStringRevision{points: ref}, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Points yields the points of the polyline
func (v *GmlLineString) Points() []LatLon {
	return v.vector().Values()
}

// Len yields the number of points
func (v *GmlLineString) Len() int {
	return v.vector().Len()
}

func (v *GmlLineString) vector() *revision.ValueVector[LatLon] {
	return current[*lineStringRevision](v).points.Get()
}

// SetPoints replaces all points
func (v *GmlLineString) SetPoints(points ...LatLon) error {
	if len(points) < 2 {
		return status.ErrTooFewPoints
	}
	if err := validatePoints(points); err != nil {
		return err
	}
	return v.vector().Update(points)
}

// AppendPoints adds points at the end of the polyline
func (v *GmlLineString) AppendPoints(points ...LatLon) error {
	if err := validatePoints(points); err != nil {
		return err
	}
	return v.vector().Append(points...)
}

// MovePoint moves the point at position i
func (v *GmlLineString) MovePoint(i int, position LatLon) error {
	if err := position.Validate(); err != nil {
		return err
	}
	return v.vector().Set(i, position)
}

// RemovePoint removes the point at position i. A polyline keeps at least two points.
func (v *GmlLineString) RemovePoint(i int) error {
	if v.Len() <= 2 {
		return status.ErrTooFewPoints
	}
	_, err := v.vector().Remove(i)
	return err
}

func (v *GmlLineString) String() string {
	points := v.Points()
	parts := make([]string, 0, len(points))
	for _, p := range points {
		parts = append(parts, fmt.Sprintf("%g %g", p.Lat, p.Lon))
	}
	return "LINESTRING(" + strings.Join(parts, ", ") + ")"
}

// BubbleUp clones the point vector for an edit
func (v *GmlLineString) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*lineStringRevision](v, tx)
	if err != nil {
		return nil, err
	}
	if !rev.points.Is(child) {
		panic(childNotFound(v, child))
	}
	return rev.points.CloneRevision(tx), nil
}

// CloneInto deeply clones the polyline into ctx
func (v *GmlLineString) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	src := current[*lineStringRevision](v)
	c := &GmlLineString{}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		points, err := src.points.Clone(c)
		if err != nil {
			return nil, err
		}
		return &lineStringRevision{valueBase: newBase(ctx), points: points}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
