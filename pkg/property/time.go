package property

import (
	"math"
	"strconv"
	"strings"

	"github.com/oneconcern/gpmodel/pkg/property/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
)

var (
	_ Value            = &GmlTimeInstant{}
	_ Value            = &GmlTimePeriod{}
	_ revision.Context = &GmlTimePeriod{}
)

const geoTimeEpsilon = 1e-9

type timeKind uint8

const (
	realTime timeKind = iota
	distantPast
	distantFuture
)

// GeoTime is a geological time, in millions of years before present (Ma).
//
// Larger values are further in the past. The distant past and the distant future
// are before and after any real time.
type GeoTime struct {
	kind timeKind
	ma   float64
}

// RealTime builds a geological time from millions of years before present
func RealTime(ma float64) GeoTime {
	return GeoTime{kind: realTime, ma: ma}
}

// DistantPast is before any real time
func DistantPast() GeoTime {
	return GeoTime{kind: distantPast}
}

// DistantFuture is after any real time
func DistantFuture() GeoTime {
	return GeoTime{kind: distantFuture}
}

// ParseGeoTime parses a time in Ma, or one of "distant past", "distant future"
func ParseGeoTime(s string) (GeoTime, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distant past", "distantpast", "http://gplates.org/times/distantpast":
		return DistantPast(), nil
	case "distant future", "distantfuture", "http://gplates.org/times/distantfuture":
		return DistantFuture(), nil
	}
	ma, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(ma) || math.IsInf(ma, 0) {
		return GeoTime{}, status.ErrInvalidTime.WrapMessage(s)
	}
	return RealTime(ma), nil
}

// IsRealTime tells if the time is neither the distant past nor the distant future
func (t GeoTime) IsRealTime() bool {
	return t.kind == realTime
}

// IsDistantPast tells if the time is the distant past
func (t GeoTime) IsDistantPast() bool {
	return t.kind == distantPast
}

// IsDistantFuture tells if the time is the distant future
func (t GeoTime) IsDistantFuture() bool {
	return t.kind == distantFuture
}

// Ma yields the time in millions of years before present. Only meaningful for real times.
func (t GeoTime) Ma() float64 {
	return t.ma
}

// Equal times, real times being compared approximately
func (t GeoTime) Equal(other GeoTime) bool {
	if t.kind != other.kind {
		return false
	}
	if t.kind != realTime {
		return true
	}
	return math.Abs(t.ma-other.ma) <= geoTimeEpsilon
}

// Before tells if t is strictly earlier than other
func (t GeoTime) Before(other GeoTime) bool {
	switch {
	case t.Equal(other):
		return false
	case t.kind == distantPast || other.kind == distantFuture:
		return true
	case t.kind == distantFuture || other.kind == distantPast:
		return false
	default:
		return t.ma > other.ma
	}
}

// After tells if t is strictly later than other
func (t GeoTime) After(other GeoTime) bool {
	return other.Before(t)
}

func (t GeoTime) String() string {
	switch t.kind {
	case distantPast:
		return "distant past"
	case distantFuture:
		return "distant future"
	default:
		return strconv.FormatFloat(t.ma, 'g', -1, 64) + " Ma"
	}
}

// GmlTimeInstant is a time position
type GmlTimeInstant struct {
	valueOwner
}

type timeInstantRevision struct {
	valueBase
	position GeoTime
}

func (r *timeInstantRevision) Kind() revision.Kind {
	return KindGmlTimeInstant
}

func (r *timeInstantRevision) Clone(ctx revision.Context) revision.Revision {
	return &timeInstantRevision{valueBase: newBase(ctx), position: r.position}
}

func (r *timeInstantRevision) Equal(other revision.Revision) bool {
	return r.position.Equal(revision.Peer[*timeInstantRevision](other).position)
}

// NewGmlTimeInstant builds a time instant
func NewGmlTimeInstant(t GeoTime) *GmlTimeInstant {
	v := &GmlTimeInstant{}
	v.init(nil, t)
	return v
}

func (v *GmlTimeInstant) init(ctx revision.Context, t GeoTime) {
	mustInit(&v.valueOwner, v, func(*revision.Transaction) (revision.Revision, error) {
		return &timeInstantRevision{valueBase: newBase(ctx), position: t}, nil
	})
}

// Time of the instant
func (v *GmlTimeInstant) Time() GeoTime {
	return current[*timeInstantRevision](v).position
}

// SetTime changes the time of the instant.
//
// An instant bounding a time period cannot cross the other bound of the period.
func (v *GmlTimeInstant) SetTime(t GeoTime) error {
	if p, ok := v.Context().(*GmlTimePeriod); ok {
		if err := p.checkBound(v, t); err != nil {
			return err
		}
	}
	return update(v, func(_ *revision.Transaction, r *timeInstantRevision) error {
		r.position = t
		return nil
	})
}

func (v *GmlTimeInstant) String() string {
	return v.Time().String()
}

// CloneInto deeply clones the instant into ctx
func (v *GmlTimeInstant) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	c := &GmlTimeInstant{}
	c.init(ctx, v.Time())
	return c, nil
}

// GmlTimePeriod is a time interval, from its begin (the earliest) to its end
type GmlTimePeriod struct {
	valueOwner
}

type timePeriodRevision struct {
	valueBase
	begin revision.Reference[*GmlTimeInstant]
	end   revision.Reference[*GmlTimeInstant]
}

func (r *timePeriodRevision) Kind() revision.Kind {
	return KindGmlTimePeriod
}

func (r *timePeriodRevision) Clone(ctx revision.Context) revision.Revision {
	return &timePeriodRevision{valueBase: newBase(ctx), begin: r.begin, end: r.end}
}

func (r *timePeriodRevision) Equal(other revision.Revision) bool {
	o := revision.Peer[*timePeriodRevision](other)
	return r.begin.Equal(o.begin) && r.end.Equal(o.end)
}

// NewGmlTimePeriod builds a time period from two detached instants
func NewGmlTimePeriod(begin, end *GmlTimeInstant) (*GmlTimePeriod, error) {
	if end.Time().Before(begin.Time()) {
		return nil, status.ErrInvalidPeriod
	}

	v := &GmlTimePeriod{}
	err := v.Init(v, func(tx *revision.Transaction) (revision.Revision, error) {
		b, err := revision.Attach(tx, v, begin)
		if err != nil {
			return nil, err
		}
		e, err := revision.Attach(tx, v, end)
		if err != nil {
			return nil, err
		}
		return &timePeriodRevision{begin: b, end: e}, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Begin yields the earliest bound of the period
func (v *GmlTimePeriod) Begin() *GmlTimeInstant {
	return current[*timePeriodRevision](v).begin.Get()
}

// End yields the latest bound of the period
func (v *GmlTimePeriod) End() *GmlTimeInstant {
	return current[*timePeriodRevision](v).end.Get()
}

// Contains tells if a time is within the period, bounds included
func (v *GmlTimePeriod) Contains(t GeoTime) bool {
	return !t.Before(v.Begin().Time()) && !t.After(v.End().Time())
}

// SetBegin replaces the begin instant by another, detached, instant
func (v *GmlTimePeriod) SetBegin(begin *GmlTimeInstant) error {
	if v.End().Time().Before(begin.Time()) {
		return status.ErrInvalidPeriod
	}
	return update(v, func(tx *revision.Transaction, r *timePeriodRevision) error {
		return r.begin.Change(tx, begin)
	})
}

// SetEnd replaces the end instant by another, detached, instant
func (v *GmlTimePeriod) SetEnd(end *GmlTimeInstant) error {
	if end.Time().Before(v.Begin().Time()) {
		return status.ErrInvalidPeriod
	}
	return update(v, func(tx *revision.Transaction, r *timePeriodRevision) error {
		return r.end.Change(tx, end)
	})
}

func (v *GmlTimePeriod) checkBound(bound *GmlTimeInstant, t GeoTime) error {
	r := current[*timePeriodRevision](v)
	switch {
	case r.begin.Is(bound) && r.end.Get().Time().Before(t):
		return status.ErrInvalidPeriod
	case r.end.Is(bound) && t.Before(r.begin.Get().Time()):
		return status.ErrInvalidPeriod
	default:
		return nil
	}
}

func (v *GmlTimePeriod) String() string {
	return "[" + v.Begin().String() + ", " + v.End().String() + "]"
}

// BubbleUp clones the bound being edited
func (v *GmlTimePeriod) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*timePeriodRevision](v, tx)
	if err != nil {
		return nil, err
	}
	switch {
	case rev.begin.Is(child):
		return rev.begin.CloneRevision(tx), nil
	case rev.end.Is(child):
		return rev.end.CloneRevision(tx), nil
	default:
		panic(childNotFound(v, child))
	}
}

// CloneInto deeply clones the period into ctx
func (v *GmlTimePeriod) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	src := current[*timePeriodRevision](v)
	c := &GmlTimePeriod{}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		begin, err := src.begin.Clone(c)
		if err != nil {
			return nil, err
		}
		end, err := src.end.Clone(c)
		if err != nil {
			return nil, err
		}
		return &timePeriodRevision{valueBase: newBase(ctx), begin: begin, end: end}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
