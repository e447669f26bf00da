package script

import (
	"github.com/oneconcern/gpmodel/pkg/model"
	"github.com/oneconcern/gpmodel/pkg/property"
	"github.com/oneconcern/gpmodel/pkg/revision"
	"github.com/oneconcern/gpmodel/pkg/script/status"
)

// CollectionSpec describes a feature collection
type CollectionSpec struct {
	Filename string        `yaml:"filename" json:"filename"`
	Features []FeatureSpec `yaml:"features,omitempty" json:"features,omitempty"`
}

// FeatureSpec describes a feature. The alias is the name of the feature in edits.
type FeatureSpec struct {
	Alias      string         `yaml:"alias,omitempty" json:"alias,omitempty"`
	ID         string         `yaml:"id,omitempty" json:"id,omitempty"`
	Type       string         `yaml:"type" json:"type"`
	Properties []PropertySpec `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// PropertySpec describes a top-level property
type PropertySpec struct {
	Name       string            `yaml:"name" json:"name"`
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Values     []ValueSpec       `yaml:"values,omitempty" json:"values,omitempty"`
}

// ValueSpec describes a property value: exactly one field is set
type ValueSpec struct {
	String     *string           `yaml:"string,omitempty" json:"string,omitempty"`
	Integer    *int64            `yaml:"integer,omitempty" json:"integer,omitempty"`
	Double     *float64          `yaml:"double,omitempty" json:"double,omitempty"`
	Boolean    *bool             `yaml:"boolean,omitempty" json:"boolean,omitempty"`
	Point      *property.LatLon  `yaml:"point,omitempty" json:"point,omitempty"`
	LineString []property.LatLon `yaml:"lineString,omitempty" json:"lineString,omitempty"`
	Instant    *string           `yaml:"instant,omitempty" json:"instant,omitempty"`
	Period     *PeriodSpec       `yaml:"period,omitempty" json:"period,omitempty"`
	Constant   *ConstantSpec     `yaml:"constant,omitempty" json:"constant,omitempty"`
	Sampling   *SamplingSpec     `yaml:"sampling,omitempty" json:"sampling,omitempty"`
}

// PeriodSpec describes a time period. Times are in Ma, or "distant past", "distant future".
type PeriodSpec struct {
	Begin string `yaml:"begin" json:"begin"`
	End   string `yaml:"end" json:"end"`
}

// ConstantSpec describes a constant value
type ConstantSpec struct {
	Value       ValueSpec `yaml:"value" json:"value"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
}

// SamplingSpec describes an irregular sampling. The value type defaults to the kind of the first sample.
type SamplingSpec struct {
	Type    string       `yaml:"type,omitempty" json:"type,omitempty"`
	Samples []SampleSpec `yaml:"samples" json:"samples"`
}

// SampleSpec describes a time sample
type SampleSpec struct {
	Time        string    `yaml:"time" json:"time"`
	Value       ValueSpec `yaml:"value" json:"value"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Disabled    bool      `yaml:"disabled,omitempty" json:"disabled,omitempty"`
}

func (s ValueSpec) count() int {
	n := 0
	for _, set := range []bool{
		s.String != nil, s.Integer != nil, s.Double != nil, s.Boolean != nil,
		s.Point != nil, s.LineString != nil, s.Instant != nil,
		s.Period != nil, s.Constant != nil, s.Sampling != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Build a detached property value
func (s ValueSpec) Build() (property.Value, error) {
	if s.count() != 1 {
		return nil, status.ErrValueSpec
	}

	switch {
	case s.String != nil:
		return property.NewXsString(*s.String), nil
	case s.Integer != nil:
		return property.NewXsInteger(*s.Integer), nil
	case s.Double != nil:
		return property.NewXsDouble(*s.Double), nil
	case s.Boolean != nil:
		return property.NewXsBoolean(*s.Boolean), nil
	case s.Point != nil:
		return asValue(property.NewGmlPoint(*s.Point))
	case s.LineString != nil:
		return asValue(property.NewGmlLineString(s.LineString...))
	case s.Instant != nil:
		return asValue(buildInstant(*s.Instant))
	case s.Period != nil:
		return asValue(s.Period.Build())
	case s.Constant != nil:
		return asValue(s.Constant.Build())
	default:
		return asValue(s.Sampling.Build())
	}
}

// asValue avoids non-nil interfaces holding a nil value
func asValue[V property.Value](v V, err error) (property.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func buildInstant(at string) (*property.GmlTimeInstant, error) {
	t, err := property.ParseGeoTime(at)
	if err != nil {
		return nil, err
	}
	return property.NewGmlTimeInstant(t), nil
}

// Build a detached time period
func (s PeriodSpec) Build() (*property.GmlTimePeriod, error) {
	begin, err := buildInstant(s.Begin)
	if err != nil {
		return nil, err
	}
	end, err := buildInstant(s.End)
	if err != nil {
		return nil, err
	}
	return property.NewGmlTimePeriod(begin, end)
}

// Build a detached constant value
func (s ConstantSpec) Build() (*property.GpmlConstantValue, error) {
	v, err := s.Value.Build()
	if err != nil {
		return nil, err
	}
	return property.NewGpmlConstantValue(v, s.Description)
}

// Build a detached time sample
func (s SampleSpec) Build() (*property.GpmlTimeSample, error) {
	v, err := s.Value.Build()
	if err != nil {
		return nil, err
	}
	at, err := buildInstant(s.Time)
	if err != nil {
		return nil, err
	}
	sample, err := property.NewGpmlTimeSample(v, at, s.Description)
	if err != nil {
		return nil, err
	}
	if s.Disabled {
		if err := sample.SetDisabled(true); err != nil {
			return nil, err
		}
	}
	return sample, nil
}

// Build a detached irregular sampling
func (s SamplingSpec) Build() (*property.GpmlIrregularSampling, error) {
	samples := make([]*property.GpmlTimeSample, 0, len(s.Samples))
	for _, spec := range s.Samples {
		sample, err := spec.Build()
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
	}

	valueType := revision.Kind(s.Type)
	if valueType == "" && len(samples) > 0 {
		valueType = samples[0].Value().Kind()
	}
	if valueType == "" {
		return nil, status.ErrValueSpec.WrapMessage("a sampling with no sample requires a value type")
	}
	return property.NewGpmlIrregularSampling(valueType, samples...)
}

// Build a detached top-level property
func (s PropertySpec) Build() (*model.TopLevelProperty, error) {
	values := make([]property.Value, 0, len(s.Values))
	for _, spec := range s.Values {
		v, err := spec.Build()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	p, err := model.NewTopLevelProperty(s.Name, values...)
	if err != nil {
		return nil, err
	}
	for k, v := range s.Attributes {
		if err := p.SetAttribute(k, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Build a detached feature
func (s FeatureSpec) Build() (*model.Feature, error) {
	properties := make([]*model.TopLevelProperty, 0, len(s.Properties))
	for _, spec := range s.Properties {
		p, err := spec.Build()
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	opts := []model.FeatureOption{model.WithProperties(properties...)}
	if s.ID != "" {
		id, err := model.ParseFeatureID(s.ID)
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.WithID(id))
	}
	return model.NewFeature(s.Type, opts...)
}
