package model

import (
	"github.com/oneconcern/gpmodel/pkg/model/status"
	"github.com/oneconcern/gpmodel/pkg/revision"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

var _ revision.Context = &Feature{}

// Feature is an identified, typed, set of top-level properties
type Feature struct {
	recordOwner
	id FeatureID
}

type featureRevision struct {
	recordBase
	featureType string
	properties  revision.References[*TopLevelProperty]
}

func (r *featureRevision) Kind() revision.Kind {
	return KindFeature
}

func (r *featureRevision) Clone(ctx revision.Context) revision.Revision {
	return &featureRevision{
		recordBase:  newBase(ctx),
		featureType: r.featureType,
		properties:  r.properties.Clone(),
	}
}

func (r *featureRevision) Equal(other revision.Revision) bool {
	o := revision.Peer[*featureRevision](other)
	return r.featureType == o.featureType && r.properties.Equal(o.properties)
}

// FeatureOption is a functor to build a feature with some options
type FeatureOption func(*featureOptions)

type featureOptions struct {
	id         FeatureID
	properties []*TopLevelProperty
}

// WithID sets the feature id, instead of generating a new one
func WithID(id FeatureID) FeatureOption {
	return func(o *featureOptions) {
		o.id = id
	}
}

// WithProperties adds detached properties to the new feature
func WithProperties(properties ...*TopLevelProperty) FeatureOption {
	return func(o *featureOptions) {
		o.properties = append(o.properties, properties...)
	}
}

// NewFeature builds a detached feature of some type, e.g. "gpml:Coastline"
func NewFeature(featureType string, opts ...FeatureOption) (*Feature, error) {
	if featureType == "" {
		return nil, status.ErrEmptyName
	}
	o := featureOptions{}
	for _, apply := range opts {
		apply(&o)
	}
	if o.id == "" {
		o.id = NewFeatureID()
	}

	f := &Feature{id: o.id}
	err := f.Init(f, func(tx *revision.Transaction) (revision.Revision, error) {
		rev := &featureRevision{
			featureType: featureType,
			properties:  make(revision.References[*TopLevelProperty], 0, len(o.properties)),
		}
		for _, p := range o.properties {
			ref, err := revision.Attach(tx, f, p)
			if err != nil {
				return nil, err
			}
			rev.properties = append(rev.properties, ref)
		}
		return rev, nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Feature) current() *featureRevision {
	return current[*featureRevision](f)
}

// ID of the feature
func (f *Feature) ID() FeatureID {
	return f.id
}

// Type of the feature
func (f *Feature) Type() string {
	return f.current().featureType
}

// SetType changes the type of the feature
func (f *Feature) SetType(featureType string) error {
	if featureType == "" {
		return status.ErrEmptyName
	}
	return update(f, func(_ *revision.Transaction, r *featureRevision) error {
		r.featureType = featureType
		return nil
	})
}

// Collection yields the collection holding this feature, if any
func (f *Feature) Collection() *FeatureCollection {
	c, _ := f.Context().(*FeatureCollection)
	return c
}

// Properties yields all top-level properties, in order
func (f *Feature) Properties() []*TopLevelProperty {
	return f.current().properties.Children()
}

// PropertiesNamed yields the top-level properties with some name
func (f *Feature) PropertiesNamed(name string) []*TopLevelProperty {
	var named []*TopLevelProperty
	for _, p := range f.Properties() {
		if p.Name() == name {
			named = append(named, p)
		}
	}
	return named
}

// Property yields the first top-level property with some name
func (f *Feature) Property(name string) (*TopLevelProperty, bool) {
	named := f.PropertiesNamed(name)
	if len(named) == 0 {
		return nil, false
	}
	return named[0], true
}

// AddProperty appends a detached property
func (f *Feature) AddProperty(p *TopLevelProperty) error {
	return update(f, func(tx *revision.Transaction, r *featureRevision) error {
		ref, err := revision.Attach(tx, f, p)
		if err != nil {
			return err
		}
		r.properties = append(r.properties, ref)
		return nil
	})
}

// RemoveProperty detaches a property from the feature
func (f *Feature) RemoveProperty(p *TopLevelProperty) error {
	if p == nil {
		return status.ErrPropertyNotFound
	}
	if f.current().properties.IndexOf(p) < 0 {
		return status.ErrPropertyNotFound
	}
	return update(f, func(tx *revision.Transaction, r *featureRevision) error {
		i := r.properties.IndexOf(p)
		r.properties[i].Detach(tx)
		r.properties = append(r.properties[:i:i], r.properties[i+1:]...)
		return nil
	})
}

// ReplaceProperty replaces a property of the feature by another, detached, property, in place
func (f *Feature) ReplaceProperty(former, p *TopLevelProperty) error {
	if former == nil {
		return status.ErrPropertyNotFound
	}
	if f.current().properties.IndexOf(former) < 0 {
		return status.ErrPropertyNotFound
	}
	return update(f, func(tx *revision.Transaction, r *featureRevision) error {
		return r.properties[r.properties.IndexOf(former)].Change(tx, p)
	})
}

func (f *Feature) String() string {
	return f.Type() + "<" + f.id.String() + ">"
}

// BubbleUp clones the edited property slot
func (f *Feature) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*featureRevision](f, tx)
	if err != nil {
		return nil, err
	}
	if rev.properties.IndexOf(child) < 0 {
		panic(revision.Invariant(revstatus.ErrChildNotFound,
			zap.Stringer("feature", f.id),
			zap.Stringer("child", child.Revision().Kind()),
		))
	}
	return rev.properties.CloneRevision(tx, child), nil
}

// CloneInto deeply clones the feature into ctx. The clone has a new feature id.
func (f *Feature) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	return f.cloneInto(ctx)
}

// Clone deeply clones the feature. The clone is detached and has a new feature id.
func (f *Feature) Clone() (*Feature, error) {
	return f.cloneInto(nil)
}

func (f *Feature) cloneInto(ctx revision.Context) (*Feature, error) {
	src := f.current()
	c := &Feature{id: NewFeatureID()}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		properties, err := src.properties.DeepClone(c)
		if err != nil {
			return nil, err
		}
		return &featureRevision{recordBase: newBase(ctx), featureType: src.featureType, properties: properties}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
