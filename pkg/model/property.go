package model

import (
	"maps"
	"slices"
	"strings"

	"github.com/oneconcern/gpmodel/pkg/model/status"
	"github.com/oneconcern/gpmodel/pkg/property"
	"github.com/oneconcern/gpmodel/pkg/revision"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/zap"
)

var _ revision.Context = &TopLevelProperty{}

// TopLevelProperty is a named property of a feature, holding an ordered vector of property values.
//
// XML attributes of the property are kept as a plain map, copied on each edit.
type TopLevelProperty struct {
	recordOwner
}

type propertyRevision struct {
	recordBase
	name       string
	attributes map[string]string
	values     revision.Reference[*revision.Vector[property.Value]]
}

func (r *propertyRevision) Kind() revision.Kind {
	return KindTopLevelProperty
}

func (r *propertyRevision) Clone(ctx revision.Context) revision.Revision {
	return &propertyRevision{
		recordBase: newBase(ctx),
		name:       r.name,
		attributes: maps.Clone(r.attributes),
		values:     r.values,
	}
}

func (r *propertyRevision) Equal(other revision.Revision) bool {
	o := revision.Peer[*propertyRevision](other)
	return r.name == o.name && maps.Equal(r.attributes, o.attributes) && r.values.Equal(o.values)
}

// NewTopLevelProperty builds a property from detached values
func NewTopLevelProperty(name string, values ...property.Value) (*TopLevelProperty, error) {
	if name == "" {
		return nil, status.ErrEmptyName
	}
	vec, err := revision.NewVector(property.KindValue, values...)
	if err != nil {
		return nil, err
	}

	p := &TopLevelProperty{}
	err = p.Init(p, func(tx *revision.Transaction) (revision.Revision, error) {
		ref, err := revision.Attach(tx, p, vec)
		if err != nil {
			return nil, err
		}
		return &propertyRevision{name: name, values: ref}, nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *TopLevelProperty) current() *propertyRevision {
	return current[*propertyRevision](p)
}

// Name of the property
func (p *TopLevelProperty) Name() string {
	return p.current().name
}

// SetName renames the property
func (p *TopLevelProperty) SetName(name string) error {
	if name == "" {
		return status.ErrEmptyName
	}
	return update(p, func(_ *revision.Transaction, r *propertyRevision) error {
		r.name = name
		return nil
	})
}

// Attributes yields a copy of the XML attributes of the property
func (p *TopLevelProperty) Attributes() map[string]string {
	return maps.Clone(p.current().attributes)
}

// Attribute yields the value of one XML attribute
func (p *TopLevelProperty) Attribute(key string) (string, bool) {
	v, ok := p.current().attributes[key]
	return v, ok
}

// SetAttribute sets one XML attribute
func (p *TopLevelProperty) SetAttribute(key, value string) error {
	return update(p, func(_ *revision.Transaction, r *propertyRevision) error {
		if r.attributes == nil {
			r.attributes = make(map[string]string, 1)
		}
		r.attributes[key] = value
		return nil
	})
}

// RemoveAttribute removes one XML attribute
func (p *TopLevelProperty) RemoveAttribute(key string) error {
	if _, ok := p.Attribute(key); !ok {
		return nil
	}
	return update(p, func(_ *revision.Transaction, r *propertyRevision) error {
		delete(r.attributes, key)
		return nil
	})
}

// ValueVector yields the revisioned vector of property values. Edits to the vector bubble up to the property.
func (p *TopLevelProperty) ValueVector() *revision.Vector[property.Value] {
	return p.current().values.Get()
}

// Values yields the property values
func (p *TopLevelProperty) Values() []property.Value {
	return p.ValueVector().Elements()
}

// Value yields the first property value, if any
func (p *TopLevelProperty) Value() (property.Value, bool) {
	vec := p.ValueVector()
	if vec.Len() == 0 {
		return nil, false
	}
	return vec.At(0), true
}

// AppendValues appends detached values to the property
func (p *TopLevelProperty) AppendValues(values ...property.Value) error {
	return p.ValueVector().Append(values...)
}

// Feature yields the feature holding this property, if any
func (p *TopLevelProperty) Feature() *Feature {
	f, _ := p.Context().(*Feature)
	return f
}

func (p *TopLevelProperty) String() string {
	var b strings.Builder
	b.WriteString(p.Name())
	attrs := p.current().attributes
	if len(attrs) > 0 {
		keys := slices.Sorted(maps.Keys(attrs))
		b.WriteString("[")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(k + "=" + attrs[k])
		}
		b.WriteString("]")
	}
	values := p.Values()
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, v.String())
	}
	b.WriteString(": ")
	b.WriteString(strings.Join(parts, ", "))
	return b.String()
}

// BubbleUp clones the value vector for an edit
func (p *TopLevelProperty) BubbleUp(tx *revision.Transaction, child revision.Revisionable) (revision.Revision, error) {
	rev, err := bubbleUp[*propertyRevision](p, tx)
	if err != nil {
		return nil, err
	}
	if !rev.values.Is(child) {
		panic(revision.Invariant(revstatus.ErrChildNotFound,
			zap.String("property", rev.name),
			zap.Stringer("child", child.Revision().Kind()),
		))
	}
	return rev.values.CloneRevision(tx), nil
}

// CloneInto deeply clones the property into ctx
func (p *TopLevelProperty) CloneInto(ctx revision.Context) (revision.Revisionable, error) {
	return p.cloneInto(ctx)
}

// Clone deeply clones the property. The clone is detached.
func (p *TopLevelProperty) Clone() (*TopLevelProperty, error) {
	return p.cloneInto(nil)
}

func (p *TopLevelProperty) cloneInto(ctx revision.Context) (*TopLevelProperty, error) {
	src := p.current()
	c := &TopLevelProperty{}
	err := c.Init(c, func(*revision.Transaction) (revision.Revision, error) {
		values, err := src.values.Clone(c)
		if err != nil {
			return nil, err
		}
		return &propertyRevision{
			recordBase: newBase(ctx),
			name:       src.name,
			attributes: maps.Clone(src.attributes),
			values:     values,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
