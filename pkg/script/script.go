package script

import (
	"github.com/oneconcern/gpmodel/pkg/model"
	"github.com/oneconcern/gpmodel/pkg/script/status"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Script describes feature collections and edits to apply to them
type Script struct {
	Collections []CollectionSpec `yaml:"collections" json:"collections"`
	Edits       []Edit           `yaml:"edits,omitempty" json:"edits,omitempty"`

	built *built
}

// built holds the features declared by a script, once added to a model
type built struct {
	model    *model.Model
	features map[string]*model.Feature
	aliases  map[*model.Feature]string
}

// Load a script from a file
func Load(fs afero.Fs, path string) (*Script, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, status.ErrRead.Wrap(err)
	}
	return Parse(data)
}

// Parse a YAML script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.UnmarshalStrict(data, s); err != nil {
		return nil, status.ErrParse.Wrap(err)
	}
	seen := make(map[string]struct{})
	for _, c := range s.Collections {
		for _, f := range c.Features {
			if f.Alias == "" {
				continue
			}
			if _, dup := seen[f.Alias]; dup {
				return nil, status.ErrDuplicateAlias.WrapMessage(f.Alias)
			}
			seen[f.Alias] = struct{}{}
		}
	}
	return s, nil
}

// Build adds the collections of the script to the store of m, in one edit
func (s *Script) Build(m *model.Model) error {
	b := &built{
		model:    m,
		features: make(map[string]*model.Feature),
		aliases:  make(map[*model.Feature]string),
	}

	collections := make([]*model.FeatureCollection, 0, len(s.Collections))
	for _, spec := range s.Collections {
		features := make([]*model.Feature, 0, len(spec.Features))
		for _, fs := range spec.Features {
			f, err := fs.Build()
			if err != nil {
				return status.ErrBuild.Wrap(err)
			}
			features = append(features, f)
			if fs.Alias != "" {
				b.alias(fs.Alias, f)
			}
		}
		c, err := model.NewFeatureCollection(spec.Filename, features...)
		if err != nil {
			return status.ErrBuild.Wrap(err)
		}
		collections = append(collections, c)
	}

	if err := m.Store().Add(collections...); err != nil {
		return status.ErrBuild.Wrap(err)
	}
	s.built = b
	return nil
}

// Feature yields the feature declared with some alias, once built
func (s *Script) Feature(alias string) (*model.Feature, bool) {
	if s.built == nil {
		return nil, false
	}
	f, ok := s.built.features[alias]
	return f, ok
}

func (b *built) alias(alias string, f *model.Feature) {
	b.features[alias] = f
	b.aliases[f] = alias
}

func (b *built) feature(alias string) (*model.Feature, error) {
	f, ok := b.features[alias]
	if !ok {
		return nil, status.ErrUnknownAlias.WrapMessage(alias)
	}
	return f, nil
}

// name of a feature in reports: its alias, or its id
func (b *built) name(f *model.Feature) string {
	if alias, ok := b.aliases[f]; ok {
		return alias
	}
	return f.ID().String()
}
