package script

import (
	"github.com/oneconcern/gpmodel/pkg/model"
	modelstatus "github.com/oneconcern/gpmodel/pkg/model/status"
	"github.com/oneconcern/gpmodel/pkg/property"
	revstatus "github.com/oneconcern/gpmodel/pkg/revision/status"
	"github.com/oneconcern/gpmodel/pkg/script/status"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RunOptions tune a script run
type RunOptions struct {
	// Guarded runs all edits within one notification guard: one consolidated event is emitted at the end
	Guarded bool

	// ContinueOnError runs the remaining edits after a failed edit. Otherwise they are skipped.
	ContinueOnError bool

	// ReadOnly locks the model once the collections of the script are built
	ReadOnly bool

	Logger *zap.Logger
}

type runner struct {
	*built
	logger  *zap.Logger
	changes *Changes
}

type operation func(*runner, Edit) error

var operations = map[string]operation{
	OpSet:              (*runner).set,
	OpAppendValue:      (*runner).appendValue,
	OpAddFeature:       (*runner).addFeature,
	OpRemoveFeature:    (*runner).removeFeature,
	OpAddProperty:      (*runner).addProperty,
	OpRemoveProperty:   (*runner).removeProperty,
	OpSetType:          (*runner).setType,
	OpSetAttribute:     (*runner).setAttribute,
	OpMovePoint:        (*runner).movePoint,
	OpAppendSample:     (*runner).appendSample,
	OpRemoveSample:     (*runner).removeSample,
	OpRenameCollection: (*runner).renameCollection,
	OpReadOnly:         (*runner).readOnly,
}

// Run builds the script into m, then applies its edits in order.
//
// The report lists the outcome of every edit, along with the features each edit changed.
// Unless ContinueOnError is set, the first failed edit stops the run and is returned, wrapped as ErrEdit.
func (s *Script) Run(m *model.Model, opts RunOptions) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := s.Build(m); err != nil {
		return nil, err
	}
	if opts.ReadOnly {
		m.SetReadOnly(true)
	}

	r := &runner{built: s.built, logger: logger}
	report := &Report{Guarded: opts.Guarded, Edits: make([]EditResult, 0, len(s.Edits))}

	cancel := m.Subscribe(func(e model.Event) error {
		report.Events++
		if r.changes != nil {
			r.changes.merge(e.Changes(), r.name)
		}
		return nil
	})
	defer cancel()

	var guard *model.NotificationGuard
	if opts.Guarded {
		guard = m.Guard()
	}

	var failed error
	for i, edit := range s.Edits {
		result := EditResult{Step: i + 1, Op: edit.Op, Target: edit.Target()}
		if failed != nil {
			result.Status = StatusSkipped
			report.Edits = append(report.Edits, result)
			continue
		}

		r.changes = &result.Changes
		err := r.apply(edit)
		r.changes = nil

		if err != nil {
			result.Status = StatusFailed
			result.Error = err.Error()
			if opts.ContinueOnError {
				logger.Warn("script: edit failed", zap.Int("step", result.Step), zap.String("op", edit.Op), zap.Error(err))
			} else {
				failed = status.ErrEdit.WrapWithLog(logger, err, zap.Int("step", result.Step), zap.String("op", edit.Op))
			}
		} else {
			result.Status = StatusOK
			logger.Debug("script: edit applied", zap.Int("step", result.Step), zap.String("op", edit.Op))
		}
		report.Edits = append(report.Edits, result)
	}

	if guard != nil {
		report.Changes = &Changes{}
		r.changes = report.Changes
		failed = multierr.Append(failed, guard.Release())
		r.changes = nil
	}

	return report, failed
}

func (r *runner) apply(e Edit) error {
	op, ok := operations[e.Op]
	if !ok {
		return status.ErrUnknownOp.WrapMessage(e.Op)
	}
	return op(r, e)
}

func (r *runner) collection(e Edit) (*model.FeatureCollection, error) {
	if e.Collection == "" {
		return nil, status.ErrMissingArgument.WrapMessage("collection")
	}
	c, ok := r.model.Store().Find(e.Collection)
	if !ok {
		return nil, status.ErrUnknownCollection.WrapMessage(e.Collection)
	}
	return c, nil
}

func (r *runner) property(e Edit) (*model.Feature, *model.TopLevelProperty, error) {
	f, err := r.feature(e.Feature)
	if err != nil {
		return nil, nil, err
	}
	p, ok := f.Property(e.Property)
	if !ok {
		return nil, nil, status.ErrUnknownProperty.WrapMessage(e.Property)
	}
	return f, p, nil
}

func (r *runner) value(e Edit) (property.Value, error) {
	_, p, err := r.property(e)
	if err != nil {
		return nil, err
	}
	vec := p.ValueVector()
	if e.Index < 0 || e.Index >= vec.Len() {
		return nil, revstatus.ErrIndexOutOfRange
	}
	return vec.At(e.Index), nil
}

func buildValue(spec *ValueSpec) (property.Value, error) {
	if spec == nil {
		return nil, status.ErrMissingArgument.WrapMessage("value")
	}
	return spec.Build()
}

// set changes a scalar value in place, or replaces a value by another
func (r *runner) set(e Edit) error {
	current, err := r.value(e)
	if err != nil {
		return err
	}
	if e.Value == nil {
		return status.ErrMissingArgument.WrapMessage("value")
	}
	if done, err := setInPlace(current, *e.Value); done {
		return err
	}

	v, err := e.Value.Build()
	if err != nil {
		return err
	}
	_, p, _ := r.property(e)
	return p.ValueVector().Set(e.Index, v)
}

func setInPlace(current property.Value, spec ValueSpec) (bool, error) {
	if spec.count() != 1 {
		return false, nil
	}
	switch v := current.(type) {
	case *property.XsString:
		if spec.String != nil {
			return true, v.SetValue(*spec.String)
		}
	case *property.XsInteger:
		if spec.Integer != nil {
			return true, v.SetValue(*spec.Integer)
		}
	case *property.XsDouble:
		if spec.Double != nil {
			return true, v.SetValue(*spec.Double)
		}
	case *property.XsBoolean:
		if spec.Boolean != nil {
			return true, v.SetValue(*spec.Boolean)
		}
	case *property.GmlPoint:
		if spec.Point != nil {
			return true, v.Move(*spec.Point)
		}
	case *property.GmlTimeInstant:
		if spec.Instant != nil {
			t, err := property.ParseGeoTime(*spec.Instant)
			if err != nil {
				return true, err
			}
			return true, v.SetTime(t)
		}
	case *property.GpmlConstantValue:
		if done, err := setInPlace(v.Value(), spec); done {
			return true, err
		}
	}
	return false, nil
}

func (r *runner) appendValue(e Edit) error {
	_, p, err := r.property(e)
	if err != nil {
		return err
	}
	v, err := buildValue(e.Value)
	if err != nil {
		return err
	}
	return p.AppendValues(v)
}

func (r *runner) addFeature(e Edit) error {
	c, err := r.collection(e)
	if err != nil {
		return err
	}
	if e.NewFeature == nil {
		return status.ErrMissingArgument.WrapMessage("newFeature")
	}
	alias := e.NewFeature.Alias
	if _, dup := r.features[alias]; dup && alias != "" {
		return status.ErrDuplicateAlias.WrapMessage(alias)
	}

	f, err := e.NewFeature.Build()
	if err != nil {
		return err
	}
	if alias != "" {
		r.alias(alias, f)
	}
	if err := c.Add(f); err != nil {
		if alias != "" {
			delete(r.features, alias)
			delete(r.aliases, f)
		}
		return err
	}
	return nil
}

func (r *runner) removeFeature(e Edit) error {
	f, err := r.feature(e.Feature)
	if err != nil {
		return err
	}
	c := f.Collection()
	if c == nil {
		return modelstatus.ErrFeatureNotFound.WrapMessage(e.Feature)
	}
	return c.Remove(f)
}

func (r *runner) addProperty(e Edit) error {
	f, err := r.feature(e.Feature)
	if err != nil {
		return err
	}
	if e.NewProperty == nil {
		return status.ErrMissingArgument.WrapMessage("newProperty")
	}
	p, err := e.NewProperty.Build()
	if err != nil {
		return err
	}
	return f.AddProperty(p)
}

func (r *runner) removeProperty(e Edit) error {
	f, p, err := r.property(e)
	if err != nil {
		return err
	}
	return f.RemoveProperty(p)
}

func (r *runner) setType(e Edit) error {
	f, err := r.feature(e.Feature)
	if err != nil {
		return err
	}
	return f.SetType(e.To)
}

func (r *runner) setAttribute(e Edit) error {
	_, p, err := r.property(e)
	if err != nil {
		return err
	}
	if e.Key == "" {
		return status.ErrMissingArgument.WrapMessage("key")
	}
	return p.SetAttribute(e.Key, e.To)
}

func (r *runner) movePoint(e Edit) error {
	current, err := r.value(e)
	if err != nil {
		return err
	}
	if e.Position == nil {
		return status.ErrMissingArgument.WrapMessage("position")
	}
	switch v := current.(type) {
	case *property.GmlPoint:
		return v.Move(*e.Position)
	case *property.GmlLineString:
		return v.MovePoint(e.Item, *e.Position)
	default:
		return status.ErrTarget.WrapMessage(current.Kind().String())
	}
}

func (r *runner) sampling(e Edit) (*property.GpmlIrregularSampling, error) {
	current, err := r.value(e)
	if err != nil {
		return nil, err
	}
	s, ok := current.(*property.GpmlIrregularSampling)
	if !ok {
		return nil, status.ErrTarget.WrapMessage(current.Kind().String())
	}
	return s, nil
}

func (r *runner) appendSample(e Edit) error {
	s, err := r.sampling(e)
	if err != nil {
		return err
	}
	if e.Sample == nil {
		return status.ErrMissingArgument.WrapMessage("sample")
	}
	sample, err := e.Sample.Build()
	if err != nil {
		return err
	}
	return s.AddSamples(sample)
}

func (r *runner) removeSample(e Edit) error {
	s, err := r.sampling(e)
	if err != nil {
		return err
	}
	_, err = s.RemoveSample(e.Item)
	return err
}

func (r *runner) renameCollection(e Edit) error {
	c, err := r.collection(e)
	if err != nil {
		return err
	}
	if e.To == "" {
		return status.ErrMissingArgument.WrapMessage("to")
	}
	return c.SetFilename(e.To)
}

func (r *runner) readOnly(e Edit) error {
	if e.Enabled == nil {
		return status.ErrMissingArgument.WrapMessage("enabled")
	}
	r.model.SetReadOnly(*e.Enabled)
	return nil
}
