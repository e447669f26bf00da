package model

import (
	"go.uber.org/zap"
)

// Option is a functor to build a model with some options
type Option func(*Model)

// Logger sets the logger of the model
func Logger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Metrics toggles metrics collection on notifications
func Metrics(enabled bool) Option {
	return func(m *Model) {
		m.EnableMetrics(enabled)
	}
}

// ReadOnly makes the model reject all edits
func ReadOnly(readOnly bool) Option {
	return func(m *Model) {
		m.readOnly = readOnly
	}
}
