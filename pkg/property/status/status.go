// Package status exports errors produced by the property package.
package status

import (
	"github.com/oneconcern/gpmodel/pkg/errors"
)

var (
	// ErrInvalidCoordinate indicates a latitude or longitude out of range
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidPeriod indicates a time period which begins after it ends
	ErrInvalidPeriod = errors.New("time period begins after it ends")

	// ErrInvalidTime indicates a geological time which cannot be parsed
	ErrInvalidTime = errors.New("invalid geological time")

	// ErrValueType indicates a property value of an unexpected type
	ErrValueType = errors.New("unexpected property value type")

	// ErrTooFewPoints indicates a line string with less than two points
	ErrTooFewPoints = errors.New("a line string requires at least two points")
)
