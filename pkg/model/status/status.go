// Package status exports errors produced by the model package.
package status

import (
	"github.com/oneconcern/gpmodel/pkg/errors"
)

var (
	// ErrReadOnly indicates an edit to a read-only model
	ErrReadOnly = errors.New("model is read-only")

	// ErrCollectionNotFound indicates a feature collection which is not in the store
	ErrCollectionNotFound = errors.New("feature collection not found")

	// ErrFeatureNotFound indicates a feature which is not in the collection
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrPropertyNotFound indicates a property which is not in the feature
	ErrPropertyNotFound = errors.New("property not found")

	// ErrDuplicateFeature indicates a feature id already present in a collection
	ErrDuplicateFeature = errors.New("duplicate feature id")

	// ErrInvalidFeatureID indicates a malformed feature id
	ErrInvalidFeatureID = errors.New("invalid feature id")

	// ErrEmptyName indicates a property or a feature type with no name
	ErrEmptyName = errors.New("name cannot be empty")
)
