package model

import (
	"strings"

	"github.com/oneconcern/gpmodel/pkg/model/status"
	"github.com/segmentio/ksuid"
)

const featureIDPrefix = "GPlates-"

// FeatureID uniquely identifies a feature. It never changes during the lifetime of the feature.
type FeatureID string

// NewFeatureID generates a new, unique, feature id
func NewFeatureID() FeatureID {
	return FeatureID(featureIDPrefix + ksuid.New().String())
}

// ParseFeatureID checks an externally provided feature id
func ParseFeatureID(s string) (FeatureID, error) {
	if !strings.HasPrefix(s, featureIDPrefix) || len(s) == len(featureIDPrefix) {
		return "", status.ErrInvalidFeatureID.WrapMessage(s)
	}
	return FeatureID(s), nil
}

func (id FeatureID) String() string {
	return string(id)
}
