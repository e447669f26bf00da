package script

import (
	"strconv"

	"github.com/oneconcern/gpmodel/pkg/property"
)

// Edit operations
const (
	OpSet              = "set"
	OpAppendValue      = "appendValue"
	OpAddFeature       = "addFeature"
	OpRemoveFeature    = "removeFeature"
	OpAddProperty      = "addProperty"
	OpRemoveProperty   = "removeProperty"
	OpSetType          = "setType"
	OpSetAttribute     = "setAttribute"
	OpMovePoint        = "movePoint"
	OpAppendSample     = "appendSample"
	OpRemoveSample     = "removeSample"
	OpRenameCollection = "renameCollection"
	OpReadOnly         = "readOnly"
)

// Edit is one operation of a script.
//
// Features are addressed by alias; values by property name and index within the property;
// points of a line string and samples of a sampling by item.
type Edit struct {
	Op          string           `yaml:"op" json:"op"`
	Feature     string           `yaml:"feature,omitempty" json:"feature,omitempty"`
	Collection  string           `yaml:"collection,omitempty" json:"collection,omitempty"`
	Property    string           `yaml:"property,omitempty" json:"property,omitempty"`
	Index       int              `yaml:"index,omitempty" json:"index,omitempty"`
	Item        int              `yaml:"item,omitempty" json:"item,omitempty"`
	Value       *ValueSpec       `yaml:"value,omitempty" json:"value,omitempty"`
	Position    *property.LatLon `yaml:"position,omitempty" json:"position,omitempty"`
	Sample      *SampleSpec      `yaml:"sample,omitempty" json:"sample,omitempty"`
	NewFeature  *FeatureSpec     `yaml:"newFeature,omitempty" json:"newFeature,omitempty"`
	NewProperty *PropertySpec    `yaml:"newProperty,omitempty" json:"newProperty,omitempty"`
	Key         string           `yaml:"key,omitempty" json:"key,omitempty"`
	To          string           `yaml:"to,omitempty" json:"to,omitempty"`
	Enabled     *bool            `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// Target describes what the edit addresses, e.g. "africa/gml:name[0]"
func (e Edit) Target() string {
	var target string
	switch {
	case e.Feature != "":
		target = e.Feature
	case e.Collection != "":
		target = e.Collection
	default:
		return ""
	}
	if e.Property == "" {
		return target
	}
	return target + "/" + e.Property + "[" + strconv.Itoa(e.Index) + "]"
}
