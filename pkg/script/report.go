package script

import (
	"github.com/oneconcern/gpmodel/pkg/model"
)

// Status of an edit
type Status string

// Edit statuses
const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Report describes the outcome of a script run
type Report struct {
	Guarded bool         `json:"guarded" yaml:"guarded"`
	Events  int          `json:"events" yaml:"events"`
	Edits   []EditResult `json:"edits" yaml:"edits"`

	// Changes reported by the consolidated event of a guarded run
	Changes *Changes `json:"changes,omitempty" yaml:"changes,omitempty"`
}

// EditResult is the outcome of one edit
type EditResult struct {
	Step    int     `json:"step" yaml:"step"`
	Op      string  `json:"op" yaml:"op"`
	Target  string  `json:"target,omitempty" yaml:"target,omitempty"`
	Status  Status  `json:"status" yaml:"status"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
	Changes Changes `json:"changes" yaml:"changes"`
}

// Changes lists features by alias, or by id for features with no alias
type Changes struct {
	Added   []string `json:"added,omitempty" yaml:"added,omitempty"`
	Deleted []string `json:"deleted,omitempty" yaml:"deleted,omitempty"`
	Updated []string `json:"updated,omitempty" yaml:"updated,omitempty"`
}

// Failed counts failed edits
func (r *Report) Failed() int {
	n := 0
	for _, e := range r.Edits {
		if e.Status == StatusFailed {
			n++
		}
	}
	return n
}

func (c *Changes) merge(set model.ChangeSet, name func(*model.Feature) string) {
	for _, f := range set.Added {
		c.Added = append(c.Added, name(f))
	}
	for _, f := range set.Deleted {
		c.Deleted = append(c.Deleted, name(f))
	}
	for _, f := range set.Updated {
		c.Updated = append(c.Updated, name(f))
	}
}
