// Package status exports errors produced by the script package.
package status

import (
	"github.com/oneconcern/gpmodel/pkg/errors"
)

var (
	// ErrRead indicates a script file which cannot be read
	ErrRead = errors.New("cannot read script")

	// ErrParse indicates a script which is not valid YAML, or has unknown fields
	ErrParse = errors.New("cannot parse script")

	// ErrValueSpec indicates a value descriptor with no value, or with several values
	ErrValueSpec = errors.New("a value descriptor requires exactly one value")

	// ErrDuplicateAlias indicates a feature alias declared twice
	ErrDuplicateAlias = errors.New("duplicate feature alias")

	// ErrUnknownAlias indicates an edit addressing an undeclared feature alias
	ErrUnknownAlias = errors.New("unknown feature alias")

	// ErrUnknownCollection indicates an edit addressing a collection which is not in the store
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrUnknownProperty indicates an edit addressing a property which is not in the feature
	ErrUnknownProperty = errors.New("unknown property")

	// ErrUnknownOp indicates an unsupported edit operation
	ErrUnknownOp = errors.New("unknown edit operation")

	// ErrTarget indicates an edit addressing a value which does not support it
	ErrTarget = errors.New("edit does not apply to this value")

	// ErrMissingArgument indicates an edit lacking some argument
	ErrMissingArgument = errors.New("missing edit argument")

	// ErrBuild indicates a failure to build the features described by a script
	ErrBuild = errors.New("cannot build script features")

	// ErrEdit indicates a failed edit
	ErrEdit = errors.New("edit failed")
)
