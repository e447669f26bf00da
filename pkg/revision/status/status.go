// Package status exports errors produced by the revision package.
package status

import (
	"github.com/oneconcern/gpmodel/pkg/errors"
)

var (
	// ErrChildNotFound indicates that a context received a bubble-up from an owner it does not contain
	ErrChildNotFound = errors.New("child not found in context")

	// ErrKindMismatch indicates that revisions of different concrete types were compared
	ErrKindMismatch = errors.New("revision kind mismatch")

	// ErrRevisionType indicates that a bubble-up produced a revision of an unexpected type
	ErrRevisionType = errors.New("unexpected revision type")

	// ErrNotInitialized indicates that an owner was used before its initial revision was set
	ErrNotInitialized = errors.New("owner has no revision")

	// ErrInitialized indicates that an owner was initialized twice
	ErrInitialized = errors.New("owner is already initialized")

	// ErrOwnerMismatch indicates that an owner was initialized on behalf of a value that does not embed it
	ErrOwnerMismatch = errors.New("owner does not belong to this value")

	// ErrNotContext indicates that an owner was used as a context but cannot contain children
	ErrNotContext = errors.New("owner is not a revision context")

	// ErrAttached indicates an attempt to attach a child that already has a context
	ErrAttached = errors.New("child is already attached to a context")

	// ErrIndexOutOfRange indicates an invalid position in a vector
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrValueCopy indicates that a plain value could not be deep-copied
	ErrValueCopy = errors.New("cannot copy value")

	// ErrBuild indicates that the initial revision of an owner could not be built
	ErrBuild = errors.New("cannot build initial revision")
)
