// Package revision implements revisioned objects.
//
// Every mutable object of the domain model is an owner holding exactly one current
// revision: an immutable snapshot of its state. Edits never touch a published revision.
// Instead, a Handler walks from the edited owner up through its parent contexts,
// cloning one revision per level into a Transaction, and lets the caller fill the new
// leaf revision. Commit then swaps every owner's current revision in one step.
//
// Unmodified children are shared between sibling revisions. A revision only holds a
// weak link to its parent context: children never keep their parents alive.
//
// The package is not safe for concurrent use. An object graph is meant to be edited
// from a single goroutine.
package revision
