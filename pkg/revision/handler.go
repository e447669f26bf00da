package revision

import (
	"github.com/oneconcern/gpmodel/pkg/revision/status"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Notifier receives change notifications once a transaction is committed.
type Notifier interface {
	// Suppressed tells if notifications are deferred, e.g. while some notification guard is active
	Suppressed() bool

	// Notify emits change notifications for a chain of owners in swap order: children before parents
	Notify(chain []Revisionable) error
}

// NotifierSource is implemented by top-level owners connected to a Notifier.
//
// Notifier may return nil when the owner is not connected.
type NotifierSource interface {
	Notifier() Notifier
}

// Handler is the mutation scope of an edit to one owner.
//
// It builds the bubble-up chain into a new transaction and exposes the new, unpublished,
// revision of the edited owner: this is the only revision allowed to be written to.
//
// Sample usage:
//
//	func (l *Leaf) SetValue(v int) error {
//	  h, err := revision.NewHandler[*leafRevision](l)
//	  if err != nil {
//	    return err
//	  }
//	  defer h.Close()
//
//	  h.Revision().value = v
//	  return h.Commit()
//	}
type Handler[R Revision] struct {
	tx   *Transaction
	rev  R
	done bool
}

// NewHandler starts an edit on owner.
//
// An error returned by some context while bubbling up leaves every owner unchanged.
func NewHandler[R Revision](owner Revisionable) (*Handler[R], error) {
	tx := NewTransaction()
	rev, err := owner.owner().CreateBubbleUpRevision(tx)
	if err != nil {
		tx.Discard()
		return nil, err
	}

	r, ok := rev.(R)
	if !ok {
		tx.Discard()
		panic(Invariant(status.ErrRevisionType, zap.Stringer("kind", rev.Kind())))
	}

	return &Handler[R]{
		tx:  tx,
		rev: r,
	}, nil
}

// Revision yields the new revision of the edited owner
func (h *Handler[R]) Revision() R {
	return h.rev
}

// Transaction yields the transaction of this edit, e.g. to attach or detach children
func (h *Handler[R]) Transaction() *Transaction {
	return h.tx
}

// Done tells if the edit has been committed or discarded
func (h *Handler[R]) Done() bool {
	return h.done
}

// Commit publishes the edit, then notifies the top-level owner of the chain, unless
// notifications are suppressed.
//
// Release and notification errors are returned: the edit is published in any case.
// Commit is a no-op on a committed or discarded handler.
func (h *Handler[R]) Commit() error {
	if h.done {
		return nil
	}
	h.done = true

	err := h.tx.Commit()

	if n := notifierOf(h.tx.top()); n != nil && !n.Suppressed() {
		err = multierr.Append(err, n.Notify(h.tx.Owners()))
	}

	return err
}

// Discard abandons the edit
func (h *Handler[R]) Discard() {
	if h.done {
		return
	}
	h.done = true
	h.tx.Discard()
}

// Close ends the mutation scope. It is meant to be deferred right after NewHandler.
//
// When the scope exits with a panic, the edit is discarded and the panic goes on.
// Otherwise an edit which has not been committed nor discarded is committed:
// errors are logged, not returned.
func (h *Handler[R]) Close() {
	if r := recover(); r != nil {
		h.Discard()
		panic(r)
	}
	if h.done {
		return
	}
	if err := h.Commit(); err != nil {
		logger.Warn("revision: commit on scope exit", zap.Stringer("kind", h.rev.Kind()), zap.Error(err))
	}
}

func notifierOf(top Revisionable) Notifier {
	src, ok := top.(NotifierSource)
	if !ok {
		return nil
	}
	return src.Notifier()
}
