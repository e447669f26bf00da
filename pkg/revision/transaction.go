package revision

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type txState uint8

const (
	txOpen txState = iota
	txCommitted
	txDiscarded
)

type entry struct {
	owner *Owner
	rev   Revision
}

// Transaction is an ordered batch of new revisions, one per owner, applied all at once.
//
// Revisions are registered while walking up a containment chain: the top-most
// context is registered first. Commit swaps children before their parents.
type Transaction struct {
	entries []entry
	state   txState
}

// NewTransaction builds an empty transaction
func NewTransaction() *Transaction {
	return &Transaction{
		entries: make([]entry, 0, 4),
	}
}

// Add registers the new revision of an owner
func (tx *Transaction) Add(owner Revisionable, rev Revision) {
	tx.entries = append(tx.entries, entry{owner: owner.owner(), rev: rev})
}

// Len yields the number of registered revisions
func (tx *Transaction) Len() int {
	return len(tx.entries)
}

// Committed tells if the transaction has been committed
func (tx *Transaction) Committed() bool {
	return tx.state == txCommitted
}

// Discarded tells if the transaction has been discarded
func (tx *Transaction) Discarded() bool {
	return tx.state == txDiscarded
}

// Owners yields the owners of the transaction, in swap order: children before their
// parents, the top-most ancestor last.
//
// Children attached or detached within the edit come before the owners they were
// attached to or detached from.
func (tx *Transaction) Owners() []Revisionable {
	order := tx.swapOrder()
	owners := make([]Revisionable, 0, len(order))
	for _, i := range order {
		owners = append(owners, tx.entries[i].owner.self)
	}
	return owners
}

// Pending yields the revision registered for owner, if any
func (tx *Transaction) Pending(owner Revisionable) (Revision, bool) {
	o := owner.owner()
	for i := len(tx.entries) - 1; i >= 0; i-- {
		if tx.entries[i].owner == o {
			return tx.entries[i].rev, true
		}
	}
	return nil, false
}

// Commit swaps the current revision of every owner with its registered revision.
//
// The swap itself never fails. Displaced revisions which are Releasers are released
// afterwards: release errors are combined and returned, but the new revisions are live
// in any case.
//
// Commit is a no-op when the transaction is already committed or discarded.
func (tx *Transaction) Commit() error {
	if tx.state != txOpen {
		return nil
	}
	tx.state = txCommitted

	order := tx.swapOrder()
	for _, i := range order {
		e := &tx.entries[i]
		e.owner.current, e.rev = e.rev, e.owner.current
	}

	var err error
	var failures int
	for _, i := range order {
		if r, ok := tx.entries[i].rev.(Releaser); ok {
			if rerr := r.Release(); rerr != nil {
				failures++
				err = multierr.Append(err, rerr)
			}
		}
	}
	for i := range tx.entries {
		tx.entries[i].rev = nil
	}

	instrumentation.committed(len(order), failures)
	if err != nil {
		logger.Debug("revision: release of displaced revisions failed", zap.Int("failures", failures), zap.Error(err))
	}
	return err
}

// Discard abandons the transaction: no owner is changed.
func (tx *Transaction) Discard() {
	if tx.state != txOpen {
		return
	}
	tx.state = txDiscarded
	tx.entries = nil
	instrumentation.discarded()
}

// top yields the top-most owner of the chain
func (tx *Transaction) top() Revisionable {
	if len(tx.entries) == 0 {
		return nil
	}
	return tx.entries[0].owner.self
}

// swapOrder yields entry indices from the last registered to the first.
//
// When an owner is registered several times, only its last registration is kept.
func (tx *Transaction) swapOrder() []int {
	order := make([]int, 0, len(tx.entries))
	seen := make(map[*Owner]struct{}, len(tx.entries))
	for i := len(tx.entries) - 1; i >= 0; i-- {
		o := tx.entries[i].owner
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		order = append(order, i)
	}
	return order
}
