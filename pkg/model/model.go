package model

import (
	"time"

	"github.com/oneconcern/gpmodel/pkg/metrics"
	"github.com/oneconcern/gpmodel/pkg/revision"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var _ revision.Notifier = &Model{}

// Subscriber receives change events. An error returned by a subscriber does not stop
// other subscribers from being notified.
type Subscriber func(Event) error

type subscription struct {
	id uint64
	fn Subscriber
}

// Model holds a feature store and notifies subscribers about committed edits.
type Model struct {
	metrics.Enable
	m *M

	store       *FeatureStore
	logger      *zap.Logger
	readOnly    bool
	subscribers []subscription
	nextID      uint64
	guards      int

	// notified is the store revision as of the last emitted event
	notified revision.Revision
}

// New model, with an empty feature store
func New(opts ...Option) *Model {
	m := &Model{
		logger: zap.NewNop(),
	}
	for _, apply := range opts {
		apply(m)
	}

	m.store = newFeatureStore(m)
	m.notified = m.store.Revision()

	return m
}

// Store yields the root of the feature hierarchy
func (m *Model) Store() *FeatureStore {
	return m.store
}

// ReadOnly tells if the model rejects edits
func (m *Model) ReadOnly() bool {
	return m.readOnly
}

// SetReadOnly toggles the read-only state of the model
func (m *Model) SetReadOnly(readOnly bool) {
	m.readOnly = readOnly
}

// Subscribe registers a subscriber and returns a function to cancel the subscription
func (m *Model) Subscribe(fn Subscriber) (cancel func()) {
	m.nextID++
	id := m.nextID
	m.subscribers = append(m.subscribers, subscription{id: id, fn: fn})

	return func() {
		for i, s := range m.subscribers {
			if s.id == id {
				m.subscribers = append(m.subscribers[:i:i], m.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Suppressed tells if some notification guard is active
func (m *Model) Suppressed() bool {
	return m.guards > 0
}

// Notify emits an event for an edit committed on the store.
//
// chain lists the edited owners in swap order: children before parents, store last.
func (m *Model) Notify(chain []revision.Revisionable) (err error) {
	defer func(start time.Time) { m.used(start, "Notify", err) }(time.Now())

	return m.emit(Event{
		Chain: chain,
		Old:   m.notified,
		New:   m.store.Revision(),
	})
}

// Guard starts a suppression scope: no event is emitted until the outermost guard is released.
//
// Sample usage:
//
//	g := m.Guard()
//	defer func() { _ = g.Release() }()
func (m *Model) Guard() *NotificationGuard {
	m.guards++
	m.logger.Debug("model: notifications suppressed", zap.Int("guards", m.guards))
	return &NotificationGuard{m: m}
}

func (m *Model) release() (err error) {
	m.guards--
	if m.guards > 0 {
		return nil
	}
	defer func(start time.Time) { m.used(start, "Release", err) }(time.Now())

	root := m.store.Revision()
	if root == m.notified {
		m.logger.Debug("model: no change to notify")
		m.unchanged()
		return nil
	}

	return m.emit(Event{
		Old:          m.notified,
		New:          root,
		Consolidated: true,
	})
}

func (m *Model) emit(e Event) error {
	m.notified = e.New
	m.emitted(e.Consolidated)
	m.logger.Debug("model: change event",
		zap.Int("chain", len(e.Chain)),
		zap.Bool("consolidated", e.Consolidated),
		zap.Int("subscribers", len(m.subscribers)),
	)

	var err error
	// subscribers may cancel their subscription in the callback
	for _, s := range append([]subscription(nil), m.subscribers...) {
		if serr := s.fn(e); serr != nil {
			m.failed()
			m.logger.Warn("model: subscriber failed", zap.Uint64("subscriber", s.id), zap.Error(serr))
			err = multierr.Append(err, serr)
		}
	}
	return err
}

// NotificationGuard is a suppression scope of change events
type NotificationGuard struct {
	m        *Model
	released bool
}

// Release ends the suppression scope.
//
// When the outermost scope ends, a consolidated event is emitted if the store has changed
// since the last event. Release may be called several times.
func (g *NotificationGuard) Release() error {
	if g.released {
		return nil
	}
	g.released = true
	return g.m.release()
}
