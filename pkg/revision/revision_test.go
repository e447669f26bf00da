package revision

import (
	"runtime"
	"testing"

	"github.com/oneconcern/gpmodel/pkg/errors"
	"github.com/oneconcern/gpmodel/pkg/revision/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRoundTripEquality(t *testing.T) {
	vec, err := NewVector(leafKind, newLeaves(1, 2)...)
	require.NoError(t, err)
	values, err := NewValueVector(Kind("test:int"), intValues(1, 2, 3)...)
	require.NoError(t, err)

	tests := []struct {
		name  string
		owner Revisionable
	}{
		{name: "leaf", owner: newLeaf(1)},
		{name: "node", owner: newNode("root", newLeaves(1, 2), []*node{newNode("mid", newLeaves(3), nil, nil)}, nil)},
		{name: "vector", owner: vec},
		{name: "value vector", owner: values},
	}
	for _, toPin := range tests {
		tt := toPin
		t.Run(tt.name, func(t *testing.T) {
			current := tt.owner.Revision()
			clone := current.Clone(nil)

			require.NotSame(t, current, clone)
			assert.Equal(t, current.Kind(), clone.Kind())
			assert.True(t, EqualRevisions(current, clone))
			assert.True(t, EqualRevisions(clone, current))
			assert.True(t, Equal(tt.owner, tt.owner))
		})
	}
}

func TestEqualKinds(t *testing.T) {
	l := newLeaf(1)
	n := newNode("root", nil, nil, nil)

	assert.False(t, Equal(l, n))
	assert.False(t, EqualRevisions(l.Revision(), nil))
	assert.True(t, EqualRevisions(nil, nil))
	assert.False(t, Equal(l, nil))
	assert.True(t, Equal(newLeaf(2), newLeaf(2)))
	assert.False(t, Equal(newLeaf(2), newLeaf(3)))
}

func TestPeerMismatch(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	l := newLeaf(1)
	n := newNode("root", nil, nil, nil)

	assert.PanicsWithValue(t, error(status.ErrKindMismatch), func() {
		_ = l.Revision().Equal(n.Revision())
	})
	assert.PanicsWithValue(t, error(status.ErrRevisionType), func() {
		_ = Current[*nodeRevision](l)
	})
	assert.Equal(t, 2, logs.FilterMessage("revision: broken invariant").Len())
}

func TestOwnerInit(t *testing.T) {
	t.Run("uninitialized owner", func(t *testing.T) {
		l := &leaf{}
		assert.False(t, l.Initialized())
		assert.PanicsWithValue(t, error(status.ErrNotInitialized), func() {
			_ = l.Revision()
		})
	})

	t.Run("initialized twice", func(t *testing.T) {
		l := newLeaf(1)
		err := l.Init(l, func(*Transaction) (Revision, error) {
			return &leafRevision{value: 2}, nil
		})
		require.ErrorIs(t, err, status.ErrInitialized)
		assert.Equal(t, 1, l.Value())
	})

	t.Run("failed build", func(t *testing.T) {
		child := newLeaf(1)
		n := &node{}
		err := n.Init(n, func(tx *Transaction) (Revision, error) {
			_ = MustAttach(tx, n, child)
			return nil, errTest
		})
		require.ErrorIs(t, err, status.ErrBuild)
		require.ErrorIs(t, err, errTest)
		assert.False(t, n.Initialized())
		assert.Nil(t, child.Revision().Context(), "a failed build must not attach children")
	})

	t.Run("nil build", func(t *testing.T) {
		l := &leaf{}
		err := l.Init(l, func(*Transaction) (Revision, error) { return nil, nil })
		require.ErrorIs(t, err, status.ErrBuild)
		assert.False(t, l.Initialized())
	})

	t.Run("foreign owner", func(t *testing.T) {
		l := &leaf{}
		other := newLeaf(1)
		assert.Panics(t, func() {
			_ = l.Init(other, func(*Transaction) (Revision, error) { return &leafRevision{}, nil })
		})
	})

	t.Run("not a context", func(t *testing.T) {
		assert.PanicsWithValue(t, error(status.ErrNotContext), func() {
			_ = NewBase(&fakeContext{leaf: newLeaf(1)})
		})
	})
}

func TestCreateBubbleUpRevision(t *testing.T) {
	t.Run("detached owner", func(t *testing.T) {
		l := newLeaf(1)
		tx := NewTransaction()
		rev, err := l.CreateBubbleUpRevision(tx)
		require.NoError(t, err)
		assert.Nil(t, rev.Context())
		assert.Equal(t, 1, tx.Len())
		assert.NotSame(t, l.Revision(), rev)
	})

	t.Run("attached owner", func(t *testing.T) {
		l := newLeaf(1)
		n := newNode("root", []*leaf{l}, nil, nil)
		tx := NewTransaction()
		rev, err := l.CreateBubbleUpRevision(tx)
		require.NoError(t, err)
		assert.True(t, rev.Context() == Context(n))
		require.Equal(t, 2, tx.Len())
		assert.Equal(t, []Revisionable{l, n}, tx.Owners())
	})
}

func TestChildNotFound(t *testing.T) {
	l := newLeaf(1)
	n := newNode("root", nil, nil, nil)
	assert.PanicsWithValue(t, error(status.ErrChildNotFound), func() {
		_, _ = n.BubbleUp(NewTransaction(), l)
	})
}

func TestContextIsWeak(t *testing.T) {
	l := newLeaf(1)
	func() {
		n := newNode("parent", []*leaf{l}, nil, nil)
		require.True(t, l.Revision().Context() == Context(n))
	}()

	runtime.GC()
	runtime.GC()

	assert.Nil(t, l.Revision().Context(), "a child must not keep its parent alive")

	// the orphan is detached: it may be edited and attached again
	require.NoError(t, l.SetValue(2))
	other := newNode("adopter", nil, nil, nil)
	require.NoError(t, other.AddLeaf(l))
	assert.True(t, l.Revision().Context() == Context(other))
}

func TestInvariantLogs(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	err := Invariant(status.ErrChildNotFound, zap.String("where", "test"))
	assert.True(t, errors.Is(err, status.ErrChildNotFound))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "test", logs.All()[0].ContextMap()["where"])
}

// fakeContext claims to be a context without being initialized as one
type fakeContext struct {
	*leaf
}

func (f *fakeContext) BubbleUp(*Transaction, Revisionable) (Revision, error) {
	return nil, nil
}
