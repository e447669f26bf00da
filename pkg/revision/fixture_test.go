package revision

import (
	stderrors "errors"
)

const (
	leafKind Kind = "test:leaf"
	nodeKind Kind = "test:node"
)

type leaf struct {
	Owner
}

type leafRevision struct {
	Base
	value     int
	onRelease func() error
}

func (r *leafRevision) Kind() Kind {
	return leafKind
}

func (r *leafRevision) Clone(ctx Context) Revision {
	return &leafRevision{
		Base:      NewBase(ctx),
		value:     r.value,
		onRelease: r.onRelease,
	}
}

func (r *leafRevision) Equal(other Revision) bool {
	return r.value == Peer[*leafRevision](other).value
}

func (r *leafRevision) Release() error {
	if r.onRelease == nil {
		return nil
	}
	return r.onRelease()
}

func newLeaf(value int) *leaf {
	l := &leaf{}
	if err := l.Init(l, func(*Transaction) (Revision, error) {
		return &leafRevision{Base: NewBase(nil), value: value}, nil
	}); err != nil {
		panic(err)
	}
	return l
}

func newLeaves(values ...int) []*leaf {
	leaves := make([]*leaf, 0, len(values))
	for _, v := range values {
		leaves = append(leaves, newLeaf(v))
	}
	return leaves
}

func (l *leaf) Value() int {
	return Current[*leafRevision](l).value
}

func (l *leaf) SetValue(value int) error {
	h, err := NewHandler[*leafRevision](l)
	if err != nil {
		return err
	}
	defer h.Close()

	h.Revision().value = value
	return h.Commit()
}

func (l *leaf) CloneInto(ctx Context) (Revisionable, error) {
	src := Current[*leafRevision](l)
	c := &leaf{}
	err := c.Init(c, func(*Transaction) (Revision, error) {
		return &leafRevision{Base: NewBase(ctx), value: src.value, onRelease: src.onRelease}, nil
	})
	return c, err
}

// node is a context holding leaves, nodes and an optional vector of leaves
type node struct {
	Owner
	notifier  Notifier
	failOn    error // fails a bubble-up before any registration
	failAfter error // fails a bubble-up once its own revision is registered
}

type nodeRevision struct {
	Base
	name   string
	leaves References[*leaf]
	nodes  References[*node]
	vec    Reference[*Vector[*leaf]]
}

func (r *nodeRevision) Kind() Kind {
	return nodeKind
}

func (r *nodeRevision) Clone(ctx Context) Revision {
	return &nodeRevision{
		Base:   NewBase(ctx),
		name:   r.name,
		leaves: r.leaves.Clone(),
		nodes:  r.nodes.Clone(),
		vec:    r.vec,
	}
}

func (r *nodeRevision) Equal(other Revision) bool {
	o := Peer[*nodeRevision](other)
	return r.name == o.name &&
		r.leaves.Equal(o.leaves) &&
		r.nodes.Equal(o.nodes) &&
		r.vec.Equal(o.vec)
}

func newNode(name string, leaves []*leaf, nodes []*node, vec *Vector[*leaf]) *node {
	n := &node{}
	if err := n.Init(n, func(tx *Transaction) (Revision, error) {
		rev := &nodeRevision{name: name}
		for _, l := range leaves {
			rev.leaves = append(rev.leaves, MustAttach(tx, n, l))
		}
		for _, c := range nodes {
			rev.nodes = append(rev.nodes, MustAttach(tx, n, c))
		}
		if vec != nil {
			rev.vec = MustAttach(tx, n, vec)
		}
		return rev, nil
	}); err != nil {
		panic(err)
	}
	return n
}

func (n *node) current() *nodeRevision {
	return Current[*nodeRevision](n)
}

func (n *node) Name() string {
	return n.current().name
}

func (n *node) SetName(name string) error {
	h, err := NewHandler[*nodeRevision](n)
	if err != nil {
		return err
	}
	defer h.Close()

	h.Revision().name = name
	return h.Commit()
}

func (n *node) AddLeaf(l *leaf) error {
	h, err := NewHandler[*nodeRevision](n)
	if err != nil {
		return err
	}
	defer h.Close()

	ref, err := Attach(h.Transaction(), n, l)
	if err != nil {
		h.Discard()
		return err
	}
	h.Revision().leaves = append(h.Revision().leaves, ref)
	return h.Commit()
}

func (n *node) RemoveLeaf(i int) (*leaf, error) {
	h, err := NewHandler[*nodeRevision](n)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	rev := h.Revision()
	removed := rev.leaves[i].Get()
	rev.leaves[i].Detach(h.Transaction())
	rev.leaves = append(rev.leaves[:i:i], rev.leaves[i+1:]...)
	return removed, h.Commit()
}

func (n *node) ReplaceLeaf(i int, l *leaf) error {
	h, err := NewHandler[*nodeRevision](n)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Revision().leaves[i].Change(h.Transaction(), l); err != nil {
		h.Discard()
		return err
	}
	return h.Commit()
}

func (n *node) EditThenPanic() error {
	h, err := NewHandler[*nodeRevision](n)
	if err != nil {
		return err
	}
	defer h.Close()

	h.Revision().name = "never published"
	panic("interrupted edit")
}

func (n *node) EditWithoutCommit(name string) error {
	h, err := NewHandler[*nodeRevision](n)
	if err != nil {
		return err
	}
	defer h.Close()

	h.Revision().name = name
	return nil
}

func (n *node) Leaf(i int) *leaf {
	return n.current().leaves[i].Get()
}

func (n *node) Node(i int) *node {
	return n.current().nodes[i].Get()
}

func (n *node) Vector() *Vector[*leaf] {
	return n.current().vec.Get()
}

func (n *node) BubbleUp(tx *Transaction, child Revisionable) (Revision, error) {
	if n.failOn != nil {
		return nil, n.failOn
	}
	rev, err := n.CreateBubbleUpRevision(tx)
	if err != nil {
		return nil, err
	}
	if n.failAfter != nil {
		return nil, n.failAfter
	}

	r := rev.(*nodeRevision)
	switch {
	case r.vec.Is(child):
		return r.vec.CloneRevision(tx), nil
	case r.nodes.IndexOf(child) >= 0:
		return r.nodes.CloneRevision(tx, child), nil
	default:
		return r.leaves.CloneRevision(tx, child), nil
	}
}

func (n *node) Notifier() Notifier {
	return n.notifier
}

func (n *node) CloneInto(ctx Context) (Revisionable, error) {
	src := n.current()
	c := &node{}
	err := c.Init(c, func(*Transaction) (Revision, error) {
		leaves, err := src.leaves.DeepClone(c)
		if err != nil {
			return nil, err
		}
		nodes, err := src.nodes.DeepClone(c)
		if err != nil {
			return nil, err
		}
		rev := &nodeRevision{
			Base:   NewBase(ctx),
			name:   src.name,
			leaves: leaves,
			nodes:  nodes,
		}
		if !src.vec.IsZero() {
			if rev.vec, err = src.vec.Clone(c); err != nil {
				return nil, err
			}
		}
		return rev, nil
	})
	return c, err
}

// recorder is a Notifier keeping track of notified chains
type recorder struct {
	suppressed bool
	err        error
	chains     [][]Revisionable
}

func (r *recorder) Suppressed() bool {
	return r.suppressed
}

func (r *recorder) Notify(chain []Revisionable) error {
	r.chains = append(r.chains, chain)
	return r.err
}

var (
	errTest    = stderrors.New("test failure")
	errRelease = stderrors.New("release failure")
)

// snapshot captures the current revision of every owner in a graph
func snapshot(owners ...Revisionable) []Revision {
	revs := make([]Revision, 0, len(owners))
	for _, o := range owners {
		revs = append(revs, o.Revision())
	}
	return revs
}

type intValue int

func (v intValue) Equal(other intValue) bool {
	return v == other
}

func intValues(values ...int) []intValue {
	out := make([]intValue, 0, len(values))
	for _, v := range values {
		out = append(out, intValue(v))
	}
	return out
}
