// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"cogentcore.org/nodes/base/errors"
	"cogentcore.org/nodes/base/goroutine"
	"cogentcore.org/nodes/base/keylist"
	"cogentcore.org/nodes/base/plan"
	"golang.org/x/sync/errgroup"
)

// Kind is the kind of a [Children], which determines
// how its entries are given and changed.
type Kind int32

const (
	// KindLeaf is the kind of the [Leaf] children, which are always empty.
	KindLeaf Kind = iota

	// KindArray children hold an explicit list of nodes; see [NewArray].
	KindArray

	// KindMap children map keys to nodes; see [NewMap].
	KindMap

	// KindKeys children create their nodes from keys; see [NewKeys].
	KindKeys
)

var kindNames = []string{"leaf", "array", "map", "keys"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int32(k))
	}
	return kindNames[k]
}

// entryKey identifies an entry of a [Children]: a logical key, with the
// occurrence index of the key distinguishing repeated keys.
type entryKey = plan.Numbered[any]

// info is the cached row of one entry: the nodes last computed for it.
type info struct {
	key entryKey

	// fixed is the node of an array or map entry, which is
	// given when the entry is made and never recomputed.
	fixed *Node

	// nodes are the current nodes of the entry,
	// valid only if computed is true.
	nodes []*Node

	computed bool
}

// newInfo returns the row for the given key, which is already
// computed if it has a fixed node.
func newInfo(k entryKey, fixed *Node) *info {
	in := &info{key: k, fixed: fixed}
	if fixed != nil {
		in.nodes = []*Node{fixed}
		in.computed = true
	}
	return in
}

// childrenArray is the computed, flattened array of the nodes of a [Children].
type childrenArray struct {

	// gen is the generation under which the array
	// is registered in the eviction cache.
	gen uint64

	nodes []*Node
}

// Children are the children of a [Node]. They hold an ordered list of
// entries, each giving zero or more nodes, and compute the flattened array
// of those nodes lazily, on the first call to [Children.Nodes].
//
// All structural changes are made with write access to the [Tree] mutex,
// and fire events on the parent node. The nodes are returned as a shared
// slice that must not be modified.
type Children struct {
	kind Kind
	tree *Tree

	// mu guards the fields below. It is never held while calling
	// user code, and is taken before the lock of any node.
	mu   sync.Mutex
	cond *sync.Cond

	parent *Node

	// entries are the entries in order, with their rows.
	// They only change in exclusive sections.
	entries keylist.List[entryKey, *info]

	// array is the computed array, or nil if it was never
	// computed or has been evicted.
	array *childrenArray

	// cached is whether array is registered in the eviction cache.
	cached bool

	// gen is the last generation given to array.
	gen uint64

	// computing is whether a goroutine is computing the array.
	computing bool

	// owner is the id of the goroutine computing the array,
	// valid while computing is true.
	owner uint64

	// notified is whether addNotify has run without
	// a matching removeNotify.
	notified bool

	// posted is the number of write requests queued for these children.
	posted int

	addNotify, removeNotify func()

	// create returns the nodes of a key of [KindKeys] children.
	create func(key any) []*Node

	// destroyNodes is called with the nodes removed from [KindKeys] children.
	destroyNodes func(nodes []*Node)
}

// Leaf are the children shared by all nodes that have no children.
// They are always empty, and reject every change with [ErrLeaf].
var Leaf = &Children{kind: KindLeaf}

// newChildren returns new empty children of the given kind in the given tree.
func newChildren(t *Tree, kind Kind) *Children {
	c := &Children{kind: kind, tree: orDefault(t)}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Kind returns the kind of the children.
func (c *Children) Kind() Kind {
	return c.kind
}

// Tree returns the tree of the children.
func (c *Children) Tree() *Tree {
	return orDefault(c.tree)
}

func (c *Children) String() string {
	p := c.Parent()
	if p == nil {
		return fmt.Sprintf("detached %v children", c.kind)
	}
	return fmt.Sprintf("%v children of %q", c.kind, p.Name())
}

// Parent returns the node the children are attached to, or nil.
func (c *Children) Parent() *Node {
	if c == Leaf {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parent
}

// attachTo binds the children to the given node. It is an error if
// they are bound to another node. The [Leaf] can be attached to any
// number of nodes.
func (c *Children) attachTo(n *Node) error {
	if c.kind == KindLeaf {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.parent != nil && c.parent != n {
		return fmt.Errorf("%w: cannot attach to %q", ErrAttached, n.Name())
	}
	c.parent = n
	return nil
}

// detachFrom unbinds the children from the given node, if bound to it.
func (c *Children) detachFrom(n *Node) {
	if c.kind == KindLeaf {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.parent == n {
		c.parent = nil
	}
}

// OnAddNotify sets the function called before the children are first
// computed, and again before they are computed after an eviction. It
// typically sets the keys of [Keys] children, and may start watching
// the source of the keys. It is called without any section of the
// tree mutex held, unless the children are computed from inside one.
func (c *Children) OnAddNotify(fn func()) {
	c.mu.Lock()
	c.addNotify = fn
	c.mu.Unlock()
}

// OnRemoveNotify sets the function called once when the computed
// children are evicted, after an add notification. It typically stops
// watching the source of the keys. It is called with write access.
func (c *Children) OnRemoveNotify(fn func()) {
	c.mu.Lock()
	c.removeNotify = fn
	c.mu.Unlock()
}

// IsInitialized returns whether the children are currently computed.
func (c *Children) IsInitialized() bool {
	if c.kind == KindLeaf {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.array != nil
}

// Snapshot returns the computed nodes without computing them,
// which is nil if they are not computed.
func (c *Children) Snapshot() []*Node {
	if c.kind == KindLeaf {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.array == nil {
		return nil
	}
	return c.array.nodes
}

// Nodes returns the nodes of the children, computing them if needed.
// The first computation calls the add notification hook, and then
// computes each entry with read access. A call from another goroutine
// while the nodes are computed waits for the computation to finish; a
// call from the hooks of the computation itself returns the nodes
// computed so far.
//
// A computation may itself cause changes to the children, for example by
// setting the keys of [Keys] children from its hook. When Nodes is called
// from inside a section of the tree mutex, those changes are queued and
// Nodes returns the nodes computed so far; the queued changes are applied
// when the section ends, and announced with the usual events.
func (c *Children) Nodes() []*Node {
	if c.kind == KindLeaf {
		return nil
	}
	var me uint64
	for attempt := 0; ; attempt++ {
		c.mu.Lock()
		for c.array == nil && c.computing {
			if me == 0 {
				me = goroutine.ID()
			}
			if c.owner == me {
				nodes := c.partialLocked()
				c.mu.Unlock()
				c.degraded("reentrant")
				return nodes
			}
			c.cond.Wait()
		}
		if c.array != nil {
			nodes, cached := c.array.nodes, c.cached
			c.mu.Unlock()
			if cached {
				c.tree.arrays.Get(c) // mark as recently used
			}
			return nodes
		}
		if me == 0 {
			me = goroutine.ID()
		}
		c.computing = true
		c.owner = me
		first := !c.notified
		c.notified = true
		c.mu.Unlock()

		nodes, ok := c.materialize(first)
		c.mu.Lock()
		stale := c.posted > 0
		c.mu.Unlock()
		if stale {
			c.degraded("queued changes")
		}
		if ok || attempt > 0 {
			return nodes
		}
	}
}

// materialize computes and installs the array. It returns false if the
// array was cleared again by the write requests run at the end of the
// read section, in which case nodes are the ones it computed.
func (c *Children) materialize(first bool) (nodes []*Node, ok bool) {
	finished := false
	finish := func() {
		c.mu.Lock()
		c.computing = false
		c.owner = 0
		c.cond.Broadcast()
		c.mu.Unlock()
		finished = true
	}
	defer func() {
		if !finished {
			finish()
		}
	}()
	if first {
		c.mu.Lock()
		hook := c.addNotify
		c.mu.Unlock()
		if hook != nil {
			hook()
		}
	}
	c.tree.Mutex.ReadAccess(func() {
		nodes = c.compute()
		finish()
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.array == nil {
		return nodes, false
	}
	return c.array.nodes, true
}

// compute computes every entry that is not computed and installs the
// flattened array. It must be called with read access, so that the
// entries do not change.
func (c *Children) compute() []*Node {
	c.mu.Lock()
	rows := slices.Clone(c.entries.Values)
	c.mu.Unlock()
	for _, in := range rows {
		c.mu.Lock()
		done := in.computed
		c.mu.Unlock()
		if done {
			continue
		}
		nodes := c.produce(in)
		c.mu.Lock()
		if !in.computed {
			in.nodes = nodes
			in.computed = true
		}
		c.mu.Unlock()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.array != nil {
		return c.array.nodes
	}
	c.array = &childrenArray{}
	c.refreshArrayLocked()
	materializations.Inc()
	return c.array.nodes
}

// produce returns the current nodes of the given row, calling the
// node factory for [KindKeys] children, and assigns them to the
// children. It panics with an [*OwnershipError] if a node belongs
// to other children.
func (c *Children) produce(in *info) []*Node {
	if in.fixed != nil {
		return []*Node{in.fixed}
	}
	if c.create == nil {
		return nil
	}
	made := c.create(in.key.Key)
	nodes := make([]*Node, 0, len(made))
	for _, n := range made {
		if n == nil {
			continue
		}
		if err := n.assignTo(c, -1); err != nil {
			panic(err)
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// partialLocked returns the nodes of the rows computed so far.
func (c *Children) partialLocked() []*Node {
	if c.array != nil {
		return c.array.nodes
	}
	return c.flattenLocked()
}

// flattenLocked returns the nodes of all computed rows, in entry order.
func (c *Children) flattenLocked() []*Node {
	var nodes []*Node
	for _, in := range c.entries.Values {
		if in.computed {
			nodes = append(nodes, in.nodes...)
		}
	}
	return nodes
}

// offsetsLocked returns the index in the flattened array
// of the first node of each entry.
func (c *Children) offsetsLocked() []int {
	offs := make([]int, c.entries.Len())
	off := 0
	for i, in := range c.entries.Values {
		offs[i] = off
		off += len(in.nodes)
	}
	return offs
}

// refreshArrayLocked rebuilds the computed array from the rows, and
// registers it in the eviction cache if it is not empty. An empty array
// is removed from the cache, so that it stays until it is cleared.
// It must be called inside a read or write section, since the cache
// posts a write request for a removed array.
func (c *Children) refreshArrayLocked() {
	nodes := c.flattenLocked()
	for i, n := range nodes {
		n.setIndex(i)
	}
	c.array.nodes = nodes
	switch {
	case len(nodes) == 0 && c.cached:
		c.cached = false
		c.tree.forget(c)
	case len(nodes) > 0 && !c.cached:
		c.gen++
		c.array.gen = c.gen
		c.cached = true
		c.tree.remember(c, c.gen)
	}
}

// finalize clears the array with the given generation after it was
// evicted, unless it has been replaced or removed from the cache since.
// It must be called with write access. The rows of [KindKeys] children
// are cleared too, and the remove notification hook is called.
func (c *Children) finalize(gen uint64) {
	var hook func()
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.array == nil || !c.cached || c.array.gen != gen {
			return
		}
		c.cached = false
		c.array = nil
		if c.kind == KindKeys {
			for _, in := range c.entries.Values {
				for _, n := range in.nodes {
					errors.Must(n.deassignFrom(c))
				}
				in.nodes = nil
				in.computed = false
			}
		}
		if c.notified {
			c.notified = false
			hook = c.removeNotify
		}
		evictions.Inc()
	})
	if hook != nil {
		hook()
	}
}

// degraded records that Nodes returned an array that
// may not reflect all of the requested changes yet.
func (c *Children) degraded(reason string) {
	bestEffort.Inc()
	slog.Debug("tree: returning children that are not up to date", "children", c.String(), "reason", reason)
}

// post queues the given structural change of the children as a write request.
func (c *Children) post(fn func()) {
	c.mu.Lock()
	c.posted++
	c.mu.Unlock()
	c.tree.Mutex.PostWriteRequest(func() {
		c.mu.Lock()
		c.posted--
		c.mu.Unlock()
		fn()
	})
}

// Count returns the number of nodes, computing them if needed.
func (c *Children) Count() int {
	return len(c.Nodes())
}

// NodeAt returns the node at the given index, computing the
// nodes if needed, or nil if the index is out of range.
func (c *Children) NodeAt(i int) *Node {
	nodes := c.Nodes()
	if i < 0 || i >= len(nodes) {
		return nil
	}
	return nodes[i]
}

// FindChild returns the first node with the given name,
// computing the nodes if needed, or nil if there is none.
func (c *Children) FindChild(name string) *Node {
	nodes := c.Nodes()
	if i := IndexByName(nodes, name, 0); i >= 0 {
		return nodes[i]
	}
	return nil
}

// NodesOptimal returns the nodes like [Children.Nodes], after computing
// the whole subtree below them. Each level of the subtree is computed in
// parallel, with at most [config.Walk.Parallelism] goroutines.
func (c *Children) NodesOptimal() []*Node {
	nodes := c.Nodes()
	limit := c.Tree().Config.Walk.Parallelism
	if limit <= 0 {
		limit = 1
	}
	level := nodes
	for len(level) > 0 {
		var g errgroup.Group
		g.SetLimit(limit)
		for _, n := range level {
			g.Go(func() error {
				n.Children().Nodes()
				return nil
			})
		}
		g.Wait()
		// changes queued by the parallel computations have been applied
		// by now, so this pass sees the settled arrays
		var next []*Node
		for _, n := range level {
			next = append(next, n.Children().Nodes()...)
		}
		level = next
	}
	return c.Nodes()
}

// clone returns new children of the same kind and content, for [Node.Clone].
func (c *Children) clone() *Children {
	if c.kind == KindLeaf {
		return Leaf
	}
	nc := newChildren(c.tree, c.kind)
	c.mu.Lock()
	keys := slices.Clone(c.entries.Keys)
	rows := slices.Clone(c.entries.Values)
	nc.create, nc.destroyNodes = c.create, c.destroyNodes
	c.mu.Unlock()
	for i, k := range keys {
		var fixed *Node
		if f := rows[i].fixed; f != nil {
			fixed = f.Clone()
			fixed.assignTo(nc, i)
			if c.kind == KindArray {
				k = entryKey{Key: fixed}
			}
		}
		nc.entries.Add(k, newInfo(k, fixed))
	}
	return nc
}
