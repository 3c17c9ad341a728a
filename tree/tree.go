// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides a tree of presentation nodes whose children are
// computed lazily and kept consistent with an underlying key list.
//
// A [Node] is a stable identity with a name, a display name, a short
// description and free-form properties. Each node owns a [Children], which is
// one of four kinds: the shared empty [Leaf], an explicit array of nodes,
// a map of keys to nodes, or a [Keys] list whose nodes are created on demand
// from keys. Children are not computed until somebody asks for them with
// [Children.Nodes]; the computed array is a cache entry that can be evicted
// under memory pressure and is rebuilt transparently on the next access.
//
// Every structural change goes through the write request queue of the
// [Tree] mutex, and is announced to the node listeners as a removal, a
// reordering and an addition, in that order.
package tree

import (
	"fmt"
	"log/slog"
	"sync"

	"cogentcore.org/nodes/base/errors"
	"cogentcore.org/nodes/config"
	"cogentcore.org/nodes/mutex"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/puzpuzpuz/xsync/v3"
)

// Tree holds the state shared by all the nodes of one logical tree:
// the mutex serializing structural changes, the eviction cache of
// computed child arrays, and the registry of root nodes used to
// resolve handles.
type Tree struct {

	// Mutex serializes all structural changes of the tree.
	Mutex *mutex.Mutex

	// Config is the configuration the tree was created with.
	Config *config.Config

	// arrays holds the non-empty computed child arrays, keyed by their
	// [Children] with the array generation as value. An array that falls
	// out of it is cleared and must be computed again.
	arrays *lru.Cache[*Children, uint64]

	// roots are the named root nodes for handle resolution.
	roots *xsync.MapOf[string, *Node]
}

// New returns a new [Tree] configured by the given config,
// which uses [config.Default] if it is nil.
func New(cfg *config.Config) *Tree {
	if cfg == nil {
		cfg = config.Default()
	}
	t := &Tree{
		Mutex:  mutex.New(),
		Config: cfg,
		roots:  xsync.NewMapOf[string, *Node](),
	}
	size := cfg.Cache.MaxArrays
	if size <= 0 {
		size = config.Default().Cache.MaxArrays
	}
	t.arrays = errors.Must1(lru.NewWithEvict(size, t.evicted))
	return t
}

var defaultTree = sync.OnceValue(func() *Tree { return New(nil) })

// Default returns the process-wide default [Tree], used by
// all constructors that are given a nil tree.
func Default() *Tree {
	return defaultTree()
}

// orDefault returns t, or the default tree if t is nil.
func orDefault(t *Tree) *Tree {
	if t == nil {
		return Default()
	}
	return t
}

// Reclaim evicts every computed child array, as if the memory they use
// was reclaimed. Each affected [Children] runs its remove notification
// and is computed again on its next access.
func (t *Tree) Reclaim() {
	t.arrays.Purge()
}

// Cached returns the number of computed child arrays
// currently held by the eviction cache.
func (t *Tree) Cached() int {
	return t.arrays.Len()
}

// evicted is called by the eviction cache when the array of c with the
// given generation falls out of it, either by pressure, by [Tree.Reclaim]
// or because c removed it itself. The actual clearing is a structural
// change, so it is posted as a write request; it is a no-op if c has
// already moved on to another generation.
func (t *Tree) evicted(c *Children, gen uint64) {
	t.Mutex.PostWriteRequest(func() {
		c.finalize(gen)
	})
}

// remember registers the non-empty computed array of c with the given
// generation, so that it can be evicted.
func (t *Tree) remember(c *Children, gen uint64) {
	t.arrays.Add(c, gen)
}

// forget removes c from the eviction cache, so that its array stays
// until it is cleared explicitly.
func (t *Tree) forget(c *Children) {
	t.arrays.Remove(c)
}

// AddRoot registers the given node as a root under its name, so that
// handles starting with that name resolve against it. It is an error
// to register a node that has a parent, or a different node with the
// same name.
func (t *Tree) AddRoot(n *Node) error {
	if p := n.Parent(); p != nil {
		return fmt.Errorf("tree.AddRoot: node %q has parent %q", n.Name(), p.Name())
	}
	name := n.Name()
	if prev, loaded := t.roots.LoadOrStore(name, n); loaded && prev != n {
		return fmt.Errorf("tree.AddRoot: a different root named %q is already registered", name)
	}
	slog.Debug("tree: added root", "name", name)
	return nil
}

// RemoveRoot unregisters the root with the given name.
func (t *Tree) RemoveRoot(name string) {
	t.roots.Delete(name)
}

// Root returns the root registered under the given name, or nil.
func (t *Tree) Root(name string) *Node {
	n, _ := t.roots.Load(name)
	return n
}

// Roots returns the names of all registered roots, in no particular order.
func (t *Tree) Roots() []string {
	var names []string
	t.roots.Range(func(name string, _ *Node) bool {
		names = append(names, name)
		return true
	})
	return names
}
