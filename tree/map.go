// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"iter"

	"cogentcore.org/nodes/base/errors"
)

// Map are [KindMap] children, which hold one node per key,
// in the order the keys were first put.
type Map[K comparable] struct {
	*Children
}

// NewMap returns new empty map children in the given tree,
// which is the [Default] tree if nil.
func NewMap[K comparable](t *Tree) *Map[K] {
	return &Map[K]{newChildren(t, KindMap)}
}

// Put sets the node of the given key. A new key is added at the end;
// the node of an existing key is replaced in place. It is an error if
// the node belongs to other children, is destroyed, or is the node of
// another key of the map. The change is made with write access, so it
// may not be visible yet when Put returns.
func (m *Map[K]) Put(key K, n *Node) error {
	if n == nil {
		return fmt.Errorf("tree: cannot put a nil node in %v", m.Children)
	}
	if n.ParentChildren() == m.Children {
		if m.Get(key) != n {
			return fmt.Errorf("%w: %q in %v", ErrDuplicate, n.Name(), m.Children)
		}
	} else if err := n.assignTo(m.Children, -1); err != nil {
		return err
	}
	m.post(func() {
		m.put(entryKey{Key: key}, n)
	})
	return nil
}

// PutAll puts all of the given key and node pairs, in order.
// No pair is put if one of the nodes cannot be put; see [Map.Put].
func (m *Map[K]) PutAll(pairs iter.Seq2[K, *Node]) error {
	var keys []entryKey
	var nodes []*Node
	for k, n := range pairs {
		keys = append(keys, entryKey{Key: k})
		nodes = append(nodes, n)
	}
	var fresh []*Node
	for i, n := range nodes {
		switch {
		case n == nil || n.ParentChildren() != m.Children:
			fresh = append(fresh, n)
		case m.Get(keys[i].Key.(K)) != n:
			return fmt.Errorf("%w: %q in %v", ErrDuplicate, n.Name(), m.Children)
		}
	}
	if err := m.assignAll(fresh); err != nil {
		return err
	}
	m.post(func() {
		for i, k := range keys {
			m.put(k, nodes[i])
		}
	})
	return nil
}

// put sets the node of the given key. It must be called with write access.
func (m *Map[K]) put(k entryKey, n *Node) {
	c := m.Children
	c.mu.Lock()
	in, ok := c.entries.AtTry(k)
	c.mu.Unlock()
	if !ok {
		c.setEntries(append(c.keys(), k), func(k entryKey) *info { return newInfo(k, n) })
		return
	}
	if in.fixed == n {
		return
	}
	initialized := false
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		old := in.fixed
		in.fixed = n
		if c.array != nil {
			initialized = true
			return
		}
		errors.Must(old.deassignFrom(c))
		in.nodes = []*Node{n}
	})
	if initialized {
		c.refreshEntry(k)
	}
}

// RemoveKey removes the entry of the given key, if any.
func (m *Map[K]) RemoveKey(key K) {
	m.post(func() {
		keys := m.keys()
		for i, k := range keys {
			if k.Key == any(key) {
				m.setEntries(append(keys[:i:i], keys[i+1:]...), nil)
				return
			}
		}
	})
}

// Get returns the node of the given key, or nil.
func (m *Map[K]) Get(key K) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in, ok := m.entries.AtTry(entryKey{Key: key}); ok {
		return in.fixed
	}
	return nil
}

// Keys returns the keys of the map in order.
func (m *Map[K]) Keys() []K {
	keys := m.keys()
	r := make([]K, len(keys))
	for i, k := range keys {
		r[i] = k.Key.(K)
	}
	return r
}
