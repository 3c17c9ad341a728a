// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"log/slog"
	"slices"

	"cogentcore.org/nodes/base/errors"
	"cogentcore.org/nodes/base/slicesx"
)

// NewArray returns new empty [KindArray] children in the given tree,
// which is the [Default] tree if nil. Their nodes are given explicitly
// with [Children.Add] and [Children.Insert].
func NewArray(t *Tree) *Children {
	return newChildren(t, KindArray)
}

// arrayRow makes the row of an array entry, whose key is its node.
func arrayRow(k entryKey) *info {
	return newInfo(k, k.Key.(*Node))
}

// Add adds the given nodes at the end of [KindArray] children.
// Other kinds do not support adding nodes without a key.
// See [Children.Insert] for the details.
func (c *Children) Add(nodes ...*Node) error {
	return c.Insert(-1, nodes...)
}

// Insert inserts the given nodes at the given index of [KindArray]
// children; a negative or too large index appends them. The nodes are
// assigned to the children right away, and it is an error if one of them
// belongs to other children, is destroyed or is given twice; no node is
// added then. The nodes become visible with write access, so they may
// not be visible yet when Insert returns.
func (c *Children) Insert(index int, nodes ...*Node) error {
	if err := c.supports(KindArray); err != nil {
		return err
	}
	if err := c.assignAll(nodes); err != nil {
		return err
	}
	c.post(func() {
		keys := c.keys()
		var add []entryKey
		for _, n := range nodes {
			if n.IsDestroyed() {
				// destroyed before it could be added
				errors.Must(n.deassignFrom(c))
				continue
			}
			add = append(add, entryKey{Key: n})
		}
		if index < 0 || index > len(keys) {
			index = len(keys)
		}
		c.setEntries(slices.Insert(keys, index, add...), arrayRow)
	})
	return nil
}

// assignAll assigns all of the given nodes to the children,
// or none of them if one cannot be assigned.
func (c *Children) assignAll(nodes []*Node) error {
	var done []*Node
	undo := func() {
		for _, n := range done {
			errors.Must(n.deassignFrom(c))
		}
	}
	for i, n := range nodes {
		if n == nil {
			undo()
			return fmt.Errorf("tree: cannot add a nil node to %v", c)
		}
		if n.ParentChildren() == c || slices.Contains(nodes[:i], n) {
			undo()
			return fmt.Errorf("%w: %q in %v", ErrDuplicate, n.Name(), c)
		}
		if err := n.assignTo(c, -1); err != nil {
			undo()
			return err
		}
		done = append(done, n)
	}
	return nil
}

// Remove removes the given nodes from [KindArray] or [KindMap] children.
// It is an [*OwnershipError] if one of them does not belong to the
// children. The nodes are removed with write access, so they may still
// be there when Remove returns.
func (c *Children) Remove(nodes ...*Node) error {
	if err := c.supports(KindArray, KindMap); err != nil {
		return err
	}
	for _, n := range nodes {
		if cur := n.ParentChildren(); cur != c {
			return &OwnershipError{Node: n, Current: cur, Requested: c}
		}
	}
	c.post(func() {
		c.removeNodes(nodes)
	})
	return nil
}

// removeNodes removes the entries of the given nodes.
// It must be called with write access.
func (c *Children) removeNodes(nodes []*Node) {
	c.mu.Lock()
	var keys []entryKey
	for i, in := range c.entries.Values {
		if !slices.Contains(nodes, in.fixed) {
			keys = append(keys, c.entries.Keys[i])
		}
	}
	c.mu.Unlock()
	c.setEntries(keys, nil)
}

// removeDestroyed removes a node being destroyed, if the kind
// of the children allows it. It must be called with write access.
func (c *Children) removeDestroyed(n *Node) {
	if c.kind == KindArray || c.kind == KindMap {
		c.removeNodes([]*Node{n})
	}
}

// Reorder changes the order of [KindArray] children: the node at index i
// moves to index perm[i]. It returns [ErrBadPermutation] if perm is not a
// permutation of the current nodes.
func (c *Children) Reorder(perm []int) error {
	if err := c.supports(KindArray); err != nil {
		return err
	}
	if err := slicesx.CheckPermutation(perm, len(c.keys())); err != nil {
		return fmt.Errorf("%w: %w", ErrBadPermutation, err)
	}
	perm = slices.Clone(perm)
	c.post(func() {
		keys := c.keys()
		if err := slicesx.CheckPermutation(perm, len(keys)); err != nil {
			slog.Error("tree: dropping reorder after concurrent change", "children", c.String(), "err", err)
			return
		}
		c.setEntries(slicesx.Permute(keys, perm), nil)
	})
	return nil
}

// Sort sorts the nodes of [KindArray] or [KindMap] children by the
// given comparison function, keeping the order of equal nodes.
func (c *Children) Sort(cmp func(a, b *Node) int) error {
	if err := c.supports(KindArray, KindMap); err != nil {
		return err
	}
	c.post(func() {
		c.mu.Lock()
		rows := slices.Clone(c.entries.Values)
		c.mu.Unlock()
		slices.SortStableFunc(rows, func(a, b *info) int {
			return cmp(a.fixed, b.fixed)
		})
		keys := make([]entryKey, len(rows))
		for i, in := range rows {
			keys[i] = in.key
		}
		c.setEntries(keys, nil)
	})
	return nil
}

// keys returns the current entry keys.
func (c *Children) keys() []entryKey {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.entries.Keys)
}

// supports returns an error unless the children are of one of the given kinds.
func (c *Children) supports(kinds ...Kind) error {
	if c.kind == KindLeaf {
		return ErrLeaf
	}
	if !slices.Contains(kinds, c.kind) {
		return fmt.Errorf("%w: %v", ErrNotSupported, c)
	}
	return nil
}
