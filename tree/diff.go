// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"slices"

	"cogentcore.org/nodes/base/errors"
	"cogentcore.org/nodes/base/keylist"
	"cogentcore.org/nodes/base/plan"
	"cogentcore.org/nodes/base/slicesx"
)

// setEntries changes the entries of the children to the given keys, which
// must be unique. Rows of the keys already present are kept; rows of new
// keys are made with newRow. It must be called with write access.
//
// If the children are not computed, the entries are replaced without any
// event. Otherwise the change is applied and announced in three phases:
// the removed entries, then the new order of the remaining ones, and then
// the added entries. Each phase leaves the children consistent before its
// event is fired, and the listeners can read the children in between.
func (c *Children) setEntries(keys []entryKey, newRow func(k entryKey) *info) {
	m := c.tree.Mutex
	var d *plan.Delta[entryKey]
	var old []entryKey
	var dropped []*Node
	initialized := false
	m.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		old = slices.Clone(c.entries.Keys)
		var err error
		d, err = plan.Diff(old, keys)
		if err != nil {
			panic(c.consistency(nil, old, keys))
		}
		if c.array != nil {
			initialized = true
			return
		}
		dropped = c.replaceLocked(d, old, keys, newRow)
	})
	if !initialized {
		c.destroy(dropped)
		return
	}
	if d.IsEmpty() {
		return
	}
	c.removePhase(d, old, keys)
	c.reorderPhase(d, old, keys)
	c.addPhase(d, old, keys, newRow)
}

// replaceLocked replaces the entries of children that are not computed,
// returning the nodes of the dropped rows, which are unassigned.
func (c *Children) replaceLocked(d *plan.Delta[entryKey], old, keys []entryKey, newRow func(k entryKey) *info) []*Node {
	var dropped []*Node
	for _, i := range d.Removed {
		in := c.entries.Values[i]
		for _, n := range in.nodes {
			errors.Must(n.deassignFrom(c))
			if in.fixed == nil {
				dropped = append(dropped, n)
			}
		}
	}
	var kl keylist.List[entryKey, *info]
	for _, k := range keys {
		in, ok := c.entries.AtTry(k)
		if !ok {
			in = newRow(k)
		}
		kl.Add(k, in)
	}
	c.entries = kl
	return dropped
}

// removePhase removes the entries that are not in the new keys.
func (c *Children) removePhase(d *plan.Delta[entryKey], old, keys []entryKey) {
	if len(d.Removed) == 0 {
		return
	}
	var removed []*Node
	var indices []int
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		offs := c.offsetsLocked()
		for _, i := range d.Removed {
			in := c.entries.Values[i]
			if !in.computed {
				panic(c.consistency(old[i], old, keys))
			}
			for j, n := range in.nodes {
				errors.Must(n.deassignFrom(c))
				removed = append(removed, n)
				indices = append(indices, offs[i]+j)
			}
		}
		c.keepLocked(d.Survivors, old, keys)
		c.refreshArrayLocked()
	})
	c.fireMember(false, removed, indices)
	c.destroy(removed)
}

// reorderPhase moves the remaining entries into their new order.
func (c *Children) reorderPhase(d *plan.Delta[entryKey], old, keys []entryKey) {
	if d.Perm == nil {
		return
	}
	var perm []int
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		oldOffs := c.offsetsLocked()
		order := slicesx.Permute(d.Survivors, d.Perm)
		if err := c.entries.Reorder(order); err != nil {
			panic(c.consistency(nil, old, keys))
		}
		newOffs := c.offsetsLocked()
		perm = make([]int, len(c.array.nodes))
		for i, k := range d.Survivors {
			in := c.entries.At(k)
			for j := range in.nodes {
				perm[oldOffs[i]+j] = newOffs[d.Perm[i]] + j
			}
		}
		c.refreshArrayLocked()
	})
	if !slicesx.IsIdentity(perm) {
		c.fireReorder(perm)
	}
}

// addPhase adds the entries of the new keys that are not present yet,
// computing their nodes before they are added.
func (c *Children) addPhase(d *plan.Delta[entryKey], old, keys []entryKey, newRow func(k entryKey) *info) {
	if len(d.Added) == 0 {
		return
	}
	rows := make(map[entryKey]*info, len(d.Added))
	for _, i := range d.Added {
		in := newRow(keys[i])
		if !in.computed {
			in.nodes = c.produce(in)
			in.computed = true
		}
		rows[keys[i]] = in
	}
	var added []*Node
	var indices []int
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		var kl keylist.List[entryKey, *info]
		for _, k := range keys {
			in, ok := c.entries.AtTry(k)
			if !ok {
				if in, ok = rows[k]; !ok {
					panic(c.consistency(k, old, keys))
				}
			}
			kl.Add(k, in)
		}
		c.entries = kl
		c.refreshArrayLocked()
		offs := c.offsetsLocked()
		for _, i := range d.Added {
			for j, n := range c.entries.Values[i].nodes {
				added = append(added, n)
				indices = append(indices, offs[i]+j)
			}
		}
	})
	c.fireMember(true, added, indices)
}

// keepLocked reduces the entries to the given surviving keys, in their order.
func (c *Children) keepLocked(survivors, old, keys []entryKey) {
	var kl keylist.List[entryKey, *info]
	for _, k := range survivors {
		in, ok := c.entries.AtTry(k)
		if !ok {
			panic(c.consistency(k, old, keys))
		}
		kl.Add(k, in)
	}
	c.entries = kl
}

// refreshEntry computes the nodes of the entry with the given key again,
// and reconciles them with its current nodes in the same three phases as
// [Children.setEntries], within the range of the entry. Nodes present in
// both are kept. It must be called with write access.
func (c *Children) refreshEntry(k entryKey) {
	var in *info
	initialized := false
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		var ok bool
		if in, ok = c.entries.AtTry(k); !ok {
			return
		}
		if c.array != nil {
			initialized = true
			return
		}
		if in.fixed == nil {
			for _, n := range in.nodes {
				errors.Must(n.deassignFrom(c))
			}
			in.nodes = nil
			in.computed = false
		}
	})
	if !initialized {
		return
	}
	fresh := c.produce(in)
	inFresh := make(map[*Node]bool, len(fresh))
	for _, n := range fresh {
		inFresh[n] = true
	}

	var prior map[*Node]bool
	var removed []*Node
	var indices []int
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		off := c.offsetsLocked()[c.entries.IndexByKey(k)]
		prior = make(map[*Node]bool, len(in.nodes))
		var kept []*Node
		for j, n := range in.nodes {
			prior[n] = true
			if inFresh[n] {
				kept = append(kept, n)
				continue
			}
			errors.Must(n.deassignFrom(c))
			removed = append(removed, n)
			indices = append(indices, off+j)
		}
		in.nodes = kept
		c.refreshArrayLocked()
	})
	c.fireMember(false, removed, indices)
	c.destroy(removed)

	var perm []int
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		off := c.offsetsLocked()[c.entries.IndexByKey(k)]
		var order []*Node
		pos := make(map[*Node]int, len(in.nodes))
		for _, n := range fresh {
			if prior[n] {
				pos[n] = len(order)
				order = append(order, n)
			}
		}
		perm = sequence(0, len(c.array.nodes))
		for j, n := range in.nodes {
			perm[off+j] = off + pos[n]
		}
		in.nodes = order
		c.refreshArrayLocked()
	})
	if !slicesx.IsIdentity(perm) {
		c.fireReorder(perm)
	}

	var added []*Node
	c.tree.Mutex.Exclusive(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		off := c.offsetsLocked()[c.entries.IndexByKey(k)]
		indices = nil
		for j, n := range fresh {
			if !prior[n] {
				added = append(added, n)
				indices = append(indices, off+j)
			}
		}
		in.nodes = fresh
		c.refreshArrayLocked()
	})
	c.fireMember(true, added, indices)
}

// fireMember fires a [MemberEvent] on the parent node, if any nodes changed.
func (c *Children) fireMember(added bool, nodes []*Node, indices []int) {
	if len(nodes) == 0 {
		return
	}
	if p := c.Parent(); p != nil {
		p.fire(&MemberEvent{source: p, Added: added, Delta: nodes, Indices: indices})
	}
}

// fireReorder fires a [ReorderEvent] on the parent node.
func (c *Children) fireReorder(perm []int) {
	if p := c.Parent(); p != nil {
		p.fire(&ReorderEvent{source: p, Perm: perm})
	}
}

// destroy passes nodes removed from [KindKeys] children to their hook.
func (c *Children) destroy(nodes []*Node) {
	if len(nodes) == 0 || c.kind != KindKeys {
		return
	}
	c.mu.Lock()
	hook := c.destroyNodes
	c.mu.Unlock()
	if hook != nil {
		hook(nodes)
	}
}

// consistency returns the error for a missing row of the given key.
func (c *Children) consistency(k any, old, keys []entryKey) *ConsistencyError {
	e := &ConsistencyError{Children: c, Key: k}
	for _, o := range old {
		e.Old = append(e.Old, o)
	}
	for _, n := range keys {
		e.New = append(e.New, n)
	}
	return e
}
