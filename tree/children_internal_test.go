// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/nodes/base/plan"
)

// writePanic runs fn with write access and returns what it panicked with.
func writePanic(t *Tree, fn func()) (r any) {
	t.Mutex.WriteAccess(func() {
		defer func() { r = recover() }()
		fn()
	})
	return
}

// steal makes n look like it belongs to other children.
func steal(n *Node, other *Children) {
	n.mu.Lock()
	n.parent = other
	n.mu.Unlock()
}

func TestRemoveOwnershipMismatch(t *testing.T) {
	tr := New(nil)
	k := NewKeys(tr, func(key string) []*Node { return []*Node{NewLeaf(key)} })
	k.SetKeys("a", "b")
	NewNode(k.Children, "root")
	nodes := k.Nodes()
	require.Len(t, nodes, 2)
	other := NewArray(tr)
	steal(nodes[0], other)

	r := writePanic(tr, func() {
		k.setEntries(plan.Number([]any{"b"}), nil)
	})
	oe, ok := r.(*OwnershipError)
	require.True(t, ok, "panicked with %v", r)
	assert.Same(t, nodes[0], oe.Node)
	assert.Same(t, other, oe.Current)
	assert.Same(t, k.Children, oe.Requested)
	assert.Contains(t, oe.Error(), "a")

	// the tree mutex is usable again
	assert.False(t, tr.Mutex.IsWriteAccess())
	assert.False(t, tr.Mutex.IsReadAccess())
}

func TestReplaceOwnershipMismatch(t *testing.T) {
	tr := New(nil)
	m := NewMap[string](tr)
	NewNode(m.Children, "root")
	one := NewLeaf("one")
	require.NoError(t, m.Put("1", one))
	require.False(t, m.IsInitialized())
	steal(one, NewArray(tr))

	r := writePanic(tr, func() {
		m.put(entryKey{Key: "1"}, NewLeaf("uno"))
	})
	oe, ok := r.(*OwnershipError)
	require.True(t, ok, "panicked with %v", r)
	assert.Same(t, one, oe.Node)
}

func TestConsistencyError(t *testing.T) {
	tr := New(nil)
	k := NewKeys(tr, func(key string) []*Node { return []*Node{NewLeaf(key)} })
	k.SetKeys("a")
	NewNode(k.Children, "root")
	k.Nodes()

	dup := []entryKey{{Key: "a"}, {Key: "a"}}
	r := writePanic(tr, func() {
		k.setEntries(dup, func(e entryKey) *info { return newInfo(e, nil) })
	})
	ce, ok := r.(*ConsistencyError)
	require.True(t, ok, "panicked with %v", r)
	assert.Same(t, k.Children, ce.Children)
	assert.Equal(t, []any{entryKey{Key: "a"}}, ce.Old)
	assert.Len(t, ce.New, 2)
	assert.Equal(t, []string{"a"}, names(k.Nodes()))
}
