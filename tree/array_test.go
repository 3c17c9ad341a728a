// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "cogentcore.org/nodes/tree"
)

func testArray(t *testing.T) (*Children, *Node, []*Node) {
	arr := NewArray(New(nil))
	root := NewNode(arr, "root")
	kids := []*Node{NewLeaf("a"), NewLeaf("b"), NewLeaf("c")}
	require.NoError(t, arr.Add(kids...))
	return arr, root, kids
}

func TestArrayAdd(t *testing.T) {
	arr, root, kids := testArray(t)
	rec := record(root)
	// not observed yet
	assert.Empty(t, rec.get())
	assert.Equal(t, []string{"a", "b", "c"}, nodeNames(arr.Nodes()))
	for i, k := range kids {
		assert.Equal(t, root, k.Parent())
		assert.Equal(t, i, k.Index())
	}

	x := NewLeaf("x")
	require.NoError(t, arr.Insert(1, x))
	assert.Equal(t, []string{"added [x] [1]"}, rec.get())
	assert.Equal(t, []string{"a", "x", "b", "c"}, nodeNames(arr.Nodes()))
	assert.Equal(t, 1, x.Index())
	assert.Equal(t, 2, kids[1].Index())

	rec.reset()
	require.NoError(t, arr.Insert(100, NewLeaf("y"), NewLeaf("z")))
	assert.Equal(t, []string{"added [y z] [4 5]"}, rec.get())
	assert.Equal(t, 6, arr.Count())
}

func TestArrayRemove(t *testing.T) {
	arr, root, kids := testArray(t)
	arr.Nodes()
	rec := record(root)
	require.NoError(t, arr.Remove(kids[1]))
	assert.Equal(t, []string{"removed [b] [1]"}, rec.get())
	assert.Equal(t, []string{"a", "c"}, nodeNames(arr.Nodes()))
	assert.Nil(t, kids[1].Parent())
	assert.Equal(t, -1, kids[1].Index())

	err := arr.Remove(kids[1])
	var oe *OwnershipError
	require.ErrorAs(t, err, &oe)
	assert.Same(t, kids[1], oe.Node)
	assert.Nil(t, oe.Current)

	// a removed node can be added again
	require.NoError(t, arr.Add(kids[1]))
	assert.Equal(t, []string{"a", "c", "b"}, nodeNames(arr.Nodes()))
}

func TestArrayOwnership(t *testing.T) {
	arr, _, kids := testArray(t)
	other := NewArray(New(nil))
	NewNode(other, "other")
	err := other.Add(NewLeaf("ok"), kids[0])
	var oe *OwnershipError
	require.ErrorAs(t, err, &oe)
	assert.Same(t, arr, oe.Current)
	assert.Same(t, other, oe.Requested)
	assert.Contains(t, err.Error(), `"a"`)
	// nothing was added
	assert.Empty(t, other.Nodes())
	assert.Same(t, arr, kids[0].ParentChildren())

	assert.ErrorIs(t, arr.Add(kids[0]), ErrDuplicate)
	n := NewLeaf("twice")
	assert.ErrorIs(t, other.Add(n, n), ErrDuplicate)
	assert.Nil(t, n.ParentChildren())
	assert.Error(t, other.Add(nil))
}

func TestArrayReorder(t *testing.T) {
	arr, root, _ := testArray(t)
	arr.Nodes()
	rec := record(root)
	require.NoError(t, arr.Reorder([]int{2, 1, 0}))
	assert.Equal(t, []string{"reordered [2 1 0]"}, rec.get())
	assert.Equal(t, []string{"c", "b", "a"}, nodeNames(arr.Nodes()))

	rec.reset()
	require.NoError(t, arr.Reorder([]int{0, 1, 2}))
	assert.Empty(t, rec.get())

	assert.ErrorIs(t, arr.Reorder([]int{0, 0, 1}), ErrBadPermutation)
	assert.ErrorIs(t, arr.Reorder([]int{0, 1}), ErrBadPermutation)
	assert.Equal(t, []string{"c", "b", "a"}, nodeNames(arr.Nodes()))
}

func TestArraySort(t *testing.T) {
	arr := NewArray(New(nil))
	root := NewNode(arr, "root")
	require.NoError(t, arr.Add(NewLeaf("c"), NewLeaf("x"), NewLeaf("a")))
	arr.Nodes()
	rec := record(root)
	require.NoError(t, arr.Sort(func(a, b *Node) int {
		return strings.Compare(a.Name(), b.Name())
	}))
	assert.Equal(t, []string{"reordered [1 2 0]"}, rec.get())
	assert.Equal(t, []string{"a", "c", "x"}, nodeNames(arr.Nodes()))
}

func TestArrayReorderEvent(t *testing.T) {
	arr, root, kids := testArray(t)
	before := arr.Nodes()
	var ev *ReorderEvent
	root.AddListener(&ListenerFuncs{OnChildrenReordered: func(e *ReorderEvent) { ev = e }})
	require.NoError(t, arr.Reorder([]int{1, 2, 0}))
	require.NotNil(t, ev)
	after := arr.Nodes()
	for i, n := range before {
		assert.Same(t, n, after[ev.NewIndexOf(i)])
	}
	assert.Equal(t, 0, kids[2].Index())
}

func TestArrayChangesBeforeObserved(t *testing.T) {
	arr, root, kids := testArray(t)
	rec := record(root)
	require.NoError(t, arr.Remove(kids[0]))
	require.NoError(t, arr.Reorder([]int{1, 0}))
	assert.Empty(t, rec.get())
	assert.Equal(t, []string{"c", "b"}, nodeNames(arr.Nodes()))
	assert.Empty(t, rec.get())
}

func TestLeaf(t *testing.T) {
	n := NewLeaf("leaf")
	assert.True(t, n.IsLeaf())
	assert.Same(t, Leaf, n.Children())
	assert.Equal(t, KindLeaf, Leaf.Kind())
	assert.Nil(t, Leaf.Nodes())
	assert.Equal(t, 0, Leaf.Count())
	assert.Nil(t, Leaf.NodeAt(0))
	assert.False(t, Leaf.IsInitialized())
	assert.ErrorIs(t, Leaf.Add(NewLeaf("x")), ErrLeaf)
	assert.ErrorIs(t, Leaf.Remove(n), ErrLeaf)
	assert.ErrorIs(t, Leaf.Reorder(nil), ErrLeaf)
	assert.ErrorIs(t, Leaf.Sort(nil), ErrLeaf)
	// many nodes share it
	assert.Same(t, Leaf, NewLeaf("other").Children())
	assert.Nil(t, Leaf.Parent())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "leaf", KindLeaf.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "map", KindMap.String())
	assert.Equal(t, "keys", KindKeys.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestArrayInsertDestroyed(t *testing.T) {
	tr := New(nil)
	arr := NewArray(tr)
	NewNode(arr, "root")
	x, y := NewLeaf("x"), NewLeaf("y")
	tr.Mutex.ReadAccess(func() {
		// both changes are queued, and x is destroyed first
		x.Destroy()
		require.NoError(t, arr.Add(x, y))
		assert.Same(t, arr, x.ParentChildren())
	})
	assert.True(t, x.IsDestroyed())
	assert.Nil(t, x.ParentChildren())
	assert.Equal(t, []string{"y"}, nodeNames(arr.Nodes()))
}
