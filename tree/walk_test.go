// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "cogentcore.org/nodes/tree"
)

func TestWalkDown(t *testing.T) {
	root := sampleTree(New(nil))
	var got []string
	root.WalkDown(func(n *Node) bool {
		got = append(got, n.Name())
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b", "c", "c1"}, got)

	got = nil
	root.WalkDown(func(n *Node) bool {
		got = append(got, n.Name())
		return n.Name() != "a"
	})
	assert.Equal(t, []string{"root", "a", "b", "c", "c1"}, got)
}

func TestWalkDownBreadth(t *testing.T) {
	root := sampleTree(New(nil))
	var got []string
	var depths []int
	root.WalkDownBreadth(func(n *Node, depth int) bool {
		got = append(got, n.Name())
		depths = append(depths, depth)
		return Continue
	})
	assert.Equal(t, []string{"root", "a", "b", "c", "a1", "a2", "c1"}, got)
	assert.Equal(t, []int{0, 1, 1, 1, 2, 2, 2}, depths)
}

func TestWalkUp(t *testing.T) {
	root := sampleTree(New(nil))
	c1 := root.FindPath("c/c1")
	var got []string
	assert.True(t, c1.WalkUp(func(n *Node) bool {
		got = append(got, n.Name())
		return Continue
	}))
	assert.Equal(t, []string{"c1", "c", "root"}, got)
	assert.False(t, c1.WalkUp(func(n *Node) bool {
		return n.Name() != "c"
	}))
}

func TestNextPrevious(t *testing.T) {
	root := sampleTree(New(nil))
	var got []string
	for n := root; n != nil; n = Next(n) {
		got = append(got, n.Name())
	}
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b", "c", "c1"}, got)

	got = nil
	for n := Last(root); n != nil; n = Previous(n) {
		got = append(got, n.Name())
	}
	assert.Equal(t, []string{"c1", "c", "b", "a2", "a1", "a", "root"}, got)

	assert.Nil(t, NextSibling(root))
	assert.Equal(t, "b", NextSibling(root.FindPath("a/a2")).Name())
}
