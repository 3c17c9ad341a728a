// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
This file provides basic tree walking functions for iterative traversal
of the tree in up / down directions. All of them compute the children
they visit, so walking down a tree of [Keys] children creates its nodes.
*/

package tree

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// Last returns the last node in the tree below n, or n itself
// if it has no children.
func Last(n *Node) *Node {
	for {
		nodes := n.Children().Nodes()
		if len(nodes) == 0 {
			return n
		}
		n = nodes[len(nodes)-1]
	}
}

// Previous returns the previous node in the tree,
// or nil if this is the root node.
func Previous(n *Node) *Node {
	parent := n.Parent()
	if parent == nil {
		return nil
	}
	myidx := n.Index()
	if myidx > 0 {
		return Last(parent.Children().NodeAt(myidx - 1))
	}
	return parent
}

// Next returns next node in the tree,
// or nil if this is the last node.
func Next(n *Node) *Node {
	if first := n.Children().NodeAt(0); first != nil {
		return first
	}
	return NextSibling(n)
}

// NextSibling returns the next sibling of this node, or of its
// closest ancestor that has one, or nil if there is none.
func NextSibling(n *Node) *Node {
	for {
		parent := n.Parent()
		if parent == nil {
			return nil
		}
		if idx := n.Index(); idx >= 0 {
			if next := parent.Children().NodeAt(idx + 1); next != nil {
				return next
			}
		}
		n = parent
	}
}

// WalkUp calls the given function on the node and all of its parents,
// sequentially in the current goroutine. It stops walking if the function
// returns [Break] and keeps walking if it returns [Continue]. It returns
// whether walking was finished (false if it was aborted with [Break]).
func (n *Node) WalkUp(fun func(n *Node) bool) bool {
	for cur := n; cur != nil; cur = cur.Parent() {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkDown calls the given function on the node and all of its children
// in a depth-first manner, sequentially in the current goroutine. It stops
// walking the current branch of the tree if the function returns [Break]
// and keeps walking if it returns [Continue]. It is non-recursive, and
// visits the children as they are when it gets to them.
func (n *Node) WalkDown(fun func(n *Node) bool) {
	type frame struct {
		nodes []*Node
		next  int
	}
	if !fun(n) {
		return
	}
	stack := []frame{{nodes: n.Children().Nodes()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.nodes) {
			stack = stack[:len(stack)-1]
			continue
		}
		cur := top.nodes[top.next]
		top.next++
		if cur.IsDestroyed() || !fun(cur) {
			continue
		}
		if kids := cur.Children().Nodes(); len(kids) > 0 {
			stack = append(stack, frame{nodes: kids})
		}
	}
}

// WalkDownBreadth calls the given function on the node and all of its
// children in breadth-first order, with the depth of each node below n.
// It stops walking the current branch of the tree if the function returns
// [Break] and keeps walking if it returns [Continue].
func (n *Node) WalkDownBreadth(fun func(n *Node, depth int) bool) {
	type item struct {
		node  *Node
		depth int
	}
	queue := []item{{n, 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !fun(cur.node, cur.depth) {
			continue
		}
		for _, kid := range cur.node.Children().Nodes() {
			queue = append(queue, item{kid, cur.depth + 1})
		}
	}
}
