// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"

	"cogentcore.org/nodes/base/errors"
)

// admin.go has infrastructure code outside of the Node and Children types.

// MoveToParent removes the given node from its current children, which
// must be of [KindArray] or [KindMap], and adds it at the end of the given
// [KindArray] children. The old and new parents can be in different trees
// (or not). The move is made with write access, so it may not be
// visible yet when MoveToParent returns.
func MoveToParent(child *Node, to *Children) error {
	if err := to.supports(KindArray); err != nil {
		return err
	}
	from := child.ParentChildren()
	if from == to {
		return nil
	}
	if from != nil {
		if err := from.supports(KindArray, KindMap); err != nil {
			return fmt.Errorf("tree.MoveToParent: cannot remove %q: %w", child.Name(), err)
		}
	}
	if from == nil {
		return to.Add(child)
	}
	from.tree.Mutex.PostWriteRequest(func() {
		from.removeNodes([]*Node{child})
		errors.Log(to.Add(child))
	})
	return nil
}

// IsRoot returns whether the given node has no parent.
func IsRoot(n *Node) bool {
	return n.Parent() == nil
}

// Root returns the root node of the given node's tree.
func Root(n *Node) *Node {
	for {
		p := n.Parent()
		if p == nil {
			return n
		}
		n = p
	}
}

// ParentLevel finds a given potential parent node recursively up the
// hierarchy, returning the level above the current node that the parent was
// found, and -1 if not found.
func ParentLevel(n, parent *Node) int {
	level := 0
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cur == parent {
			return level
		}
		level++
	}
	return -1
}

// ParentByName finds first parent recursively up hierarchy that matches
// the given name. It returns nil if not found.
func ParentByName(n *Node, name string) *Node {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Name() == name {
			return cur
		}
	}
	return nil
}
