// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/xlab/treeprint"
)

// Dump returns a drawing of the given node and its subtree down to the
// given depth below it, with a non-positive depth meaning no limit. Each
// node is shown with its display name and, if set, its short description.
// It computes the children it visits.
func Dump(n *Node, depth int) string {
	tp := treeprint.NewWithRoot(dumpLabel(n))
	dumpChildren(tp, n, depth-1)
	return tp.String()
}

func dumpChildren(tp treeprint.Tree, n *Node, depth int) {
	if depth == 0 {
		return
	}
	for _, kid := range n.Children().Nodes() {
		if kid.IsLeaf() {
			tp.AddNode(dumpLabel(kid))
			continue
		}
		dumpChildren(tp.AddBranch(dumpLabel(kid)), kid, depth-1)
	}
}

func dumpLabel(n *Node) string {
	if desc := n.ShortDescription(); desc != "" {
		return n.DisplayName() + " (" + desc + ")"
	}
	return n.DisplayName()
}
