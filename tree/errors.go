// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"strings"

	"cogentcore.org/nodes/base/errors"
)

var (
	// ErrLeaf is returned when a structural change is requested
	// on the [Leaf] children.
	ErrLeaf = errors.New("tree: leaf children cannot be modified")

	// ErrNotSupported is returned when a kind of children does not
	// support the requested change, for example adding nodes to [Keys].
	ErrNotSupported = errors.New("tree: operation not supported by this kind of children")

	// ErrDestroyed is returned when a destroyed node is added to children.
	ErrDestroyed = errors.New("tree: node is destroyed")

	// ErrBadPermutation is returned by [Children.Reorder] for an argument
	// that is not a permutation of the current children.
	ErrBadPermutation = errors.New("tree: invalid permutation")

	// ErrDuplicate is returned when the same node is added twice.
	ErrDuplicate = errors.New("tree: node is already a child")

	// ErrAttached is returned when children that already belong to a node
	// are given to another node.
	ErrAttached = errors.New("tree: children are attached to another node")
)

// OwnershipError is the error of assigning a node to children when it
// already belongs to other children, or of removing a node from
// children it does not belong to.
type OwnershipError struct {

	// Node is the node being assigned or removed.
	Node *Node

	// Current is the children the node belongs to, which is nil
	// if it belongs to none.
	Current *Children

	// Requested is the children the node was assigned to or removed from.
	Requested *Children
}

func (e *OwnershipError) Error() string {
	if e.Current == nil {
		return fmt.Sprintf("tree: node %q does not belong to %v", e.Node.Name(), e.Requested)
	}
	return fmt.Sprintf("tree: node %q belongs to %v and cannot be assigned to %v", e.Node.Name(), e.Current, e.Requested)
}

// ConsistencyError reports that the entries of children lost track of
// the cached rows of one of their keys. It indicates a bug, so it is
// raised as a panic with enough information to find it.
type ConsistencyError struct {

	// Children are the inconsistent children.
	Children *Children

	// Key is the key whose row is missing.
	Key any

	// Old and New are the keys before and after the update.
	Old, New []any
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("tree: no row for key %v in %v (old keys %v, new keys %v)", e.Key, e.Children, e.Old, e.New)
}

// NotFoundError is returned when a [Handle] cannot be resolved.
type NotFoundError struct {

	// Handle is the handle being resolved.
	Handle Handle

	// Closest is the deepest node that was reached, or nil if
	// not even the root was found.
	Closest *Node

	// Missing is the name that was not found below Closest.
	Missing string

	// Suggestion is the most similar child name of Closest,
	// or "" if none is similar enough.
	Suggestion string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tree: cannot resolve %q: ", e.Handle.String())
	if e.Closest == nil {
		fmt.Fprintf(&b, "no root named %q", e.Missing)
	} else {
		fmt.Fprintf(&b, "no child %q in %s", e.Missing, e.Closest.Path())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}
	return b.String()
}
