// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"maps"
	"strconv"
	"strings"
	"sync"

	"cogentcore.org/nodes/base/errors"
	"github.com/jinzhu/copier"
)

// Node is a node of the tree. A node has a stable identity, given by its
// pointer, and belongs to at most one [Children] at a time. Its own children
// are given by [Node.Children], which is the shared [Leaf] for nodes
// that have none.
//
// Nodes must be created with [NewNode] or [NewLeaf].
type Node struct {

	// tree is the tree the node was last assigned in.
	tree *Tree

	// mu guards all of the fields below.
	mu sync.RWMutex

	meta Meta

	// parent is the children the node belongs to.
	parent *Children

	// index is the last known index of the node in its parent. It is not
	// guaranteed to be accurate; use the [Node.Index] method.
	index int

	children *Children

	listeners []Listener

	destroyed bool
}

// Meta is the descriptive data of a [Node].
type Meta struct {

	// Name is the internal name of the node, used to find it among its
	// siblings and to build its [Handle]. It is typically unique among
	// its siblings.
	Name string

	// DisplayName is the name shown to the user. It defaults to Name.
	DisplayName string

	// ShortDescription is a one-line description of the node.
	ShortDescription string

	// Properties are arbitrary key-value properties.
	Properties map[string]any
}

// NewNode returns a new node with the given name and children, which must
// not belong to another node. If children is nil, the node is a leaf.
// It panics if the children are already attached to another node.
func NewNode(children *Children, name string) *Node {
	if children == nil {
		children = Leaf
	}
	n := &Node{children: children, tree: children.tree}
	n.meta.Name = name
	errors.Must(children.attachTo(n))
	return n
}

// NewLeaf returns a new node with the given name and no children.
func NewLeaf(name string) *Node {
	return NewNode(Leaf, name)
}

// String implements the [fmt.Stringer] interface by returning the path of the node.
func (n *Node) String() string {
	if n == nil {
		return "nil"
	}
	return n.Path()
}

// Tree returns the tree the node belongs to, which is the
// [Default] tree for a node that was never in a tree.
func (n *Node) Tree() *Tree {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return orDefault(n.tree)
}

// Metadata:

// Name returns the internal name of the node.
func (n *Node) Name() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.meta.Name
}

// DisplayName returns the name shown to the user,
// which is the name unless one was set.
func (n *Node) DisplayName() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.meta.DisplayName == "" {
		return n.meta.Name
	}
	return n.meta.DisplayName
}

// ShortDescription returns the short description of the node.
func (n *Node) ShortDescription() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.meta.ShortDescription
}

// Meta returns a copy of the descriptive data of the node.
func (n *Node) Meta() Meta {
	n.mu.RLock()
	defer n.mu.RUnlock()
	m := n.meta
	m.Properties = maps.Clone(m.Properties)
	return m
}

// SetName sets the internal name of the node. The display name changes
// with it if it was not set explicitly, and an event is fired for both.
func (n *Node) SetName(name string) {
	n.mu.Lock()
	old := n.meta.Name
	if old == name {
		n.mu.Unlock()
		return
	}
	n.meta.Name = name
	derived := n.meta.DisplayName == ""
	n.mu.Unlock()
	n.fire(&PropertyEvent{source: n, Name: PropName, Old: old, New: name})
	if derived {
		n.fire(&PropertyEvent{source: n, Name: PropDisplayName, Old: old, New: name})
	}
}

// SetDisplayName sets the name shown to the user. An empty
// name makes the display name follow the name again.
func (n *Node) SetDisplayName(name string) {
	old := n.DisplayName()
	n.mu.Lock()
	n.meta.DisplayName = name
	n.mu.Unlock()
	if cur := n.DisplayName(); cur != old {
		n.fire(&PropertyEvent{source: n, Name: PropDisplayName, Old: old, New: cur})
	}
}

// SetShortDescription sets the short description of the node.
func (n *Node) SetShortDescription(desc string) {
	n.mu.Lock()
	old := n.meta.ShortDescription
	if old == desc {
		n.mu.Unlock()
		return
	}
	n.meta.ShortDescription = desc
	n.mu.Unlock()
	n.fire(&PropertyEvent{source: n, Name: PropShortDescription, Old: old, New: desc})
}

// SetProperty sets the given property to the given value.
func (n *Node) SetProperty(key string, value any) {
	n.mu.Lock()
	if n.meta.Properties == nil {
		n.meta.Properties = map[string]any{}
	}
	old := n.meta.Properties[key]
	n.meta.Properties[key] = value
	n.mu.Unlock()
	n.fire(&PropertyEvent{source: n, Name: key, Old: old, New: value})
}

// Property returns the value of the given property, or nil.
func (n *Node) Property(key string) any {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.meta.Properties[key]
}

// DeleteProperty deletes the given property.
func (n *Node) DeleteProperty(key string) {
	n.mu.Lock()
	old, has := n.meta.Properties[key]
	delete(n.meta.Properties, key)
	n.mu.Unlock()
	if has {
		n.fire(&PropertyEvent{source: n, Name: key, Old: old})
	}
}

// Parents:

// Parent returns the node whose children this node belongs to, or nil.
func (n *Node) Parent() *Node {
	c := n.ParentChildren()
	if c == nil {
		return nil
	}
	return c.Parent()
}

// ParentChildren returns the children this node belongs to, or nil.
func (n *Node) ParentChildren() *Children {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

// Index returns the index of the node among the computed children of its
// parent, or -1 if it has no parent or is not among them. It caches the
// last value and uses it for an optimized search, so subsequent calls are
// typically fast. It does not compute the parent children.
func (n *Node) Index() int {
	n.mu.RLock()
	c, hint := n.parent, n.index
	n.mu.RUnlock()
	if c == nil {
		return -1
	}
	idx := IndexOf(c.Snapshot(), n, hint)
	if idx >= 0 {
		n.mu.Lock()
		n.index = idx
		n.mu.Unlock()
	}
	return idx
}

// IsDestroyed returns whether [Node.Destroy] was called on the node.
func (n *Node) IsDestroyed() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.destroyed
}

// assignTo makes c the parent children of the node. It is an error if the
// node belongs to other children or is destroyed. Assigning a node to the
// children it already belongs to is allowed.
func (n *Node) assignTo(c *Children, index int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.destroyed {
		return ErrDestroyed
	}
	if n.parent != nil && n.parent != c {
		return &OwnershipError{Node: n, Current: n.parent, Requested: c}
	}
	n.parent = c
	n.index = index
	if c.tree != nil {
		n.tree = c.tree
	}
	return nil
}

// deassignFrom removes the node from c, which must be its parent.
func (n *Node) deassignFrom(c *Children) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.parent != c {
		return &OwnershipError{Node: n, Current: n.parent, Requested: c}
	}
	n.parent = nil
	n.index = 0
	return nil
}

// setIndex updates the index hint of the node.
func (n *Node) setIndex(i int) {
	n.mu.Lock()
	n.index = i
	n.mu.Unlock()
}

// Children:

// Children returns the children of the node, which
// is [Leaf] if it has none.
func (n *Node) Children() *Children {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.children
}

// IsLeaf returns whether the node has the [Leaf] children.
func (n *Node) IsLeaf() bool {
	return n.Children() == Leaf
}

// SetChildren replaces the children of the node, which must not belong
// to another node. If the old children were computed, their nodes are
// announced as removed and the new children are computed and announced
// as added. The change is made with write access, so it may not be
// visible yet when SetChildren returns.
func (n *Node) SetChildren(c *Children) error {
	if c == nil {
		c = Leaf
	}
	if p := c.Parent(); p != nil && p != n {
		return ErrAttached
	}
	n.Tree().Mutex.PostWriteRequest(func() {
		n.setChildren(c)
	})
	return nil
}

func (n *Node) setChildren(c *Children) {
	old := n.Children()
	if old == c {
		return
	}
	observed := old.IsInitialized()
	var removed []*Node
	var err error
	n.Tree().Mutex.Exclusive(func() {
		if err = c.attachTo(n); err != nil {
			return
		}
		if observed {
			removed = old.Snapshot()
		}
		old.detachFrom(n)
		n.mu.Lock()
		n.children = c
		if c.tree != nil {
			n.tree = c.tree
		}
		n.mu.Unlock()
	})
	if errors.Log(err) != nil {
		return
	}
	if len(removed) > 0 {
		n.fire(&MemberEvent{source: n, Delta: removed, Indices: sequence(0, len(removed))})
	}
	if !observed {
		return
	}
	if added := c.Nodes(); len(added) > 0 {
		n.fire(&MemberEvent{source: n, Added: true, Delta: added, Indices: sequence(0, len(added))})
	}
}

// Destroy removes the node from its parent, if the kind of the parent
// children allows it, and fires a [NodeDestroyed] event. A destroyed
// node cannot be added to children again. The change is made with
// write access, so it may not be visible yet when Destroy returns.
func (n *Node) Destroy() {
	n.Tree().Mutex.PostWriteRequest(n.destroy)
}

func (n *Node) destroy() {
	n.mu.RLock()
	done, c := n.destroyed, n.parent
	n.mu.RUnlock()
	if done {
		return
	}
	if c != nil {
		c.removeDestroyed(n)
	}
	n.mu.Lock()
	n.destroyed = true
	n.mu.Unlock()
	n.fire(&DestroyedEvent{source: n})
}

// Clone returns a new node with a deep copy of the metadata of this node
// and a copy of its children: nodes of [KindArray] and [KindMap] children
// are cloned recursively, and [KindKeys] children are recreated from the
// same keys and node factory, without their notification hooks.
// The clone has no parent and no listeners.
func (n *Node) Clone() *Node {
	n.mu.RLock()
	meta := Meta{}
	err := copier.CopyWithOption(&meta, &n.meta, copier.Option{DeepCopy: true})
	c := n.children
	n.mu.RUnlock()
	errors.Log(err)
	cl := NewNode(c.clone(), meta.Name)
	cl.meta = meta
	return cl
}

// Paths:

// EscapePathName returns a name that replaces any / with \\
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName returns a name that replaces any \\ with /
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the path to this node from the tree root,
// using names separated by / delimeters. Any
// existing / characters in names are escaped to \\
func (n *Node) Path() string {
	if p := n.Parent(); p != nil {
		return p.Path() + "/" + EscapePathName(n.Name())
	}
	return "/" + EscapePathName(n.Name())
}

// PathFrom returns the path to this node from the given ancestor,
// excluding the name of the ancestor and the leading slash; for
// example, in the tree a/b/c/d/e, the result of d.PathFrom(b) is c/d.
func (n *Node) PathFrom(ancestor *Node) string {
	if n == ancestor {
		return ""
	}
	p := n.Parent()
	if p == nil || p == ancestor {
		return EscapePathName(n.Name())
	}
	return p.PathFrom(ancestor) + "/" + EscapePathName(n.Name())
}

// FindPath returns the node at the given path from this node, computing
// children as needed. FindPath only works correctly when names are
// unique. The given path must be consistent with the format produced by
// [Node.PathFrom]. There is also support for index-based access
// (ie: [0] for the first child, [-1] for the last) for cases where
// indexes are more useful than names. It returns nil if no node is
// found at the given path.
func (n *Node) FindPath(path string) *Node {
	cur := n
	for _, pe := range strings.Split(strings.Trim(strings.TrimSpace(path), "\""), "/") {
		if len(pe) == 0 {
			continue
		}
		cur = findPathChild(cur, UnescapePathName(pe))
		if cur == nil {
			return nil
		}
	}
	return cur
}

// findPathChild finds the child with the given string representation in [Node.FindPath].
func findPathChild(n *Node, child string) *Node {
	if child[0] == '[' && child[len(child)-1] == ']' {
		idx, err := strconv.Atoi(child[1 : len(child)-1])
		if err != nil {
			return nil
		}
		if idx < 0 { // from end
			idx += n.Children().Count()
		}
		return n.Children().NodeAt(idx)
	}
	return n.Children().FindChild(child)
}

// sequence returns the ints from start to start+n-1.
func sequence(start, n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = start + i
	}
	return r
}
