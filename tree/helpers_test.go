// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"fmt"
	"sync"

	. "cogentcore.org/nodes/tree"
)

// recorder is a listener that records the events it gets as strings.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func record(n *Node) *recorder {
	r := &recorder{}
	n.AddListener(r)
	return r
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.events = append(r.events, s)
	r.mu.Unlock()
}

func (r *recorder) ChildrenAdded(ev *MemberEvent) {
	r.add(fmt.Sprintf("added %v %v", nodeNames(ev.Delta), ev.Indices))
}

func (r *recorder) ChildrenRemoved(ev *MemberEvent) {
	r.add(fmt.Sprintf("removed %v %v", nodeNames(ev.Delta), ev.Indices))
}

func (r *recorder) ChildrenReordered(ev *ReorderEvent) {
	r.add(fmt.Sprintf("reordered %v", ev.Perm))
}

func (r *recorder) NodeDestroyed(ev *DestroyedEvent) {
	r.add("destroyed " + ev.Source().Name())
}

func (r *recorder) PropertyChanged(ev *PropertyEvent) {
	r.add(fmt.Sprintf("property %s %v -> %v", ev.Name, ev.Old, ev.New))
}

func (r *recorder) get() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *recorder) reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

func nodeNames(nodes []*Node) []string {
	r := make([]string, len(nodes))
	for i, n := range nodes {
		r[i] = n.Name()
	}
	return r
}

// leafKeys returns keys children in the given tree that create one
// leaf named after each key, and counts the calls of the factory.
func leafKeys(t *Tree) (*Keys[string], *int) {
	calls := new(int)
	k := NewKeys(t, func(key string) []*Node {
		*calls++
		return []*Node{NewLeaf(key)}
	})
	return k, calls
}

// sampleTree returns the tree root{a{a1,a2}, b, c{c1}} built from a snapshot.
func sampleTree(t *Tree) *Node {
	s := &Snapshot{Name: "root", Children: []*Snapshot{
		{Name: "a", Children: []*Snapshot{{Name: "a1"}, {Name: "a2"}}},
		{Name: "b", ShortDescription: "bee"},
		{Name: "c", Children: []*Snapshot{{Name: "c1"}}},
	}}
	return s.Build(t)
}
