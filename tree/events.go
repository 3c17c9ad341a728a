// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
)

// EventTypes are the types of events fired by a [Node].
type EventTypes int32

const (
	// ChildrenAdded is fired with a [MemberEvent] when nodes
	// are added to the children of a node.
	ChildrenAdded EventTypes = iota

	// ChildrenRemoved is fired with a [MemberEvent] when nodes
	// are removed from the children of a node.
	ChildrenRemoved

	// ChildrenReordered is fired with a [ReorderEvent] when
	// the children of a node change order.
	ChildrenReordered

	// NodeDestroyed is fired with a [DestroyedEvent] when
	// a node is destroyed. It is the last event of a node.
	NodeDestroyed

	// PropertyChanged is fired with a [PropertyEvent] when the
	// name, display name, short description or a property of
	// a node changes.
	PropertyChanged
)

var eventTypeNames = []string{"children-added", "children-removed", "children-reordered", "node-destroyed", "property-changed"}

func (et EventTypes) String() string {
	if et < 0 || int(et) >= len(eventTypeNames) {
		return fmt.Sprintf("EventTypes(%d)", int32(et))
	}
	return eventTypeNames[et]
}

// Event is the interface satisfied by all node events.
type Event interface {

	// Type returns the type of the event.
	Type() EventTypes

	// Source returns the node that fired the event.
	Source() *Node
}

// MemberEvent announces nodes added to or removed from
// the children of its source.
type MemberEvent struct {
	source *Node

	// Added is whether the nodes were added, as opposed to removed.
	Added bool

	// Delta are the added or removed nodes.
	Delta []*Node

	// Indices are the positions of the Delta nodes: after the change for
	// added nodes and before it for removed ones. Both are ascending.
	Indices []int
}

func (ev *MemberEvent) Type() EventTypes {
	if ev.Added {
		return ChildrenAdded
	}
	return ChildrenRemoved
}

func (ev *MemberEvent) Source() *Node { return ev.source }

func (ev *MemberEvent) String() string {
	return fmt.Sprintf("%v %v at %v", ev.Type(), names(ev.Delta), ev.Indices)
}

// ReorderEvent announces a new order of the children of its source.
type ReorderEvent struct {
	source *Node

	// Perm maps the old index of each child to its new index.
	Perm []int
}

func (ev *ReorderEvent) Type() EventTypes { return ChildrenReordered }

func (ev *ReorderEvent) Source() *Node { return ev.source }

// NewIndexOf returns the new index of the child that was at the given old index.
func (ev *ReorderEvent) NewIndexOf(i int) int { return ev.Perm[i] }

func (ev *ReorderEvent) String() string {
	return fmt.Sprintf("%v %v", ev.Type(), ev.Perm)
}

// DestroyedEvent announces that its source was destroyed.
type DestroyedEvent struct {
	source *Node
}

func (ev *DestroyedEvent) Type() EventTypes { return NodeDestroyed }

func (ev *DestroyedEvent) Source() *Node { return ev.source }

// PropertyEvent announces a change of a property of its source.
// The name, display name and short description are reported with
// the property names [PropName], [PropDisplayName] and
// [PropShortDescription].
type PropertyEvent struct {
	source *Node

	// Name is the name of the property.
	Name string

	// Old and New are the values before and after the change;
	// a deleted property has a nil New value.
	Old, New any
}

func (ev *PropertyEvent) Type() EventTypes { return PropertyChanged }

func (ev *PropertyEvent) Source() *Node { return ev.source }

// Names of the built-in properties in a [PropertyEvent].
const (
	PropName             = "name"
	PropDisplayName      = "displayName"
	PropShortDescription = "shortDescription"
)

// Listener receives the events of the nodes it is added to with
// [Node.AddListener]. Listeners are called after the change they announce
// has been made, outside of any exclusive section, so they can read the
// tree. Changes they make are queued and run after the current change.
type Listener interface {
	ChildrenAdded(ev *MemberEvent)
	ChildrenRemoved(ev *MemberEvent)
	ChildrenReordered(ev *ReorderEvent)
	NodeDestroyed(ev *DestroyedEvent)
	PropertyChanged(ev *PropertyEvent)
}

// ListenerFuncs is a [Listener] made of optional functions.
// Use a pointer to it, so that it can be removed again.
type ListenerFuncs struct {
	OnChildrenAdded     func(ev *MemberEvent)
	OnChildrenRemoved   func(ev *MemberEvent)
	OnChildrenReordered func(ev *ReorderEvent)
	OnNodeDestroyed     func(ev *DestroyedEvent)
	OnPropertyChanged   func(ev *PropertyEvent)
}

func (lf *ListenerFuncs) ChildrenAdded(ev *MemberEvent) {
	if lf.OnChildrenAdded != nil {
		lf.OnChildrenAdded(ev)
	}
}

func (lf *ListenerFuncs) ChildrenRemoved(ev *MemberEvent) {
	if lf.OnChildrenRemoved != nil {
		lf.OnChildrenRemoved(ev)
	}
}

func (lf *ListenerFuncs) ChildrenReordered(ev *ReorderEvent) {
	if lf.OnChildrenReordered != nil {
		lf.OnChildrenReordered(ev)
	}
}

func (lf *ListenerFuncs) NodeDestroyed(ev *DestroyedEvent) {
	if lf.OnNodeDestroyed != nil {
		lf.OnNodeDestroyed(ev)
	}
}

func (lf *ListenerFuncs) PropertyChanged(ev *PropertyEvent) {
	if lf.OnPropertyChanged != nil {
		lf.OnPropertyChanged(ev)
	}
}

// AddListener adds the given listener to the node.
// Adding the same listener twice calls it twice.
func (n *Node) AddListener(l Listener) {
	n.mu.Lock()
	n.listeners = append(n.listeners, l)
	n.mu.Unlock()
}

// RemoveListener removes the last registration of the given listener.
// It returns whether the listener was found.
func (n *Node) RemoveListener(l Listener) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.listeners) - 1; i >= 0; i-- {
		if n.listeners[i] == l {
			n.listeners = slices.Delete(n.listeners, i, i+1)
			return true
		}
	}
	return false
}

// fire sends the given event to all listeners of the node, in the
// order they were added. The listeners are called with no lock held.
func (n *Node) fire(ev Event) {
	n.mu.RLock()
	ls := slices.Clone(n.listeners)
	n.mu.RUnlock()
	eventsFired.WithLabelValues(ev.Type().String()).Inc()
	for _, l := range ls {
		callListener(l, ev)
	}
}

// callListener delivers one event. A panicking listener is logged,
// and does not keep the other listeners from being called.
func callListener(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			listenerPanics.Inc()
			slog.Error("tree: listener panicked", "event", ev.Type().String(), "node", ev.Source().Path(), "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()
	switch ev := ev.(type) {
	case *MemberEvent:
		if ev.Added {
			l.ChildrenAdded(ev)
		} else {
			l.ChildrenRemoved(ev)
		}
	case *ReorderEvent:
		l.ChildrenReordered(ev)
	case *DestroyedEvent:
		l.NodeDestroyed(ev)
	case *PropertyEvent:
		l.PropertyChanged(ev)
	}
}

func names(nodes []*Node) []string {
	r := make([]string, len(nodes))
	for i, n := range nodes {
		r[i] = n.Name()
	}
	return r
}
