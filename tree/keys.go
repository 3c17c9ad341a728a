// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"cogentcore.org/nodes/base/plan"
)

// Keys are [KindKeys] children, whose nodes are created from a list of
// keys by a node factory. The factory is called lazily, when the nodes are
// computed, and may return zero or more nodes per key. When the keys
// change, the nodes of the keys that remain are kept, so that the change
// is announced as the minimal removal, reordering and addition.
//
// A key may appear more than once; each occurrence has its own nodes.
type Keys[K comparable] struct {
	*Children
}

// NewKeys returns new keys children in the given tree, which is the
// [Default] tree if nil, with the given node factory. The nodes it returns
// must be new, or belong to these children already.
func NewKeys[K comparable](t *Tree, create func(key K) []*Node) *Keys[K] {
	c := newChildren(t, KindKeys)
	c.create = func(key any) []*Node {
		return create(key.(K))
	}
	return &Keys[K]{c}
}

// SetKeys sets the keys. The change is made with write access, so it may
// not be visible yet when SetKeys returns. If the children have never
// been computed, the keys are replaced without any event.
func (k *Keys[K]) SetKeys(keys ...K) {
	anys := make([]any, len(keys))
	for i, key := range keys {
		anys[i] = key
	}
	eks := plan.Number(anys)
	k.post(func() {
		k.setEntries(eks, func(e entryKey) *info {
			return newInfo(e, nil)
		})
	})
}

// RefreshKey calls the node factory again for every occurrence of the
// given key, if the children are computed, and reconciles the result with
// the current nodes of the key.
func (k *Keys[K]) RefreshKey(key K) {
	k.post(func() {
		for _, e := range k.keys() {
			if e.Key == any(key) {
				k.refreshEntry(e)
			}
		}
	})
}

// Keys returns the current keys in order.
func (k *Keys[K]) Keys() []K {
	eks := k.keys()
	r := make([]K, len(eks))
	for i, e := range eks {
		r[i] = e.Key.(K)
	}
	return r
}

// OnDestroyNodes sets the function called with the nodes that were
// removed from the children because their keys were removed or
// refreshed. It is called after the removal has been announced.
func (k *Keys[K]) OnDestroyNodes(fn func(nodes []*Node)) {
	k.mu.Lock()
	k.destroyNodes = fn
	k.mu.Unlock()
}
