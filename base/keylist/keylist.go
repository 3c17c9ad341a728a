// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package keylist implements an ordered list (slice) of items,
with a map from a key to indexes, to support fast lookup by key
while preserving an authoritative order. It has separate slices
for Values and Keys, so that either can be ranged over directly.
*/
package keylist

import (
	"fmt"
	"slices"
)

// List implements an ordered list (slice) of Values,
// with a map from a key to indexes, to support fast lookup.
// The zero value is ready to use.
type List[K comparable, V any] struct {

	// Values is the ordered slice of items.
	Values []V

	// Keys is the ordered list of keys, in same order as [List.Values].
	Keys []K

	// indexes is the key-to-index mapping.
	indexes map[K]int
}

// updateIndexes rebuilds the index map from [List.Keys].
func (kl *List[K, V]) updateIndexes() {
	kl.indexes = make(map[K]int, len(kl.Keys))
	for i, k := range kl.Keys {
		kl.indexes[k] = i
	}
}

// Add adds an item to the end of the list with the given key.
// An error is returned if the key is already on the list.
func (kl *List[K, V]) Add(key K, val V) error {
	if kl.indexes == nil {
		kl.indexes = make(map[K]int)
	}
	if _, ok := kl.indexes[key]; ok {
		return fmt.Errorf("keylist.Add: key %v is already on the list", key)
	}
	kl.indexes[key] = len(kl.Values)
	kl.Values = append(kl.Values, val)
	kl.Keys = append(kl.Keys, key)
	return nil
}

// At returns the value corresponding to the given key,
// with a zero value returned for a missing key. See [List.AtTry]
// for one that returns a bool for missing keys.
func (kl *List[K, V]) At(key K) V {
	v, _ := kl.AtTry(key)
	return v
}

// AtTry returns the value corresponding to the given key,
// with false returned for a missing key, in case the zero value
// is not diagnostic.
func (kl *List[K, V]) AtTry(key K) (V, bool) {
	idx, ok := kl.indexes[key]
	if ok {
		return kl.Values[idx], true
	}
	var zv V
	return zv, false
}

// IndexByKey returns the index of the given key, with a -1 for missing key.
func (kl *List[K, V]) IndexByKey(key K) int {
	idx, ok := kl.indexes[key]
	if !ok {
		return -1
	}
	return idx
}

// Len returns the number of items in the list.
func (kl *List[K, V]) Len() int {
	if kl == nil {
		return 0
	}
	return len(kl.Values)
}

// Reorder rearranges the list into the order of the given keys,
// which must be exactly the keys currently on the list.
func (kl *List[K, V]) Reorder(keys []K) error {
	if len(keys) != len(kl.Keys) {
		return fmt.Errorf("keylist.Reorder: got %d keys for a list of length %d", len(keys), len(kl.Keys))
	}
	vals := make([]V, len(keys))
	for i, k := range keys {
		idx, ok := kl.indexes[k]
		if !ok {
			return fmt.Errorf("keylist.Reorder: key %v is not on the list", k)
		}
		vals[i] = kl.Values[idx]
	}
	kl.Keys = slices.Clone(keys)
	kl.Values = vals
	kl.updateIndexes()
	return nil
}

