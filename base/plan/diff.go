// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plan provides an efficient mechanism for computing the
// minimal edits that turn a current ordered list of unique keys into
// a target list. The edits are split into three ordered phases:
// removal, reordering of the surviving keys, and addition, so that
// each phase can be applied and announced on its own.
//
// The mechanism depends on keys being unique within each list;
// use [Number] to make repeated logical keys distinct.
package plan

import (
	"fmt"
)

// Numbered is a logical key paired with its occurrence index among
// equal keys of the same list, so that a key appearing more than once
// yields distinct entries: the first occurrence has Index 0.
type Numbered[K comparable] struct {
	Key   K
	Index int
}

func (n Numbered[K]) String() string {
	if n.Index == 0 {
		return fmt.Sprintf("%v", n.Key)
	}
	return fmt.Sprintf("%v#%d", n.Key, n.Index)
}

// Number wraps each key with its occurrence index in a single pass.
func Number[K comparable](keys []K) []Numbered[K] {
	counts := make(map[K]int, len(keys))
	r := make([]Numbered[K], len(keys))
	for i, k := range keys {
		r[i] = Numbered[K]{Key: k, Index: counts[k]}
		counts[k]++
	}
	return r
}

// Delta describes how to get from an old key list to a new one.
type Delta[K comparable] struct {

	// Removed are the indexes into the old list of keys that are
	// not present in the new list, in ascending order.
	Removed []int

	// Survivors are the keys present in both lists, in their old order.
	Survivors []K

	// Perm maps the old position of each survivor (its index in
	// Survivors) to its position among the survivors in the new list.
	// It is nil when the survivors keep their relative order.
	Perm []int

	// Added are the indexes into the new list of keys that are
	// not present in the old list, in ascending order.
	Added []int
}

// IsEmpty returns whether the delta contains no edits.
func (d *Delta[K]) IsEmpty() bool {
	return len(d.Removed) == 0 && d.Perm == nil && len(d.Added) == 0
}

// Diff computes the [Delta] that turns old into new. Both lists must
// contain unique keys; an error naming the duplicate is returned otherwise.
func Diff[K comparable](old, new []K) (*Delta[K], error) {
	oldIndex, err := indexes(old)
	if err != nil {
		return nil, fmt.Errorf("plan.Diff: old list: %w", err)
	}
	newIndex, err := indexes(new)
	if err != nil {
		return nil, fmt.Errorf("plan.Diff: new list: %w", err)
	}
	d := &Delta[K]{}
	survivorPos := make(map[K]int, len(old))
	for i, k := range old {
		if _, ok := newIndex[k]; !ok {
			d.Removed = append(d.Removed, i)
			continue
		}
		survivorPos[k] = len(d.Survivors)
		d.Survivors = append(d.Survivors, k)
	}
	perm := make([]int, len(d.Survivors))
	moved := false
	np := 0
	for i, k := range new {
		if _, ok := oldIndex[k]; !ok {
			d.Added = append(d.Added, i)
			continue
		}
		op := survivorPos[k]
		perm[op] = np
		if op != np {
			moved = true
		}
		np++
	}
	if moved {
		d.Perm = perm
	}
	return d, nil
}

// indexes returns a map from key to index, or an error for a duplicate key.
func indexes[K comparable](keys []K) (map[K]int, error) {
	m := make(map[K]int, len(keys))
	for i, k := range keys {
		if j, has := m[k]; has {
			return nil, fmt.Errorf("duplicate key %v at %d and %d", k, j, i)
		}
		m[k] = i
	}
	return m, nil
}
