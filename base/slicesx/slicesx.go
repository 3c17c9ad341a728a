// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicesx provides additional slice functions
// beyond those in the standard [slices] package.
package slicesx

import "fmt"

// Search returns the index of the item in the given slice that matches the target
// according to the given match function, using the given optional starting index
// to optimize the search by searching bidirectionally outward from given index.
// This is much faster when you have some idea about where the item might be.
// If no start index is given, it starts in the middle, which is a good default.
// A start index of 0 gives a plain linear scan from the front.
// It returns -1 if no item matching the match function is found.
func Search[E any](slice []E, match func(e E) bool, startIndex ...int) int {
	n := len(slice)
	if n == 0 {
		return -1
	}
	si := -1
	if len(startIndex) > 0 {
		si = startIndex[0]
	}
	if si < 0 {
		si = n / 2
	}
	if si == 0 {
		for idx, e := range slice {
			if match(e) {
				return idx
			}
		}
		return -1
	}
	if si >= n {
		si = n - 1
	}
	ui := si + 1
	di := si
	upo := false
	for {
		if !upo && ui < n {
			if match(slice[ui]) {
				return ui
			}
			ui++
		} else {
			upo = true
		}
		if di >= 0 {
			if match(slice[di]) {
				return di
			}
			di--
		} else if upo {
			break
		}
	}
	return -1
}

// Permutations:
//
// A permutation perm of length n maps old positions to new ones:
// the element at old index i moves to index perm[i].

// CheckPermutation returns an error if perm is not a permutation
// of the indexes [0, n).
func CheckPermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("slicesx: permutation has length %d, want %d", len(perm), n)
	}
	seen := make([]bool, n)
	for i, p := range perm {
		if p < 0 || p >= n {
			return fmt.Errorf("slicesx: permutation index %d out of range at %d", p, i)
		}
		if seen[p] {
			return fmt.Errorf("slicesx: permutation target %d used twice", p)
		}
		seen[p] = true
	}
	return nil
}

// IsIdentity returns whether perm leaves every position in place.
func IsIdentity(perm []int) bool {
	for i, p := range perm {
		if i != p {
			return false
		}
	}
	return true
}

// Permute returns a new slice in which the element at index i
// of s is placed at index perm[i]. The permutation must be valid
// for len(s); see [CheckPermutation].
func Permute[E any](s []E, perm []int) []E {
	r := make([]E, len(s))
	for i, e := range s {
		r[perm[i]] = e
	}
	return r
}
