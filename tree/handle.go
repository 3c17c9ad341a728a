// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"slices"
	"strings"

	"cogentcore.org/nodes/base/errors"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Handle is a persistent reference to a node: the names of the nodes on
// the path from a root to it. Unlike the node itself, a handle stays valid
// when the children on its path are evicted and computed again, and can be
// stored as text.
type Handle struct {

	// Names are the names of the nodes on the path,
	// starting with the name of the root.
	Names []string
}

// Handle returns the handle of the node, which starts at its root.
func (n *Node) Handle() Handle {
	var names []string
	for cur := n; cur != nil; cur = cur.Parent() {
		names = append(names, cur.Name())
	}
	slices.Reverse(names)
	return Handle{Names: names}
}

// ParseHandle parses the text form of a handle; see [Handle.String].
func ParseHandle(s string) (Handle, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return Handle{}, errors.New("tree.ParseHandle: empty handle")
	}
	parts := strings.Split(s, "/")
	for i, p := range parts {
		parts[i] = UnescapePathName(p)
	}
	return Handle{Names: parts}, nil
}

// String returns the text form of the handle: the names separated
// by /, with any / in a name escaped as in [EscapePathName].
func (h Handle) String() string {
	parts := make([]string, len(h.Names))
	for i, nm := range h.Names {
		parts[i] = EscapePathName(nm)
	}
	return strings.Join(parts, "/")
}

// MarshalText implements [encoding.TextMarshaler].
func (h Handle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (h *Handle) UnmarshalText(text []byte) error {
	p, err := ParseHandle(string(text))
	if err != nil {
		return err
	}
	*h = p
	return nil
}

// Node resolves the handle against the roots registered in the given tree,
// which is the [Default] tree if nil, computing children along the path.
// It returns a [*NotFoundError] naming the deepest node reached if the path
// does not exist.
func (h Handle) Node(t *Tree) (*Node, error) {
	t = orDefault(t)
	if len(h.Names) == 0 {
		return nil, errors.New("tree: cannot resolve an empty handle")
	}
	cur := t.Root(h.Names[0])
	if cur == nil {
		return nil, &NotFoundError{Handle: h, Missing: h.Names[0], Suggestion: closest(h.Names[0], t.Roots())}
	}
	for _, nm := range h.Names[1:] {
		next := cur.Children().FindChild(nm)
		if next == nil {
			return nil, &NotFoundError{Handle: h, Closest: cur, Missing: nm, Suggestion: closest(nm, names(cur.Children().Nodes()))}
		}
		cur = next
	}
	return cur, nil
}

// minSimilarity is the similarity a name needs to be suggested.
const minSimilarity = 0.5

// closest returns the candidate most similar to name,
// or "" if none is similar enough.
func closest(name string, candidates []string) string {
	lev := metrics.NewLevenshtein()
	best, bestSim := "", minSimilarity
	for _, c := range candidates {
		if sim := strutil.Similarity(name, c, lev); sim >= bestSim && (best == "" || sim > bestSim) {
			best, bestSim = c, sim
		}
	}
	return best
}
