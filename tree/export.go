// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"

	"gopkg.in/yaml.v3"
)

// Snapshot is a plain copy of a node and its subtree, as returned by
// [Export]. It can be encoded as JSON or YAML, and turned back into
// nodes with [Snapshot.Build].
type Snapshot struct {
	Name             string         `json:"name" yaml:"name"`
	DisplayName      string         `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	ShortDescription string         `json:"shortDescription,omitempty" yaml:"shortDescription,omitempty"`
	Properties       map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children         []*Snapshot    `json:"children,omitempty" yaml:"children,omitempty"`
}

// Export returns a snapshot of the given node and its subtree down to the
// given depth below it, with a non-positive depth meaning no limit. It
// computes the children it visits.
func Export(n *Node, depth int) *Snapshot {
	m := n.Meta()
	s := &Snapshot{Name: m.Name, ShortDescription: m.ShortDescription, Properties: m.Properties}
	if m.DisplayName != m.Name {
		s.DisplayName = m.DisplayName
	}
	if depth == 1 {
		return s
	}
	for _, kid := range n.Children().Nodes() {
		s.Children = append(s.Children, Export(kid, depth-1))
	}
	return s
}

// Build returns new nodes for the snapshot in the given tree, with
// [KindArray] children for each snapshot that has children.
func (s *Snapshot) Build(t *Tree) *Node {
	var c *Children
	if len(s.Children) > 0 {
		c = NewArray(t)
	}
	n := NewNode(c, s.Name)
	n.meta.DisplayName = s.DisplayName
	n.meta.ShortDescription = s.ShortDescription
	n.meta.Properties = maps.Clone(s.Properties)
	if c == nil {
		return n
	}
	kids := make([]*Node, len(s.Children))
	for i, ks := range s.Children {
		kids[i] = ks.Build(t)
	}
	for i, kid := range kids {
		k := entryKey{Key: kid}
		kid.assignTo(c, i)
		c.entries.Add(k, newInfo(k, kid))
	}
	return n
}

// Formats of [Snapshot.Write].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Write writes the snapshot to w in the given format, json or yaml.
func (s *Snapshot) Write(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("tree.Snapshot.Write: unknown format %q", format)
}

// ReadSnapshot reads a snapshot written by [Snapshot.Write] in the given format.
func ReadSnapshot(r io.Reader, format string) (*Snapshot, error) {
	s := &Snapshot{}
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(s)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(s)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("tree.ReadSnapshot: %w", err)
	}
	return s, nil
}
