// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "cogentcore.org/nodes/tree"
)

func TestExport(t *testing.T) {
	root := sampleTree(New(nil))
	root.SetDisplayName("Root")
	s := Export(root, 0)
	assert.Equal(t, "root", s.Name)
	assert.Equal(t, "Root", s.DisplayName)
	assert.Len(t, s.Children, 3)
	assert.Equal(t, "bee", s.Children[1].ShortDescription)
	assert.Equal(t, "a2", s.Children[0].Children[1].Name)

	s = Export(root, 2)
	assert.Len(t, s.Children, 3)
	assert.Empty(t, s.Children[0].Children)
}

func TestSnapshotRoundTrip(t *testing.T) {
	root := sampleTree(New(nil))
	root.SetProperty("count", 3)
	s := Export(root, 0)
	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, s.Write(&b, format))
			back, err := ReadSnapshot(&b, format)
			require.NoError(t, err)
			built := back.Build(New(nil))
			assert.Equal(t, Dump(root, 0), Dump(built, 0))
			assert.EqualValues(t, 3, built.Property("count"))
		})
	}
	assert.Error(t, s.Write(&bytes.Buffer{}, "xml"))
	_, err := ReadSnapshot(strings.NewReader("{"), FormatJSON)
	assert.Error(t, err)
}

func TestSnapshotYAML(t *testing.T) {
	root := sampleTree(New(nil))
	var b bytes.Buffer
	require.NoError(t, Export(root, 2).Write(&b, FormatYAML))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, "name: root\n"), out)
	assert.Contains(t, out, "- name: a\n")
	assert.Contains(t, out, "shortDescription: bee")
	assert.NotContains(t, out, "a1")
}

func TestDump(t *testing.T) {
	root := sampleTree(New(nil))
	out := Dump(root, 0)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, "root", lines[0])
	assert.Contains(t, lines[1], "a")
	assert.Contains(t, out, "b (bee)")
	assert.Contains(t, lines[6], "c1")

	out = Dump(root, 1)
	assert.Equal(t, "root", strings.TrimSpace(out))
	out = Dump(root, 2)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 4)
}
