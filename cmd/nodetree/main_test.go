// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"cogentcore.org/nodes/fstree"
	"cogentcore.org/nodes/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDir(t *testing.T) string {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs", "guide"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "intro.md"), []byte("# intro\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme"), []byte("hi"), 0o644))
	return dir
}

func TestPrint(t *testing.T) {
	dir := testDir(t)
	var b bytes.Buffer
	require.NoError(t, run([]string{"nodetree", "print", dir}, &b))
	out := b.String()
	assert.True(t, strings.HasPrefix(out, filepath.Base(dir)+" (directory)\n"), out)
	for _, nm := range []string{"docs (directory)", "guide (directory)", "intro.md", "readme"} {
		assert.Contains(t, out, nm)
	}

	b.Reset()
	require.NoError(t, run([]string{"nodetree", "print", "--depth", "2", dir}, &b))
	assert.NotContains(t, b.String(), "intro.md")
}

func TestExport(t *testing.T) {
	dir := testDir(t)
	var b bytes.Buffer
	require.NoError(t, run([]string{"nodetree", "export", "--format", "json", dir}, &b))
	s, err := tree.ReadSnapshot(&b, tree.FormatJSON)
	require.NoError(t, err)
	require.Len(t, s.Children, 2)
	assert.Equal(t, "docs", s.Children[0].Name)
	assert.Equal(t, "readme", s.Children[1].Name)
	assert.Len(t, s.Children[0].Children, 2)

	assert.Error(t, run([]string{"nodetree", "export", "--format", "xml", dir}, &b))
}

func TestResolve(t *testing.T) {
	dir := testDir(t)
	var b bytes.Buffer
	require.NoError(t, run([]string{"nodetree", "resolve", dir, "docs/intro.md"}, &b))
	assert.Contains(t, b.String(), filepath.Join(dir, "docs", "intro.md"))

	b.Reset()
	err := run([]string{"nodetree", "resolve", dir, "docs/intro.mdx"}, &b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "intro.md"`)
	assert.Contains(t, b.String(), "closest: "+filepath.Base(dir)+"/docs")

	assert.Error(t, run([]string{"nodetree", "resolve", dir}, &b))
}

func TestBadFlags(t *testing.T) {
	dir := testDir(t)
	var b bytes.Buffer
	assert.Error(t, run([]string{"nodetree", "--log-level", "loud", "print", dir}, &b))
	assert.Error(t, run([]string{"nodetree", "--config", filepath.Join(dir, "missing.toml"), "print", dir}, &b))
	assert.Error(t, run([]string{"nodetree", "print"}, &b))
}

// syncBuffer is a buffer that can be written from other goroutines.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.b.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.b.String()
}

func TestWatch(t *testing.T) {
	dir := testDir(t)
	fs, err := fstree.New(tree.New(nil), dir, fstree.Options{Watch: true})
	require.NoError(t, err)
	defer fs.Close()

	var out syncBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- watch(ctx, &out, fs.Root())
	}()
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "(2 entries)")
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new"), nil, 0o644))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "+ 1 new")
	}, 5*time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
