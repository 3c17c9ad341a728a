// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fstree provides node trees that present a directory of the file
// system. Each directory is a node with [tree.Keys] children keyed by the
// names of its entries, which are only listed when the children are first
// needed, and are kept up to date by watching the directory while its
// children are computed.
package fstree

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"cogentcore.org/nodes/base/errors"
	"cogentcore.org/nodes/config"
	"cogentcore.org/nodes/tree"
	"github.com/fsnotify/fsnotify"
)

// Options are the options of an [FS].
type Options struct {

	// ShowHidden is whether entries whose names start with a dot are shown.
	ShowHidden bool

	// Watch is whether directories with computed children are
	// watched for entries that are created, removed or renamed.
	Watch bool
}

// OptionsFrom returns the options given by the fs section of the config.
func OptionsFrom(cfg *config.Config) Options {
	return Options{ShowHidden: cfg.FS.ShowHidden, Watch: cfg.FS.Watch}
}

// FS is a node tree of a directory.
type FS struct {

	// Options are the options the tree was made with.
	Options Options

	tree *tree.Tree
	root *tree.Node

	// mu guards the fields below.
	mu sync.Mutex

	// watcher is the watcher of the directories in dirs,
	// or nil if not watching.
	watcher *fsnotify.Watcher

	// dirs are the watched directories by path.
	dirs map[string]*dir

	done chan struct{}
}

// dir is the state of one directory node.
type dir struct {
	fs   *FS
	path string
	keys *tree.Keys[string]
}

// New returns the tree of the directory at the given path, in the given
// node tree, which is the [tree.Default] tree if nil. The root node is
// named after the path. [FS.Close] must be called to stop watching.
func New(t *tree.Tree, path string, opts Options) (*FS, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("fstree.New: %q is not a directory", abs)
	}
	if t == nil {
		t = tree.Default()
	}
	fs := &FS{Options: opts, tree: t, dirs: map[string]*dir{}}
	if opts.Watch {
		if fs.watcher, err = fsnotify.NewWatcher(); err != nil {
			return nil, err
		}
		fs.done = make(chan struct{})
		go fs.watch(fs.watcher, fs.done)
	}
	fs.root = fs.newDirNode(abs, filepath.Base(abs))
	return fs, nil
}

// Root returns the root node of the tree.
func (fs *FS) Root() *tree.Node {
	return fs.root
}

// Tree returns the node tree the nodes are in.
func (fs *FS) Tree() *tree.Tree {
	return fs.tree
}

// Close stops watching the directories.
func (fs *FS) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.watcher == nil {
		return nil
	}
	close(fs.done)
	err := fs.watcher.Close()
	fs.watcher = nil
	return err
}

// Rescan lists the directory at the given path again, if its node has
// computed children, and updates its keys. It is what a watched
// directory does on a change, for trees that do not watch.
func (fs *FS) Rescan(path string) {
	abs := errors.Log1(filepath.Abs(path))
	fs.mu.Lock()
	d := fs.dirs[abs]
	fs.mu.Unlock()
	if d != nil {
		d.rescan()
	}
}

// newDirNode returns the node of the directory at the given path.
func (fs *FS) newDirNode(path, name string) *tree.Node {
	d := &dir{fs: fs, path: path}
	d.keys = tree.NewKeys(fs.tree, d.create)
	d.keys.OnAddNotify(func() {
		fs.track(d)
		d.rescan()
	})
	d.keys.OnRemoveNotify(func() {
		fs.untrack(d)
		d.keys.SetKeys()
	})
	n := tree.NewNode(d.keys.Children, name)
	n.SetShortDescription("directory")
	n.SetProperty("path", path)
	return n
}

// create returns the node of the entry with the given name.
func (d *dir) create(name string) []*tree.Node {
	path := filepath.Join(d.path, name)
	st, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		// removed since it was listed; the watcher will catch up
		slog.Debug("fstree: stat", "path", path, "err", err)
		return nil
	}
	if err != nil {
		slog.Error("fstree: stat", "path", path, "err", err)
		return nil
	}
	if st.IsDir() {
		return []*tree.Node{d.fs.newDirNode(path, name)}
	}
	n := tree.NewLeaf(name)
	n.SetShortDescription(Describe(path))
	n.SetProperty("path", path)
	n.SetProperty("size", st.Size())
	n.SetProperty("modTime", st.ModTime())
	return []*tree.Node{n}
}

// rescan sets the keys to the current entries of the directory.
func (d *dir) rescan() {
	names, err := d.fs.list(d.path)
	if err != nil {
		slog.Error("fstree: cannot list directory", "path", d.path, "err", err)
	}
	d.keys.SetKeys(names...)
}

// list returns the names of the shown entries of the directory at the
// given path: directories first, and then files, each sorted by name.
func (fs *FS) list(path string) ([]string, error) {
	ents, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	ents = slices.DeleteFunc(ents, func(e os.DirEntry) bool {
		return !fs.Options.ShowHidden && strings.HasPrefix(e.Name(), ".")
	})
	slices.SortStableFunc(ents, func(a, b os.DirEntry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name(), b.Name())
	})
	names := make([]string, len(ents))
	for i, e := range ents {
		names[i] = e.Name()
	}
	return names, nil
}

// track registers the directory for watching and rescans.
func (fs *FS) track(d *dir) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.dirs[d.path] = d
	if fs.watcher == nil {
		return
	}
	if err := fs.watcher.Add(d.path); err != nil {
		slog.Error("fstree: cannot watch directory", "path", d.path, "err", err)
	}
}

// untrack stops watching the directory.
func (fs *FS) untrack(d *dir) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.dirs[d.path] != d {
		return
	}
	delete(fs.dirs, d.path)
	if fs.watcher == nil {
		return
	}
	if err := fs.watcher.Remove(d.path); err != nil {
		slog.Debug("fstree: cannot stop watching directory", "path", d.path, "err", err)
	}
}

// watch monitors the watcher channels for changes until done is closed.
func (fs *FS) watch(w *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				fs.Rescan(filepath.Dir(ev.Name))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Error("fstree: watcher", "err", err)
		}
	}
}
