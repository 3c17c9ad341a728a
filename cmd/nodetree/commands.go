// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cogentcore.org/nodes/base/errors"
	"cogentcore.org/nodes/fstree"
	"cogentcore.org/nodes/tree"
	"github.com/urfave/cli/v2"
)

var depthFlag = &cli.IntFlag{
	Name:  "depth",
	Usage: "number of levels to show, with 0 for all",
}

var cmdPrint = &cli.Command{
	Name:      "print",
	Usage:     "print the tree of a directory",
	ArgsUsage: "<dir>",
	Flags:     []cli.Flag{depthFlag},
	Action: func(cctx *cli.Context) error {
		fs, err := openDir(cctx, false)
		if err != nil {
			return err
		}
		defer fs.Close()
		return printTree(cctx.App.Writer, fs.Root(), cctx.Int("depth"))
	},
}

var cmdExport = &cli.Command{
	Name:      "export",
	Usage:     "export the tree of a directory as yaml or json",
	ArgsUsage: "<dir>",
	Flags: []cli.Flag{
		depthFlag,
		&cli.StringFlag{
			Name:  "format",
			Usage: "output format: yaml or json",
			Value: tree.FormatYAML,
		},
	},
	Action: func(cctx *cli.Context) error {
		fs, err := openDir(cctx, false)
		if err != nil {
			return err
		}
		defer fs.Close()
		return tree.Export(fs.Root(), cctx.Int("depth")).Write(cctx.App.Writer, cctx.String("format"))
	},
}

var cmdResolve = &cli.Command{
	Name:      "resolve",
	Usage:     "resolve a path of names below a directory, suggesting close names",
	ArgsUsage: "<dir> <path>",
	Action: func(cctx *cli.Context) error {
		if cctx.Args().Len() != 2 {
			return fmt.Errorf("expected a directory and a path")
		}
		fs, err := openDir(cctx, false)
		if err != nil {
			return err
		}
		defer fs.Close()
		return resolve(cctx.App.Writer, fs, cctx.Args().Get(1))
	},
}

var cmdWatch = &cli.Command{
	Name:      "watch",
	Usage:     "print the changes to the entries of a directory until interrupted",
	ArgsUsage: "<dir>",
	Action: func(cctx *cli.Context) error {
		fs, err := openDir(cctx, true)
		if err != nil {
			return err
		}
		defer fs.Close()
		ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watch(ctx, cctx.App.Writer, fs.Root())
	},
}

// openDir opens the directory given as the first argument.
func openDir(cctx *cli.Context, watch bool) (*fstree.FS, error) {
	dir := cctx.Args().First()
	if dir == "" {
		return nil, fmt.Errorf("expected a directory")
	}
	opts := fstree.OptionsFrom(cfg)
	opts.Watch = watch
	return fstree.New(tree.New(cfg), dir, opts)
}

// printTree writes the drawing of the tree of n.
func printTree(w io.Writer, n *tree.Node, depth int) error {
	if depth <= 0 {
		n.Children().NodesOptimal()
	}
	_, err := fmt.Fprint(w, tree.Dump(n, depth))
	return err
}

// resolve writes the node at the given slash separated path below the
// root of fs, or returns an error with the closest name.
func resolve(w io.Writer, fs *fstree.FS, path string) error {
	root := fs.Root()
	if err := fs.Tree().AddRoot(root); err != nil {
		return err
	}
	h, err := tree.ParseHandle(tree.EscapePathName(root.Name()) + "/" + strings.Trim(path, "/"))
	if err != nil {
		return err
	}
	n, err := h.Node(fs.Tree())
	if nf := (*tree.NotFoundError)(nil); errors.As(err, &nf) && nf.Closest != nil {
		fmt.Fprintf(w, "closest: %s\n", nf.Closest.Handle())
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\t%v\n", n.Handle(), n.ShortDescription(), n.Property("path"))
	return err
}

// watch writes the changes to the children of n until ctx is done.
func watch(ctx context.Context, w io.Writer, n *tree.Node) error {
	l := &tree.ListenerFuncs{
		OnChildrenAdded: func(ev *tree.MemberEvent) {
			for i, kid := range ev.Delta {
				fmt.Fprintf(w, "+ %d %s\n", ev.Indices[i], kid.Name())
			}
		},
		OnChildrenRemoved: func(ev *tree.MemberEvent) {
			for i, kid := range ev.Delta {
				fmt.Fprintf(w, "- %d %s\n", ev.Indices[i], kid.Name())
			}
		},
		OnChildrenReordered: func(ev *tree.ReorderEvent) {
			fmt.Fprintf(w, "~ %v\n", ev.Perm)
		},
	}
	n.AddListener(l)
	defer n.RemoveListener(l)
	fmt.Fprintf(w, "watching %s (%d entries)\n", n.Property("path"), n.Children().Count())
	<-ctx.Done()
	return nil
}
