// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command nodetree presents directories as lazily computed node trees.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"cogentcore.org/nodes/config"
	"cogentcore.org/nodes/logx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cfg is the configuration loaded before any command runs.
var cfg = config.Default()

func run(args []string, w io.Writer) error {
	app := cli.App{
		Name:   "nodetree",
		Writer: w,
		Usage:  "browse directories as lazily computed node trees",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a TOML config file",
				EnvVars: []string{"NODETREE_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "minimum level of logged messages: debug, info, warn or error",
				EnvVars: []string{"NODETREE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "metrics-listen",
				Usage:   "address to serve prometheus metrics on, such as localhost:9100",
				EnvVars: []string{"NODETREE_METRICS_LISTEN"},
			},
			&cli.BoolFlag{
				Name:  "hidden",
				Usage: "show entries whose names start with a dot",
			},
		},
		Before: setup,
	}
	app.Commands = []*cli.Command{
		cmdPrint,
		cmdExport,
		cmdResolve,
		cmdWatch,
	}
	return app.Run(args)
}

// setup loads the config, applies the global flags, and
// starts serving metrics if requested.
func setup(cctx *cli.Context) error {
	cfg = config.Default()
	if path := cctx.String("config"); path != "" {
		c, err := config.Open(path)
		if err != nil {
			return err
		}
		cfg = c
	}
	if lvl := cctx.String("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if cctx.Bool("hidden") {
		cfg.FS.ShowHidden = true
	}
	if addr := cctx.String("metrics-listen"); addr != "" {
		cfg.Metrics.Listen = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := logx.SetLevel(cfg.Log.Level); err != nil {
		return err
	}
	logx.Init(os.Stderr)
	if cfg.Metrics.Listen != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Listen, mux); err != nil {
				slog.Error("failed to set up metrics listener", "addr", cfg.Metrics.Listen, "err", err)
			}
		}()
	}
	return nil
}
