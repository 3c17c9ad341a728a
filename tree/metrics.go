// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	materializations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nodes_materializations_total",
		Help: "Number of child arrays computed.",
	})

	evictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nodes_array_evictions_total",
		Help: "Number of computed child arrays cleared after eviction.",
	})

	bestEffort = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nodes_best_effort_total",
		Help: "Number of child arrays returned while changes to them were still queued.",
	})

	eventsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nodes_events_total",
		Help: "Number of node events fired, by type.",
	}, []string{"type"})

	listenerPanics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nodes_listener_panics_total",
		Help: "Number of node listeners that panicked.",
	})
)
