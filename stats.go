// stats.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"log/slog"
	gomath "math"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Stats collects a few statistics related to rendering and time spent in
// various phases of a run.
type Stats struct {
	startTime time.Time
	redraws   int
	unchanged int
	encoded   int
}

var startupMallocs uint64

func (stats Stats) LogValue() slog.Value {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	if startupMallocs == 0 { // first call
		startupMallocs = m.Mallocs
	}

	elapsed := time.Since(stats.startTime).Seconds()

	// Usage since the priming call at startup.
	var cpuPercent int
	if usage, err := cpu.Percent(0, false); err == nil && len(usage) > 0 {
		cpuPercent = int(gomath.Round(usage[0]))
	}

	return slog.GroupValue(
		slog.Float64("frames_per_second", float64(stats.redraws)/elapsed),
		slog.Int("redraws", stats.redraws),
		slog.Int("unchanged", stats.unchanged),
		slog.Int("frames_encoded", stats.encoded),
		slog.Float64("mallocs_per_second", float64(m.Mallocs-startupMallocs)/elapsed),
		slog.Int64("active_mallocs", int64(m.Mallocs-m.Frees)),
		slog.Int64("memory_in_use", int64(m.HeapAlloc)),
		slog.Int("cpu_percent", cpuPercent))
}
