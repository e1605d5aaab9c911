// main.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

// This file contains the implementation of the main() function, which
// renders overlay frames from replayed or synthesized telemetry and
// writes the changed ones out as PNGs.

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmp/osd/pkg/log"
	"github.com/mmp/osd/pkg/osd"
	"github.com/mmp/osd/pkg/renderer"
	"github.com/mmp/osd/pkg/telemetry"
	"github.com/mmp/osd/pkg/util"

	"github.com/goforj/godump"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write CPU profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	configFile = flag.String("config", "", "filename of JSON file with an overlay configuration")
	resources  = flag.String("resources", "", "directory holding skin and icon resources")
	variant    = flag.String("variant", "live_day", "host build variant: "+strings.Join(osd.Variants, ", "))
	numFrames  = flag.Int("frames", 300, "number of frames to render")
	outDir     = flag.String("o", "frames", "directory to write rendered PNG frames to")
	replayFile = flag.String("replay", "", "filename of a telemetry log to replay")
	recordFile = flag.String("record", "", "filename to write this run's telemetry log to")
	dumpConfig = flag.Bool("dumpconfig", false, "print the resolved configuration and exit")
	listSkins  = flag.Bool("listskins", false, "list the known navball skins and exit")
	seed       = flag.Int64("seed", 1, "random seed for synthesized telemetry")
)

func main() {
	flag.Parse()

	// Initialize the logging system first and foremost.
	lg := log.New(*logLevel, *logDir)

	profiler, err := util.CreateProfiler(*cpuprofile, *memprofile)
	if err != nil {
		lg.Errorf("%v", err)
	}
	defer profiler.Cleanup()

	if *resources != "" {
		if err := util.SetResourcesDir(*resources); err != nil {
			lg.Errorf("%s: %v", *resources, err)
			os.Exit(1)
		}
	}

	if *listSkins {
		for _, name := range osd.SkinNames() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	build := osd.CurrentBuild()
	lg.Infof("osd %s commit %s built %s", build.Version, build.Commit, build.Built)
	logSystemStats(lg)

	config := resolveConfig(lg)

	if *dumpConfig {
		godump.Dump(config)
		os.Exit(0)
	}

	engine, err := osd.New(config, lg)
	if engine == nil {
		lg.Errorf("Invalid configuration: %v", err)
		os.Exit(1)
	} else if err != nil {
		// Partial activation; carry on with the widgets that made it.
		lg.Errorf("%v", err)
	}
	defer engine.Destroy()
	lg.Infof("Active widgets: %s", strings.Join(engine.Widgets(), ", "))

	source, err := makeTelemetrySource(lg)
	if err != nil {
		lg.Errorf("%v", err)
		os.Exit(1)
	}
	defer source.Close()

	var recorder *telemetry.LogWriter
	if *recordFile != "" {
		f, err := os.Create(*recordFile)
		if err != nil {
			lg.Errorf("%s: %v", *recordFile, err)
			os.Exit(1)
		}
		defer f.Close()
		if recorder, err = telemetry.NewLogWriter(f); err != nil {
			lg.Errorf("%s: %v", *recordFile, err)
			os.Exit(1)
		}
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		lg.Errorf("%s: %v", *outDir, err)
		os.Exit(1)
	}

	///////////////////////////////////////////////////////////////////////////
	// Main render loop

	lg.Info("Starting render loop")
	stats := Stats{startTime: time.Now()}

	// PNG encoding is far slower than rendering a frame, so it runs on a
	// worker pool over snapshots of the framebuffer.
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for frame := 0; frame < *numFrames; frame++ {
		rec, err := source.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			lg.Errorf("telemetry: %v", err)
			break
		}

		if recorder != nil {
			if err := recorder.Write(rec); err != nil {
				lg.Errorf("%s: %v", *recordFile, err)
				recorder = nil
			}
		}

		engine.UpdateTelemetry(rec)
		stats.redraws++
		if !engine.Render() {
			// The host would keep compositing the previous frame, so
			// there is nothing new to write.
			stats.unchanged++
			continue
		}

		img := snapshot(engine.Framebuffer())
		fn := filepath.Join(*outDir, fmt.Sprintf("frame_%04d.png", frame))
		stats.encoded++
		eg.Go(func() error {
			f, err := os.Create(fn)
			if err != nil {
				return err
			}
			defer f.Close()
			return png.Encode(f, img)
		})
	}

	if err := eg.Wait(); err != nil {
		lg.Errorf("PNG encode: %v", err)
	}
	if recorder != nil {
		if err := recorder.Close(); err != nil {
			lg.Errorf("%s: %v", *recordFile, err)
		}
	}

	lg.Info("performance", slog.Any("stats", stats))
	fmt.Printf("Rendered %d frames, wrote %d to %s (%d unchanged)\n",
		stats.redraws, stats.encoded, *outDir, stats.unchanged)
}

// resolveConfig loads the overlay configuration: an explicit -config
// file wins, otherwise the per-variant file under configs/ is tried and
// a missing one falls back to the defaults.
func resolveConfig(lg *log.Logger) osd.Config {
	fn := *configFile
	explicit := fn != ""
	if !explicit {
		fn = osd.ConfigPath("configs", *variant)
	}

	config, err := osd.LoadConfig(fn, lg)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			lg.Errorf("%s: %v", fn, err)
			os.Exit(1)
		}
		lg.Infof("%s: not found, using the default configuration", fn)
	}
	return config
}

// A telemetrySource produces the per-frame records the render loop
// consumes; synthesized flight and log replay both implement it.
type telemetrySource interface {
	Next() (*telemetry.Record, error) // io.EOF when exhausted
	Close()
}

type replaySource struct {
	f  *os.File
	lr *telemetry.LogReader
}

func (r *replaySource) Next() (*telemetry.Record, error) { return r.lr.Read() }

func (r *replaySource) Close() {
	r.lr.Close()
	r.f.Close()
}

func makeTelemetrySource(lg *log.Logger) (telemetrySource, error) {
	if *replayFile == "" {
		lg.Infof("Synthesizing flight telemetry with seed %d", *seed)
		return newDemoFlight(*variant, *seed), nil
	}

	f, err := os.Open(*replayFile)
	if err != nil {
		return nil, err
	}
	lr, err := telemetry.NewLogReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	lg.Infof("%s: replaying telemetry", *replayFile)
	return &replaySource{f: f, lr: lr}, nil
}

// snapshot copies the framebuffer into a standalone image so that PNG
// encoding can proceed while the next frame renders over the same
// buffer.
func snapshot(fb *renderer.Framebuffer) *image.NRGBA {
	img := image.NewNRGBA(fb.Bounds())
	for i, p := range fb.Pixels() {
		img.Pix[4*i] = uint8(p)
		img.Pix[4*i+1] = uint8(p >> 8)
		img.Pix[4*i+2] = uint8(p >> 16)
		img.Pix[4*i+3] = uint8(p >> 24)
	}
	return img
}

// logSystemStats records the host environment at startup. The CPU
// sample also primes the usage counter that the end-of-run statistics
// report against.
func logSystemStats(lg *log.Logger) {
	logical, _ := cpu.Counts(true)
	physical, _ := cpu.Counts(false)
	_, _ = cpu.Percent(0, false)

	if vm, err := mem.VirtualMemory(); err == nil {
		lg.Info("system",
			slog.Int("logical_cpus", logical),
			slog.Int("physical_cpus", physical),
			slog.Uint64("memory_mb", vm.Total/(1024*1024)),
			slog.Float64("memory_used_percent", vm.UsedPercent))
	} else {
		lg.Info("system",
			slog.Int("logical_cpus", logical),
			slog.Int("physical_cpus", physical))
		lg.Warnf("virtual memory stats: %v", err)
	}
}
