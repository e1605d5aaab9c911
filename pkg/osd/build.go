// pkg/osd/build.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"runtime/debug"
	"sync"
	"time"
)

// BuildInfo identifies the running binary; the status widget shows it so
// a recorded frame can be traced back to the build that drew it.
type BuildInfo struct {
	Version string
	Commit  string
	Built   string
}

// CurrentBuild reports the module version plus the VCS revision and
// commit time baked in by the toolchain. Fields that are unavailable,
// as in a plain "go run", come back as "unknown".
var CurrentBuild = sync.OnceValue(func() BuildInfo {
	info := BuildInfo{Version: "(devel)", Commit: "unknown", Built: "unknown"}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if bi.Main.Version != "" {
		info.Version = bi.Main.Version
	}

	modified := false
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) > 8 {
				info.Commit = setting.Value[:8]
			} else if setting.Value != "" {
				info.Commit = setting.Value
			}
		case "vcs.time":
			if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
				info.Built = t.UTC().Format("2006-01-02 15:04:05")
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if modified && info.Commit != "unknown" {
		info.Commit += "-dirty"
	}
	return info
})
