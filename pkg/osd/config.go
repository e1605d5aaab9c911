// pkg/osd/config.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package osd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"slices"

	"github.com/brunoga/deep"
	"github.com/mmp/osd/pkg/log"
	"github.com/mmp/osd/pkg/renderer"
	"github.com/mmp/osd/pkg/util"
)

// Ring entries past this are dropped structurally rather than reported
// as errors.
const MaxCompassRings = 5

// CrosshairElement configures one drawable part of the crosshair.
type CrosshairElement struct {
	Enabled   bool          `json:"enabled"`
	Color     renderer.RGBA `json:"color"`
	Thickness float32       `json:"thickness"`
}

type CrosshairConfig struct {
	Enabled bool `json:"enabled"`

	// "vertical" draws a + shape, "diagonal" an x.
	Orientation string `json:"orientation"`

	CenterDot       CrosshairElement `json:"center_dot"`
	CenterDotRadius float32          `json:"center_dot_radius"`

	Cross       CrosshairElement `json:"cross"`
	CrossLength float32          `json:"cross_length"` // arm length past the gap
	CrossGap    float32          `json:"cross_gap"`    // clear space around the center

	Circle       CrosshairElement `json:"circle"`
	CircleRadius float32          `json:"circle_radius"`
}

type TimestampConfig struct {
	Enabled  bool          `json:"enabled"`
	Position [2]int        `json:"position"`
	Color    renderer.RGBA `json:"color"`
	FontSize int           `json:"font_size"`
}

// SpeedConfig controls the gimbal rate readouts beside the crosshair.
type SpeedConfig struct {
	Enabled  bool          `json:"enabled"`
	Color    renderer.RGBA `json:"color"`
	FontSize int           `json:"font_size"`

	// Rates with |normalized| at or below the threshold are not shown.
	Threshold float32 `json:"threshold"`

	// Degrees per second when the drive reports a normalized rate of 1.
	MaxAzimuthRate   float32 `json:"max_speed_azimuth"`
	MaxElevationRate float32 `json:"max_speed_elevation"`
}

type StatusConfig struct {
	Enabled  bool          `json:"enabled"`
	Position [2]int        `json:"position"`
	Color    renderer.RGBA `json:"color"`
	FontSize int           `json:"font_size"`
}

type NavballConfig struct {
	Enabled  bool   `json:"enabled"`
	Position [2]int `json:"position"`
	Size     int    `json:"size"` // diameter in pixels
	Skin     string `json:"skin"`

	ShowLevelMarker bool `json:"show_level_marker"`

	ShowCenterIndicator  bool    `json:"show_center_indicator"`
	CenterIndicatorScale float32 `json:"center_indicator_scale"`
	CenterIndicatorIcon  string  `json:"center_indicator_icon"`
}

type RadarCompassConfig struct {
	Enabled  bool   `json:"enabled"`
	Position [2]int `json:"position"`
	Size     int    `json:"size"` // width in pixels; the ellipse is half as tall

	RingDistances     []float32     `json:"ring_distances"` // km
	RingColor         renderer.RGBA `json:"ring_color"`
	RingThickness     float32       `json:"ring_thickness"`
	ShowRingLabels    bool          `json:"show_ring_labels"`
	RingLabelFontSize int           `json:"ring_label_font_size"`

	CardinalColor    renderer.RGBA `json:"cardinal_color"`
	CardinalFontSize int           `json:"cardinal_font_size"`

	FOVFillColor        renderer.RGBA `json:"fov_fill_color"`
	FOVOutlineColor     renderer.RGBA `json:"fov_outline_color"`
	FOVOutlineThickness float32       `json:"fov_outline_thickness"`
}

// CelestialConfig controls the sun/moon markers on both the orientation
// sphere and the radar compass. Icon values are resource paths to PNGs,
// "builtin" for the procedurally generated ones, or empty to draw no
// marker of that flavor.
type CelestialConfig struct {
	Enabled             bool    `json:"enabled"`
	ShowSun             bool    `json:"show_sun"`
	ShowMoon            bool    `json:"show_moon"`
	IndicatorScale      float32 `json:"indicator_scale"`
	VisibilityThreshold float32 `json:"visibility_threshold"` // degrees

	// Compass markers, one per body.
	SunIcon  string `json:"sun_icon"`
	MoonIcon string `json:"moon_icon"`

	// Sphere markers, front/back hemisphere variants.
	SunFrontIcon  string `json:"sun_front_icon"`
	SunBackIcon   string `json:"sun_back_icon"`
	MoonFrontIcon string `json:"moon_front_icon"`
	MoonBackIcon  string `json:"moon_back_icon"`
}

// UnmarshalJSON defaults Enabled to true when the section is present at
// all; an absent section leaves the zero (disabled) default in place.
func (c *CelestialConfig) UnmarshalJSON(b []byte) error {
	type raw CelestialConfig
	r := raw(*c)
	r.Enabled = true
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	*c = CelestialConfig(r)
	return nil
}

type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Crosshair    CrosshairConfig    `json:"crosshair"`
	Timestamp    TimestampConfig    `json:"timestamp"`
	Speed        SpeedConfig        `json:"speed_indicators"`
	Status       StatusConfig       `json:"variant_info"`
	Navball      NavballConfig      `json:"navball"`
	RadarCompass RadarCompassConfig `json:"radar_compass"`
	Celestial    CelestialConfig    `json:"celestial_indicators"`
}

var (
	colorRed    = renderer.RGBA{R: 1, A: 1}
	colorGreen  = renderer.RGBA{G: 1, A: 1}
	colorCyan   = renderer.RGBA{G: 1, B: 1, A: 1}
	colorYellow = renderer.RGBA{R: 1, G: 1, A: 1}
	colorWhite  = renderer.RGBA{R: 1, G: 1, B: 1, A: 1}
)

// DefaultConfig returns the stock widget layout for a 1920x1080 frame.
// Loading a config file overlays onto these, so absent fields keep the
// values below.
func DefaultConfig() Config {
	return Config{
		Width:  1920,
		Height: 1080,

		Crosshair: CrosshairConfig{
			Enabled:         true,
			Orientation:     "vertical",
			CenterDot:       CrosshairElement{Enabled: true, Color: colorRed, Thickness: 1},
			CenterDotRadius: 3,
			Cross:           CrosshairElement{Enabled: true, Color: colorRed, Thickness: 4},
			CrossLength:     35,
			CrossGap:        10,
			Circle:          CrosshairElement{Enabled: true, Color: colorRed, Thickness: 2},
			CircleRadius:    15,
		},

		Timestamp: TimestampConfig{
			Enabled:  true,
			Position: [2]int{10, 10},
			Color:    colorCyan,
			FontSize: 14,
		},

		Speed: SpeedConfig{
			Enabled:          true,
			Color:            colorGreen,
			FontSize:         14,
			Threshold:        0.05,
			MaxAzimuthRate:   35,
			MaxElevationRate: 35,
		},

		Status: StatusConfig{
			Enabled:  true,
			Position: [2]int{10, 50},
			Color:    colorYellow,
			FontSize: 14,
		},

		Navball: NavballConfig{
			Enabled:              true,
			Position:             [2]int{50, 730},
			Size:                 300,
			Skin:                 "builtin",
			ShowLevelMarker:      true,
			ShowCenterIndicator:  true,
			CenterIndicatorScale: 0.15,
			CenterIndicatorIcon:  "builtin",
		},

		RadarCompass: RadarCompassConfig{
			Enabled:             true,
			Position:            [2]int{810, 730},
			Size:                300,
			RingDistances:       []float32{1, 5, 20},
			RingColor:           renderer.RGBA{R: 1, G: 1, B: 1, A: 128.0 / 255},
			RingThickness:       1.5,
			ShowRingLabels:      true,
			RingLabelFontSize:   12,
			CardinalColor:       colorWhite,
			CardinalFontSize:    18,
			FOVFillColor:        renderer.RGBA{G: 1, A: 48.0 / 255},
			FOVOutlineColor:     colorGreen,
			FOVOutlineThickness: 2,
		},

		Celestial: CelestialConfig{
			Enabled:             false,
			ShowSun:             true,
			ShowMoon:            true,
			IndicatorScale:      1,
			VisibilityThreshold: -5,
			SunIcon:             "builtin",
			MoonIcon:            "builtin",
			SunFrontIcon:        "builtin",
			SunBackIcon:         "builtin",
			MoonFrontIcon:       "builtin",
			MoonBackIcon:        "builtin",
		},
	}
}

// Variants name the host build flavors. Each selects its own config file
// so the live and recording overlays can diverge.
var Variants = []string{"live_day", "live_thermal", "recording_day", "recording_thermal"}

// ConfigPath returns the config file for the given variant under dir,
// falling back to the shared config for unrecognized variants.
func ConfigPath(dir, variant string) string {
	if slices.Contains(Variants, variant) {
		return path.Join(dir, variant+"_config.json")
	}
	return path.Join(dir, "config.json")
}

// LoadConfig reads a JSON config file over the defaults; absent fields
// keep their default values.
func LoadConfig(fn string, lg *log.Logger) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(fn)
	if err != nil {
		return cfg, err
	}
	if err := util.UnmarshalJSON(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", fn, err)
	}

	lg.Infof("%s: loaded config", fn)
	return cfg, nil
}

func (c *Config) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}

func (c *Config) Save(fn string) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.Encode(f)
}

// Duplicate returns a deep copy so a caller can derive a variant config
// without sharing the ring distance slice.
func (c Config) Duplicate() Config {
	return deep.MustCopy(c)
}

// Validate clamps structural limits and accumulates anything
// unrenderable. Widgets trust the result; they do not re-check.
func (c *Config) Validate(e *util.ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	if c.Width <= 0 || c.Height <= 0 {
		e.ErrorString("framebuffer dimensions %dx%d invalid", c.Width, c.Height)
	}

	e.Push("crosshair")
	if o := c.Crosshair.Orientation; o != "vertical" && o != "diagonal" {
		e.ErrorString("orientation %q is neither \"vertical\" nor \"diagonal\"", o)
	}
	e.Pop()

	e.Push("navball")
	if c.Navball.Enabled && c.Navball.Size <= 0 {
		e.ErrorString("size %d invalid", c.Navball.Size)
	}
	if c.Navball.CenterIndicatorScale < 0 || c.Navball.CenterIndicatorScale > 1 {
		e.ErrorString("center indicator scale %v outside [0,1]", c.Navball.CenterIndicatorScale)
	}
	e.Pop()

	e.Push("radar_compass")
	rc := &c.RadarCompass
	if rc.Enabled && rc.Size <= 0 {
		e.ErrorString("size %d invalid", rc.Size)
	}
	if len(rc.RingDistances) > MaxCompassRings {
		rc.RingDistances = rc.RingDistances[:MaxCompassRings]
	}
	for _, d := range rc.RingDistances {
		if d <= 0 {
			e.ErrorString("ring distance %v km invalid", d)
		}
	}
	e.Pop()

	e.Push("celestial_indicators")
	if c.Celestial.IndicatorScale < 0 {
		e.ErrorString("indicator scale %v negative", c.Celestial.IndicatorScale)
	}
	e.Pop()
}
