// pkg/renderer/renderer_test.go
// Copyright(c) 2026 osd contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package renderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/mmp/osd/pkg/util"
)

func TestPackUnpack(t *testing.T) {
	cases := []struct {
		c      RGBA
		packed uint32
	}{
		{RGBA{1, 0, 0, 1}, 0xff0000ff},
		{RGBA{0, 1, 0, 1}, 0xff00ff00},
		{RGBA{0, 0, 1, 1}, 0xffff0000},
		{RGBA{0, 0, 0, 0}, 0x00000000},
		{RGBA{0.5, 0.5, 0.5, 1}, 0xff808080},
		{RGBA{2, -1, 0, 1}, 0xff0000ff}, // clamped
	}
	for _, c := range cases {
		if got := c.c.Pack(); got != c.packed {
			t.Errorf("Pack(%+v): got %08x, want %08x", c.c, got, c.packed)
		}
	}

	for _, p := range []uint32{0xff0000ff, 0x80402010, 0x00000000, 0xffffffff} {
		u := UnpackRGBA(p)
		if got := u.Pack(); got != p {
			t.Errorf("pack/unpack round trip: %08x became %08x", p, got)
		}
	}
}

func TestScalePacked(t *testing.T) {
	if got := ScalePacked(0xff6080a0, 0.5); got != 0xff304050 {
		t.Errorf("ScalePacked: got %08x, want ff304050", got)
	}
	if got := ScalePacked(0x80ffffff, 1); got != 0x80ffffff {
		t.Errorf("ScalePacked by 1 changed the color: %08x", got)
	}
	if got := ScalePackedAlpha(0x80112233, 0.5); got != 0x40112233 {
		t.Errorf("ScalePackedAlpha: got %08x, want 40112233", got)
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		s    string
		want uint32
		err  bool
	}{
		{s: "#ff0000", want: 0xff0000ff},
		{s: "00ff00", want: 0xff00ff00},
		{s: "#0000ff80", want: 0x80ff0000},
		{s: "#ffffff", want: 0xffffffff},
		{s: "#fff", err: true},
		{s: "notacolor", err: true},
		{s: "", err: true},
	}
	for _, c := range cases {
		rgba, err := ParseHexColor(c.s)
		if c.err {
			if err == nil {
				t.Errorf("%q: expected an error", c.s)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", c.s, err)
		} else if got := rgba.Pack(); got != c.want {
			t.Errorf("%q: got %08x, want %08x", c.s, got, c.want)
		}
	}
}

func TestColorJSON(t *testing.T) {
	var c RGBA
	if err := c.UnmarshalJSON([]byte(`"#ff8000"`)); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := c.Pack(); got != 0xff0080ff {
		t.Errorf("unmarshaled color packs to %08x, want ff0080ff", got)
	}

	b, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"#ff8000"` {
		t.Errorf("marshal: got %s, want \"#ff8000\"", b)
	}

	// Configuration validation accepts hex strings where colors are
	// expected and rejects everything else.
	if !util.TypeCheckJSON[RGBA]("#aabbcc") {
		t.Errorf("TypeCheckJSON rejected a valid color string")
	}
	if util.TypeCheckJSON[RGBA]("nope") {
		t.Errorf("TypeCheckJSON accepted an invalid color string")
	}
	if util.TypeCheckJSON[RGBA](float64(7)) {
		t.Errorf("TypeCheckJSON accepted a number as a color")
	}
}

func testTexture() *Texture {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	img.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	return TextureFromImage(img)
}

func TestTextureSample(t *testing.T) {
	tex := testTexture()

	if got := tex.Sample(0, 0); got != 0xff0000ff {
		t.Errorf("sample at origin: got %08x, want ff0000ff", got)
	}

	// Dead center blends all four texels equally.
	mid := tex.Sample(0.25, 0.25)
	for shift := uint32(0); shift < 24; shift += 8 {
		if ch := (mid >> shift) & 255; ch < 126 || ch > 128 {
			t.Errorf("center sample channel %d: got %d, want about 127", shift/8, ch)
		}
	}

	// Horizontal wrap is seamless.
	if a, b := tex.Sample(1, 0), tex.Sample(0, 0); a != b {
		t.Errorf("u=1 sample %08x differs from u=0 sample %08x", a, b)
	}
	if a, b := tex.Sample(-0.5, 0), tex.Sample(0.5, 0); a != b {
		t.Errorf("u=-0.5 sample %08x differs from u=0.5 sample %08x", a, b)
	}

	var nilTex *Texture
	if got := nilTex.Sample(0.5, 0.5); got != 0xff000000 {
		t.Errorf("nil texture sample: got %08x, want ff000000", got)
	}
}

func TestTextureResize(t *testing.T) {
	tex := testTexture()

	if resized := tex.Resized(2, 2); resized != tex {
		t.Errorf("resize to the same dimensions should return the texture unchanged")
	}

	big := tex.Resized(8, 4)
	if big.Width != 8 || big.Height != 4 {
		t.Errorf("resized texture is %dx%d, want 8x4", big.Width, big.Height)
	}
	if big.Get(0, 0)>>24 != 255 {
		t.Errorf("resized texture lost alpha")
	}
}

func TestFramebufferImage(t *testing.T) {
	fb := NewFramebuffer(8, 8)

	want := color.NRGBA{R: 10, G: 20, B: 30, A: 40}
	fb.Set(2, 3, want)
	if got := fb.At(2, 3).(color.NRGBA); got != want {
		t.Errorf("Set/At round trip: got %+v, want %+v", got, want)
	}

	fb.Set(-1, 0, want) // must not panic
	if got := fb.At(-1, 0).(color.NRGBA); got != (color.NRGBA{}) {
		t.Errorf("out of bounds At: got %+v, want zero", got)
	}

	if b := fb.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds: got %v", b)
	}
}

func TestFonts(t *testing.T) {
	regular, err := MakeFont(14, false)
	if err != nil {
		t.Fatalf("MakeFont: %v", err)
	}
	mono, err := MakeFont(14, true)
	if err != nil {
		t.Fatalf("MakeFont mono: %v", err)
	}

	if w := regular.MeasureWidth("NNNN"); w <= 0 {
		t.Errorf("zero width for nonempty string")
	}
	if regular.MeasureWidth("iiii") >= regular.MeasureWidth("MMMM") {
		t.Errorf("proportional font should give narrow glyphs less advance")
	}
	if mono.MeasureWidth("iiii") != mono.MeasureWidth("MMMM") {
		t.Errorf("monospace font advance varies by glyph")
	}

	var nilFont *Font
	if nilFont.MeasureWidth("x") != 0 {
		t.Errorf("nil font measured nonzero width")
	}
}

func TestDrawText(t *testing.T) {
	f, err := MakeFont(16, false)
	if err != nil {
		t.Fatalf("MakeFont: %v", err)
	}

	fb := NewFramebuffer(64, 32)
	fb.DrawText("X", 10, 4, f, 0xff00ff00)

	painted := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			p := fb.Get(x, y)
			if p == 0 {
				continue
			}
			painted++
			if x < 9 || x > 10+f.MeasureWidth("X") || y < 4 || y > 4+f.Size+2 {
				t.Errorf("glyph pixel (%d,%d) outside its box", x, y)
			}
			if r, g := p&255, (p>>8)&255; r > g {
				t.Errorf("glyph pixel (%d,%d) has wrong hue: %08x", x, y, p)
			}
		}
	}
	if painted == 0 {
		t.Fatalf("DrawText painted nothing")
	}

	// The outlined variant surrounds the glyph with the outline color.
	fb.Clear()
	fb.DrawTextOutlined("X", 10, 4, f, 0xffffffff, 0xff000000, 1)
	dark := 0
	for _, p := range fb.Pixels() {
		if p != 0 && p&0xffffff == 0 {
			dark++
		}
	}
	if dark == 0 {
		t.Errorf("outlined text has no outline pixels")
	}

	// Nil fonts draw nothing rather than failing.
	fb.Clear()
	fb.DrawText("hello", 0, 0, nil, 0xffffffff)
	for _, p := range fb.Pixels() {
		if p != 0 {
			t.Fatalf("nil font drew pixels")
		}
	}
}
