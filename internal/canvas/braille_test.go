package canvas

import (
	"math"
	"strings"
	"testing"
)

func newTestCanvas(cols, rows int) *Braille {
	b := NewBraille(WithProfile(ProfileNone))
	b.Resize(cols, rows)
	return b
}

func TestSizeIsInSurfaceUnits(t *testing.T) {
	b := newTestCanvas(10, 3)
	w, h := b.Size()
	if w != 80 || h != 48 {
		t.Fatalf("expected 80x48, got %vx%v", w, h)
	}
}

func TestFillCircleLightsCentreDot(t *testing.T) {
	b := newTestCanvas(2, 1)
	b.FillCircle(6, 6, 1, Color{R: 255}, 0.5)
	if got := b.DotAlpha(1, 1); got != 0.5 {
		t.Fatalf("expected centre dot alpha 0.5, got %v", got)
	}
	if got := b.DotAlpha(0, 0); got != 0 {
		t.Fatalf("expected neighbour untouched, got %v", got)
	}
}

func TestStrokeLineBlendsEachDotOnce(t *testing.T) {
	b := newTestCanvas(5, 1)
	b.StrokeLine(2, 2, 38, 2, Color{G: 255}, 0.1)
	for ix := range 10 {
		if got := b.DotAlpha(ix, 0); math.Abs(got-0.1) > 1e-12 {
			t.Fatalf("dot %d: expected alpha 0.1, got %v", ix, got)
		}
	}
	if got := b.DotAlpha(0, 1); got != 0 {
		t.Fatalf("expected row below untouched, got %v", got)
	}
}

func TestPlotCompositesSourceOver(t *testing.T) {
	b := newTestCanvas(1, 1)
	b.FillCircle(2, 2, 0, Color{B: 255}, 0.5)
	b.FillCircle(2, 2, 0, Color{B: 255}, 0.5)
	if got := b.DotAlpha(0, 0); got != 0.75 {
		t.Fatalf("expected 0.75, got %v", got)
	}
}

func TestDrawingOutsideCanvasIsIgnored(t *testing.T) {
	b := newTestCanvas(2, 2)
	b.FillCircle(-50, -50, 3, Color{R: 1}, 1)
	b.StrokeLine(-100, -100, -10, 500, Color{R: 1}, 1)
	b.Label(-3, 9, "hidden")
	if strings.TrimSpace(b.View()) != "" {
		t.Fatalf("expected blank view, got %q", b.View())
	}
}

func TestViewEncodesBrailleBits(t *testing.T) {
	b := newTestCanvas(1, 1)
	b.FillCircle(2, 2, 0, Color{R: 255}, 1)
	b.FillCircle(6, 14, 0, Color{R: 255}, 1)
	if got, want := b.View(), string(rune(0x2800|1|1<<7)); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestLabelOverridesDots(t *testing.T) {
	b := newTestCanvas(4, 2)
	b.StrokeLine(0, 2, 31, 2, Color{R: 255}, 1)
	b.Label(1, 0, "hi")
	lines := strings.Split(b.View(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if []rune(lines[0])[1] != 'h' || []rune(lines[0])[2] != 'i' {
		t.Fatalf("expected label in first row, got %q", lines[0])
	}
	if lines[1] != "    " {
		t.Fatalf("expected blank second row, got %q", lines[1])
	}
}

func TestClearResetsDotsAndLabels(t *testing.T) {
	b := newTestCanvas(2, 1)
	b.FillCircle(4, 4, 2, Color{R: 9}, 1)
	b.Label(0, 0, "x")
	b.Clear()
	if b.View() != "  " {
		t.Fatalf("expected cleared view, got %q", b.View())
	}
}

func TestTrueColorEmitsSequences(t *testing.T) {
	b := NewBraille(WithProfile(ProfileTrueColor), WithGamma(1))
	b.Resize(1, 1)
	b.FillCircle(2, 2, 0, Color{R: 200, G: 100, B: 50}, 1)
	view := b.View()
	if !strings.HasPrefix(view, "\x1b[38;2;200;100;50m") {
		t.Fatalf("expected truecolor prefix, got %q", view)
	}
	if !strings.HasSuffix(view, "\x1b[0m") {
		t.Fatalf("expected reset suffix, got %q", view)
	}
}

func TestReducedProfilesDegradeColour(t *testing.T) {
	cases := []struct {
		profile Profile
		prefix  string
	}{
		{ProfileANSI256, "\x1b[38;5;"},
		{ProfileANSI16, "\x1b["},
	}
	for _, tc := range cases {
		b := NewBraille(WithProfile(tc.profile), WithGamma(1))
		b.Resize(1, 1)
		b.FillCircle(2, 2, 0, Color{R: 79, G: 70, B: 229}, 1)
		view := b.View()
		if !strings.HasPrefix(view, tc.prefix) || strings.Contains(view, "38;2;") {
			t.Fatalf("profile %d: unexpected sequence %q", tc.profile, view)
		}
		if !strings.HasSuffix(view, "\x1b[0m") {
			t.Fatalf("profile %d: expected reset suffix, got %q", tc.profile, view)
		}
	}
}

func TestNoColorProfileEmitsPlainText(t *testing.T) {
	b := NewBraille(WithProfile(ProfileNone))
	b.Resize(1, 1)
	b.FillCircle(2, 2, 0, Color{R: 79, G: 70, B: 229}, 1)
	if strings.Contains(b.View(), "\x1b") {
		t.Fatalf("expected no escapes, got %q", b.View())
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#6366F1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (Color{R: 0x63, G: 0x66, B: 0xF1}) {
		t.Fatalf("unexpected colour %+v", c)
	}
	if c.Hex() != "#6366F1" {
		t.Fatalf("expected round trip, got %s", c.Hex())
	}
	if _, err := ParseHex("#12"); err == nil {
		t.Fatal("expected error for short hex")
	}
}

func TestClearLabelsKeepsDots(t *testing.T) {
	b := newTestCanvas(2, 1)
	b.FillCircle(2, 2, 0, Color{R: 9}, 1)
	b.Label(1, 0, "x")
	b.ClearLabels()
	if got, want := b.View(), string(rune(0x2801))+" "; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
