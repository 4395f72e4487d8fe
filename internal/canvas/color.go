package canvas

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Profile is the colour capability of the output terminal.
type Profile uint8

const (
	ProfileNone Profile = iota
	ProfileANSI16
	ProfileANSI256
	ProfileTrueColor
)

// DetectProfile asks termenv what stdout supports. NO_COLOR and a non-tty
// stdout both yield ProfileNone.
func DetectProfile() Profile {
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor:
		return ProfileTrueColor
	case termenv.ANSI256:
		return ProfileANSI256
	case termenv.ANSI:
		return ProfileANSI16
	}
	return ProfileNone
}

func (p Profile) termenv() termenv.Profile {
	switch p {
	case ProfileTrueColor:
		return termenv.TrueColor
	case ProfileANSI256:
		return termenv.ANSI256
	case ProfileANSI16:
		return termenv.ANSI
	}
	return termenv.Ascii
}

// Color is an opaque RGB colour. Transparency is carried separately as alpha.
type Color struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "RRGGBB".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex formats c as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c Color) key() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// mix moves a toward b by t in [0,1].
func mix(a, b Color, t float64) Color {
	t = min(max(t, 0), 1)
	ch := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return Color{R: ch(a.R, b.R), G: ch(a.G, b.G), B: ch(a.B, b.B)}
}

var sequences sync.Map // profile<<24 | rgb -> SGR string

// sgr returns the foreground escape for c, degraded to p by termenv.
func sgr(p Profile, c Color) string {
	k := uint32(p)<<24 | c.key()
	if seq, ok := sequences.Load(k); ok {
		return seq.(string)
	}
	var seq string
	if tc := p.termenv().Color(c.Hex()); tc != nil && p != ProfileNone {
		seq = termenv.CSI + tc.Sequence(false) + "m"
	}
	sequences.Store(k, seq)
	return seq
}

// pen writes colour changes only when the colour differs from the last one.
type pen struct {
	profile Profile
	current uint32
	inked   bool
}

func (w *pen) set(sb *strings.Builder, c Color) {
	if w.profile == ProfileNone || (w.inked && w.current == c.key()) {
		return
	}
	sb.WriteString(sgr(w.profile, c))
	w.current, w.inked = c.key(), true
}

func (w *pen) reset(sb *strings.Builder) {
	if !w.inked {
		return
	}
	sb.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	w.inked = false
}
