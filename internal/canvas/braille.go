package canvas

import (
	"math"
	"strings"
)

// Surface units are nominal pixels. A terminal cell is CellWidth x CellHeight
// pixels and holds a 2x4 braille dot grid, so every dot is DotSize pixels square.
const (
	CellWidth  = 8
	CellHeight = 16
	DotSize    = 4

	dotsPerCellX = CellWidth / DotSize
	dotsPerCellY = CellHeight / DotSize
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Braille is an immediate-mode drawing surface rasterised onto Unicode
// braille characters. Each dot accumulates alpha with source-over blending.
type Braille struct {
	cols, rows       int
	dotCols, dotRows int

	alpha []float64
	tint  []Color
	text  []rune

	profile    Profile
	gamma      float64
	threshold  float64
	background Color
	labelColor Color
}

// Option configures a Braille canvas.
type Option func(*Braille)

// WithProfile overrides terminal colour detection.
func WithProfile(p Profile) Option {
	return func(b *Braille) { b.profile = p }
}

// WithGamma sets the exponent applied to dot alpha before colouring.
// Values below 1 lift faint strokes.
func WithGamma(g float64) Option {
	return func(b *Braille) {
		if g > 0 {
			b.gamma = g
		}
	}
}

// WithThreshold sets the minimum alpha for a dot to be lit.
func WithThreshold(a float64) Option {
	return func(b *Braille) {
		if a >= 0 {
			b.threshold = a
		}
	}
}

// WithBackground sets the colour faint dots fade toward.
func WithBackground(c Color) Option {
	return func(b *Braille) { b.background = c }
}

// WithLabelColor sets the colour used for text stamped with Label.
func WithLabelColor(c Color) Option {
	return func(b *Braille) { b.labelColor = c }
}

// NewBraille creates an empty canvas. Call Resize before drawing.
func NewBraille(opts ...Option) *Braille {
	b := &Braille{
		profile:    DetectProfile(),
		gamma:      0.5,
		threshold:  0.005,
		labelColor: Color{R: 230, G: 230, B: 240},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resize sets the canvas dimensions in terminal cells and clears it.
func (b *Braille) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	b.cols, b.rows = cols, rows
	b.dotCols, b.dotRows = cols*dotsPerCellX, rows*dotsPerCellY
	b.alpha = make([]float64, b.dotCols*b.dotRows)
	b.tint = make([]Color, b.dotCols*b.dotRows)
	b.text = make([]rune, cols*rows)
}

// Cols returns the width in terminal cells.
func (b *Braille) Cols() int { return b.cols }

// Rows returns the height in terminal cells.
func (b *Braille) Rows() int { return b.rows }

// Size returns the drawable area in surface units.
func (b *Braille) Size() (width, height float64) {
	return float64(b.cols * CellWidth), float64(b.rows * CellHeight)
}

// Clear erases all dots and labels.
func (b *Braille) Clear() {
	clear(b.alpha)
	clear(b.tint)
	clear(b.text)
}

// DotAlpha reports the accumulated alpha of the dot at (ix, iy).
func (b *Braille) DotAlpha(ix, iy int) float64 {
	if ix < 0 || iy < 0 || ix >= b.dotCols || iy >= b.dotRows {
		return 0
	}
	return b.alpha[iy*b.dotCols+ix]
}

func (b *Braille) plot(ix, iy int, c Color, a float64) {
	if ix < 0 || iy < 0 || ix >= b.dotCols || iy >= b.dotRows || a <= 0 {
		return
	}
	i := iy*b.dotCols + ix
	prev := b.alpha[i]
	next := prev + a*(1-prev)
	b.tint[i] = mix(b.tint[i], c, a/next)
	b.alpha[i] = next
}

// FillCircle fills every dot whose centre lies within r of (x, y). The dot
// under the centre is always filled so sub-dot circles stay visible.
func (b *Braille) FillCircle(x, y, r float64, c Color, alpha float64) {
	cx, cy, rd := x/DotSize, y/DotSize, r/DotSize
	centerX, centerY := int(math.Floor(cx)), int(math.Floor(cy))
	b.plot(centerX, centerY, c, alpha)

	for iy := int(math.Floor(cy - rd)); iy <= int(math.Ceil(cy+rd)); iy++ {
		for ix := int(math.Floor(cx - rd)); ix <= int(math.Ceil(cx+rd)); ix++ {
			if ix == centerX && iy == centerY {
				continue
			}
			dx := float64(ix) + 0.5 - cx
			dy := float64(iy) + 0.5 - cy
			if dx*dx+dy*dy <= rd*rd {
				b.plot(ix, iy, c, alpha)
			}
		}
	}
}

// StrokeLine draws a one-dot-wide segment between two points. Each dot on the
// segment is blended once.
func (b *Braille) StrokeLine(x0, y0, x1, y1 float64, c Color, alpha float64) {
	fx0, fy0 := x0/DotSize, y0/DotSize
	dx, dy := x1/DotSize-fx0, y1/DotSize-fy0
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		b.plot(int(math.Floor(fx0)), int(math.Floor(fy0)), c, alpha)
		return
	}

	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		ix := int(math.Floor(fx0 + dx*t))
		iy := int(math.Floor(fy0 + dy*t))
		if ix == lastX && iy == lastY {
			continue
		}
		b.plot(ix, iy, c, alpha)
		lastX, lastY = ix, iy
	}
}

// ClearLabels removes stamped text and leaves the dots alone.
func (b *Braille) ClearLabels() {
	clear(b.text)
}

// Label stamps text over the dots starting at the given cell. Text outside the
// canvas is cut off.
func (b *Braille) Label(col, row int, text string) {
	if row < 0 || row >= b.rows {
		return
	}
	for _, r := range text {
		if col >= b.cols {
			return
		}
		if col >= 0 {
			b.text[row*b.cols+col] = r
		}
		col++
	}
}

// View renders the canvas as rows of braille characters.
func (b *Braille) View() string {
	if b.cols == 0 || b.rows == 0 {
		return ""
	}

	var out strings.Builder
	color := pen{profile: b.profile}
	for row := range b.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range b.cols {
			if r := b.text[row*b.cols+col]; r != 0 {
				color.set(&out, b.labelColor)
				out.WriteRune(r)
				continue
			}

			var pattern uint
			var peak float64
			var tint Color
			for dx := range dotsPerCellX {
				for dy := range dotsPerCellY {
					i := (row*dotsPerCellY+dy)*b.dotCols + col*dotsPerCellX + dx
					a := b.alpha[i]
					if a < b.threshold || a == 0 {
						continue
					}
					pattern |= 1 << brailleBits[dx][dy]
					if a > peak {
						peak = a
						tint = b.tint[i]
					}
				}
			}
			if pattern == 0 {
				out.WriteByte(' ')
				continue
			}
			color.set(&out, mix(b.background, tint, math.Pow(peak, b.gamma)))
			out.WriteRune(rune(0x2800 + pattern))
		}
		color.reset(&out)
	}
	return out.String()
}
