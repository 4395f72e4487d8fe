package server

import (
	"math"

	"github.com/olivier-w/folio/internal/canvas"
	"github.com/olivier-w/folio/internal/particles"
)

// scaled maps field coordinates onto a surface of a different size.
type scaled struct {
	dst    particles.Surface
	sx, sy float64
}

func newScaled(dst particles.Surface, fieldWidth, fieldHeight float64) scaled {
	w, h := dst.Size()
	s := scaled{dst: dst, sx: 1, sy: 1}
	if fieldWidth > 0 {
		s.sx = w / fieldWidth
	}
	if fieldHeight > 0 {
		s.sy = h / fieldHeight
	}
	return s
}

func (s scaled) Size() (float64, float64) {
	w, h := s.dst.Size()
	return w / s.sx, h / s.sy
}

func (s scaled) Clear() { s.dst.Clear() }

func (s scaled) FillCircle(x, y, r float64, c canvas.Color, alpha float64) {
	s.dst.FillCircle(x*s.sx, y*s.sy, r*math.Min(s.sx, s.sy), c, alpha)
}

func (s scaled) StrokeLine(x0, y0, x1, y1 float64, c canvas.Color, alpha float64) {
	s.dst.StrokeLine(x0*s.sx, y0*s.sy, x1*s.sx, y1*s.sy, c, alpha)
}
