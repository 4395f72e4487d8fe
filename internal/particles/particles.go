package particles

import (
	"math"
	"math/rand"

	"github.com/olivier-w/folio/internal/canvas"
)

// Particle is a point in the field. It has no identity beyond its slot.
type Particle struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Radius  float64 `json:"radius"`
	Opacity float64 `json:"opacity"`
}

// Point is a location in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Surface is the immediate-mode drawing target the field renders onto.
type Surface interface {
	Size() (width, height float64)
	Clear()
	FillCircle(x, y, r float64, c canvas.Color, alpha float64)
	StrokeLine(x0, y0, x1, y1 float64, c canvas.Color, alpha float64)
}

// Params tunes field density, motion and rendering.
type Params struct {
	AreaPerParticle float64
	MaxSpeed        float64
	RadiusMin       float64
	RadiusMax       float64
	OpacityMin      float64
	OpacityMax      float64
	LinkDistance    float64
	LinkAlpha       float64
	RepelRadius     float64
	RepelStrength   float64
	Color           canvas.Color
}

// DefaultParams returns one particle per 15000 square units, links and
// repulsion inside 100 units, drawn in indigo #4F46E5.
func DefaultParams() Params {
	return Params{
		AreaPerParticle: 15000,
		MaxSpeed:        0.25,
		RadiusMin:       1,
		RadiusMax:       3,
		OpacityMin:      0.2,
		OpacityMax:      0.7,
		LinkDistance:    100,
		LinkAlpha:       0.1,
		RepelRadius:     100,
		RepelStrength:   0.01,
		Color:           canvas.Color{R: 79, G: 70, B: 229},
	}
}

// MaxParticles bounds the field size whatever the surface measures. Linking
// is quadratic in the count.
const MaxParticles = 2000

// Count returns how many particles a width x height surface holds, at most
// MaxParticles.
func (p Params) Count(width, height float64) int {
	if width <= 0 || height <= 0 || p.AreaPerParticle <= 0 {
		return 0
	}
	n := math.Floor(width * height / p.AreaPerParticle)
	switch {
	case math.IsNaN(n):
		return 0
	case n > MaxParticles:
		return MaxParticles
	}
	return int(n)
}

// LinkAlphaAt returns the stroke alpha for two particles d apart. It fades
// linearly from LinkAlpha at 0 to 0 at LinkDistance.
func (p Params) LinkAlphaAt(d float64) float64 {
	if d >= p.LinkDistance || p.LinkDistance <= 0 {
		return 0
	}
	return p.LinkAlpha * (1 - d/p.LinkDistance)
}

// Simulator owns a field of particles bound to one surface. A Simulator
// created without a surface is inert. It is not safe for concurrent use;
// see Runner for a goroutine-owned loop.
type Simulator struct {
	surface Surface
	params  Params
	rng     *rand.Rand

	width, height float64
	field         []Particle

	pointer    Point
	hasPointer bool
}

// New measures the surface and seeds a fresh field.
func New(surface Surface, params Params, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	s := &Simulator{surface: surface, params: params, rng: rng}
	s.Resize()
	return s
}

// Inert reports whether the simulator has no surface to draw on.
func (s *Simulator) Inert() bool { return s.surface == nil }

// Resize re-measures the surface and replaces the whole field.
func (s *Simulator) Resize() {
	if s.Inert() {
		return
	}
	w, h := s.surface.Size()
	s.regenerate(w, h)
}

func (s *Simulator) regenerate(w, h float64) {
	n := s.params.Count(w, h)
	field := make([]Particle, n)
	for i := range field {
		field[i] = Particle{
			X:       s.rng.Float64() * w,
			Y:       s.rng.Float64() * h,
			VX:      (s.rng.Float64()*2 - 1) * s.params.MaxSpeed,
			VY:      (s.rng.Float64()*2 - 1) * s.params.MaxSpeed,
			Radius:  s.params.RadiusMin + s.rng.Float64()*(s.params.RadiusMax-s.params.RadiusMin),
			Opacity: s.params.OpacityMin + s.rng.Float64()*(s.params.OpacityMax-s.params.OpacityMin),
		}
	}
	s.width, s.height = w, h
	s.field = field
}

// PointerMove records the pointer in surface coordinates. Coordinates outside
// the surface are kept as given.
func (s *Simulator) PointerMove(x, y float64) {
	if s.Inert() {
		return
	}
	s.pointer = Point{X: x, Y: y}
	s.hasPointer = true
}

// Pointer returns the last pointer position, (0,0) before any movement.
func (s *Simulator) Pointer() Point { return s.pointer }

// Count returns the number of particles in the field.
func (s *Simulator) Count() int { return len(s.field) }

// Bounds returns the dimensions the field was generated for.
func (s *Simulator) Bounds() (width, height float64) { return s.width, s.height }

// Params returns the tuning the simulator was built with.
func (s *Simulator) Params() Params { return s.params }

// Particles returns a copy of the field.
func (s *Simulator) Particles() []Particle {
	out := make([]Particle, len(s.field))
	copy(out, s.field)
	return out
}

// SetParticles replaces the field contents without touching the bounds.
func (s *Simulator) SetParticles(field []Particle) {
	if s.Inert() {
		return
	}
	s.field = append(s.field[:0:0], field...)
}

// Step advances every particle one frame without drawing.
func (s *Simulator) Step() {
	if s.Inert() {
		return
	}
	for i := range s.field {
		s.advance(&s.field[i])
	}
}

// Tick advances and draws one frame. Each particle is moved, drawn, then
// linked to every other particle in range using their current positions.
func (s *Simulator) Tick() {
	if s.Inert() {
		return
	}
	s.surface.Clear()
	color := s.params.Color
	for i := range s.field {
		p := &s.field[i]
		s.advance(p)
		s.surface.FillCircle(p.X, p.Y, p.Radius, color, p.Opacity)

		for j := range s.field {
			if j == i {
				continue
			}
			q := &s.field[j]
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d < s.params.LinkDistance {
				s.surface.StrokeLine(p.X, p.Y, q.X, q.Y, color, s.params.LinkAlphaAt(d))
			}
		}
	}
}

// Draw renders a field onto surface as it stands, without advancing it. It
// uses the same circles and links as Tick.
func Draw(surface Surface, params Params, field []Particle) {
	surface.Clear()
	for i := range field {
		p := field[i]
		surface.FillCircle(p.X, p.Y, p.Radius, params.Color, p.Opacity)
		for j := range field {
			if j == i {
				continue
			}
			q := field[j]
			if d := math.Hypot(p.X-q.X, p.Y-q.Y); d < params.LinkDistance {
				surface.StrokeLine(p.X, p.Y, q.X, q.Y, params.Color, params.LinkAlphaAt(d))
			}
		}
	}
}

// advance integrates, reflects and repels one particle. Reflection only flips
// velocity, so a particle may sit outside the bounds for a frame.
func (s *Simulator) advance(p *Particle) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > s.width {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > s.height {
		p.VY = -p.VY
	}

	if !s.hasPointer {
		return
	}
	dx := s.pointer.X - p.X
	dy := s.pointer.Y - p.Y
	if math.Hypot(dx, dy) < s.params.RepelRadius {
		p.X -= dx * s.params.RepelStrength
		p.Y -= dy * s.params.RepelStrength
	}
}

// Headless is a Surface that only has a size. Drawing calls are dropped.
type Headless struct {
	Width, Height float64
}

func (h *Headless) Size() (float64, float64) { return h.Width, h.Height }
func (h *Headless) Clear()                   {}

func (h *Headless) FillCircle(x, y, r float64, c canvas.Color, alpha float64) {}

func (h *Headless) StrokeLine(x0, y0, x1, y1 float64, c canvas.Color, alpha float64) {}
