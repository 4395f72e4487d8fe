package particles

import (
	"math"
	"math/rand"
	"testing"

	"github.com/olivier-w/folio/internal/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type circle struct {
	x, y, r, alpha float64
}

type line struct {
	x0, y0, x1, y1, alpha float64
}

type recordingSurface struct {
	w, h    float64
	clears  int
	circles []circle
	lines   []line
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordingSurface) Clear()                   { s.clears++ }

func (s *recordingSurface) FillCircle(x, y, r float64, _ canvas.Color, alpha float64) {
	s.circles = append(s.circles, circle{x, y, r, alpha})
}

func (s *recordingSurface) StrokeLine(x0, y0, x1, y1 float64, _ canvas.Color, alpha float64) {
	s.lines = append(s.lines, line{x0, y0, x1, y1, alpha})
}

func newTestSimulator(w, h float64) (*Simulator, *recordingSurface) {
	surface := &recordingSurface{w: w, h: h}
	return New(surface, DefaultParams(), rand.New(rand.NewSource(7))), surface
}

func still(x, y float64) Particle {
	return Particle{X: x, Y: y, Radius: 2, Opacity: 0.5}
}

func TestCountFollowsSurfaceArea(t *testing.T) {
	cases := []struct {
		w, h float64
		want int
	}{
		{300, 150, 3},
		{100, 100, 0},
		{150, 100, 1},
		{1920, 1080, 138},
		{0, 500, 0},
		{-10, 500, 0},
		{1e9, 1e9, MaxParticles},
		{math.Inf(1), 10, MaxParticles},
		{math.NaN(), 10, 0},
	}
	for _, tc := range cases {
		sim, _ := newTestSimulator(tc.w, tc.h)
		assert.Equal(t, tc.want, sim.Count(), "surface %vx%v", tc.w, tc.h)
	}
}

func TestGeneratedParticlesStayInRanges(t *testing.T) {
	sim, _ := newTestSimulator(3000, 3000)
	require.Equal(t, 600, sim.Count())

	for _, p := range sim.Particles() {
		assert.GreaterOrEqual(t, p.X, 0.0)
		assert.Less(t, p.X, 3000.0)
		assert.GreaterOrEqual(t, p.Y, 0.0)
		assert.Less(t, p.Y, 3000.0)
		assert.LessOrEqual(t, math.Abs(p.VX), 0.25)
		assert.LessOrEqual(t, math.Abs(p.VY), 0.25)
		assert.GreaterOrEqual(t, p.Radius, 1.0)
		assert.Less(t, p.Radius, 3.0)
		assert.GreaterOrEqual(t, p.Opacity, 0.2)
		assert.Less(t, p.Opacity, 0.7)
	}
}

func TestNilSurfaceIsInert(t *testing.T) {
	sim := New(nil, DefaultParams(), nil)
	assert.True(t, sim.Inert())
	assert.Zero(t, sim.Count())

	sim.PointerMove(10, 10)
	sim.Resize()
	sim.Step()
	sim.Tick()
	assert.Equal(t, Point{}, sim.Pointer())
	assert.Zero(t, sim.Count())
}

func TestResizeRegeneratesWholeField(t *testing.T) {
	sim, surface := newTestSimulator(600, 300)
	before := sim.Particles()

	sim.Resize()
	after := sim.Particles()
	require.Len(t, after, len(before))
	assert.NotEqual(t, before, after, "same size should still produce new values")

	surface.w, surface.h = 1200, 600
	sim.Resize()
	assert.Equal(t, 48, sim.Count())
	w, h := sim.Bounds()
	assert.Equal(t, 1200.0, w)
	assert.Equal(t, 600.0, h)
}

func TestSingleTickMovesByVelocity(t *testing.T) {
	sim, _ := newTestSimulator(300, 150)
	require.Equal(t, 3, sim.Count())
	before := sim.Particles()

	sim.Tick()

	for i, p := range sim.Particles() {
		assert.Equal(t, before[i].X+before[i].VX, p.X, "particle %d x", i)
		assert.Equal(t, before[i].Y+before[i].VY, p.Y, "particle %d y", i)
	}
}

func TestReflectionFlipsVelocityWithoutClamping(t *testing.T) {
	sim, _ := newTestSimulator(300, 150)
	sim.SetParticles([]Particle{
		{X: 299.9, Y: 75, VX: 0.25, VY: 0},
		{X: 0.1, Y: 0.1, VX: -0.2, VY: -0.2},
	})

	sim.Step()
	field := sim.Particles()
	assert.InDelta(t, 300.15, field[0].X, 1e-9, "overshoot is kept for one frame")
	assert.Equal(t, -0.25, field[0].VX)
	assert.Equal(t, 0.0, field[0].VY)
	assert.InDelta(t, -0.1, field[1].X, 1e-9)
	assert.InDelta(t, -0.1, field[1].Y, 1e-9)
	assert.Equal(t, 0.2, field[1].VX)
	assert.Equal(t, 0.2, field[1].VY)

	sim.Step()
	field = sim.Particles()
	assert.InDelta(t, 299.9, field[0].X, 1e-9)
	assert.Equal(t, -0.25, field[0].VX, "velocity flips once per excursion")
	assert.InDelta(t, 0.1, field[1].X, 1e-9)
}

func TestPointerRepelsNearbyParticles(t *testing.T) {
	sim, _ := newTestSimulator(300, 150)
	sim.SetParticles([]Particle{still(120, 75), still(250, 75)})
	sim.PointerMove(100, 75)

	sim.Step()
	field := sim.Particles()
	assert.InDelta(t, 120.2, field[0].X, 1e-9)
	assert.Equal(t, 75.0, field[0].Y)
	assert.Equal(t, 250.0, field[1].X, "outside the radius nothing moves")

	prev := 20.2
	for range 50 {
		sim.Step()
		d := sim.Particles()[0].X - 100
		assert.GreaterOrEqual(t, d, prev)
		prev = d
	}
}

func TestNoRepulsionBeforeFirstPointerMove(t *testing.T) {
	sim, _ := newTestSimulator(300, 150)
	sim.SetParticles([]Particle{still(10, 10)})
	sim.Step()
	assert.Equal(t, still(10, 10), sim.Particles()[0])
	assert.Equal(t, Point{}, sim.Pointer())
}

func TestPointerOutsideSurfaceIsAccepted(t *testing.T) {
	sim, _ := newTestSimulator(300, 150)
	sim.PointerMove(-500, 9999)
	assert.Equal(t, Point{X: -500, Y: 9999}, sim.Pointer())
}

func TestLinkAlphaFadesToZero(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 0.0, p.LinkAlphaAt(100))
	assert.Equal(t, 0.0, p.LinkAlphaAt(150))
	assert.InDelta(t, 0.1, p.LinkAlphaAt(0), 1e-12)
	assert.InDelta(t, 0.1, p.LinkAlphaAt(1e-9), 1e-9)
	assert.InDelta(t, 0.05, p.LinkAlphaAt(50), 1e-12)
}

func TestTickDrawsParticlesAndLinks(t *testing.T) {
	sim, surface := newTestSimulator(300, 150)
	sim.SetParticles([]Particle{still(100, 50), still(150, 50), still(290, 140)})

	sim.Tick()

	assert.Equal(t, 1, surface.clears)
	require.Len(t, surface.circles, 3)
	assert.Equal(t, circle{100, 50, 2, 0.5}, surface.circles[0])

	require.Len(t, surface.lines, 2, "each close pair is linked from both ends")
	assert.Equal(t, line{100, 50, 150, 50, 0.05}, roundLine(surface.lines[0]))
	assert.Equal(t, line{150, 50, 100, 50, 0.05}, roundLine(surface.lines[1]))
}

func TestDrawRendersWithoutAdvancing(t *testing.T) {
	surface := &recordingSurface{w: 300, h: 150}
	field := []Particle{still(100, 50), still(150, 50)}
	field[0].VX = 5

	Draw(surface, DefaultParams(), field)

	assert.Equal(t, 1, surface.clears)
	require.Len(t, surface.circles, 2)
	assert.Equal(t, circle{100, 50, 2, 0.5}, surface.circles[0])
	assert.Len(t, surface.lines, 2)
	assert.Equal(t, 100.0, field[0].X)
}

func roundLine(l line) line {
	l.alpha = math.Round(l.alpha*1e9) / 1e9
	return l
}
