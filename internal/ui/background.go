package ui

import (
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/folio/internal/canvas"
	"github.com/olivier-w/folio/internal/particles"
)

type label struct {
	col, row int
	text     string
}

// Background is the animated particle field behind the hero. It owns the
// braille canvas and the simulator and re-arms its own frame tick while
// running.
type Background struct {
	canvas   *canvas.Braille
	sim      *particles.Simulator
	interval time.Duration
	labels   []label

	seq     int
	running bool
}

// NewBackground binds a simulator to cv. A nil canvas gives an inert
// background that never draws.
func NewBackground(cv *canvas.Braille, params particles.Params, fps int, rng *rand.Rand) Background {
	if fps <= 0 {
		fps = 60
	}
	var surface particles.Surface
	if cv != nil {
		surface = cv
	}
	return Background{
		canvas:   cv,
		sim:      particles.New(surface, params, rng),
		interval: time.Second / time.Duration(fps),
	}
}

// Resize fits the canvas to cols x rows cells and regenerates the field.
func (b *Background) Resize(cols, rows int) {
	if b.canvas == nil {
		return
	}
	b.canvas.Resize(cols, rows)
	b.sim.Resize()
	b.stampLabels()
}

// PointerAt feeds a pointer position given in cells relative to the canvas
// origin. The pointer lands on the centre of the cell.
func (b *Background) PointerAt(col, row int) {
	b.sim.PointerMove(
		float64(col*canvas.CellWidth)+canvas.CellWidth/2,
		float64(row*canvas.CellHeight)+canvas.CellHeight/2,
	)
}

// Start begins a new frame chain. Any chain already pending is revoked.
func (b *Background) Start() tea.Cmd {
	if b.canvas == nil {
		return nil
	}
	b.seq++
	b.running = true
	return frameCmd(b.interval, b.seq)
}

// Pending returns the frame command for the current chain, or nil when the
// background is stopped.
func (b *Background) Pending() tea.Cmd {
	if !b.running || b.canvas == nil {
		return nil
	}
	return frameCmd(b.interval, b.seq)
}

// Stop revokes the pending frame so the chain ends.
func (b *Background) Stop() {
	b.seq++
	b.running = false
}

// Running reports whether a frame chain is active.
func (b *Background) Running() bool { return b.running }

// Simulator exposes the field for inspection.
func (b *Background) Simulator() *particles.Simulator { return b.sim }

// Frame draws one frame and schedules the next. Frames from a revoked chain
// are dropped.
func (b *Background) Frame(msg frameMsg) tea.Cmd {
	if !b.running || msg.seq != b.seq {
		return nil
	}
	b.sim.Tick()
	b.stampLabels()
	return frameCmd(b.interval, b.seq)
}

// SetLabels replaces the text stamped over the field.
func (b *Background) SetLabels(labels ...label) {
	b.labels = labels
	b.stampLabels()
}

func (b *Background) stampLabels() {
	if b.canvas == nil {
		return
	}
	b.canvas.ClearLabels()
	for _, l := range b.labels {
		b.canvas.Label(l.col, l.row, l.text)
	}
}

// View renders the current frame.
func (b Background) View() string {
	if b.canvas == nil {
		return ""
	}
	return b.canvas.View()
}
