package reveal

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settleEpsilon is how close to fully shown a block must be to stop animating.
const settleEpsilon = 0.001

// Block is a range of content lines, [Start, End).
type Block struct {
	Start, End int
}

type blockState struct {
	Block
	revealed bool
	pos      float64
	vel      float64
}

// Tracker reveals blocks the first time they intersect the visible window
// and eases them in with a critically damped spring. Revealed blocks stay
// revealed until Reset.
type Tracker struct {
	spring harmonica.Spring
	blocks []blockState
}

// New creates a tracker stepping at fps.
func New(fps int, blocks ...Block) *Tracker {
	t := &Tracker{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
	t.SetBlocks(blocks...)
	return t
}

// SetBlocks replaces the tracked blocks. When the number of blocks is
// unchanged, as after a relayout, each block keeps its reveal state and only
// its line range moves. Otherwise every block starts hidden.
func (t *Tracker) SetBlocks(blocks ...Block) {
	if len(blocks) == len(t.blocks) {
		for i, b := range blocks {
			t.blocks[i].Block = b
		}
		return
	}
	t.blocks = make([]blockState, len(blocks))
	for i, b := range blocks {
		t.blocks[i] = blockState{Block: b}
	}
}

// Len returns the number of tracked blocks.
func (t *Tracker) Len() int { return len(t.blocks) }

// Observe marks every block intersecting lines [offset, offset+height) as
// revealed. It reports whether any block changed state.
func (t *Tracker) Observe(offset, height int) bool {
	changed := false
	for i := range t.blocks {
		b := &t.blocks[i]
		if b.revealed {
			continue
		}
		if b.Start < offset+height && b.End > offset {
			b.revealed = true
			changed = true
		}
	}
	return changed
}

// Step advances every revealed block's spring one frame toward fully shown.
func (t *Tracker) Step() {
	for i := range t.blocks {
		b := &t.blocks[i]
		if !b.revealed || b.pos == 1 {
			continue
		}
		b.pos, b.vel = t.spring.Update(b.pos, b.vel, 1)
		if math.Abs(1-b.pos) < settleEpsilon && math.Abs(b.vel) < settleEpsilon {
			b.pos, b.vel = 1, 0
		}
	}
}

// Revealed reports whether block i has been seen.
func (t *Tracker) Revealed(i int) bool {
	if i < 0 || i >= len(t.blocks) {
		return false
	}
	return t.blocks[i].revealed
}

// Progress returns block i's animation progress in [0,1].
func (t *Tracker) Progress(i int) float64 {
	if i < 0 || i >= len(t.blocks) {
		return 0
	}
	p := t.blocks[i].pos
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Settled reports whether no block is mid-animation.
func (t *Tracker) Settled() bool {
	for _, b := range t.blocks {
		if b.revealed && b.pos != 1 {
			return false
		}
	}
	return true
}

// Reset hides every block again.
func (t *Tracker) Reset() {
	for i := range t.blocks {
		t.blocks[i].revealed = false
		t.blocks[i].pos = 0
		t.blocks[i].vel = 0
	}
}
