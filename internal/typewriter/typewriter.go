package typewriter

import "time"

// Timing controls the pace of the effect.
type Timing struct {
	Start  time.Duration // pause before the first rune
	Type   time.Duration // per rune typed
	Delete time.Duration // per rune deleted
	Hold   time.Duration // pause with the full phrase shown
	Next   time.Duration // pause with nothing shown before the next phrase
}

// DefaultTiming waits 1s, then types at 150ms, deletes at half that and holds
// a full phrase for 2s.
func DefaultTiming() Timing {
	return Timing{
		Start:  time.Second,
		Type:   150 * time.Millisecond,
		Delete: 75 * time.Millisecond,
		Hold:   2 * time.Second,
		Next:   500 * time.Millisecond,
	}
}

// Typewriter types a phrase out, holds it, deletes it and moves on to the
// next phrase, cycling forever. It is driven by the caller: every Advance
// changes the visible text by at most one rune and returns how long to wait
// before calling Advance again.
type Typewriter struct {
	phrases  [][]rune
	timing   Timing
	index    int
	visible  int
	deleting bool
}

// New creates a typewriter. With no phrases it never shows anything.
func New(phrases []string, timing Timing) *Typewriter {
	t := &Typewriter{timing: timing}
	for _, p := range phrases {
		t.phrases = append(t.phrases, []rune(p))
	}
	return t
}

// Text returns the currently visible prefix.
func (t *Typewriter) Text() string {
	if len(t.phrases) == 0 {
		return ""
	}
	return string(t.phrases[t.index][:t.visible])
}

// Phrase returns the index of the phrase being typed.
func (t *Typewriter) Phrase() int { return t.index }

// Deleting reports whether the current phrase is being erased.
func (t *Typewriter) Deleting() bool { return t.deleting }

// StartDelay returns how long to wait before the first Advance. Without a
// Start pause it is the per-rune delay, and 0 when there is nothing to type.
func (t *Typewriter) StartDelay() time.Duration {
	if len(t.phrases) == 0 {
		return 0
	}
	if t.timing.Start > 0 {
		return t.timing.Start
	}
	return t.timing.Type
}

// Advance moves the effect one step and returns the delay until the next step.
// It returns 0 when there is nothing to type.
func (t *Typewriter) Advance() time.Duration {
	if len(t.phrases) == 0 {
		return 0
	}
	phrase := t.phrases[t.index]

	if !t.deleting {
		if t.visible < len(phrase) {
			t.visible++
		}
		if t.visible >= len(phrase) {
			t.deleting = true
			return t.timing.Hold
		}
		return t.timing.Type
	}

	if t.visible > 0 {
		t.visible--
	}
	if t.visible == 0 {
		t.deleting = false
		t.index = (t.index + 1) % len(t.phrases)
		return t.timing.Next
	}
	return t.timing.Delete
}
