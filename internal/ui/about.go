package ui

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/olivier-w/folio/internal/reveal"
)

// aboutContent lays out the intro, skills and stats blocks. Skill bars and
// stat counters are scaled by their block's reveal progress, so they grow
// from zero the first time the block scrolls into view.
func (m Model) aboutContent() ([]string, []reveal.Block) {
	var (
		lines  []string
		blocks []reveal.Block
	)
	add := func(block []string) {
		start := len(lines)
		lines = append(lines, block...)
		blocks = append(blocks, reveal.Block{Start: start, End: len(lines)})
		lines = append(lines, "")
	}

	intro := []string{"  " + titleStyle.Render("About"), ""}
	for _, l := range wrap(subtitleStyle, m.textWidth(), m.profile.About) {
		intro = append(intro, "  "+l)
	}
	add(intro)

	if len(m.profile.Skills) > 0 {
		p := m.aboutProgress(len(blocks))
		nameWidth := m.skillNameWidth()
		skills := []string{"  " + headerStyle.Render("Skills")}
		for _, s := range m.profile.Skills {
			pad := strings.Repeat(" ", nameWidth-utf8.RuneCountInString(s.Name))
			level := float64(s.Level) / 100
			skills = append(skills, fmt.Sprintf("  %s%s  %s %3d%%",
				tagStyle.Render(s.Name), pad, m.skillBar.ViewAs(level*p), countUp(s.Level, p)))
		}
		add(skills)
	}

	if len(m.profile.Stats) > 0 {
		p := m.aboutProgress(len(blocks))
		stats := []string{"  " + headerStyle.Render("In numbers")}
		for _, s := range m.profile.Stats {
			value := statStyle.Render(fmt.Sprintf("%5d", countUp(s.Value, p)))
			stats = append(stats, "  "+value+"  "+subtitleStyle.Render(s.Label))
		}
		add(stats)
	}
	return lines, blocks
}

func (m Model) aboutProgress(block int) float64 {
	t := m.trackers[sectionAbout]
	if t == nil {
		return 0
	}
	return t.Progress(block)
}

func (m Model) skillNameWidth() int {
	w := 0
	for _, s := range m.profile.Skills {
		w = max(w, utf8.RuneCountInString(s.Name))
	}
	return w
}

// countUp returns target scaled by p, rounded up so any progress shows.
func countUp(target int, p float64) int {
	if p >= 1 {
		return target
	}
	if p <= 0 {
		return 0
	}
	return int(math.Ceil(float64(target) * p))
}

