package ui

import (
	"math"
	"math/rand"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/folio/internal/canvas"
	"github.com/olivier-w/folio/internal/contact"
	"github.com/olivier-w/folio/internal/particles"
	"github.com/olivier-w/folio/internal/portfolio"
	"github.com/olivier-w/folio/internal/reveal"
	"github.com/olivier-w/folio/internal/typewriter"
	"go.uber.org/zap"
)

type section int

const (
	sectionHome section = iota
	sectionAbout
	sectionProjects
	sectionContact
	sectionCount
)

var sectionNames = [sectionCount]string{"Home", "About", "Projects", "Contact"}

const (
	headerHeight = 3 // navbar, scroll progress, blank
	footerHeight = 2 // blank, help
	revealShift  = 6 // columns a block slides in from
)

// Options configures a Model.
type Options struct {
	Profile   portfolio.Profile
	Params    particles.Params
	Canvas    []canvas.Option
	FPS       int
	Rand      *rand.Rand
	Typing    typewriter.Timing
	RevealFPS int
	Submitter contact.Submitter
	Logger    *zap.Logger
}

// Model is the Bubbletea model for the folio TUI.
type Model struct {
	profile portfolio.Profile
	logger  *zap.Logger

	width, height int
	active        section
	quitting      bool

	bg      Background
	paused  bool
	typer   *typewriter.Typewriter
	typeSeq int

	viewport      viewport.Model
	progress      progress.Model
	skillBar      progress.Model
	trackers      [sectionCount]*reveal.Tracker
	revealFPS     int
	revealTicking bool

	categories []string
	category   int

	form contactForm
}

// New creates the model. The hero animation is armed so Init only has to
// schedule its first frame.
func New(opts Options) Model {
	if opts.RevealFPS <= 0 {
		opts.RevealFPS = 30
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	m := Model{
		profile:    opts.Profile,
		logger:     logger,
		bg:         NewBackground(canvas.NewBraille(opts.Canvas...), opts.Params, opts.FPS, opts.Rand),
		typer:      typewriter.New(opts.Profile.Taglines, opts.Typing),
		typeSeq:    1,
		viewport:   viewport.New(0, 0),
		revealFPS:  opts.RevealFPS,
		categories: portfolio.Categories(opts.Profile.Projects),
		form:       newContactForm(opts.Submitter),
		progress: progress.New(
			progress.WithScaledGradient("#4F46E5", "#A5B4FC"),
			progress.WithoutPercentage(),
		),
		skillBar: progress.New(
			progress.WithGradient("#4F46E5", "#818CF8"),
			progress.WithoutPercentage(),
			progress.WithWidth(24),
		),
	}
	m.trackers[sectionAbout] = reveal.New(opts.RevealFPS)
	m.trackers[sectionProjects] = reveal.New(opts.RevealFPS)
	m.bg.Start()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.bg.Pending(),
		typeCmd(m.typer.StartDelay(), m.typeSeq),
		tea.SetWindowTitle(m.profile.Name),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		cmd := m.observe()
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		cmd := m.bg.Frame(msg)
		return m, cmd

	case typeMsg:
		if msg.seq != m.typeSeq || m.active != sectionHome {
			return m, nil
		}
		delay := m.typer.Advance()
		m.stampHero()
		return m, typeCmd(delay, m.typeSeq)

	case revealMsg:
		for _, t := range m.trackers {
			if t != nil {
				t.Step()
			}
		}
		m.refreshContent()
		if m.revealSettled() {
			m.revealTicking = false
			return m, nil
		}
		return m, revealCmd(m.revealFPS)

	case submitResultMsg:
		if msg.err != nil {
			m.logger.Warn("contact submission failed", zap.Error(msg.err))
		}
		cmd := m.form.handleResult(msg)
		m.refreshContent()
		return m, cmd

	case statusExpiredMsg:
		m.form.expireStatus(msg)
		m.refreshContent()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		if m.active == sectionContact {
			m.refreshContent()
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.active == sectionContact && m.form.focused() {
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		m.refreshContent()
		return m, cmd
	}

	if isQuit(msg) {
		return m.quit()
	}

	switch key := msg.String(); key {
	case "1", "2", "3", "4":
		return m.setSection(section(key[0] - '1'))
	case "tab", "right", "l":
		return m.setSection((m.active + 1) % sectionCount)
	case "shift+tab", "left", "h":
		return m.setSection((m.active + sectionCount - 1) % sectionCount)
	case "p":
		if m.active != sectionHome {
			return m, nil
		}
		m.paused = !m.paused
		if m.paused {
			m.bg.Stop()
			return m, nil
		}
		cmd := m.bg.Start()
		return m, cmd
	case "f", "F":
		if m.active != sectionProjects || len(m.categories) == 0 {
			return m, nil
		}
		step := 1
		if key == "F" {
			step = len(m.categories) - 1
		}
		m.category = (m.category + step) % len(m.categories)
		m.viewport.GotoTop()
		m.trackers[sectionProjects].Reset()
		m.rebuildBlocks()
		cmd := m.observe()
		return m, cmd
	case "j", "down":
		return m.scroll(1)
	case "k", "up":
		return m.scroll(-1)
	case "pgdown", " ":
		return m.scroll(m.viewport.Height)
	case "pgup":
		return m.scroll(-m.viewport.Height)
	case "g", "home":
		return m.scroll(-m.viewport.TotalLineCount())
	case "G", "end":
		return m.scroll(m.viewport.TotalLineCount())
	}

	if m.active == sectionContact {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		m.refreshContent()
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.active == sectionHome {
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			return m, nil
		}
		row := msg.Y - headerHeight
		if row < 0 || row >= m.bodyHeight() || msg.X < 0 || msg.X >= m.width {
			return m, nil
		}
		m.bg.PointerAt(msg.X, row)
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m.scroll(3)
	case tea.MouseButtonWheelUp:
		return m.scroll(-3)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	m.bg.Stop()
	m.typeSeq++
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m Model) scroll(lines int) (Model, tea.Cmd) {
	if m.active == sectionHome {
		return m, nil
	}
	m.viewport.SetYOffset(m.viewport.YOffset + lines)
	cmd := m.observe()
	return m, cmd
}

// setSection switches the visible section. The hero animation only runs
// while Home is shown.
func (m Model) setSection(s section) (Model, tea.Cmd) {
	if s == m.active {
		return m, nil
	}
	prev := m.active
	m.active = s

	var cmds []tea.Cmd
	if prev == sectionHome {
		m.bg.Stop()
		m.typeSeq++
	}
	if prev == sectionContact {
		m.form.blurAll()
	}
	if t := m.trackers[prev]; t != nil {
		t.Reset()
	}

	if s == sectionHome {
		if !m.paused {
			cmds = append(cmds, m.bg.Start())
		}
		m.typeSeq++
		cmds = append(cmds, typeCmd(m.typer.Advance(), m.typeSeq))
		m.stampHero()
		return m, tea.Batch(cmds...)
	}

	m.viewport.GotoTop()
	m.rebuildBlocks()
	cmds = append(cmds, m.observe())
	return m, tea.Batch(cmds...)
}

func (m Model) bodyHeight() int {
	return max(m.height-headerHeight-footerHeight, 1)
}

func (m *Model) layout() {
	body := m.bodyHeight()
	m.bg.Resize(m.width, body)
	m.stampHero()

	m.viewport.Width = m.width
	m.viewport.Height = body
	m.progress.Width = max(m.width-4, 10)
	m.skillBar.Width = min(max(m.textWidth()-m.skillNameWidth()-8, 10), 40)
	m.form.setWidth(m.width)
	m.rebuildBlocks()
}

func (m *Model) stampHero() {
	mid := m.bodyHeight() / 2
	typed := m.typer.Text() + "▌"
	m.bg.SetLabels(
		centered(m.width, mid-2, m.profile.Name),
		centered(m.width, mid-1, m.profile.Role),
		centered(m.width, mid+1, typed),
	)
}

func centered(width, row int, text string) label {
	col := (width - utf8.RuneCountInString(text)) / 2
	return label{col: max(col, 0), row: row, text: text}
}

// rebuildBlocks re-lays out the active section's blocks.
func (m *Model) rebuildBlocks() {
	if t := m.trackers[m.active]; t != nil {
		_, blocks := m.sectionContent()
		t.SetBlocks(blocks...)
	}
	m.refreshContent()
}

// observe reveals blocks in view and starts the reveal animation if needed.
func (m *Model) observe() tea.Cmd {
	t := m.trackers[m.active]
	if t == nil || m.active == sectionHome {
		return nil
	}
	if !t.Observe(m.viewport.YOffset, m.viewport.Height) {
		return nil
	}
	m.refreshContent()
	if m.revealTicking {
		return nil
	}
	m.revealTicking = true
	return revealCmd(m.revealFPS)
}

func (m Model) revealSettled() bool {
	for _, t := range m.trackers {
		if t != nil && !t.Settled() {
			return false
		}
	}
	return true
}

// refreshContent renders the active section into the viewport, applying
// each block's reveal progress.
func (m *Model) refreshContent() {
	if m.active == sectionHome {
		return
	}
	lines, blocks := m.sectionContent()
	if t := m.trackers[m.active]; t != nil && t.Len() == len(blocks) {
		for i, b := range blocks {
			shift := ""
			if p := t.Progress(i); t.Revealed(i) && p < 1 {
				shift = strings.Repeat(" ", int(math.Round((1-p)*revealShift)))
			}
			for l := b.Start; l < b.End && l < len(lines); l++ {
				switch {
				case !t.Revealed(i):
					lines[l] = ""
				case shift != "":
					lines[l] = shift + lines[l]
				}
			}
		}
	}
	offset := m.viewport.YOffset
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.SetYOffset(offset)
}

func (m Model) sectionContent() ([]string, []reveal.Block) {
	switch m.active {
	case sectionAbout:
		return m.aboutContent()
	case sectionProjects:
		return m.projectsContent()
	case sectionContact:
		return m.contactContent(), nil
	}
	return nil, nil
}

func (m Model) textWidth() int {
	return min(max(m.width-4, 20), 80)
}

func wrap(style lipgloss.Style, width int, text string) []string {
	return strings.Split(style.Width(width).Render(strings.TrimSpace(text)), "\n")
}

func (m Model) activeCategory() string {
	if len(m.categories) == 0 {
		return portfolio.All
	}
	return m.categories[m.category]
}

func (m Model) projectsContent() ([]string, []reveal.Block) {
	chips := make([]string, len(m.categories))
	for i, c := range m.categories {
		if i == m.category {
			chips[i] = activeChipStyle.Render(c)
		} else {
			chips[i] = chipStyle.Render(c)
		}
	}
	lines := []string{"  " + titleStyle.Render("Projects"), "  " + strings.Join(chips, " "), ""}

	projects := portfolio.Filter(m.profile.Projects, m.activeCategory())
	if len(projects) == 0 {
		return append(lines, "  "+helpStyle.Render("No projects in this category.")), nil
	}

	blocks := make([]reveal.Block, 0, len(projects))
	for _, p := range projects {
		start := len(lines)
		lines = append(lines, "  "+titleStyle.Render(p.Title))
		for _, l := range wrap(subtitleStyle, m.textWidth(), p.Summary) {
			lines = append(lines, "  "+l)
		}
		if len(p.Tags) > 0 {
			lines = append(lines, "  "+tagStyle.Render(strings.Join(p.Tags, "  ")))
		}
		if p.URL != "" {
			lines = append(lines, "  "+helpStyle.Render(p.URL))
		}
		blocks = append(blocks, reveal.Block{Start: start, End: len(lines)})
		lines = append(lines, "")
	}
	return lines, blocks
}

func (m Model) contactContent() []string {
	lines := []string{"  " + titleStyle.Render("Get in touch")}
	if m.profile.Email != "" {
		lines = append(lines, "  "+subtitleStyle.Render(m.profile.Email))
	}
	lines = append(lines, "")
	return append(lines, strings.Split(m.form.view(), "\n")...)
}

func (m Model) navbar() string {
	tabs := make([]string, sectionCount)
	for i, name := range sectionNames {
		if section(i) == m.active {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	bar := headerStyle.Render(" "+m.profile.Name+" ") + " " + strings.Join(tabs, "")
	if m.active != sectionHome && m.viewport.YOffset > 0 {
		return scrolledNavStyle.Width(max(m.width, lipgloss.Width(bar))).Render(bar)
	}
	return bar
}

func (m Model) scrollPercent() float64 {
	if m.active == sectionHome {
		return 0
	}
	return m.viewport.ScrollPercent()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.navbar() + "\n")
	b.WriteString("  " + m.progress.ViewAs(m.scrollPercent()) + "\n")
	b.WriteString("\n")
	if m.active == sectionHome {
		b.WriteString(m.bg.View())
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n\n")

	help := helpText(m.active, m.active == sectionContact && m.form.focused())
	if m.active == sectionHome && m.paused {
		help = statusStyle.Render("paused") + "  " + help
	}
	b.WriteString("  " + helpStyle.Render(help))
	return b.String()
}
