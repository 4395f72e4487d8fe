package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(s section, formFocused bool) string {
	if formFocused {
		return "tab/shift+tab field  ctrl+s send  esc leave form  ctrl+c quit"
	}
	h := "tab/←/→ section  1-4 jump"
	switch s {
	case sectionHome:
		h += "  p pause particles"
	case sectionAbout:
		h += "  j/k scroll"
	case sectionProjects:
		h += "  j/k scroll  f/F filter"
	case sectionContact:
		h += "  enter edit form"
	}
	return h + "  q quit"
}
