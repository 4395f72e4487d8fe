package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#777777", Dark: "#888888"})

	activeTabStyle = tabStyle.
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#A5B4FC"})

	scrolledNavStyle = lipgloss.NewStyle().
				Background(lipgloss.AdaptiveColor{Light: "#EEEEF5", Dark: "#1A1A2E"})

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#777777", Dark: "#888888"})

	activeChipStyle = chipStyle.
			Bold(true).
			Reverse(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#818CF8"})

	statStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#A5B4FC"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	focusedLabelStyle = labelStyle.
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#A5B4FC"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#006400", Dark: "#80FF9F"})
)
