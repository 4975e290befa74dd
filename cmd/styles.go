package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette for CLI output.
const (
	ColorPrimary = lipgloss.Color("#7C3AED")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorSuccess = lipgloss.Color("#10B981")
	ColorWarning = lipgloss.Color("#F59E0B")
)

var (
	// TitleStyle is for the tool name in help text.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	// SubtitleStyle is for secondary headers in help text.
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	// SuccessStyle marks written files.
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	// WarningStyle marks skipped optional steps.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
)
