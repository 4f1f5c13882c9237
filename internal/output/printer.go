package output

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	Primary = lipgloss.Color("#1cc2e3")
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red
	Muted   = lipgloss.Color("#6B7280") // Gray

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Success)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Error)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Box for important info
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	// Email address highlight
	EmailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))
)

// PrintSuccess prints a success message with checkmark
func PrintSuccess(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

// PrintWarning prints a warning message
func PrintWarning(msg string) string {
	return WarningStyle.Render("! " + msg)
}

// PrintError prints an error message
func PrintError(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

// PrintInfo prints an info message
func PrintInfo(msg string) string {
	return MutedStyle.Render("• " + msg)
}

// PrintEmail renders one extracted address as a list entry.
func PrintEmail(address string) string {
	return "  " + EmailStyle.Render(address)
}
