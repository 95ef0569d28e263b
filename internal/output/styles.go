package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: stack identities, paths, stage names.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for additions and success states.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modifications and warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removals.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for failures (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Styles maps domain concepts to visual presentation.
type Styles struct {
	Noun    lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Summary lipgloss.Style
}

var defaultStyles = &Styles{
	Noun:    lipgloss.NewStyle().Foreground(ColorCyan),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Faint(true),
	Success: lipgloss.NewStyle().Foreground(ColorGreen),
	Warning: lipgloss.NewStyle().Foreground(ColorYellow),
	Error:   lipgloss.NewStyle().Foreground(ColorRed),
	Summary: lipgloss.NewStyle().Bold(true),
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return defaultStyles
}

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
