package iostreams

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cyanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ColorScheme provides terminal color formatting.
// When colors are disabled, methods return the input string unmodified.
type ColorScheme struct {
	enabled bool
}

// NewColorScheme creates a new ColorScheme.
// If enabled is false, all color methods return unmodified strings.
func NewColorScheme(enabled bool) *ColorScheme {
	return &ColorScheme{enabled: enabled}
}

// Enabled returns whether colors are enabled.
func (cs *ColorScheme) Enabled() bool {
	return cs.enabled
}

func (cs *ColorScheme) render(style lipgloss.Style, s string) string {
	if !cs.enabled {
		return s
	}
	return style.Render(s)
}

// Red returns s styled in red.
func (cs *ColorScheme) Red(s string) string {
	return cs.render(redStyle, s)
}

// Redf formats and returns the result styled in red.
func (cs *ColorScheme) Redf(format string, a ...any) string {
	return cs.Red(fmt.Sprintf(format, a...))
}

// Yellow returns s styled in yellow.
func (cs *ColorScheme) Yellow(s string) string {
	return cs.render(yellowStyle, s)
}

// Yellowf formats and returns the result styled in yellow.
func (cs *ColorScheme) Yellowf(format string, a ...any) string {
	return cs.Yellow(fmt.Sprintf(format, a...))
}

// Green returns s styled in green.
func (cs *ColorScheme) Green(s string) string {
	return cs.render(greenStyle, s)
}

// Greenf formats and returns the result styled in green.
func (cs *ColorScheme) Greenf(format string, a ...any) string {
	return cs.Green(fmt.Sprintf(format, a...))
}

// Cyan returns s styled in cyan.
func (cs *ColorScheme) Cyan(s string) string {
	return cs.render(cyanStyle, s)
}

// Cyanf formats and returns the result styled in cyan.
func (cs *ColorScheme) Cyanf(format string, a ...any) string {
	return cs.Cyan(fmt.Sprintf(format, a...))
}

// Bold returns s in bold.
func (cs *ColorScheme) Bold(s string) string {
	return cs.render(boldStyle, s)
}

// Boldf formats and returns the result in bold.
func (cs *ColorScheme) Boldf(format string, a ...any) string {
	return cs.Bold(fmt.Sprintf(format, a...))
}

// Muted returns s in a muted (dim) style.
func (cs *ColorScheme) Muted(s string) string {
	return cs.render(mutedStyle, s)
}

// Mutedf formats and returns the result in a muted style.
func (cs *ColorScheme) Mutedf(format string, a ...any) string {
	return cs.Muted(fmt.Sprintf(format, a...))
}

// SuccessIcon returns a green check mark.
func (cs *ColorScheme) SuccessIcon() string {
	return cs.Green("✓")
}

// WarningIcon returns a yellow exclamation mark.
func (cs *ColorScheme) WarningIcon() string {
	return cs.Yellow("!")
}

// FailureIcon returns a red cross.
func (cs *ColorScheme) FailureIcon() string {
	return cs.Red("✗")
}

// InfoIcon returns a cyan dash.
func (cs *ColorScheme) InfoIcon() string {
	return cs.Cyan("-")
}
