package viz

import "github.com/charmbracelet/lipgloss"

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("86"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("242"))

	Value = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("238"))

	// Chaotic exponents render green, regular red, per the convention
	// that a positive exponent is the interesting finding here.
	Chaotic = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("82"))

	Regular = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("203"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	dimColors = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	}
)

// DimStyle returns the barcode color for a homological dimension.
func DimStyle(dim int) lipgloss.Style {
	if dim < 0 || dim >= len(dimColors) {
		return Value
	}
	return dimColors[dim]
}
