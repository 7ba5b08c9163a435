package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/eclipse/internal/eclipse"
)

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF0000")
	ColorYellow  = lipgloss.Color("#FFFF00")
	ColorCyan    = lipgloss.Color(eclipse.ColorHighlight)
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorBand    = lipgloss.Color("#2A2A3A")
	ColorWhite   = lipgloss.Color("#FFFFFF")
	ColorMagenta = lipgloss.Color("#FF00FF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DragBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	IdleBadgeStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	PanelTitleActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorCyan)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	AxisStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	GraticuleStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	BrushLabelStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	DetailLabelStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	DetailValueStyle = lipgloss.NewStyle().
				Foreground(ColorWhite)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorCyan).
			Padding(0, 1)
)

// CategoryStyle colours a glyph for c. Unclassified records use gray.
func CategoryStyle(c eclipse.Category) lipgloss.Style {
	hex, ok := eclipse.CategoryColor(c)
	if !ok {
		return lipgloss.NewStyle().Foreground(ColorGray)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// FillStyle colours a glyph with an explicit hex fill.
func FillStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// BandStyle shades a column inside the brush.
func BandStyle(s lipgloss.Style) lipgloss.Style {
	return s.Background(ColorBand)
}
