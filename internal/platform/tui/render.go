package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-threes/internal/core"
)

// colorStyles maps core.Color to lipgloss styles. Tile colors paint the
// background so a tile reads as a solid block.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorBlue:    lipgloss.NewStyle().Background(lipgloss.Color("33")).Foreground(lipgloss.Color("231")).Bold(true),
	core.ColorRed:     lipgloss.NewStyle().Background(lipgloss.Color("203")).Foreground(lipgloss.Color("231")).Bold(true),
	core.ColorWhite:   lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("16")).Bold(true),
	core.ColorYellow:  lipgloss.NewStyle().Background(lipgloss.Color("255")).Foreground(lipgloss.Color("166")).Bold(true),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return renderRows(s, s.Height())
}

// RenderScreenTrimmed renders the screen without its trailing blank rows.
func RenderScreenTrimmed(s *core.Screen) string {
	rows := s.Height()
	for rows > 0 && strings.TrimSpace(s.Row(rows-1)) == "" {
		rows--
	}
	return renderRows(s, rows)
}

// renderRows renders the first n rows, grouping adjacent cells with the
// same color to minimize ANSI escape sequences.
func renderRows(s *core.Screen, n int) string {
	var sb strings.Builder
	sb.Grow(s.Width()*n*2 + n)

	for y := range min(n, s.Height()) {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
