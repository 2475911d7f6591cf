package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Palette used by the Threes renderer.
const (
	ColorDefault Color = iota
	ColorBlue          // 1 tiles
	ColorRed           // 2 tiles
	ColorWhite         // 3 and above
	ColorYellow        // Highest tile, highlights
	ColorGray          // Grid lines, hints
	ColorGreen         // Confirmations
)
