package threes

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/tui-threes/internal/core"
)

const (
	cellWidth  = 7 // Including the left border
	cellHeight = 2 // Including the top border
	hudHeight  = 3
)

// boardDims returns the rendered grid size in screen cells.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// TileColor returns the palette entry for a tile value.
func TileColor(v int) core.Color {
	switch v {
	case 1:
		return core.ColorBlue
	case 2:
		return core.ColorRed
	default:
		return core.ColorWhite
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.eng == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardDims(g.size)
	boardX := max((g.screenW-boardW)/2, 0)
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)

	hint := g.Controls()
	dst.DrawTextColor(max((g.screenW-len(hint))/2, 0), boardY+boardH+1, hint, core.ColorGray)

	g.renderOverlays(dst, boardX+boardW/2, boardY+boardH/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, the upcoming tile and the counters.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	s := g.eng.Session()

	title := g.title
	dst.DrawText(boardX+max((boardW-len(title))/2, 0), 0, title)

	dst.DrawText(boardX, 1, "Next:")
	next := " " + strconv.Itoa(s.Next) + " "
	dst.DrawTextColor(boardX+6, 1, next, TileColor(s.Next))

	info := fmt.Sprintf("Moves: %d  Top: %d", s.Moves, s.Highest)
	dst.DrawText(max(boardX+boardW-len(info), boardX), 1, info)

	if g.last.Spawned != nil {
		from := fmt.Sprintf("last push %s", g.last.Direction)
		dst.DrawTextColor(boardX+max((boardW-len(from))/2, 0), 2, from, core.ColorGray)
	}
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.size
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.SetCell(px, py, core.Cell{Rune: corner, Color: core.ColorGray})

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.SetCell(px+i, py, core.Cell{Rune: '─', Color: core.ColorGray})
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.SetCell(px, py+i, core.Cell{Rune: '│', Color: core.ColorGray})
				}
			}
		}
	}
}

// renderTiles fills each occupied cell with its tile color and value.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	highest := g.eng.highest
	for _, t := range g.eng.board.AllTiles() {
		cx := boardX + t.X*cellWidth + 1
		cy := boardY + t.Y*cellHeight + 1
		color := TileColor(t.Value)

		for i := range cellWidth - 1 {
			dst.SetCell(cx+i, cy, core.Cell{Rune: ' ', Color: color})
		}

		label := strconv.Itoa(t.Value)
		if t.Value == highest && t.Value >= 3 {
			color = core.ColorYellow
		}
		pad := max((cellWidth-1-len(label))/2, 0)
		dst.DrawTextColor(cx+pad, cy, label, color)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}
	if g.Over() {
		s := g.eng.Session()
		drawOverlay(dst, centerX, centerY,
			"NO MORE MOVES",
			fmt.Sprintf("Score: %d", s.Score),
			fmt.Sprintf("Top tile: %d", s.Highest),
			"Press R to restart",
		)
	}
}

// drawOverlay draws a boxed, centered message.
func drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	box.X = centerX - box.W/2
	box.Y = centerY - box.H/2

	dst.FillRect(box)
	dst.DrawBox(box, core.ColorDefault)
	for i, line := range lines {
		dst.DrawText(centerX-len(line)/2, box.Y+1+i, line)
	}
}
