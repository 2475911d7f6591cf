package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-threes/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 3)
	s.DrawText(0, 0, "abc")
	s.DrawTextColor(4, 1, "12", core.ColorRed)

	out := RenderScreen(s)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("rendered %d line breaks, want 2", got)
	}
	if !strings.Contains(out, "abc") || !strings.Contains(out, "12") {
		t.Errorf("rendered output lost text: %q", out)
	}
}

func TestRenderScreenTrimmed(t *testing.T) {
	s := core.NewScreen(8, 6)
	s.DrawText(0, 0, "top")
	s.DrawText(0, 2, "mid")

	out := RenderScreenTrimmed(s)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("trimmed output has %d line breaks, want 2", got)
	}

	if RenderScreenTrimmed(core.NewScreen(4, 4)) != "" {
		t.Error("blank screen should render empty")
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	for _, c := range []core.Color{
		core.ColorDefault, core.ColorBlue, core.ColorRed, core.ColorWhite,
		core.ColorYellow, core.ColorGray, core.ColorGreen,
	} {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %v", c)
		}
	}
}
