package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-threes/internal/core"
	"github.com/vovakirdan/tui-threes/internal/games/threes"
	"github.com/vovakirdan/tui-threes/internal/registry"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	// Flags are package globals; reset the ones tests touch.
	flagSeed, flagSimMoves, flagSimSave, flagPreset, flagConfig = 0, 0, "", "", ""
	flagLogLevel = "error"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("threes %s: %v", strings.Join(args, " "), err)
	}
	return out.String()
}

func TestSimIsDeterministic(t *testing.T) {
	a := execute(t, "sim", "mini", "--seed", "7")
	b := execute(t, "sim", "mini", "--seed", "7")
	if a != b {
		t.Errorf("same seed, different games:\n%s\n---\n%s", a, b)
	}
	if !strings.Contains(a, "Score:") {
		t.Errorf("sim output missing score:\n%s", a)
	}
}

func TestSimStopsAtMoveLimit(t *testing.T) {
	out := execute(t, "sim", "--seed", "3", "--moves", "2")
	if !strings.Contains(out, "Moves: 2") || !strings.Contains(out, "stopped before game over") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestSimSaveThenScores(t *testing.T) {
	db := filepath.Join(t.TempDir(), "scores.db")
	out := execute(t, "sim", "threes_mini", "--seed", "11", "--save", "bot", "--db", db)
	if !strings.Contains(out, "Saved as bot") {
		t.Fatalf("sim did not save:\n%s", out)
	}

	out = execute(t, "scores", "mini", "--db", db)
	if !strings.Contains(out, "bot") || !strings.Contains(out, "Games: 1") {
		t.Errorf("scores output:\n%s", out)
	}
}

func TestList(t *testing.T) {
	out := execute(t, "list")
	for _, id := range []string{"threes", "threes_mini", "threes_large"} {
		if !strings.Contains(out, id) {
			t.Errorf("list missing %s:\n%s", id, out)
		}
	}
}

func TestResolveVariant(t *testing.T) {
	flagPreset = ""
	tests := []struct {
		args []string
		want string
		err  bool
	}{
		{nil, "threes", false},
		{[]string{"mini"}, "threes_mini", false},
		{[]string{"threes_large"}, "threes_large", false},
		{[]string{"huge"}, "", true},
	}
	for _, tt := range tests {
		got, err := resolveVariant(tt.args)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("resolveVariant(%v) = %q, %v", tt.args, got, err)
		}
	}
}

func TestConfigGridSizesClassicBoard(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "threes.yaml")
	if err := os.WriteFile(path, []byte("grid:\n  size: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	flagConfig, flagLogLevel = path, "error"
	t.Cleanup(func() {
		flagConfig = ""
		threes.SetRules(threes.DefaultConfig(4))
	})

	e, err := setup(false)
	if err != nil {
		t.Fatal(err)
	}
	defer e.close()

	sizes := map[string]int{"threes": 6, "threes_mini": 3, "threes_large": 5}
	for id, want := range sizes {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatal(err)
		}
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, Seed: 1})
		if got := g.(*threes.Game).Engine().Session().GridSize; got != want {
			t.Errorf("%s engine grid = %d, want %d", id, got, want)
		}
	}
}
