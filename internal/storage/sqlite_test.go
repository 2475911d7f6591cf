package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
)

func openTestStore(t *testing.T) (*Store, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	store, err := OpenWithClock(filepath.Join(t.TempDir(), "test.db"), clock)
	if err != nil {
		t.Fatalf("OpenWithClock() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, clock
}

func save(t *testing.T, store *Store, gameID string, score int) ScoreEntry {
	t.Helper()
	e, err := store.SaveScore(ScoreEntry{GameID: gameID, Name: "tester", Score: score})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return e
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store, _ := openTestStore(t)

	save(t, store, "threes", 100)
	save(t, store, "threes", 50)
	save(t, store, "threes", 200)
	save(t, store, "threes_mini", 500)

	scores, err := store.TopScores("threes", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %+v", scores)
	}
	if scores[0].Name != "tester" {
		t.Errorf("Name = %q, want tester", scores[0].Name)
	}

	mini, err := store.TopScores("threes_mini", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(mini) != 1 {
		t.Errorf("Expected 1 mini score, got %d", len(mini))
	}
}

func TestStoreTimestampsFromClock(t *testing.T) {
	store, clock := openTestStore(t)
	ctx := context.Background()

	start := clock.Now()
	first := save(t, store, "threes", 10)
	clock.Advance(90 * time.Minute).MustWait(ctx)
	second := save(t, store, "threes", 20)

	if !first.CreatedAt.Equal(start) {
		t.Errorf("first CreatedAt = %v, want %v", first.CreatedAt, start)
	}

	scores, err := store.AllScores("threes")
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("got %d scores", len(scores))
	}
	if !scores[0].CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("stored time %v, want %v", scores[0].CreatedAt, second.CreatedAt)
	}
	if got := scores[0].CreatedAt.Sub(scores[1].CreatedAt); got != 90*time.Minute {
		t.Errorf("gap = %v, want 90m", got)
	}

	stats, err := store.GameStats("threes")
	if err != nil {
		t.Fatal(err)
	}
	if !stats.LastPlayed.Equal(second.CreatedAt) {
		t.Errorf("LastPlayed = %v, want %v", stats.LastPlayed, second.CreatedAt)
	}
}

func TestStoreTopScoresLimitAndTies(t *testing.T) {
	store, _ := openTestStore(t)

	for i := range 5 {
		save(t, store, "test", (i+1)*100)
	}
	tieFirst := save(t, store, "test", 300)

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[2].ID == tieFirst.ID {
		t.Error("earlier entry should win a tie")
	}
}

func TestStoreHighScore(t *testing.T) {
	store, _ := openTestStore(t)

	high, err := store.HighScore("threes")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "threes", 100)
	save(t, store, "threes", 300)
	save(t, store, "threes", 200)

	high, err = store.HighScore("threes")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store, _ := openTestStore(t)

	save(t, store, "threes", 100)
	save(t, store, "threes", 200)
	save(t, store, "threes_large", 300)

	if err := store.ClearScores("threes"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("threes", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("threes_large", 10); len(scores) != 1 {
		t.Error("other variants should not be affected")
	}
}

func TestStoreAllGameStats(t *testing.T) {
	store, _ := openTestStore(t)

	for _, e := range []ScoreEntry{
		{GameID: "threes", Name: "a", Score: 30, MaxTile: 48, Moves: 100},
		{GameID: "threes", Name: "b", Score: 90, MaxTile: 96, Moves: 150},
		{GameID: "threes_mini", Name: "c", Score: 12, MaxTile: 12, Moves: 20},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := store.AllGameStats()
	if err != nil {
		t.Fatalf("AllGameStats() failed: %v", err)
	}
	classic := all["threes"]
	if classic == nil || classic.GamesCount != 2 || classic.HighScore != 90 || classic.BestTile != 96 || classic.TotalMoves != 250 {
		t.Errorf("classic stats = %+v", classic)
	}
	if classic != nil && classic.AvgScore != 60 {
		t.Errorf("AvgScore = %v, want 60", classic.AvgScore)
	}
	if all["threes_mini"] == nil {
		t.Error("missing mini stats")
	}

	empty, err := store.GameStats("threes_large")
	if err != nil {
		t.Fatal(err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.threes/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".threes", "scores.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestLeaderboardSubmit(t *testing.T) {
	store, _ := openTestStore(t)
	lb := NewLeaderboard(store, "threes", 8)

	tests := []struct {
		name    string
		sub     Submission
		wantErr error
		want    string
	}{
		{"valid", Submission{Name: "  alice ", Score: 120, MaxTile: 48, Moves: 70}, nil, "alice"},
		{"truncated", Submission{Name: "bartholomew", Score: 80}, nil, "bartholo"},
		{"blank name", Submission{Name: "   ", Score: 10}, ErrNameRequired, ""},
		{"zero score", Submission{Name: "carol", Score: 0}, ErrInvalidScore, ""},
		{"negative score", Submission{Name: "dave", Score: -5}, ErrInvalidScore, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := lb.Submit(tt.sub)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Submit() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Submit() failed: %v", err)
			}
			if e.Name != tt.want || e.GameID != "threes" || e.ID == 0 {
				t.Errorf("entry = %+v", e)
			}
		})
	}

	list, err := lb.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(list))
	}
	if list[0].Name != "alice" || list[0].MaxTile != 48 || list[0].Moves != 70 {
		t.Errorf("top entry = %+v", list[0])
	}
}

func TestLeaderboardNameLimitCountsRunes(t *testing.T) {
	store, _ := openTestStore(t)
	lb := NewLeaderboard(store, "threes", 3)

	e, err := lb.Submit(Submission{Name: "ñandú", Score: 3})
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "ñan" {
		t.Errorf("Name = %q, want ñan", e.Name)
	}
	if strings.Contains(e.Name, "�") {
		t.Error("truncation split a rune")
	}
}
