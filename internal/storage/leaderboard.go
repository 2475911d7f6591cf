package storage

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNameRequired is returned when a submission has a blank name.
	ErrNameRequired = errors.New("name is required")
	// ErrInvalidScore is returned for a zero or negative score.
	ErrInvalidScore = errors.New("score must be positive")
)

// Submission is a finished session offered to the leaderboard.
type Submission struct {
	Name    string
	Score   int
	MaxTile int
	Moves   int
}

// Leaderboard is the score list of one game on top of a Store.
type Leaderboard struct {
	store      *Store
	gameID     string
	maxNameLen int
}

// NewLeaderboard binds store to gameID. Names longer than maxNameLen runes
// are truncated; zero disables the limit.
func NewLeaderboard(store *Store, gameID string, maxNameLen int) *Leaderboard {
	return &Leaderboard{store: store, gameID: gameID, maxNameLen: maxNameLen}
}

// GameID returns the game the leaderboard belongs to.
func (l *Leaderboard) GameID() string {
	return l.gameID
}

// List returns the best limit entries.
func (l *Leaderboard) List(limit int) ([]ScoreEntry, error) {
	return l.store.TopScores(l.gameID, limit)
}

// Submit validates and stores a submission.
func (l *Leaderboard) Submit(sub Submission) (ScoreEntry, error) {
	name, err := l.normalizeName(sub.Name)
	if err != nil {
		return ScoreEntry{}, err
	}
	if sub.Score <= 0 {
		return ScoreEntry{}, fmt.Errorf("storage: submit %d: %w", sub.Score, ErrInvalidScore)
	}

	return l.store.SaveScore(ScoreEntry{
		GameID:  l.gameID,
		Name:    name,
		Score:   sub.Score,
		MaxTile: sub.MaxTile,
		Moves:   sub.Moves,
	})
}

func (l *Leaderboard) normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("storage: submit: %w", ErrNameRequired)
	}
	if l.maxNameLen > 0 && utf8.RuneCountInString(name) > l.maxNameLen {
		name = strings.TrimSpace(string([]rune(name)[:l.maxNameLen]))
	}
	return name, nil
}
