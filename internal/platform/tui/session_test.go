package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-threes/internal/games/threes"
	"github.com/vovakirdan/tui-threes/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(SessionModel)
	require.True(t, ok, "Update returned %T", next)
	return out
}

func TestMenuListsVariantsWithBest(t *testing.T) {
	store := openStore(t)
	_, err := storage.NewLeaderboard(store, threes.IDMini, 16).Submit(storage.Submission{Name: "ann", Score: 81})
	require.NoError(t, err)

	m := NewMenuModel(store, testRuntime())
	ids := make([]string, len(m.items))
	for i, it := range m.items {
		ids[i] = it.GameID
		if it.GameID == threes.IDMini {
			assert.Equal(t, 81, it.Best)
		}
	}
	assert.Equal(t, []string{threes.IDClassic, threes.IDLarge, threes.IDMini}, ids)
	assert.Contains(t, m.View(), "best 81")
}

func TestMenuResult(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(MenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	res := next.(MenuModel).result()
	assert.Equal(t, m.items[1].GameID, res.GameID)
	assert.False(t, res.Quit)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, next.(MenuModel).result().WantsScoreboard)

	next, _ = m.Update(runeKey('q'))
	assert.True(t, next.(MenuModel).result().Quit)
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	cfg := testRuntime()
	cfg.Player = "guest"
	s := NewSessionModel(store, cfg, SessionOptions{TopN: 5, MaxNameLen: 16})
	require.NotEmpty(t, s.ID())

	s = sendSession(t, s, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, screenScores, s.screen)
	assert.Contains(t, s.View(), "HIGH SCORES")

	s = sendSession(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)

	s = sendSession(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, s.screen)
	assert.True(t, strings.Contains(s.View(), "Next:"))

	s = sendSession(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)

	s = sendSession(t, s, runeKey('q'))
	assert.True(t, s.quitting)
	assert.Empty(t, s.View())
}

func TestScoreboardCyclesBoards(t *testing.T) {
	store := openStore(t)
	_, err := storage.NewLeaderboard(store, threes.IDClassic, 16).Submit(storage.Submission{Name: "bo", Score: 30, MaxTile: 12, Moves: 40})
	require.NoError(t, err)

	m := NewScoreboardModel(store, 100, 30)
	require.Len(t, m.scores, 1)
	assert.Contains(t, m.View(), "bo")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	assert.Equal(t, 1, m.gameCursor)
	assert.Empty(t, m.scores)
	assert.Contains(t, m.View(), "No scores recorded yet")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	assert.Equal(t, 0, m.gameCursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(ScoreboardModel).IsGoingBack())
}
