package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/gymscore/internal/config"
	"github.com/jask/gymscore/internal/scoreboard"
	"github.com/jask/gymscore/internal/service"
)

func newTestApp(t *testing.T) *App {
	t.Setenv("GYMSCORE_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	board := scoreboard.NewController(scoreboard.DefaultState(), nil)
	cfg := config.Config{Export: config.ExportConfig{Dir: t.TempDir()}}
	a := New(context.Background(), cfg, board, Services{
		Transfer: &service.TransferService{Board: board},
	}, time.UTC)
	a.now = func() time.Time { return time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC) }
	return a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and feeds the resulting messages back into the app
// until no command is left.
func press(t *testing.T, a *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := a.Update(msg)
	for cmd != nil {
		out := cmd()
		if out == nil {
			return
		}
		_, cmd = a.Update(out)
	}
}

func TestIncrementAndDecrementSelectedPlayer(t *testing.T) {
	a := newTestApp(t)

	press(t, a, tea.KeyMsg{Type: tea.KeyUp})
	press(t, a, runes("+"))
	press(t, a, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, a.board.State().You.Score)

	press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	press(t, a, runes("-"))
	press(t, a, runes("k"))
	require.Equal(t, 1, a.board.State().Her.Score)
	require.Equal(t, 1, a.board.State().You.Score)
}

func TestRenameFlow(t *testing.T) {
	a := newTestApp(t)

	press(t, a, runes("n"))
	require.Equal(t, viewRename, a.state)
	require.Equal(t, "You", a.input.Value())

	a.input.SetValue("  Alex ")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, viewBoard, a.state)
	require.Equal(t, "Alex", a.board.State().You.Name)

	press(t, a, runes("n"))
	a.input.SetValue("   ")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "Alex", a.board.State().You.Name)
}

func TestUneditedRenameKeepsLongName(t *testing.T) {
	a := newTestApp(t)
	long := strings.Repeat("a", 70)
	require.NoError(t, a.board.Rename(context.Background(), scoreboard.You, long))

	press(t, a, runes("n"))
	require.Equal(t, long, a.input.Value())
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, long, a.board.State().You.Name)
}

func TestRenameCancel(t *testing.T) {
	a := newTestApp(t)
	press(t, a, runes("n"))
	a.input.SetValue("Nope")
	press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, viewBoard, a.state)
	require.Equal(t, "You", a.board.State().You.Name)
}

func TestExportAndImportKeys(t *testing.T) {
	a := newTestApp(t)
	press(t, a, runes("+"))

	press(t, a, runes("e"))
	path := filepath.Join(a.cfg.Export.Dir, "gym-scores-2026-02-03.csv")
	require.Contains(t, a.status, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Date,You,Her\n2026-02-03,1,0", string(data))

	require.NoError(t, os.WriteFile(path, []byte("Date,A,B\n2026-02-03,4,6"), 0o644))
	press(t, a, runes("i"))
	require.Equal(t, viewImport, a.state)
	require.Equal(t, path, a.input.Value())
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, viewBoard, a.state)
	s := a.board.State()
	require.Equal(t, scoreboard.Player{Name: "A", Score: 4}, s.You)
	require.Equal(t, scoreboard.Player{Name: "B", Score: 6}, s.Her)
}

func TestImportRemembersDirectory(t *testing.T) {
	a := newTestApp(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "board.csv")
	require.NoError(t, os.WriteFile(path, []byte("Date,A,B\n2026-02-03,1,2"), 0o644))

	press(t, a, runes("i"))
	a.input.SetValue(path)
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, dir, a.cfg.Export.Dir)

	saved, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, dir, saved.Export.Dir)

	press(t, a, runes("e"))
	require.FileExists(t, filepath.Join(dir, "gym-scores-2026-02-03.csv"))
}

func TestImportTooShortKeepsBoardSilently(t *testing.T) {
	a := newTestApp(t)
	press(t, a, runes("+"))
	before := a.board.State()

	path := filepath.Join(t.TempDir(), "short.csv")
	require.NoError(t, os.WriteFile(path, []byte("onlyoneline"), 0o644))
	press(t, a, runes("i"))
	a.input.SetValue(path)
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, before, a.board.State())
	require.Empty(t, a.status)
}

func TestResetNeedsConfirmation(t *testing.T) {
	a := newTestApp(t)
	press(t, a, runes("x"))
	require.Equal(t, modalConfirmReset, a.modal)
	press(t, a, runes("n"))
	require.Equal(t, modalNone, a.modal)

	press(t, a, runes("x"))
	press(t, a, runes("y"))
	require.Contains(t, a.status, "maintenance not configured")
	require.True(t, a.statusErr)
}

func TestViewShowsNamesScoresAndLeader(t *testing.T) {
	a := newTestApp(t)
	press(t, a, tea.KeyMsg{Type: tea.KeyTab})
	press(t, a, runes("+"))

	v := a.View()
	require.Contains(t, v, "Gym Scoreboard")
	require.Contains(t, v, "You")
	require.Contains(t, v, "Her is ahead")
	require.Contains(t, v, "1")
}

func TestQuit(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
