package tui

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/gymscore/internal/config"
	"github.com/jask/gymscore/internal/scoreboard"
	"github.com/jask/gymscore/internal/service"
)

// App is the scoreboard screen.
type App struct {
	ctx      context.Context
	cfg      config.Config
	board    *scoreboard.Controller
	services Services
	tz       *time.Location
	now      func() time.Time
	keys     keyMap

	state      appState
	modal      modalState
	selected   int
	input      textinput.Model
	status     string
	statusErr  bool
	lastImport *service.ImportResult
}

type Services struct {
	Transfer    *service.TransferService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewBoard  appState = "board"
	viewRename appState = "rename"
	viewImport appState = "import"
)

type modalState string

const (
	modalNone         modalState = ""
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, board *scoreboard.Controller, services Services, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	in := textinput.New()
	// names have no length limit
	in.CharLimit = 0
	in.Cursor.SetMode(cursor.CursorStatic)
	return &App{
		ctx:      ctx,
		cfg:      cfg,
		board:    board,
		services: services,
		tz:       tz,
		now:      time.Now,
		keys:     defaultKeys(),
		state:    viewBoard,
		input:    in,
	}
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) selectedKey() scoreboard.PlayerKey {
	return scoreboard.Keys[a.selected]
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewRename, viewImport:
			return a.handleInputKey(m)
		}
		return a.handleBoardKey(m)
	case boardMsg:
		a.setStatus(string(m), false)
	case errMsg:
		log.Printf("error: %v", m.error)
		a.setStatus("error: "+m.Error(), true)
	case exportDoneMsg:
		a.setStatus("exported to "+m.Path, false)
	case importDoneMsg:
		a.lastImport = &m.Result
		a.state = viewBoard
		if m.Result.Rejected {
			// a file too short to read leaves the board as it was, without a complaint
			a.setStatus("", false)
			return a, nil
		}
		a.setStatus("imported "+filepath.Base(m.Path), false)
		if dir := filepath.Dir(m.Path); dir != a.cfg.Export.Dir {
			a.cfg.Export.Dir = dir
			return a, a.saveConfigCmd(a.cfg)
		}
	case configSavedMsg:
		log.Printf("export dir set to %s", m.Export.Dir)
	}
	return a, nil
}

func (a *App) setStatus(s string, isErr bool) {
	a.status = s
	a.statusErr = isErr
}

func (a *App) handleBoardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		return a, a.adjustCmd(a.selectedKey(), 1)
	case key.Matches(m, a.keys.Down):
		return a, a.adjustCmd(a.selectedKey(), -1)
	case key.Matches(m, a.keys.Next):
		a.selected = (a.selected + 1) % len(scoreboard.Keys)
	case key.Matches(m, a.keys.Prev):
		a.selected = (a.selected + len(scoreboard.Keys) - 1) % len(scoreboard.Keys)
	case key.Matches(m, a.keys.Rename):
		p, _ := a.board.State().Player(a.selectedKey())
		a.state = viewRename
		a.input.Prompt = "Name: "
		a.input.SetValue(p.Name)
		a.input.CursorEnd()
		return a, a.input.Focus()
	case key.Matches(m, a.keys.Export):
		return a, a.exportCmd()
	case key.Matches(m, a.keys.Import):
		a.state = viewImport
		a.input.Prompt = "CSV path: "
		a.input.SetValue(filepath.Join(a.cfg.Export.Dir, scoreboard.ExportFileName(a.now().In(a.tz))))
		a.input.CursorEnd()
		a.setStatus("", false)
		return a, a.input.Focus()
	case key.Matches(m, a.keys.Reset):
		a.modal = modalConfirmReset
	}
	return a, nil
}

func (a *App) handleInputKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyCtrlC:
		return a, tea.Quit
	case tea.KeyEsc:
		a.closeInput()
		return a, nil
	case tea.KeyEnter:
		text := a.input.Value()
		mode := a.state
		a.closeInput()
		if mode == viewRename {
			return a, a.renameCmd(a.selectedKey(), text)
		}
		path := strings.TrimSpace(text)
		if path == "" {
			a.setStatus("enter a CSV path", true)
			return a, nil
		}
		return a, a.importCmd(path)
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	return a, cmd
}

func (a *App) closeInput() {
	a.state = viewBoard
	a.input.Blur()
	a.input.SetValue("")
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
	}
	return a, nil
}

// commands
func (a *App) adjustCmd(k scoreboard.PlayerKey, delta int) tea.Cmd {
	return func() tea.Msg {
		if err := a.board.Adjust(a.ctx, k, delta); err != nil {
			return errMsg{err}
		}
		return boardMsg("")
	}
}

func (a *App) renameCmd(k scoreboard.PlayerKey, name string) tea.Cmd {
	return func() tea.Msg {
		if strings.TrimSpace(name) == "" {
			return boardMsg("")
		}
		if err := a.board.Rename(a.ctx, k, name); err != nil {
			return errMsg{err}
		}
		return boardMsg("renamed")
	}
}

func (a *App) exportCmd() tea.Cmd {
	if a.services.Transfer == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("export not configured")} }
	}
	now := a.now().In(a.tz)
	return func() tea.Msg {
		path, err := a.services.Transfer.Export(a.ctx, a.cfg.Export.Dir, now)
		if err != nil {
			return errMsg{err}
		}
		return exportDoneMsg{Path: path}
	}
}

func (a *App) importCmd(path string) tea.Cmd {
	if a.services.Transfer == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("import not configured")} }
	}
	abs := path
	if !filepath.IsAbs(path) {
		if p, err := filepath.Abs(path); err == nil {
			abs = p
		}
	}
	return func() tea.Msg {
		res, err := a.services.Transfer.ImportFile(a.ctx, abs)
		if err != nil {
			return errMsg{err}
		}
		return importDoneMsg{Path: abs, Result: res}
	}
}

func (a *App) resetCmd() tea.Cmd {
	return func() tea.Msg {
		if a.services.Maintenance == nil {
			return errMsg{fmt.Errorf("maintenance not configured")}
		}
		if err := a.services.Maintenance.Reset(a.ctx); err != nil {
			return errMsg{err}
		}
		return boardMsg("board reset")
	}
}

// saveConfigCmd remembers the directory of the last import for the next export.
func (a *App) saveConfigCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{fmt.Errorf("save config: %w", err)}
		}
		return configSavedMsg(cfg)
	}
}

// messages
type configSavedMsg config.Config

type boardMsg string

type errMsg struct{ error }

type exportDoneMsg struct {
	Path string
}

type importDoneMsg struct {
	Path   string
	Result service.ImportResult
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewRename:
		body = a.renderRename()
	case viewImport:
		body = a.renderImport()
	default:
		body = a.renderBoard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.status != "" {
		status := a.status
		if a.statusErr {
			status = errorStyle.Render(status)
		}
		body += "\n" + status
	}
	return body
}

func (a *App) renderBoard() string {
	s := a.board.State()
	title := titleStyle.Render("Gym Scoreboard")
	sub := subtitleStyle.Render("Track your fitness journey together!")

	cards := make([]string, 0, len(scoreboard.Keys))
	for i, k := range scoreboard.Keys {
		p, _ := s.Player(k)
		style := cardStyle
		if i == a.selected {
			style = selectedCardStyle
		}
		cards = append(cards, style.Render(nameStyle.Render(p.Name)+"\n\n"+scoreStyle.Render(fmt.Sprintf("%d", p.Score))))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	leader := "All square. Keep pushing each other!"
	if k, ok := s.Leader(); ok {
		p, _ := s.Player(k)
		leader = p.Name + " is ahead. Keep pushing each other!"
	}
	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n%s", title, sub, row, leader, a.keys.helpLine())
}

func (a *App) renderRename() string {
	return titleStyle.Render("Rename player") + "\n" + a.input.View() + "\n[enter] Save  [esc] Cancel"
}

func (a *App) renderImport() string {
	out := titleStyle.Render("Import CSV") + "\n" + a.input.View() + "\n[enter] Import  [esc] Back"
	if a.lastImport != nil && !a.lastImport.Rejected {
		b := a.lastImport.Before
		out += fmt.Sprintf("\nLast import replaced %s %d / %s %d", b.You.Name, b.You.Score, b.Her.Name, b.Her.Score)
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmReset:
		return titleStyle.Render("Reset scoreboard?") + "\nBoth scores go to 0 and names back to defaults.\n[y] Yes  [n] No"
	default:
		return ""
	}
}
