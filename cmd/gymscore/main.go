package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gymscore/internal/config"
	"github.com/jask/gymscore/internal/database"
	"github.com/jask/gymscore/internal/database/repository"
	"github.com/jask/gymscore/internal/scoreboard"
	"github.com/jask/gymscore/internal/service"
	"github.com/jask/gymscore/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.Log.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
			log.Fatalf("mkdir log dir: %v", err)
		}
		f, err := tea.LogToFile(cfg.Log.Path, "gymscore")
		if err != nil {
			log.Fatalf("log file: %v", err)
		}
		defer f.Close()
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	slots := repository.NewSlotRepo(db)
	persistence := &service.Persistence{DB: db, Slots: slots}
	board := scoreboard.NewController(persistence.Load(ctx), persistence, scoreboard.WithOnChange(func(s scoreboard.State) {
		log.Printf("board: %s %d, %s %d", s.You.Name, s.You.Score, s.Her.Name, s.Her.Score)
	}))

	transfer := &service.TransferService{Board: board}
	maintenance := &service.MaintenanceService{DB: db, Slots: slots, Board: board}

	loc, err := cfg.UI.Location()
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	p := tea.NewProgram(tui.New(ctx, cfg, board,
		tui.Services{Transfer: transfer, Maintenance: maintenance},
		loc,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
