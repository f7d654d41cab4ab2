package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jask/gymscore/internal/database"
	"github.com/jask/gymscore/internal/database/repository"
	"github.com/jask/gymscore/internal/scoreboard"
)

// MaintenanceService houses destructive actions surfaced through the TUI.
type MaintenanceService struct {
	DB    *sql.DB
	Slots *repository.SlotRepo
	Board *scoreboard.Controller
}

// Reset clears every stored slot and puts the board back to defaults.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil || s.Board == nil {
		return fmt.Errorf("maintenance: not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		slots := s.Slots.WithTx(tx)
		list, err := slots.List(ctx)
		if err != nil {
			return fmt.Errorf("list slots: %w", err)
		}
		for _, slot := range list {
			if err := slots.Delete(ctx, slot.Key); err != nil {
				return fmt.Errorf("reset slot %s: %w", slot.Key, err)
			}
		}
		log.Printf("reset: cleared %d slots", len(list))
		return nil
	}); err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, "VACUUM"); err != nil {
		log.Printf("reset: vacuum: %v", err)
	}
	return s.Board.Replace(ctx, scoreboard.DefaultState())
}
