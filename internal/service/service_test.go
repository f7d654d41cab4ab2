package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/gymscore/internal/database"
	"github.com/jask/gymscore/internal/database/repository"
	"github.com/jask/gymscore/internal/scoreboard"
)

type fixture struct {
	ctx         context.Context
	db          *sql.DB
	slots       *repository.SlotRepo
	persistence *Persistence
}

func setupFixture(t *testing.T) fixture {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	slots := repository.NewSlotRepo(db)
	return fixture{
		ctx:         ctx,
		db:          db,
		slots:       slots,
		persistence: &Persistence{DB: db, Slots: slots},
	}
}

func (f fixture) board(t *testing.T) *scoreboard.Controller {
	return scoreboard.NewController(f.persistence.Load(f.ctx), f.persistence)
}
