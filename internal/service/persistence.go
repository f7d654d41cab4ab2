package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jask/gymscore/internal/database"
	"github.com/jask/gymscore/internal/database/repository"
	"github.com/jask/gymscore/internal/scoreboard"
)

// Durable slot keys.
const (
	ScoresSlot = "gymScores"
	NamesSlot  = "gymNames"
)


// Persistence mirrors the board into the scores and names slots.
type Persistence struct {
	DB    *sql.DB
	Slots *repository.SlotRepo
}

// Load restores the board. Each slot falls back to defaults on its own when
// it is missing or unreadable, so Load never fails.
func (p *Persistence) Load(ctx context.Context) scoreboard.State {
	s := scoreboard.DefaultState()

	var scores map[string]int
	if p.readSlot(ctx, ScoresSlot, &scores) {
		s = applySlot(s, ScoresSlot, scores, func(pl *scoreboard.Player, v int) { pl.Score = v })
	}
	var names map[string]string
	if p.readSlot(ctx, NamesSlot, &names) {
		s = applySlot(s, NamesSlot, names, func(pl *scoreboard.Player, v string) { pl.Name = v })
	}
	return s.Normalize()
}

// applySlot copies per-player values onto s. Unknown keys are logged and skipped.
func applySlot[V any](s scoreboard.State, slot string, values map[string]V, set func(*scoreboard.Player, V)) scoreboard.State {
	for raw, v := range values {
		key, err := scoreboard.ParsePlayerKey(raw)
		if err != nil {
			log.Printf("slot %s: skipping %v", slot, err)
			continue
		}
		pl, _ := s.Player(key)
		set(&pl, v)
		s, _ = s.WithPlayer(key, pl)
	}
	return s
}

func (p *Persistence) readSlot(ctx context.Context, key string, dst any) bool {
	slot, err := p.Slots.Get(ctx, key)
	if err != nil {
		log.Printf("load slot %s: %v", key, err)
		return false
	}
	if slot == nil {
		return false
	}
	if err := json.Unmarshal([]byte(slot.Value), dst); err != nil {
		log.Printf("slot %s is malformed, using defaults: %v", key, err)
		return false
	}
	return true
}

// Save writes both slots in one transaction.
func (p *Persistence) Save(ctx context.Context, s scoreboard.State) error {
	scores, err := json.Marshal(map[scoreboard.PlayerKey]int{
		scoreboard.You: s.You.Score,
		scoreboard.Her: s.Her.Score,
	})
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	names, err := json.Marshal(map[scoreboard.PlayerKey]string{
		scoreboard.You: s.You.Name,
		scoreboard.Her: s.Her.Name,
	})
	if err != nil {
		return fmt.Errorf("encode names: %w", err)
	}
	return database.WithTx(ctx, p.DB, func(tx *sql.Tx) error {
		slots := p.Slots.WithTx(tx)
		if _, err := slots.Put(ctx, ScoresSlot, string(scores)); err != nil {
			return fmt.Errorf("write %s: %w", ScoresSlot, err)
		}
		if _, err := slots.Put(ctx, NamesSlot, string(names)); err != nil {
			return fmt.Errorf("write %s: %w", NamesSlot, err)
		}
		return nil
	})
}
