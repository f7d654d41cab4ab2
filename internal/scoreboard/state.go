package scoreboard

import (
	"fmt"
	"math"
	"strings"
)

// PlayerKey identifies one of the two fixed players.
type PlayerKey string

const (
	You PlayerKey = "you"
	Her PlayerKey = "her"
)

// Keys lists the player keys in display order.
var Keys = []PlayerKey{You, Her}

const (
	DefaultYouName = "You"
	DefaultHerName = "Her"
)

// Player is one side of the board.
type Player struct {
	Name  string
	Score int
}

// State is the whole board. It is a value; mutators return an updated copy.
type State struct {
	You Player
	Her Player
}

func DefaultState() State {
	return State{
		You: Player{Name: DefaultYouName},
		Her: Player{Name: DefaultHerName},
	}
}

// ParsePlayerKey accepts "you" or "her" in any case.
func ParsePlayerKey(s string) (PlayerKey, error) {
	switch PlayerKey(strings.ToLower(strings.TrimSpace(s))) {
	case You:
		return You, nil
	case Her:
		return Her, nil
	}
	return "", fmt.Errorf("player %q: %w", s, ErrInvalidArgument)
}

// DefaultName returns the name a player starts with.
func DefaultName(key PlayerKey) string {
	if key == Her {
		return DefaultHerName
	}
	return DefaultYouName
}

func (s State) Player(key PlayerKey) (Player, error) {
	switch key {
	case You:
		return s.You, nil
	case Her:
		return s.Her, nil
	}
	return Player{}, fmt.Errorf("player %q: %w", key, ErrInvalidArgument)
}

// WithPlayer replaces one player's record as is.
func (s State) WithPlayer(key PlayerKey, p Player) (State, error) {
	switch key {
	case You:
		s.You = p
	case Her:
		s.Her = p
	default:
		return s, fmt.Errorf("player %q: %w", key, ErrInvalidArgument)
	}
	return s, nil
}

// AdjustScore adds delta to the player's score, clamping at zero.
func (s State) AdjustScore(key PlayerKey, delta int) (State, error) {
	p, err := s.Player(key)
	if err != nil {
		return s, err
	}
	p.Score = clamp(addSaturating(p.Score, delta))
	return s.WithPlayer(key, p)
}

// RenamePlayer replaces the player's name with the trimmed proposal.
// A blank proposal leaves the name unchanged and is not an error.
func (s State) RenamePlayer(key PlayerKey, proposed string) (State, error) {
	p, err := s.Player(key)
	if err != nil {
		return s, err
	}
	name := strings.TrimSpace(proposed)
	if name == "" {
		return s, nil
	}
	p.Name = name
	return s.WithPlayer(key, p)
}

// Normalize enforces the board invariants on state that came from outside.
func (s State) Normalize() State {
	s.You = normalizePlayer(s.You, You)
	s.Her = normalizePlayer(s.Her, Her)
	return s
}

// Leader reports the player ahead, or false on a tie.
func (s State) Leader() (PlayerKey, bool) {
	switch {
	case s.You.Score > s.Her.Score:
		return You, true
	case s.Her.Score > s.You.Score:
		return Her, true
	}
	return "", false
}

func normalizePlayer(p Player, key PlayerKey) Player {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = DefaultName(key)
	}
	p.Score = clamp(p.Score)
	return p
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	return score
}

func addSaturating(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	if b < 0 && a < math.MinInt-b {
		return math.MinInt
	}
	return a + b
}
