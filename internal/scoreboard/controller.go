package scoreboard

import (
	"context"
	"fmt"
	"sync"
)

// Persister mirrors the board to durable storage.
type Persister interface {
	Save(ctx context.Context, s State) error
}

// Controller owns the session's board. Every mutation goes through setState,
// which persists the new value.
type Controller struct {
	mu       sync.Mutex
	state    State
	persist  Persister
	onChange func(State)
}

type Option func(*Controller)

// WithOnChange registers a callback run after each applied mutation.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func NewController(initial State, p Persister, opts ...Option) *Controller {
	c := &Controller{state: initial.Normalize(), persist: p}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Adjust(ctx context.Context, key PlayerKey, delta int) error {
	return c.update(ctx, func(s State) (State, error) { return s.AdjustScore(key, delta) })
}

func (c *Controller) Rename(ctx context.Context, key PlayerKey, name string) error {
	return c.update(ctx, func(s State) (State, error) { return s.RenamePlayer(key, name) })
}

// Replace swaps in a whole new board, e.g. after a CSV import or reset.
func (c *Controller) Replace(ctx context.Context, next State) error {
	return c.update(ctx, func(State) (State, error) { return next.Normalize(), nil })
}

func (c *Controller) update(ctx context.Context, fn func(State) (State, error)) error {
	c.mu.Lock()
	next, err := fn(c.state)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	saveErr := c.setState(ctx, next)
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(next)
	}
	return saveErr
}

// setState must be called with mu held. The new state is kept even when the
// write fails.
func (c *Controller) setState(ctx context.Context, next State) error {
	c.state = next
	if c.persist == nil {
		return nil
	}
	if err := c.persist.Save(ctx, next); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}
