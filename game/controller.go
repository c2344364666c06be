package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
)

const defaultMaxStepDelay = 100 * time.Millisecond

// Sleeper pauses between replayed steps. It returns early with the context
// error when ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// StepHandler is called after every replayed step.
type StepHandler func(d maze.Direction, won bool)

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithSleeper replaces the timer-based pause between replay steps.
func WithSleeper(s Sleeper) ControllerOption {
	return func(c *Controller) {
		c.sleep = s
	}
}

// WithDelayRand sets the random source for the replay delay.
func WithDelayRand(r *rand.Rand) ControllerOption {
	return func(c *Controller) {
		c.rng = r
	}
}

// WithMaxStepDelay bounds the delay drawn for each replay.
func WithMaxStepDelay(d time.Duration) ControllerOption {
	return func(c *Controller) {
		if d > 0 {
			c.maxDelay = d
		}
	}
}

// Controller validates and applies moves on a board and replays solved
// routes. It is not safe for concurrent use; callers serialize input while a
// replay is running.
type Controller struct {
	board    Board
	sleep    Sleeper
	rng      *rand.Rand
	maxDelay time.Duration
}

// NewController creates a Controller for the given board.
func NewController(b Board, opts ...ControllerOption) *Controller {
	c := &Controller{
		board:    b,
		sleep:    sleepContext,
		maxDelay: defaultMaxStepDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// ApplyMove moves the player one step and reports whether the player is now
// on the top row.
func (c *Controller) ApplyMove(d maze.Direction) (bool, error) {
	if _, err := c.board.MovePlayer(d); err != nil {
		return false, err
	}
	return c.board.Won(), nil
}

// AutoSolve solves the board once and walks the route step by step. A single
// delay is drawn per call and used between every pair of steps.
func (c *Controller) AutoSolve(ctx context.Context, onStep StepHandler) (bool, error) {
	dirs := c.board.Solve()
	delay := time.Duration(c.rng.Int63n(int64(c.maxDelay)))

	for i, d := range dirs {
		if err := ctx.Err(); err != nil {
			return c.board.Won(), err
		}

		won, err := c.ApplyMove(d)
		if err != nil {
			return won, err
		}
		if onStep != nil {
			onStep(d, won)
		}

		if i < len(dirs)-1 {
			if err := c.sleep(ctx, delay); err != nil {
				return won, err
			}
		}
	}
	return c.board.Won(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
