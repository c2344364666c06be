package service

import (
	"context"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// session is one player's game. The embedded mutex guards every field below
// it; a running replay is the only other writer of the board.
type session struct {
	id       uuid.UUID
	playerID uuid.UUID
	expiry   *time.Timer

	sync.Mutex
	board        *maze.Board
	controller   *game.Controller
	moves        int
	started      bool
	finished     bool
	autoSolved   bool
	startedAt    time.Time
	endedAt      time.Time
	cancelReplay context.CancelFunc // set while a replay runs
	replayDone   chan struct{}
}

// reset installs a fresh board and clears the run bookkeeping.
func (s *session) reset(b *maze.Board, opts []game.ControllerOption) {
	s.board = b
	s.controller = game.NewController(b, opts...)
	s.moves = 0
	s.started = false
	s.finished = false
	s.autoSolved = false
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
}

func (s *session) replaying() bool {
	return s.cancelReplay != nil
}

// stopReplay cancels a running replay and waits for it to return. It must be
// called without holding the session lock.
func (s *session) stopReplay() {
	s.Lock()
	cancel, done := s.cancelReplay, s.replayDone
	s.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// lockedBoard serializes replay steps with the session's other readers.
type lockedBoard struct {
	s *session
}

func (b *lockedBoard) MovePlayer(d maze.Direction) (bool, error) {
	b.s.Lock()
	defer b.s.Unlock()
	return b.s.board.MovePlayer(d)
}

func (b *lockedBoard) Solve() []maze.Direction {
	b.s.Lock()
	defer b.s.Unlock()
	return b.s.board.Solve()
}

func (b *lockedBoard) Won() bool {
	b.s.Lock()
	defer b.s.Unlock()
	return b.s.board.Won()
}
