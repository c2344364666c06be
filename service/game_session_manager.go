package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultBoardWidth  = 15
	defaultBoardHeight = 15
	defaultSessionTTL  = 30 * time.Minute

	recordRunTimeout = 2 * time.Second
)

// Session errors.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionNotOwned = errors.New("session belongs to another player")
	ErrReplayInFlight  = errors.New("auto-solve replay in progress")
)

var _ i.GameSessionManager = &GameSessionManager{}

// Config holds the collaborators of a GameSessionManager. Only Logger is
// required.
type Config struct {
	RunRepo     i.RunRepo     // Optional history of finished runs.
	Leaderboard i.Leaderboard // Optional ranking of manual runs.
	Logger      i.Logger

	DefaultWidth  int           // Board width used when a request omits it.
	DefaultHeight int           // Board height used when a request omits it.
	SessionTTL    time.Duration // Idle time after which a session is dropped.

	BoardFactory      func(width, height int) (*maze.Board, error)
	ControllerOptions []game.ControllerOption
	Clock             func() time.Time
}

// GameSessionManager keeps single-player sessions in memory.
type GameSessionManager struct {
	sessions     map[uuid.UUID]*session
	runRepo      i.RunRepo
	leaderboard  i.Leaderboard
	logger       i.Logger
	width        int
	height       int
	ttl          time.Duration
	newBoard     func(width, height int) (*maze.Board, error)
	controllerOp []game.ControllerOption
	now          func() time.Time
	wg           sync.WaitGroup
	sync.RWMutex
}

// NewGameSessionManager creates a manager from c, filling in defaults.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c == nil || c.Logger == nil {
		return nil, errors.New("game session manager requires a logger")
	}

	gsm := &GameSessionManager{
		sessions:     make(map[uuid.UUID]*session),
		runRepo:      c.RunRepo,
		leaderboard:  c.Leaderboard,
		logger:       c.Logger,
		width:        c.DefaultWidth,
		height:       c.DefaultHeight,
		ttl:          c.SessionTTL,
		newBoard:     c.BoardFactory,
		controllerOp: c.ControllerOptions,
		now:          c.Clock,
	}
	if gsm.width <= 0 {
		gsm.width = defaultBoardWidth
	}
	if gsm.height <= 0 {
		gsm.height = defaultBoardHeight
	}
	if gsm.ttl <= 0 {
		gsm.ttl = defaultSessionTTL
	}
	if gsm.newBoard == nil {
		gsm.newBoard = func(w, h int) (*maze.Board, error) { return maze.New(w, h) }
	}
	if gsm.now == nil {
		gsm.now = time.Now
	}
	return gsm, nil
}

func (g *GameSessionManager) NewSession(ctx context.Context, playerID uuid.UUID, width, height int) (game.State, error) {
	if width == 0 && height == 0 {
		width, height = g.width, g.height
	}

	board, err := g.newBoard(width, height)
	if err != nil {
		return game.State{}, err
	}

	s := &session{playerID: playerID}
	s.reset(board, g.controllerOp)

	g.Lock()
	s.id = uuid.New()
	for {
		if _, ok := g.sessions[s.id]; !ok {
			break
		}
		s.id = uuid.New()
	}
	id := s.id
	s.expiry = time.AfterFunc(g.ttl, func() { g.expire(id) })
	g.sessions[id] = s
	g.Unlock()

	g.logger.Info(fmt.Sprintf("started %dx%d session %s for player %s", width, height, id, playerID))

	s.Lock()
	defer s.Unlock()
	return g.snapshot(s), nil
}

func (g *GameSessionManager) State(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error) {
	s, err := g.session(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}

	s.Lock()
	defer s.Unlock()
	g.touch(s)
	return g.snapshot(s), nil
}

func (g *GameSessionManager) Move(ctx context.Context, sessionID, playerID uuid.UUID, d maze.Direction) (game.State, error) {
	s, err := g.session(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}

	s.Lock()
	defer s.Unlock()
	g.touch(s)

	if s.replaying() {
		return g.snapshot(s), ErrReplayInFlight
	}
	if s.finished {
		return g.snapshot(s), nil
	}

	before := s.board.Player()
	won, err := s.controller.ApplyMove(d)
	if err != nil {
		return g.snapshot(s), err
	}

	g.start(s)
	if s.board.Player() != before {
		s.moves++
	}
	if won {
		g.finish(s)
	}
	return g.snapshot(s), nil
}

func (g *GameSessionManager) Solution(ctx context.Context, sessionID, playerID uuid.UUID) ([]maze.Direction, error) {
	s, err := g.session(sessionID, playerID)
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()
	g.touch(s)
	return s.board.Solve(), nil
}

func (g *GameSessionManager) AutoSolve(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error) {
	s, err := g.session(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}

	s.Lock()
	defer s.Unlock()
	g.touch(s)

	if s.replaying() {
		return g.snapshot(s), ErrReplayInFlight
	}
	if s.finished {
		return g.snapshot(s), nil
	}

	g.start(s)
	s.autoSolved = true

	replayCtx, cancel := context.WithCancel(context.Background())
	s.cancelReplay = cancel
	s.replayDone = make(chan struct{})

	g.wg.Add(1)
	go g.replay(replayCtx, cancel, s, s.replayDone)

	g.logger.Info(fmt.Sprintf("auto-solve started for session %s", s.id))
	return g.snapshot(s), nil
}

func (g *GameSessionManager) CancelAutoSolve(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error) {
	s, err := g.session(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}

	s.stopReplay()

	s.Lock()
	defer s.Unlock()
	g.touch(s)
	return g.snapshot(s), nil
}

func (g *GameSessionManager) Retry(ctx context.Context, sessionID, playerID uuid.UUID) (game.State, error) {
	s, err := g.session(sessionID, playerID)
	if err != nil {
		return game.State{}, err
	}

	s.stopReplay()

	s.Lock()
	defer s.Unlock()
	g.touch(s)

	if s.replaying() {
		return g.snapshot(s), ErrReplayInFlight
	}

	board, err := g.newBoard(s.board.Width(), s.board.Height())
	if err != nil {
		return g.snapshot(s), err
	}
	s.reset(board, g.controllerOp)

	g.logger.Info(fmt.Sprintf("session %s restarted with a new maze", s.id))
	return g.snapshot(s), nil
}

func (g *GameSessionManager) Close(ctx context.Context, sessionID, playerID uuid.UUID) error {
	s, err := g.session(sessionID, playerID)
	if err != nil {
		return err
	}

	g.drop(s)
	g.logger.Info(fmt.Sprintf("session %s closed", sessionID))
	return nil
}

func (g *GameSessionManager) StopAll() {
	g.Lock()
	sessions := make([]*session, 0, len(g.sessions))
	for _, s := range g.sessions {
		sessions = append(sessions, s)
	}
	g.Unlock()

	for _, s := range sessions {
		g.drop(s)
	}
	g.wg.Wait()
}

// session looks up a session and checks that playerID owns it.
func (g *GameSessionManager) session(sessionID, playerID uuid.UUID) (*session, error) {
	g.RLock()
	defer g.RUnlock()

	s, ok := g.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.playerID != playerID {
		return nil, ErrSessionNotOwned
	}
	return s, nil
}

func (g *GameSessionManager) drop(s *session) {
	s.stopReplay()
	if s.expiry != nil {
		s.expiry.Stop()
	}

	g.Lock()
	delete(g.sessions, s.id)
	g.Unlock()
}

func (g *GameSessionManager) expire(id uuid.UUID) {
	g.RLock()
	s, ok := g.sessions[id]
	g.RUnlock()
	if !ok {
		return
	}

	g.drop(s)
	g.logger.Warning(fmt.Sprintf("session %s expired", id))
}

// touch pushes the idle expiry of s back by the session TTL. Callers hold the
// session lock.
func (g *GameSessionManager) touch(s *session) {
	if s.expiry != nil {
		s.expiry.Reset(g.ttl)
	}
}

// replay walks the solution on behalf of the player. Each step takes the
// session lock on its own so the state stays readable between steps.
func (g *GameSessionManager) replay(ctx context.Context, cancel context.CancelFunc, s *session, done chan struct{}) {
	defer g.wg.Done()
	defer close(done)
	defer cancel()

	c := game.NewController(&lockedBoard{s: s}, g.controllerOp...)
	_, err := c.AutoSolve(ctx, func(_ maze.Direction, won bool) {
		s.Lock()
		defer s.Unlock()
		g.touch(s)
		s.moves++
		if won {
			g.finish(s)
		}
	})

	s.Lock()
	s.cancelReplay = nil
	s.replayDone = nil
	s.Unlock()

	if err != nil {
		g.logger.Warning(fmt.Sprintf("auto-solve for session %s stopped: %v", s.id, err))
		return
	}
	g.logger.Info(fmt.Sprintf("auto-solve for session %s finished", s.id))
}

// start starts the clock on the first input. Callers hold the session lock.
func (g *GameSessionManager) start(s *session) {
	if s.started {
		return
	}
	s.started = true
	s.startedAt = g.now()
}

// finish stops the clock and records the run. Callers hold the session lock.
func (g *GameSessionManager) finish(s *session) {
	if s.finished {
		return
	}
	s.finished = true
	s.endedAt = g.now()

	run := &dmn.Run{
		ID:         uuid.New(),
		SessionID:  s.id,
		PlayerID:   s.playerID,
		Width:      s.board.Width(),
		Height:     s.board.Height(),
		Moves:      s.moves,
		Elapsed:    s.endedAt.Sub(s.startedAt),
		AutoSolved: s.autoSolved,
		FinishedAt: s.endedAt,
	}
	g.logger.Info(fmt.Sprintf("session %s finished in %s with %d moves", s.id, run.Elapsed, run.Moves))

	g.wg.Add(1)
	go g.recordRun(run)
}

func (g *GameSessionManager) recordRun(run *dmn.Run) {
	defer g.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), recordRunTimeout)
	defer cancel()

	if g.runRepo != nil {
		if err := g.runRepo.Save(ctx, run); err != nil {
			g.logger.Error(fmt.Sprintf("saving run %s: %v", run.ID, err))
		}
	}

	if g.leaderboard != nil && run.Ranked() {
		if err := g.leaderboard.Submit(ctx, run.Width, run.Height, run.PlayerID, run.Elapsed); err != nil {
			g.logger.Error(fmt.Sprintf("submitting run %s to leaderboard: %v", run.ID, err))
		}
	}
}

// snapshot builds the public state. Callers hold the session lock.
func (g *GameSessionManager) snapshot(s *session) game.State {
	state := game.Snapshot(s.id, s.board)
	state.Started = s.started
	state.Finished = s.finished
	state.AutoSolving = s.replaying()
	state.Moves = s.moves

	switch {
	case s.finished:
		state.Elapsed = s.endedAt.Sub(s.startedAt)
	case s.started:
		state.Elapsed = g.now().Sub(s.startedAt)
	}
	return state
}
