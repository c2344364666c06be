// Package gameapi exposes maze sessions, run history and leaderboards over HTTP.
package gameapi

import (
	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
)

// NewSessionRequest asks for a maze. Omitted dimensions select the default size.
type NewSessionRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MoveRequest carries one step, as a name ("up") or a code ("0").
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// PositionResponse is a cell coordinate.
type PositionResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// StateResponse is the JSON form of a session state. Cells are row-major
// cell type codes: 0 path, 1 wall, 2 player.
type StateResponse struct {
	SessionID   string           `json:"session_id"`
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Cells       []int            `json:"cells"`
	Player      PositionResponse `json:"player"`
	Start       PositionResponse `json:"start"`
	Goal        PositionResponse `json:"goal"`
	Started     bool             `json:"started"`
	Finished    bool             `json:"finished"`
	AutoSolving bool             `json:"auto_solving"`
	Moves       int              `json:"moves"`
	ElapsedMs   int64            `json:"elapsed_ms"`
}

// SolutionResponse lists the moves leading from the player to the goal.
type SolutionResponse struct {
	Directions []string `json:"directions"`
	Codes      []int    `json:"codes"`
}

// RunResponse is one finished run.
type RunResponse struct {
	ID         string `json:"id"`
	SessionID  string `json:"session_id"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Moves      int    `json:"moves"`
	ElapsedMs  int64  `json:"elapsed_ms"`
	AutoSolved bool   `json:"auto_solved"`
	FinishedAt int64  `json:"finished_at"`
}

// LeaderboardEntryResponse is one ranked player.
type LeaderboardEntryResponse struct {
	Rank     int64  `json:"rank"`
	PlayerID string `json:"player_id"`
	Handle   string `json:"handle"`
	BestMs   int64  `json:"best_ms"`
}

// LeaderboardResponse is the ranking of one board size.
type LeaderboardResponse struct {
	Width   int                        `json:"width"`
	Height  int                        `json:"height"`
	Entries []LeaderboardEntryResponse `json:"entries"`
}

func toPosition(p game.Position) PositionResponse {
	return PositionResponse{X: p.X, Y: p.Y}
}

func toStateResponse(s game.State) *StateResponse {
	cells := make([]int, len(s.Cells))
	for idx, t := range s.Cells {
		cells[idx] = int(t)
	}

	return &StateResponse{
		SessionID:   s.SessionID.String(),
		Width:       s.Width,
		Height:      s.Height,
		Cells:       cells,
		Player:      toPosition(s.Player),
		Start:       toPosition(s.Start),
		Goal:        toPosition(s.Goal),
		Started:     s.Started,
		Finished:    s.Finished,
		AutoSolving: s.AutoSolving,
		Moves:       s.Moves,
		ElapsedMs:   s.Elapsed.Milliseconds(),
	}
}

func toSolutionResponse(dirs []maze.Direction) *SolutionResponse {
	res := &SolutionResponse{
		Directions: make([]string, len(dirs)),
		Codes:      make([]int, len(dirs)),
	}
	for idx, d := range dirs {
		res.Directions[idx] = d.String()
		res.Codes[idx] = int(d)
	}
	return res
}

func toRunResponse(r *dmn.Run) RunResponse {
	return RunResponse{
		ID:         r.ID.String(),
		SessionID:  r.SessionID.String(),
		Width:      r.Width,
		Height:     r.Height,
		Moves:      r.Moves,
		ElapsedMs:  r.Elapsed.Milliseconds(),
		AutoSolved: r.AutoSolved,
		FinishedAt: r.FinishedAt.UnixMilli(),
	}
}

func toLeaderboardEntry(e i.LeaderboardEntry, handle string) LeaderboardEntryResponse {
	return LeaderboardEntryResponse{
		Rank:     e.Rank,
		PlayerID: e.PlayerID.String(),
		Handle:   handle,
		BestMs:   e.Best.Milliseconds(),
	}
}
