package domain

import (
	"time"

	"github.com/google/uuid"
)

// Run is a finished game session.
type Run struct {
	ID         uuid.UUID     `bson:"_id"`
	SessionID  uuid.UUID     `bson:"sessionId"`
	PlayerID   uuid.UUID     `bson:"playerId"`
	Width      int           `bson:"width"`
	Height     int           `bson:"height"`
	Moves      int           `bson:"moves"`
	Elapsed    time.Duration `bson:"elapsed"`
	AutoSolved bool          `bson:"autoSolved"`
	FinishedAt time.Time     `bson:"finishedAt"`
}

// Ranked reports whether the run may enter the leaderboard. Runs finished by
// the solver are kept in the history only.
func (r *Run) Ranked() bool {
	return !r.AutoSolved
}
