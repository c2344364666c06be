package gameapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunRepo struct {
	runs  []*dmn.Run
	limit int64
}

func (r *stubRunRepo) Save(context.Context, *dmn.Run) error { return nil }

func (r *stubRunRepo) ByPlayer(_ context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	r.limit = limit
	var out []*dmn.Run
	for _, run := range r.runs {
		if run.PlayerID == playerID {
			out = append(out, run)
		}
	}
	return out, nil
}

type stubPlayerRepo struct {
	players map[uuid.UUID]*dmn.Player
}

func (r *stubPlayerRepo) Save(context.Context, *dmn.Player) error { return nil }

func (r *stubPlayerRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Player, error) {
	if p, ok := r.players[id]; ok {
		return p, nil
	}
	return nil, dmn.ErrPlayerNotFound
}

func (r *stubPlayerRepo) ByHandle(context.Context, string) (*dmn.Player, error) {
	return nil, dmn.ErrPlayerNotFound
}

type stubLeaderboard struct {
	entries       []i.LeaderboardEntry
	width, height int
}

func (l *stubLeaderboard) Submit(context.Context, int, int, uuid.UUID, time.Duration) error {
	return nil
}

func (l *stubLeaderboard) Top(_ context.Context, w, h int, limit int64) ([]i.LeaderboardEntry, error) {
	l.width, l.height = w, h
	if int64(len(l.entries)) > limit {
		return l.entries[:limit], nil
	}
	return l.entries, nil
}

func TestRecordsController(t *testing.T) {
	gin.SetMode(gin.TestMode)

	alice := &dmn.Player{ID: uuid.New(), Handle: "alice"}
	gone := uuid.New()
	runs := &stubRunRepo{runs: []*dmn.Run{
		{ID: uuid.New(), PlayerID: alice.ID, Width: 15, Height: 15, Moves: 40, Elapsed: 12 * time.Second, FinishedAt: time.Now()},
		{ID: uuid.New(), PlayerID: uuid.New(), Width: 15, Height: 15},
	}}
	players := &stubPlayerRepo{players: map[uuid.UUID]*dmn.Player{alice.ID: alice}}
	board := &stubLeaderboard{entries: []i.LeaderboardEntry{
		{Rank: 1, PlayerID: alice.ID, Best: 9 * time.Second},
		{Rank: 2, PlayerID: gone, Best: 11 * time.Second},
	}}

	_, err := NewRecordsController(nil, players, board, 15, 15)
	assert.Error(t, err)

	rc, err := NewRecordsController(runs, players, board, 15, 15)
	require.NoError(t, err)

	r := gin.New()
	rc.RegisterPublic(r.Group("/v1"))
	protected := r.Group("/v1")
	protected.Use(withPlayer)
	rc.RegisterProtected(protected)

	t.Run("runs of the caller", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/runs?limit=5", alice.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[[]RunResponse](t, w)
		require.Len(t, got, 1)
		assert.Equal(t, int64(12000), got[0].ElapsedMs)
		assert.Equal(t, 40, got[0].Moves)
		assert.Equal(t, int64(5), runs.limit)
	})

	t.Run("runs need a player", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/runs", uuid.Nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad limit", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/runs?limit=-1", alice.ID, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("leaderboard resolves handles", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/leaderboard?width=21&height=11", uuid.Nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[LeaderboardResponse](t, w)
		assert.Equal(t, 21, board.width)
		assert.Equal(t, 11, board.height)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, "alice", got.Entries[0].Handle)
		assert.Equal(t, int64(9000), got.Entries[0].BestMs)
		assert.Equal(t, "", got.Entries[1].Handle)
		assert.Equal(t, gone.String(), got.Entries[1].PlayerID)
	})

	t.Run("leaderboard default size", func(t *testing.T) {
		w := do(r, http.MethodGet, "/v1/leaderboard?limit=1", uuid.Nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := decode[LeaderboardResponse](t, w)
		assert.Equal(t, 15, got.Width)
		assert.Len(t, got.Entries, 1)
	})
}
