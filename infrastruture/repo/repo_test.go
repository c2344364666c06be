package repo

import (
	"context"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestPlayerRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("save", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		pr := NewPlayerRepo(mt.Client, "maze", "players")

		err := pr.Save(context.Background(), &dmn.Player{ID: uuid.New(), Handle: "runner"})
		assert.NoError(mt, err)
	})

	mt.Run("duplicate handle", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))
		pr := NewPlayerRepo(mt.Client, "maze", "players")

		err := pr.Save(context.Background(), &dmn.Player{ID: uuid.New(), Handle: "runner"})
		assert.ErrorIs(mt, err, dmn.ErrHandleConflict)
	})

	mt.Run("by handle", func(mt *mtest.T) {
		id := uuid.New()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "maze.players", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "handle", Value: "runner"},
			{Key: "passwordHash", Value: "hash"},
		}))
		pr := NewPlayerRepo(mt.Client, "maze", "players")

		p, err := pr.ByHandle(context.Background(), "runner")
		require.NoError(mt, err)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, "runner", p.Handle)
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "maze.players", mtest.FirstBatch))
		pr := NewPlayerRepo(mt.Client, "maze", "players")

		_, err := pr.ByID(context.Background(), uuid.New())
		assert.ErrorIs(mt, err, dmn.ErrPlayerNotFound)
	})
}

func TestRunRepo_ByPlayer(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("newest first", func(mt *mtest.T) {
		player := uuid.New()
		newer := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)
		older := newer.Add(-time.Hour)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "maze.runs", mtest.FirstBatch,
				bson.D{{Key: "_id", Value: uuid.New()}, {Key: "playerId", Value: player}, {Key: "moves", Value: 30}, {Key: "finishedAt", Value: newer}},
				bson.D{{Key: "_id", Value: uuid.New()}, {Key: "playerId", Value: player}, {Key: "moves", Value: 42}, {Key: "finishedAt", Value: older}},
			),
			mtest.CreateCursorResponse(0, "maze.runs", mtest.NextBatch),
		)
		rr := NewRunRepo(mt.Client, "maze", "runs")

		runs, err := rr.ByPlayer(context.Background(), player, 5)
		require.NoError(mt, err)
		require.Len(mt, runs, 2)
		assert.Equal(mt, 30, runs[0].Moves)
		assert.True(mt, runs[0].FinishedAt.Equal(newer))
		assert.Equal(mt, player, runs[1].PlayerID)

		cmd := mt.GetStartedEvent().Command
		assert.Equal(mt, "runs", cmd.Lookup("find").StringValue())
		assert.Equal(mt, int64(5), cmd.Lookup("limit").Int64())
		assert.Equal(mt, int32(-1), cmd.Lookup("sort", "finishedAt").Int32())
	})

	mt.Run("empty history", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "maze.runs", mtest.FirstBatch))
		rr := NewRunRepo(mt.Client, "maze", "runs")

		runs, err := rr.ByPlayer(context.Background(), uuid.New(), 5)
		require.NoError(mt, err)
		assert.NotNil(mt, runs)
		assert.Empty(mt, runs)
	})
}
