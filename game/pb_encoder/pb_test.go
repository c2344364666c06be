package pb

import (
	"math/rand"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestProtobuf_State(t *testing.T) {
	b, err := maze.New(9, 7, maze.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	require.True(t, b.MovePlayerUp())

	state := game.Snapshot(uuid.New(), b)
	state.Started = true
	state.AutoSolving = true
	state.Moves = 3
	state.Elapsed = 1500 * time.Millisecond

	enc := &Protobuf{}
	payload, err := enc.MarshalState(state)
	require.NoError(t, err)

	decoded, err := enc.UnmarshalState(payload)
	require.NoError(t, err)
	assert.Equal(t, state, decoded)
}

func TestProtobuf_CellsAreOneBytePerCell(t *testing.T) {
	state := game.State{
		Width:  2,
		Height: 2,
		Cells:  []maze.CellType{maze.Wall, maze.Path, maze.Player, maze.Wall},
	}
	payload, err := (&Protobuf{}).MarshalState(state)
	require.NoError(t, err)

	var cells []byte
	for b := payload; len(b) > 0; {
		num, typ, n := protowire.ConsumeTag(b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
		if num == fieldCells {
			v, n := protowire.ConsumeBytes(b)
			require.GreaterOrEqual(t, n, 0)
			cells = v
		}
		n = protowire.ConsumeFieldValue(num, typ, b)
		require.GreaterOrEqual(t, n, 0)
		b = b[n:]
	}
	assert.Equal(t, []byte{1, 0, 2, 1}, cells)
}

func TestProtobuf_SkipsUnknownFields(t *testing.T) {
	id := uuid.New()
	payload, err := (&Protobuf{}).MarshalState(game.State{SessionID: id, Width: 5})
	require.NoError(t, err)

	payload = protowire.AppendTag(payload, 99, protowire.Fixed32Type)
	payload = protowire.AppendFixed32(payload, 7)

	decoded, err := (&Protobuf{}).UnmarshalState(payload)
	require.NoError(t, err)
	assert.Equal(t, id, decoded.SessionID)
	assert.Equal(t, 5, decoded.Width)
}

func TestProtobuf_Malformed(t *testing.T) {
	enc := &Protobuf{}

	_, err := enc.UnmarshalState([]byte{0x0a, 0x10, 0x01})
	assert.ErrorIs(t, err, ErrMalformedState, "truncated bytes field")

	bad := protowire.AppendTag(nil, fieldSessionID, protowire.BytesType)
	bad = protowire.AppendBytes(bad, []byte{1, 2, 3})
	_, err = enc.UnmarshalState(bad)
	assert.ErrorIs(t, err, ErrMalformedState, "short session id")
}
