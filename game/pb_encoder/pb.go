// Package pb encodes game state in the protobuf wire format.
//
// Messages are written field by field with protowire, so clients can decode
// them with any protobuf runtime using this schema:
//
//	message Pos { int32 x = 1; int32 y = 2; }
//	message GameState {
//	  bytes session_id = 1;
//	  int32 width = 2;
//	  int32 height = 3;
//	  bytes cells = 4; // one byte per cell, row-major
//	  Pos player = 5;
//	  Pos start = 6;
//	  Pos goal = 7;
//	  bool started = 8;
//	  bool finished = 9;
//	  bool auto_solving = 10;
//	  int32 moves = 11;
//	  int64 elapsed_ms = 12;
//	}
package pb

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldSessionID protowire.Number = iota + 1
	fieldWidth
	fieldHeight
	fieldCells
	fieldPlayer
	fieldStart
	fieldGoal
	fieldStarted
	fieldFinished
	fieldAutoSolving
	fieldMoves
	fieldElapsedMs
)

const (
	fieldPosX protowire.Number = 1
	fieldPosY protowire.Number = 2
)

// ContentType is the media type served for protobuf encoded state.
const ContentType = "application/x-protobuf"

var ErrMalformedState = errors.New("malformed game state payload")

var _ game.Encoder = &Protobuf{}

type Protobuf struct{}

// MarshalState implements game.Encoder.
func (p *Protobuf) MarshalState(s game.State) ([]byte, error) {
	cells := make([]byte, len(s.Cells))
	for i, c := range s.Cells {
		cells[i] = byte(c)
	}

	var b []byte
	b = appendBytes(b, fieldSessionID, s.SessionID[:])
	b = appendVarint(b, fieldWidth, uint64(s.Width))
	b = appendVarint(b, fieldHeight, uint64(s.Height))
	b = appendBytes(b, fieldCells, cells)
	b = appendBytes(b, fieldPlayer, marshalPos(s.Player))
	b = appendBytes(b, fieldStart, marshalPos(s.Start))
	b = appendBytes(b, fieldGoal, marshalPos(s.Goal))
	b = appendVarint(b, fieldStarted, protowire.EncodeBool(s.Started))
	b = appendVarint(b, fieldFinished, protowire.EncodeBool(s.Finished))
	b = appendVarint(b, fieldAutoSolving, protowire.EncodeBool(s.AutoSolving))
	b = appendVarint(b, fieldMoves, uint64(s.Moves))
	b = appendVarint(b, fieldElapsedMs, uint64(s.Elapsed.Milliseconds()))
	return b, nil
}

// UnmarshalState implements game.Encoder. Unknown fields are skipped.
func (p *Protobuf) UnmarshalState(b []byte) (game.State, error) {
	var s game.State
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return s, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case typ == protowire.BytesType && isBytesField(num):
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return s, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
			}
			if err := setBytesField(&s, num, v); err != nil {
				return s, err
			}
			b = b[n:]
		case typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return s, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
			}
			setVarintField(&s, num, v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return s, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return s, nil
}

func isBytesField(num protowire.Number) bool {
	switch num {
	case fieldSessionID, fieldCells, fieldPlayer, fieldStart, fieldGoal:
		return true
	}
	return false
}

func setBytesField(s *game.State, num protowire.Number, v []byte) error {
	switch num {
	case fieldSessionID:
		id, err := uuid.FromBytes(v)
		if err != nil {
			return fmt.Errorf("%w: session id: %v", ErrMalformedState, err)
		}
		s.SessionID = id
	case fieldCells:
		s.Cells = make([]maze.CellType, len(v))
		for i, c := range v {
			s.Cells[i] = maze.CellType(c)
		}
	default:
		pos, err := unmarshalPos(v)
		if err != nil {
			return err
		}
		switch num {
		case fieldPlayer:
			s.Player = pos
		case fieldStart:
			s.Start = pos
		case fieldGoal:
			s.Goal = pos
		}
	}
	return nil
}

func setVarintField(s *game.State, num protowire.Number, v uint64) {
	switch num {
	case fieldWidth:
		s.Width = int(v)
	case fieldHeight:
		s.Height = int(v)
	case fieldStarted:
		s.Started = protowire.DecodeBool(v)
	case fieldFinished:
		s.Finished = protowire.DecodeBool(v)
	case fieldAutoSolving:
		s.AutoSolving = protowire.DecodeBool(v)
	case fieldMoves:
		s.Moves = int(v)
	case fieldElapsedMs:
		s.Elapsed = time.Duration(v) * time.Millisecond
	}
}

func marshalPos(p game.Position) []byte {
	var b []byte
	b = appendVarint(b, fieldPosX, uint64(p.X))
	b = appendVarint(b, fieldPosY, uint64(p.Y))
	return b
}

func unmarshalPos(b []byte) (game.Position, error) {
	var p game.Position
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return p, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return p, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return p, fmt.Errorf("%w: %v", ErrMalformedState, protowire.ParseError(n))
		}
		b = b[n:]
		switch num {
		case fieldPosX:
			p.X = int(v)
		case fieldPosY:
			p.Y = int(v)
		}
	}
	return p, nil
}

// proto3 scalars: zero values are not written.
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}
