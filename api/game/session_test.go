package gameapi

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	pb "github.com/beka-birhanu/vinom-maze/game/pb_encoder"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playerHeader = "X-Player"

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

// withPlayer stands in for the token middleware.
func withPlayer(c *gin.Context) {
	if h := c.GetHeader(playerHeader); h != "" {
		c.Set(identity.ContextPlayerClaims, i.PlayerClaims{PlayerID: uuid.MustParse(h), Handle: "runner"})
	}
	c.Next()
}

func newSessionServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gsm, err := service.NewGameSessionManager(&service.Config{
		Logger: nopLogger{},
		BoardFactory: func(w, h int) (*maze.Board, error) {
			return maze.New(w, h, maze.WithRand(rand.New(rand.NewSource(1))))
		},
		ControllerOptions: []game.ControllerOption{game.WithMaxStepDelay(1)},
	})
	require.NoError(t, err)
	t.Cleanup(gsm.StopAll)

	sc, err := NewSessionController(gsm, &pb.Protobuf{})
	require.NoError(t, err)

	r := gin.New()
	v1 := r.Group("/v1")
	v1.Use(withPlayer)
	sc.RegisterProtected(v1)
	return r
}

func do(r http.Handler, method, path string, player uuid.UUID, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if player != uuid.Nil {
		req.Header.Set(playerHeader, player.String())
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestSessionController_PlayThrough(t *testing.T) {
	r := newSessionServer(t)
	player := uuid.New()

	w := do(r, http.MethodPost, "/v1/sessions", player, NewSessionRequest{Width: 7, Height: 7})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[StateResponse](t, w)
	assert.Equal(t, 7, created.Width)
	assert.Len(t, created.Cells, 49)
	assert.Equal(t, created.Start, created.Player)
	assert.Equal(t, PositionResponse{X: 5, Y: 0}, created.Goal)
	assert.False(t, created.Started)

	base := "/v1/sessions/" + created.SessionID

	w = do(r, http.MethodGet, base+"/solution", player, nil)
	require.Equal(t, http.StatusOK, w.Code)
	solution := decode[SolutionResponse](t, w)
	require.NotEmpty(t, solution.Directions)
	require.Len(t, solution.Codes, len(solution.Directions))

	var state StateResponse
	for _, d := range solution.Directions {
		w = do(r, http.MethodPost, base+"/moves", player, MoveRequest{Direction: d})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		state = decode[StateResponse](t, w)
	}
	assert.True(t, state.Started)
	assert.True(t, state.Finished)
	assert.Equal(t, len(solution.Directions), state.Moves)
	assert.Equal(t, 0, state.Player.Y)

	w = do(r, http.MethodDelete, base, player, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, base, player, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionController_DefaultSize(t *testing.T) {
	r := newSessionServer(t)

	w := do(r, http.MethodPost, "/v1/sessions", uuid.New(), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	state := decode[StateResponse](t, w)
	assert.Equal(t, 15, state.Width)
	assert.Equal(t, 15, state.Height)
}

func TestSessionController_Protobuf(t *testing.T) {
	r := newSessionServer(t)
	player := uuid.New()

	created := decode[StateResponse](t, do(r, http.MethodPost, "/v1/sessions", player, NewSessionRequest{Width: 9, Height: 5}))

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/"+created.SessionID, nil)
	req.Header.Set(playerHeader, player.String())
	req.Header.Set("Accept", pb.ContentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pb.ContentType, w.Header().Get("Content-Type"))

	state, err := (&pb.Protobuf{}).UnmarshalState(w.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, created.SessionID, state.SessionID.String())
	assert.Equal(t, 9, state.Width)
	assert.Equal(t, 5, state.Height)
	assert.Len(t, state.Cells, 45)
}

func TestSessionController_Errors(t *testing.T) {
	r := newSessionServer(t)
	owner := uuid.New()

	created := decode[StateResponse](t, do(r, http.MethodPost, "/v1/sessions", owner, NewSessionRequest{Width: 7, Height: 7}))
	base := "/v1/sessions/" + created.SessionID

	tests := []struct {
		name   string
		method string
		path   string
		player uuid.UUID
		body   any
		status int
	}{
		{"no claims", http.MethodGet, base, uuid.Nil, nil, http.StatusUnauthorized},
		{"other player", http.MethodGet, base, uuid.New(), nil, http.StatusForbidden},
		{"unknown session", http.MethodGet, "/v1/sessions/" + uuid.NewString(), owner, nil, http.StatusNotFound},
		{"malformed id", http.MethodGet, "/v1/sessions/nope", owner, nil, http.StatusBadRequest},
		{"bad direction", http.MethodPost, base + "/moves", owner, MoveRequest{Direction: "north"}, http.StatusBadRequest},
		{"missing direction", http.MethodPost, base + "/moves", owner, gin.H{}, http.StatusBadRequest},
		{"too small", http.MethodPost, "/v1/sessions", owner, NewSessionRequest{Width: 4, Height: 7}, http.StatusBadRequest},
		{"too large", http.MethodPost, "/v1/sessions", owner, NewSessionRequest{Width: 7, Height: 100}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.player, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestSessionController_AutoSolve(t *testing.T) {
	r := newSessionServer(t)
	player := uuid.New()

	created := decode[StateResponse](t, do(r, http.MethodPost, "/v1/sessions", player, NewSessionRequest{Width: 11, Height: 11}))
	base := "/v1/sessions/" + created.SessionID

	w := do(r, http.MethodPost, base+"/autosolve", player, nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	assert.Eventually(t, func() bool {
		var state StateResponse
		if err := json.Unmarshal(do(r, http.MethodGet, base, player, nil).Body.Bytes(), &state); err != nil {
			return false
		}
		return state.Finished && !state.AutoSolving
	}, 5*time.Second, 10*time.Millisecond)

	w = do(r, http.MethodDelete, base+"/autosolve", player, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, base+"/retry", player, nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[StateResponse](t, w)
	assert.False(t, state.Started)
	assert.False(t, state.Finished)
	assert.Equal(t, 0, state.Moves)
	assert.Equal(t, state.Start, state.Player)
}
