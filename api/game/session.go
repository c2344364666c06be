package gameapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/game"
	pb "github.com/beka-birhanu/vinom-maze/game/pb_encoder"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingClaims = errors.New("missing player claims")

// SessionController serves the maze sessions of the signed-in player.
type SessionController struct {
	gameSessionManager i.GameSessionManager
	encoder            game.Encoder
}

// NewSessionController initializes a SessionController. encoder serves
// clients that accept the binary state format.
func NewSessionController(gsm i.GameSessionManager, encoder game.Encoder) (*SessionController, error) {
	if gsm == nil {
		return nil, errors.New("session controller requires a game session manager")
	}
	return &SessionController{
		gameSessionManager: gsm,
		encoder:            encoder,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.newSession)
		sessions.GET("/:ID", sc.state)
		sessions.DELETE("/:ID", sc.close)
		sessions.POST("/:ID/moves", sc.move)
		sessions.GET("/:ID/solution", sc.solution)
		sessions.POST("/:ID/autosolve", sc.autoSolve)
		sessions.DELETE("/:ID/autosolve", sc.cancelAutoSolve)
		sessions.POST("/:ID/retry", sc.retry)
	}
}

func (sc *SessionController) newSession(ctx *gin.Context) {
	claims, ok := identity.Claims(ctx)
	if !ok {
		abortWithError(ctx, errMissingClaims)
		return
	}

	var request NewSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := sc.gameSessionManager.NewSession(ctx.Request.Context(), claims.PlayerID, request.Width, request.Height)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	sc.respondState(ctx, http.StatusCreated, state)
}

func (sc *SessionController) state(ctx *gin.Context) {
	sessionID, playerID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	state, err := sc.gameSessionManager.State(ctx.Request.Context(), sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	sc.respondState(ctx, http.StatusOK, state)
}

func (sc *SessionController) move(ctx *gin.Context) {
	sessionID, playerID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := maze.ParseDirection(request.Direction)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	state, err := sc.gameSessionManager.Move(ctx.Request.Context(), sessionID, playerID, d)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	sc.respondState(ctx, http.StatusOK, state)
}

func (sc *SessionController) solution(ctx *gin.Context) {
	sessionID, playerID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	dirs, err := sc.gameSessionManager.Solution(ctx.Request.Context(), sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toSolutionResponse(dirs))
}

func (sc *SessionController) autoSolve(ctx *gin.Context) {
	sessionID, playerID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	state, err := sc.gameSessionManager.AutoSolve(ctx.Request.Context(), sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	sc.respondState(ctx, http.StatusAccepted, state)
}

func (sc *SessionController) cancelAutoSolve(ctx *gin.Context) {
	sessionID, playerID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	state, err := sc.gameSessionManager.CancelAutoSolve(ctx.Request.Context(), sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	sc.respondState(ctx, http.StatusOK, state)
}

func (sc *SessionController) retry(ctx *gin.Context) {
	sessionID, playerID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	state, err := sc.gameSessionManager.Retry(ctx.Request.Context(), sessionID, playerID)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	sc.respondState(ctx, http.StatusOK, state)
}

func (sc *SessionController) close(ctx *gin.Context) {
	sessionID, playerID, ok := sessionParams(ctx)
	if !ok {
		return
	}

	if err := sc.gameSessionManager.Close(ctx.Request.Context(), sessionID, playerID); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// respondState writes state as protobuf when the client asks for it and as
// JSON otherwise.
func (sc *SessionController) respondState(ctx *gin.Context, status int, state game.State) {
	if sc.encoder != nil && strings.Contains(ctx.GetHeader("Accept"), pb.ContentType) {
		body, err := sc.encoder.MarshalState(state)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding state"})
			return
		}
		ctx.Data(status, pb.ContentType, body)
		return
	}
	ctx.JSON(status, toStateResponse(state))
}

// sessionParams reads the session id from the path and the player id from
// the token. It writes the error response itself.
func sessionParams(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	claims, ok := identity.Claims(ctx)
	if !ok {
		abortWithError(ctx, errMissingClaims)
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, uuid.Nil, false
	}
	return sessionID, claims.PlayerID, true
}

// abortWithError maps service errors to HTTP statuses.
func abortWithError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, errMissingClaims):
		status, msg = http.StatusUnauthorized, err.Error()
	case errors.Is(err, service.ErrSessionNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrSessionNotOwned):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrReplayInFlight):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, maze.ErrInvalidDimensions), errors.Is(err, maze.ErrInvalidDirection):
		status, msg = http.StatusBadRequest, err.Error()
	}
	ctx.AbortWithStatusJSON(status, gin.H{"error": msg})
}
