package gameapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	defaultRunsLimit        = 20
	defaultLeaderboardLimit = 10
)

// RecordsController serves run history and leaderboards.
type RecordsController struct {
	runRepo       i.RunRepo
	playerRepo    i.PlayerRepo
	leaderboard   i.Leaderboard
	defaultWidth  int
	defaultHeight int
}

// NewRecordsController initializes a RecordsController. The default size
// is used for leaderboard requests that do not name one.
func NewRecordsController(rr i.RunRepo, pr i.PlayerRepo, lb i.Leaderboard, defaultWidth, defaultHeight int) (*RecordsController, error) {
	if rr == nil || pr == nil || lb == nil {
		return nil, errors.New("records controller requires run, player and leaderboard stores")
	}
	return &RecordsController{
		runRepo:       rr,
		playerRepo:    pr,
		leaderboard:   lb,
		defaultWidth:  defaultWidth,
		defaultHeight: defaultHeight,
	}, nil
}

// RegisterPublic registers public routes.
func (rc *RecordsController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", rc.top)
}

// RegisterProtected registers protected routes.
func (rc *RecordsController) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/runs", rc.runs)
}

// runs lists the recent runs of the signed-in player.
func (rc *RecordsController) runs(ctx *gin.Context) {
	claims, ok := identity.Claims(ctx)
	if !ok {
		abortWithError(ctx, errMissingClaims)
		return
	}

	limit, ok := queryInt(ctx, "limit", defaultRunsLimit)
	if !ok {
		return
	}

	runs, err := rc.runRepo.ByPlayer(ctx.Request.Context(), claims.PlayerID, int64(limit))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading runs"})
		return
	}

	response := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		response = append(response, toRunResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

// top lists the fastest players of a board size.
func (rc *RecordsController) top(ctx *gin.Context) {
	width, ok := queryInt(ctx, "width", rc.defaultWidth)
	if !ok {
		return
	}
	height, ok := queryInt(ctx, "height", rc.defaultHeight)
	if !ok {
		return
	}
	limit, ok := queryInt(ctx, "limit", defaultLeaderboardLimit)
	if !ok {
		return
	}

	entries, err := rc.leaderboard.Top(ctx.Request.Context(), width, height, int64(limit))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	response := &LeaderboardResponse{
		Width:   width,
		Height:  height,
		Entries: make([]LeaderboardEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		// A deleted player keeps their rank without a handle.
		handle := ""
		if p, err := rc.playerRepo.ByID(ctx.Request.Context(), e.PlayerID); err == nil {
			handle = p.Handle
		}
		response.Entries = append(response.Entries, toLeaderboardEntry(e, handle))
	}
	ctx.JSON(http.StatusOK, response)
}

// queryInt reads a positive integer query parameter, writing a 400 on bad input.
func queryInt(ctx *gin.Context, key string, def int) (int, bool) {
	raw, ok := ctx.GetQuery(key)
	if !ok {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return v, true
}
