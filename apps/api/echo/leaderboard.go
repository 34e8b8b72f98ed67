package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classquest/classquest/core/leaderboard"
)

type leaderboardApi struct {
	svc leaderboard.Service
}

func registerLeaderboardAPI(g *echo.Group, api *leaderboardApi) {
	g.GET("/leaderboard", api.retrieve)
}

func (api *leaderboardApi) retrieve(ctx echo.Context) error {
	entries, err := api.svc.Leaderboard(ctx.Request().Context(), ctx.Param("classroom"))
	if err != nil {
		return errors.Wrap(err, "ranking classroom")
	}
	return ctx.JSON(http.StatusOK, LeaderboardResponse{Leaderboard: entries})
}
