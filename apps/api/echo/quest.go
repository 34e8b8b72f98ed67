package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classquest/classquest/core/quest"
	"github.com/classquest/classquest/core/user"
)

type questApi struct {
	svc      quest.Service
	usrSvc   user.Service
	validate *validator.Validate
	now      func() time.Time
}

func registerQuestAPI(g *echo.Group, api *questApi) {
	g.GET("", api.list)
	g.POST("", api.create)
	g.POST("/:id/complete", api.complete)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api *questApi) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	board, err := api.svc.List(ctx.Request().Context(), usr.ID, api.now())
	if err != nil {
		return errors.Wrap(err, "listing quests")
	}
	return ctx.JSON(http.StatusOK, board)
}

func (api *questApi) create(ctx echo.Context) error {
	var data quest.NewQuest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	q, err := api.svc.Add(ctx.Request().Context(), usr.ID, data, api.now())
	if err != nil {
		return errors.Wrap(err, "adding quest")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *questApi) complete(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	res, err := api.svc.Complete(ctx.Request().Context(), usr.ID, ctx.Param("id"), api.now())
	if err != nil {
		return errors.Wrap(err, "completing quest")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *questApi) destroy(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if err = api.svc.Delete(ctx.Request().Context(), usr.ID, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting quest")
	}
	return ctx.NoContent(http.StatusNoContent)
}
