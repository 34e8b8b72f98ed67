package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/assessment"
	"github.com/classquest/classquest/core/user"
)

type assessmentApi struct {
	svc      assessment.Service
	usrSvc   user.Service
	validate *validator.Validate
	logger   core.Logger
	now      func() time.Time
}

func registerAssessmentAPI(g *echo.Group, api *assessmentApi) {
	mg := g.Group("/sections/:section/materials/:material")
	mg.GET("/test", api.present)
	mg.POST("/submit", api.submit)
	mg.GET("/performance", api.performance)
}

// Handlers

func (api *assessmentApi) present(ctx echo.Context) error {
	questions, err := api.svc.Present(ctx.Request().Context(), scopeOf(ctx))
	if err != nil {
		return errors.Wrap(err, "presenting questions")
	}
	return ctx.JSON(http.StatusOK, PresentationResponse{Questions: questions})
}

func (api *assessmentApi) submit(ctx echo.Context) error {
	var data SubmitRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubmitRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	att, err := api.svc.Submit(ctx.Request().Context(), usr.ID, scopeOf(ctx), data.answers())
	if err != nil {
		return errors.Wrap(err, "submitting answers")
	}

	// the attempt is recorded: a streak failure must not fail the submission
	if _, err = api.usrSvc.RecordActivity(ctx.Request().Context(), usr.ID, api.now()); err != nil {
		api.logger.Error("recording activity", errors.Wrap(err, "recording activity"), usr)
	}

	return ctx.JSON(http.StatusOK, assessment.Result{Score: att.Score, Answers: att.Answers})
}

func (api *assessmentApi) performance(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	analysis, err := api.svc.Analyze(ctx.Request().Context(), usr.ID, ctx.Param("material"))
	if err != nil {
		return errors.Wrap(err, "analyzing performance")
	}
	return ctx.JSON(http.StatusOK, analysis)
}
