package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/track"
)

type trackApi struct {
	svc *track.Service
}

func registerTrackAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *track.Service) {
	api := trackApi{svc: svc}

	ag := g.Group("", jwt)
	ag.GET("/modules", api.queryModules)
	ag.POST("/modules/:id/track", api.trackModule)
	ag.POST("/lessons/:id/track", api.trackLesson)
	ag.GET("/attendance", api.attendance)
}

// Handlers

func (api *trackApi) queryModules(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	modules, err := api.svc.Modules(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching user modules")
	}
	if modules == nil {
		modules = []track.Module{}
	}
	return ctx.JSON(http.StatusOK, modules)
}

func (api *trackApi) trackModule(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.AccessModule(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "tracking module access")
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Module access recorded."})
}

func (api *trackApi) trackLesson(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data TrackLessonRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TrackLessonRequest")
	}

	if err := api.svc.AccessLesson(ctx.Request().Context(), claims.Subject, data.ModuleID, ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "Lesson access recorded."})
}

func (api *trackApi) attendance(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	report, err := api.svc.Attendance(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "fetching user attendance")
	}
	return ctx.JSON(http.StatusOK, report)
}

type TrackLessonRequest struct {
	ModuleID string `json:"module_id"`
}
