package echoapi

import (
	"net/http"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/lesson"
)

type lessonApi struct {
	svc        *lesson.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerLessonAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *lesson.Service,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := lessonApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	lg := g.Group("/lessons", jwt)
	lg.GET("", api.query)
	lg.POST("", api.create, teacherMiddleware())
	lg.DELETE("", api.destroyMany, adminMiddleware())
	lg.GET("/templates", api.queryTemplates)
	lg.POST("/convert", api.convert, teacherMiddleware())

	// detail endpoints
	dg := lg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, teacherMiddleware())
	dg.DELETE("", api.destroy, teacherMiddleware())
	dg.GET("/preview", api.preview)
	dg.POST("/preview/progress", api.previewProgress)

	// block endpoints
	bg := dg.Group("/blocks", teacherMiddleware())
	bg.POST("", api.addBlock)
	bg.PUT("/:blockID", api.updateBlock)
	bg.DELETE("/:blockID", api.removeBlock)
	bg.POST("/:blockID/move", api.moveBlock)
}

// Handlers

func (api *lessonApi) create(ctx echo.Context) error {
	var data lesson.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	les, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, les)
}

func (api *lessonApi) query(ctx echo.Context) error {
	filter := new(lesson.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()
	ordering := new(Ordering)
	if err := ordering.Bind(ctx, lesson.OrderableField); err != nil {
		return err
	}

	lessons, err := api.svc.Query(ctx.Request().Context(), *filter, ordering.Orderings)
	if err != nil {
		return errors.Wrap(err, "querying lessons")
	}
	if lessons == nil {
		lessons = []lesson.Lesson{}
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *lessonApi) retrieve(ctx echo.Context) error {
	les, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding lesson by ID")
	}
	// legacy consumers expect the nested envelope
	if nested, _ := strconv.ParseBool(ctx.QueryParam("nested")); nested {
		return ctx.JSON(http.StatusOK, les.Nested())
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *lessonApi) update(ctx echo.Context) error {
	var data lesson.UpdateLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLesson")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	les, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating lesson")
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *lessonApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lesson")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// destroyMany is an admin cleanup endpoint; lesson ids come comma-separated
// in the "ids" query parameter.
func (api *lessonApi) destroyMany(ctx echo.Context) error {
	raw := core.CleanString(ctx.QueryParam("ids"))
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "no lesson ids given")
	}

	if err := api.svc.Delete(ctx.Request().Context(), strings.Split(raw, ",")...); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *lessonApi) queryTemplates(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Templates())
}

func (api *lessonApi) addBlock(ctx echo.Context) error {
	var data NewBlockRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBlockRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	block, err := api.svc.AddBlock(ctx.Request().Context(), ctx.Param("id"), data.TemplateID, lesson.NewBlockOptions{
		SubType: data.SubType,
		Title:   data.Title,
		Content: data.Content,
	})
	if err != nil {
		return errors.Wrap(err, "adding block")
	}
	return ctx.JSON(http.StatusCreated, block)
}

func (api *lessonApi) updateBlock(ctx echo.Context) error {
	var patch lesson.BlockPatch
	if err := ctx.Bind(&patch); err != nil {
		return errors.Wrap(err, "binding to BlockPatch")
	}

	block, err := api.svc.UpdateBlock(ctx.Request().Context(), ctx.Param("id"), ctx.Param("blockID"), patch)
	if err != nil {
		return errors.Wrap(err, "updating block")
	}
	return ctx.JSON(http.StatusOK, block)
}

func (api *lessonApi) removeBlock(ctx echo.Context) error {
	if err := api.svc.RemoveBlock(ctx.Request().Context(), ctx.Param("id"), ctx.Param("blockID")); err != nil {
		return errors.Wrap(err, "removing block")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *lessonApi) moveBlock(ctx echo.Context) error {
	var data MoveBlockRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MoveBlockRequest")
	}

	les, err := api.svc.MoveBlock(ctx.Request().Context(), ctx.Param("id"), ctx.Param("blockID"), data.NewIndex)
	if err != nil {
		return errors.Wrap(err, "moving block")
	}
	return ctx.JSON(http.StatusOK, les)
}

func (api *lessonApi) convert(ctx echo.Context) error {
	var data ConvertRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ConvertRequest")
	}

	if data.ModuleID != "" {
		les, err := api.svc.Import(ctx.Request().Context(), data.ModuleID, data.Document)
		if err != nil {
			return errors.Wrap(err, "importing lesson document")
		}
		return ctx.JSON(http.StatusCreated, les)
	}
	return ctx.JSON(http.StatusOK, api.svc.Convert(data.Document))
}

func (api *lessonApi) preview(ctx echo.Context) error {
	rendered, err := api.svc.Preview(ctx.Request().Context(), ctx.Param("id"), ctx.QueryParam("theme"))
	if err != nil {
		return errors.Wrap(err, "rendering preview")
	}
	if rendered == nil {
		rendered = []lesson.RenderedBlock{}
	}
	return ctx.JSON(http.StatusOK, rendered)
}

func (api *lessonApi) previewProgress(ctx echo.Context) error {
	var data ProgressRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ProgressRequest")
	}

	report, err := api.svc.Progress(ctx.Request().Context(), ctx.Param("id"), data.CompletedIDs)
	if err != nil {
		return errors.Wrap(err, "computing preview progress")
	}
	return ctx.JSON(http.StatusOK, report)
}

type (
	NewBlockRequest struct {
		TemplateID string `json:"template_id" validate:"required"`
		SubType    string `json:"sub_type"`
		Title      string `json:"title"`
		Content    string `json:"content"`
	}

	MoveBlockRequest struct {
		NewIndex int `json:"new_index"`
	}

	ConvertRequest struct {
		// ModuleID, when set, persists the converted document as a new lesson.
		ModuleID string                `json:"module_id"`
		Document lesson.LessonDocument `json:"document"`
	}

	ProgressRequest struct {
		CompletedIDs []string `json:"completed_ids"`
	}
)

func (nb *NewBlockRequest) Validate(validate *validator.Validate) error {
	nb.TemplateID = core.CleanString(nb.TemplateID, true /* lower */)
	nb.SubType = core.CleanString(nb.SubType, true /* lower */)
	return validate.Struct(nb)
}
