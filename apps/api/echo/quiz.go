package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/quiz"
)

type quizApi struct {
	svc        *quiz.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerQuizAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *quiz.Service,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := quizApi{
		svc:        svc,
		validate:   validate,
		translator: translator,
	}

	qg := g.Group("/quizzes", jwt, teacherMiddleware())
	qg.POST("", api.create)
	qg.PUT("/:id", api.update)
	qg.POST("/:id/questions/bulk", api.bulkUploadQuestions)
}

// Handlers

func (api *quizApi) create(ctx echo.Context) error {
	var data quiz.NewQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuiz")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	qz, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating quiz")
	}
	return ctx.JSON(http.StatusCreated, qz)
}

func (api *quizApi) update(ctx echo.Context) error {
	var data quiz.UpdateQuiz
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuiz")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	qz, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating quiz")
	}
	return ctx.JSON(http.StatusOK, qz)
}

func (api *quizApi) bulkUploadQuestions(ctx echo.Context) error {
	var data BulkQuestionsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to BulkQuestionsRequest")
	}

	uploaded, err := api.svc.BulkUpload(ctx.Request().Context(), ctx.Param("id"), data.Questions)
	if err != nil {
		return errors.Wrap(err, "uploading questions")
	}
	return ctx.JSON(http.StatusOK, BulkQuestionsResponse{Uploaded: uploaded})
}

type (
	BulkQuestionsRequest struct {
		Questions []quiz.Question `json:"questions"`
	}

	BulkQuestionsResponse struct {
		Uploaded int `json:"uploaded"`
	}
)
