package tests

import (
	"context"
	"net/http"
	"testing"

	echoapi "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core/quiz"
)

func mcQuestions() []quiz.Question {
	return []quiz.Question{
		{
			Type:          quiz.TypeMultipleChoice,
			Text:          "What do plants absorb?",
			Options:       []string{"Light", "Sound"},
			CorrectAnswer: 0,
		},
		{
			Type:       quiz.TypeShortAnswer,
			Text:       "Name the green pigment.",
			AnswerText: "Chlorophyll",
		},
	}
}

func Test_quizApi_create(t *testing.T) {
	teacherToken := getToken(t, teacher)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Teacher required", token: getToken(t, student),
			body:     marchallObj(t, quiz.NewQuiz{Title: "Nope"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Title required", token: teacherToken,
			body:     marchallObj(t, quiz.NewQuiz{ModuleID: "m1"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "Invalid questions rejected", token: teacherToken,
			body: marchallObj(t, quiz.NewQuiz{
				Title:     "Photosynthesis check",
				Questions: []quiz.Question{{Type: quiz.TypeMultipleChoice, Options: []string{"A", "B"}}},
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"questions.0": "question 1: question text is required"}),
		},
		{
			name: "Quiz created", token: teacherToken,
			body: marchallObj(t, quiz.NewQuiz{
				ModuleID:         "m1",
				Title:            "Photosynthesis check",
				TimeLimitMinutes: 10,
				Questions:        mcQuestions(),
			}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/quizzes", tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var qz quiz.Quiz
				decodeBody(t, rec, &qz)
				if qz.ID == "" {
					t.Error("created quiz has no id")
				}
				if qz.Title != "Photosynthesis check" || qz.TimeLimitMinutes != 10 || len(qz.Questions) != 2 {
					t.Errorf("created quiz = %+v", qz)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_quizApi_bulkUploadQuestions(t *testing.T) {
	teacherToken := getToken(t, teacher)
	qz, err := quizAPI.CreateQuiz(context.Background(), quiz.NewQuiz{ModuleID: "m1", Title: "Upload target"})
	if err != nil {
		t.Fatalf("seeding quiz: %v", err)
	}

	tests := []httpTest{
		{
			name: "Unknown quiz", path: "/v1/quizzes/ghost/questions/bulk",
			body:     marchallObj(t, echoapi.BulkQuestionsRequest{Questions: mcQuestions()}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "quiz not found"}),
		},
		{
			name: "Invalid questions rejected", path: "/v1/quizzes/" + qz.ID + "/questions/bulk",
			body: marchallObj(t, echoapi.BulkQuestionsRequest{Questions: []quiz.Question{
				{Type: quiz.TypeShortAnswer, Text: "Capital of Kenya?"},
			}}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"questions.0": "question 1: an expected answer is required"}),
		},
		{
			name: "Questions uploaded", path: "/v1/quizzes/" + qz.ID + "/questions/bulk",
			body:     marchallObj(t, echoapi.BulkQuestionsRequest{Questions: mcQuestions()}),
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.BulkQuestionsResponse{Uploaded: 2}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, tt.path, teacherToken, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_quizApi_update(t *testing.T) {
	teacherToken := getToken(t, teacher)
	qz, err := quizAPI.CreateQuiz(context.Background(), quiz.NewQuiz{ModuleID: "m1", Title: "Before"})
	if err != nil {
		t.Fatalf("seeding quiz: %v", err)
	}

	req, rec := newAuthRequest(http.MethodPut, "/v1/quizzes/"+qz.ID, teacherToken,
		marchallObj(t, quiz.UpdateQuiz{Title: "After"}))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v; body %s", rec.Code, rec.Body.String())
	}
	var got quiz.Quiz
	decodeBody(t, rec, &got)
	if got.Title != "After" {
		t.Errorf("updated title = %q, want %q", got.Title, "After")
	}

	req, rec = newAuthRequest(http.MethodPut, "/v1/quizzes/ghost", teacherToken,
		marchallObj(t, quiz.UpdateQuiz{Title: "After"}))
	app.ServeHTTP(rec, req)
	tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "quiz not found"})}
	checkCodeAndData(t, tt, rec)
}
