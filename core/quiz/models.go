package quiz

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound           = errors.New("quiz not found")
	ErrSubmissionInFlight = errors.New("a submission for this quiz is already in progress")
)

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeShortAnswer    QuestionType = "short_answer"
)

var QuestionTypes = []QuestionType{TypeMultipleChoice, TypeTrueFalse, TypeShortAnswer}

func (t QuestionType) Valid() bool {
	for _, qt := range QuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

// Question is a single quiz question. CorrectAnswer is a 0-based index into
// Options for choice types; AnswerText holds the expected short answer.
type Question struct {
	ID            string       `json:"id,omitempty"`
	Type          QuestionType `json:"type"`
	Text          string       `json:"text"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer int          `json:"correct_answer"`
	AnswerText    string       `json:"answer_text,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	Difficulty    string       `json:"difficulty,omitempty"`
	Points        int          `json:"points,omitempty"`
}

// SetType changes the question's type. The transition is destructive: options
// and answer fields are reset because they are not portable across types.
func (q *Question) SetType(t QuestionType) {
	if q.Type == t {
		return
	}
	q.Type = t
	q.Options = nil
	q.CorrectAnswer = 0
	q.AnswerText = ""
	if t == TypeTrueFalse {
		q.Options = []string{"True", "False"}
	}
}

// Quiz is the persisted quiz record, owned by the external quiz service.
type Quiz struct {
	ID               string     `json:"id"`
	ModuleID         string     `json:"module_id,omitempty"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	TimeLimitMinutes int        `json:"time_limit_minutes,omitempty"`
	Questions        []Question `json:"questions,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewQuiz contains information needed to create a new Quiz.
type NewQuiz struct {
	ModuleID         string     `json:"module_id"`
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description"`
	TimeLimitMinutes int        `json:"time_limit_minutes" validate:"omitempty,min=1"`
	Questions        []Question `json:"questions"`
}

// UpdateQuiz defines what information may be provided to modify an existing Quiz.
type UpdateQuiz struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	TimeLimitMinutes *int   `json:"time_limit_minutes"`
}
