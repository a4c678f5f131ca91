package quiz

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
)

// ValidateQuestions collects every problem with the given questions as
// human-readable messages. An empty slice means all questions are valid.
func ValidateQuestions(questions []Question) []string {
	var problems []string
	add := func(i int, msg string) {
		problems = append(problems, fmt.Sprintf("question %d: %s", i+1, msg))
	}

	for i, q := range questions {
		if core.CleanString(q.Text) == "" {
			add(i, "question text is required")
		}
		if !q.Type.Valid() {
			add(i, fmt.Sprintf("unknown question type %q", q.Type))
			continue
		}
		switch q.Type {
		case TypeMultipleChoice:
			if len(q.Options) < 2 {
				add(i, "at least 2 options are required")
			}
			for j, opt := range q.Options {
				if core.CleanString(opt) == "" {
					add(i, fmt.Sprintf("option %d is empty", j+1))
				}
			}
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				add(i, "correct answer must point to one of the options")
			}
		case TypeTrueFalse:
			if len(q.Options) != 2 {
				add(i, "true/false questions must have exactly 2 options")
			}
			if q.CorrectAnswer < 0 || q.CorrectAnswer > 1 {
				add(i, "correct answer must be 0 or 1")
			}
		case TypeShortAnswer:
			if core.CleanString(q.AnswerText) == "" {
				add(i, "an expected answer is required")
			}
		}
	}
	return problems
}

func (nq *NewQuiz) Validate(validate *validator.Validate) error {
	nq.Title = core.CleanString(nq.Title)
	nq.Description = core.CleanString(nq.Description)
	nq.ModuleID = core.CleanString(nq.ModuleID)

	if err := validate.Struct(nq); err != nil {
		return err
	}
	return questionsError(ValidateQuestions(nq.Questions))
}

func (uq *UpdateQuiz) Validate(validate *validator.Validate) error {
	uq.Title = core.CleanString(uq.Title)
	uq.Description = core.CleanString(uq.Description)
	return validate.Struct(uq)
}

// questionsError folds validation messages into a core.ValidationError so the
// API layer renders them inline and blocks the submission.
func questionsError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	// one field entry per problem; messages already name the question number
	flds := make([]core.FieldError, 0, len(problems))
	for i, p := range problems {
		flds = append(flds, core.FieldError{Field: fmt.Sprintf("questions.%d", i), Error: p})
	}
	return core.NewValidationError(nil, flds...)
}
