package quiz

import (
	"context"
	"sync"

	"github.com/darasahq/darasa/core"
)

type (
	// API is the external quiz persistence collaborator. Calls are single
	// attempt; retrying is the caller's decision.
	API interface {
		CreateQuiz(ctx context.Context, nq NewQuiz) (Quiz, error)
		BulkUploadQuestions(ctx context.Context, quizID string, questions []Question) (int, error)
		UpdateQuiz(ctx context.Context, id string, patch UpdateQuiz) (Quiz, error)
	}

	Service struct {
		api API
		log core.Logger

		mutex    sync.Mutex
		inFlight map[string]bool
	}
)

func NewService(api API, log core.Logger) *Service {
	return &Service{
		api:      api,
		log:      log,
		inFlight: make(map[string]bool),
	}
}

func (svc *Service) Create(ctx context.Context, nq NewQuiz) (Quiz, error) {
	return svc.api.CreateQuiz(ctx, nq)
}

// BulkUpload pushes questions to an existing quiz. Concurrent submissions for
// the same quiz are rejected with ErrSubmissionInFlight, mirroring the
// submit-button guard in the authoring UI.
func (svc *Service) BulkUpload(ctx context.Context, quizID string, questions []Question) (int, error) {
	if problems := ValidateQuestions(questions); len(problems) > 0 {
		return 0, questionsError(problems)
	}

	svc.mutex.Lock()
	if svc.inFlight[quizID] {
		svc.mutex.Unlock()
		return 0, ErrSubmissionInFlight
	}
	svc.inFlight[quizID] = true
	svc.mutex.Unlock()

	defer func() {
		svc.mutex.Lock()
		delete(svc.inFlight, quizID)
		svc.mutex.Unlock()
	}()

	return svc.api.BulkUploadQuestions(ctx, quizID, questions)
}

func (svc *Service) Update(ctx context.Context, id string, patch UpdateQuiz) (Quiz, error) {
	return svc.api.UpdateQuiz(ctx, id, patch)
}
