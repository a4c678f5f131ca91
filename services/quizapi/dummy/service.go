package dummyquizapi

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core/quiz"
)

// Service is an in-memory stand-in for the quiz collaborator, used in DEV
// mode and by tests.
type Service struct {
	mutex   sync.RWMutex
	quizzes map[string]*quiz.Quiz
}

var _ quiz.API = (*Service)(nil)

func NewService() *Service {
	return &Service{quizzes: make(map[string]*quiz.Quiz)}
}

func (svc *Service) CreateQuiz(_ context.Context, nq quiz.NewQuiz) (quiz.Quiz, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	q := quiz.Quiz{
		ID:               uuid.New().String(),
		ModuleID:         nq.ModuleID,
		Title:            nq.Title,
		Description:      nq.Description,
		TimeLimitMinutes: nq.TimeLimitMinutes,
		Questions:        nq.Questions,
		CreatedAt:        time.Now().UTC(),
	}
	svc.quizzes[q.ID] = &q
	return q, nil
}

func (svc *Service) BulkUploadQuestions(_ context.Context, quizID string, questions []quiz.Question) (int, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	q, ok := svc.quizzes[quizID]
	if !ok {
		return 0, quiz.ErrNotFound
	}
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.New().String()
		}
	}
	q.Questions = append(q.Questions, questions...)
	return len(questions), nil
}

func (svc *Service) UpdateQuiz(_ context.Context, id string, patch quiz.UpdateQuiz) (quiz.Quiz, error) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	q, ok := svc.quizzes[id]
	if !ok {
		return quiz.Quiz{}, quiz.ErrNotFound
	}
	if patch.Title != "" {
		q.Title = patch.Title
	}
	if patch.Description != "" {
		q.Description = patch.Description
	}
	if patch.TimeLimitMinutes != nil {
		q.TimeLimitMinutes = *patch.TimeLimitMinutes
	}
	return *q, nil
}
