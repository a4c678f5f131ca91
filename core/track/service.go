package track

import (
	"context"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

type (
	// API is the progress/attendance collaborator. Single attempt per call,
	// no automatic retries.
	API interface {
		FetchUserModules(ctx context.Context, userID string) ([]Module, error)
		TrackModuleAccess(ctx context.Context, userID, moduleID string) error
		TrackLessonAccess(ctx context.Context, userID, lessonID string) error
		UpdateProgress(ctx context.Context, userID, moduleID, lessonID string) error
		GetUserAttendance(ctx context.Context, userID string) (AttendanceReport, error)
	}

	Service struct {
		api API
		log core.Logger
	}
)

func NewService(api API, log core.Logger) *Service {
	return &Service{api: api, log: log}
}

func (svc *Service) Modules(ctx context.Context, userID string) ([]Module, error) {
	return svc.api.FetchUserModules(ctx, userID)
}

// AccessModule records that the user opened a module.
func (svc *Service) AccessModule(ctx context.Context, userID, moduleID string) error {
	return svc.api.TrackModuleAccess(ctx, userID, moduleID)
}

// AccessLesson records that the user opened a lesson, then refreshes the
// module's aggregate progress. Tracking must succeed before the progress
// update is attempted.
func (svc *Service) AccessLesson(ctx context.Context, userID, moduleID, lessonID string) error {
	if err := svc.api.TrackLessonAccess(ctx, userID, lessonID); err != nil {
		return errors.Wrap(err, "tracking lesson access")
	}
	if err := svc.api.UpdateProgress(ctx, userID, moduleID, lessonID); err != nil {
		return errors.Wrap(err, "updating progress after tracking")
	}
	return nil
}

func (svc *Service) Attendance(ctx context.Context, userID string) (AttendanceReport, error) {
	return svc.api.GetUserAttendance(ctx, userID)
}
