package dummytrackapi

import (
	"context"
	"sync"
	"time"

	"github.com/darasahq/darasa/core/track"
)

// Service is an in-memory stand-in for the progress/attendance collaborator,
// used in DEV mode and by tests.
type Service struct {
	mutex sync.RWMutex

	modules    map[string][]track.Module // userID -> modules
	attendance map[string]track.AttendanceReport

	// access log: userID -> accessed module/lesson ids, in call order
	ModuleAccesses map[string][]string
	LessonAccesses map[string][]string
}

var _ track.API = (*Service)(nil)

func NewService() *Service {
	return &Service{
		modules:        make(map[string][]track.Module),
		attendance:     make(map[string]track.AttendanceReport),
		ModuleAccesses: make(map[string][]string),
		LessonAccesses: make(map[string][]string),
	}
}

// SeedModules registers modules for a user.
func (svc *Service) SeedModules(userID string, modules ...track.Module) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	svc.modules[userID] = modules
}

// SeedAttendance registers an attendance report for a user.
func (svc *Service) SeedAttendance(userID string, report track.AttendanceReport) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	svc.attendance[userID] = report
}

func (svc *Service) FetchUserModules(_ context.Context, userID string) ([]track.Module, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	modules := svc.modules[userID]
	out := make([]track.Module, len(modules))
	copy(out, modules)
	return out, nil
}

func (svc *Service) TrackModuleAccess(_ context.Context, userID, moduleID string) error {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.ModuleAccesses[userID] = append(svc.ModuleAccesses[userID], moduleID)
	for i, m := range svc.modules[userID] {
		if m.ID == moduleID {
			svc.modules[userID][i].LastAccessedAt = time.Now().UTC()
		}
	}
	return nil
}

func (svc *Service) TrackLessonAccess(_ context.Context, userID, lessonID string) error {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.LessonAccesses[userID] = append(svc.LessonAccesses[userID], lessonID)
	return nil
}

func (svc *Service) UpdateProgress(_ context.Context, userID, moduleID, _ string) error {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	for i, m := range svc.modules[userID] {
		if m.ID != moduleID {
			continue
		}
		m.CompletedLessons++
		if m.CompletedLessons > m.LessonCount {
			m.CompletedLessons = m.LessonCount
		}
		if m.LessonCount > 0 {
			m.ProgressPercent = m.CompletedLessons * 100 / m.LessonCount
		}
		svc.modules[userID][i] = m
	}
	return nil
}

func (svc *Service) GetUserAttendance(_ context.Context, userID string) (track.AttendanceReport, error) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()

	report, ok := svc.attendance[userID]
	if !ok {
		return track.AttendanceReport{Attendance: []track.AttendanceRecord{}}, nil
	}
	return report, nil
}
