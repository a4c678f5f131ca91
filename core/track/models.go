package track

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("module not found")

// Module is a course module as reported by the progress collaborator.
type Module struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	LessonCount      int       `json:"lesson_count"`
	CompletedLessons int       `json:"completed_lessons"`
	ProgressPercent  int       `json:"progress_percent"`
	LastAccessedAt   time.Time `json:"last_accessed_at,omitempty"`
}

type AttendanceRecord struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

type AttendanceStatistics struct {
	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	LateDays       int     `json:"late_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// AttendanceReport is the collaborator's attendance read payload.
type AttendanceReport struct {
	Attendance []AttendanceRecord   `json:"attendance"`
	Statistics AttendanceStatistics `json:"statistics"`
}
