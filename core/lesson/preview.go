package lesson

import "math"

// PreviewSession tracks a learner's client-only completion state while
// previewing a lesson. It is reset whenever the preview is reopened and is
// never persisted.
type PreviewSession struct {
	ids       []string
	completed map[string]bool
}

// NewPreviewSession starts a fresh session over the given blocks with an
// empty completion set.
func NewPreviewSession(blocks []ContentBlock) *PreviewSession {
	s := &PreviewSession{
		ids:       make([]string, 0, len(blocks)),
		completed: make(map[string]bool, len(blocks)),
	}
	for _, b := range blocks {
		s.ids = append(s.ids, b.ID)
	}
	return s
}

// MarkComplete adds the block id to the completion set. Idempotent; ids not
// in the session are ignored.
func (s *PreviewSession) MarkComplete(id string) {
	for _, known := range s.ids {
		if known == id {
			s.completed[id] = true
			return
		}
	}
}

func (s *PreviewSession) Completed(id string) bool {
	return s.completed[id]
}

func (s *PreviewSession) CompletedCount() int {
	return len(s.completed)
}

func (s *PreviewSession) TotalCount() int {
	return len(s.ids)
}

// Progress returns the completion percentage rounded to the nearest integer
// and clamped to [0, 100]. An empty session is 0%, never NaN.
func (s *PreviewSession) Progress() int {
	total := len(s.ids)
	if total == 0 {
		return 0
	}
	pct := int(math.Round(float64(len(s.completed)) / float64(total) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
