package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/lesson"
)

type lessonRepository struct {
	db *lessonTable
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *DB) lesson.Repository {
	return &lessonRepository{db: db.lesson}
}

func (repo *lessonRepository) query() []lesson.Lesson {
	lessons := make([]lesson.Lesson, 0, len(repo.db.table))
	for _, les := range repo.db.table {
		lessons = append(lessons, *les)
	}
	return lessons
}

func (repo *lessonRepository) CreateLesson(_ context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	les.ID = uuid.New().String()
	repo.db.table[les.ID] = &les
	return les, nil
}

func (repo *lessonRepository) GetLessonByID(_ context.Context, id string) (lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if les, ok := repo.db.table[id]; ok {
		return *les, nil
	}
	return lesson.Lesson{}, lesson.ErrNotFound
}

func (repo *lessonRepository) QueryLessons(
	_ context.Context,
	filter lesson.QueryFilter,
	ordering []core.DBOrdering,
) ([]lesson.Lesson, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var lessons []lesson.Lesson
	search := strings.ToLower(filter.Search)
	for _, les := range repo.query() {
		if filter.ModuleID != "" && les.ModuleID != filter.ModuleID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(les.Title), search) &&
			!strings.Contains(strings.ToLower(les.Description), search) {
			continue
		}
		lessons = append(lessons, les)
	}

	sortLessons(lessons, ordering)
	return lessons, nil
}

func sortLessons(lessons []lesson.Lesson, ordering []core.DBOrdering) {
	less := func(a, b lesson.Lesson) bool { return a.CreatedAt.After(b.CreatedAt) } // default: newest first
	if len(ordering) > 0 {
		ord := ordering[0]
		switch ord.Field {
		case "title":
			less = func(a, b lesson.Lesson) bool {
				if ord.Ascending {
					return a.Title < b.Title
				}
				return a.Title > b.Title
			}
		case "created_at":
			less = func(a, b lesson.Lesson) bool {
				if ord.Ascending {
					return a.CreatedAt.Before(b.CreatedAt)
				}
				return a.CreatedAt.After(b.CreatedAt)
			}
		case "updated_at":
			less = func(a, b lesson.Lesson) bool {
				if ord.Ascending {
					return a.UpdatedAt.Before(b.UpdatedAt)
				}
				return a.UpdatedAt.After(b.UpdatedAt)
			}
		}
	}
	sort.SliceStable(lessons, func(i, j int) bool { return less(lessons[i], lessons[j]) })
}

func (repo *lessonRepository) UpdateLesson(_ context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[les.ID]; !ok {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	repo.db.table[les.ID] = &les
	return les, nil
}

func (repo *lessonRepository) DeleteLessonsByID(_ context.Context, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
