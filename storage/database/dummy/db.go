package dummydb

import (
	"sync"

	"github.com/darasahq/darasa/core/lesson"
)

type (
	DB struct {
		lesson *lessonTable
	}

	lessonTable struct {
		sync.RWMutex
		table map[string]*lesson.Lesson
	}
)

func Open() (*DB, error) {
	db := &DB{
		lesson: &lessonTable{table: make(map[string]*lesson.Lesson)},
	}
	return db, nil
}
