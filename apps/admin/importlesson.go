package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/lesson"
	logsvc "github.com/darasahq/darasa/services/logger"
	sqlxrepos "github.com/darasahq/darasa/storage/database/sqlx"
)

// importLesson reads a generated lesson document from disk, converts it to
// the unified block sequence and saves it as a new lesson.
func (cli *commandLine) importLesson(moduleID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading lesson document")
	}
	var doc lesson.LessonDocument
	if err = json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "parsing lesson document")
	}

	db, err := cli.openDB()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	svc := lesson.NewService(sqlxrepos.NewLessonRepository(db), logsvc.NewConsoleLogger(logger))
	les, err := svc.Import(context.Background(), moduleID, doc)
	if err != nil {
		return errors.Wrap(err, "importing lesson")
	}

	fmt.Printf("Imported lesson %s (%d blocks)\n", les.ID, len(les.Blocks))
	return nil
}
