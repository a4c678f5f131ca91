package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/lesson"
)

// lessonRow is the lessons table shape. Blocks are stored as one JSONB
// document; the block list is an ordered value, not a join table.
type lessonRow struct {
	ID          string         `db:"id"`
	ModuleID    null.String    `db:"module_id"`
	Title       string         `db:"title"`
	Description null.String    `db:"description"`
	Blocks      types.JSONText `db:"blocks"`
	CreatedAt   null.Time      `db:"created_at"`
	UpdatedAt   null.Time      `db:"updated_at"`
}

func (row lessonRow) unpack() (lesson.Lesson, error) {
	les := lesson.Lesson{
		ID:          row.ID,
		ModuleID:    row.ModuleID.String,
		Title:       row.Title,
		Description: row.Description.String,
		Blocks:      []lesson.ContentBlock{},
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
	if len(row.Blocks) > 0 {
		if err := json.Unmarshal(row.Blocks, &les.Blocks); err != nil {
			return lesson.Lesson{}, errors.Wrap(err, "decoding lesson blocks")
		}
	}
	return les, nil
}

func pack(les lesson.Lesson) (lessonRow, error) {
	blocks, err := json.Marshal(les.Blocks)
	if err != nil {
		return lessonRow{}, errors.Wrap(err, "encoding lesson blocks")
	}
	return lessonRow{
		ID:          les.ID,
		ModuleID:    null.NewString(les.ModuleID, les.ModuleID != ""),
		Title:       les.Title,
		Description: null.NewString(les.Description, les.Description != ""),
		Blocks:      blocks,
		CreatedAt:   null.NewTime(les.CreatedAt.UTC(), !les.CreatedAt.IsZero()),
		UpdatedAt:   null.NewTime(les.UpdatedAt.UTC(), !les.UpdatedAt.IsZero()),
	}, nil
}

type lessonRepository struct {
	db *sqlx.DB
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *sqlx.DB) *lessonRepository {
	return &lessonRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to lesson.ErrNotFound
func (repo lessonRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return lesson.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo lessonRepository) CreateLesson(ctx context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	les.ID = uuid.New().String()
	row, err := pack(les)
	if err != nil {
		return lesson.Lesson{}, err
	}

	const q = `
		INSERT INTO lessons (id, module_id, title, description, blocks, created_at, updated_at)
		VALUES (:id, :module_id, :title, :description, :blocks, :created_at, :updated_at)`
	if _, err = repo.db.NamedExecContext(ctx, q, row); err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "inserting lesson")
	}
	return les, nil
}

func (repo lessonRepository) GetLessonByID(ctx context.Context, id string) (lesson.Lesson, error) {
	if _, err := uuid.Parse(id); err != nil {
		return lesson.Lesson{}, lesson.ErrNotFound
	}

	var row lessonRow
	const q = `SELECT * FROM lessons WHERE id = $1`
	if err := repo.db.GetContext(ctx, &row, q, id); err != nil {
		return lesson.Lesson{}, repo.trapNoRowsErr(err, "getting lesson")
	}
	return row.unpack()
}

// orderClause builds the ORDER BY part of a lessons query. Ordering fields get
// interpolated into the statement, so anything lesson.OrderableField does not
// allow is dropped here regardless of what the caller passed in.
func orderClause(ordering []core.DBOrdering) string {
	ords := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		if !lesson.OrderableField(ord.Field) {
			continue
		}
		ords = append(ords, ord.String())
	}
	if len(ords) == 0 {
		return " ORDER BY created_at DESC"
	}
	return " ORDER BY " + strings.Join(ords, ", ")
}

func (repo lessonRepository) QueryLessons(
	ctx context.Context,
	filter lesson.QueryFilter,
	ordering []core.DBOrdering,
) ([]lesson.Lesson, error) {
	q := `SELECT * FROM lessons`
	var conds []string
	var args []interface{}

	if filter.ModuleID != "" {
		args = append(args, filter.ModuleID)
		conds = append(conds, fmt.Sprintf("module_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	q += orderClause(ordering)

	var rows []lessonRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying lessons")
	}

	lessons := make([]lesson.Lesson, 0, len(rows))
	for _, row := range rows {
		les, err := row.unpack()
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, les)
	}
	return lessons, nil
}

func (repo lessonRepository) UpdateLesson(ctx context.Context, les lesson.Lesson) (lesson.Lesson, error) {
	row, err := pack(les)
	if err != nil {
		return lesson.Lesson{}, err
	}

	const q = `
		UPDATE lessons
		SET module_id = :module_id, title = :title, description = :description,
		    blocks = :blocks, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, q, row)
	if err != nil {
		return lesson.Lesson{}, errors.Wrap(err, "updating lesson")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return lesson.Lesson{}, lesson.ErrNotFound
	}
	return les, nil
}

func (repo lessonRepository) DeleteLessonsByID(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In(`DELETE FROM lessons WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "building delete query")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting lessons")
	}
	return nil
}
