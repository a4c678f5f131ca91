package lesson

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core"
)

type (
	Repository interface {
		CreateLesson(ctx context.Context, les Lesson) (Lesson, error)
		GetLessonByID(ctx context.Context, id string) (Lesson, error)
		// QueryLessons applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Lesson.Title or Lesson.Description.
		QueryLessons(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Lesson, error)
		UpdateLesson(ctx context.Context, les Lesson) (Lesson, error)
		DeleteLessonsByID(ctx context.Context, ids ...string) error
	}

	Service struct {
		repo Repository
		log  core.Logger
		conv *Converter
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		conv: NewConverter(),
	}
}

func (svc *Service) Create(ctx context.Context, nl NewLesson) (Lesson, error) {
	now := time.Now().UTC()
	les := Lesson{
		ModuleID:    nl.ModuleID,
		Title:       nl.Title,
		Description: nl.Description,
		Blocks:      []ContentBlock{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateLesson(ctx, les)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Lesson, error) {
	return svc.repo.GetLessonByID(ctx, id)
}

func (svc *Service) Query(ctx context.Context, filter QueryFilter, ordering []core.DBOrdering) ([]Lesson, error) {
	return svc.repo.QueryLessons(ctx, filter, ordering)
}

func (svc *Service) Update(ctx context.Context, id string, ul UpdateLesson) (Lesson, error) {
	les, err := svc.repo.GetLessonByID(ctx, id)
	if err != nil {
		return Lesson{}, err
	}
	if ul.Title != "" {
		les.Title = ul.Title
	}
	if ul.Description != "" {
		les.Description = ul.Description
	}
	les.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLesson(ctx, les)
}

func (svc *Service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteLessonsByID(ctx, ids...)
}

// Templates returns the static block template catalog.
func (svc *Service) Templates() []Template {
	return Templates()
}

// AddBlock creates a block from the given template and appends it to the
// lesson's block list.
func (svc *Service) AddBlock(ctx context.Context, lessonID, templateID string, opts NewBlockOptions) (ContentBlock, error) {
	tmpl, err := TemplateByID(templateID)
	if err != nil {
		svc.log.Warn("block template not found", map[string]interface{}{"template_id": templateID})
		return ContentBlock{}, err
	}

	les, err := svc.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return ContentBlock{}, err
	}

	store := NewStore(les.Blocks...)
	block := store.Append(NewBlock(tmpl, store.MaxOrder(), opts))

	les.Blocks = store.Blocks()
	les.UpdatedAt = time.Now().UTC()
	if _, err = svc.repo.UpdateLesson(ctx, les); err != nil {
		return ContentBlock{}, errors.Wrap(err, "saving lesson blocks")
	}
	return block, nil
}

// UpdateBlock merges patch fields into the matching block.
// Returns ErrBlockNotFound when the id is absent; the lesson is untouched.
func (svc *Service) UpdateBlock(ctx context.Context, lessonID, blockID string, patch BlockPatch) (ContentBlock, error) {
	les, err := svc.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return ContentBlock{}, err
	}

	store := NewStore(les.Blocks...)
	block, err := store.UpdateByID(blockID, patch)
	if err != nil {
		return ContentBlock{}, err
	}

	les.Blocks = store.Blocks()
	les.UpdatedAt = time.Now().UTC()
	if _, err = svc.repo.UpdateLesson(ctx, les); err != nil {
		return ContentBlock{}, errors.Wrap(err, "saving lesson blocks")
	}
	return block, nil
}

// RemoveBlock drops the matching block; remaining orders are left as-is.
func (svc *Service) RemoveBlock(ctx context.Context, lessonID, blockID string) error {
	les, err := svc.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return err
	}

	store := NewStore(les.Blocks...)
	if err = store.RemoveByID(blockID); err != nil {
		return err
	}

	les.Blocks = store.Blocks()
	les.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateLesson(ctx, les)
	return errors.Wrap(err, "saving lesson blocks")
}

// MoveBlock moves a block to newIndex and renumbers the whole list.
func (svc *Service) MoveBlock(ctx context.Context, lessonID, blockID string, newIndex int) (Lesson, error) {
	les, err := svc.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return Lesson{}, err
	}

	store := NewStore(les.Blocks...)
	if err = store.Reorder(blockID, newIndex); err != nil {
		return Lesson{}, err
	}

	les.Blocks = store.Blocks()
	les.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLesson(ctx, les)
}

// Convert flattens a generated LessonDocument into the unified block sequence
// without persisting anything.
func (svc *Service) Convert(doc LessonDocument) []ContentBlock {
	return svc.conv.ConvertDocument(doc)
}

// Import converts a generated LessonDocument and saves it as a new lesson.
func (svc *Service) Import(ctx context.Context, moduleID string, doc LessonDocument) (Lesson, error) {
	title := doc.Title
	if title == "" {
		title = "Untitled Lesson"
	}
	now := time.Now().UTC()
	les := Lesson{
		ModuleID:    moduleID,
		Title:       title,
		Description: doc.Content.Introduction,
		Blocks:      svc.conv.ConvertDocument(doc),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateLesson(ctx, les)
}

// Preview renders the lesson's blocks with the given theme.
func (svc *Service) Preview(ctx context.Context, lessonID, themeName string) ([]RenderedBlock, error) {
	les, err := svc.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer(themeName)
	if err != nil {
		return nil, err
	}
	return renderer.RenderAll(svc.conv.NormalizeBlocks(les.Blocks))
}

// ProgressReport summarizes a preview session's completion state.
type ProgressReport struct {
	CompletedCount int `json:"completed_count"`
	TotalCount     int `json:"total_count"`
	Percent        int `json:"percent"`
}

// Progress computes the completion report for a set of completed block ids
// against the lesson's current blocks. Unknown ids are ignored.
func (svc *Service) Progress(ctx context.Context, lessonID string, completedIDs []string) (ProgressReport, error) {
	les, err := svc.repo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return ProgressReport{}, err
	}

	session := NewPreviewSession(les.Blocks)
	for _, id := range completedIDs {
		session.MarkComplete(id)
	}
	return ProgressReport{
		CompletedCount: session.CompletedCount(),
		TotalCount:     session.TotalCount(),
		Percent:        session.Progress(),
	}, nil
}
