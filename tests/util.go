package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/darasahq/darasa/core/lesson"
)

// CreateLesson saves a lesson directly through the repository, bypassing the
// service layer, for test fixtures.
func CreateLesson(
	t *testing.T,
	repo lesson.Repository,
	moduleID, title string,
	blocks []lesson.ContentBlock,
	createdAt ...time.Time,
) lesson.Lesson {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	if blocks == nil {
		blocks = []lesson.ContentBlock{}
	}
	les, err := repo.CreateLesson(context.Background(), lesson.Lesson{
		ModuleID:  moduleID,
		Title:     title,
		Blocks:    blocks,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return les
}

// TextBlocks builds n simple ordered text blocks with predictable ids
// ("b1".."bn").
func TextBlocks(n int) []lesson.ContentBlock {
	blocks := make([]lesson.ContentBlock, 0, n)
	for i := 1; i <= n; i++ {
		blocks = append(blocks, lesson.ContentBlock{
			ID:      fmt.Sprintf("b%d", i),
			Type:    lesson.BlockText,
			Title:   "Block",
			Order:   i,
			Content: "content",
		})
	}
	return blocks
}
