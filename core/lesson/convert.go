package lesson

import (
	"fmt"

	"github.com/google/uuid"
)

const defaultIDPrefix = "block"

// Converter normalizes either a generator-shaped LessonDocument or an
// already-flat block list into one ordered sequence of render-ready blocks.
type Converter struct {
	prefix string
}

func NewConverter(prefix ...string) *Converter {
	p := defaultIDPrefix
	if len(prefix) > 0 && prefix[0] != "" {
		p = prefix[0]
	}
	return &Converter{prefix: p}
}

// ConvertDocument flattens a LessonDocument into blocks in the fixed
// pedagogical order: title heading, introduction, main content entries, image,
// video, Q&A entries, summary. Absent sections are skipped without shifting
// the relative order of the rest. Each emitted block gets id
// "{prefix}_{n}" and order = current length + 1 at time of emission.
func (c *Converter) ConvertDocument(doc LessonDocument) []ContentBlock {
	blocks := make([]ContentBlock, 0, 4+len(doc.Content.MainContent)+len(doc.Content.QA))

	emit := func(b ContentBlock) {
		b.ID = fmt.Sprintf("%s_%d", c.prefix, len(blocks)+1)
		b.Order = len(blocks) + 1
		blocks = append(blocks, b)
	}

	if doc.Title != "" {
		emit(ContentBlock{Type: BlockHeading, Title: doc.Title})
	}

	if doc.Content.Introduction != "" {
		emit(ContentBlock{Type: BlockText, Title: "Introduction", Content: doc.Content.Introduction})
	}

	for _, entry := range doc.Content.MainContent {
		emit(ContentBlock{
			Type:    BlockText,
			Title:   entry.Point,
			Content: entry.Description,
			Example: entry.Example,
		})
	}

	if mm := doc.Content.Multimedia; mm != nil {
		if mm.Image != nil && mm.Image.URL != "" {
			caption := mm.Image.Caption
			if caption == "" {
				caption = "Lesson illustration"
			}
			emit(ContentBlock{Type: BlockImage, ImageURL: mm.Image.URL, Caption: caption})
		}
		if mm.Video != nil {
			emit(ContentBlock{
				Type:     BlockVideo,
				VideoURL: mm.Video.URL,
				Content:  fmt.Sprintf("Duration: %s", mm.Video.Duration),
			})
		}
	}

	for i, qa := range doc.Content.QA {
		emit(ContentBlock{
			Type:       BlockQA,
			Title:      fmt.Sprintf("Question %d", i+1),
			Question:   qa.Question,
			Answer:     qa.Answer,
			Difficulty: qa.Difficulty,
		})
	}

	if doc.Content.Summary != "" {
		emit(ContentBlock{Type: BlockText, Title: "Summary", Content: doc.Content.Summary})
	}

	return blocks
}

// NormalizeBlocks passes an authored block list through, backfilling missing
// ids and orders so every block is renderable and addressable.
func (c *Converter) NormalizeBlocks(blocks []ContentBlock) []ContentBlock {
	out := make([]ContentBlock, len(blocks))
	copy(out, blocks)

	var maxOrder int
	for _, b := range out {
		if b.Order > maxOrder {
			maxOrder = b.Order
		}
	}
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.New().String()
		}
		if out[i].Order == 0 {
			maxOrder++
			out[i].Order = maxOrder
		}
	}
	return out
}
