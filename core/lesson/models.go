package lesson

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/darasahq/darasa/core"
)

var (
	// errors
	ErrNotFound         = errors.New("lesson not found")
	ErrBlockNotFound    = errors.New("content block not found")
	ErrTemplateNotFound = errors.New("block template not found")
	ErrBadBlockIndex    = errors.New("block index out of range")
)

// BlockType determines which renderer and which editor apply to a block.
type BlockType string

const (
	BlockText      BlockType = "text"
	BlockStatement BlockType = "statement"
	BlockQuote     BlockType = "quote"
	BlockImage     BlockType = "image"
	BlockVideo     BlockType = "video"
	BlockAudio     BlockType = "audio"
	BlockYoutube   BlockType = "youtube"
	BlockLink      BlockType = "link"
	BlockPDF       BlockType = "pdf"
	BlockTable     BlockType = "table"
	BlockHeading   BlockType = "heading"
	BlockQA        BlockType = "qa"
)

// BlockTypes lists every supported block type, in catalog order.
var BlockTypes = []BlockType{
	BlockText, BlockStatement, BlockQuote, BlockImage, BlockVideo, BlockAudio,
	BlockYoutube, BlockLink, BlockPDF, BlockTable, BlockHeading, BlockQA,
}

func (t BlockType) Valid() bool {
	for _, bt := range BlockTypes {
		if t == bt {
			return true
		}
	}
	return false
}

// DefaultTitle returns the type-derived block label used when no title is set.
func (t BlockType) DefaultTitle() string {
	switch t {
	case BlockText:
		return "Text"
	case BlockStatement:
		return "Statement"
	case BlockQuote:
		return "Quote"
	case BlockImage:
		return "Image"
	case BlockVideo:
		return "Video"
	case BlockAudio:
		return "Audio"
	case BlockYoutube:
		return "YouTube"
	case BlockLink:
		return "Link"
	case BlockPDF:
		return "PDF"
	case BlockTable:
		return "Table"
	case BlockHeading:
		return "Heading"
	case BlockQA:
		return "Question"
	}
	return "Block"
}

// ContentBlock is the atomic unit of lesson content.
// ID is opaque and stable for the block's lifetime; Order defines display
// sequence and is not re-normalized after deletions.
type ContentBlock struct {
	ID      string    `json:"id"`
	Type    BlockType `json:"type"`
	Title   string    `json:"title,omitempty"`
	Order   int       `json:"order"`
	Content string    `json:"content,omitempty"`

	// HTMLCSS is a fully pre-rendered fragment (with inline styling classes);
	// when present, renderers prefer it over re-deriving markup from Content.
	HTMLCSS string `json:"html_css,omitempty"`

	// type-specific fields
	ImageURL      string `json:"image_url,omitempty"`
	VideoURL      string `json:"video_url,omitempty"`
	Caption       string `json:"caption,omitempty"`
	Example       string `json:"example,omitempty"`
	StatementType string `json:"statement_type,omitempty"`
	Question      string `json:"question,omitempty"`
	Answer        string `json:"answer,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
}

// DisplayTitle returns Title or the type-derived default.
func (b ContentBlock) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	return b.Type.DefaultTitle()
}

// BlockPatch carries the fields an editor may merge into an existing block.
// Nil fields are left untouched; Type never changes after creation.
type BlockPatch struct {
	Title         *string `json:"title,omitempty"`
	Content       *string `json:"content,omitempty"`
	HTMLCSS       *string `json:"html_css,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	VideoURL      *string `json:"video_url,omitempty"`
	Caption       *string `json:"caption,omitempty"`
	Example       *string `json:"example,omitempty"`
	StatementType *string `json:"statement_type,omitempty"`
	Question      *string `json:"question,omitempty"`
	Answer        *string `json:"answer,omitempty"`
	Difficulty    *string `json:"difficulty,omitempty"`
}

func (p BlockPatch) apply(b *ContentBlock) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Content != nil {
		b.Content = *p.Content
	}
	if p.HTMLCSS != nil {
		b.HTMLCSS = *p.HTMLCSS
	}
	if p.ImageURL != nil {
		b.ImageURL = *p.ImageURL
	}
	if p.VideoURL != nil {
		b.VideoURL = *p.VideoURL
	}
	if p.Caption != nil {
		b.Caption = *p.Caption
	}
	if p.Example != nil {
		b.Example = *p.Example
	}
	if p.StatementType != nil {
		b.StatementType = *p.StatementType
	}
	if p.Question != nil {
		b.Question = *p.Question
	}
	if p.Answer != nil {
		b.Answer = *p.Answer
	}
	if p.Difficulty != nil {
		b.Difficulty = *p.Difficulty
	}
}

// Lesson is the persisted authoring unit: metadata plus the ordered block list.
type Lesson struct {
	ID          string         `json:"id"`
	ModuleID    string         `json:"module_id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Blocks      []ContentBlock `json:"blocks"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewLesson contains information needed to create a new Lesson.
type NewLesson struct {
	ModuleID    string `json:"module_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// UpdateLesson defines what information may be provided to modify an existing Lesson.
type UpdateLesson struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type QueryFilter struct {
	ModuleID string `query:"module_id"`
	Search   string `query:"search"`
}

var orderableFields = map[string]bool{
	"title":      true,
	"created_at": true,
	"updated_at": true,
}

// OrderableField reports whether lesson queries can be ordered by the given
// field. Repositories interpolate ordering fields into SQL, so anything not
// listed here must be rejected before it reaches a query.
func OrderableField(field string) bool {
	return orderableFields[field]
}

func (f *QueryFilter) Clean() {
	f.ModuleID = core.CleanString(f.ModuleID)
	f.Search = core.CleanString(f.Search)
}

// NestedContent is the legacy envelope some consumers expect around the block
// list. The flat Lesson.Blocks slice is canonical; this is a read-only
// projection, never written back.
type NestedContent struct {
	Data struct {
		Content []ContentBlock `json:"content"`
	} `json:"data"`
}

// Nested projects the lesson's blocks into the legacy nested shape.
func (l Lesson) Nested() NestedContent {
	var nc NestedContent
	nc.Data.Content = make([]ContentBlock, len(l.Blocks))
	copy(nc.Data.Content, l.Blocks)
	return nc
}

// LessonDocument is the richer, generator-shaped lesson object that the
// converter flattens into an ordered block sequence.
type LessonDocument struct {
	Title   string          `json:"title"`
	Content DocumentContent `json:"content"`
}

type DocumentContent struct {
	Introduction string             `json:"introduction,omitempty"`
	MainContent  []MainContentEntry `json:"mainContent,omitempty"`
	Multimedia   *Multimedia        `json:"multimedia,omitempty"`
	QA           []QAEntry          `json:"qa,omitempty"`
	Summary      string             `json:"summary,omitempty"`
}

type MainContentEntry struct {
	Point       string `json:"point"`
	Description string `json:"description"`
	Example     string `json:"example,omitempty"`
}

type Multimedia struct {
	Image *ImageRef `json:"image,omitempty"`
	Video *VideoRef `json:"video,omitempty"`
}

// ImageRef accepts either an object ({"url": ..., "caption": ...}) or a bare
// URL string, which generators emit interchangeably.
type ImageRef struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.URL = s
		r.Caption = ""
		return nil
	}
	type imageRef ImageRef // drop methods to avoid recursion
	var obj imageRef
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = ImageRef(obj)
	return nil
}

type VideoRef struct {
	URL      string `json:"url,omitempty"`
	Duration string `json:"duration,omitempty"`
}

type QAEntry struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty,omitempty"`
}
