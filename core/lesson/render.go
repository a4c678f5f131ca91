package lesson

import (
	"bytes"
	"embed"
	"fmt"
	htmltmpl "html/template"
	"log"
	"sync"

	"github.com/pkg/errors"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var (
	blockTemplates *htmltmpl.Template
	tmplInit       sync.Once
)

func parseTemplates() {
	tmpl, err := htmltmpl.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		// templates are embedded; a parse failure is a build defect
		log.Fatalf("lesson.parseTemplates: %v", err)
	}
	blockTemplates = tmpl
}

// template file per block type; every type must have an entry so the dispatch
// stays exhaustive.
var renderDispatch = map[BlockType]string{
	BlockHeading:   "heading.gohtml",
	BlockText:      "text.gohtml",
	BlockStatement: "statement.gohtml",
	BlockQuote:     "quote.gohtml",
	BlockImage:     "image.gohtml",
	BlockVideo:     "video.gohtml",
	BlockAudio:     "audio.gohtml",
	BlockYoutube:   "youtube.gohtml",
	BlockLink:      "link.gohtml",
	BlockPDF:       "pdf.gohtml",
	BlockTable:     "table.gohtml",
	BlockQA:        "qa.gohtml",
}

// RenderedBlock is one themed, render-ready block fragment.
type RenderedBlock struct {
	ID    string        `json:"id"`
	Type  BlockType     `json:"type"`
	Order int           `json:"order"`
	HTML  htmltmpl.HTML `json:"html"`
}

// blockContext is the data handed to the block templates. Gradient and
// BadgeColor are template.CSS so style attributes keep their values.
type blockContext struct {
	Block      ContentBlock
	Title      string
	Content    htmltmpl.HTML
	HTMLCSS    htmltmpl.HTML
	Gradient   htmltmpl.CSS
	BadgeColor htmltmpl.CSS
}

// Renderer maps normalized blocks to themed HTML fragments via a fixed
// per-type dispatch table.
type Renderer struct {
	theme Theme
}

func NewRenderer(themeName string) (*Renderer, error) {
	theme, err := ThemeByName(themeName)
	if err != nil {
		return nil, err
	}
	tmplInit.Do(parseTemplates)
	return &Renderer{theme: theme}, nil
}

func (r *Renderer) Theme() Theme { return r.theme }

// Render produces the themed fragment for one block. Pre-rendered HTMLCSS is
// preferred over re-deriving markup from Content.
func (r *Renderer) Render(b ContentBlock) (RenderedBlock, error) {
	name, ok := renderDispatch[b.Type]
	if !ok {
		return RenderedBlock{}, errors.Errorf("no renderer for block type %q", b.Type)
	}
	if b.HTMLCSS != "" {
		name = "prerendered.gohtml"
	}

	data := blockContext{
		Block:      b,
		Title:      b.DisplayTitle(),
		Content:    htmltmpl.HTML(b.Content),
		HTMLCSS:    htmltmpl.HTML(b.HTMLCSS),
		Gradient:   htmltmpl.CSS(r.theme.Gradient(slotForType(b.Type))),
		BadgeColor: htmltmpl.CSS(DifficultyColor(b.Difficulty)),
	}

	var buff bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buff, name, data); err != nil {
		return RenderedBlock{}, errors.Wrap(err, fmt.Sprintf("rendering %s block", b.Type))
	}
	return RenderedBlock{
		ID:    b.ID,
		Type:  b.Type,
		Order: b.Order,
		HTML:  htmltmpl.HTML(buff.String()),
	}, nil
}

// RenderAll renders every block in display order.
func (r *Renderer) RenderAll(blocks []ContentBlock) ([]RenderedBlock, error) {
	out := make([]RenderedBlock, 0, len(blocks))
	for _, b := range blocks {
		rb, err := r.Render(b)
		if err != nil {
			return nil, err
		}
		out = append(out, rb)
	}
	return out, nil
}

// slotForType maps a block type to its abstract color slot, matching the
// template catalog.
func slotForType(t BlockType) ColorSlot {
	switch t {
	case BlockImage, BlockVideo, BlockAudio, BlockYoutube:
		return SlotSecondary
	case BlockStatement, BlockQA:
		return SlotAccent
	case BlockQuote:
		return SlotWarm
	case BlockLink, BlockPDF:
		return SlotCool
	default:
		return SlotPrimary
	}
}
