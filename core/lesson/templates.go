package lesson

// Template is a static, reusable starting point for creating a new content
// block. The catalog is read-only; callers get copies.
type Template struct {
	ID             string    `json:"id"`
	Type           BlockType `json:"type"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	DefaultTitle   string    `json:"default_title,omitempty"`
	DefaultContent string    `json:"default_content,omitempty"`

	// DefaultHTML is the pre-styled fragment seeded into HTMLCSS for templates
	// whose visual treatment is richer than plain content.
	DefaultHTML string `json:"default_html,omitempty"`

	// Composite templates bundle a heading with a paragraph in DefaultHTML;
	// the factory splits them into Title/Content on creation.
	Composite bool `json:"composite,omitempty"`

	// ColorSlot is the abstract theme slot this template renders with.
	ColorSlot ColorSlot `json:"color_slot,omitempty"`

	// SubTypes lists the allowed variants, if any (first entry is the default).
	SubTypes []string `json:"sub_types,omitempty"`
}

// Statement variants.
const (
	StatementInfo      = "info"
	StatementTip       = "tip"
	StatementWarning   = "warning"
	StatementImportant = "important"
)

var statementSubTypes = []string{StatementInfo, StatementTip, StatementWarning, StatementImportant}

var catalog = []Template{
	{
		ID:             "text",
		Type:           BlockText,
		Name:           "Text",
		Description:    "A plain rich-text paragraph.",
		DefaultContent: "<p>Start writing here...</p>",
		ColorSlot:      SlotPrimary,
	},
	{
		ID:           "heading",
		Type:         BlockHeading,
		Name:         "Heading",
		Description:  "A standalone section heading.",
		DefaultTitle: "Heading",
		ColorSlot:    SlotPrimary,
	},
	{
		ID:          "heading-paragraph",
		Type:        BlockText,
		Name:        "Heading + Paragraph",
		Description: "A heading followed by an introductory paragraph.",
		DefaultHTML: "<h2>Heading</h2><p>This is a paragraph. Replace it with your own text.</p>",
		Composite:   true,
		ColorSlot:   SlotPrimary,
	},
	{
		ID:             "statement",
		Type:           BlockStatement,
		Name:           "Statement",
		Description:    "A styled callout card for key takeaways.",
		DefaultContent: "State the key point here.",
		DefaultHTML:    `<div class="statement-card statement-info"><p>State the key point here.</p></div>`,
		ColorSlot:      SlotAccent,
		SubTypes:       statementSubTypes,
	},
	{
		ID:             "quote",
		Type:           BlockQuote,
		Name:           "Quote",
		Description:    "A styled quotation with attribution.",
		DefaultContent: "Quote text goes here.",
		DefaultHTML:    `<blockquote class="quote-card"><p>Quote text goes here.</p><footer>— Author</footer></blockquote>`,
		ColorSlot:      SlotWarm,
	},
	{
		ID:          "image",
		Type:        BlockImage,
		Name:        "Image",
		Description: "An image with an optional caption.",
		ColorSlot:   SlotSecondary,
	},
	{
		ID:          "video",
		Type:        BlockVideo,
		Name:        "Video",
		Description: "An inline video with playback controls.",
		ColorSlot:   SlotSecondary,
	},
	{
		ID:          "audio",
		Type:        BlockAudio,
		Name:        "Audio",
		Description: "An audio clip.",
		ColorSlot:   SlotSecondary,
	},
	{
		ID:          "youtube",
		Type:        BlockYoutube,
		Name:        "YouTube",
		Description: "An embedded YouTube player.",
		ColorSlot:   SlotSecondary,
	},
	{
		ID:          "link",
		Type:        BlockLink,
		Name:        "Link",
		Description: "An external resource link.",
		ColorSlot:   SlotCool,
	},
	{
		ID:          "pdf",
		Type:        BlockPDF,
		Name:        "PDF",
		Description: "An embedded PDF document.",
		ColorSlot:   SlotCool,
	},
	{
		ID:             "table",
		Type:           BlockTable,
		Name:           "Table",
		Description:    "A simple data table.",
		DefaultContent: "<table><tr><th>Column 1</th><th>Column 2</th></tr><tr><td></td><td></td></tr></table>",
		ColorSlot:      SlotPrimary,
	},
	{
		ID:          "qa",
		Type:        BlockQA,
		Name:        "Question & Answer",
		Description: "A collapsible question with its answer and difficulty.",
		ColorSlot:   SlotAccent,
	},
}

// Templates returns a copy of the full template catalog.
func Templates() []Template {
	out := make([]Template, len(catalog))
	copy(out, catalog)
	return out
}

// TemplateByID returns the matching template or ErrTemplateNotFound.
func TemplateByID(id string) (Template, error) {
	for _, tmpl := range catalog {
		if tmpl.ID == id {
			return tmpl, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}
