package lesson

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Placeholders used when a composite template's default HTML cannot be parsed.
const (
	placeholderHeading   = "Heading"
	placeholderParagraph = "This is a paragraph. Replace it with your own text."
)

var (
	headingRegex   = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	paragraphRegex = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	tagRegex       = regexp.MustCompile(`<[^>]+>`)
)

// NewBlockOptions carries optional user-supplied values for a new block.
type NewBlockOptions struct {
	SubType string // statement variant etc.
	Title   string
	Content string
}

// NewBlock produces a fully formed ContentBlock from a template.
// The block gets a fresh unique id and order = maxOrder + 1; the caller is
// responsible for inserting it into a store.
func NewBlock(tmpl Template, maxOrder int, opts NewBlockOptions) ContentBlock {
	b := ContentBlock{
		ID:      uuid.New().String(),
		Type:    tmpl.Type,
		Title:   tmpl.DefaultTitle,
		Order:   maxOrder + 1,
		Content: tmpl.DefaultContent,
		HTMLCSS: tmpl.DefaultHTML,
	}
	if b.Title == "" {
		b.Title = tmpl.Type.DefaultTitle()
	}

	if tmpl.Composite {
		// best-effort split of the default HTML into heading + paragraph
		heading, paragraph := splitComposite(tmpl.DefaultHTML)
		b.Title = heading
		b.Content = paragraph
		b.HTMLCSS = "" // composite blocks re-derive markup from Title/Content
	}

	if len(tmpl.SubTypes) > 0 {
		b.StatementType = tmpl.SubTypes[0]
		if opts.SubType != "" {
			for _, st := range tmpl.SubTypes {
				if st == opts.SubType {
					b.StatementType = opts.SubType
					break
				}
			}
		}
	}

	if opts.Title != "" {
		b.Title = opts.Title
	}
	if opts.Content != "" {
		b.Content = opts.Content
	}
	return b
}

// splitComposite extracts heading and paragraph text from a composite
// template's default HTML, falling back to placeholders. Best-effort only.
func splitComposite(html string) (heading, paragraph string) {
	heading, paragraph = placeholderHeading, placeholderParagraph
	if m := headingRegex.FindStringSubmatch(html); m != nil {
		if text := stripTags(m[1]); text != "" {
			heading = text
		}
	}
	if m := paragraphRegex.FindStringSubmatch(html); m != nil {
		if text := stripTags(m[1]); text != "" {
			paragraph = text
		}
	}
	return heading, paragraph
}

func stripTags(s string) string {
	return strings.TrimSpace(tagRegex.ReplaceAllString(s, ""))
}
