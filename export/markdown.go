package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/tsawler/folio/document"
)

// ErrInconsistent is returned when the document state cannot be rendered
// coherently, such as two visible paragraphs sharing one order index.
var ErrInconsistent = errors.New("export: inconsistent document state")

// Options holds configuration for export
type Options struct {
	// Pages restricts the export to the given 0-based page indices, in the
	// order listed. Nil exports every page in index order.
	Pages []int

	// PreferTranslation substitutes the translation for the original text
	// wherever one exists. Untranslated paragraphs fall back to the
	// original.
	PreferTranslation bool

	// PageHeadings inserts a level-2 page heading before each page's
	// paragraphs in Markdown output.
	PageHeadings bool
}

// DefaultOptions returns sensible default export options
func DefaultOptions() Options {
	return Options{}
}

// Markdown renders the document's visible body paragraphs as Markdown: one
// paragraph per block, blank-line separated, pages in index order and
// paragraphs in reading order. A continuation chain renders as a single
// block at its head paragraph's position, even when the chain crosses a
// page break.
func Markdown(w io.Writer, doc *document.Document, opts Options) error {
	chains := doc.Chains()
	first := true
	for _, page := range selectedPages(doc, opts) {
		paras, err := collectPage(doc, page)
		if err != nil {
			return err
		}

		headingPending := opts.PageHeadings
		for _, p := range paras {
			text, emit := renderText(p, chains, opts)
			if !emit {
				continue
			}
			if headingPending {
				if !first {
					if _, err := io.WriteString(w, "\n"); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, "## Page %d\n", page+1); err != nil {
					return err
				}
				first = false
				headingPending = false
			}
			if !first {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, text+"\n"); err != nil {
				return err
			}
			first = false
		}
	}
	return nil
}

// selectedPages resolves the page list for the options.
func selectedPages(doc *document.Document, opts Options) []int {
	if opts.Pages != nil {
		return opts.Pages
	}
	pages := make([]int, doc.PageCount())
	for i := range pages {
		pages[i] = i
	}
	return pages
}

// collectPage returns one page's exportable paragraphs in reading order.
// Order indices must be distinct across the whole visible set, not just the
// body subset, so a body paragraph colliding with a visible non-body one is
// also caught.
func collectPage(doc *document.Document, page int) ([]document.Paragraph, error) {
	visible, err := doc.OrderedParagraphs(page, document.Filter{VisibleOnly: true})
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool, len(visible))
	for _, p := range visible {
		if seen[p.Order] {
			return nil, fmt.Errorf("%w: duplicate order index %d on page %d", ErrInconsistent, p.Order, page)
		}
		seen[p.Order] = true
	}

	body := visible[:0]
	for _, p := range visible {
		if p.Body {
			body = append(body, p)
		}
	}
	return body, nil
}

// renderText resolves the text to emit for one paragraph. Chain members
// other than the head emit nothing; the head emits the joined chain text, or
// its own translation when preferred and present.
func renderText(p document.Paragraph, chains *document.ChainSet, opts Options) (string, bool) {
	if head, ok := chains.Member(p.ID); ok {
		if head != p.ID {
			return "", false
		}
		if opts.PreferTranslation && p.HasTranslation() {
			return p.Translation, true
		}
		if text, ok := chains.Text(p.ID); ok {
			return text, true
		}
	}
	if opts.PreferTranslation && p.HasTranslation() {
		return p.Translation, true
	}
	return p.Text, true
}
