package export

import (
	"fmt"
	"html"
	"io"

	"github.com/tsawler/folio/document"
)

// HTML renders the document's visible body paragraphs as an annotated HTML
// fragment. Each page becomes an <article>; each paragraph becomes a
// <section> holding the original text and, when present, its translation:
//
//	<section class="paragraph">
//	  <p class="original">...</p>
//	  <p class="translation">...</p>
//	</section>
//
// A continuation chain renders as one section at its head paragraph's
// position, pairing the joined chain text with the head's translation.
// All text is HTML-escaped. The output is a body fragment, not a complete
// page, so callers can embed it in their own template.
func HTML(w io.Writer, doc *document.Document, opts Options) error {
	chains := doc.Chains()
	for _, page := range selectedPages(doc, opts) {
		paras, err := collectPage(doc, page)
		if err != nil {
			return err
		}

		opened := false
		for _, p := range paras {
			text, emit := originalText(p, chains)
			if !emit {
				continue
			}
			if !opened {
				if _, err := fmt.Fprintf(w, "<article class=\"page\" data-page=\"%d\">\n", page+1); err != nil {
					return err
				}
				opened = true
			}
			if err := writeParagraphHTML(w, text, p.Translation); err != nil {
				return err
			}
		}
		if opened {
			if _, err := io.WriteString(w, "</article>\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// originalText resolves the original-text column for one paragraph: the
// joined chain text at a chain head, nothing at other chain members, the
// paragraph's own text otherwise.
func originalText(p document.Paragraph, chains *document.ChainSet) (string, bool) {
	if head, ok := chains.Member(p.ID); ok {
		if head != p.ID {
			return "", false
		}
		if text, ok := chains.Text(p.ID); ok {
			return text, true
		}
	}
	return p.Text, true
}

func writeParagraphHTML(w io.Writer, original, translation string) error {
	if _, err := io.WriteString(w, "<section class=\"paragraph\">\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<p class=\"original\">%s</p>\n", html.EscapeString(original)); err != nil {
		return err
	}
	if translation != "" {
		if _, err := fmt.Fprintf(w, "<p class=\"translation\">%s</p>\n", html.EscapeString(translation)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</section>\n")
	return err
}
