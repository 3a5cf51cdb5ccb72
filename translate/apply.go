package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tsawler/folio/document"
)

// ApplyParagraph translates a single paragraph and writes the result back.
// The read and the write each take the lock briefly; the backend call runs
// between them. If the paragraph disappears before write-back the result is
// discarded and document.ErrNotFound is returned.
func ApplyParagraph(ctx context.Context, doc *document.Document, id uuid.UUID, tr Translator) error {
	p, err := doc.Paragraph(id)
	if err != nil {
		return err
	}

	result, err := tr.Translate(ctx, p.Text)
	if err != nil {
		return &Error{Paragraph: id, Err: err}
	}

	return doc.SetTranslation(id, result)
}

// Apply translates every visible, untranslated body paragraph of the given
// pages (all pages when none are listed) and writes the results back into
// the document. Paragraph reads and writes each take the document lock
// briefly; the backend calls run outside it, so the document stays usable
// while translation is in flight.
//
// A failed paragraph does not stop the rest; all failures are joined into
// the returned error as [*Error] values. A result whose paragraph vanished
// before write-back, for example because the safe area changed and the
// layout was rebuilt, is silently discarded.
func Apply(ctx context.Context, doc *document.Document, tr Translator, pages ...int) error {
	if len(pages) == 0 {
		pages = make([]int, doc.PageCount())
		for i := range pages {
			pages[i] = i
		}
	}

	var errs []error
	for _, page := range pages {
		paras, err := doc.OrderedParagraphs(page, document.Filter{BodyOnly: true, VisibleOnly: true})
		if err != nil {
			errs = append(errs, fmt.Errorf("page %d: %w", page, err))
			continue
		}

		for _, p := range paras {
			if p.HasTranslation() || p.Text == "" {
				continue
			}
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				return errors.Join(errs...)
			}

			result, err := tr.Translate(ctx, p.Text)
			if err != nil {
				errs = append(errs, &Error{Paragraph: p.ID, Err: err})
				continue
			}

			if err := doc.SetTranslation(p.ID, result); err != nil {
				if errors.Is(err, document.ErrNotFound) {
					// Layout rebuilt while translating; drop the stale result
					continue
				}
				errs = append(errs, &Error{Paragraph: p.ID, Err: err})
			}
		}
	}

	return errors.Join(errs...)
}
