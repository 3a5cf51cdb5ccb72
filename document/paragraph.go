package document

import (
	"github.com/google/uuid"

	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
)

// Paragraph is a cluster of fragments representing one logical text block,
// with the interactive state attached: body/visibility flags, an order index
// unique within its page, and an optional translation.
//
// Paragraphs reference fragments owned by the document's fragment store; they
// never own fragment lifetimes.
type Paragraph struct {
	// ID uniquely identifies the paragraph for the lifetime of the current
	// layout. Safe-area rebuilds discard all ids.
	ID uuid.UUID

	// Page is the 0-based index of the owning page
	Page int

	// Fragments are the member fragments in reading order
	Fragments []model.Fragment

	// BBox is the union of the member fragments' bounding boxes
	BBox model.BBox

	// Text is the derived text content
	Text string

	// Body marks the paragraph as main content, eligible for translation
	// and export
	Body bool

	// Visible controls inclusion in export. Hidden paragraphs keep their
	// order index so re-showing restores their position.
	Visible bool

	// Order is the paragraph's reading-order index within its page
	Order int

	// Continues marks the paragraph as flowing into the next visible body
	// paragraph, including across a page break. Export emits the whole
	// chain as one block at the head paragraph's position.
	Continues Continuation

	// Translation holds the translated text once filled; empty otherwise
	Translation string
}

// HasTranslation reports whether the translation slot has been filled
func (p *Paragraph) HasTranslation() bool {
	return p.Translation != ""
}

// clone returns a deep-enough copy safe to hand to callers outside the lock.
func (p *Paragraph) clone() Paragraph {
	copied := *p
	copied.Fragments = make([]model.Fragment, len(p.Fragments))
	copy(copied.Fragments, p.Fragments)
	return copied
}

// recompute re-derives the bounding box and text from the current member
// fragments, using the document's configured builder so manual edits assemble
// text with the same thresholds as the original clustering. Called whenever
// membership changes.
func (p *Paragraph) recompute(builder *layout.Builder) {
	boxes := make([]model.BBox, len(p.Fragments))
	for i, f := range p.Fragments {
		boxes[i] = f.BBox
	}
	p.BBox = model.UnionAll(boxes)
	p.Text = builder.AssembleText(p.Fragments)
}

// Page is one page's ordered paragraph collection.
type Page struct {
	// Index is the 0-based page index
	Index int

	// Width and Height are the page dimensions in points
	Width  float64
	Height float64

	// Paragraphs holds the page's paragraphs in creation order; reading
	// order is defined by the Order field, not slice position.
	Paragraphs []*Paragraph
}

// sortedByOrder returns the page's paragraphs sorted by order index.
func (pg *Page) sortedByOrder() []*Paragraph {
	sorted := make([]*Paragraph, len(pg.Paragraphs))
	copy(sorted, pg.Paragraphs)
	// Insertion sort keeps this dependency-free and stable; pages are small.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Order < sorted[j-1].Order; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

// successorOf returns the paragraph with the smallest order index strictly
// greater than the given order, or nil if none exists.
func (pg *Page) successorOf(order int) *Paragraph {
	var successor *Paragraph
	for _, p := range pg.Paragraphs {
		if p.Order <= order {
			continue
		}
		if successor == nil || p.Order < successor.Order {
			successor = p
		}
	}
	return successor
}

// remove deletes a paragraph from the page's collection.
func (pg *Page) remove(id uuid.UUID) {
	for i, p := range pg.Paragraphs {
		if p.ID == id {
			pg.Paragraphs = append(pg.Paragraphs[:i], pg.Paragraphs[i+1:]...)
			return
		}
	}
}
