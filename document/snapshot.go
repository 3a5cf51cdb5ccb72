package document

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
)

// ParagraphSnapshot is the serializable form of one paragraph.
type ParagraphSnapshot struct {
	ID          string           `json:"id"`
	Fragments   []model.Fragment `json:"fragments"`
	Text        string           `json:"text"`
	Body        bool             `json:"body"`
	Visible     bool             `json:"visible"`
	Order       int              `json:"order"`
	Continues   Continuation     `json:"continues,omitempty"`
	Translation string           `json:"translation,omitempty"`
}

// PageSnapshot is the serializable form of one page. It carries both the raw
// fragment set (so a restored document can rebuild after a safe-area change)
// and the paragraph state.
type PageSnapshot struct {
	Index      int                 `json:"index"`
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	Fragments  []model.Fragment    `json:"fragments"`
	Paragraphs []ParagraphSnapshot `json:"paragraphs"`
}

// Snapshot is a point-in-time serializable copy of a document's full state.
type Snapshot struct {
	SafeArea model.SafeArea `json:"safe_area"`
	Pages    []PageSnapshot `json:"pages"`
}

// Snapshot captures the current document state, including raw fragments,
// paragraph flags, order indices, and translations.
func (d *Document) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snap := Snapshot{SafeArea: d.safeArea}
	for _, pg := range d.pages {
		ps := PageSnapshot{
			Index:     pg.Index,
			Width:     pg.Width,
			Height:    pg.Height,
			Fragments: d.store.Page(pg.Index),
		}
		for _, p := range pg.sortedByOrder() {
			fragments := make([]model.Fragment, len(p.Fragments))
			copy(fragments, p.Fragments)
			ps.Paragraphs = append(ps.Paragraphs, ParagraphSnapshot{
				ID:          p.ID.String(),
				Fragments:   fragments,
				Text:        p.Text,
				Body:        p.Body,
				Visible:     p.Visible,
				Order:       p.Order,
				Continues:   p.Continues,
				Translation: p.Translation,
			})
		}
		snap.Pages = append(snap.Pages, ps)
	}
	return snap
}

// FromSnapshot restores a document from a snapshot, preserving paragraph
// identities, flags, order indices, and translations exactly as captured.
// The builder configuration governs future rebuilds only; the snapshot's
// paragraphs are restored verbatim, not reclustered.
func FromSnapshot(snap Snapshot, config layout.BuilderConfig) (*Document, error) {
	if err := snap.SafeArea.Validate(); err != nil {
		return nil, err
	}

	store := model.NewFragmentStore()
	for _, ps := range snap.Pages {
		store.AddPage(ps.Width, ps.Height, ps.Fragments)
	}

	d := &Document{
		store:      store,
		safeArea:   snap.SafeArea,
		builder:    layout.NewBuilderWithConfig(config),
		index:      make(map[uuid.UUID]*Paragraph),
		generation: 1,
	}

	for _, ps := range snap.Pages {
		page := &Page{Index: ps.Index, Width: ps.Width, Height: ps.Height}
		for _, paraSnap := range ps.Paragraphs {
			id, err := uuid.Parse(paraSnap.ID)
			if err != nil {
				return nil, fmt.Errorf("document: invalid paragraph id %q: %w", paraSnap.ID, err)
			}
			fragments := make([]model.Fragment, len(paraSnap.Fragments))
			copy(fragments, paraSnap.Fragments)
			p := &Paragraph{
				ID:          id,
				Page:        ps.Index,
				Fragments:   fragments,
				Text:        paraSnap.Text,
				Body:        paraSnap.Body,
				Visible:     paraSnap.Visible,
				Order:       paraSnap.Order,
				Continues:   paraSnap.Continues,
				Translation: paraSnap.Translation,
			}
			boxes := make([]model.BBox, len(fragments))
			for i, f := range fragments {
				boxes[i] = f.BBox
			}
			p.BBox = model.UnionAll(boxes)
			page.Paragraphs = append(page.Paragraphs, p)
			d.index[p.ID] = p
		}
		d.pages = append(d.pages, page)
	}

	return d, nil
}
