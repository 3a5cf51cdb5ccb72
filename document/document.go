package document

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/tsawler/folio/layout"
	"github.com/tsawler/folio/model"
)

// ErrNotFound is returned when a paragraph id does not resolve to a live
// paragraph in the current layout.
var ErrNotFound = errors.New("document: paragraph not found")

// ErrPageRange is returned for an out-of-range page index.
var ErrPageRange = errors.New("document: page index out of range")

// ErrCrossPage is returned when an operation requires its paragraphs to share
// a page.
var ErrCrossPage = errors.New("document: paragraphs belong to different pages")

// ErrMergeArgs is returned when a merge names fewer than two paragraphs or
// repeats one.
var ErrMergeArgs = errors.New("document: merge requires at least two distinct paragraphs")

// ErrSplitPoint is returned for a split boundary outside the valid interior
// of the paragraph's fragment list.
var ErrSplitPoint = errors.New("document: split point out of range")

// ErrSelfAnchor is returned when a move names the same paragraph as both
// anchor and target.
var ErrSelfAnchor = errors.New("document: paragraph cannot move after itself")

// Filter restricts which paragraphs an ordered query returns.
type Filter struct {
	// BodyOnly includes only paragraphs flagged as body content
	BodyOnly bool

	// VisibleOnly includes only visible paragraphs
	VisibleOnly bool
}

// Document is the mutable paragraph model for one source document. It owns
// the per-page paragraph collections, the safe area, and the consistency
// rules between them. All methods are safe for concurrent use.
type Document struct {
	mu         sync.RWMutex
	store      *model.FragmentStore
	safeArea   model.SafeArea
	builder    *layout.Builder
	pages      []*Page
	index      map[uuid.UUID]*Paragraph
	generation uint64
}

// New builds a document from a fragment store by clustering every page under
// the given safe area and builder configuration. The store is retained: later
// safe-area changes rebuild from its raw fragments.
func New(store *model.FragmentStore, safe model.SafeArea, config layout.BuilderConfig) (*Document, error) {
	if err := safe.Validate(); err != nil {
		return nil, err
	}
	d := &Document{
		store:    store,
		safeArea: safe,
		builder:  layout.NewBuilderWithConfig(config),
		index:    make(map[uuid.UUID]*Paragraph),
	}
	d.rebuildLocked()
	return d, nil
}

// rebuildLocked reclusters every page from the raw fragment store, assigning
// fresh identities and stride-spaced order indices. Caller holds the write
// lock (or owns the document exclusively during construction).
func (d *Document) rebuildLocked() {
	d.pages = make([]*Page, 0, d.store.PageCount())
	d.index = make(map[uuid.UUID]*Paragraph)

	for i := 0; i < d.store.PageCount(); i++ {
		width, height := d.store.PageSize(i)
		clusters := d.builder.Build(d.store.Page(i), d.safeArea, width, height)

		page := &Page{Index: i, Width: width, Height: height}
		for j, c := range clusters {
			p := &Paragraph{
				ID:        uuid.New(),
				Page:      i,
				Fragments: c.Fragments,
				BBox:      c.BBox,
				Text:      c.Text,
				Body:      c.Body,
				Visible:   true,
				Order:     (j + 1) * OrderStride,
			}
			page.Paragraphs = append(page.Paragraphs, p)
			d.index[p.ID] = p
		}
		d.pages = append(d.pages, page)
	}
	d.generation++
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.pages)
}

// SafeArea returns the current safe area
func (d *Document) SafeArea() model.SafeArea {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.safeArea
}

// Generation returns the layout generation counter. It increments on every
// full rebuild; holders of paragraph ids can use it to detect that their ids
// have been invalidated.
func (d *Document) Generation() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.generation
}

// Paragraph returns a copy of the paragraph with the given id.
func (d *Document) Paragraph(id uuid.UUID) (Paragraph, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.index[id]
	if !ok {
		return Paragraph{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.clone(), nil
}

// OrderedParagraphs returns copies of one page's paragraphs in reading order,
// restricted by the filter.
func (d *Document) OrderedParagraphs(page int, filter Filter) ([]Paragraph, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if page < 0 || page >= len(d.pages) {
		return nil, fmt.Errorf("%w: %d", ErrPageRange, page)
	}
	var out []Paragraph
	for _, p := range d.pages[page].sortedByOrder() {
		if filter.BodyOnly && !p.Body {
			continue
		}
		if filter.VisibleOnly && !p.Visible {
			continue
		}
		out = append(out, p.clone())
	}
	return out, nil
}

// ToggleBody flips the body flag of a paragraph and returns the new value.
// The paragraph itself is never removed; a non-body paragraph simply drops
// out of body-only queries and exports.
func (d *Document) ToggleBody(id uuid.UUID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.index[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.Body = !p.Body
	return p.Body, nil
}

// ToggleVisibility flips the visibility flag of a paragraph and returns the
// new value. Hidden paragraphs keep their order index, so re-showing restores
// the original position.
func (d *Document) ToggleVisibility(id uuid.UUID) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.index[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.Visible = !p.Visible
	return p.Visible, nil
}

// SetTranslation stores the translation for a paragraph. The write is atomic
// with respect to concurrent readers; translation producers are expected to
// run outside the document lock and report results through this method.
func (d *Document) SetTranslation(id uuid.UUID, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	p.Translation = text
	return nil
}

// Merge combines two or more paragraphs on the same page into one. The merged
// paragraph takes the smallest order index among the inputs, re-derives its
// text and bounding box from the combined fragments, keeps body and
// visibility from the first-ordered input, and starts with an empty
// translation. It returns the id of the new paragraph; the inputs cease to
// exist.
func (d *Document) Merge(ids ...uuid.UUID) (uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(ids) < 2 {
		return uuid.Nil, ErrMergeArgs
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	members := make([]*Paragraph, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			return uuid.Nil, ErrMergeArgs
		}
		seen[id] = true
		p, ok := d.index[id]
		if !ok {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		members = append(members, p)
	}

	pageIndex := members[0].Page
	for _, p := range members[1:] {
		if p.Page != pageIndex {
			return uuid.Nil, ErrCrossPage
		}
	}

	// Combine in reading order so the derived text reads correctly
	// regardless of argument order.
	for i := 1; i < len(members); i++ {
		for j := i; j > 0 && members[j].Order < members[j-1].Order; j-- {
			members[j], members[j-1] = members[j-1], members[j]
		}
	}

	first := members[0]
	merged := &Paragraph{
		ID:      uuid.New(),
		Page:    pageIndex,
		Body:    first.Body,
		Visible: first.Visible,
		Order:   first.Order,
		// The merged block flows onward however its last member did
		Continues: members[len(members)-1].Continues,
	}
	for _, p := range members {
		merged.Fragments = append(merged.Fragments, p.Fragments...)
	}
	merged.recompute(d.builder)

	page := d.pages[pageIndex]
	for _, p := range members {
		page.remove(p.ID)
		delete(d.index, p.ID)
	}
	page.Paragraphs = append(page.Paragraphs, merged)
	d.index[merged.ID] = merged

	return merged.ID, nil
}

// Split divides a paragraph into two at the given fragment boundary: the
// first part keeps fragments [0, atFragment), the second the rest. Both parts
// inherit the original's flags, re-derive their text and bounding boxes, and
// lose the translation. The first part keeps the original order index; the
// second slots immediately after it. Returns the two new ids in order.
func (d *Document) Split(id uuid.UUID, atFragment int) (uuid.UUID, uuid.UUID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.index[id]
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if atFragment <= 0 || atFragment >= len(p.Fragments) {
		return uuid.Nil, uuid.Nil, fmt.Errorf("%w: %d of %d fragments", ErrSplitPoint, atFragment, len(p.Fragments))
	}

	head := &Paragraph{
		ID:        uuid.New(),
		Page:      p.Page,
		Fragments: append([]model.Fragment(nil), p.Fragments[:atFragment]...),
		Body:      p.Body,
		Visible:   p.Visible,
		Order:     p.Order,
	}
	tail := &Paragraph{
		ID:        uuid.New(),
		Page:      p.Page,
		Fragments: append([]model.Fragment(nil), p.Fragments[atFragment:]...),
		Body:      p.Body,
		Visible:   p.Visible,
		// The outgoing continuation belongs to the second part
		Continues: p.Continues,
	}
	head.recompute(d.builder)
	tail.recompute(d.builder)

	page := d.pages[p.Page]
	page.remove(p.ID)
	delete(d.index, p.ID)

	page.Paragraphs = append(page.Paragraphs, head)
	d.index[head.ID] = head

	tail.Order = d.orderAfterLocked(page, head)
	page.Paragraphs = append(page.Paragraphs, tail)
	d.index[tail.ID] = tail

	return head.ID, tail.ID, nil
}

// MoveAfter repositions a paragraph immediately after an anchor on the same
// page. Only the moved paragraph's order index changes unless the stride
// space between the anchor and its successor is exhausted, in which case the
// page is renumbered first.
func (d *Document) MoveAfter(id, anchorID uuid.UUID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id == anchorID {
		return ErrSelfAnchor
	}
	target, ok := d.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	anchor, ok := d.index[anchorID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, anchorID)
	}
	if target.Page != anchor.Page {
		return ErrCrossPage
	}

	page := d.pages[anchor.Page]
	target.Order = d.orderAfterLocked(page, anchor)
	return nil
}

// SetSafeArea replaces the safe area and rebuilds every page from the raw
// fragment store. All paragraph identities, flags, manual edits, and
// translations are discarded. An invalid region is rejected up front and
// leaves the document untouched.
func (d *Document) SetSafeArea(safe model.SafeArea) error {
	if err := safe.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if safe == d.safeArea {
		return nil
	}
	d.safeArea = safe
	d.rebuildLocked()
	return nil
}
