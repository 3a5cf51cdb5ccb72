package document

import (
	"fmt"

	"github.com/google/uuid"
)

// ReorderState is the state of an interactive reorder session.
type ReorderState int

const (
	// Idle means no anchor is selected
	Idle ReorderState = iota

	// AnchorSelected means an anchor paragraph has been chosen and the next
	// selection moves its target after the anchor
	AnchorSelected
)

// String returns a human-readable state name
func (s ReorderState) String() string {
	switch s {
	case Idle:
		return "idle"
	case AnchorSelected:
		return "anchor-selected"
	default:
		return fmt.Sprintf("ReorderState(%d)", int(s))
	}
}

// Reorderer drives anchor-based paragraph reordering as a two-state machine.
// In the idle state, selecting a paragraph makes it the anchor. With an
// anchor selected, selecting a second paragraph moves it directly after the
// anchor and returns to idle; selecting the anchor again cancels.
//
// The reorderer records the document's layout generation when an anchor is
// chosen. If the document is rebuilt in the meantime (a safe-area change),
// the pending anchor refers to a discarded layout and is silently dropped:
// the next selection is treated as a fresh anchor choice.
//
// A Reorderer is not safe for concurrent use; it models one user's selection
// sequence.
type Reorderer struct {
	doc        *Document
	state      ReorderState
	anchor     uuid.UUID
	generation uint64
}

// NewReorderer creates an idle reorderer for the document
func NewReorderer(doc *Document) *Reorderer {
	return &Reorderer{doc: doc}
}

// State returns the current state
func (r *Reorderer) State() ReorderState {
	return r.state
}

// Anchor returns the pending anchor id, or uuid.Nil when idle.
func (r *Reorderer) Anchor() uuid.UUID {
	if r.state != AnchorSelected {
		return uuid.Nil
	}
	return r.anchor
}

// Select advances the state machine with one paragraph selection. Moves are
// applied through the document, so all of its validation (same page, live
// ids) holds. A failed move resets to idle and reports the error.
func (r *Reorderer) Select(id uuid.UUID) error {
	if r.state == AnchorSelected && r.generation != r.doc.Generation() {
		// The layout the anchor belonged to is gone
		r.reset()
	}

	switch r.state {
	case Idle:
		if _, err := r.doc.Paragraph(id); err != nil {
			return err
		}
		r.anchor = id
		r.generation = r.doc.Generation()
		r.state = AnchorSelected
		return nil

	case AnchorSelected:
		if id == r.anchor {
			r.reset()
			return nil
		}
		anchor := r.anchor
		r.reset()
		return r.doc.MoveAfter(id, anchor)

	default:
		r.reset()
		return fmt.Errorf("document: invalid reorder state %v", r.state)
	}
}

// Cancel discards any pending anchor and returns to idle
func (r *Reorderer) Cancel() {
	r.reset()
}

func (r *Reorderer) reset() {
	r.state = Idle
	r.anchor = uuid.Nil
	r.generation = 0
}
