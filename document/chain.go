package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Continuation describes how a paragraph flows into the next visible body
// paragraph.
type Continuation int

const (
	// ContinuationNone means the paragraph ends its own block
	ContinuationNone Continuation = iota

	// ContinuationSpace joins the next paragraph's text with a space,
	// for a sentence that flows across a column or page break
	ContinuationSpace

	// ContinuationBreak joins the next paragraph's text with a line break,
	// for stanzas or list-like blocks that belong together
	ContinuationBreak
)

// String returns a human-readable continuation name
func (c Continuation) String() string {
	switch c {
	case ContinuationNone:
		return "none"
	case ContinuationSpace:
		return "space"
	case ContinuationBreak:
		return "break"
	default:
		return fmt.Sprintf("Continuation(%d)", int(c))
	}
}

// ToggleContinuation cycles a paragraph's continuation mode
// (none, space, break, back to none) and returns the new value.
func (d *Document) ToggleContinuation(id uuid.UUID) (Continuation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.index[id]
	if !ok {
		return ContinuationNone, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	switch p.Continues {
	case ContinuationNone:
		p.Continues = ContinuationSpace
	case ContinuationSpace:
		p.Continues = ContinuationBreak
	default:
		p.Continues = ContinuationNone
	}
	return p.Continues, nil
}

// ChainSet is the resolved continuation structure over a document's visible
// body paragraphs: which paragraphs belong to a chain, which paragraph heads
// each chain, and the joined text per chain. Hidden and non-body paragraphs
// take no part in chains. A ChainSet describes the document state at the
// moment it was built.
type ChainSet struct {
	head map[uuid.UUID]uuid.UUID
	text map[uuid.UUID]string
}

// Member reports whether a paragraph belongs to a chain, and if so returns
// the chain head's id. A head is a member of its own chain.
func (cs *ChainSet) Member(id uuid.UUID) (uuid.UUID, bool) {
	head, ok := cs.head[id]
	return head, ok
}

// IsHead reports whether the paragraph heads a chain
func (cs *ChainSet) IsHead(id uuid.UUID) bool {
	head, ok := cs.head[id]
	return ok && head == id
}

// Text returns the joined text for a chain head.
func (cs *ChainSet) Text(head uuid.UUID) (string, bool) {
	text, ok := cs.text[head]
	return text, ok
}

// Chains resolves the current continuation chains. Paragraphs are visited in
// reading order across all pages, so a chain may span a page break: a
// paragraph with a continuation mode set opens a chain, each following
// visible body paragraph extends it (joined with a space or a line break
// according to the preceding paragraph's mode), and the first paragraph with
// no continuation mode closes it.
func (d *Document) Chains() *ChainSet {
	d.mu.RLock()
	defer d.mu.RUnlock()

	cs := &ChainSet{
		head: make(map[uuid.UUID]uuid.UUID),
		text: make(map[uuid.UUID]string),
	}

	var headID uuid.UUID
	var chain strings.Builder
	open := false
	var prev *Paragraph

	for _, pg := range d.pages {
		for _, p := range pg.sortedByOrder() {
			if !p.Visible || !p.Body {
				continue
			}
			if !open {
				if p.Continues != ContinuationNone {
					open = true
					headID = p.ID
					chain.Reset()
					chain.WriteString(p.Text)
					cs.head[p.ID] = p.ID
				}
			} else {
				if prev.Continues == ContinuationSpace {
					chain.WriteString(" ")
				} else {
					chain.WriteString("\n")
				}
				chain.WriteString(p.Text)
				cs.head[p.ID] = headID

				if p.Continues == ContinuationNone {
					cs.text[headID] = chain.String()
					open = false
				}
			}
			prev = p
		}
	}
	if open {
		cs.text[headID] = chain.String()
	}

	return cs
}

// ChainedText returns the text a paragraph contributes to export: the joined
// chain text when the paragraph belongs to a chain, its own text otherwise.
func (d *Document) ChainedText(id uuid.UUID) (string, error) {
	if _, err := d.Paragraph(id); err != nil {
		return "", err
	}
	cs := d.Chains()
	if head, ok := cs.Member(id); ok {
		if text, ok := cs.Text(head); ok {
			return text, nil
		}
	}
	p, err := d.Paragraph(id)
	if err != nil {
		return "", err
	}
	return p.Text, nil
}
