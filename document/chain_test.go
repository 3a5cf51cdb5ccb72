package document

import (
	"testing"

	"github.com/google/uuid"

	"github.com/tsawler/folio/model"
)

// twoPageStore builds a store whose fragments cluster into two paragraphs on
// the first page and one on the second.
func twoPageStore() *model.FragmentStore {
	store := model.NewFragmentStore()
	store.AddPage(612, 792, []model.Fragment{
		makeFragment("Opening text", 100, 700, 200, 10),
		makeFragment("carries over", 100, 600, 200, 10),
	})
	store.AddPage(612, 792, []model.Fragment{
		makeFragment("onto the next page.", 100, 700, 200, 10),
	})
	return store
}

func TestToggleContinuation_Cycles(t *testing.T) {
	doc := newTestDocument(t, threeParagraphStore())
	id := orderedIDs(t, doc, 0)[0]

	want := []Continuation{ContinuationSpace, ContinuationBreak, ContinuationNone}
	for _, expected := range want {
		got, err := doc.ToggleContinuation(id)
		if err != nil {
			t.Fatalf("ToggleContinuation: %v", err)
		}
		if got != expected {
			t.Errorf("ToggleContinuation = %v, expected %v", got, expected)
		}
		p, _ := doc.Paragraph(id)
		if p.Continues != expected {
			t.Errorf("Stored continuation = %v, expected %v", p.Continues, expected)
		}
	}

	if _, err := doc.ToggleContinuation(uuid.New()); err == nil {
		t.Error("Expected error for unknown id")
	}
}

func TestChains_SpanPageBreak(t *testing.T) {
	doc := newTestDocument(t, twoPageStore())
	first := orderedIDs(t, doc, 0)
	second := orderedIDs(t, doc, 1)

	doc.ToggleContinuation(first[1]) // space

	chains := doc.Chains()
	if !chains.IsHead(first[1]) {
		t.Fatal("Continuing paragraph should head its chain")
	}
	head, ok := chains.Member(second[0])
	if !ok || head != first[1] {
		t.Fatalf("Next-page paragraph should join the chain, head = %v ok = %v", head, ok)
	}
	if _, ok := chains.Member(first[0]); ok {
		t.Error("Unrelated paragraph must not belong to a chain")
	}

	text, ok := chains.Text(first[1])
	if !ok {
		t.Fatal("Chain head should carry the joined text")
	}
	if text != "carries over onto the next page." {
		t.Errorf("Chain text = %q", text)
	}
}

func TestChains_BreakJoinsWithNewline(t *testing.T) {
	doc := newTestDocument(t, threeParagraphStore())
	ids := orderedIDs(t, doc, 0)

	doc.ToggleContinuation(ids[0]) // space
	doc.ToggleContinuation(ids[0]) // break

	chains := doc.Chains()
	text, ok := chains.Text(ids[0])
	if !ok {
		t.Fatal("Chain head should carry the joined text")
	}
	if text != "first paragraph\nsecond paragraph" {
		t.Errorf("Chain text = %q", text)
	}
	if _, ok := chains.Member(ids[2]); ok {
		t.Error("Chain must close at the first paragraph with no continuation")
	}
}

func TestChains_SkipHiddenAndNonBody(t *testing.T) {
	doc := newTestDocument(t, threeParagraphStore())
	ids := orderedIDs(t, doc, 0)

	doc.ToggleContinuation(ids[0]) // space
	doc.ToggleVisibility(ids[1])

	chains := doc.Chains()
	if _, ok := chains.Member(ids[1]); ok {
		t.Error("Hidden paragraph must not join a chain")
	}
	text, _ := chains.Text(ids[0])
	if text != "first paragraph third paragraph" {
		t.Errorf("Chain text = %q", text)
	}

	// A non-body paragraph is skipped the same way
	doc.ToggleVisibility(ids[1])
	doc.ToggleBody(ids[1])
	text, _ = doc.Chains().Text(ids[0])
	if text != "first paragraph third paragraph" {
		t.Errorf("Chain text with non-body middle = %q", text)
	}
}

func TestChainedText(t *testing.T) {
	doc := newTestDocument(t, twoPageStore())
	first := orderedIDs(t, doc, 0)
	second := orderedIDs(t, doc, 1)

	doc.ToggleContinuation(first[1])

	// Both the head and a later member resolve to the joined text
	for _, id := range []uuid.UUID{first[1], second[0]} {
		text, err := doc.ChainedText(id)
		if err != nil {
			t.Fatalf("ChainedText: %v", err)
		}
		if text != "carries over onto the next page." {
			t.Errorf("ChainedText(%s) = %q", id, text)
		}
	}

	// Paragraphs outside any chain return their own text
	text, err := doc.ChainedText(first[0])
	if err != nil {
		t.Fatalf("ChainedText: %v", err)
	}
	if text != "Opening text" {
		t.Errorf("ChainedText = %q", text)
	}

	if _, err := doc.ChainedText(uuid.New()); err == nil {
		t.Error("Expected error for unknown id")
	}
}

func TestMerge_KeepsLastMemberContinuation(t *testing.T) {
	doc := newTestDocument(t, threeParagraphStore())
	ids := orderedIDs(t, doc, 0)

	doc.ToggleContinuation(ids[1]) // the later member continues onward

	mergedID, err := doc.Merge(ids[0], ids[1])
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	merged, _ := doc.Paragraph(mergedID)
	if merged.Continues != ContinuationSpace {
		t.Errorf("Merged continuation = %v, expected %v", merged.Continues, ContinuationSpace)
	}

	// The merged block still chains into the following paragraph
	text, err := doc.ChainedText(ids[2])
	if err != nil {
		t.Fatalf("ChainedText: %v", err)
	}
	if text != "first paragraph second paragraph third paragraph" {
		t.Errorf("Chain text = %q", text)
	}
}

func TestSplit_TailKeepsContinuation(t *testing.T) {
	store := model.NewFragmentStore()
	store.AddPage(612, 792, []model.Fragment{
		makeFragment("alpha", 100, 700, 60, 10),
		makeFragment("beta", 100, 688, 60, 10),
	})
	doc := newTestDocument(t, store)
	ids := orderedIDs(t, doc, 0)
	if len(ids) != 1 {
		t.Fatalf("Expected 1 seeded paragraph, got %d", len(ids))
	}
	doc.ToggleContinuation(ids[0])

	headID, tailID, err := doc.Split(ids[0], 1)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	head, _ := doc.Paragraph(headID)
	tail, _ := doc.Paragraph(tailID)
	if head.Continues != ContinuationNone {
		t.Errorf("Head continuation = %v, expected none", head.Continues)
	}
	if tail.Continues != ContinuationSpace {
		t.Errorf("Tail continuation = %v, expected %v", tail.Continues, ContinuationSpace)
	}
}

func TestContinuation_String(t *testing.T) {
	cases := map[Continuation]string{
		ContinuationNone:  "none",
		ContinuationSpace: "space",
		ContinuationBreak: "break",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("%d.String() = %q, expected %q", int(c), got, want)
		}
	}
}
