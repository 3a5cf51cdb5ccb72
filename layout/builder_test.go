package layout

import (
	"testing"

	"github.com/tsawler/folio/model"
)

// makeFragment creates a test fragment at the given position
func makeFragment(text string, x, top, width, height float64) model.Fragment {
	return model.Fragment{
		Text: text,
		BBox: model.NewBBox(x, top-height, width, height),
	}
}

func TestBuilder_Empty(t *testing.T) {
	builder := NewBuilder()
	clusters := builder.Build(nil, model.FullPage(), 612, 792)

	if clusters != nil {
		t.Errorf("Expected nil clusters for empty input, got %d", len(clusters))
	}
}

func TestBuilder_SingleFragment(t *testing.T) {
	builder := NewBuilder()
	fragments := []model.Fragment{
		makeFragment("Lonely", 100, 700, 60, 12),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)

	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if len(clusters[0].Fragments) != 1 {
		t.Errorf("Expected 1 member, got %d", len(clusters[0].Fragments))
	}
	if clusters[0].Text != "Lonely" {
		t.Errorf("Expected 'Lonely', got %q", clusters[0].Text)
	}
}

// Lines at vertical offsets 0, 12, 14, and 40 from the first line, with a
// line height around 12: the first three merge (gaps below the threshold),
// the last is separate.
func TestBuilder_GapThreshold(t *testing.T) {
	builder := NewBuilder()
	fragments := []model.Fragment{
		makeFragment("first", 100, 780, 200, 10),
		makeFragment("second", 100, 768, 200, 10),
		makeFragment("third", 100, 766, 200, 10),
		makeFragment("far below", 100, 740, 200, 10),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)

	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(clusters))
	}
	if len(clusters[0].Fragments) != 3 {
		t.Errorf("First cluster should have 3 fragments, got %d", len(clusters[0].Fragments))
	}
	if len(clusters[1].Fragments) != 1 {
		t.Errorf("Second cluster should have 1 fragment, got %d", len(clusters[1].Fragments))
	}
}

func TestBuilder_Partition(t *testing.T) {
	builder := NewBuilder()
	fragments := []model.Fragment{
		makeFragment("a", 100, 780, 50, 10),
		makeFragment("b", 160, 780, 50, 10),
		makeFragment("c", 100, 768, 50, 10),
		makeFragment("d", 100, 700, 50, 10),
		makeFragment("e", 100, 688, 50, 10),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)

	// Every included fragment appears in exactly one cluster
	seen := make(map[string]int)
	total := 0
	for _, c := range clusters {
		for _, f := range c.Fragments {
			seen[f.Text]++
			total++
		}
	}
	if total != len(fragments) {
		t.Errorf("Expected %d fragments across clusters, got %d", len(fragments), total)
	}
	for text, count := range seen {
		if count != 1 {
			t.Errorf("Fragment %q appears %d times", text, count)
		}
	}
}

func TestBuilder_SafeAreaExclusion(t *testing.T) {
	builder := NewBuilder()
	safe := model.SafeArea{X0: 0.1, Y0: 0.1, X1: 0.9, Y1: 0.9}

	fragments := []model.Fragment{
		makeFragment("body", 100, 400, 200, 12),
		// Center in the bottom page margin, outside the safe area
		makeFragment("page 7", 280, 20, 50, 12),
	}

	clusters := builder.Build(fragments, safe, 612, 792)

	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	for _, c := range clusters {
		for _, f := range c.Fragments {
			if f.Text == "page 7" {
				t.Error("Excluded fragment must not appear in any cluster")
			}
		}
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	builder := NewBuilder()
	fragments := []model.Fragment{
		makeFragment("alpha", 100, 780, 80, 10),
		makeFragment("beta", 190, 780, 80, 10),
		makeFragment("gamma", 100, 768, 80, 10),
		makeFragment("delta", 100, 720, 80, 10),
	}

	first := builder.Build(fragments, model.FullPage(), 612, 792)
	second := builder.Build(fragments, model.FullPage(), 612, 792)

	if len(first) != len(second) {
		t.Fatalf("Cluster counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text {
			t.Errorf("Cluster %d text differs: %q vs %q", i, first[i].Text, second[i].Text)
		}
	}
}

func TestBuilder_LineJitter(t *testing.T) {
	builder := NewBuilder()
	// Same visual line with sub-pixel jitter: X order must win
	fragments := []model.Fragment{
		makeFragment("world", 160, 700.3, 50, 12),
		makeFragment("hello", 100, 700, 50, 12),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)

	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].Text != "hello world" {
		t.Errorf("Expected 'hello world', got %q", clusters[0].Text)
	}
}

func TestBuilder_HyphenJoin(t *testing.T) {
	builder := NewBuilder()
	fragments := []model.Fragment{
		makeFragment("recon-", 100, 780, 200, 10),
		makeFragment("struction", 100, 768, 200, 10),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)

	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if clusters[0].Text != "recon-struction" {
		t.Errorf("Expected hyphen join without space, got %q", clusters[0].Text)
	}
}

func TestBuilder_LeftwardIndentBreak(t *testing.T) {
	builder := NewBuilder()
	fragments := []model.Fragment{
		makeFragment("indented quote line", 150, 780, 200, 10),
		makeFragment("back at the margin", 100, 768, 200, 10),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)

	if len(clusters) != 2 {
		t.Fatalf("Expected leftward indent to break the cluster, got %d clusters", len(clusters))
	}
}

func TestBuilder_ColumnSeparation(t *testing.T) {
	builder := NewBuilder()
	// Two columns: consecutive lines with no horizontal overlap must not merge
	fragments := []model.Fragment{
		makeFragment("left column", 50, 780, 200, 10),
		makeFragment("left continues", 50, 768, 200, 10),
		makeFragment("right column", 350, 774, 200, 10),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)

	if len(clusters) < 2 {
		t.Errorf("Expected separate clusters per column, got %d", len(clusters))
	}
}

func TestBuilder_BodyClassification(t *testing.T) {
	builder := NewBuilder()
	safe := model.FullPage()

	fragments := []model.Fragment{
		// Center near the very top of the safe area: header band
		makeFragment("Running Header", 100, 790, 200, 10),
		makeFragment("Body paragraph text", 100, 400, 200, 12),
	}

	clusters := builder.Build(fragments, safe, 612, 792)

	if len(clusters) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(clusters))
	}

	var header, body *Cluster
	for i := range clusters {
		if clusters[i].Text == "Running Header" {
			header = &clusters[i]
		} else {
			body = &clusters[i]
		}
	}
	if header == nil || body == nil {
		t.Fatal("Missing expected clusters")
	}
	if header.Body {
		t.Error("Header band cluster should default to non-body")
	}
	if !body.Body {
		t.Error("Mid-page cluster should default to body")
	}
}

func TestBuilder_BandClassificationDisabled(t *testing.T) {
	config := DefaultBuilderConfig()
	config.ClassifyBands = false
	builder := NewBuilderWithConfig(config)

	fragments := []model.Fragment{
		makeFragment("Running Header", 100, 790, 200, 10),
	}

	clusters := builder.Build(fragments, model.FullPage(), 612, 792)
	if len(clusters) != 1 || !clusters[0].Body {
		t.Error("With band classification disabled every cluster defaults to body")
	}
}

func TestAssembleText(t *testing.T) {
	fragments := []model.Fragment{
		makeFragment("hello", 100, 700, 50, 12),
		makeFragment("world", 160, 700, 50, 12),
		makeFragment("below", 100, 686, 50, 12),
	}

	got := AssembleText(fragments)
	if got != "hello world below" {
		t.Errorf("Expected 'hello world below', got %q", got)
	}

	if AssembleText(nil) != "" {
		t.Error("Expected empty text for no fragments")
	}
}

func TestRunningMedian(t *testing.T) {
	m := newRunningMedian()
	if m.value() != defaultLineHeight {
		t.Errorf("Empty median should fall back to %.0f", defaultLineHeight)
	}

	m.add(10)
	if m.value() != 10 {
		t.Errorf("Expected 10, got %.1f", m.value())
	}
	m.add(14)
	if m.value() != 12 {
		t.Errorf("Expected 12, got %.1f", m.value())
	}
	m.add(2)
	if m.value() != 10 {
		t.Errorf("Expected 10, got %.1f", m.value())
	}
}
