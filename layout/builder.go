package layout

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/folio/model"
)

// defaultLineHeight is used when the page provides no usable height signal
// (degenerate bounding boxes).
const defaultLineHeight = 12.0

// BuilderConfig holds configuration for paragraph clustering. The thresholds
// are approximate by nature; the defaults work for common body text but can
// be tuned per corpus.
type BuilderConfig struct {
	// LineTolerance is the Y-distance tolerance for grouping fragments into
	// lines, as a fraction of the median fragment height.
	// Default: 0.5
	LineTolerance float64 `yaml:"line_tolerance"`

	// GapFactor is the multiplier applied to the running median line height
	// to obtain the paragraph-break threshold: a vertical advance between
	// consecutive lines above medianLineHeight*GapFactor starts a new
	// cluster.
	// Default: 1.5
	GapFactor float64 `yaml:"gap_factor"`

	// IndentThreshold is the minimum leftward shift (in points) between
	// consecutive lines that forces a new cluster.
	// Default: 18 points
	IndentThreshold float64 `yaml:"indent_threshold"`

	// MinColumnOverlap is the minimum horizontal overlap between consecutive
	// lines, as a fraction of the narrower line's width, for them to be
	// considered part of the same column.
	// Default: 0.3
	MinColumnOverlap float64 `yaml:"min_column_overlap"`

	// HeaderBand and FooterBand are the fractions of the safe-area height,
	// measured from its top and bottom edges, inside which clusters default
	// to non-body (running headers, footers, page numbers).
	// Default: 0.07 each
	HeaderBand float64 `yaml:"header_band"`
	FooterBand float64 `yaml:"footer_band"`

	// ClassifyBands enables the header/footer band rule for the default
	// body flag. When false every cluster defaults to body.
	// Default: true
	ClassifyBands bool `yaml:"classify_bands"`
}

// DefaultBuilderConfig returns sensible default configuration
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		LineTolerance:    0.5,
		GapFactor:        1.5,
		IndentThreshold:  18.0,
		MinColumnOverlap: 0.3,
		HeaderBand:       0.07,
		FooterBand:       0.07,
		ClassifyBands:    true,
	}
}

// Cluster is a group of fragments judged to form one logical text block.
// Clusters are the builder's output; the document model turns them into
// paragraphs with identity, flags, and an order index.
type Cluster struct {
	// Fragments are the member fragments in reading order
	Fragments []model.Fragment

	// BBox is the union of the member fragments' bounding boxes
	BBox model.BBox

	// Text is the derived text, joined with layout-aware whitespace rules
	Text string

	// Body is the default body classification for the cluster
	Body bool
}

// Builder clusters fragments into paragraphs
type Builder struct {
	config BuilderConfig
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return &Builder{config: DefaultBuilderConfig()}
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config BuilderConfig) *Builder {
	return &Builder{config: config}
}

// Config returns the builder's configuration
func (b *Builder) Config() BuilderConfig {
	return b.config
}

// Build clusters one page's fragments into paragraphs. Fragments outside the
// safe area are excluded entirely and take no part in flow detection. The
// result is deterministic for a fixed input.
func (b *Builder) Build(fragments []model.Fragment, safe model.SafeArea, pageWidth, pageHeight float64) []Cluster {
	included := make([]model.Fragment, 0, len(fragments))
	for _, f := range fragments {
		if safe.Includes(f, pageWidth, pageHeight) {
			included = append(included, f)
		}
	}
	if len(included) == 0 {
		return nil
	}

	lines := b.groupIntoLines(included)
	clusters := b.groupIntoClusters(lines)

	if b.config.ClassifyBands {
		b.classifyBody(clusters, safe, pageWidth, pageHeight)
	} else {
		for i := range clusters {
			clusters[i].Body = true
		}
	}

	return clusters
}

// line is an intermediate grouping of fragments sharing one visual baseline.
type line struct {
	fragments []model.Fragment
	bbox      model.BBox
}

// groupIntoLines groups fragments into visual lines by top coordinate, then
// orders each line left to right.
func (b *Builder) groupIntoLines(fragments []model.Fragment) []line {
	tolerance := medianFragmentHeight(fragments) * b.config.LineTolerance
	if tolerance <= 0 {
		tolerance = defaultLineHeight * b.config.LineTolerance
	}

	// Sort top to bottom; tops within the tolerance band keep their input
	// order so sub-pixel jitter cannot reorder a line.
	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		diff := sorted[i].BBox.Top() - sorted[j].BBox.Top()
		if absFloat(diff) > tolerance {
			return diff > 0
		}
		return false
	})

	var lines []line
	var current []model.Fragment

	flush := func() {
		if len(current) == 0 {
			return
		}
		sort.SliceStable(current, func(i, j int) bool {
			return current[i].BBox.X < current[j].BBox.X
		})
		boxes := make([]model.BBox, len(current))
		for i, f := range current {
			boxes[i] = f.BBox
		}
		lines = append(lines, line{fragments: current, bbox: model.UnionAll(boxes)})
		current = nil
	}

	for _, frag := range sorted {
		if len(current) == 0 {
			current = append(current, frag)
			continue
		}
		if absFloat(frag.BBox.Top()-averageTop(current)) <= tolerance {
			current = append(current, frag)
		} else {
			flush()
			current = []model.Fragment{frag}
		}
	}
	flush()

	return lines
}

// groupIntoClusters merges consecutive lines into clusters using the running
// median line height as the gap baseline.
func (b *Builder) groupIntoClusters(lines []line) []Cluster {
	if len(lines) == 0 {
		return nil
	}

	var clusters []Cluster
	var current []line
	med := newRunningMedian()
	med.add(lineHeight(lines[0]))
	current = append(current, lines[0])

	for _, ln := range lines[1:] {
		med.add(lineHeight(ln))

		prev := current[len(current)-1]
		advance := prev.bbox.Top() - ln.bbox.Top()
		threshold := med.value() * b.config.GapFactor

		startNew := false
		if advance > threshold {
			startNew = true
		}
		if !b.sameColumn(prev, ln) {
			startNew = true
		}
		// Large leftward shift: the new line returns to an outer margin
		if ln.bbox.X < prev.bbox.X-b.config.IndentThreshold {
			startNew = true
		}

		if startNew {
			clusters = append(clusters, b.buildCluster(current))
			current = []line{ln}
		} else {
			current = append(current, ln)
		}
	}
	clusters = append(clusters, b.buildCluster(current))

	return clusters
}

// sameColumn reports whether two lines plausibly continue the same column:
// their X-ranges overlap enough, or sit within the indent threshold of each
// other.
func (b *Builder) sameColumn(a, c line) bool {
	overlap := a.bbox.HorizontalOverlap(c.bbox)
	minWidth := a.bbox.Width
	if c.bbox.Width < minWidth {
		minWidth = c.bbox.Width
	}
	if minWidth > 0 && overlap >= minWidth*b.config.MinColumnOverlap {
		return true
	}
	// Near-touching columns (e.g. a one-word line) still count as adjacent
	return overlap > -b.config.IndentThreshold
}

// buildCluster assembles a cluster from its lines
func (b *Builder) buildCluster(lines []line) Cluster {
	var fragments []model.Fragment
	boxes := make([]model.BBox, 0, len(lines))
	texts := make([]string, 0, len(lines))

	for _, ln := range lines {
		fragments = append(fragments, ln.fragments...)
		boxes = append(boxes, ln.bbox)
		texts = append(texts, assembleLineText(ln.fragments))
	}

	return Cluster{
		Fragments: fragments,
		BBox:      model.UnionAll(boxes),
		Text:      joinLineTexts(texts),
		Body:      true,
	}
}

// classifyBody marks clusters in the header or footer band as non-body.
func (b *Builder) classifyBody(clusters []Cluster, safe model.SafeArea, pageWidth, pageHeight float64) {
	rect := safe.Rect(pageWidth, pageHeight)
	headerEdge := rect.Top() - rect.Height*b.config.HeaderBand
	footerEdge := rect.Bottom() + rect.Height*b.config.FooterBand

	for i := range clusters {
		center := clusters[i].BBox.Center()
		clusters[i].Body = center.Y < headerEdge && center.Y > footerEdge
	}
}

// AssembleText derives display text for an arbitrary fragment set using the
// builder's line grouping and joining rules. The document model uses it to
// re-derive paragraph text after manual merge and split edits, with the same
// thresholds that produced the original clusters.
func (b *Builder) AssembleText(fragments []model.Fragment) string {
	if len(fragments) == 0 {
		return ""
	}
	lines := b.groupIntoLines(fragments)
	texts := make([]string, 0, len(lines))
	for _, ln := range lines {
		texts = append(texts, assembleLineText(ln.fragments))
	}
	return joinLineTexts(texts)
}

// AssembleText derives display text for a fragment set under the default
// configuration.
func AssembleText(fragments []model.Fragment) string {
	return NewBuilder().AssembleText(fragments)
}

// assembleLineText joins one line's fragments, inserting a space where the
// horizontal gap between neighbors is significant.
func assembleLineText(fragments []model.Fragment) string {
	var sb strings.Builder
	for i, frag := range fragments {
		if i > 0 {
			prev := fragments[i-1]
			gap := frag.BBox.X - prev.BBox.Right()
			if gap > frag.BBox.Height*0.1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(frag.Text)
	}
	return sb.String()
}

// joinLineTexts joins line texts into flowing paragraph text. Hyphenated
// line endings continue without a space; everything else joins with one.
// The result is NFC-normalized so OCR output composes consistently.
func joinLineTexts(texts []string) string {
	var sb strings.Builder
	for i, t := range texts {
		sb.WriteString(t)
		if i < len(texts)-1 && !strings.HasSuffix(t, "-") {
			sb.WriteString(" ")
		}
	}
	return norm.NFC.String(sb.String())
}

// lineHeight returns the height signal used for the running median.
func lineHeight(ln line) float64 {
	if ln.bbox.Height > 0 {
		return ln.bbox.Height
	}
	return defaultLineHeight
}

// averageTop returns the average top coordinate of a fragment group.
func averageTop(fragments []model.Fragment) float64 {
	total := 0.0
	for _, f := range fragments {
		total += f.BBox.Top()
	}
	return total / float64(len(fragments))
}

// medianFragmentHeight returns the median bounding-box height.
func medianFragmentHeight(fragments []model.Fragment) float64 {
	if len(fragments) == 0 {
		return defaultLineHeight
	}
	heights := make([]float64, len(fragments))
	for i, f := range fragments {
		heights[i] = f.BBox.Height
	}
	sort.Float64s(heights)
	mid := len(heights) / 2
	if len(heights)%2 == 0 {
		return (heights[mid-1] + heights[mid]) / 2
	}
	return heights[mid]
}

// runningMedian maintains the median of values seen so far.
type runningMedian struct {
	values []float64
}

func newRunningMedian() *runningMedian {
	return &runningMedian{}
}

func (m *runningMedian) add(v float64) {
	i := sort.SearchFloat64s(m.values, v)
	m.values = append(m.values, 0)
	copy(m.values[i+1:], m.values[i:])
	m.values[i] = v
}

func (m *runningMedian) value() float64 {
	n := len(m.values)
	if n == 0 {
		return defaultLineHeight
	}
	if n%2 == 0 {
		return (m.values[n/2-1] + m.values[n/2]) / 2
	}
	return m.values[n/2]
}

// absFloat returns the absolute value of a float64
func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
