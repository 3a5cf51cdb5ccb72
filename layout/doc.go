// Package layout groups positioned text fragments into paragraph clusters.
//
// The [Builder] is a pure function over fragment geometry: given the fragment
// set of one page and a safe area, it produces the page's paragraph clusters
// deterministically, with no dependency on rendering or UI concerns.
//
//	builder := layout.NewBuilder()
//	clusters := builder.Build(fragments, safeArea, pageWidth, pageHeight)
//
// # Algorithm
//
// Fragments are filtered by safe-area inclusion, sorted top-to-bottom then
// left-to-right (with a tolerance band so sub-pixel jitter cannot reorder
// fragments on the same visual line), and grouped into lines. Consecutive
// lines merge into the same cluster while their vertical advance stays below
// a threshold derived from the running median line height and their X-ranges
// indicate the same column; a larger gap or a large leftward indentation
// change starts a new cluster.
//
// # Configuration
//
// All thresholds live in [BuilderConfig] and can be tuned:
//
//	config := layout.DefaultBuilderConfig()
//	config.GapFactor = 1.8
//	builder := layout.NewBuilderWithConfig(config)
package layout
