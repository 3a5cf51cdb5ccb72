// Package document provides the mutable document model produced by layout
// reconstruction and edited interactively.
//
// A [Document] owns every page's paragraph collection plus the safe area, and
// enforces the model's consistency rules: each paragraph belongs to exactly
// one page, order indices form a total order within a page, a paragraph's
// bounding box is always the union of its live fragments, and flag toggles
// never delete anything.
//
//	doc, err := document.New(store, model.DefaultSafeArea(), layout.DefaultBuilderConfig())
//	doc.ToggleBody(id)
//	paras, err := doc.OrderedParagraphs(0, document.Filter{BodyOnly: true, VisibleOnly: true})
//
// # Ordering
//
// Order indices are assigned at a fixed stride so interactive edits can slot
// a paragraph between two neighbors by midpoint insertion without renumbering
// the page; a full renumber happens only when the stride space between the
// neighbors is exhausted.
//
// # Reordering
//
// The [Reorderer] implements anchor-based reordering as an explicit
// two-state machine (Idle, AnchorSelected). Selecting an anchor and then a
// target moves the target immediately after the anchor. A safe-area rebuild
// invalidates paragraph identities, so any in-flight anchor is discarded.
//
// # Concurrency
//
// The document is guarded by a single mutation-exclusion lock. All mutations
// serialize; reads (ordered queries, snapshots) may run concurrently against
// a stable state. Long-running external calls such as translation must run
// outside the lock and write their result back through [Document.SetTranslation],
// which is atomic per paragraph.
package document
