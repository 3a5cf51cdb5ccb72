// Package export renders a document's visible body paragraphs to portable
// formats.
//
// Two formats are supported: plain Markdown, and an annotated HTML view that
// pairs each original paragraph with its translation. Both renderings walk
// the pages in index order and each page's paragraphs in reading order, so
// the output is deterministic for a fixed document state.
//
//	var buf bytes.Buffer
//	err := export.Markdown(&buf, doc, export.DefaultOptions())
package export
