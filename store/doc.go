// Package store persists document snapshots in a local SQLite database.
//
// Snapshots are keyed by content id, a hash of the source document's bytes,
// so reopening the same file restores the user's paragraph edits, ordering,
// and translations without re-running layout reconstruction.
//
//	s, err := store.Open(dir, nil)
//	defer s.Close()
//	err = s.Save(ctx, store.ContentID(pdfBytes), doc.Snapshot())
package store
