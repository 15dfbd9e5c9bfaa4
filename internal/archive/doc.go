// Package archive derives the read-only Archive → Program → Course →
// Assignment → Submission model from a directory tree.
//
// Every entity is built from a *Layout, which carries the file-name
// conventions, the derived file classifier, and a logger. Entities are cheap
// to construct and hold no back-references. Child collections and file
// presence checks are re-read from disk on every call; course and assignment
// description text is parsed once when the entity is built. Memo offers
// opt-in caching for callers that traverse the same tree several times in one
// run.
//
// Data-quality problems never surface as errors. A missing metadata file, a
// broken submission table, or an unreadable directory degrades only the
// affected entity (empty text, zero children, Incomplete status) and is
// logged. The one construction error is an archive root that exists but is
// not a directory.
//
// Enumeration is sorted by name at every level so statuses and reports are
// reproducible.
package archive
