// Package catalog exports a snapshot of the archive model into a SQLite
// database so other tools can query statuses and submissions without
// walking the filesystem.
//
// Every export is one run, identified by a UUID. Rows for courses,
// assignments, and submissions hang off their run and are removed with it.
// Exports hold an advisory lock beside the database file so two processes
// never write the same catalog at once.
//
// Schema changes bump schemaVersion in schema.go; users delete the catalog
// database to adopt the new schema. The catalog is derived data and can
// always be rebuilt from the archive.
package catalog
