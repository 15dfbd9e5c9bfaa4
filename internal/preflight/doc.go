// Package preflight provides readiness checks for the filesystem paths that
// daspub reads from and writes to.
//
// Archive roots only need to be listable. The catalog and log directories
// must be writable. A missing archive root is reported but not fatal, since
// the archive treats it as empty.
package preflight
