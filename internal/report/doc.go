// Package report rolls course statuses up into a publication readiness
// summary for one or more archives.
package report
