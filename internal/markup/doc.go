// Package markup parses the section-delimited description files stored in
// course and assignment folders.
//
// A section starts on a line whose trimmed text begins with "==" and the rest
// of that line is the section title. Body lines are trimmed and joined with a
// single space, so line wrapping in the source file never changes the parsed
// value. Text before the first title is ignored. There is no escaping: a body
// line that starts with "==" always opens a new section.
//
// Lists inside a section are written inline with a delimiter (conventionally
// "*") and split with SplitList.
package markup
