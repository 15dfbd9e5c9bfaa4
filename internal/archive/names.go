package archive

import (
	"strings"
	"unicode"
)

// SafeName turns a folder or file name into an identifier usable as a URL
// path segment and an HTML anchor id. Whitespace and the characters
// ": / , . -" become underscores. SafeName(SafeName(s)) == SafeName(s).
func SafeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		switch r {
		case ':', '/', ',', '.', '-':
			return '_'
		}
		return r
	}, name)
}
