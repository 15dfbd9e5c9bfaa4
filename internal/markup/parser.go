package markup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// TitleMarker prefixes every section title line.
const TitleMarker = "=="

// ListDelimiter separates inline list items in section bodies.
const ListDelimiter = '*'

// Sections maps section titles to their normalized body text.
type Sections map[string]string

// Get returns the body for title, or "" when the section is absent.
func (s Sections) Get(title string) string {
	if s == nil {
		return ""
	}
	return s[title]
}

// Has reports whether the section title was present in the source.
func (s Sections) Has(title string) bool {
	if s == nil {
		return false
	}
	_, ok := s[title]
	return ok
}

// List splits the named section into items using ListDelimiter.
func (s Sections) List(title string) []string {
	return SplitList(s.Get(title), ListDelimiter)
}

// Parse reads section-delimited text from r.
func Parse(r io.Reader) (Sections, error) {
	result := Sections{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		key  string
		body []string
	)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.Trim(scanner.Text(), "\r\n"))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, TitleMarker) {
			next := strings.TrimSpace(strings.ReplaceAll(line, TitleMarker, ""))
			if next == key {
				continue
			}
			if key != "" {
				result[key] = strings.Join(body, " ")
			}
			key = next
			body = body[:0]
			continue
		}
		body = append(body, line)
	}
	if err := scanner.Err(); err != nil {
		return Sections{}, fmt.Errorf("scan markup: %w", err)
	}
	// The last section is always written, even when no title was ever seen.
	result[key] = strings.Join(body, " ")
	return result, nil
}

// ParseFile parses the file at path. A missing file returns empty sections
// and an error matching fs.ErrNotExist.
func ParseFile(path string) (Sections, error) {
	file, err := os.Open(path)
	if err != nil {
		return Sections{}, err
	}
	defer file.Close()

	sections, err := Parse(file)
	if err != nil {
		return Sections{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return sections, nil
}

// SplitList splits s on delim, trims each piece and drops empty pieces.
func SplitList(s string, delim rune) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, string(delim))
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}
