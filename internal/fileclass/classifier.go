// Package fileclass classifies archive directory entries by name and
// extension so listings can be filtered down to the entries a level of the
// hierarchy cares about.
package fileclass

import (
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
)

// Category is the classification assigned to a directory entry.
type Category int

const (
	Other Category = iota
	Folder
	ProcessableImage
	NonProcessableImage
	Video
	MetadataFile
	DescriptionTextFile
	SyllabusPDF
	SubmissionTable
)

var categoryNames = map[Category]string{
	Other:               "other",
	Folder:              "folder",
	ProcessableImage:    "processable_image",
	NonProcessableImage: "non_processable_image",
	Video:               "video",
	MetadataFile:        "metadata_file",
	DescriptionTextFile: "description_text_file",
	SyllabusPDF:         "syllabus_pdf",
	SubmissionTable:     "submission_table",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "other"
}

// IsImage reports whether the category is one of the image categories.
func (c Category) IsImage() bool {
	return c == ProcessableImage || c == NonProcessableImage
}

// Rules lists the file names and extensions that drive classification.
// Extensions are compared without the leading dot.
type Rules struct {
	DescriptionFiles      []string
	SyllabusFiles         []string
	SubmissionTableFile   string
	ProcessableImageTypes []string
	ImageTypes            []string
	VideoTypes            []string
	PDFTypes              []string
	MetadataTypes         []string
}

// Classifier maps names to categories. It is immutable and safe for
// concurrent use.
type Classifier struct {
	descriptions map[string]struct{}
	syllabi      map[string]struct{}
	table        string
	processable  map[string]struct{}
	images       map[string]struct{}
	videos       map[string]struct{}
	pdfs         map[string]struct{}
	metadata     map[string]struct{}
}

// New builds a Classifier from rules.
func New(rules Rules) *Classifier {
	return &Classifier{
		descriptions: foldSet(rules.DescriptionFiles),
		syllabi:      foldSet(rules.SyllabusFiles),
		table:        fold(strings.TrimSpace(rules.SubmissionTableFile)),
		processable:  extensionSet(rules.ProcessableImageTypes),
		images:       extensionSet(rules.ImageTypes),
		videos:       extensionSet(rules.VideoTypes),
		pdfs:         extensionSet(rules.PDFTypes),
		metadata:     extensionSet(rules.MetadataTypes),
	}
}

// Classify returns the category for name. Directories are always Folder.
func (c *Classifier) Classify(name string, isDir bool) Category {
	if isDir {
		return Folder
	}
	base := fold(filepath.Base(strings.TrimSpace(name)))
	if base == "" || base == "." {
		return Other
	}
	if _, ok := c.descriptions[base]; ok {
		return DescriptionTextFile
	}
	if _, ok := c.syllabi[base]; ok {
		return SyllabusPDF
	}
	if c.table != "" && base == c.table {
		return SubmissionTable
	}

	ext := Extension(base)
	if ext == "" {
		return Other
	}
	if _, ok := c.processable[ext]; ok {
		return ProcessableImage
	}
	if _, ok := c.images[ext]; ok {
		return NonProcessableImage
	}
	if _, ok := c.videos[ext]; ok {
		return Video
	}
	if _, ok := c.metadata[ext]; ok {
		return MetadataFile
	}
	return Other
}

// ClassifyEntry classifies a directory listing entry. Symlinks are
// classified by name only.
func (c *Classifier) ClassifyEntry(entry fs.DirEntry) Category {
	if entry == nil {
		return Other
	}
	return c.Classify(entry.Name(), entry.IsDir())
}

// Filter keeps the entries whose category is one of want, preserving order.
func (c *Classifier) Filter(entries []fs.DirEntry, want ...Category) []fs.DirEntry {
	if len(want) == 0 {
		return nil
	}
	out := make([]fs.DirEntry, 0, len(entries))
	for _, entry := range entries {
		category := c.ClassifyEntry(entry)
		for _, w := range want {
			if category == w {
				out = append(out, entry)
				break
			}
		}
	}
	return out
}

// IsImage reports whether name has an image extension.
func (c *Classifier) IsImage(name string) bool {
	return c.Classify(name, false).IsImage()
}

// IsVideo reports whether name has a video extension.
func (c *Classifier) IsVideo(name string) bool {
	return c.Classify(name, false) == Video
}

// IsPDF reports whether name has one of the configured PDF extensions.
// It is independent of Classify, so an extension may be both a PDF and an
// image.
func (c *Classifier) IsPDF(name string) bool {
	_, ok := c.pdfs[Extension(strings.TrimSpace(name))]
	return ok
}

// Extension returns the lower-cased extension of name without the dot.
// Names without a dot, and dotfiles such as ".hidden", have no extension.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return fold(strings.TrimPrefix(ext, "."))
}

// EqualFold compares two names the way the classifier does.
func EqualFold(a, b string) bool {
	return fold(a) == fold(b)
}

func fold(value string) string {
	return cases.Fold().String(value)
}

func foldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		set[fold(value)] = struct{}{}
	}
	return set
}

func extensionSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimPrefix(strings.TrimSpace(value), ".")
		if value == "" {
			continue
		}
		set[fold(value)] = struct{}{}
	}
	return set
}
