package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"daspub/internal/logging"
	"daspub/internal/markup"
)

// Section titles read from course metadata.
const (
	SectionFormat      = "Format"
	SectionInstructors = "Instructors"
	SectionCriteria    = "CACB Criteria"
)

// Course is one course folder, conventionally named "<code>-<title>".
type Course struct {
	layout      *Layout
	path        string
	description string
	format      string
	instructors []string
	criteria    []string
}

// NewCourse builds the course rooted at path and parses its metadata file.
func NewCourse(layout *Layout, path string) *Course {
	c := &Course{layout: layout, path: filepath.Clean(path)}
	c.parseMetadata()
	return c
}

func (c *Course) parseMetadata() {
	path, ok, err := c.layout.findFile(c.path, c.layout.conventions.CourseMetadataFile)
	if err != nil || !ok {
		return
	}
	sections, err := markup.ParseFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(c.layout.logger, "course metadata unreadable", "metadata_read_failed",
				logging.String(logging.FieldCourse, c.Name()),
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "course description, format, instructors, and criteria left empty"),
			)
		}
		return
	}
	c.description = sections.Get(SectionDescription)
	c.format = sections.Get(SectionFormat)
	c.instructors = sections.List(SectionInstructors)
	c.criteria = sections.List(SectionCriteria)
}

// Name returns the raw folder name.
func (c *Course) Name() string { return filepath.Base(c.path) }

// Path returns the course folder.
func (c *Course) Path() string { return c.path }

// SafeName returns the URL-safe folder name.
func (c *Course) SafeName() string { return SafeName(c.Name()) }

// Code returns the part of the folder name before the first hyphen. It is
// empty when the name has no hyphen.
func (c *Course) Code() string {
	code, _ := splitCourseName(c.Name())
	return code
}

// Title returns the part of the folder name after the first hyphen. It is
// empty when the name has no hyphen.
func (c *Course) Title() string {
	_, title := splitCourseName(c.Name())
	return title
}

func splitCourseName(name string) (string, string) {
	code, title, found := strings.Cut(name, "-")
	if !found {
		return "", ""
	}
	return strings.TrimSpace(code), strings.TrimSpace(title)
}

// Description returns the Description section.
func (c *Course) Description() string { return c.description }

// Format returns the Format section.
func (c *Course) Format() string { return c.format }

// Instructors returns the instructor names in file order.
func (c *Course) Instructors() []string { return append([]string(nil), c.instructors...) }

// Criteria returns the accreditation criteria in file order. Use
// SplitCriterion to separate the optional code token.
func (c *Course) Criteria() []string { return append([]string(nil), c.criteria...) }

// SplitCriterion separates a leading code token such as "A1 - Research" into
// ("A1", "Research"). Criteria without a short single-word prefix return an
// empty code and the trimmed text.
func SplitCriterion(criterion string) (code, text string) {
	criterion = strings.TrimSpace(criterion)
	head, tail, found := strings.Cut(criterion, "-")
	head = strings.TrimSpace(head)
	if !found || head == "" || len(head) > 8 || strings.ContainsFunc(head, isSpace) {
		return "", criterion
	}
	return head, strings.TrimSpace(tail)
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// MetadataPath returns the course metadata file when present.
func (c *Course) MetadataPath() (string, bool) {
	path, ok, _ := c.layout.findFile(c.path, c.layout.conventions.CourseMetadataFile)
	return path, ok
}

// HasMetadataFile reports whether the course metadata file is present.
func (c *Course) HasMetadataFile() bool {
	_, ok := c.MetadataPath()
	return ok
}

// SyllabusPath returns the course syllabus PDF when present.
func (c *Course) SyllabusPath() (string, bool) {
	path, ok, _ := c.layout.findFile(c.path, c.layout.conventions.CourseSyllabusFile)
	return path, ok
}

// HasSyllabusFile reports whether the course syllabus PDF is present.
func (c *Course) HasSyllabusFile() bool {
	_, ok := c.SyllabusPath()
	return ok
}

// Assignments lists the assignment folders sorted by name.
func (c *Course) Assignments() []*Assignment {
	dirs := c.layout.subdirectories(c.path, logging.String(logging.FieldCourse, c.Name()))
	out := make([]*Assignment, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, NewAssignment(c.layout, dir))
	}
	return out
}

// Status computes the course status.
func (c *Course) Status() Status {
	return c.Evaluate().Status
}

// Evaluate checks the course files and rolls up its assignments.
func (c *Course) Evaluate() Verdict {
	return c.evaluate(c.Assignments, (*Assignment).Evaluate)
}

func (c *Course) evaluate(assignments func() []*Assignment, status func(*Assignment) Verdict) Verdict {
	conv := c.layout.conventions
	checks := []struct {
		name   string
		reason string
	}{
		{conv.CourseMetadataFile, "missing course metadata file"},
		{conv.CourseSyllabusFile, "missing course syllabus file"},
	}
	for _, check := range checks {
		_, ok, err := c.layout.findFile(c.path, check.name)
		if err != nil {
			return c.decide(verdict(StatusError, fmt.Sprintf("cannot check %s: %v", check.name, err)))
		}
		if !ok {
			return c.decide(verdict(StatusIncomplete, check.reason))
		}
	}

	children := assignments()
	if len(children) == 0 {
		return c.decide(verdict(StatusIncomplete, "no assignments"))
	}
	for _, child := range children {
		v := status(child)
		switch v.Status {
		case StatusComplete:
			continue
		case StatusPartial:
			return c.decide(verdict(StatusPartial, fmt.Sprintf("assignment %q is partial: %s", child.Name(), v.Reason)))
		default:
			return c.decide(verdict(StatusIncomplete, fmt.Sprintf("assignment %q is %s: %s", child.Name(), v.Status, v.Reason)))
		}
	}
	return c.decide(verdict(StatusComplete, ""))
}

func (c *Course) decide(v Verdict) Verdict {
	c.layout.logger.Debug("course status",
		logging.Args(append(logging.DecisionAttrs("course_status", v.Status.String(), v.Reason),
			logging.String(logging.FieldCourse, c.Name()),
		)...)...,
	)
	return v
}
