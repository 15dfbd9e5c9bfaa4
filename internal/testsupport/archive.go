package testsupport

import (
	"path/filepath"
	"testing"

	"daspub/internal/config"
)

// ArchiveTree builds an archive directory under a per-test temp root using
// the default file-name conventions.
type ArchiveTree struct {
	t     testing.TB
	Root  string
	Files config.Files
}

// NewArchiveTree creates an empty archive root.
func NewArchiveTree(t testing.TB) *ArchiveTree {
	t.Helper()
	return &ArchiveTree{
		t:     t,
		Root:  MkdirAll(t, filepath.Join(t.TempDir(), "archive")),
		Files: config.Default().Files,
	}
}

// Path joins parts onto the archive root.
func (a *ArchiveTree) Path(parts ...string) string {
	return filepath.Join(append([]string{a.Root}, parts...)...)
}

// Dir creates the directory at parts and returns its path.
func (a *ArchiveTree) Dir(parts ...string) string {
	a.t.Helper()
	return MkdirAll(a.t, a.Path(parts...))
}

// Text writes content to the file at parts and returns its path.
func (a *ArchiveTree) Text(content string, parts ...string) string {
	a.t.Helper()
	path := a.Path(parts...)
	WriteText(a.t, path, content)
	return path
}

// Course creates a course folder with its metadata file and syllabus.
func (a *ArchiveTree) Course(program, course, metadata string) string {
	a.t.Helper()
	dir := a.Dir(program, course)
	WriteText(a.t, filepath.Join(dir, a.Files.CourseMetadata), metadata)
	WriteFile(a.t, filepath.Join(dir, a.Files.CourseSyllabus), 16)
	return dir
}

// Assignment creates an assignment folder with metadata, syllabus, and a
// submission workbook holding a header followed by rows. Source files
// named in the rows are created too.
func (a *ArchiveTree) Assignment(program, course, assignment string, rows ...[]string) string {
	a.t.Helper()
	dir := a.Dir(program, course, assignment)
	WriteText(a.t, filepath.Join(dir, a.Files.AssignmentMetadata), "==Description\n"+assignment+" brief\n")
	WriteFile(a.t, filepath.Join(dir, a.Files.AssignmentSyllabus), 16)

	table := append([][]string{SubmissionHeader()}, rows...)
	WriteXLSX(a.t, filepath.Join(dir, a.Files.SubmissionTable), table)
	for _, row := range rows {
		if len(row) > 12 && row[12] != "" {
			WriteFile(a.t, filepath.Join(dir, row[12]), 8)
		}
	}
	return dir
}
