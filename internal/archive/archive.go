package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"daspub/internal/logging"
)

// ErrNotDirectory is returned when an archive root exists but is not a directory.
var ErrNotDirectory = errors.New("archive root is not a directory")

// Archive is one configured archive root.
type Archive struct {
	layout *Layout
	path   string
}

// OpenArchive builds the archive rooted at path. A root that does not exist
// is valid and has no programs.
func OpenArchive(layout *Layout, path string) (*Archive, error) {
	path = filepath.Clean(path)
	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		logging.WarnWithContext(layout.logger, "archive root could not be inspected", "archive_root_unreadable",
			logging.String(logging.FieldArchive, path),
			logging.Error(err),
			logging.String(logging.FieldImpact, "archive lists no programs"),
		)
	case errors.Is(err, fs.ErrNotExist):
		layout.logger.Info("archive root does not exist",
			logging.String(logging.FieldArchive, path),
		)
	}
	return &Archive{layout: layout, path: path}, nil
}

// OpenArchives opens every root in paths, in order. Roots that fail are
// skipped and their errors joined.
func OpenArchives(layout *Layout, paths []string) ([]*Archive, error) {
	archives := make([]*Archive, 0, len(paths))
	var errs []error
	for _, path := range paths {
		a, err := OpenArchive(layout, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		archives = append(archives, a)
	}
	return archives, errors.Join(errs...)
}

// Name returns the root directory base name.
func (a *Archive) Name() string { return filepath.Base(a.path) }

// Path returns the root directory.
func (a *Archive) Path() string { return a.path }

// SafeName returns the URL-safe root name.
func (a *Archive) SafeName() string { return SafeName(a.Name()) }

// Layout returns the layout the archive was opened with.
func (a *Archive) Layout() *Layout { return a.layout }

// Programs lists the program folders sorted by name.
func (a *Archive) Programs() []*Program {
	dirs := a.layout.subdirectories(a.path, logging.String(logging.FieldArchive, a.path))
	out := make([]*Program, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, NewProgram(a.layout, dir))
	}
	return out
}

// Program is one program folder inside an archive.
type Program struct {
	layout *Layout
	path   string
}

// NewProgram builds the program rooted at path.
func NewProgram(layout *Layout, path string) *Program {
	return &Program{layout: layout, path: filepath.Clean(path)}
}

// Name returns the folder name.
func (p *Program) Name() string { return filepath.Base(p.path) }

// Path returns the program folder.
func (p *Program) Path() string { return p.path }

// SafeName returns the URL-safe folder name.
func (p *Program) SafeName() string { return SafeName(p.Name()) }

// Courses lists the course folders sorted by name.
func (p *Program) Courses() []*Course {
	dirs := p.layout.subdirectories(p.path, logging.String(logging.FieldProgram, p.Name()))
	out := make([]*Course, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, NewCourse(p.layout, dir))
	}
	return out
}
