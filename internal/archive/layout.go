package archive

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"daspub/internal/config"
	"daspub/internal/fileclass"
	"daspub/internal/logging"
)

// MetadataPolicy decides whether a non-empty submission list carries complete
// metadata. Returning false downgrades an assignment to Partial.
type MetadataPolicy func([]Submission) bool

// AlwaysComplete accepts every submission list.
func AlwaysComplete([]Submission) bool { return true }

// Conventions names the fixed files looked up at each level and the
// extension sets used to classify submissions. PDFTypes defaults to
// {"pdf"} when empty.
type Conventions struct {
	CourseMetadataFile     string
	CourseSyllabusFile     string
	AssignmentMetadataFile string
	AssignmentSyllabusFile string
	SubmissionTableFile    string

	ImageTypes            []string
	ProcessableImageTypes []string
	VideoTypes            []string
	PDFTypes              []string
	MetadataTypes         []string

	// MetadataPolicy defaults to AlwaysComplete when nil.
	MetadataPolicy MetadataPolicy
}

// DefaultConventions returns the conventions of a default configuration.
func DefaultConventions() Conventions {
	cfg := config.Default()
	return ConventionsFromConfig(&cfg)
}

// ConventionsFromConfig copies the [files] and [types] sections of cfg.
func ConventionsFromConfig(cfg *config.Config) Conventions {
	if cfg == nil {
		return DefaultConventions()
	}
	return Conventions{
		CourseMetadataFile:     cfg.Files.CourseMetadata,
		CourseSyllabusFile:     cfg.Files.CourseSyllabus,
		AssignmentMetadataFile: cfg.Files.AssignmentMetadata,
		AssignmentSyllabusFile: cfg.Files.AssignmentSyllabus,
		SubmissionTableFile:    cfg.Files.SubmissionTable,
		ImageTypes:             slices.Clone(cfg.Types.Images),
		ProcessableImageTypes:  slices.Clone(cfg.Types.ProcessableImages),
		VideoTypes:             slices.Clone(cfg.Types.Videos),
		PDFTypes:               slices.Clone(cfg.Types.PDFs),
		MetadataTypes:          slices.Clone(cfg.Types.Metadata),
	}
}

func (c Conventions) clone() Conventions {
	out := c
	out.ImageTypes = slices.Clone(c.ImageTypes)
	out.ProcessableImageTypes = slices.Clone(c.ProcessableImageTypes)
	out.VideoTypes = slices.Clone(c.VideoTypes)
	out.MetadataTypes = slices.Clone(c.MetadataTypes)
	out.PDFTypes = slices.Clone(c.PDFTypes)
	if len(out.PDFTypes) == 0 {
		out.PDFTypes = []string{"pdf"}
	}
	if out.MetadataPolicy == nil {
		out.MetadataPolicy = AlwaysComplete
	}
	return out
}

// Layout is the immutable context shared by every entity of one traversal.
type Layout struct {
	conventions Conventions
	classifier  *fileclass.Classifier
	logger      *slog.Logger
}

// NewLayout builds a Layout. A nil logger discards output.
func NewLayout(conventions Conventions, logger *slog.Logger) *Layout {
	conventions = conventions.clone()
	return &Layout{
		conventions: conventions,
		classifier: fileclass.New(fileclass.Rules{
			DescriptionFiles:      []string{conventions.CourseMetadataFile, conventions.AssignmentMetadataFile},
			SyllabusFiles:         []string{conventions.CourseSyllabusFile, conventions.AssignmentSyllabusFile},
			SubmissionTableFile:   conventions.SubmissionTableFile,
			ProcessableImageTypes: conventions.ProcessableImageTypes,
			ImageTypes:            conventions.ImageTypes,
			VideoTypes:            conventions.VideoTypes,
			PDFTypes:              conventions.PDFTypes,
			MetadataTypes:         conventions.MetadataTypes,
		}),
		logger: logging.NewComponentLogger(logger, "archive"),
	}
}

// Conventions returns a copy of the layout conventions.
func (l *Layout) Conventions() Conventions {
	return l.conventions.clone()
}

// Classifier returns the classifier derived from the conventions.
func (l *Layout) Classifier() *fileclass.Classifier {
	return l.classifier
}

// Logger returns the layout logger.
func (l *Layout) Logger() *slog.Logger {
	return l.logger
}

// findFile looks for a regular file in dir whose name matches name ignoring
// case. A missing dir or file is not an error.
func (l *Layout) findFile(dir, name string) (string, bool, error) {
	exact := filepath.Join(dir, name)
	if info, err := os.Stat(exact); err == nil {
		if !info.IsDir() {
			return exact, true, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", false, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	for _, entry := range entries {
		if entry.IsDir() || !fileclass.EqualFold(entry.Name(), name) {
			continue
		}
		return filepath.Join(dir, entry.Name()), true, nil
	}
	return "", false, nil
}

// subdirectories lists the child folders of dir sorted by name. Hidden
// folders are skipped. Read failures are logged and yield no children.
func (l *Layout) subdirectories(dir string, attrs ...logging.Attr) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			attrs = append(attrs,
				logging.String(logging.FieldPath, dir),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check directory permissions"),
				logging.String(logging.FieldImpact, "subtree treated as empty"),
			)
			logging.WarnWithContext(l.logger, "directory could not be listed", "directory_read_failed", attrs...)
		}
		return nil
	}

	var dirs []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, name)); err == nil {
				isDir = info.IsDir()
			}
		}
		if l.classifier.Classify(name, isDir) != fileclass.Folder {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, name))
	}
	slices.Sort(dirs)
	return dirs
}
