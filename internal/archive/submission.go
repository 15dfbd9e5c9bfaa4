package archive

import (
	"os"
	"path/filepath"
	"strings"

	"daspub/internal/fileclass"
	"daspub/internal/subtable"
)

// Submission is one row of a submission table, tied to one source file
// relative to the assignment folder.
type Submission struct {
	Row                int
	Year               string
	Semester           string
	CourseNumber       string
	CourseName         string
	StudioMaster       string
	Instructor         string
	AssignmentName     string
	AssignmentDuration string
	StudentName        string
	ItemCount          string
	ID                 string
	SourcePath         string
	EvaluationText     string

	kind SubmissionType
}

func newSubmission(layout *Layout, dir string, record subtable.Record) Submission {
	source := filepath.Clean(filepath.Join(dir, record.FileName))
	return Submission{
		Row:                record.Row,
		Year:               record.Year,
		Semester:           record.Semester,
		CourseNumber:       record.CourseNumber,
		CourseName:         record.CourseName,
		StudioMaster:       record.StudioMaster,
		Instructor:         record.Instructor,
		AssignmentName:     record.AssignmentName,
		AssignmentDuration: record.AssignmentDuration,
		StudentName:        record.StudentName,
		ItemCount:          record.ItemCount,
		ID:                 record.ID,
		SourcePath:         source,
		EvaluationText:     record.Evaluation,
		kind:               classifySubmission(layout.classifier, source),
	}
}

// PDF is checked first because its extensions may also appear in the image set.
func classifySubmission(classifier *fileclass.Classifier, name string) SubmissionType {
	switch {
	case classifier.IsPDF(name):
		return TypePDF
	case classifier.IsImage(name):
		return TypeImage
	case classifier.IsVideo(name):
		return TypeVideo
	default:
		return TypeOther
	}
}

// Type returns the submission type derived from the source file extension.
func (s Submission) Type() SubmissionType { return s.kind }

// Evaluation returns the normalized evaluation.
func (s Submission) Evaluation() Evaluation { return NormalizeEvaluation(s.EvaluationText) }

// IsImage reports whether the source is an image.
func (s Submission) IsImage() bool { return s.kind == TypeImage }

// IsVideo reports whether the source is a video.
func (s Submission) IsVideo() bool { return s.kind == TypeVideo }

// IsPDF reports whether the source is a PDF.
func (s Submission) IsPDF() bool { return s.kind == TypePDF }

// Exists reports whether the source file is present. It is checked on every call.
func (s Submission) Exists() bool {
	info, err := os.Stat(s.SourcePath)
	return err == nil && !info.IsDir()
}

// SourceFileName returns the base name of the source file.
func (s Submission) SourceFileName() string {
	return filepath.Base(s.SourcePath)
}

// OutputFileName returns the JPEG name published for the source, or "" when
// the source file is missing.
func (s Submission) OutputFileName() string {
	if !s.Exists() {
		return ""
	}
	return jpegName(s.SourceFileName())
}

// ThumbnailFileName returns the thumbnail JPEG name. Thumbnails share the
// output name and live in their own folder.
func (s Submission) ThumbnailFileName() string {
	return s.OutputFileName()
}

// SafeID returns the submission id as a URL-safe identifier.
func (s Submission) SafeID() string {
	return SafeName(s.ID)
}

func jpegName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}
