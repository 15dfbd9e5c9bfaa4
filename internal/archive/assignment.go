package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"daspub/internal/logging"
	"daspub/internal/markup"
	"daspub/internal/subtable"
)

// Section titles read from assignment metadata.
const (
	SectionDescription = "Description"
)

// Assignment is one assignment folder inside a course.
type Assignment struct {
	layout      *Layout
	path        string
	description string
}

// NewAssignment builds the assignment rooted at path and parses its
// metadata file.
func NewAssignment(layout *Layout, path string) *Assignment {
	a := &Assignment{layout: layout, path: filepath.Clean(path)}
	a.description = a.parseMetadata()
	return a
}

func (a *Assignment) parseMetadata() string {
	path, ok, err := a.layout.findFile(a.path, a.layout.conventions.AssignmentMetadataFile)
	if err != nil || !ok {
		return ""
	}
	sections, err := markup.ParseFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(a.layout.logger, "assignment metadata unreadable", "metadata_read_failed",
				logging.String(logging.FieldAssignment, a.Name()),
				logging.String(logging.FieldPath, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "assignment description left empty"),
			)
		}
		return ""
	}
	return sections.Get(SectionDescription)
}

// Name returns the folder name, which is also the display name.
func (a *Assignment) Name() string { return filepath.Base(a.path) }

// Path returns the assignment folder.
func (a *Assignment) Path() string { return a.path }

// SafeName returns the URL-safe folder name.
func (a *Assignment) SafeName() string { return SafeName(a.Name()) }

// Description returns the Description section of the metadata file.
func (a *Assignment) Description() string { return a.description }

// MetadataPath returns the metadata file when present.
func (a *Assignment) MetadataPath() (string, bool) {
	path, ok, _ := a.layout.findFile(a.path, a.layout.conventions.AssignmentMetadataFile)
	return path, ok
}

// HasMetadataFile reports whether the metadata file is present.
func (a *Assignment) HasMetadataFile() bool {
	_, ok := a.MetadataPath()
	return ok
}

// SyllabusPath returns the syllabus PDF when present.
func (a *Assignment) SyllabusPath() (string, bool) {
	path, ok, _ := a.layout.findFile(a.path, a.layout.conventions.AssignmentSyllabusFile)
	return path, ok
}

// HasSyllabusFile reports whether the syllabus PDF is present.
func (a *Assignment) HasSyllabusFile() bool {
	_, ok := a.SyllabusPath()
	return ok
}

// SubmissionTablePath returns the submission table when present.
func (a *Assignment) SubmissionTablePath() (string, bool) {
	path, ok, _ := a.layout.findFile(a.path, a.layout.conventions.SubmissionTableFile)
	return path, ok
}

// HasSubmissionTable reports whether the submission table is present.
func (a *Assignment) HasSubmissionTable() bool {
	_, ok := a.SubmissionTablePath()
	return ok
}

// TableResult is the outcome of reading the submission table.
type TableResult struct {
	Path        string
	Present     bool
	Submissions []Submission
	Rejections  []subtable.Rejection
	// Err is set when the table exists but could not be read.
	Err error
}

// LoadSubmissions reads the submission table without logging. Most callers
// want Submissions.
func (a *Assignment) LoadSubmissions() TableResult {
	path, ok, err := a.layout.findFile(a.path, a.layout.conventions.SubmissionTableFile)
	if err != nil {
		return TableResult{Err: fmt.Errorf("locate submission table: %w", err)}
	}
	if !ok {
		return TableResult{}
	}
	result := TableResult{Path: path, Present: true}
	table, err := subtable.Load(path)
	if err != nil {
		result.Err = err
		return result
	}
	result.Rejections = table.Rejections
	if len(table.Records) > 0 {
		result.Submissions = make([]Submission, 0, len(table.Records))
		for _, record := range table.Records {
			result.Submissions = append(result.Submissions, newSubmission(a.layout, a.path, record))
		}
	}
	return result
}

// Submissions reads the submission table on every call. A missing or broken
// table yields no submissions; rejected rows are logged and skipped.
func (a *Assignment) Submissions() []Submission {
	result := a.LoadSubmissions()
	a.logTableResult(result)
	return result.Submissions
}

func (a *Assignment) logTableResult(result TableResult) {
	logger := a.layout.logger
	if result.Err != nil {
		logging.ErrorWithContext(logger, "submission table could not be loaded", "submission_table_failed",
			logging.String(logging.FieldAssignment, a.Name()),
			logging.String(logging.FieldPath, firstNonEmpty(result.Path, a.path)),
			logging.Error(result.Err),
			logging.String(logging.FieldErrorHint, "re-save the table as .xlsx or .csv"),
		)
		return
	}
	for _, rejection := range result.Rejections {
		logging.WarnWithContext(logger, "submission row skipped", "submission_row_rejected",
			logging.String(logging.FieldAssignment, a.Name()),
			logging.String(logging.FieldPath, result.Path),
			logging.Int(logging.FieldRow, rejection.Row),
			logging.Any("missing", rejection.Missing),
			logging.String(logging.FieldErrorHint, "fill in id, year, course number, instructor, student name, and file name"),
			logging.String(logging.FieldImpact, "row not published"),
		)
	}
}

// SubmissionsOf returns the submissions of type t.
func (a *Assignment) SubmissionsOf(t SubmissionType) []Submission {
	return filterSubmissions(a.Submissions(), func(s Submission) bool { return s.Type() == t })
}

// SubmissionsWith returns the submissions of type t with evaluation e.
func (a *Assignment) SubmissionsWith(t SubmissionType, e Evaluation) []Submission {
	return filterSubmissions(a.Submissions(), func(s Submission) bool {
		return s.Type() == t && s.Evaluation() == e
	})
}

// HasImageSubmissions reports whether any submission is an image.
func (a *Assignment) HasImageSubmissions() bool {
	return len(a.SubmissionsOf(TypeImage)) > 0
}

// HasVideoSubmissions reports whether any submission is a video.
func (a *Assignment) HasVideoSubmissions() bool {
	return len(a.SubmissionsOf(TypeVideo)) > 0
}

// Status computes the assignment status.
func (a *Assignment) Status() Status {
	return a.Evaluate().Status
}

// Evaluate runs the status waterfall; the first failing check wins.
func (a *Assignment) Evaluate() Verdict {
	return a.inspect().verdict
}

type inspection struct {
	verdict     Verdict
	tableRead   bool
	submissions []Submission
}

// inspect evaluates the waterfall and keeps the submissions read on the way
// so Memo can serve both from a single table read.
func (a *Assignment) inspect() inspection {
	conv := a.layout.conventions
	checks := []struct {
		name   string
		reason string
	}{
		{conv.AssignmentSyllabusFile, "missing syllabus file"},
		{conv.AssignmentMetadataFile, "missing assignment metadata file"},
		{conv.SubmissionTableFile, "missing submission table"},
	}
	for _, check := range checks {
		_, ok, err := a.layout.findFile(a.path, check.name)
		if err != nil {
			return inspection{verdict: a.decide(verdict(StatusError, fmt.Sprintf("cannot check %s: %v", check.name, err)))}
		}
		if !ok {
			return inspection{verdict: a.decide(verdict(StatusIncomplete, check.reason))}
		}
	}

	result := a.LoadSubmissions()
	a.logTableResult(result)
	out := inspection{tableRead: true, submissions: result.Submissions}
	switch {
	case result.Err != nil || !result.Present:
		out.verdict = verdict(StatusIncomplete, "submission table does not conform")
	case len(result.Submissions) == 0:
		out.verdict = verdict(StatusPartial, "no submissions")
	case !conv.MetadataPolicy(result.Submissions):
		out.verdict = verdict(StatusPartial, "incomplete submission metadata")
	default:
		out.verdict = verdict(StatusComplete, "")
	}
	out.verdict = a.decide(out.verdict)
	return out
}

func (a *Assignment) decide(v Verdict) Verdict {
	a.layout.logger.Debug("assignment status",
		logging.Args(append(logging.DecisionAttrs("assignment_status", v.Status.String(), v.Reason),
			logging.String(logging.FieldAssignment, a.Name()),
			logging.String(logging.FieldPath, a.path),
		)...)...,
	)
	return v
}

func filterSubmissions(items []Submission, keep func(Submission) bool) []Submission {
	var out []Submission
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
