package catalog

import (
	"time"

	"daspub/internal/archive"
	"daspub/internal/report"
)

// Run is one export.
type Run struct {
	ID          string       `json:"id"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
	Roots       []string     `json:"roots"`
	Tally       report.Tally `json:"tally"`
	Assignments int          `json:"assignments"`
	Submissions int          `json:"submissions"`
}

// Finished reports whether the export committed.
func (r Run) Finished() bool { return r.FinishedAt != nil }

// CourseRecord is an exported course.
type CourseRecord struct {
	ID          int64          `json:"id"`
	RunID       string         `json:"run_id"`
	Archive     string         `json:"archive"`
	Program     string         `json:"program"`
	Name        string         `json:"name"`
	SafeName    string         `json:"safe_name"`
	Code        string         `json:"code,omitempty"`
	Title       string         `json:"title,omitempty"`
	Path        string         `json:"path"`
	Status      archive.Status `json:"status"`
	Reason      string         `json:"reason,omitempty"`
	Description string         `json:"description,omitempty"`
	Format      string         `json:"format,omitempty"`
	Instructors []string       `json:"instructors,omitempty"`
	Criteria    []string       `json:"criteria,omitempty"`
}

// SubmissionRecord is an exported submission with its assignment and course
// names.
type SubmissionRecord struct {
	ID           int64  `json:"id"`
	Course       string `json:"course"`
	Assignment   string `json:"assignment"`
	Row          int    `json:"row"`
	SubmissionID string `json:"submission_id"`
	SafeID       string `json:"safe_id"`
	StudentName  string `json:"student_name"`
	Evaluation   string `json:"evaluation"`
	Type         string `json:"type"`
	SourcePath   string `json:"source_path"`
	SourceExists bool   `json:"source_exists"`
	OutputFile   string `json:"output_file,omitempty"`
}
