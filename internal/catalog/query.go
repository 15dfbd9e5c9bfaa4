package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"daspub/internal/archive"
)

// ErrNoRuns is returned when the catalog holds no finished export.
var ErrNoRuns = errors.New("catalog has no finished runs")

const runColumns = "id, started_at, finished_at, roots_json, courses, complete, partial, incomplete, error, assignments, submissions"

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run                                     Run
		startedRaw                              string
		finishedRaw                             sql.NullString
		rootsRaw                                string
		total, complete, partial, incomplete, e int
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&rootsRaw,
		&total,
		&complete,
		&partial,
		&incomplete,
		&e,
		&run.Assignments,
		&run.Submissions,
	); err != nil {
		return Run{}, err
	}
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	run.Roots = decodeList(rootsRaw)
	run.Tally = tallyOf(total, complete, partial, incomplete, e)
	return run, nil
}

// Runs lists exports newest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent finished export.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+runColumns+` FROM runs WHERE finished_at IS NOT NULL ORDER BY started_at DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// Courses returns the courses of a run in export order, optionally limited
// to the given statuses.
func (s *Store) Courses(ctx context.Context, runID string, statuses ...archive.Status) ([]CourseRecord, error) {
	query := `SELECT id, run_id, archive, program, name, safe_name, code, title, path, status, reason,
        description, format, instructors_json, criteria_json FROM courses WHERE run_id = ?`
	args := []any{runID}
	if len(statuses) > 0 {
		query += " AND status IN (" + makePlaceholders(len(statuses)) + ")"
		for _, status := range statuses {
			args = append(args, status.String())
		}
	}
	query += " ORDER BY id"

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var out []CourseRecord
	for rows.Next() {
		var (
			rec                   CourseRecord
			code, title, reason   sql.NullString
			description, format   sql.NullString
			instructors, criteria sql.NullString
			statusRaw             string
		)
		if err := rows.Scan(&rec.ID, &rec.RunID, &rec.Archive, &rec.Program, &rec.Name, &rec.SafeName,
			&code, &title, &rec.Path, &statusRaw, &reason, &description, &format, &instructors, &criteria); err != nil {
			return nil, err
		}
		status, err := archive.ParseStatus(statusRaw)
		if err != nil {
			return nil, fmt.Errorf("course %d: %w", rec.ID, err)
		}
		rec.Status = status
		rec.Code = code.String
		rec.Title = title.String
		rec.Reason = reason.String
		rec.Description = description.String
		rec.Format = format.String
		rec.Instructors = decodeList(instructors.String)
		rec.Criteria = decodeList(criteria.String)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Submissions returns the submissions of a run in export order.
func (s *Store) Submissions(ctx context.Context, runID string) ([]SubmissionRecord, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT s.id, c.name, a.name, s.row_number, s.submission_id, s.safe_id, s.student_name,
            s.evaluation, s.type, s.source_path, s.source_exists, s.output_file
        FROM submissions s
        JOIN assignments a ON a.id = s.assignment_id
        JOIN courses c ON c.id = a.course_id
        WHERE c.run_id = ?
        ORDER BY s.id`, runID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionRecord
	for rows.Next() {
		var (
			rec     SubmissionRecord
			student sql.NullString
			output  sql.NullString
			exists  int
		)
		if err := rows.Scan(&rec.ID, &rec.Course, &rec.Assignment, &rec.Row, &rec.SubmissionID, &rec.SafeID,
			&student, &rec.Evaluation, &rec.Type, &rec.SourcePath, &exists, &output); err != nil {
			return nil, err
		}
		rec.StudentName = student.String
		rec.OutputFile = output.String
		rec.SourceExists = exists != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Prune removes all but the newest keep runs and returns how many were
// deleted. Child rows go with their run.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.execWithRetry(ctx,
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY started_at DESC LIMIT ?)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
