package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"daspub/internal/archive"
	"daspub/internal/logging"
	"daspub/internal/report"
)

// ErrLocked is returned when another export holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another export")

// LockPath returns the advisory lock file guarding the catalog.
func (s *Store) LockPath() string { return s.path + ".lock" }

// Export writes the archives as a new run in a single transaction. A nil src
// reads the disk directly; pass a *archive.Memo to reuse statuses computed
// elsewhere in the same invocation.
func (s *Store) Export(ctx context.Context, src archive.Source, archives []*archive.Archive, logger *slog.Logger) (Run, error) {
	ctx = ensureContext(ctx)
	if src == nil {
		src = archive.Direct{}
	}

	lock := flock.New(s.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return Run{}, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !ok {
		return Run{}, ErrLocked
	}

	run := Run{ID: uuid.NewString(), StartedAt: time.Now().UTC()}
	for _, a := range archives {
		run.Roots = append(run.Roots, a.Path())
	}
	ctx = logging.WithRunID(ctx, run.ID)
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "catalog"))

	defer func() {
		if err := lock.Unlock(); err != nil {
			logging.WarnWithContext(logger, "failed to release catalog lock", "catalog_unlock_failed",
				logging.String(logging.FieldPath, s.LockPath()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "remove the lock file if no export is running"),
				logging.String(logging.FieldImpact, "next export may report the catalog as locked"),
			)
		}
	}()

	logger.Info("catalog export started",
		logging.String(logging.FieldPath, s.path),
		logging.Int("roots", len(run.Roots)),
	)
	started := time.Now()

	var tx *sql.Tx
	if err := retryOnBusy(ctx, func() error {
		var beginErr error
		tx, beginErr = s.db.BeginTx(ctx, nil)
		return beginErr
	}); err != nil {
		return Run{}, fmt.Errorf("begin export tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	roots, err := json.Marshal(run.Roots)
	if err != nil {
		return Run{}, fmt.Errorf("encode roots: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, roots_json) VALUES (?, ?, ?)`,
		run.ID, run.StartedAt.Format(timeLayout), string(roots),
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	w := &exportWriter{ctx: ctx, tx: tx, src: src, run: &run}
	if err := archive.Walk(src, archives, w.visit); err != nil {
		return Run{}, err
	}

	finished := time.Now().UTC()
	run.FinishedAt = &finished
	if _, err := tx.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, courses = ?, complete = ?, partial = ?, incomplete = ?, error = ?,
            assignments = ?, submissions = ? WHERE id = ?`,
		nullableTime(run.FinishedAt),
		run.Tally.Total, run.Tally.Complete, run.Tally.Partial, run.Tally.Incomplete, run.Tally.Error,
		run.Assignments, run.Submissions, run.ID,
	); err != nil {
		return Run{}, fmt.Errorf("finish run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit export: %w", err)
	}

	logger.Info("catalog export finished",
		logging.Int("courses", run.Tally.Total),
		logging.Int("assignments", run.Assignments),
		logging.Int("submissions", run.Submissions),
		logging.Duration("elapsed", time.Since(started)),
	)
	return run, nil
}

type exportWriter struct {
	ctx      context.Context
	tx       *sql.Tx
	src      archive.Source
	run      *Run
	courseID int64
}

func (w *exportWriter) visit(n archive.Node) error {
	if err := w.ctx.Err(); err != nil {
		return err
	}
	switch n.Level {
	case archive.LevelCourse:
		return w.course(n)
	case archive.LevelAssignment:
		return w.assignment(n.Assignment)
	}
	return nil
}

func (w *exportWriter) course(n archive.Node) error {
	c := n.Course
	v := w.src.CourseStatus(c)
	w.run.Tally.Add(v.Status)

	instructors, err := encodeList(c.Instructors())
	if err != nil {
		return fmt.Errorf("encode instructors: %w", err)
	}
	criteria, err := encodeList(c.Criteria())
	if err != nil {
		return fmt.Errorf("encode criteria: %w", err)
	}
	res, err := w.tx.ExecContext(w.ctx,
		`INSERT INTO courses (
            run_id, archive, program, name, safe_name, code, title, path,
            status, reason, description, format, instructors_json, criteria_json
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.run.ID,
		n.Archive.Name(),
		n.Program.Name(),
		c.Name(),
		c.SafeName(),
		nullableString(c.Code()),
		nullableString(c.Title()),
		c.Path(),
		v.Status.String(),
		nullableString(v.Reason),
		nullableString(c.Description()),
		nullableString(c.Format()),
		instructors,
		criteria,
	)
	if err != nil {
		return fmt.Errorf("insert course %s: %w", c.Name(), err)
	}
	w.courseID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	return nil
}

func (w *exportWriter) assignment(a *archive.Assignment) error {
	v := w.src.AssignmentStatus(a)
	res, err := w.tx.ExecContext(w.ctx,
		`INSERT INTO assignments (course_id, name, safe_name, path, status, reason, description)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.courseID,
		a.Name(),
		a.SafeName(),
		a.Path(),
		v.Status.String(),
		nullableString(v.Reason),
		nullableString(a.Description()),
	)
	if err != nil {
		return fmt.Errorf("insert assignment %s: %w", a.Name(), err)
	}
	assignmentID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	w.run.Assignments++

	for _, sub := range w.src.Submissions(a) {
		if _, err := w.tx.ExecContext(w.ctx,
			`INSERT INTO submissions (
                assignment_id, row_number, submission_id, safe_id, year, semester,
                course_number, course_name, studio_master, instructor, assignment_name,
                assignment_duration, student_name, item_count, evaluation, type,
                source_path, source_exists, output_file
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			assignmentID,
			sub.Row,
			sub.ID,
			sub.SafeID(),
			nullableString(sub.Year),
			nullableString(sub.Semester),
			nullableString(sub.CourseNumber),
			nullableString(sub.CourseName),
			nullableString(sub.StudioMaster),
			nullableString(sub.Instructor),
			nullableString(sub.AssignmentName),
			nullableString(sub.AssignmentDuration),
			nullableString(sub.StudentName),
			nullableString(sub.ItemCount),
			sub.Evaluation().String(),
			sub.Type().String(),
			sub.SourcePath,
			boolToInt(sub.Exists()),
			nullableString(sub.OutputFileName()),
		); err != nil {
			return fmt.Errorf("insert submission row %d of %s: %w", sub.Row, a.Name(), err)
		}
		w.run.Submissions++
	}
	return nil
}

// tallyOf is used by queries that rebuild a Run from stored counts.
func tallyOf(total, complete, partial, incomplete, errored int) report.Tally {
	return report.Tally{Total: total, Complete: complete, Partial: partial, Incomplete: incomplete, Error: errored}
}
