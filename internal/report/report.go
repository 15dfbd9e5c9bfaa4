package report

import (
	"context"
	"log/slog"

	"daspub/internal/archive"
	"daspub/internal/logging"
)

// Tally counts courses by status.
type Tally struct {
	Complete   int `json:"complete"`
	Partial    int `json:"partial"`
	Incomplete int `json:"incomplete"`
	Error      int `json:"error"`
	Total      int `json:"total"`
}

// Add records one course status.
func (t *Tally) Add(status archive.Status) {
	switch status {
	case archive.StatusComplete:
		t.Complete++
	case archive.StatusPartial:
		t.Partial++
	case archive.StatusIncomplete:
		t.Incomplete++
	default:
		t.Error++
	}
	t.Total++
}

// Percent returns the share of complete courses, rounded down. Partial
// courses count for half.
func (t Tally) Percent() int {
	if t.Total == 0 {
		return 0
	}
	return (2*t.Complete + t.Partial) * 100 / (2 * t.Total)
}

// Entry is the verdict for one course.
type Entry struct {
	Archive string          `json:"archive"`
	Program string          `json:"program"`
	Course  string          `json:"course"`
	Path    string          `json:"path"`
	Verdict archive.Verdict `json:"verdict"`
}

// Report is the per-course listing plus its tally.
type Report struct {
	Entries []Entry `json:"courses"`
	Tally   Tally   `json:"tally"`
	Percent int     `json:"percent_complete"`
}

// Build evaluates every course under archives in walk order. A nil src
// reads the disk directly. Cancellation is checked between courses.
func Build(ctx context.Context, src archive.Source, archives []*archive.Archive, logger *slog.Logger) (Report, error) {
	if src == nil {
		src = archive.Direct{}
	}
	logger = logging.NewComponentLogger(logger, "report")

	var out Report
	err := archive.Walk(src, archives, func(n archive.Node) error {
		if n.Level != archive.LevelCourse {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		v := src.CourseStatus(n.Course)
		out.Entries = append(out.Entries, Entry{
			Archive: n.Archive.Name(),
			Program: n.Program.Name(),
			Course:  n.Course.Name(),
			Path:    n.Course.Path(),
			Verdict: v,
		})
		out.Tally.Add(v.Status)
		return archive.SkipChildren
	})
	if err != nil {
		return Report{}, err
	}
	out.Percent = out.Tally.Percent()

	logger.Info("status report built",
		logging.Int("courses", out.Tally.Total),
		logging.Int("complete", out.Tally.Complete),
		logging.Int("partial", out.Tally.Partial),
		logging.Int("incomplete", out.Tally.Incomplete),
		logging.Int("error", out.Tally.Error),
		logging.Int("percent_complete", out.Percent),
	)
	return out, nil
}
