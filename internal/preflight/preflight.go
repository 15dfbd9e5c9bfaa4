package preflight

import (
	"path/filepath"
	"strings"

	"daspub/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Missing is set when the path does not exist yet.
	Missing bool
	Detail  string
}

// RunAll executes the path checks for the given config in display order:
// archive roots, then the catalog directory, then the log directory.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := make([]Result, 0, len(cfg.Archive.Paths)+2)
	for _, root := range cfg.Archive.Paths {
		results = append(results, CheckReadableDirectory("Archive", root))
	}

	if path := strings.TrimSpace(cfg.Catalog.Path); path != "" {
		results = append(results, CheckWritableDirectory("Catalog directory", filepath.Dir(path)))
	}
	if dir := strings.TrimSpace(cfg.Logging.Dir); dir != "" {
		results = append(results, CheckWritableDirectory("Log directory", dir))
	}
	return results
}

// Failed reports whether any result failed for a reason other than a
// missing archive root.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !(r.Missing && r.Name == "Archive") {
			return true
		}
	}
	return false
}
