package testsupport

import (
	"path/filepath"
	"testing"

	"daspub/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Archive.Paths = []string{filepath.Join(base, "archive")}
	cfgVal.Catalog.Path = filepath.Join(base, "catalog", "catalog.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithArchiveTree points the config at the given fixture tree.
func WithArchiveTree(tree *ArchiveTree) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Paths = []string{tree.Root}
		b.cfg.Files = tree.Files
	}
}

// WithArchivePaths replaces the configured archive roots.
func WithArchivePaths(paths ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Paths = append([]string(nil), paths...)
	}
}

// WithSubmissionTable overrides the submission table file name.
func WithSubmissionTable(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Files.SubmissionTable = name
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Logging.Dir)
}
