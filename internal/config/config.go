package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Archive lists the archive roots to traverse.
type Archive struct {
	Paths []string `toml:"paths"`
}

// Files holds the fixed file names looked up inside course and assignment
// folders. Matching is case-insensitive.
type Files struct {
	CourseMetadata     string `toml:"course_metadata"`
	CourseSyllabus     string `toml:"course_syllabus"`
	AssignmentMetadata string `toml:"assignment_metadata"`
	AssignmentSyllabus string `toml:"assignment_syllabus"`
	SubmissionTable    string `toml:"submission_table"`
}

// Types holds the extension sets used to classify submission files.
// Extensions are stored lower-case without the leading dot.
type Types struct {
	Images            []string `toml:"images"`
	ProcessableImages []string `toml:"processable_images"`
	Videos            []string `toml:"videos"`
	PDFs              []string `toml:"pdfs"`
	Metadata          []string `toml:"metadata"`
}

// Catalog contains configuration for the SQLite snapshot export.
type Catalog struct {
	Path string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for daspub.
//
// Configuration sections:
//   - Archive: archive root directories
//   - Files: per-level metadata, syllabus, and submission table names
//   - Types: image, video, pdf, and metadata extension sets
//   - Catalog: snapshot database location
//   - Logging: log format, level, and optional log directory
type Config struct {
	Archive Archive `toml:"archive"`
	Files   Files   `toml:"files"`
	Types   Types   `toml:"types"`
	Catalog Catalog `toml:"catalog"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/daspub/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/daspub/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("daspub.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories daspub writes to.
func (c *Config) EnsureDirectories() error {
	if dir := strings.TrimSpace(c.Logging.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	if path := strings.TrimSpace(c.Catalog.Path); path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog directory %q: %w", dir, err)
		}
	}
	return nil
}

// RequireArchivePaths returns an error when no archive root is configured.
func (c *Config) RequireArchivePaths() error {
	if len(c.Archive.Paths) == 0 {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/daspub/config.toml"
		}
		return fmt.Errorf("archive.paths is empty. Set %s or edit %s (create with 'daspub config init')", envArchivePaths, defaultPath)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
