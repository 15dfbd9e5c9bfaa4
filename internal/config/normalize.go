package config

import (
	"fmt"
	"os"
	"strings"
)

// ArchivePathSeparator separates archive roots in DASPUB_ARCHIVE_PATHS and in
// single archive.paths entries.
const ArchivePathSeparator = ";"

func (c *Config) normalize() error {
	if err := c.normalizeArchive(); err != nil {
		return err
	}
	c.normalizeFiles()
	c.normalizeTypes()
	if err := c.normalizeCatalog(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeArchive() error {
	paths := c.Archive.Paths
	if len(paths) == 0 {
		if value, ok := os.LookupEnv(envArchivePaths); ok {
			paths = []string{value}
		}
	}

	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, entry := range paths {
		for _, part := range SplitArchivePaths(entry) {
			expanded, err := expandPath(part)
			if err != nil {
				return fmt.Errorf("archive.paths: %w", err)
			}
			if _, dup := seen[expanded]; dup {
				continue
			}
			seen[expanded] = struct{}{}
			out = append(out, expanded)
		}
	}
	c.Archive.Paths = out
	return nil
}

// SplitArchivePaths splits a ';'-separated list of archive roots, dropping
// empty entries.
func SplitArchivePaths(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ArchivePathSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (c *Config) normalizeFiles() {
	c.Files.CourseMetadata = defaultIfBlank(c.Files.CourseMetadata, defaultCourseMetadataFile)
	c.Files.CourseSyllabus = defaultIfBlank(c.Files.CourseSyllabus, defaultCourseSyllabusFile)
	c.Files.AssignmentMetadata = defaultIfBlank(c.Files.AssignmentMetadata, defaultAssignmentMetadataFile)
	c.Files.AssignmentSyllabus = defaultIfBlank(c.Files.AssignmentSyllabus, defaultAssignmentSyllabusFile)
	c.Files.SubmissionTable = defaultIfBlank(c.Files.SubmissionTable, defaultSubmissionTableFile)
}

func (c *Config) normalizeTypes() {
	c.Types.Images = normalizeExtensions(c.Types.Images, defaultImageTypes)
	c.Types.ProcessableImages = normalizeExtensions(c.Types.ProcessableImages, defaultProcessableImageTypes)
	c.Types.Videos = normalizeExtensions(c.Types.Videos, defaultVideoTypes)
	c.Types.PDFs = normalizeExtensions(c.Types.PDFs, defaultPDFTypes)
	c.Types.Metadata = normalizeExtensions(c.Types.Metadata, defaultMetadataTypes)
}

func (c *Config) normalizeCatalog() error {
	var err error
	c.Catalog.Path = defaultIfBlank(c.Catalog.Path, defaultCatalogPath)
	if c.Catalog.Path, err = expandPath(c.Catalog.Path); err != nil {
		return fmt.Errorf("catalog.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

// normalizeExtensions lower-cases, strips leading dots, and de-duplicates
// values. An empty result falls back to defaults.
func normalizeExtensions(values, defaults []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimLeft(strings.TrimSpace(value), "."))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return cloneStrings(defaults)
	}
	return out
}

func defaultIfBlank(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
