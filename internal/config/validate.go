package config

import (
	"errors"
	"fmt"
	"strings"

	"daspub/internal/subtable"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFiles(); err != nil {
		return err
	}
	if err := c.validateTypes(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFiles() error {
	names := []struct {
		key   string
		value string
	}{
		{"files.course_metadata", c.Files.CourseMetadata},
		{"files.course_syllabus", c.Files.CourseSyllabus},
		{"files.assignment_metadata", c.Files.AssignmentMetadata},
		{"files.assignment_syllabus", c.Files.AssignmentSyllabus},
		{"files.submission_table", c.Files.SubmissionTable},
	}
	for _, name := range names {
		if strings.TrimSpace(name.value) == "" {
			return fmt.Errorf("%s must be set", name.key)
		}
		if strings.ContainsAny(name.value, `/\`) {
			return fmt.Errorf("%s must be a bare file name, got %q", name.key, name.value)
		}
	}

	assignmentNames := map[string]string{}
	for _, name := range names[2:] {
		key := strings.ToLower(name.value)
		if other, dup := assignmentNames[key]; dup {
			return fmt.Errorf("%s and %s must differ", other, name.key)
		}
		assignmentNames[key] = name.key
	}
	if strings.EqualFold(c.Files.CourseMetadata, c.Files.CourseSyllabus) {
		return errors.New("files.course_metadata and files.course_syllabus must differ")
	}

	if !subtable.Supported(c.Files.SubmissionTable) {
		return fmt.Errorf("files.submission_table %q has an unsupported format (use .xlsx, .xlsm, or .csv)", c.Files.SubmissionTable)
	}
	return nil
}

func (c *Config) validateTypes() error {
	if len(c.Types.Images) == 0 {
		return errors.New("types.images must include at least one extension")
	}
	if len(c.Types.Videos) == 0 {
		return errors.New("types.videos must include at least one extension")
	}
	images := make(map[string]struct{}, len(c.Types.Images))
	for _, ext := range c.Types.Images {
		images[ext] = struct{}{}
	}
	for _, ext := range c.Types.Videos {
		if _, clash := images[ext]; clash {
			return fmt.Errorf("extension %q is listed in both types.images and types.videos", ext)
		}
	}
	videos := make(map[string]struct{}, len(c.Types.Videos))
	for _, ext := range c.Types.Videos {
		videos[ext] = struct{}{}
	}
	for _, ext := range c.Types.PDFs {
		if _, clash := videos[ext]; clash {
			return fmt.Errorf("extension %q is listed in both types.pdfs and types.videos", ext)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
}
