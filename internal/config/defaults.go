package config

const (
	defaultCourseMetadataFile     = "course.txt"
	defaultCourseSyllabusFile     = "course.pdf"
	defaultAssignmentMetadataFile = "assignment.txt"
	defaultAssignmentSyllabusFile = "assignment.pdf"
	defaultSubmissionTableFile    = "assignment.xlsx"
	defaultCatalogPath            = "~/.local/share/daspub/catalog.db"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"

	envArchivePaths = "DASPUB_ARCHIVE_PATHS"
)

var (
	// PDF is listed with the images so submission PDFs are picked up by
	// image listings; previews treat them as non-processable.
	defaultImageTypes            = []string{"jpg", "jpeg", "png", "gif", "tif", "tiff", "pdf"}
	defaultProcessableImageTypes = []string{"jpg", "jpeg", "png", "gif"}
	defaultVideoTypes            = []string{"mp4", "ogg", "webm"}
	defaultPDFTypes              = []string{"pdf"}
	defaultMetadataTypes         = []string{"txt", "xlsx", "xlsm", "csv", "json"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Files: Files{
			CourseMetadata:     defaultCourseMetadataFile,
			CourseSyllabus:     defaultCourseSyllabusFile,
			AssignmentMetadata: defaultAssignmentMetadataFile,
			AssignmentSyllabus: defaultAssignmentSyllabusFile,
			SubmissionTable:    defaultSubmissionTableFile,
		},
		Types: Types{
			Images:            cloneStrings(defaultImageTypes),
			ProcessableImages: cloneStrings(defaultProcessableImageTypes),
			Videos:            cloneStrings(defaultVideoTypes),
			PDFs:              cloneStrings(defaultPDFTypes),
			Metadata:          cloneStrings(defaultMetadataTypes),
		},
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func cloneStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}
