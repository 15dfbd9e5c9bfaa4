package logging

import "strings"

// FormatSubject builds the course/assignment subject string used in console output.
func FormatSubject(course, assignment string) string {
	course = strings.TrimSpace(course)
	assignment = strings.TrimSpace(assignment)
	switch {
	case course != "" && assignment != "":
		return course + " · " + assignment
	case course != "":
		return course
	default:
		return assignment
	}
}
