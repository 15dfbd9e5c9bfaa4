package logging

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one CLI invocation or catalog export.
	FieldRunID = "run_id"
	// FieldArchive is the archive root path.
	FieldArchive = "archive"
	// FieldProgram is the program folder name.
	FieldProgram = "program"
	// FieldCourse is the course folder name.
	FieldCourse = "course"
	// FieldAssignment is the assignment folder name.
	FieldAssignment = "assignment"
	// FieldPath is the filesystem path an event refers to.
	FieldPath = "path"
	// FieldRow is the 1-based submission table row.
	FieldRow = "row"
	// FieldEventType names the kind of event for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType names the decision logged by DecisionAttrs.
	FieldDecisionType = "decision_type"
)

type contextKey int

const (
	runIDKey contextKey = iota
	courseKey
	assignmentKey
)

// WithRunID tags ctx with a run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, strings.TrimSpace(id))
}

// WithCourse tags ctx with the course being processed.
func WithCourse(ctx context.Context, course string) context.Context {
	return context.WithValue(ctx, courseKey, strings.TrimSpace(course))
}

// WithAssignment tags ctx with the assignment being processed.
func WithAssignment(ctx context.Context, assignment string) context.Context {
	return context.WithValue(ctx, assignmentKey, strings.TrimSpace(assignment))
}

// RunIDFromContext returns the run identifier stored on ctx.
func RunIDFromContext(ctx context.Context) (string, bool) {
	return stringFromContext(ctx, runIDKey)
}

func stringFromContext(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(key).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := stringFromContext(ctx, runIDKey); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if course, ok := stringFromContext(ctx, courseKey); ok {
		fields = append(fields, slog.String(FieldCourse, course))
	}
	if assignment, ok := stringFromContext(ctx, assignmentKey); ok {
		fields = append(fields, slog.String(FieldAssignment, assignment))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
