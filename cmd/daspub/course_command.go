package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"daspub/internal/archive"
)

type courseView struct {
	Name        string           `json:"name"`
	SafeName    string           `json:"safe_name"`
	Code        string           `json:"code,omitempty"`
	Title       string           `json:"title,omitempty"`
	Path        string           `json:"path"`
	Status      archive.Verdict  `json:"status"`
	Description string           `json:"description,omitempty"`
	Format      string           `json:"format,omitempty"`
	Instructors []string         `json:"instructors,omitempty"`
	Criteria    []criterionView  `json:"criteria,omitempty"`
	Assignments []assignmentView `json:"assignments"`
}

type criterionView struct {
	Code string `json:"code,omitempty"`
	Text string `json:"text"`
}

type assignmentView struct {
	Name        string          `json:"name"`
	SafeName    string          `json:"safe_name"`
	Status      archive.Verdict `json:"status"`
	Submissions int             `json:"submissions"`
	Description string          `json:"description,omitempty"`
}

func newCourseCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "course <dir>",
		Short: "Show course metadata and assignment statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := requireDirectoryArg(args)
			if err != nil {
				return err
			}
			layout, err := ctx.layout(cmd)
			if err != nil {
				return err
			}
			view := buildCourseView(archive.NewMemo(), archive.NewCourse(layout, dir))
			if jsonOutput {
				return writeJSON(cmd, view)
			}
			renderCourseView(cmd, view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func buildCourseView(src archive.Source, course *archive.Course) courseView {
	view := courseView{
		Name:        course.Name(),
		SafeName:    course.SafeName(),
		Code:        course.Code(),
		Title:       course.Title(),
		Path:        course.Path(),
		Status:      src.CourseStatus(course),
		Description: course.Description(),
		Format:      course.Format(),
		Instructors: course.Instructors(),
		Assignments: []assignmentView{},
	}
	for _, criterion := range course.Criteria() {
		code, text := archive.SplitCriterion(criterion)
		view.Criteria = append(view.Criteria, criterionView{Code: code, Text: text})
	}
	for _, a := range src.Assignments(course) {
		view.Assignments = append(view.Assignments, assignmentView{
			Name:        a.Name(),
			SafeName:    a.SafeName(),
			Status:      src.AssignmentStatus(a),
			Submissions: len(src.Submissions(a)),
			Description: a.Description(),
		})
	}
	return view
}

func renderCourseView(cmd *cobra.Command, view courseView) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	for _, line := range renderSectionHeader(view.Name, colorize) {
		fmt.Fprintln(out, line)
	}
	fields := []struct{ label, value string }{
		{"Code", view.Code},
		{"Title", view.Title},
		{"Status", statusCell(view.Status.Status, colorize) + reasonSuffix(view.Status.Reason)},
		{"Description", view.Description},
		{"Format", view.Format},
		{"Instructors", strings.Join(view.Instructors, ", ")},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		fmt.Fprintf(out, "%s%-*s %s\n", statusIndent, statusLabelWidth, field.label+":", field.value)
	}
	if len(view.Criteria) > 0 {
		fmt.Fprintf(out, "%s%s\n", statusIndent, "Criteria:")
		for _, c := range view.Criteria {
			if c.Code != "" {
				fmt.Fprintf(out, "%s%s- %s: %s\n", statusIndent, statusIndent, c.Code, c.Text)
			} else {
				fmt.Fprintf(out, "%s%s- %s\n", statusIndent, statusIndent, c.Text)
			}
		}
	}
	fmt.Fprintln(out)

	if len(view.Assignments) == 0 {
		fmt.Fprintln(out, "No assignments found")
		return
	}
	rows := make([][]string, 0, len(view.Assignments))
	for _, a := range view.Assignments {
		rows = append(rows, []string{a.Name, statusCell(a.Status.Status, colorize), strconv.Itoa(a.Submissions), a.Status.Reason})
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		Headers:  []string{"Assignment", "Status", "Submissions", "Reason"},
		Rows:     rows,
		Aligns:   []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		MaxWidth: 60,
	}))
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return " (" + reason + ")"
}
