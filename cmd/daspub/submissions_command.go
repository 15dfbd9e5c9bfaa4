package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"daspub/internal/archive"
)

type submissionView struct {
	Row          int                    `json:"row"`
	ID           string                 `json:"id"`
	SafeID       string                 `json:"safe_id"`
	Student      string                 `json:"student"`
	Year         string                 `json:"year,omitempty"`
	Semester     string                 `json:"semester,omitempty"`
	Type         archive.SubmissionType `json:"type"`
	Evaluation   archive.Evaluation     `json:"evaluation"`
	Source       string                 `json:"source"`
	Exists       bool                   `json:"exists"`
	OutputFile   string                 `json:"output_file,omitempty"`
	ContentCheck *archive.ContentCheck  `json:"content_check,omitempty"`
	CheckError   string                 `json:"check_error,omitempty"`
}

func newSubmissionsCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOutput bool
		verify     bool
		typeFilter string
		highPass   bool
	)

	cmd := &cobra.Command{
		Use:   "submissions <assignment-dir>",
		Short: "List the submissions recorded in an assignment table",
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
			assignment := archive.NewAssignment(layout, dir)

			var subs []archive.Submission
			switch {
			case typeFilter != "" && highPass:
				kind, err := archive.ParseSubmissionType(typeFilter)
				if err != nil {
					return err
				}
				subs = assignment.SubmissionsWith(kind, archive.EvaluationHighPass)
			case typeFilter != "":
				kind, err := archive.ParseSubmissionType(typeFilter)
				if err != nil {
					return err
				}
				subs = assignment.SubmissionsOf(kind)
			default:
				subs = assignment.Submissions()
				if highPass {
					subs = filterHighPass(subs)
				}
			}

			views := make([]submissionView, 0, len(subs))
			for _, sub := range subs {
				views = append(views, buildSubmissionView(sub, verify))
			}
			if jsonOutput {
				return writeJSON(cmd, views)
			}
			renderSubmissions(cmd, views, verify)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&verify, "verify", false, "Sniff each source file and check it matches its extension")
	cmd.Flags().StringVar(&typeFilter, "type", "", "Only show submissions of this type (image, pdf, video, other)")
	cmd.Flags().BoolVar(&highPass, "high-pass", false, "Only show submissions evaluated as high pass")
	return cmd
}

func filterHighPass(subs []archive.Submission) []archive.Submission {
	var out []archive.Submission
	for _, sub := range subs {
		if sub.Evaluation() == archive.EvaluationHighPass {
			out = append(out, sub)
		}
	}
	return out
}

func buildSubmissionView(sub archive.Submission, verify bool) submissionView {
	view := submissionView{
		Row:        sub.Row,
		ID:         sub.ID,
		SafeID:     sub.SafeID(),
		Student:    sub.StudentName,
		Year:       sub.Year,
		Semester:   sub.Semester,
		Type:       sub.Type(),
		Evaluation: sub.Evaluation(),
		Source:     sub.SourceFileName(),
		Exists:     sub.Exists(),
		OutputFile: sub.OutputFileName(),
	}
	if verify && view.Exists {
		check := sub.VerifyContent()
		view.ContentCheck = &check
		if check.Err != nil {
			view.CheckError = check.Err.Error()
		}
	}
	return view
}

func renderSubmissions(cmd *cobra.Command, views []submissionView, verify bool) {
	out := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintln(out, "No submissions found")
		return
	}

	headers := []string{"Row", "ID", "Student", "Type", "Evaluation", "Source", "Exists"}
	if verify {
		headers = append(headers, "Content")
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		row := []string{strconv.Itoa(v.Row), v.ID, v.Student, v.Type.String(), v.Evaluation.String(), v.Source, yesNo(v.Exists)}
		if verify {
			row = append(row, contentLabel(v))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(out, renderTable(tableSpec{
		Headers:  headers,
		Rows:     rows,
		Aligns:   []columnAlignment{alignRight},
		MaxWidth: 40,
	}))
	fmt.Fprintf(out, "%d submissions\n", len(views))
}

func contentLabel(v submissionView) string {
	switch {
	case v.CheckError != "":
		return "error: " + v.CheckError
	case v.ContentCheck == nil:
		return "-"
	case v.ContentCheck.Matches:
		return "ok (" + v.ContentCheck.MIME + ")"
	default:
		return "MISMATCH (" + v.ContentCheck.MIME + ")"
	}
}
