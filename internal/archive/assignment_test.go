package archive_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daspub/internal/archive"
	"daspub/internal/logging"
	"daspub/internal/testsupport"
)

func TestAssignmentStatusWaterfall(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	layout := newLayout()

	empty := archive.NewAssignment(layout, tree.Dir("P", "101-Studio", "Empty"))
	if v := empty.Evaluate(); v.Status != archive.StatusIncomplete || v.Reason != "missing syllabus file" {
		t.Fatalf("empty folder: got %+v", v)
	}

	noRows := archive.NewAssignment(layout, tree.Assignment("P", "101-Studio", "No Rows"))
	if v := noRows.Evaluate(); v.Status != archive.StatusPartial || v.Reason != "no submissions" {
		t.Fatalf("header only: got %+v", v)
	}

	done := archive.NewAssignment(layout, tree.Assignment("P", "101-Studio", "Done",
		testsupport.SubmissionRow("2024", "Ada", "ada.png", "S-1", "High Pass"),
	))
	if v := done.Evaluate(); v.Status != archive.StatusComplete || v.Reason != "" {
		t.Fatalf("valid row: got %+v", v)
	}
	if done.Status() != archive.StatusComplete {
		t.Fatal("Status should agree with Evaluate")
	}
	if done.Description() != "Done brief" {
		t.Fatalf("unexpected description %q", done.Description())
	}
}

func TestAssignmentMissingSyllabusWinsOverMissingSubmissions(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Dir("P", "101-Studio", "Sketches")
	tree.Text("==Description\nSketches\n", "P", "101-Studio", "Sketches", "assignment.txt")

	a := archive.NewAssignment(newLayout(), dir)
	v := a.Evaluate()
	if v.Status != archive.StatusIncomplete || v.Reason != "missing syllabus file" {
		t.Fatalf("got %+v", v)
	}
	if len(a.Submissions()) != 0 {
		t.Fatal("expected no submissions without a table")
	}
}

func TestAssignmentMissingMetadataAndTable(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Dir("P", "101-Studio", "Model")
	testsupport.WriteFile(t, filepath.Join(dir, "assignment.pdf"), 8)
	a := archive.NewAssignment(newLayout(), dir)
	if v := a.Evaluate(); v.Reason != "missing assignment metadata file" {
		t.Fatalf("got %+v", v)
	}

	tree.Text("==Description\nModel\n", "P", "101-Studio", "Model", "assignment.txt")
	if v := a.Evaluate(); v.Status != archive.StatusIncomplete || v.Reason != "missing submission table" {
		t.Fatalf("got %+v", v)
	}
}

func TestAssignmentUnreadableTableIsIncomplete(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Assignment("P", "101-Studio", "Broken")
	tree.Text("not a workbook", "P", "101-Studio", "Broken", "assignment.xlsx")

	a := archive.NewAssignment(newLayout(), dir)
	v := a.Evaluate()
	if v.Status != archive.StatusIncomplete || v.Reason != "submission table does not conform" {
		t.Fatalf("got %+v", v)
	}
	result := a.LoadSubmissions()
	if !result.Present || result.Err == nil {
		t.Fatalf("expected a present but unreadable table, got %+v", result)
	}
	if len(a.Submissions()) != 0 {
		t.Fatal("expected no submissions from a broken table")
	}
}

func TestSubmissionsSkipTitleRowsAndRejectIncompleteRows(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Dir("P", "101-Studio", "Poster")
	testsupport.WriteXLSX(t, filepath.Join(dir, "assignment.xlsx"), [][]string{
		{"Poster submissions 2024"},
		testsupport.SubmissionHeader(),
		testsupport.SubmissionRow("2024", "Ada", "ada.jpg", "S-1", "Low Pass"),
		testsupport.SubmissionRow("2024", "", "bob.jpg", "S-2", ""),
	})

	a := archive.NewAssignment(newLayout(), dir)
	result := a.LoadSubmissions()
	if len(result.Submissions) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(result.Submissions))
	}
	sub := result.Submissions[0]
	if sub.Row != 3 || sub.StudentName != "Ada" || sub.ID != "S-1" {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if len(result.Rejections) != 1 || result.Rejections[0].Row != 4 {
		t.Fatalf("unexpected rejections %+v", result.Rejections)
	}
	if got := result.Rejections[0].Missing; len(got) != 1 || got[0] != "student name" {
		t.Fatalf("unexpected missing fields %v", got)
	}
}

func TestSubmissionsFromCSVTable(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Dir("P", "101-Studio", "Film")
	testsupport.WriteCSV(t, filepath.Join(dir, "assignment.csv"), [][]string{
		testsupport.SubmissionHeader(),
		testsupport.SubmissionRow("2023", "Cy", "cy.mp4", "V-1", ""),
	})

	conv := archive.DefaultConventions()
	conv.SubmissionTableFile = "assignment.csv"
	layout := archive.NewLayout(conv, logging.NewNop())

	subs := archive.NewAssignment(layout, dir).Submissions()
	if len(subs) != 1 || !subs[0].IsVideo() {
		t.Fatalf("unexpected submissions %+v", subs)
	}
}

func TestSubmissionAttributes(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Assignment("P", "101-Studio", "Mixed",
		testsupport.SubmissionRow("2024", "Ada", "ada.png", "2024.S-1", "HIGH PASS"),
		testsupport.SubmissionRow("2024", "Bob", "bob.pdf", "S-2", "n/a"),
		testsupport.SubmissionRow("2024", "Cy", "cy.webm", "S-3", "Low Pass"),
		testsupport.SubmissionRow("2024", "Di", "di.docx", "S-4", ""),
	)
	// Listed in the table but never delivered.
	testsupport.WriteXLSX(t, filepath.Join(dir, "assignment.xlsx"), [][]string{
		testsupport.SubmissionHeader(),
		testsupport.SubmissionRow("2024", "Ada", "ada.png", "2024.S-1", "HIGH PASS"),
		testsupport.SubmissionRow("2024", "Bob", "bob.pdf", "S-2", "n/a"),
		testsupport.SubmissionRow("2024", "Cy", "cy.webm", "S-3", "Low Pass"),
		testsupport.SubmissionRow("2024", "Di", "di.docx", "S-4", ""),
		testsupport.SubmissionRow("2024", "Ed", "ed.jpg", "S-5", "High Pass"),
	})

	a := archive.NewAssignment(newLayout(), dir)
	subs := a.Submissions()
	if len(subs) != 5 {
		t.Fatalf("expected 5 submissions, got %d", len(subs))
	}

	wantTypes := []archive.SubmissionType{archive.TypeImage, archive.TypePDF, archive.TypeVideo, archive.TypeOther, archive.TypeImage}
	wantEval := []archive.Evaluation{archive.EvaluationHighPass, archive.EvaluationNone, archive.EvaluationLowPass, archive.EvaluationNone, archive.EvaluationHighPass}
	for i, sub := range subs {
		if sub.Type() != wantTypes[i] {
			t.Fatalf("row %d: type %s, want %s", sub.Row, sub.Type(), wantTypes[i])
		}
		if sub.Evaluation() != wantEval[i] {
			t.Fatalf("row %d: evaluation %s, want %s", sub.Row, sub.Evaluation(), wantEval[i])
		}
	}

	ada := subs[0]
	if ada.SourcePath != filepath.Join(dir, "ada.png") || ada.SourceFileName() != "ada.png" {
		t.Fatalf("unexpected source %q", ada.SourcePath)
	}
	if ada.OutputFileName() != "ada.jpg" || ada.ThumbnailFileName() != "ada.jpg" {
		t.Fatalf("unexpected output names %q %q", ada.OutputFileName(), ada.ThumbnailFileName())
	}
	if ada.SafeID() != "2024_S_1" {
		t.Fatalf("unexpected safe id %q", ada.SafeID())
	}
	if !ada.IsImage() || ada.IsVideo() || ada.IsPDF() {
		t.Fatal("unexpected type predicates for image")
	}

	ed := subs[4]
	if ed.Exists() || ed.OutputFileName() != "" {
		t.Fatalf("missing source should have no output name, got %q", ed.OutputFileName())
	}

	if got := a.SubmissionsOf(archive.TypeImage); len(got) != 2 {
		t.Fatalf("expected 2 images, got %d", len(got))
	}
	if got := a.SubmissionsWith(archive.TypeImage, archive.EvaluationHighPass); len(got) != 2 {
		t.Fatalf("expected 2 high pass images, got %d", len(got))
	}
	if got := a.SubmissionsWith(archive.TypeVideo, archive.EvaluationHighPass); len(got) != 0 {
		t.Fatalf("expected no high pass videos, got %d", len(got))
	}
	if !a.HasImageSubmissions() || !a.HasVideoSubmissions() {
		t.Fatal("expected image and video submissions")
	}
}

func TestSubmissionPDFTypesAreConfigurable(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Assignment("P", "101-Studio", "Print",
		testsupport.SubmissionRow("2024", "Ada", "ada.ai", "S-1", ""),
		testsupport.SubmissionRow("2024", "Bob", "bob.pdf", "S-2", ""),
		testsupport.SubmissionRow("2024", "Cy", "cy.tif", "S-3", ""),
	)

	conventions := archive.DefaultConventions()
	conventions.PDFTypes = []string{"ai", "tif"}
	subs := archive.NewAssignment(archive.NewLayout(conventions, logging.NewNop()), dir).Submissions()
	if len(subs) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(subs))
	}
	// pdf is still an image extension once dropped from the pdf set.
	want := []archive.SubmissionType{archive.TypePDF, archive.TypeImage, archive.TypePDF}
	for i, sub := range subs {
		if sub.Type() != want[i] {
			t.Fatalf("%s: type %s, want %s", sub.SourceFileName(), sub.Type(), want[i])
		}
	}

	conventions.PDFTypes = nil
	subs = archive.NewAssignment(archive.NewLayout(conventions, logging.NewNop()), dir).Submissions()
	if subs[1].Type() != archive.TypePDF {
		t.Fatalf("empty pdf set should fall back to pdf, got %s", subs[1].Type())
	}
}

func TestSourceFileExistenceIsCheckedPerCall(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Assignment("P", "101-Studio", "Late",
		testsupport.SubmissionRow("2024", "Ada", "ada.gif", "S-1", ""),
	)
	sub := archive.NewAssignment(newLayout(), dir).Submissions()[0]
	if !sub.Exists() {
		t.Fatal("expected source to exist")
	}
	if err := os.Remove(sub.SourcePath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if sub.Exists() {
		t.Fatal("expected removal to be observed")
	}
}

func TestNormalizeEvaluation(t *testing.T) {
	cases := map[string]archive.Evaluation{
		"High Pass":  archive.EvaluationHighPass,
		"high pass":  archive.EvaluationHighPass,
		"LOW PASS":   archive.EvaluationLowPass,
		"n/a":        archive.EvaluationNone,
		"":           archive.EvaluationNone,
		"High  Pass": archive.EvaluationNone,
		"pass":       archive.EvaluationNone,
	}
	for in, want := range cases {
		if got := archive.NormalizeEvaluation(in); got != want {
			t.Fatalf("NormalizeEvaluation(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestStatusText(t *testing.T) {
	for _, s := range []archive.Status{archive.StatusComplete, archive.StatusPartial, archive.StatusIncomplete, archive.StatusError} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatalf("marshal %d: %v", s, err)
		}
		var back archive.Status
		if err := back.UnmarshalText(text); err != nil || back != s {
			t.Fatalf("round trip %q: %v %v", text, back, err)
		}
	}
	if _, err := archive.ParseStatus("done"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	if got, err := archive.ParseSubmissionType("Video"); err != nil || got != archive.TypeVideo {
		t.Fatalf("ParseSubmissionType: %v %v", got, err)
	}

	var e archive.Evaluation
	if err := e.UnmarshalText([]byte("low_pass")); err != nil || e != archive.EvaluationLowPass {
		t.Fatalf("evaluation unmarshal: %v %v", e, err)
	}
	if err := e.UnmarshalText([]byte("Low Pass")); err == nil {
		t.Fatal("expected error for free evaluation text")
	}
	var kind archive.SubmissionType
	if err := kind.UnmarshalText([]byte("pdf")); err != nil || kind != archive.TypePDF {
		t.Fatalf("type unmarshal: %v %v", kind, err)
	}
}

func TestMetadataPolicyDowngradesToPartial(t *testing.T) {
	tree := testsupport.NewArchiveTree(t)
	dir := tree.Assignment("P", "101-Studio", "Poster",
		testsupport.SubmissionRow("2024", "Ada", "ada.png", "S-1", ""),
	)

	conv := archive.DefaultConventions()
	conv.MetadataPolicy = func(subs []archive.Submission) bool {
		for _, s := range subs {
			if strings.TrimSpace(s.EvaluationText) == "" {
				return false
			}
		}
		return true
	}
	layout := archive.NewLayout(conv, logging.NewNop())

	v := archive.NewAssignment(layout, dir).Evaluate()
	if v.Status != archive.StatusPartial || v.Reason != "incomplete submission metadata" {
		t.Fatalf("got %+v", v)
	}
}
