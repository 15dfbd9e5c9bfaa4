package testsupport

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SubmissionHeader returns a header row in the canonical submission table layout.
func SubmissionHeader() []string {
	return []string{
		"YEAR", "SEMESTER", "COURSE NO", "COURSE NAME", "STUDIO MASTER",
		"INSTRUCTOR", "ASSIGNMENT", "DURATION", "STUDENT", "EVALUATION",
		"ACTION", "ITEMS", "FILE NAME", "NOTES", "ID",
	}
}

// SubmissionRow returns a data row with the optional columns filled with
// plausible values.
func SubmissionRow(year, student, file, id, evaluation string) []string {
	return []string{
		year, "Fall", "101", "Design Studio", "M. Master",
		"A. Instructor", "Poster", "2 weeks", student, evaluation,
		"", "1", file, "", id,
	}
}

// WriteXLSX writes rows to the first sheet of a new workbook at path.
func WriteXLSX(t testing.TB, path string, rows [][]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name for row %d: %v", i+1, err)
		}
		values := make([]any, len(row))
		for j, value := range row {
			values[j] = value
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
}

// WriteCSV writes rows to path as comma-separated values.
func WriteCSV(t testing.TB, path string, rows [][]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write csv %s: %v", path, err)
	}
}
