package subtable_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"daspub/internal/subtable"
	"daspub/internal/testsupport"
)

func TestDataRowsAfterHeader(t *testing.T) {
	rows := [][]string{
		{"Submission metadata"},
		{},
		{"", "orphan"},
		{"year", "semester"},
		{"2012", "W"},
		{""},
		{"2013", "F"},
	}
	got := subtable.DataRows(rows)
	want := [][]string{{"2012", "W"}, {"2013", "F"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected data rows: %#v", got)
	}
}

func TestDataRowsHeaderOutsideWindow(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}, {""}, {"c"}, {"d"}, {"e"}, {"YEAR"}, {"2012"}}
	if got := subtable.DataRows(rows); len(got) != 0 {
		t.Fatalf("expected no data rows when header is the sixth non-blank row, got %#v", got)
	}

	rows = [][]string{{"a"}, {""}, {""}, {"b"}, {"c"}, {"d"}, {"Year"}, {"2012"}}
	if got := subtable.DataRows(rows); len(got) != 1 {
		t.Fatalf("expected blank rows to be excluded from the header window, got %#v", got)
	}
}

func TestDataRowsNoHeader(t *testing.T) {
	if got := subtable.DataRows([][]string{{"2012"}, {"2013"}}); len(got) != 0 {
		t.Fatalf("expected no data rows, got %#v", got)
	}
	if got := subtable.DataRows(nil); len(got) != 0 {
		t.Fatalf("expected no data rows for empty sheet, got %#v", got)
	}
}

func TestCellTreatsErrorsAsEmpty(t *testing.T) {
	row := []string{" 2012 ", "#N/A", "#div/0!", "ok"}
	if got := subtable.Cell(row, 0); got != "2012" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := subtable.Cell(row, 1); got != "" {
		t.Fatalf("expected #N/A to read as empty, got %q", got)
	}
	if got := subtable.Cell(row, 2); got != "" {
		t.Fatalf("expected #DIV/0! to read as empty, got %q", got)
	}
	if got := subtable.Cell(row, 10); got != "" {
		t.Fatalf("expected missing cell to read as empty, got %q", got)
	}
	if got := subtable.Cell(row, -1); got != "" {
		t.Fatalf("expected negative column to read as empty, got %q", got)
	}
}

func TestParseDropsRowsMissingRequiredValues(t *testing.T) {
	valid := testsupport.SubmissionRow("2012", "Jane Student", "work.jpg", "S-001", "High Pass")
	noStudent := testsupport.SubmissionRow("2012", "", "other.jpg", "S-002", "")
	rows := [][]string{
		{"Archive export"},
		{""},
		testsupport.SubmissionHeader(),
		valid,
		noStudent,
	}

	for i := 0; i < 2; i++ {
		table := subtable.Parse(rows)
		if !table.HeaderFound {
			t.Fatal("expected header to be found")
		}
		if table.DataRows != 2 {
			t.Fatalf("expected 2 data rows, got %d", table.DataRows)
		}
		if len(table.Records) != 1 {
			t.Fatalf("expected exactly one record, got %d", len(table.Records))
		}
		record := table.Records[0]
		if record.Row != 4 || record.ID != "S-001" || record.StudentName != "Jane Student" || record.FileName != "work.jpg" {
			t.Fatalf("unexpected record: %+v", record)
		}
		if record.Evaluation != "High Pass" {
			t.Fatalf("unexpected evaluation: %q", record.Evaluation)
		}
		if len(table.Rejections) != 1 {
			t.Fatalf("expected one rejection, got %v", table.Rejections)
		}
		rejection := table.Rejections[0]
		if rejection.Row != 5 || !reflect.DeepEqual(rejection.Missing, []string{"student name"}) {
			t.Fatalf("unexpected rejection: %v", rejection)
		}
	}
}

func TestParseShortRowIsRejected(t *testing.T) {
	table := subtable.Parse([][]string{{"YEAR"}, {"2012", "W", "101"}})
	if len(table.Records) != 0 {
		t.Fatalf("expected short row to be rejected, got %+v", table.Records)
	}
	if len(table.Rejections) != 1 || len(table.Rejections[0].Missing) != 4 {
		t.Fatalf("unexpected rejections: %v", table.Rejections)
	}
}

func TestLoadWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignment.xlsx")
	testsupport.WriteXLSX(t, path, [][]string{
		{"Design Archive"},
		{},
		testsupport.SubmissionHeader(),
		testsupport.SubmissionRow("2012", "Jane Student", "work.jpg", "S-001", "High Pass"),
		testsupport.SubmissionRow("2012", "", "skip.jpg", "S-002", ""),
	})

	table, err := subtable.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(table.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(table.Records))
	}
	if table.Records[0].ID != "S-001" {
		t.Fatalf("unexpected record id %q", table.Records[0].ID)
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignment.csv")
	testsupport.WriteCSV(t, path, [][]string{
		testsupport.SubmissionHeader(),
		testsupport.SubmissionRow("2013", "Sam Student", "model.mp4", "S-010", "low pass"),
	})

	table, err := subtable.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(table.Records) != 1 || table.Records[0].FileName != "model.mp4" {
		t.Fatalf("unexpected records: %+v", table.Records)
	}
}

func TestLoadCSVWithByteOrderMark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignment.csv")
	testsupport.WriteCSV(t, path, [][]string{
		testsupport.SubmissionHeader(),
		testsupport.SubmissionRow("2013", "Sam Student", "model.mp4", "S-010", "low pass"),
	})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	testsupport.WriteText(t, path, "\ufeff"+string(data))

	table, err := subtable.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !table.HeaderFound {
		t.Fatal("expected header behind byte order mark to be found")
	}
	if len(table.Records) != 1 || table.Records[0].Year != "2013" {
		t.Fatalf("unexpected records: %+v", table.Records)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := subtable.Load(filepath.Join(dir, "assignment.xls")); !errors.Is(err, subtable.ErrUnsupportedFormat) {
		t.Fatalf("expected unsupported format error, got %v", err)
	}

	corrupt := filepath.Join(dir, "assignment.xlsx")
	testsupport.WriteText(t, corrupt, "this is not a workbook")
	if _, err := subtable.Load(corrupt); err == nil {
		t.Fatal("expected error for corrupt workbook")
	}

	if _, err := subtable.Load(filepath.Join(dir, "missing.csv")); err == nil {
		t.Fatal("expected error for missing csv")
	}
}
