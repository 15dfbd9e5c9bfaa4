package subtable

import (
	"fmt"
	"strings"
)

// Column positions of the canonical layout.
const (
	ColYear = iota
	ColSemester
	ColCourseNumber
	ColCourseName
	ColStudioMaster
	ColInstructor
	ColAssignmentName
	ColAssignmentDuration
	ColStudentName
	ColEvaluation
	ColAction
	ColItemCount
	ColFileName
	ColNotes
	ColID

	// ColumnCount is the number of columns in the canonical layout.
	ColumnCount
)

// HeaderMarker is the first-cell text that identifies the header row.
const HeaderMarker = "YEAR"

// HeaderSearchLimit is the number of leading non-blank rows searched for the
// header.
const HeaderSearchLimit = 5

var errorLiterals = map[string]struct{}{
	"#NULL!":        {},
	"#DIV/0!":       {},
	"#VALUE!":       {},
	"#REF!":         {},
	"#NAME?":        {},
	"#NUM!":         {},
	"#N/A":          {},
	"#GETTING_DATA": {},
	"#SPILL!":       {},
	"#CALC!":        {},
}

// Record is one data row mapped onto the canonical layout. FileName is the
// raw cell text, relative to the assignment folder.
type Record struct {
	Row                int
	Year               string
	Semester           string
	CourseNumber       string
	CourseName         string
	StudioMaster       string
	Instructor         string
	AssignmentName     string
	AssignmentDuration string
	StudentName        string
	Evaluation         string
	ItemCount          string
	FileName           string
	ID                 string
}

// Rejection describes a data row that did not produce a record.
type Rejection struct {
	Row     int
	Missing []string
}

func (r Rejection) String() string {
	return fmt.Sprintf("row %d missing %s", r.Row, strings.Join(r.Missing, ", "))
}

// Table is the parsed content of one submission table.
type Table struct {
	HeaderFound bool
	DataRows    int
	Records     []Record
	Rejections  []Rejection
}

type indexedRow struct {
	index int
	cells []string
}

// Cell returns the trimmed text of column col, or "" for missing cells and
// spreadsheet error values.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	value := strings.TrimSpace(row[col])
	if _, isError := errorLiterals[strings.ToUpper(value)]; isError {
		return ""
	}
	return value
}

// IsBlankRow reports whether row has an empty first cell.
func IsBlankRow(row []string) bool {
	return Cell(row, 0) == ""
}

// IsHeaderRow reports whether row is the header row.
func IsHeaderRow(row []string) bool {
	return strings.ToUpper(Cell(row, 0)) == HeaderMarker
}

// DataRows returns the non-blank rows following the header, in file order.
func DataRows(rows [][]string) [][]string {
	indexed, _ := dataRows(rows)
	out := make([][]string, 0, len(indexed))
	for _, row := range indexed {
		out = append(out, row.cells)
	}
	return out
}

func dataRows(rows [][]string) ([]indexedRow, bool) {
	nonBlank := make([]indexedRow, 0, len(rows))
	for i, row := range rows {
		if IsBlankRow(row) {
			continue
		}
		nonBlank = append(nonBlank, indexedRow{index: i, cells: row})
	}

	for i, row := range nonBlank {
		if i >= HeaderSearchLimit {
			break
		}
		if IsHeaderRow(row.cells) {
			return nonBlank[i+1:], true
		}
	}
	return nil, false
}

// Parse maps the data rows of rows onto records. Rows missing a required
// value are returned as rejections instead.
func Parse(rows [][]string) Table {
	data, found := dataRows(rows)
	table := Table{HeaderFound: found, DataRows: len(data)}
	for _, row := range data {
		record, missing := toRecord(row)
		if len(missing) > 0 {
			table.Rejections = append(table.Rejections, Rejection{Row: row.index + 1, Missing: missing})
			continue
		}
		table.Records = append(table.Records, record)
	}
	return table
}

// Load reads and parses the table at path. Errors are returned only when the
// file cannot be opened or decoded.
func Load(path string) (Table, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return Table{}, err
	}
	return Parse(rows), nil
}

func toRecord(row indexedRow) (Record, []string) {
	cells := row.cells
	record := Record{
		Row:                row.index + 1,
		Year:               Cell(cells, ColYear),
		Semester:           Cell(cells, ColSemester),
		CourseNumber:       Cell(cells, ColCourseNumber),
		CourseName:         Cell(cells, ColCourseName),
		StudioMaster:       Cell(cells, ColStudioMaster),
		Instructor:         Cell(cells, ColInstructor),
		AssignmentName:     Cell(cells, ColAssignmentName),
		AssignmentDuration: Cell(cells, ColAssignmentDuration),
		StudentName:        Cell(cells, ColStudentName),
		Evaluation:         Cell(cells, ColEvaluation),
		ItemCount:          Cell(cells, ColItemCount),
		FileName:           Cell(cells, ColFileName),
		ID:                 Cell(cells, ColID),
	}

	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"id", record.ID},
		{"year", record.Year},
		{"course number", record.CourseNumber},
		{"instructor", record.Instructor},
		{"student name", record.StudentName},
		{"file name", record.FileName},
	}
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}
	return record, missing
}
