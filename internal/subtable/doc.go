// Package subtable reads the per-assignment submission spreadsheet and turns
// its rows into submission records.
//
// The sheet layout is positional. Rows whose first cell is empty are blank and
// skipped. The header is the first of the leading five non-blank rows whose
// first cell reads "YEAR" (any case); every non-blank row after it is a data
// row. A sheet without a header inside that window has no data rows, which is
// the same as an assignment with no submissions.
//
// Canonical column layout (zero based):
//
//	0 year                 8 student name
//	1 semester             9 evaluation
//	2 course number       10 action (ignored)
//	3 course name         11 item count
//	4 studio master       12 file name
//	5 instructor          13 notes (ignored)
//	6 assignment name     14 submission id
//	7 assignment duration
//
// Workbooks (.xlsx, .xlsm) are read from their first sheet with excelize;
// .csv files are read with encoding/csv. Cells holding spreadsheet error
// literals such as #N/A read as empty strings.
package subtable
