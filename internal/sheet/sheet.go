package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is an in-memory table of string cells addressed by logical
// column x and row y.
type Sheet struct {
	// Path is the file the sheet was loaded from, empty for new sheets.
	Path string
	// Format is the on-disk format used by Save.
	Format Format
	// Name is the worksheet name for workbook formats.
	Name string

	rows     [][]string
	cols     int
	dirty    bool
	revision uint64
}

// New creates an empty sheet of cols by rows.
func New(cols, rows int) *Sheet {
	s := &Sheet{Format: FormatCSV, Name: DefaultSheetName}
	s.resize(cols, rows)
	return s
}

// FromRows builds a sheet from row-major data. Ragged rows are padded.
func FromRows(rows [][]string) *Sheet {
	s := &Sheet{Format: FormatCSV, Name: DefaultSheetName}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	s.resize(cols, len(rows))
	for y, r := range rows {
		copy(s.rows[y], r)
	}
	return s
}

func (s *Sheet) resize(cols, rows int) {
	if cols > s.cols {
		for y := range s.rows {
			s.rows[y] = append(s.rows[y], make([]string, cols-s.cols)...)
		}
		s.cols = cols
	}
	for len(s.rows) < rows {
		s.rows = append(s.rows, make([]string, s.cols))
	}
}

// Dims returns the number of columns and rows.
func (s *Sheet) Dims() (cols, rows int) {
	return s.cols, len(s.rows)
}

// Get returns the value at (x, y), or "" outside the sheet.
func (s *Sheet) Get(x, y int) string {
	if y < 0 || y >= len(s.rows) || x < 0 || x >= s.cols {
		return ""
	}
	return s.rows[y][x]
}

// Set stores v at (x, y), growing the sheet when needed.
func (s *Sheet) Set(x, y int, v string) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("set %s: %w", CellName(x, y), ErrOutOfRange)
	}
	s.resize(x+1, y+1)
	if s.rows[y][x] == v {
		return nil
	}
	s.rows[y][x] = v
	s.dirty = true
	s.revision++
	return nil
}

// Dirty reports whether the sheet has unsaved edits.
func (s *Sheet) Dirty() bool { return s.dirty }

// MarkClean clears the unsaved-edits flag after a copy of the sheet was
// written.
func (s *Sheet) MarkClean() { s.dirty = false }

// Revision counts the edits made to the sheet. A clone starts at the
// revision of its source.
func (s *Sheet) Revision() uint64 { return s.revision }

// MarkSaved clears the unsaved-edits flag if no edit happened since the
// copy at rev was taken, and reports whether it did.
func (s *Sheet) MarkSaved(rev uint64) bool {
	if s.revision != rev {
		return false
	}
	s.dirty = false
	return true
}

// Clone returns a deep copy that can be saved off the UI goroutine.
func (s *Sheet) Clone() *Sheet {
	c := FromRows(s.Rows())
	c.resize(s.cols, len(s.rows))
	c.Path, c.Format, c.Name = s.Path, s.Format, s.Name
	c.dirty = s.dirty
	c.revision = s.revision
	return c
}

// Rows returns a copy of the data.
func (s *Sheet) Rows() [][]string {
	out := make([][]string, len(s.rows))
	for y, r := range s.rows {
		out[y] = append([]string(nil), r...)
	}
	return out
}

// Column returns the values in column x.
func (s *Sheet) Column(x int) []string {
	out := make([]string, len(s.rows))
	for y := range s.rows {
		out[y] = s.Get(x, y)
	}
	return out
}

// Block returns the values in the rectangle spanning columns x0..x1 and rows
// y0..y1, clipped to the sheet.
func (s *Sheet) Block(x0, y0, x1, y1 int) [][]string {
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.cols-1), min(y1, len(s.rows)-1)
	if x1 < x0 || y1 < y0 {
		return nil
	}
	var out [][]string
	for y := y0; y <= y1; y++ {
		row := make([]string, 0, x1-x0+1)
		for x := x0; x <= x1; x++ {
			row = append(row, s.rows[y][x])
		}
		out = append(out, row)
	}
	return out
}

// TSV renders a block as tab-separated lines.
func TSV(block [][]string) string {
	var b strings.Builder
	for i, row := range block {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}

// ColumnName returns the spreadsheet letter name of logical column x.
func ColumnName(x int) string {
	name, err := excelize.ColumnNumberToName(x + 1)
	if err != nil {
		return fmt.Sprintf("%d", x+1)
	}
	return name
}

// CellName returns the A1-style name of logical cell (x, y).
func CellName(x, y int) string {
	name, err := excelize.CoordinatesToCellName(x+1, y+1)
	if err != nil {
		return fmt.Sprintf("(%d,%d)", x, y)
	}
	return name
}
