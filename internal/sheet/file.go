package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is an on-disk sheet format.
type Format int

const (
	FormatCSV Format = iota
	FormatTSV
	FormatXLSX
)

func (f Format) String() string {
	switch f {
	case FormatTSV:
		return "tsv"
	case FormatXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// DefaultSheetName is the worksheet used when none is named.
const DefaultSheetName = "Sheet1"

var (
	// ErrUnsupportedFormat is returned for file extensions with no loader.
	ErrUnsupportedFormat = errors.New("unsupported sheet format")
	// ErrOutOfRange is returned for negative cell coordinates.
	ErrOutOfRange = errors.New("cell out of range")
	// ErrNoSuchSheet is returned when a workbook lacks the named worksheet.
	ErrNoSuchSheet = errors.New("no such worksheet")
)

// FormatFor picks a format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", "":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	}
	return FormatCSV, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// Load reads path. For workbooks, name selects the worksheet; empty means
// the first one.
func Load(path, name string) (*Sheet, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	var s *Sheet
	switch format {
	case FormatXLSX:
		s, err = loadWorkbook(path, name)
	default:
		s, err = loadDelimited(path, delimiter(format))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	s.Path = path
	s.Format = format
	return s, nil
}

func delimiter(f Format) rune {
	if f == FormatTSV {
		return '\t'
	}
	return ','
}

func loadDelimited(path string, comma rune) (*Sheet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	s := FromRows(rows)
	s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return s, nil
}

func loadWorkbook(path, name string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if name == "" {
		name = f.GetSheetName(0)
	} else if idx, _ := f.GetSheetIndex(name); idx < 0 {
		return nil, fmt.Errorf("%q: %w", name, ErrNoSuchSheet)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}
	s := FromRows(rows)
	s.Name = name
	return s, nil
}

// Save writes the sheet back to its Path in its Format.
func (s *Sheet) Save() error {
	if s.Path == "" {
		return fmt.Errorf("save: %w", os.ErrInvalid)
	}
	return s.SaveAs(s.Path)
}

// SaveAs writes the sheet to path using the format implied by its extension
// and makes path the sheet's new home.
func (s *Sheet) SaveAs(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatXLSX:
		err = s.saveWorkbook(path)
	default:
		err = s.saveDelimited(path, delimiter(format))
	}
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.Path = path
	s.Format = format
	s.dirty = false
	return nil
}

func (s *Sheet) saveDelimited(path string, comma rune) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	w := csv.NewWriter(file)
	w.Comma = comma
	if err := w.WriteAll(s.rows); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// saveWorkbook updates the named worksheet in place, keeping any other
// worksheets in an existing workbook.
func (s *Sheet) saveWorkbook(path string) error {
	var (
		f   *excelize.File
		err error
	)
	if _, statErr := os.Stat(path); statErr == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return err
		}
	}
	name := s.Name
	if name == "" {
		name = DefaultSheetName
	}
	if f == nil {
		f = excelize.NewFile()
		if name != DefaultSheetName {
			if err := f.SetSheetName(DefaultSheetName, name); err != nil {
				f.Close()
				return err
			}
		}
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(name); idx < 0 {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}
	for y, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, y+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for x, v := range row {
			values[x] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}
