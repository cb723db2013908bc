package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"lernbot/internal/domain"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither .xlsx nor .csv
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Config describes the layout of an import file.
// Columns are zero-based; a negative CategoryColumn means the file has none.
type Config struct {
	SheetName      string
	ForeignColumn  int
	NativeColumn   int
	CategoryColumn int
	SkipHeader     bool
}

// DefaultConfig expects foreign, native and category in the first three columns
// with a header row
func DefaultConfig() Config {
	return Config{
		ForeignColumn:  0,
		NativeColumn:   1,
		CategoryColumn: 2,
		SkipHeader:     true,
	}
}

// Parse reads phrases from an .xlsx or .csv file.
// Rows with missing phrase or translation are reported and skipped.
func Parse(name string, r io.Reader, cfg Config) ([]domain.ImportRow, []error, error) {
	var records [][]string
	var err error

	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		records, err = readExcel(r, cfg.SheetName)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, nil, err
	}

	rows, rowErrs := toRows(records, cfg)
	return rows, rowErrs, nil
}

func readExcel(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return records, nil
}

func cell(record []string, col int) string {
	if col < 0 || col >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[col])
}

func toRows(records [][]string, cfg Config) ([]domain.ImportRow, []error) {
	var rows []domain.ImportRow
	var errs []error

	for i, record := range records {
		line := i + 1
		if cfg.SkipHeader && i == 0 {
			continue
		}

		foreign := cell(record, cfg.ForeignColumn)
		native := cell(record, cfg.NativeColumn)
		if foreign == "" && native == "" {
			continue
		}
		if foreign == "" || native == "" {
			errs = append(errs, fmt.Errorf("line %d: phrase and translation are required", line))
			continue
		}

		rows = append(rows, domain.ImportRow{
			Line:     line,
			Foreign:  foreign,
			Native:   native,
			Category: cell(record, cfg.CategoryColumn),
		})
	}

	return rows, errs
}
