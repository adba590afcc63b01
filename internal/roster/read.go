package roster

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for list files that are not .xlsx,
// .csv or .txt.
var ErrUnsupportedFormat = errors.New("unsupported list format")

// ReadRows reads the name column of a list file. The format is chosen
// from the file extension.
func ReadRows(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".csv", ".txt":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list: %w", err)
	}
	defer f.Close()

	var rows []string
	switch ext {
	case ".csv":
		rows, err = ReadCSV(f)
	case ".txt":
		rows, err = ReadText(f)
	default:
		rows, err = ReadXLSX(f)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// ReadXLSX returns the first column of the first sheet of a workbook.
// Rows with an empty first cell are returned as empty strings so row
// numbers stay aligned with the sheet.
func ReadXLSX(r io.Reader) ([]string, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return []string{}, nil
	}

	grid, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	rows := make([]string, len(grid))
	for i, cells := range grid {
		if len(cells) > 0 {
			rows[i] = cells[0]
		}
	}
	return rows, nil
}

// ReadCSV returns the first field of each record. Records may have any
// number of fields.
func ReadCSV(r io.Reader) ([]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	rows := []string{}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(rec) == 0 {
			rows = append(rows, "")
			continue
		}
		rows = append(rows, rec[0])
	}
	return rows, nil
}

// ReadText returns each line of r.
func ReadText(r io.Reader) ([]string, error) {
	rows := []string{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rows = append(rows, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan lines: %w", err)
	}
	return rows, nil
}
