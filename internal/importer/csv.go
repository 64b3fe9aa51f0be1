// Package importer turns an uploaded CSV into item rows for the bill.
// It owns the structural rules of the import format: a header row with
// required Name and Cost columns (any extras ignored), one item per
// data row. Parsing is all-or-nothing: a file that cannot be fully
// read yields zero rows.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tabsplit/internal/bill"
)

// DefaultMaxRows caps how many items one import may add. The import is
// the only external input path, so it gets the only size guard.
const DefaultMaxRows = 500

var ErrTooManyRows = fmt.Errorf("import exceeds the row limit")

// ParseCSV reads an entire CSV document and returns one ItemRow per
// data row. Errors:
//   - bill.ErrMissingColumns if the header lacks Name or Cost
//   - bill.ErrMalformedRow if any row's cost does not parse
//   - ErrTooManyRows past maxRows (0 means DefaultMaxRows)
//
// Column matching is case-insensitive on the trimmed header cell.
func ParseCSV(r io.Reader, maxRows int) ([]bill.ItemRow, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are rejected per-row below

	header, err := reader.Read()
	if err == io.EOF {
		return nil, bill.ErrMissingColumns
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", bill.ErrMalformedRow, err)
	}

	nameCol, costCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			if nameCol < 0 {
				nameCol = i
			}
		case "cost":
			if costCol < 0 {
				costCol = i
			}
		}
	}
	if nameCol < 0 || costCol < 0 {
		return nil, bill.ErrMissingColumns
	}

	var rows []bill.ItemRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", bill.ErrMalformedRow, line, err)
		}
		if len(record) <= nameCol || len(record) <= costCol {
			return nil, fmt.Errorf("%w: row %d has too few columns", bill.ErrMalformedRow, line)
		}

		name := strings.TrimSpace(record[nameCol])
		cost, err := strconv.ParseFloat(strings.TrimSpace(record[costCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: cost %q", bill.ErrMalformedRow, line, record[costCol])
		}

		rows = append(rows, bill.ItemRow{Name: name, Cost: cost})
		if len(rows) > maxRows {
			return nil, fmt.Errorf("%w: more than %d rows", ErrTooManyRows, maxRows)
		}
	}

	return rows, nil
}
