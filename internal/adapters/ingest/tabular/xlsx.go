package tabular

import (
	"io"

	perr "fadet/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first (or named) sheet of an Excel workbook into an
// all-text table. excelize already yields cell text, so leading zeros in
// string-typed identifier cells survive
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnrecognizedFormat, "open xlsx workbook")
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnrecognizedFormat, "read xlsx sheet %q", sheet)
	}
	if len(rows) == 0 {
		return nil, perr.UnrecognizedFormatf("xlsx sheet %q is empty", sheet)
	}

	t := &Table{Columns: trimAll(rows[0])}
	for _, row := range rows[1:] {
		// GetRows trims trailing empty cells; pad to header width
		padded := make([]string, len(t.Columns))
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t, nil
}
