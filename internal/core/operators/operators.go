// Package operators holds the per-operator normalizers that turn raw export
// tables into the canonical record schema.
//
// Each normalizer follows the same shape: intersect the header with the
// format's expected columns, rename to canonical labels, clean fields in a
// fixed order (date decomposition, identifiers, text, city, blanket sentinel
// fill). Malformed fields degrade to sentinels; only a structurally
// unrecognizable file is a hard failure
package operators

import (
	"strings"

	"fadet/internal/adapters/ingest/tabular"
	"fadet/internal/core/canon"
	"fadet/internal/core/temporal"
	"fadet/internal/core/textutil"
)

// Format identifies one operator export family
type Format string

// The four supported formats
const (
	FormatORRE Format = "ORRE" // Orange Réunion CSV
	FormatSRR  Format = "SRR"  // SFR Réunion paired XLSX
	FormatTCOI Format = "TCOI" // Telco OI CSV
	FormatZone Format = "ZONE" // cell-tower zone dumps (HREF)
)

// CSVOptionsFor returns the CSV dialect a format's exports use.
// XLSX formats (SRR) have no CSV dialect and return the zero options
func CSVOptionsFor(f Format) tabular.CSVOptions {
	switch f {
	case FormatORRE:
		return tabular.CSVOptions{HeaderOffset: 1, Encodings: []string{tabular.EncodingLatin1}}
	case FormatTCOI:
		return tabular.CSVOptions{Encodings: []string{tabular.EncodingUTF8, tabular.EncodingLatin1}}
	case FormatZone:
		return tabular.CSVOptions{Encodings: []string{tabular.EncodingUTF8, tabular.EncodingLatin1}}
	default:
		return tabular.CSVOptions{}
	}
}

// decomposeDate canonicalizes the date column in place and appends the four
// derived calendar columns. A row whose date does not parse degrades to
// empty cells, which the blanket sentinel fill materializes later
func decomposeDate(t *tabular.Table, dateCol string) {
	if !t.Has(dateCol) {
		return
	}
	t.AddColumn(canon.ColYear, "")
	t.AddColumn(canon.ColMonth, "")
	t.AddColumn(canon.ColHour, "")
	t.AddColumn(canon.ColWeekday, "")

	for r := range t.Rows {
		raw := t.Cell(r, dateCol)
		ts, err := temporal.ParseAndLocalize(raw)
		if err != nil {
			t.SetCell(r, dateCol, "")
			continue
		}
		t.SetCell(r, dateCol, temporal.FormatCanonical(ts))
		f := temporal.DeriveCalendarFields(ts)
		t.SetCell(r, canon.ColYear, f.Year)
		t.SetCell(r, canon.ColMonth, f.Month)
		t.SetCell(r, canon.ColHour, f.Hour)
		t.SetCell(r, canon.ColWeekday, f.Weekday)
	}
}

// cleanPhone unwraps the spreadsheet escape then rewrites the dialing prefix
func cleanPhone(s string) string {
	return textutil.NormalizePhoneNumber(textutil.CleanNumericToken(s))
}

// upperNoAccents is the text normalization for call types and addresses
func upperNoAccents(s string) string {
	return textutil.StripAccents(strings.ToUpper(s))
}

// intersects reports whether any of cols is present in the header
func intersects(t *tabular.Table, cols []string) bool {
	for _, c := range cols {
		if t.Has(c) {
			return true
		}
	}
	return false
}
