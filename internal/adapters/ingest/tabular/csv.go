package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	perr "fadet/internal/platform/errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Encoding names accepted by CSVOptions
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "latin-1"
)

// CSVOptions describes one operator's CSV dialect
type CSVOptions struct {
	// Separator defaults to ';', the delimiter every operator export uses
	Separator rune

	// HeaderOffset is the number of leading lines to skip before the header
	// row (ORRE exports carry a title line at offset 0)
	HeaderOffset int

	// Encodings is the ordered candidate list; first successful decode wins.
	// Defaults to UTF-8 then Latin-1
	Encodings []string
}

// ReadCSV decodes and parses an operator CSV export into an all-text table.
//
// The encoding fallback is a required retry, not an option: the primary
// candidate is tried first and each subsequent one on decode failure, with
// exhaustion escalating to an encoding error
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "read csv payload")
	}

	text, err := decodeWithFallback(raw, opts.Encodings)
	if err != nil {
		return nil, err
	}

	sep := opts.Separator
	if sep == 0 {
		sep = ';'
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sep
	cr.FieldsPerRecord = -1 // ragged rows tolerated, cells degrade later
	cr.LazyQuotes = true

	var t Table
	line := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// unparsable line, skip it rather than abort the file
			line++
			continue
		}
		switch {
		case line < opts.HeaderOffset:
			// pre-header noise
		case line == opts.HeaderOffset:
			t.Columns = trimAll(rec)
		default:
			t.Rows = append(t.Rows, rec)
		}
		line++
	}

	if len(t.Columns) == 0 {
		return nil, perr.UnrecognizedFormatf("csv export has no header row")
	}
	return &t, nil
}

// decodeWithFallback tries each candidate encoding in order
func decodeWithFallback(raw []byte, candidates []string) (string, error) {
	if len(candidates) == 0 {
		candidates = []string{EncodingUTF8, EncodingLatin1}
	}
	for _, name := range candidates {
		switch name {
		case EncodingUTF8:
			if utf8.Valid(raw) {
				return string(raw), nil
			}
		case EncodingLatin1:
			s, err := decodeAll(raw, charmap.ISO8859_1.NewDecoder())
			if err == nil {
				return s, nil
			}
		}
	}
	return "", perr.Encodingf("payload decodes under no candidate encoding %v", candidates)
}

func decodeAll(raw []byte, dec *encoding.Decoder) (string, error) {
	out, err := io.ReadAll(dec.Reader(bytes.NewReader(raw)))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, c := range rec {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
