// Package tabular reads operator exports into all-text tables.
//
// Every cell stays a string end to end so leading zeros in phone numbers and
// identifiers survive; nothing here ever infers a numeric type
package tabular

// Table is a header plus text rows, the unit the normalizers transform
type Table struct {
	Columns []string
	Rows    [][]string
}

// Index returns the position of col in the header, -1 when absent
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Has reports whether the header contains col
func (t *Table) Has(col string) bool { return t.Index(col) >= 0 }

// Cell returns the value at (row, col header name), "" when out of range
func (t *Table) Cell(row int, col string) string {
	i := t.Index(col)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// SetCell writes the value at (row, col), a no-op when out of range
func (t *Table) SetCell(row int, col, val string) {
	i := t.Index(col)
	if i < 0 || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return
	}
	t.Rows[row][i] = val
}

// Apply rewrites every cell of col through fn
func (t *Table) Apply(col string, fn func(string) string) {
	i := t.Index(col)
	if i < 0 {
		return
	}
	for _, row := range t.Rows {
		if i < len(row) {
			row[i] = fn(row[i])
		}
	}
}

// Rename maps header names through the given old->new pairs, skipping absences
func (t *Table) Rename(mapping map[string]string) {
	for i, c := range t.Columns {
		if n, ok := mapping[c]; ok {
			t.Columns[i] = n
		}
	}
}

// Select keeps only the listed columns that are actually present, in the
// listed order. Missing names are tolerated: operator exports vary in which
// optional columns a requisition type includes
func (t *Table) Select(cols []string) {
	var keepIdx []int
	var keepNames []string
	for _, c := range cols {
		if i := t.Index(c); i >= 0 {
			keepIdx = append(keepIdx, i)
			keepNames = append(keepNames, c)
		}
	}
	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		nr := make([]string, len(keepIdx))
		for j, i := range keepIdx {
			if i < len(row) {
				nr[j] = row[i]
			}
		}
		rows[r] = nr
	}
	t.Columns = keepNames
	t.Rows = rows
}

// Drop removes the listed columns when present
func (t *Table) Drop(cols ...string) {
	dead := make(map[string]bool, len(cols))
	for _, c := range cols {
		dead[c] = true
	}
	var keep []string
	for _, c := range t.Columns {
		if !dead[c] {
			keep = append(keep, c)
		}
	}
	t.Select(keep)
}

// AddColumn appends a column filled with val on every row
func (t *Table) AddColumn(col, val string) {
	t.Columns = append(t.Columns, col)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], val)
	}
}

// DropTrailer discards the final row; SRR workbooks end with an instruction
// line that is not data
func (t *Table) DropTrailer() {
	if len(t.Rows) > 0 {
		t.Rows = t.Rows[:len(t.Rows)-1]
	}
}

// FillDown then FillUp on col, the ffill/bfill pair the SRR subscriber
// column needs when the export only writes the number on its first row
func (t *Table) FillDownUp(col string) {
	i := t.Index(col)
	if i < 0 {
		return
	}
	last := ""
	for _, row := range t.Rows {
		if i >= len(row) {
			continue
		}
		if row[i] != "" {
			last = row[i]
		} else if last != "" {
			row[i] = last
		}
	}
	next := ""
	for r := len(t.Rows) - 1; r >= 0; r-- {
		row := t.Rows[r]
		if i >= len(row) {
			continue
		}
		if row[i] != "" {
			next = row[i]
		} else if next != "" {
			row[i] = next
		}
	}
}

// FillEmpty replaces empty cells of col with val
func (t *Table) FillEmpty(col, val string) {
	t.Apply(col, func(s string) string {
		if s == "" {
			return val
		}
		return s
	})
}

// FillAllEmpty replaces every remaining empty cell in the table with val.
// This is the blanket sentinel-fill step that runs last in every normalizer
func (t *Table) FillAllEmpty(val string) {
	for _, row := range t.Rows {
		for i := range row {
			if row[i] == "" {
				row[i] = val
			}
		}
	}
}

// MergeLeft joins other onto t by equal values of key, keeping every row of
// t and appending other's non-key columns. Unmatched rows get empty cells
func (t *Table) MergeLeft(other *Table, key string) {
	ki := t.Index(key)
	ko := other.Index(key)
	if ki < 0 || ko < 0 {
		return
	}

	var extraIdx []int
	for i, c := range other.Columns {
		if i != ko {
			t.Columns = append(t.Columns, c)
			extraIdx = append(extraIdx, i)
		}
	}

	byKey := make(map[string][]string, len(other.Rows))
	for _, row := range other.Rows {
		if ko < len(row) {
			if _, seen := byKey[row[ko]]; !seen {
				byKey[row[ko]] = row
			}
		}
	}

	for r, row := range t.Rows {
		var src []string
		if ki < len(row) {
			src = byKey[row[ki]]
		}
		for _, i := range extraIdx {
			v := ""
			if src != nil && i < len(src) {
				v = src[i]
			}
			t.Rows[r] = append(t.Rows[r], v)
		}
	}
}
