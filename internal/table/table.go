// Package table reshapes CFBD JSON payloads into ordered, column oriented tables.
package table

import (
	"fmt"
	"sort"
	"strings"
)

// Row holds one record keyed by column name
type Row map[string]any

// Float returns the cell as a float64 if it is numeric
func (r Row) Float(col string) (float64, bool) {
	return toFloat(r[col])
}

// Table is an ordered set of columns and the rows that fill them
type Table struct {
	Columns []string
	Rows    []Row

	seen map[string]bool
}

// New creates an empty table with the given leading columns
func New(columns ...string) *Table {
	t := &Table{seen: make(map[string]bool)}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// FromJSON flattens a JSON array of objects (or one object) into a table.
// Nested objects become dotted columns; arrays are kept as cell values.
func FromJSON(body []byte) (*Table, error) {
	objs, err := ParseObjects(body)
	if err != nil {
		return nil, err
	}
	return FromObjects(objs), nil
}

// FromObjects flattens parsed objects into a table
func FromObjects(objs []*Object) *Table {
	t := New()
	for _, o := range objs {
		t.AppendObject(o)
	}
	return t
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the column exists
func (t *Table) HasColumn(col string) bool {
	t.ensureSeen()
	return t.seen[col]
}

func (t *Table) ensureSeen() {
	if t.seen == nil {
		t.seen = make(map[string]bool, len(t.Columns))
		for _, c := range t.Columns {
			t.seen[c] = true
		}
	}
}

func (t *Table) addColumn(col string) {
	t.ensureSeen()
	if !t.seen[col] {
		t.seen[col] = true
		t.Columns = append(t.Columns, col)
	}
}

// AppendRow adds a row. Columns not seen before are added in sorted order.
func (t *Table) AppendRow(r Row) int {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.addColumn(k)
	}
	t.Rows = append(t.Rows, r)
	return len(t.Rows) - 1
}

// AppendObject flattens o into a new row and returns its index
func (t *Table) AppendObject(o *Object) int {
	row := make(Row)
	t.Rows = append(t.Rows, row)
	idx := len(t.Rows) - 1
	t.flattenInto(idx, "", o)
	return idx
}

// SetObject flattens o into an existing row, prefixing each column
func (t *Table) SetObject(i int, prefix string, o *Object) {
	t.flattenInto(i, prefix, o)
}

func (t *Table) flattenInto(i int, prefix string, o *Object) {
	if o == nil {
		return
	}
	for _, k := range o.Keys() {
		col := k
		if prefix != "" {
			col = prefix + "." + k
		}
		if nested, ok := o.Get(k).(*Object); ok {
			t.flattenInto(i, col, nested)
			continue
		}
		t.Set(i, col, o.Get(k))
	}
}

// Set stores a value, adding the column if needed
func (t *Table) Set(i int, col string, v any) {
	t.addColumn(col)
	t.Rows[i][col] = v
}

// Value returns the cell at row i, column col
func (t *Table) Value(i int, col string) any {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i][col]
}

// Float returns the cell as a float64 if it is numeric
func (t *Table) Float(i int, col string) (float64, bool) {
	return toFloat(t.Value(i, col))
}

// Column returns all values of one column
func (t *Table) Column(col string) []any {
	out := make([]any, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[col]
	}
	return out
}

// Rename renames existing columns. Missing source columns are ignored.
// A rename onto an existing column replaces it.
func (t *Table) Rename(names map[string]string) *Table {
	if len(names) == 0 {
		return t
	}

	t.ensureSeen()
	replaced := make(map[string]bool)
	for from, to := range names {
		if from != to && t.seen[from] {
			replaced[to] = true
		}
	}
	for _, r := range t.Rows {
		for to := range replaced {
			delete(r, to)
		}
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if to, ok := names[c]; ok && to != c {
			for _, r := range t.Rows {
				if v, ok := r[c]; ok {
					r[to] = v
					delete(r, c)
				}
			}
			cols = append(cols, to)
			continue
		}
		if replaced[c] {
			continue
		}
		cols = append(cols, c)
	}

	t.Columns = dedupe(cols)
	t.seen = nil
	return t
}

func dedupe(cols []string) []string {
	seen := make(map[string]bool, len(cols))
	out := cols[:0]
	for _, c := range cols {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// AddColumn computes a column from each row, replacing it if it exists
func (t *Table) AddColumn(name string, fn func(Row) any) *Table {
	t.addColumn(name)
	for _, r := range t.Rows {
		r[name] = fn(r)
	}
	return t
}

// Fill sets missing or null cells of the given columns to v, adding the columns if needed
func (t *Table) Fill(cols []string, v any) *Table {
	for _, c := range cols {
		t.addColumn(c)
		for _, r := range t.Rows {
			if r[c] == nil {
				r[c] = v
			}
		}
	}
	return t
}

// Reorder moves the listed columns to the front in the given order.
// Listed columns that do not exist are skipped.
func (t *Table) Reorder(cols []string) *Table {
	t.ensureSeen()
	front := make([]string, 0, len(cols))
	listed := make(map[string]bool, len(cols))
	for _, c := range cols {
		if t.seen[c] && !listed[c] {
			front = append(front, c)
			listed[c] = true
		}
	}
	for _, c := range t.Columns {
		if !listed[c] {
			front = append(front, c)
		}
	}
	t.Columns = front
	return t
}

// Select returns a table with only the named columns
func (t *Table) Select(cols ...string) (*Table, error) {
	t.ensureSeen()
	var missing []string
	for _, c := range cols {
		if !t.seen[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown columns: %s", strings.Join(missing, ", "))
	}

	out := New(cols...)
	for _, r := range t.Rows {
		nr := make(Row, len(cols))
		for _, c := range cols {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.Rows = append(out.Rows, nr)
	}
	return out, nil
}

// Keyed builds a table whose rows are addressed by a string key, in first-seen order
type Keyed struct {
	*Table
	index map[string]int
}

// NewKeyed creates a keyed table with the given leading columns
func NewKeyed(columns ...string) *Keyed {
	return &Keyed{Table: New(columns...), index: make(map[string]int)}
}

// Row returns the row index for key, creating the row and calling init when it is new
func (k *Keyed) Row(key string, init func(i int)) int {
	if i, ok := k.index[key]; ok {
		return i
	}
	k.Rows = append(k.Rows, make(Row))
	i := len(k.Rows) - 1
	k.index[key] = i
	if init != nil {
		init(i)
	}
	return i
}
