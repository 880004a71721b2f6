package table

import "strings"

// Field copies a source field into a column
type Field struct {
	Source string
	Column string
}

// PivotSpec describes how long, category keyed records fold into wide rows
type PivotSpec struct {
	// ID fields identify the entity a record belongs to and are copied to the row
	ID []Field
	// Column names the destination column of a record; false drops the record
	Column func(o *Object) (string, bool)
	// Value is the source field holding the statistic
	Value string
}

// Pivot folds records into one row per entity, in first-seen order.
// Numeric text values are converted to numbers.
func Pivot(records []*Object, spec PivotSpec) *Table {
	cols := make([]string, len(spec.ID))
	for i, f := range spec.ID {
		cols[i] = f.Column
	}

	k := NewKeyed(cols...)
	for _, rec := range records {
		col, ok := spec.Column(rec)
		if !ok {
			continue
		}

		i := k.Row(pivotKey(rec, spec.ID), func(i int) {
			for _, f := range spec.ID {
				k.Set(i, f.Column, rec.Get(f.Source))
			}
		})
		k.Set(i, col, Number(rec.Get(spec.Value)))
	}
	return k.Table
}

func pivotKey(rec *Object, fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = rec.String(f.Source)
	}
	return strings.Join(parts, "\x1f")
}

// Ratio adds column name = num/den for rows whose denominator is positive.
// Other rows get 0.
func (t *Table) Ratio(name, num, den string) *Table {
	return t.AddColumn(name, func(r Row) any {
		d, ok := toFloat(r[den])
		if !ok || d <= 0 {
			return float64(0)
		}
		n, _ := toFloat(r[num])
		return n / d
	})
}
