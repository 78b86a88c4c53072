package tabular

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Record is one worksheet row keyed by header column name.
type Record map[string]string

// Table is a worksheet decoded into named columns and records.
// Columns preserves the header order.
type Table struct {
	Columns []string
	Records []Record
}

// FromRows builds a Table from a raw value grid. The first row is the
// header; a grid with fewer than two rows yields an empty table, not an
// error. Cells are coerced to text, short rows are padded with empty text
// and cells beyond the header width are dropped. Duplicate header names are
// rejected: with them, Record lookups would silently pick one of two columns.
func FromRows(rows [][]interface{}) (Table, error) {
	if len(rows) < 2 {
		return Table{}, nil
	}

	header := rows[0]
	cols := make([]string, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for _, cell := range header {
		name := strings.TrimSpace(cast.ToString(cell))
		if _, dup := seen[name]; dup {
			return Table{}, fmt.Errorf("tabular: duplicate column %q in header", name)
		}
		seen[name] = struct{}{}
		cols = append(cols, name)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(cols))
		for i, col := range cols {
			if i < len(row) {
				rec[col] = cast.ToString(row[i])
			} else {
				rec[col] = ""
			}
		}
		records = append(records, rec)
	}
	return Table{Columns: cols, Records: records}, nil
}

// Empty reports whether the table holds no schema and no records.
func (t Table) Empty() bool {
	return len(t.Columns) == 0 && len(t.Records) == 0
}

// HasColumn reports whether name is part of the table schema.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
