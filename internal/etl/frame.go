package etl

// Row is one record of a tabular source, keyed by cleaned column header.
// Values stay raw strings until the normalization boundary.
type Row map[string]string

// Frame is the immutable tabular hand-off between pipeline stages.
type Frame struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the frame carries no rows.
func (f Frame) Empty() bool {
	return len(f.Rows) == 0
}

// HasColumn reports whether the frame carries the given column.
func (f Frame) HasColumn(name string) bool {
	for _, col := range f.Columns {
		if col == name {
			return true
		}
	}
	return false
}
