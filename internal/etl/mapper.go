package etl

// MapColumns renames source headers to canonical field names and projects the
// frame onto them. Columns absent from the mapping or the frame are silently
// dropped: source files vary in which optional columns they include, so a
// partial match is the normal case, not an error.
func MapColumns(frame Frame, mapping map[string]string) Frame {
	if frame.Empty() || len(mapping) == 0 {
		return Frame{}
	}

	cleaned := make(map[string]string, len(mapping))
	for source, canonical := range mapping {
		cleaned[CleanHeader(source)] = canonical
	}

	var columns []string
	sourceFor := make(map[string]string)
	for _, col := range frame.Columns {
		canonical, ok := cleaned[col]
		if !ok {
			continue
		}
		if _, dup := sourceFor[canonical]; dup {
			continue
		}
		sourceFor[canonical] = col
		columns = append(columns, canonical)
	}
	if len(columns) == 0 {
		return Frame{}
	}

	rows := make([]Row, 0, len(frame.Rows))
	for _, row := range frame.Rows {
		mapped := make(Row, len(columns))
		for _, canonical := range columns {
			mapped[canonical] = row[sourceFor[canonical]]
		}
		rows = append(rows, mapped)
	}
	return Frame{Columns: columns, Rows: rows}
}
