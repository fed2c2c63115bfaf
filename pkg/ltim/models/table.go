package models

// Record is one observation: column name to text value. A column absent from
// the map is missing for this record, which is distinct from an empty value.
type Record map[string]string

// Get returns the value for col and whether the record has that column.
func (r Record) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// With returns a copy of the record with col set to value.
func (r Record) With(col, value string) Record {
	out := r.clone()
	out[col] = value
	return out
}

// Without returns a copy of the record with col removed.
func (r Record) Without(col string) Record {
	out := r.clone()
	delete(out, col)
	return out
}

func (r Record) clone() Record {
	out := make(Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered sequence of records sharing a column schema.
type Table struct {
	// Columns lists the column names in output order.
	Columns []string `json:"columns"`
	// Records holds one entry per observation.
	Records []Record `json:"records"`
}

// HasColumn reports whether col is part of the schema.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Column returns the values of col for every record; missing values are "".
func (t Table) Column(col string) []string {
	out := make([]string, len(t.Records))
	for i, r := range t.Records {
		out[i] = r[col]
	}
	return out
}

// Rows renders the table as string rows in column order.
func (t Table) Rows() [][]string {
	rows := make([][]string, 0, len(t.Records))
	for _, r := range t.Records {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = r[c]
		}
		rows = append(rows, row)
	}
	return rows
}

// Column names produced by the resolver before cleaning.
const (
	// ObservationColumn holds the numeric observation rendered as text.
	ObservationColumn = "OBS"
	// DataMarkerColumn holds observation cells that were text instead of numbers.
	DataMarkerColumn = "DATAMARKER"
)
