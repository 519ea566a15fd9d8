package domain

import "time"

// Row is one query result keyed by field name. Absent values are nil.
type Row map[string]*string

// Project keeps only the given fields of r.
func (r Row) Project(fields []Field) Row {
	out := make(Row, len(fields))
	for _, f := range fields {
		out[f.String()] = r[f.String()]
	}
	return out
}

type QueryResult struct {
	Fields []Field
	Rows   []Row
}

// IngestReport summarises one ingestion run.
type IngestReport struct {
	Path       string    `json:"path"`
	Parsed     int       `json:"parsed"`
	Distinct   int       `json:"distinct"`
	Inserted   int       `json:"inserted"`
	Duplicates int       `json:"duplicates"`
	FinishedAt time.Time `json:"finished_at"`
}
