// Package sqlbuild builds the statements shared by the SQL backends. Column
// names only ever come from domain.Field values, caller text is always bound
// as an argument.
package sqlbuild

import (
	"fmt"

	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/repo/repotypes"
	sq "github.com/Masterminds/squirrel"
)

const LogsTable = "logs"

type Dialect struct {
	Name    string
	Builder sq.StatementBuilderType
	// Collate is appended to the timestamp column in range filters so the
	// comparison is byte-wise regardless of the database locale.
	Collate string
}

var (
	Postgres = Dialect{
		Name:    "postgres",
		Builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		Collate: ` COLLATE "C"`,
	}
	SQLite = Dialect{
		Name:    "sqlite",
		Builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}
)

// Column quotes the column of f. "user" is a reserved word in PostgreSQL.
func Column(f domain.Field) (string, error) {
	if _, ok := domain.ParseField(string(f)); !ok {
		return "", fmt.Errorf("unknown field %q", string(f))
	}
	return `"` + string(f) + `"`, nil
}

func Columns(fields []domain.Field) ([]string, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("no fields selected")
	}
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		col, err := Column(f)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func BuildRangeFilter(d Dialect, tr repotypes.TimeRange) sq.Sqlizer {
	col, _ := Column(domain.FieldTimestamp)
	return sq.Expr(col+d.Collate+" BETWEEN ? AND ?", tr.Start, tr.End)
}

func BuildSelect(d Dialect, q repotypes.LogQuery) (string, []any, error) {
	cols, err := Columns(q.Fields)
	if err != nil {
		return "", nil, err
	}

	query := d.Builder.
		Select(cols...).
		From(LogsTable)

	if q.Range != nil {
		query = query.Where(BuildRangeFilter(d, *q.Range))
	}

	return query.ToSql()
}

// BuildInsert inserts rec unless a record with the same identity exists.
func BuildInsert(d Dialect, rec domain.Record) (string, []any, error) {
	cols, err := Columns(domain.Fields())
	if err != nil {
		return "", nil, err
	}

	values := make([]any, 0, len(cols))
	for _, v := range rec.Values() {
		values = append(values, v)
	}

	return d.Builder.
		Insert(LogsTable).
		Columns(cols...).
		Values(values...).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
}

// ScanRow reads one result row of fields through scan.
func ScanRow(fields []domain.Field, scan func(dest ...any) error) (domain.Row, error) {
	values := make([]*string, len(fields))
	dest := make([]any, len(fields))
	for i := range values {
		dest[i] = &values[i]
	}

	if err := scan(dest...); err != nil {
		return nil, err
	}

	row := make(domain.Row, len(fields))
	for i, f := range fields {
		row[f.String()] = values[i]
	}
	return row, nil
}
