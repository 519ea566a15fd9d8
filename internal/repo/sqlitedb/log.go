package sqlitedb

import (
	"context"

	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/repo/repoerrs"
	"github.com/Egor213/LogParser/internal/repo/repotypes"
	"github.com/Egor213/LogParser/internal/repo/sqlbuild"
	errorsUtils "github.com/Egor213/LogParser/pkg/errors"
	"github.com/Egor213/LogParser/pkg/sqlite"
)

type LogRepo struct {
	*sqlite.SQLite
}

func NewLogRepo(db *sqlite.SQLite) *LogRepo {
	return &LogRepo{db}
}

// InsertAll writes the batch in one transaction and returns how many records
// were new. On error the whole batch is rolled back.
func (r *LogRepo) InsertAll(ctx context.Context, records []domain.Record) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, repoerrs.Fault("begin insert", errorsUtils.WrapPathErr(err))
	}
	defer tx.Rollback()

	inserted := 0
	for _, rec := range records {
		sql, args, err := sqlbuild.BuildInsert(sqlbuild.SQLite, rec)
		if err != nil {
			return 0, errorsUtils.WrapPathErr(err)
		}

		res, err := tx.ExecContext(ctx, sql, args...)
		if err != nil {
			return 0, repoerrs.Fault("insert logs", errorsUtils.WrapPathErr(err))
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, repoerrs.Fault("insert logs", errorsUtils.WrapPathErr(err))
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, repoerrs.Fault("commit insert", errorsUtils.WrapPathErr(err))
	}

	return inserted, nil
}

func (r *LogRepo) Select(ctx context.Context, q repotypes.LogQuery) ([]domain.Row, error) {
	sql, args, err := sqlbuild.BuildSelect(sqlbuild.SQLite, q)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.DB.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, repoerrs.Fault("select logs", errorsUtils.WrapPathErr(err))
	}
	defer rows.Close()

	result := []domain.Row{}
	for rows.Next() {
		row, err := sqlbuild.ScanRow(q.Fields, rows.Scan)
		if err != nil {
			return nil, repoerrs.Fault("scan logs", errorsUtils.WrapPathErr(err))
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, repoerrs.Fault("select logs", errorsUtils.WrapPathErr(err))
	}

	return result, nil
}
