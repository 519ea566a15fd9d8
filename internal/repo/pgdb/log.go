package pgdb

import (
	"context"

	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/repo/repoerrs"
	"github.com/Egor213/LogParser/internal/repo/repotypes"
	"github.com/Egor213/LogParser/internal/repo/sqlbuild"
	errorsUtils "github.com/Egor213/LogParser/pkg/errors"
	"github.com/Egor213/LogParser/pkg/postgres"
)

type LogRepo struct {
	*postgres.Postgres
}

func NewLogRepo(pg *postgres.Postgres) *LogRepo {
	return &LogRepo{pg}
}

// InsertAll writes the batch in one transaction and returns how many records
// were new. On error the whole batch is rolled back.
func (r *LogRepo) InsertAll(ctx context.Context, records []domain.Record) (int, error) {
	var inserted int

	err := r.TrManager.Do(ctx, func(ctx context.Context) error {
		inserted = 0
		tr := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool)

		for _, rec := range records {
			sql, args, err := sqlbuild.BuildInsert(sqlbuild.Postgres, rec)
			if err != nil {
				return err
			}

			tag, err := tr.Exec(ctx, sql, args...)
			if err != nil {
				return err
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, repoerrs.Fault("insert logs", errorsUtils.WrapPathErr(err))
	}

	return inserted, nil
}

func (r *LogRepo) Select(ctx context.Context, q repotypes.LogQuery) ([]domain.Row, error) {
	sql, args, err := sqlbuild.BuildSelect(sqlbuild.Postgres, q)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	rows, err := r.CtxGetter.DefaultTrOrDB(ctx, r.Pool).Query(ctx, sql, args...)
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
