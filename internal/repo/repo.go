package repo

import (
	"context"

	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/repo/pgdb"
	"github.com/Egor213/LogParser/internal/repo/repotypes"
	"github.com/Egor213/LogParser/internal/repo/sqlitedb"
	"github.com/Egor213/LogParser/pkg/postgres"
	"github.com/Egor213/LogParser/pkg/sqlite"
)

type Log interface {
	InsertAll(ctx context.Context, records []domain.Record) (int, error)
	Select(ctx context.Context, q repotypes.LogQuery) ([]domain.Row, error)
}

type Repositories struct {
	Log
}

func NewPostgresRepositories(pg *postgres.Postgres) *Repositories {
	return &Repositories{
		Log: pgdb.NewLogRepo(pg),
	}
}

func NewSQLiteRepositories(db *sqlite.SQLite) *Repositories {
	return &Repositories{
		Log: sqlitedb.NewLogRepo(db),
	}
}
