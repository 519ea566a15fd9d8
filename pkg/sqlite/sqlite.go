package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	errorsUtils "github.com/Egor213/LogParser/pkg/errors"

	_ "github.com/mattn/go-sqlite3"
)

const (
	DefaultBusyTimeout  = 5 * time.Second
	DefaultMaxOpenConns = 4
)

type SQLite struct {
	busyTimeout  time.Duration
	maxOpenConns int

	Path string
	DB   *sql.DB
}

// New opens the database file at path, creating its directory if needed.
func New(ctx context.Context, path string, opts ...Option) (*SQLite, error) {
	s := &SQLite{
		busyTimeout:  DefaultBusyTimeout,
		maxOpenConns: DefaultMaxOpenConns,
		Path:         path,
	}

	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", path, s.busyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	db.SetMaxOpenConns(s.maxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errorsUtils.WrapPathErr(err)
	}

	s.DB = db
	return s, nil
}

func (s *SQLite) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
