package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Egor213/LogParser/pkg/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Options(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logs.db")

	db, err := sqlite.New(context.Background(), path,
		sqlite.BusyTimeout(250*time.Millisecond),
		sqlite.MaxOpenConns(2),
	)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, path, db.Path)
	assert.Equal(t, 2, db.DB.Stats().MaxOpenConnections)

	var timeout int
	require.NoError(t, db.DB.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 250, timeout)
}

func TestNew_ZeroOptionsKeepDefaults(t *testing.T) {
	db, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "logs.db"),
		sqlite.BusyTimeout(0),
		sqlite.MaxOpenConns(0),
	)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, sqlite.DefaultMaxOpenConns, db.DB.Stats().MaxOpenConnections)

	var timeout int
	require.NoError(t, db.DB.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, int(sqlite.DefaultBusyTimeout.Milliseconds()), timeout)
}
