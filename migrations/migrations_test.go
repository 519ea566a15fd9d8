package migrations_test

import (
	"path/filepath"
	"testing"

	"github.com/Egor213/LogParser/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUp_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")

	applied, err := migrations.Up(migrations.DriverSQLite, path)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = migrations.Up(migrations.DriverSQLite, path)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestDatabaseURL(t *testing.T) {
	testCases := []struct {
		name    string
		driver  string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "sqlite", driver: migrations.DriverSQLite, dsn: "data/logs.db", want: "sqlite3://data/logs.db"},
		{name: "postgres", driver: migrations.DriverPostgres, dsn: "postgres://localhost/logs", want: "postgres://localhost/logs"},
		{name: "unknown", driver: "mysql", dsn: "x", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := migrations.DatabaseURL(tc.driver, tc.dsn)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
