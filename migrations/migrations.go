// Package migrations holds the schema of the logs table for every supported
// storage driver.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// DatabaseURL returns the migrate URL for dsn.
func DatabaseURL(driver, dsn string) (string, error) {
	switch driver {
	case DriverPostgres:
		return dsn, nil
	case DriverSQLite:
		return "sqlite3://" + dsn, nil
	}
	return "", fmt.Errorf("unsupported storage driver %q", driver)
}

func New(driver, dsn string) (*migrate.Migrate, error) {
	url, err := DatabaseURL(driver, dsn)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(files, driver)
	if err != nil {
		return nil, err
	}

	return migrate.NewWithSourceInstance("iofs", src, url)
}

// Up applies pending migrations. Running it on an up to date schema is a no-op.
func Up(driver, dsn string) (applied bool, err error) {
	m, err := New(driver, dsn)
	if err != nil {
		return false, err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
