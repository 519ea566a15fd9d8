package app

import (
	"time"

	errorsUtils "github.com/Egor213/LogParser/pkg/errors"

	"github.com/Egor213/LogParser/migrations"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second
)

// Migrate creates the logs table and its identity index when missing. It
// never drops or rewrites existing data.
func Migrate(driver, dsn string) error {
	log.WithField("driver", driver).Info("Migrate")

	var (
		connAttempts = defaultAttempts
		applied      bool
		err          error
	)

	for connAttempts > 0 {
		applied, err = migrations.Up(driver, dsn)
		if err == nil {
			break
		}

		connAttempts--
		log.Infof("Storage migration failed, attempts left: %d: %v", connAttempts, err)
		if connAttempts > 0 {
			time.Sleep(defaultTimeout)
		}
	}

	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}

	if !applied {
		log.Info("Migration no change")
		return nil
	}

	log.Info("Migration successful up")
	return nil
}
