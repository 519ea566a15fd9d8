package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	errorsUtils "github.com/Egor213/LogParser/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type (
	Config struct {
		App        App        `yaml:"app"`
		Log        Log        `yaml:"log"`
		Ingest     Ingest     `yaml:"ingest"`
		Storage    Storage    `yaml:"storage"`
		HTTP       HTTP       `yaml:"http"`
		Prometheus Prometheus `yaml:"prometheus"`
		Kafka      Kafka      `yaml:"kafka"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"logparser"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
		File   string `yaml:"file" env:"LOG_FILE"`
	}

	Ingest struct {
		Directory    string `yaml:"directory" env:"INGEST_DIRECTORY"`
		Pattern      string `yaml:"pattern" env:"INGEST_PATTERN"`
		LegacyConfig string `yaml:"legacy_config" env:"INGEST_LEGACY_CONFIG"`
	}

	Storage struct {
		Driver   string   `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
		SQLite   SQLite   `yaml:"sqlite"`
		Postgres Postgres `yaml:"postgres"`
	}

	SQLite struct {
		Path         string        `yaml:"path" env:"SQLITE_PATH" env-default:"data/logs.db"`
		BusyTimeout  time.Duration `yaml:"busy_timeout" env:"SQLITE_BUSY_TIMEOUT" env-default:"5s"`
		MaxOpenConns int           `yaml:"max_open_conns" env:"SQLITE_MAX_OPEN_CONNS" env-default:"4"`
	}

	Postgres struct {
		URL         string `yaml:"url" env:"PG_URL"`
		MaxPoolSize int    `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"4"`
	}

	HTTP struct {
		Port string `yaml:"port" env:"HTTP_PORT" env-default:"5000"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"logparser.ingest"`
	}
)

const (
	ENV_PATH            = ".env"
	DEFAULT_CONFIG_PATH = "config/config.yaml"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// New reads the YAML file at path, then the environment. An empty path falls
// back to APP_CONFIG_PATH and then to DEFAULT_CONFIG_PATH. A missing file is
// not an error: the environment and defaults are used alone.
func New(path string) (*Config, error) {
	if err := godotenv.Load(ENV_PATH); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errorsUtils.WrapPathErr(err)
	}

	if path == "" {
		envPath, ok := os.LookupEnv("APP_CONFIG_PATH")
		if !ok || envPath == "" {
			log.WithField("env_var", "APP_CONFIG_PATH").
				Debug("Config path is not set, using default")
			envPath = DEFAULT_CONFIG_PATH
		}
		path = envPath
	}

	cfg := &Config{}
	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	} else {
		log.WithField("path", path).Debug("Config file not found, reading environment only")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
	}

	if cfg.Ingest.LegacyConfig != "" {
		directory, pattern, err := LoadLegacy(cfg.Ingest.LegacyConfig)
		if err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		cfg.Ingest.Directory = directory
		cfg.Ingest.Pattern = pattern
	}

	if err := cfg.Validate(); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLite.Path == "" {
			return errors.New("storage.sqlite.path is required")
		}
	case DriverPostgres:
		if c.Storage.Postgres.URL == "" {
			return errors.New("storage.postgres.url is required")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	return nil
}

// DSN returns the connection string of the configured storage driver.
func (c *Config) DSN() string {
	if c.Storage.Driver == DriverPostgres {
		return c.Storage.Postgres.URL
	}
	return c.Storage.SQLite.Path
}
