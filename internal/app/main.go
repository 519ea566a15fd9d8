package app

import (
	"context"
	"errors"
	"io"

	"github.com/Egor213/LogParser/internal/broker"
	kafkabroker "github.com/Egor213/LogParser/internal/broker/kafka"
	"github.com/Egor213/LogParser/internal/config"
	"github.com/Egor213/LogParser/internal/controller/console"
	httpv1 "github.com/Egor213/LogParser/internal/controller/http/v1"
	"github.com/Egor213/LogParser/internal/metrics"
	"github.com/Egor213/LogParser/internal/parser"
	"github.com/Egor213/LogParser/internal/repo"
	"github.com/Egor213/LogParser/internal/repo/repoerrs"
	"github.com/Egor213/LogParser/internal/service"
	errorsUtils "github.com/Egor213/LogParser/pkg/errors"
	"github.com/Egor213/LogParser/pkg/httpserver"
	"github.com/Egor213/LogParser/pkg/logger"
	"github.com/Egor213/LogParser/pkg/postgres"
	"github.com/Egor213/LogParser/pkg/sqlite"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	log "github.com/sirupsen/logrus"
)

const metricsSubsystem = "logparser"

var ErrNoInputFile = errors.New("ingest.directory is not set")

type App struct {
	cfg      *config.Config
	services *service.Services
	closers  []func() error
}

// New sets up logging, storage, migrations and services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	// Logger
	logCloser := logger.SetupLogger(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	a.closers = append(a.closers, logCloser.Close)
	log.WithFields(log.Fields{
		"app":     cfg.App.Name,
		"version": cfg.App.Version,
	}).Info("Logger has been set up")

	// Storage
	repositories, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Migrations
	if err := Migrate(cfg.Storage.Driver, cfg.DSN()); err != nil {
		a.Close()
		return nil, repoerrs.Fault("initialize storage", err)
	}

	// Producer
	var producer broker.Producer = broker.Nop{}
	if len(cfg.Kafka.Brokers) > 0 {
		log.WithField("brokers", cfg.Kafka.Brokers).Info("Ingest reports go to Kafka")
		kp := kafkabroker.NewProducer(kafkabroker.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		a.closers = append(a.closers, kp.Close)
		producer = kp
	}

	// Services
	deps := service.ServicesDependencies{
		Repos:          repositories,
		Counters:       metrics.New(),
		BrokerProducer: producer,
	}
	a.services = service.NewServices(deps)

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (*repo.Repositories, error) {
	log.WithField("driver", a.cfg.Storage.Driver).Info("Connecting to DB")

	switch a.cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := postgres.New(ctx, a.cfg.Storage.Postgres.URL,
			postgres.MaxPoolSize(a.cfg.Storage.Postgres.MaxPoolSize))
		if err != nil {
			return nil, repoerrs.Fault("connect postgres", err)
		}
		a.closers = append(a.closers, func() error {
			pg.Close()
			return nil
		})
		log.Info("Connected to DB")
		return repo.NewPostgresRepositories(pg), nil

	default:
		db, err := sqlite.New(ctx, a.cfg.Storage.SQLite.Path,
			sqlite.BusyTimeout(a.cfg.Storage.SQLite.BusyTimeout),
			sqlite.MaxOpenConns(a.cfg.Storage.SQLite.MaxOpenConns))
		if err != nil {
			return nil, repoerrs.Fault("open sqlite", err)
		}
		a.closers = append(a.closers, db.Close)
		log.WithField("path", db.Path).Info("Connected to DB")
		return repo.NewSQLiteRepositories(db), nil
	}
}

// Ingest loads the configured log file once and returns the number of new records.
func (a *App) Ingest(ctx context.Context) (int, error) {
	directory := a.cfg.Ingest.Directory
	if directory == "" {
		return 0, errorsUtils.WrapPathErr(ErrNoInputFile)
	}

	pattern := a.cfg.Ingest.Pattern
	if pattern == "" {
		log.Info("Ingest pattern is not set, using the common log format")
		pattern = parser.CommonLogFormat
	}

	return a.services.Ingester.Ingest(ctx, directory, pattern)
}

func (a *App) RunConsole(ctx context.Context, in io.Reader, out io.Writer) error {
	return console.New(a.services.Querier, in, out).Run(ctx)
}

// RunServer serves the query API and the metrics endpoint until ctx is done
// or one of the servers fails.
func (a *App) RunServer(ctx context.Context) error {
	// API server
	apiHandler := echo.New()
	apiHandler.HideBanner = true
	apiHandler.HidePort = true
	apiHandler.Use(middleware.Recover())
	apiHandler.Use(echoprometheus.NewMiddleware(metricsSubsystem))
	httpv1.ConfigureRouter(apiHandler, a.services)

	log.Infof("Starting API server...")
	log.Debugf("API server port: %s", a.cfg.HTTP.Port)
	apiServer := httpserver.New(apiHandler, httpserver.Port(a.cfg.HTTP.Port))

	// Prometheus server
	metricsHandler := echo.New()
	metricsHandler.HideBanner = true
	metricsHandler.HidePort = true
	metrics.ConfigureRouter(metricsHandler)

	log.Infof("Starting metrics server...")
	log.Debugf("Metrics server port: %s", a.cfg.Prometheus.Port)
	metricsServer := httpserver.New(metricsHandler, httpserver.Port(a.cfg.Prometheus.Port))

	log.WithFields(log.Fields{
		"api":     apiServer.Addr(),
		"metrics": metricsServer.Addr(),
	}).Info("Servers started, query endpoint is GET /logs")

	var err error
	select {
	case <-ctx.Done():
		log.Info("Shutdown requested")
	case err = <-apiServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	case err = <-metricsServer.Notify():
		log.Error(errorsUtils.WrapPathErr(err))
	}

	shutdownServers(apiServer, metricsServer)
	return err
}

func shutdownServers(servers ...*httpserver.Server) {
	log.Info("Shutting down...")
	for _, s := range servers {
		if err := s.Shutdown(); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
}

// Close releases storage, broker and log file handles in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Error(errorsUtils.WrapPathErr(err))
		}
	}
	a.closers = nil
}
