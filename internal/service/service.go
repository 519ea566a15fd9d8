package service

import (
	"context"

	"github.com/Egor213/LogParser/internal/broker"
	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/metrics"
	"github.com/Egor213/LogParser/internal/repo"
)

type Ingester interface {
	Ingest(ctx context.Context, path, pattern string) (int, error)
}

type Querier interface {
	Query(ctx context.Context, req QueryRequest) (domain.QueryResult, error)
}

type Services struct {
	Ingester Ingester
	Querier  Querier
}

type ServicesDependencies struct {
	Repos          *repo.Repositories
	Counters       *metrics.Counters
	BrokerProducer broker.Producer
}

func NewServices(deps ServicesDependencies) *Services {
	return &Services{
		Ingester: NewIngestService(deps.Repos.Log, deps.Counters, deps.BrokerProducer),
		Querier:  NewQueryService(deps.Repos.Log, deps.Counters),
	}
}
