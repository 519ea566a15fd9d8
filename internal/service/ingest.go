package service

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/Egor213/LogParser/internal/broker"
	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/metrics"
	"github.com/Egor213/LogParser/internal/parser"
	"github.com/Egor213/LogParser/internal/repo"
	"github.com/Egor213/LogParser/internal/repo/repoerrs"
	errorsUtils "github.com/Egor213/LogParser/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type IngestService struct {
	logRepo        repo.Log
	counters       *metrics.Counters
	brokerProducer broker.Producer
}

func NewIngestService(lr repo.Log, cnt *metrics.Counters, p broker.Producer) *IngestService {
	if p == nil {
		p = broker.Nop{}
	}
	return &IngestService{
		logRepo:        lr,
		counters:       cnt,
		brokerProducer: p,
	}
}

// Ingest parses the file at path with pattern and stores the records. It
// returns the number of records that were not stored before.
func (s *IngestService) Ingest(ctx context.Context, path, pattern string) (int, error) {
	p, err := parser.New(pattern)
	if err != nil {
		s.counters.IngestRuns.Inc("failed")
		return 0, errorsUtils.WrapPathErr(err)
	}

	records, err := readRecords(path, p)
	if err != nil {
		s.counters.IngestRuns.Inc("failed")
		return 0, errorsUtils.WrapPathErr(err)
	}

	inserted, err := s.logRepo.InsertAll(ctx, records)
	if err != nil {
		s.counters.IngestRuns.Inc("failed")
		return 0, errorsUtils.WrapPathErr(err)
	}

	report := domain.IngestReport{
		Path:       path,
		Parsed:     len(records),
		Distinct:   countDistinct(records),
		Inserted:   inserted,
		Duplicates: len(records) - inserted,
		FinishedAt: time.Now(),
	}

	s.counters.IngestRuns.Inc("ok")
	s.counters.IngestedRecords.Add(float64(report.Inserted), "inserted")
	s.counters.IngestedRecords.Add(float64(report.Duplicates), "duplicate")

	log.WithFields(log.Fields{
		"path":       report.Path,
		"pattern":    p.Pattern(),
		"parsed":     report.Parsed,
		"distinct":   report.Distinct,
		"inserted":   report.Inserted,
		"duplicates": report.Duplicates,
	}).Info("Logs processed")

	s.publish(ctx, report)

	return inserted, nil
}

func (s *IngestService) publish(ctx context.Context, report domain.IngestReport) {
	value, err := json.Marshal(report)
	if err != nil {
		log.Errorf("Failed to encode ingest report: %v", err)
		return
	}
	if err := s.brokerProducer.SendMessage(ctx, []byte(report.Path), value); err != nil {
		log.WithField("path", report.Path).Warnf("Ingest report not published: %v", err)
	}
}

// countDistinct counts the identities among records.
func countDistinct(records []domain.Record) int {
	seen := make(map[domain.RecordKey]struct{}, len(records))
	for _, rec := range records {
		seen[rec.Key()] = struct{}{}
	}
	return len(seen)
}

func readRecords(path string, p *parser.Parser) ([]domain.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, repoerrs.Fault("open log file", err)
	}
	defer f.Close()

	records, err := p.ParseReader(f)
	if err != nil {
		return nil, repoerrs.Fault("read log file "+path, err)
	}
	return records, nil
}
