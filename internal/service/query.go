package service

import (
	"context"
	"strings"

	"github.com/Egor213/LogParser/internal/domain"
	"github.com/Egor213/LogParser/internal/metrics"
	"github.com/Egor213/LogParser/internal/repo"
	"github.com/Egor213/LogParser/internal/repo/repotypes"
	errorsUtils "github.com/Egor213/LogParser/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TimestampSeparator joins a date and a time into the stored timestamp layout,
// e.g. "10/Oct/2023" + ":" + "13:55:36".
const TimestampSeparator = ":"

type QueryRequest struct {
	// Fields is "*" or a comma separated list of field names.
	Fields string
	Range  *repotypes.TimeRange
}

// RangeFromParts returns nil unless all four parts are set.
func RangeFromParts(startDate, startTime, endDate, endTime string) *repotypes.TimeRange {
	if startDate == "" || startTime == "" || endDate == "" || endTime == "" {
		return nil
	}
	return &repotypes.TimeRange{
		Start: startDate + TimestampSeparator + startTime,
		End:   endDate + TimestampSeparator + endTime,
	}
}

// ParseFields resolves a field list against the known fields. Duplicates are
// collapsed, order of first appearance is kept.
func ParseFields(list string) ([]domain.Field, error) {
	list = strings.TrimSpace(list)
	if list == domain.Wildcard {
		return domain.Fields(), nil
	}
	if list == "" {
		return nil, &InvalidFieldError{}
	}

	seen := make(map[domain.Field]struct{})
	fields := []domain.Field{}
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		f, ok := domain.ParseField(name)
		if !ok {
			return nil, &InvalidFieldError{Field: name}
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		fields = append(fields, f)
	}

	return fields, nil
}

func ValidateRange(tr *repotypes.TimeRange) error {
	if tr == nil {
		return nil
	}
	if tr.Start == "" || tr.End == "" {
		return &QueryError{Cause: "time range needs both a start and an end"}
	}
	if tr.Start > tr.End {
		return &QueryError{Cause: "time range start " + tr.Start + " is after end " + tr.End}
	}
	return nil
}

type QueryService struct {
	logRepo  repo.Log
	counters *metrics.Counters
}

func NewQueryService(lr repo.Log, cnt *metrics.Counters) *QueryService {
	return &QueryService{
		logRepo:  lr,
		counters: cnt,
	}
}

func (s *QueryService) Query(ctx context.Context, req QueryRequest) (domain.QueryResult, error) {
	fields, err := ParseFields(req.Fields)
	if err != nil {
		s.counters.Queries.Inc("invalid")
		return domain.QueryResult{}, err
	}

	if err := ValidateRange(req.Range); err != nil {
		s.counters.Queries.Inc("invalid")
		return domain.QueryResult{}, err
	}

	rows, err := s.logRepo.Select(ctx, repotypes.LogQuery{Fields: fields, Range: req.Range})
	if err != nil {
		s.counters.Queries.Inc("failed")
		return domain.QueryResult{}, errorsUtils.WrapPathErr(err)
	}

	log.WithFields(log.Fields{
		"fields": req.Fields,
		"ranged": req.Range != nil,
		"rows":   len(rows),
	}).Debug("Query executed")

	s.counters.Queries.Inc("ok")

	return domain.QueryResult{Fields: fields, Rows: rows}, nil
}
