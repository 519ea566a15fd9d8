package logginghelper

import (
	"github.com/Egor213/LogParser/internal/service"
	log "github.com/sirupsen/logrus"
)

func queryFields(source string, req service.QueryRequest) log.Fields {
	fields := log.Fields{
		"source": source,
		"fields": req.Fields,
	}
	if req.Range != nil {
		fields["start"] = req.Range.Start
		fields["end"] = req.Range.End
	}
	return fields
}

func LogQueryReceived(source string, req service.QueryRequest) {
	log.WithFields(queryFields(source, req)).Info("Received log query")
}

func LogQueryServed(source string, req service.QueryRequest, rows int) {
	log.WithFields(queryFields(source, req)).
		WithField("rows", rows).
		Info("Log query served")
}

func LogQueryError(source string, req service.QueryRequest, err error) {
	log.WithFields(queryFields(source, req)).
		WithField("error", err).
		Error("Failed to serve log query")
}
