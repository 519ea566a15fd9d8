package metrics

import "github.com/prometheus/client_golang/prometheus"

type Counter interface {
	Inc(labels ...string)
	Add(value float64, labels ...string)
}

type Counters struct {
	IngestRuns      Counter
	IngestedRecords Counter

	Queries Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logparser",
			Name:      name,
			Help:      help,
		}, labels),
	}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func (p *PrometheusCounter) Add(value float64, labels ...string) {
	p.counter.WithLabelValues(labels...).Add(value)
}

func newCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		IngestRuns: NewPrometheusCounter(reg,
			"ingest_runs_total",
			"Number of ingestion runs by outcome",
			[]string{"status"},
		),
		IngestedRecords: NewPrometheusCounter(reg,
			"ingested_records_total",
			"Number of parsed records by storage outcome",
			[]string{"result"},
		),
		Queries: NewPrometheusCounter(reg,
			"queries_total",
			"Number of log queries by outcome",
			[]string{"status"},
		),
	}
}

// New registers the counters in the default registry served on /metrics.
func New() *Counters {
	return newCounters(prometheus.DefaultRegisterer)
}

func NewTestCounters() *Counters {
	return newCounters(prometheus.NewRegistry())
}
