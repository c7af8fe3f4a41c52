package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/schedgen/core/metrics"
)

// PromSink records generation and ingestion events in Prometheus metrics.
// When Textfile is set, Flush writes the registry in the node_exporter
// textfile format so short-lived CLI runs can still be scraped.
type PromSink struct {
	Textfile string

	gatherer    prometheus.Gatherer
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	space       prometheus.Histogram
	results     prometheus.Gauge
	ingested    *prometheus.CounterVec
}

// NewPromSink registers schedule metrics on the default Prometheus registry.
func NewPromSink(textfile string) (*PromSink, error) {
	return NewPromSinkWithRegistry(textfile, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer or gatherer defaults to the global Prometheus registry.
func NewPromSinkWithRegistry(textfile string, reg prometheus.Registerer, g prometheus.Gatherer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_generations_total",
		Help: "Total number of schedule generation requests by outcome",
	}, []string{"outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_generation_duration_seconds",
		Help:    "Time spent generating schedules",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	space := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_search_space_size",
		Help:    "Cartesian product size of the candidate sections",
		Buckets: prometheus.ExponentialBuckets(1, 10, 8),
	})
	results := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "schedule_last_results",
		Help: "Number of schedules returned by the last generation",
	})
	ingested := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "offering_ingested_total",
		Help: "Offering rows and meetings read from input files",
	}, []string{"kind"})

	var err error
	if generations, err = register(reg, generations); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if space, err = register(reg, space); err != nil {
		return nil, err
	}
	if results, err = register(reg, results); err != nil {
		return nil, err
	}
	if ingested, err = register(reg, ingested); err != nil {
		return nil, err
	}
	return &PromSink{
		Textfile:    textfile,
		gatherer:    g,
		generations: generations,
		duration:    duration,
		space:       space,
		results:     results,
		ingested:    ingested,
	}, nil
}

// register adds c to reg, reusing the collector already registered under the
// same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordGeneration updates the generation metrics.
func (s *PromSink) RecordGeneration(ev coremetrics.GenerationEvent) error {
	outcome := string(ev.Outcome)
	s.generations.WithLabelValues(outcome).Inc()
	s.duration.WithLabelValues(outcome).Observe(ev.Duration.Seconds())
	if ev.SearchSpace > 0 {
		s.space.Observe(float64(ev.SearchSpace))
	}
	if ev.Outcome == coremetrics.OutcomeOK {
		s.results.Set(float64(ev.Results))
	} else {
		s.results.Set(0)
	}
	return nil
}

// RecordIngest adds the ingested counts.
func (s *PromSink) RecordIngest(ev coremetrics.IngestEvent) error {
	s.ingested.WithLabelValues("files").Add(float64(ev.Files))
	s.ingested.WithLabelValues("rows").Add(float64(ev.Rows))
	s.ingested.WithLabelValues("meetings").Add(float64(ev.Meetings))
	s.ingested.WithLabelValues("dropped").Add(float64(ev.Dropped))
	return nil
}

// Flush writes the textfile when one is configured.
func (s *PromSink) Flush() error {
	if s.Textfile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(s.Textfile, s.gatherer)
}
