package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kilianp07/schedgen/app/plugins"
	"github.com/kilianp07/schedgen/config"
	"github.com/kilianp07/schedgen/core/browser"
	"github.com/kilianp07/schedgen/core/catalog"
	coremetrics "github.com/kilianp07/schedgen/core/metrics"
	"github.com/kilianp07/schedgen/core/model"
	"github.com/kilianp07/schedgen/core/schedule"
	"github.com/kilianp07/schedgen/infra/logger"
	_ "github.com/kilianp07/schedgen/infra/metrics" // registers the built-in sinks
	"github.com/kilianp07/schedgen/ingest"
)

// Service wires the offering loader, the planner and the metrics sinks.
type Service struct {
	Loader  *ingest.Loader
	Planner *schedule.Planner
	sink    coremetrics.MetricsSink
	log     logger.Logger
	catalog *catalog.Catalog
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	loader, err := ingest.NewLoader(cfg.Ingest, logger.New("ingest"))
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	opts, err := cfg.Schedule.Options()
	if err != nil {
		return nil, fmt.Errorf("schedule options: %w", err)
	}
	gen, err := plugins.NewGenerator(cfg.Schedule.Generator, nil)
	if err != nil {
		return nil, err
	}
	planner, err := schedule.NewPlanner(opts, gen, logger.New("planner"), sink)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	return &Service{Loader: loader, Planner: planner, sink: sink, log: logg}, nil
}

// Load reads the offering files and indexes them. It replaces any catalog
// loaded before.
func (s *Service) Load(ctx context.Context, paths ...string) (*catalog.Catalog, error) {
	start := time.Now()
	ds, err := s.Loader.LoadPaths(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if rec, ok := s.sink.(coremetrics.IngestRecorder); ok {
		ev := coremetrics.IngestEvent{
			Files:    ds.Files,
			Rows:     ds.Rows,
			Meetings: len(ds.Meetings),
			Dropped:  ds.Dropped,
			Duration: time.Since(start),
			Time:     start,
		}
		if err := rec.RecordIngest(ev); err != nil {
			s.log.Warnf("record ingest: %v", err)
		}
	}
	s.log.Infow("offering loaded", map[string]any{
		"files":    ds.Files,
		"rows":     ds.Rows,
		"meetings": len(ds.Meetings),
		"dropped":  ds.Dropped,
	})
	s.catalog = catalog.New(ds.Meetings)
	return s.catalog, nil
}

// Catalog returns the last loaded catalog, or nil.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Generate runs the planner against the loaded offering and returns a
// browsing session over the result set.
func (s *Service) Generate(ctx context.Context, req model.Request) (*browser.Session, schedule.Result, error) {
	if s.catalog == nil {
		return nil, schedule.Result{}, fmt.Errorf("no offering loaded")
	}
	res, err := s.Planner.Plan(ctx, req, s.catalog.Meetings())
	if err != nil {
		return nil, schedule.Result{}, err
	}
	return browser.NewSession(res.Combinations), res, nil
}

// Close flushes sinks that buffer their output.
func (s *Service) Close() error {
	if f, ok := s.sink.(coremetrics.Flusher); ok {
		return f.Flush()
	}
	return nil
}
