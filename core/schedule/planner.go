package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/schedgen/core/logger"
	"github.com/kilianp07/schedgen/core/metrics"
	"github.com/kilianp07/schedgen/core/model"
)

// Options tunes a Planner. The zero value applies no ceiling, no timeout,
// excludes full sections and uses DefaultWindows.
type Options struct {
	IncludeFull    bool
	SouthPrefix    string
	LuqueMarker    string
	Windows        map[model.Window]Bounds
	MaxSearchSpace uint64
	Timeout        time.Duration
}

// Result is the outcome of a successful generation.
type Result struct {
	RunID        string
	Combinations []model.Combination
	// Candidates counts conflict-free combinations before the window filter.
	Candidates  int
	SearchSpace uint64
	Sections    [][]model.Section
}

// Planner runs the filter, group, generate and post-filter pipeline for one
// request at a time.
type Planner struct {
	opts Options
	gen  Generator
	log  logger.Logger
	sink metrics.MetricsSink
	now  func() time.Time
}

// NewPlanner returns a Planner. A nil generator defaults to the
// backtracking generator; a nil sink records nothing.
func NewPlanner(opts Options, gen Generator, log logger.Logger, sink metrics.MetricsSink) (*Planner, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if gen == nil {
		gen = BacktrackingGenerator{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if opts.Windows == nil {
		opts.Windows = DefaultWindows
	}
	return &Planner{opts: opts, gen: gen, log: log, sink: sink, now: time.Now}, nil
}

// Bounds returns the configured bounds for w.
func (p *Planner) Bounds(w model.Window) (Bounds, bool) {
	b, ok := p.opts.Windows[w]
	return b, ok
}

// Plan generates every valid schedule for req from the offering meetings.
// Either the full result set or an error is returned, never a partial set.
func (p *Planner) Plan(ctx context.Context, req model.Request, meetings []model.Meeting) (Result, error) {
	start := p.now()
	req = req.Normalize()
	ev := metrics.GenerationEvent{
		RunID:   uuid.NewString(),
		Courses: len(req.Courses),
		Window:  req.Window.String(),
		Campus:  req.Campus.String(),
		Time:    start,
	}
	res, err := p.plan(ctx, req, meetings, &ev)
	ev.Duration = p.now().Sub(start)
	ev.Outcome = outcomeOf(err)
	ev.Results = len(res.Combinations)
	if rerr := p.sink.RecordGeneration(ev); rerr != nil {
		p.log.Warnf("record generation: %v", rerr)
	}
	fields := map[string]any{
		"run_id":       ev.RunID,
		"courses":      ev.Courses,
		"window":       ev.Window,
		"campus":       ev.Campus,
		"search_space": ev.SearchSpace,
		"candidates":   ev.Candidates,
		"results":      ev.Results,
		"outcome":      string(ev.Outcome),
		"duration_ms":  ev.Duration.Milliseconds(),
	}
	if err != nil {
		p.log.Debugw("generation rejected", fields)
		return Result{}, err
	}
	p.log.Infow("schedules generated", fields)
	res.RunID = ev.RunID
	return res, nil
}

func (p *Planner) plan(ctx context.Context, req model.Request, meetings []model.Meeting, ev *metrics.GenerationEvent) (Result, error) {
	if len(req.Courses) == 0 {
		return Result{}, ErrEmptyInput
	}
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	bounds, ok := p.opts.Windows[req.Window]
	if !ok {
		return Result{}, fmt.Errorf("unknown window %s", req.Window)
	}

	selected := SelectMeetings(meetings,
		NewCourseFilter(req.Courses),
		CapacityFilter{IncludeFull: p.opts.IncludeFull},
		CampusFilter{Campus: req.Campus, SouthPrefix: p.opts.SouthPrefix, LuqueMarker: p.opts.LuqueMarker},
	)
	sections := GroupSections(req.Courses, selected)
	for i, s := range sections {
		if len(s) == 0 {
			return Result{}, &NoCandidatesError{Course: req.Courses[i]}
		}
	}

	space := SearchSpace(sections)
	ev.SearchSpace = space
	if p.opts.MaxSearchSpace > 0 && space > p.opts.MaxSearchSpace {
		return Result{}, &SearchSpaceError{Size: space, Limit: p.opts.MaxSearchSpace}
	}

	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}
	combos, err := p.gen.Generate(ctx, sections)
	if err != nil {
		return Result{}, fmt.Errorf("generate: %w", err)
	}
	ev.Candidates = len(combos)

	valid := FilterWindow(combos, bounds)
	if len(valid) == 0 {
		return Result{}, ErrNoValidCombinations
	}
	return Result{
		Combinations: valid,
		Candidates:   len(combos),
		SearchSpace:  space,
		Sections:     sections,
	}, nil
}

func outcomeOf(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrEmptyInput):
		return metrics.OutcomeEmptyInput
	case errors.Is(err, ErrNoCandidates):
		return metrics.OutcomeNoCandidates
	case errors.Is(err, ErrNoValidCombinations):
		return metrics.OutcomeNoValid
	case errors.Is(err, ErrSearchSpaceTooLarge):
		return metrics.OutcomeSearchSpace
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeAborted
	default:
		return metrics.OutcomeInvalidRequest
	}
}
