package metrics

import "time"

// Outcome classifies how a generation request ended.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeEmptyInput     Outcome = "empty_input"
	OutcomeNoCandidates   Outcome = "no_candidates"
	OutcomeNoValid        Outcome = "no_valid_combinations"
	OutcomeSearchSpace    Outcome = "search_space_too_large"
	OutcomeAborted        Outcome = "aborted"
	OutcomeInvalidRequest Outcome = "invalid_request"
)

// GenerationEvent describes one schedule generation request.
type GenerationEvent struct {
	RunID       string
	Courses     int
	Window      string
	Campus      string
	SearchSpace uint64 // size of the Cartesian product of candidate sections
	Candidates  int    // conflict-free combinations before the window filter
	Results     int    // combinations returned to the caller
	Duration    time.Duration
	Outcome     Outcome
	Time        time.Time
}

// MetricsSink records generation events for observability purposes.
type MetricsSink interface {
	RecordGeneration(ev GenerationEvent) error
}

// IngestEvent summarises one load of offering files.
type IngestEvent struct {
	Files    int
	Rows     int
	Meetings int
	Dropped  int
	Duration time.Duration
	Time     time.Time
}

// IngestRecorder is implemented by sinks able to record ingestion events.
type IngestRecorder interface {
	RecordIngest(ev IngestEvent) error
}

// Flusher is implemented by sinks that buffer data until the process is
// about to exit, such as the Prometheus textfile exporter.
type Flusher interface {
	Flush() error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordGeneration(GenerationEvent) error { return nil }
func (NopSink) RecordIngest(IngestEvent) error         { return nil }
func (NopSink) Flush() error                           { return nil }
