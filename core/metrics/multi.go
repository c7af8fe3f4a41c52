package metrics

// MultiSink fans out events to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordGeneration forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordGeneration(ev GenerationEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordGeneration(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordIngest forwards ingestion events to sinks supporting them.
func (m *MultiSink) RecordIngest(ev IngestEvent) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(IngestRecorder); ok {
			if err := rec.RecordIngest(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes every sink that buffers data.
func (m *MultiSink) Flush() error {
	for _, s := range m.Sinks {
		if f, ok := s.(Flusher); ok {
			if err := f.Flush(); err != nil {
				return err
			}
		}
	}
	return nil
}
