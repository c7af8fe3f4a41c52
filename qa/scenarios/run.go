package scenarios

import (
	"context"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/kilianp07/schedgen/core/metrics"
	"github.com/kilianp07/schedgen/core/model"
	"github.com/kilianp07/schedgen/core/schedule"
	"github.com/kilianp07/schedgen/infra/logger"
	"github.com/kilianp07/schedgen/infra/metrics"
)

type outcomeRecorder struct {
	outcomes []coremetrics.Outcome
}

func (r *outcomeRecorder) RecordGeneration(ev coremetrics.GenerationEvent) error {
	r.outcomes = append(r.outcomes, ev.Outcome)
	return nil
}

// RunScenario replays sc through a planner for every generator and checks
// the outcome and the combination keys.
func RunScenario(t *testing.T, sc *Scenario) {
	meetings := make([]model.Meeting, len(sc.Meetings))
	for i, m := range sc.Meetings {
		mt, err := m.ToModel()
		if err != nil {
			t.Fatalf("meeting %d: %v", i, err)
		}
		meetings[i] = mt
	}
	req, err := sc.Request.ToModel()
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	want := coremetrics.Outcome(sc.Expected.Outcome)
	if want == "" {
		want = coremetrics.OutcomeOK
	}

	gens := map[string]schedule.Generator{
		"backtracking": schedule.BacktrackingGenerator{},
		"product":      schedule.ProductGenerator{},
	}
	for name, gen := range gens {
		reg := prometheus.NewRegistry()
		prom, err := metrics.NewPromSinkWithRegistry("", reg, reg)
		if err != nil {
			t.Fatalf("prom sink: %v", err)
		}
		rec := &outcomeRecorder{}
		opts := schedule.Options{IncludeFull: sc.IncludeFull, MaxSearchSpace: sc.MaxSearchSpace, SouthPrefix: "SUR", LuqueMarker: "SLUQ"}
		planner, err := schedule.NewPlanner(opts, gen, logger.NopLogger{}, coremetrics.NewMultiSink(prom, rec))
		if err != nil {
			t.Fatalf("planner: %v", err)
		}

		res, err := planner.Plan(context.Background(), req, meetings)
		if len(rec.outcomes) != 1 || rec.outcomes[0] != want {
			t.Errorf("%s/%s: expected outcome %s, got %v (err %v)", sc.Name, name, want, rec.outcomes, err)
		}
		if n, gerr := testutil.GatherAndCount(reg, "schedule_generations_total"); gerr != nil || n != 1 {
			t.Errorf("%s/%s: expected one generation series, got %d (%v)", sc.Name, name, n, gerr)
		}
		if err != nil {
			continue
		}
		got := make([]string, len(res.Combinations))
		for i, c := range res.Combinations {
			got[i] = c.Key()
		}
		if !slices.Equal(got, sc.Expected.Combinations) {
			t.Errorf("%s/%s: expected %v, got %v", sc.Name, name, sc.Expected.Combinations, got)
		}
	}
}
