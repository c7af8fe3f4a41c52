package plugins

import "github.com/kilianp07/schedgen/core/schedule"

func init() {
	RegisterGenerator("backtracking", func(string, map[string]any) (schedule.Generator, error) {
		return schedule.BacktrackingGenerator{}, nil
	})
	RegisterGenerator("product", func(string, map[string]any) (schedule.Generator, error) {
		return schedule.ProductGenerator{}, nil
	})
}
