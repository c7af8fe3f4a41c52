package plugins

import (
	"fmt"
	"sort"

	"github.com/kilianp07/schedgen/core/schedule"
)

// GeneratorFactory builds a combination generator from a raw configuration map.
type GeneratorFactory func(name string, conf map[string]any) (schedule.Generator, error)

var Generators = map[string]GeneratorFactory{}

func RegisterGenerator(name string, f GeneratorFactory) { Generators[name] = f }

// NewGenerator builds the generator registered under name.
func NewGenerator(name string, conf map[string]any) (schedule.Generator, error) {
	f, ok := Generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %s (available: %v)", name, GeneratorNames())
	}
	return f(name, conf)
}

// GeneratorNames lists the registered generators in sorted order.
func GeneratorNames() []string {
	names := make([]string, 0, len(Generators))
	for n := range Generators {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
