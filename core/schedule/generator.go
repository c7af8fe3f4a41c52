package schedule

import (
	"context"
	"math"

	"github.com/kilianp07/schedgen/core/model"
)

// Generator enumerates every conflict-free way of picking one section per
// course. Results follow Cartesian product order: the first course varies
// slowest, sections within a course keep their given order.
type Generator interface {
	Generate(ctx context.Context, sections [][]model.Section) ([]model.Combination, error)
}

// ctxCheckEvery bounds how many candidate sections are examined between two
// context checks.
const ctxCheckEvery = 1024

// SearchSpace returns the size of the Cartesian product of sections. It
// saturates at math.MaxUint64 and is 0 when any course has no section.
func SearchSpace(sections [][]model.Section) uint64 {
	if len(sections) == 0 {
		return 0
	}
	total := uint64(1)
	for _, s := range sections {
		n := uint64(len(s))
		if n == 0 {
			return 0
		}
		if total > math.MaxUint64/n {
			return math.MaxUint64
		}
		total *= n
	}
	return total
}

func hasEmpty(sections [][]model.Section) bool {
	if len(sections) == 0 {
		return true
	}
	for _, s := range sections {
		if len(s) == 0 {
			return true
		}
	}
	return false
}

// BacktrackingGenerator assigns courses one at a time and abandons a partial
// schedule as soon as the new section conflicts with one already chosen.
// It produces exactly the output of ProductGenerator.
type BacktrackingGenerator struct{}

func (BacktrackingGenerator) Generate(ctx context.Context, sections [][]model.Section) ([]model.Combination, error) {
	if hasEmpty(sections) {
		return nil, nil
	}
	var (
		res    []model.Combination
		chosen = make([]model.Section, 0, len(sections))
		steps  int
	)
	var walk func(depth int) error
	walk = func(depth int) error {
		if depth == len(sections) {
			picked := make([]model.Section, len(chosen))
			copy(picked, chosen)
			res = append(res, model.Combination{Sections: picked})
			return nil
		}
		for _, cand := range sections[depth] {
			steps++
			if steps%ctxCheckEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			if conflictsWithAny(cand, chosen) {
				continue
			}
			chosen = append(chosen, cand)
			if err := walk(depth + 1); err != nil {
				return err
			}
			chosen = chosen[:len(chosen)-1]
		}
		return nil
	}
	if err := walk(0); err != nil {
		return nil, err
	}
	return res, nil
}

func conflictsWithAny(s model.Section, chosen []model.Section) bool {
	for _, c := range chosen {
		if Conflicts(c, s) {
			return true
		}
	}
	return false
}

// ProductGenerator walks the full Cartesian product and rejects tuples with
// a conflicting pair, stopping the pair scan at the first conflict. It is
// kept as the reference the backtracking generator is checked against.
type ProductGenerator struct{}

func (ProductGenerator) Generate(ctx context.Context, sections [][]model.Section) ([]model.Combination, error) {
	if hasEmpty(sections) {
		return nil, nil
	}
	idx := make([]int, len(sections))
	tuple := make([]model.Section, len(sections))
	var res []model.Combination
	for steps := 1; ; steps++ {
		if steps%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for i, j := range idx {
			tuple[i] = sections[i][j]
		}
		if Valid(model.Combination{Sections: tuple}) {
			picked := make([]model.Section, len(tuple))
			copy(picked, tuple)
			res = append(res, model.Combination{Sections: picked})
		}
		// odometer: the last course advances fastest
		k := len(idx) - 1
		for k >= 0 {
			idx[k]++
			if idx[k] < len(sections[k]) {
				break
			}
			idx[k] = 0
			k--
		}
		if k < 0 {
			return res, nil
		}
	}
}
