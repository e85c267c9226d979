package planner

import (
	"fmt"

	"github.com/black-sat/purple/compile"
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
	"github.com/black-sat/purple/ltlf"
)

// ExtractPlan reconstructs the ground action sequence spec.md §4.I
// describes from a satisfying trace: for every instant except the
// last, exactly one action's firing literal is true (the parallelism
// axioms, §4.G, guarantee this), found by odometer-ordered enumeration
// of its candidate argument tuples. Ported from
// original_source/solver.cpp's `increment()`/`get_step()`.
func ExtractPlan(scope *compile.Scope, d domain.Domain, trace ltlf.Trace) (domain.Plan, error) {
	if len(trace) == 0 {
		return domain.Plan{}, nil
	}

	steps := make([]domain.Step, 0, len(trace)-1)
	for t := 0; t <= len(trace)-2; t++ {
		step, err := findFiringAction(scope, d, trace[t])
		if err != nil {
			return domain.Plan{}, fmt.Errorf("planner: extracting step %d: %w", t, err)
		}
		steps = append(steps, step)
	}
	return domain.Plan{Steps: steps}, nil
}

func findFiringAction(scope *compile.Scope, d domain.Domain, valuation ltlf.Valuation) (domain.Step, error) {
	for _, a := range d.Actions {
		tuples, err := enumerateArgTuples(scope, a.Params)
		if err != nil {
			return domain.Step{}, err
		}
		for _, args := range tuples {
			key := logic.Key(compile.Apply(scope, a, argsAsTerms(args)))
			if valuation[key] {
				return domain.Step{Action: a, Args: args}, nil
			}
		}
	}
	return domain.Step{}, fmt.Errorf("planner: no action's firing literal holds at this instant")
}
