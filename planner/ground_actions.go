package planner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/black-sat/purple/compile"
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
	"github.com/black-sat/purple/ltlf"
)

// groundAction is one fully-instantiated action instance: an action
// schema paired with one candidate argument tuple.
type groundAction struct {
	Action domain.Action
	Args   []logic.Constant
}

// enumerateArgTuples lists every argument tuple for params, in
// odometer order: the first parameter is the highest-order digit (it
// changes slowest), the last cycles fastest. Ground-plan extraction
// (extract.go) walks candidate tuples in this same order, mirroring
// original_source/solver.cpp's `increment()`.
func enumerateArgTuples(scope *compile.Scope, params []logic.VarDecl) ([][]logic.Constant, error) {
	if len(params) == 0 {
		return [][]logic.Constant{{}}, nil
	}

	domains := make([][]logic.Constant, len(params))
	for i, p := range params {
		d, ok := scope.SortDomain(p.Sort())
		if !ok {
			return nil, fmt.Errorf("planner: sort %q has no declared object universe", p.Sort().Name())
		}
		domains[i] = d
	}

	var tuples [][]logic.Constant
	var rec func(idx int, cur []logic.Constant)
	rec = func(idx int, cur []logic.Constant) {
		if idx == len(params) {
			tuples = append(tuples, append([]logic.Constant(nil), cur...))
			return
		}
		for _, c := range domains[idx] {
			rec(idx+1, append(cur, c))
		}
	}
	rec(0, nil)
	return tuples, nil
}

// computeGroundActions lists every ground instance of every action
// declared in d.
func computeGroundActions(scope *compile.Scope, d domain.Domain) ([]groundAction, error) {
	var all []groundAction
	for _, a := range d.Actions {
		tuples, err := enumerateArgTuples(scope, a.Params)
		if err != nil {
			return nil, err
		}
		for _, args := range tuples {
			all = append(all, groundAction{Action: a, Args: args})
		}
	}
	return all, nil
}

func bindArgs(ga groundAction) map[string]logic.Term {
	subst := make(map[string]logic.Term, len(ga.Args))
	for i, p := range ga.Action.Params {
		subst[p.Name()] = ga.Args[i]
	}
	return subst
}

func argsAsTerms(args []logic.Constant) []logic.Term {
	terms := make([]logic.Term, len(args))
	for i, c := range args {
		terms[i] = c
	}
	return terms
}

// cloneValuation returns an independent copy of v, since forward
// search branches the same state down multiple action-successor paths.
func cloneValuation(v ltlf.Valuation) ltlf.Valuation {
	cp := make(ltlf.Valuation, len(v))
	for k, b := range v {
		cp[k] = b
	}
	return cp
}

// signature returns a deterministic, order-independent identity for a
// public state, used for forward search's visited-state dedup.
func signature(v ltlf.Valuation) string {
	keys := make([]string, 0, len(v))
	for k, b := range v {
		if b {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}
