// Package ltlf evaluates a compiled LTLf-FO formula against a concrete
// finite trace of ground valuations. It is the semantics the default
// forward-search planner.SatEngine drives candidate traces against,
// and it is built directly against logic.Formula's sum type the same
// way logic.Mentions walks it — no grounding machinery is borrowed
// from compile or simulate, since each of the three is meant to be an
// independently-written opinion about what a formula means.
package ltlf

import (
	"fmt"

	"github.com/black-sat/purple/logic"
)

// Scope supplies the finite object universe a quantifier ranges over.
// compile.Scope satisfies it structurally.
type Scope interface {
	SortDomain(sort logic.Sort) ([]logic.Constant, bool)
}

// Valuation is the set of ground atom/proposition keys (logic.Key)
// that are true at one instant.
type Valuation map[string]bool

// Trace is a finite sequence of valuations, instant 0 first.
type Trace []Valuation

// Satisfies reports whether f holds at instant t of trace, under
// scope's object universes. t must be within [0, len(trace)); callers
// evaluating a whole formula against a candidate plan's trace always
// start at t=0.
func Satisfies(scope Scope, f logic.Formula, trace Trace, t int) (bool, error) {
	if t < 0 || t >= len(trace) {
		return false, fmt.Errorf("ltlf: instant %d out of range for a %d-instant trace", t, len(trace))
	}
	return satisfiesAt(scope, f, trace, t, map[string]logic.Term{})
}

func satisfiesAt(scope Scope, f logic.Formula, trace Trace, t int, subst map[string]logic.Term) (bool, error) {
	if logic.IsTop(f) {
		return true, nil
	}
	if logic.IsBottom(f) {
		return false, nil
	}
	if _, _, ok := logic.AsAtom(f); ok {
		ground, err := groundAtom(f, subst)
		if err != nil {
			return false, err
		}
		return trace[t][logic.Key(ground)], nil
	}
	if arg, ok := logic.AsNot(f); ok {
		v, err := satisfiesAt(scope, arg, trace, t, subst)
		return !v, err
	}
	if args, ok := logic.AsAnd(f); ok {
		for _, a := range args {
			v, err := satisfiesAt(scope, a, trace, t, subst)
			if err != nil || !v {
				return false, err
			}
		}
		return true, nil
	}
	if args, ok := logic.AsOr(f); ok {
		for _, a := range args {
			v, err := satisfiesAt(scope, a, trace, t, subst)
			if err != nil || v {
				return v, err
			}
		}
		return false, nil
	}
	if left, right, ok := logic.AsImplies(f); ok {
		l, err := satisfiesAt(scope, left, trace, t, subst)
		if err != nil {
			return false, err
		}
		if !l {
			return true, nil
		}
		return satisfiesAt(scope, right, trace, t, subst)
	}
	if left, right, ok := logic.AsIff(f); ok {
		l, err := satisfiesAt(scope, left, trace, t, subst)
		if err != nil {
			return false, err
		}
		r, err := satisfiesAt(scope, right, trace, t, subst)
		if err != nil {
			return false, err
		}
		return l == r, nil
	}
	if universal, vars, matrix, ok := logic.AsQuantifier(f); ok {
		return satisfiesQuantifier(scope, universal, vars, matrix, trace, t, subst)
	}
	if left, right, equal, ok := logic.AsEq(f); ok {
		lt, err := substituteTerm(left, subst)
		if err != nil {
			return false, err
		}
		rt, err := substituteTerm(right, subst)
		if err != nil {
			return false, err
		}
		same := lt.String() == rt.String()
		return same == equal, nil
	}
	if arg, weak, ok := logic.AsNext(f); ok {
		if t+1 >= len(trace) {
			return weak, nil
		}
		return satisfiesAt(scope, arg, trace, t+1, subst)
	}
	if arg, ok := logic.AsGlobally(f); ok {
		for i := t; i < len(trace); i++ {
			v, err := satisfiesAt(scope, arg, trace, i, subst)
			if err != nil || !v {
				return false, err
			}
		}
		return true, nil
	}
	if arg, ok := logic.AsFinally(f); ok {
		for i := t; i < len(trace); i++ {
			v, err := satisfiesAt(scope, arg, trace, i, subst)
			if err != nil || v {
				return v, err
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("ltlf: unrecognized formula %v", f)
}

func satisfiesQuantifier(scope Scope, universal bool, vars []logic.VarDecl, matrix logic.Formula, trace Trace, t int, subst map[string]logic.Term) (bool, error) {
	if len(vars) == 0 {
		return satisfiesAt(scope, matrix, trace, t, subst)
	}
	head, rest := vars[0], vars[1:]
	domain, ok := scope.SortDomain(head.Sort())
	if !ok {
		return false, fmt.Errorf("ltlf: sort %q has no declared object universe", head.Sort().Name())
	}
	for _, c := range domain {
		extended := copySubst(subst)
		extended[head.Name()] = c
		v, err := satisfiesQuantifier(scope, universal, rest, matrix, trace, t, extended)
		if err != nil {
			return false, err
		}
		if universal && !v {
			return false, nil
		}
		if !universal && v {
			return true, nil
		}
	}
	return universal, nil
}

func copySubst(subst map[string]logic.Term) map[string]logic.Term {
	cp := make(map[string]logic.Term, len(subst))
	for k, v := range subst {
		cp[k] = v
	}
	return cp
}

func substituteTerm(t logic.Term, subst map[string]logic.Term) (logic.Term, error) {
	if !t.IsVar() {
		return t, nil
	}
	named, ok := t.(interface{ Name() string })
	if !ok {
		return nil, fmt.Errorf("ltlf: variable term %v has no name", t)
	}
	bound, ok := subst[named.Name()]
	if !ok {
		return nil, fmt.Errorf("ltlf: unbound variable %q", named.Name())
	}
	return bound, nil
}

func groundAtom(atom logic.Formula, subst map[string]logic.Term) (logic.Formula, error) {
	rel, terms, ok := logic.AsAtom(atom)
	if !ok {
		return nil, fmt.Errorf("ltlf: %v is not an atom", atom)
	}
	ground := make([]logic.Term, len(terms))
	for i, term := range terms {
		gt, err := substituteTerm(term, subst)
		if err != nil {
			return nil, err
		}
		ground[i] = gt
	}
	return logic.Atom(rel, ground...), nil
}
