package compile

import (
	"fmt"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// EncodeInit builds spec.md §4.C's closed-world encoding of the
// initial state: every listed fluent is asserted, every unlisted
// fluent is negated, and every predicate's extension is pinned down by
// an iff against the explicit disjunction of tuples spec.md §4.C
// writes as `R(π) ↔ ⋁ ⋀ (π[i] = a.terms[i])`. Ported from
// original_source/solver.cpp's `encode(domain const&, state const&)`.
//
// It returns a structural-mismatch error (never a panic) if a listed
// predicate atom's arity disagrees with its declaration — spec.md §3's
// invariant on state.predicates, surfaced the same way scope
// construction failures are (§7).
func EncodeInit(d domain.Domain, s domain.State) (logic.Formula, error) {
	listed := make(map[string]bool, len(s.Fluents))
	for _, f := range s.Fluents {
		listed[f.Name()] = true
	}

	var negatives []logic.Relation
	for _, f := range d.Fluents {
		if !listed[f.Name()] {
			negatives = append(negatives, f)
		}
	}

	props := logic.And(
		logic.BigAnd(d.Sigma, s.Fluents, func(r logic.Relation) logic.Formula { return logic.Proposition(r) }),
		logic.BigAnd(d.Sigma, negatives, func(r logic.Relation) logic.Formula { return logic.Not(logic.Proposition(r)) }),
	)

	preds := d.Sigma.Top()
	for _, pred := range d.Predicates {
		extension, err := encodePredicateExtension(d, pred, s)
		if err != nil {
			return nil, err
		}
		preds = logic.And(preds, extension)
	}

	return logic.And(props, preds), nil
}

func encodePredicateExtension(d domain.Domain, pred domain.Predicate, s domain.State) (logic.Formula, error) {
	var guards []logic.Formula
	for _, atom := range s.Predicates {
		rel, terms, ok := logic.AsAtom(atom)
		if !ok {
			return nil, fmt.Errorf("compile: initial state entry %v is not an atom", atom)
		}
		if rel.Name() != pred.Name.Name() {
			continue
		}
		if len(terms) != len(pred.Params) {
			return nil, fmt.Errorf(
				"compile: initial state atom %v has arity %d, predicate %q declares arity %d",
				atom, len(terms), pred.Name.Name(), len(pred.Params),
			)
		}

		var eqs []logic.Formula
		for i, param := range pred.Params {
			eqs = append(eqs, logic.Eq(param, terms[i]))
		}
		guards = append(guards, logic.And(eqs...))
	}

	disjunction := d.Sigma.Bottom()
	if len(guards) > 0 {
		disjunction = logic.Or(guards...)
	}

	return logic.Forall(pred.Params, logic.Iff(pred.CallParams(), disjunction)), nil
}
