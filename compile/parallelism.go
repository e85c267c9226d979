package compile

import (
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// Parallelism axioms are spec.md §4.G's serial-plan constraint: at
// every instant, at most one ground action instance may fire. Ported
// from original_source/solver.cpp's pairwise mutex loop plus its
// per-action "own arguments are unique" axiom, both generalized here
// to cover schematic actions of any arity.

// NoConcurrentActions builds G(⋀ for every unordered pair of distinct
// actions a, b: ¬(∃a.Params. apply(a)) ∨ ¬(∃b.Params. apply(b))) — no
// two different actions may both have a firing grounding at the same
// instant.
func NoConcurrentActions(scope *Scope, d domain.Domain) logic.Formula {
	var pairs []logic.Formula
	for i := 0; i < len(d.Actions); i++ {
		for j := i + 1; j < len(d.Actions); j++ {
			a, b := d.Actions[i], d.Actions[j]
			fires := func(act domain.Action) logic.Formula {
				return logic.Exists(act.Params, ApplyParams(scope, act))
			}
			pairs = append(pairs, logic.Not(logic.And(fires(a), fires(b))))
		}
	}
	if f := logic.And(pairs...); f != nil {
		return logic.G(f)
	}
	return logic.G(d.Sigma.Top())
}

// UniqueArguments builds spec.md §4.G's per-action uniqueness axiom:
// ∀x, x'. (apply(a, x) ∧ apply(a, x')) ⇒ x = x', using a primed copy
// x' of a's own parameters (logic.FreshVariable) so the two
// quantifiers range independently. Ground actions (no parameters) have
// nothing to make unique and are skipped.
func UniqueArguments(scope *Scope, a domain.Action) logic.Formula {
	if len(a.Params) == 0 {
		return scope.Sigma.Top()
	}

	primed := make([]logic.VarDecl, len(a.Params))
	primedArgs := make([]logic.Term, len(a.Params))
	for i, p := range a.Params {
		v := scope.Sigma.FreshVariable(p.Name(), p.Sort())
		primed[i] = v
		primedArgs[i] = v
	}

	original := ApplyParams(scope, a)
	withPrimed := Apply(scope, a, primedArgs)

	var eqs []logic.Formula
	for i, p := range a.Params {
		eqs = append(eqs, logic.Eq(p, primedArgs[i]))
	}

	axiom := logic.Implies(logic.And(original, withPrimed), logic.And(eqs...))
	return logic.G(logic.Forall(a.Params, logic.Forall(primed, axiom)))
}

// DomainParallelismAxioms conjoins spec.md §4.G's no-concurrent-actions
// axiom with every action's uniqueness axiom.
func DomainParallelismAxioms(scope *Scope, d domain.Domain) logic.Formula {
	all := []logic.Formula{NoConcurrentActions(scope, d)}
	for _, a := range d.Actions {
		all = append(all, UniqueArguments(scope, a))
	}
	if f := logic.And(all...); f != nil {
		return f
	}
	return d.Sigma.Top()
}
