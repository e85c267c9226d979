package compile

import (
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// Frame axioms are spec.md §4.F's solution to the frame problem:
// explanatory axioms (Reiter's formulation, as original_source/solver.cpp
// ports it) stating that a fluent or predicate atom can only change
// truth value between consecutive instants if some action fired whose
// effect list explains the change. Two axioms per relation, one for
// each direction of change (↑ false→true, ↓ true→false); each is a
// disjunction over every (action, effect) pair whose effect list can
// cause that direction.

// fluentCause pairs an action with the effect of its that mentions a
// given fluent in the wanted polarity.
type fluentCause struct {
	action domain.Action
	effect domain.Effect
}

func fluentCauses(d domain.Domain, f logic.Relation, positive bool) []fluentCause {
	var causes []fluentCause
	for _, a := range d.Actions {
		for _, e := range a.Effects {
			if e.Positive != positive {
				continue
			}
			for _, ef := range e.Fluents {
				if ef.Equal(f) {
					causes = append(causes, fluentCause{action: a, effect: e})
					break
				}
			}
		}
	}
	return causes
}

// FluentFrameAxiom builds both directions of spec.md §4.F's frame
// axiom for propositional fluent f: G(f ∧ X¬f ⇒ ⋁ causes-of-↓) and
// G(¬f ∧ Xf ⇒ ⋁ causes-of-↑).
func FluentFrameAxiom(scope *Scope, d domain.Domain, f logic.Relation) logic.Formula {
	up := fluentDirectionAxiom(scope, f, fluentCauses(d, f, true), true)
	down := fluentDirectionAxiom(scope, f, fluentCauses(d, f, false), false)
	return logic.G(logic.And(up, down))
}

func fluentDirectionAxiom(scope *Scope, f logic.Relation, causes []fluentCause, becomesTrue bool) logic.Formula {
	prop := logic.Proposition(f)
	before, after := prop, logic.Not(prop)
	if becomesTrue {
		before, after = logic.Not(prop), prop
	}
	changed := logic.And(before, logic.X(after))

	explanation := logic.BigOr(scope.Sigma, causes, func(c fluentCause) logic.Formula {
		return logic.Exists(c.action.Params, logic.And(ApplyParams(scope, c.action), c.effect.Precondition))
	})

	return logic.Implies(changed, explanation)
}

// predicateCause pairs an action and effect with the specific ground
// (in terms of the action's own parameters) atom inside that effect
// which mentions the predicate under scrutiny.
type predicateCause struct {
	action domain.Action
	effect domain.Effect
	terms  []logic.Term
}

func predicateCauses(d domain.Domain, pred domain.Predicate, positive bool) []predicateCause {
	var causes []predicateCause
	for _, a := range d.Actions {
		for _, e := range a.Effects {
			if e.Positive != positive {
				continue
			}
			for _, atom := range e.Predicates {
				rel, terms, ok := logic.AsAtom(atom)
				if ok && rel.Equal(pred.Name) {
					causes = append(causes, predicateCause{action: a, effect: e, terms: terms})
				}
			}
		}
	}
	return causes
}

// PredicateFrameAxiom builds both directions of spec.md §4.F's frame
// axiom for predicate pred(x): the outer variables x are universally
// quantified, and each cause existentially quantifies its own action's
// parameters, tying them back to x via equalities on the effect atom's
// actual terms — the general explanatory-frame construction, needed
// because an effect's atom need not repeat the predicate's parameters
// in the same order, or at all.
func PredicateFrameAxiom(scope *Scope, d domain.Domain, pred domain.Predicate) logic.Formula {
	up := predicateDirectionAxiom(scope, pred, predicateCauses(d, pred, true), true)
	down := predicateDirectionAxiom(scope, pred, predicateCauses(d, pred, false), false)
	return logic.G(logic.Forall(pred.Params, logic.And(up, down)))
}

func predicateDirectionAxiom(scope *Scope, pred domain.Predicate, causes []predicateCause, becomesTrue bool) logic.Formula {
	atom := pred.CallParams()
	before, after := atom, logic.Not(atom)
	if becomesTrue {
		before, after = logic.Not(atom), atom
	}
	changed := logic.And(before, logic.X(after))

	explanation := logic.BigOr(scope.Sigma, causes, func(c predicateCause) logic.Formula {
		eqs := make([]logic.Formula, len(pred.Params))
		for i, param := range pred.Params {
			eqs[i] = logic.Eq(param, c.terms[i])
		}
		guard := logic.And(append(eqs, ApplyParams(scope, c.action), c.effect.Precondition)...)
		return logic.Exists(c.action.Params, guard)
	})

	return logic.Implies(changed, explanation)
}

// DomainFrameAxioms conjoins spec.md §4.F's frame axiom for every
// fluent and predicate declared in d.
func DomainFrameAxioms(scope *Scope, d domain.Domain) logic.Formula {
	var all []logic.Formula
	for _, f := range d.Fluents {
		all = append(all, FluentFrameAxiom(scope, d, f))
	}
	for _, pred := range d.Predicates {
		all = append(all, PredicateFrameAxiom(scope, d, pred))
	}
	if f := logic.And(all...); f != nil {
		return f
	}
	return d.Sigma.Top()
}
