package compile

import (
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// PreconditionAxiom builds spec.md §4.E's precondition axiom for a:
// ∀params. apply(a) ⇒ a.precondition. Ported from
// original_source/solver.cpp's `encode(domain const&, problem const&)`
// precondition loop.
func PreconditionAxiom(scope *Scope, a domain.Action) logic.Formula {
	return logic.Forall(a.Params, logic.Implies(ApplyParams(scope, a), a.Precondition))
}

// EffectAxiom builds spec.md §4.E's effect axiom for a single effect e
// of action a: ∀params. (apply(a) ∧ e.precondition) ⇒ X(encode(e)).
// The strong next is deliberate: at the last instant of a finite trace
// X(...) is false, so under assemble.go's G(transition) the axiom
// holds there only if the action does not fire with the effect's
// precondition true — no effect can fire into a successor state that
// does not exist.
func EffectAxiom(scope *Scope, a domain.Action, e domain.Effect) logic.Formula {
	trigger := logic.And(ApplyParams(scope, a), e.Precondition)
	return logic.Forall(a.Params, logic.Implies(trigger, logic.X(EncodeEffect(e))))
}

// ActionAxioms collects a's precondition axiom together with one effect
// axiom per conditional effect, in declaration order.
func ActionAxioms(scope *Scope, a domain.Action) []logic.Formula {
	axioms := make([]logic.Formula, 0, 1+len(a.Effects))
	axioms = append(axioms, PreconditionAxiom(scope, a))
	for _, e := range a.Effects {
		axioms = append(axioms, EffectAxiom(scope, a, e))
	}
	return axioms
}

// DomainAxioms conjoins spec.md §4.E's precondition and effect axioms
// for every action in d, in declaration order. A domain with no
// actions trivially satisfies them, so this returns ⊤.
func DomainAxioms(scope *Scope, d domain.Domain) logic.Formula {
	var all []logic.Formula
	for _, a := range d.Actions {
		all = append(all, ActionAxioms(scope, a)...)
	}
	if f := logic.And(all...); f != nil {
		return f
	}
	return d.Sigma.Top()
}
