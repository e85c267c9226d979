// Package domain holds the planning data model spec.md §3 describes:
// effects, states, actions, predicates, domains, problems and plans.
// Every record here is an immutable value built from a single
// logic.Alphabet — ported from original_source/problem.hpp's
// effect/state/action/predicate/domain/problem/plan structs.
package domain

import "github.com/black-sat/purple/logic"

// Predicate is a schematic (k-ary) fluent: a named relation plus its
// ordered parameter declarations. Calling it with a term list yields
// the applied atom (spec.md §6's "call operator accepting either bare
// variables or variable declarations").
type Predicate struct {
	Name   logic.Relation
	Params []logic.VarDecl
}

// NewPredicate declares a predicate named name with the given
// parameter declarations, whose sorts are also used to register the
// underlying relation.
func NewPredicate(sigma *logic.Alphabet, name string, params []logic.VarDecl) Predicate {
	sorts := make([]logic.Sort, len(params))
	for i, p := range params {
		sorts[i] = p.Sort()
	}
	return Predicate{Name: sigma.Relation(name, sorts...), Params: params}
}

// Call applies the predicate to an explicit term list.
func (p Predicate) Call(terms ...logic.Term) logic.Formula {
	return logic.Atom(p.Name, terms...)
}

// CallParams applies the predicate to its own declared parameters —
// the `R(π)` shorthand the frame-axiom generator (§4.F) uses
// constantly.
func (p Predicate) CallParams() logic.Formula {
	terms := make([]logic.Term, len(p.Params))
	for i, d := range p.Params {
		terms[i] = d
	}
	return logic.Atom(p.Name, terms...)
}

// Effect is spec.md §3's conditional-effect record: if Precondition
// holds in the pre-state and the owning action fires, every listed
// fluent and predicate atom takes truth value Positive in the next
// state.
type Effect struct {
	Sigma        *logic.Alphabet
	Precondition logic.Formula
	Fluents      []logic.Relation
	Predicates   []logic.Formula // each must be an atom (logic.AsAtom(x) succeeds)
	Positive     bool
}

// NewEffect builds the general form: an explicit precondition, fluent
// list and predicate-atom list.
func NewEffect(pre logic.Formula, fluents []logic.Relation, predicates []logic.Formula, positive bool) Effect {
	return Effect{Sigma: pre.Sigma(), Precondition: pre, Fluents: fluents, Predicates: predicates, Positive: positive}
}

// EffectAll builds an unconditional effect (precondition ⊤) over a
// fluent list and predicate-atom list — problem.hpp's
// `effect(sigma, fluents, predicates, pos)` overload.
func EffectAll(sigma *logic.Alphabet, fluents []logic.Relation, predicates []logic.Formula, positive bool) Effect {
	return Effect{Sigma: sigma, Precondition: sigma.Top(), Fluents: fluents, Predicates: predicates, Positive: positive}
}

// FluentEffect builds a conditional effect over a single fluent.
func FluentEffect(pre logic.Formula, fluent logic.Relation, positive bool) Effect {
	return Effect{Sigma: pre.Sigma(), Precondition: pre, Fluents: []logic.Relation{fluent}, Positive: positive}
}

// AtomEffect builds a conditional effect over a single predicate atom.
func AtomEffect(pre logic.Formula, atom logic.Formula, positive bool) Effect {
	return Effect{Sigma: pre.Sigma(), Precondition: pre, Predicates: []logic.Formula{atom}, Positive: positive}
}

// BareFluentEffect builds an unconditional (precondition ⊤) effect
// over a single fluent.
func BareFluentEffect(fluent logic.Relation, positive bool) Effect {
	sigma := fluent.Sigma()
	return Effect{Sigma: sigma, Precondition: sigma.Top(), Fluents: []logic.Relation{fluent}, Positive: positive}
}

// BareAtomEffect builds an unconditional effect over a single
// predicate atom.
func BareAtomEffect(atom logic.Formula, positive bool) Effect {
	sigma := atom.Sigma()
	return Effect{Sigma: sigma, Precondition: sigma.Top(), Predicates: []logic.Formula{atom}, Positive: positive}
}

// State is the initial-state record: everything listed is positively
// asserted; everything else is negative under the closed-world
// assumption the initial-state encoder (§4.C) implements.
type State struct {
	Fluents    []logic.Relation
	Predicates []logic.Formula // ground atoms
}

// Action is a schematic or ground instantaneous action: spec.md §3's
// action record. Ground iff Params is empty.
type Action struct {
	Name         string
	Params       []logic.VarDecl
	Precondition logic.Formula
	Effects      []Effect
}

// NewAction builds an action. It does not itself register the
// action's firing relation with any alphabet — that is the scope
// builder's job (compile.BuildScope, §4.A), since the same Action
// value can be compiled against more than one scope in principle.
func NewAction(name string, params []logic.VarDecl, precondition logic.Formula, effects []Effect) Action {
	return Action{Name: name, Params: params, Precondition: precondition, Effects: effects}
}

// IsGround reports whether the action takes no parameters.
func (a Action) IsGround() bool { return len(a.Params) == 0 }

// Domain is spec.md §3's planning domain: a typed universe of sorts,
// fluents and predicates, plus the actions that can change them.
type Domain struct {
	Sigma      *logic.Alphabet
	Types      []logic.Sort
	Fluents    []logic.Relation
	Predicates []Predicate
	Actions    []Action
}

// Problem is spec.md §3's planning problem: the object universe for
// each declared sort, the initial state, and the LTLf-FO goal and
// trajectory formulas.
type Problem struct {
	Sigma      *logic.Alphabet
	Types      []logic.SortDecl
	Init       State
	Goal       logic.Formula
	Trajectory logic.Formula
}

// DomainOf looks up the finite object universe declared for sort s in
// the problem, mirroring original_source/solver.cpp's
// `domain_of_type`.
func (p Problem) DomainOf(s logic.Sort) ([]logic.Constant, bool) {
	for _, decl := range p.Types {
		if decl.Sort.Equal(s) {
			return decl.Domain, true
		}
	}
	return nil, false
}

// Step is one entry of an extracted plan: a (possibly ground) action
// together with the concrete arguments it fired with.
type Step struct {
	Action Action
	Args   []logic.Constant
}

// Plan is the ordered sequence of plan steps a successful Solve
// produces.
type Plan struct {
	Steps []Step
}
