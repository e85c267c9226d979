// Package compile implements spec.md §4: the compiler that reduces a
// domain/problem pair to a single first-order LTLf formula, ported
// component-by-component from original_source/src/lib/src/solver.cpp.
package compile

import (
	"fmt"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// Scope is the typed context the rest of compile builds formulas
// against: which sorts have which finite object universe, and which
// relation backs which action's firing literal. It is
// original_source/solver.cpp's `scope()` made into a first-class,
// inspectable value rather than an opaque handle, since the planner
// package needs it again later to ground quantifiers and to enumerate
// plan-extraction argument tuples (§4.I).
type Scope struct {
	Sigma *logic.Alphabet

	sortDomains map[string][]logic.Constant
	actionRel   map[string]logic.Relation
}

// SortDomain returns the finite object universe declared for s, and
// whether s was declared at all.
func (s *Scope) SortDomain(sort logic.Sort) ([]logic.Constant, bool) {
	d, ok := s.sortDomains[sort.Name()]
	return d, ok
}

// ActionRelation returns the firing relation registered for a ground
// or schematic action named name.
func (s *Scope) ActionRelation(name string) (logic.Relation, bool) {
	r, ok := s.actionRel[name]
	return r, ok
}

// BuildScope registers every sort declaration from p.Types and, for
// every action, a fresh relation named identically to the action with
// its parameter sorts — spec.md §4.A. The predicates of d.Predicates
// are not stored in the Scope; their names and parameter sorts are
// only checked here.
//
// It fails when an action name repeats another action's or collides
// with a predicate's (which would silently merge two distinct
// concepts), or when an action or predicate parameter has a sort other
// than the built-in object sort with no object universe in p.Types.
// Per spec.md §7, this is a structural mismatch that the
// caller (planner.Solver.Bind) turns into an Undefined verdict rather
// than a panic — scope construction failure is documented as an
// ordinary runtime outcome (see DESIGN.md's Open Question decision).
func BuildScope(d domain.Domain, p domain.Problem) (*Scope, error) {
	scope := &Scope{
		Sigma:       d.Sigma,
		sortDomains: make(map[string][]logic.Constant, len(p.Types)),
		actionRel:   make(map[string]logic.Relation, len(d.Actions)),
	}

	for _, decl := range p.Types {
		scope.sortDomains[decl.Sort.Name()] = decl.Domain
	}

	declared := make(map[string]bool, len(d.Predicates)+len(d.Actions))
	for _, pred := range d.Predicates {
		declared[pred.Name.Name()] = true
	}

	seenAction := make(map[string]bool, len(d.Actions))
	for _, a := range d.Actions {
		if seenAction[a.Name] {
			return nil, fmt.Errorf("compile: duplicate action name %q", a.Name)
		}
		seenAction[a.Name] = true

		if declared[a.Name] {
			return nil, fmt.Errorf("compile: action %q collides with a predicate of the same name", a.Name)
		}

		sorts := make([]logic.Sort, len(a.Params))
		for i, param := range a.Params {
			sort := param.Sort()
			if _, ok := scope.sortDomains[sort.Name()]; !ok && sort.Name() != d.Sigma.ObjectSort().Name() {
				return nil, fmt.Errorf("compile: action %q parameter %q has undeclared sort %q", a.Name, param.Name(), sort.Name())
			}
			sorts[i] = sort
		}

		scope.actionRel[a.Name] = d.Sigma.Relation(a.Name, sorts...)
		declared[a.Name] = true
	}

	for _, pred := range d.Predicates {
		for _, param := range pred.Params {
			sort := param.Sort()
			if _, ok := scope.sortDomains[sort.Name()]; !ok && sort.Name() != d.Sigma.ObjectSort().Name() {
				return nil, fmt.Errorf("compile: predicate %q parameter %q has undeclared sort %q", pred.Name.Name(), param.Name(), sort.Name())
			}
		}
	}

	return scope, nil
}
