package compile

import (
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// Apply builds spec.md §4.D's applicability literal: "action a fires
// with these arguments now". If a is ground, args is ignored and the
// literal is a itself a 0-ary proposition named after a; otherwise it
// is scope's firing relation for a applied to the given term list (a
// mix of variables, during axiom construction, or constants, when the
// plan extractor queries a model). Ported from
// original_source/solver.cpp's `apply(action, decls)`.
func Apply(scope *Scope, a domain.Action, args []logic.Term) logic.Formula {
	rel, ok := scope.ActionRelation(a.Name)
	if !ok {
		// Defensive: BuildScope always registers every action's
		// relation, so reaching this means a Scope from a different
		// domain was passed in — a contract violation (spec.md §4.A).
		panic("compile: Apply: action " + a.Name + " was not registered in this scope")
	}
	if a.IsGround() {
		return logic.Proposition(rel)
	}
	return logic.Atom(rel, args...)
}

// ApplyParams is the convenience form apply(a) from spec.md §4.D: the
// firing literal over a's own declared parameters.
func ApplyParams(scope *Scope, a domain.Action) logic.Formula {
	args := make([]logic.Term, len(a.Params))
	for i, p := range a.Params {
		args[i] = p
	}
	return Apply(scope, a, args)
}
