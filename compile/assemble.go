package compile

import (
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// Compile builds spec.md §4.H's single LTLf-FO formula for a
// domain/problem pair:
//
//	init ∧ G(transition) ∧ trajectory ∧ F(goal ∧ wX(⊥))
//
// where transition is the conjunction of every precondition axiom,
// effect axiom, frame axiom and parallelism axiom (§4.D-G). wX(⊥)
// pins F's witness instant down to the last state of the trace — a
// satisfying model's final instant is exactly where the goal must
// hold, per spec.md's finite-trace semantics. Ported from
// original_source/solver.cpp's top-level `encode(domain, problem)`.
//
// BuildScope's structural errors surface here unchanged; the caller
// (planner.Solver.Bind) is the one that turns them into an Undefined
// verdict rather than a Go panic.
func Compile(d domain.Domain, p domain.Problem) (logic.Formula, *Scope, error) {
	scope, err := BuildScope(d, p)
	if err != nil {
		return nil, nil, err
	}

	init, err := EncodeInit(d, p.Init)
	if err != nil {
		return nil, nil, err
	}

	transition := logic.And(
		DomainAxioms(scope, d),
		DomainFrameAxioms(scope, d),
		DomainParallelismAxioms(scope, d),
	)

	goal := p.Goal
	if goal == nil {
		goal = d.Sigma.Top()
	}
	trajectory := p.Trajectory
	if trajectory == nil {
		trajectory = d.Sigma.Top()
	}

	endOfTrace := logic.WX(d.Sigma.Bottom())
	whole := logic.And(
		init,
		logic.G(transition),
		trajectory,
		logic.F(logic.And(goal, endOfTrace)),
	)

	return whole, scope, nil
}
