package planner

import (
	"fmt"

	"github.com/black-sat/purple/compile"
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
	"github.com/black-sat/purple/ltlf"
)

// SatEngine searches for a satisfying trace of a domain/problem pair,
// bounded by a horizon on plan length. It is purple's default
// "black-box" solving strategy: rather than grounding the compiled
// LTLf-FO formula into a generic SAT instance, it drives a bounded
// forward search directly off the domain's action semantics (the
// precondition/effect/frame/parallelism structure compile/ encodes is
// enforced here by construction — a successor state is only ever
// reached by firing one applicable ground action and applying exactly
// its effects) and defers only the two things that aren't naturally
// structural — the goal and the trajectory constraint — to
// ltlf.Satisfies.
type SatEngine struct{}

type frontierNode struct {
	state ltlf.Valuation
	trace ltlf.Trace
}

// Search explores ground states reachable from p's initial state, up
// to horizon actions deep, looking for one where p.Goal holds and the
// full candidate trace satisfies p.Trajectory.
func (SatEngine) Search(scope *compile.Scope, d domain.Domain, p domain.Problem, horizon int) (logic.Verdict, ltlf.Trace, error) {
	groundActions, err := computeGroundActions(scope, d)
	if err != nil {
		return logic.Undefined, nil, err
	}

	goal := p.Goal
	if goal == nil {
		goal = d.Sigma.Top()
	}
	trajectory := p.Trajectory
	if trajectory == nil {
		trajectory = d.Sigma.Top()
	}

	init := initialValuation(p.Init)
	queue := []frontierNode{{state: init, trace: ltlf.Trace{cloneValuation(init)}}}
	visited := map[string]bool{signature(init): true}
	hitHorizon := false

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		goalHolds, err := ltlf.Satisfies(scope, goal, ltlf.Trace{node.state}, 0)
		if err != nil {
			return logic.Undefined, nil, fmt.Errorf("planner: evaluating goal: %w", err)
		}
		if goalHolds {
			trajHolds, err := ltlf.Satisfies(scope, trajectory, node.trace, 0)
			if err != nil {
				return logic.Undefined, nil, fmt.Errorf("planner: evaluating trajectory: %w", err)
			}
			if trajHolds {
				return logic.True, node.trace, nil
			}
		}

		depth := len(node.trace) - 1
		if depth >= horizon {
			hitHorizon = true
			continue
		}

		for _, ga := range groundActions {
			subst := bindArgs(ga)
			pre := logic.Substitute(ga.Action.Precondition, subst)
			applicable, err := ltlf.Satisfies(scope, pre, ltlf.Trace{node.state}, 0)
			if err != nil {
				return logic.Undefined, nil, fmt.Errorf("planner: evaluating precondition of %q: %w", ga.Action.Name, err)
			}
			if !applicable {
				continue
			}

			childState, err := applyGroundEffects(scope, node.state, ga, subst)
			if err != nil {
				return logic.Undefined, nil, err
			}

			// Dedup is keyed on the reached fluent/predicate state only,
			// not on path history. That gives a decidable, complete
			// search for a trajectory-free problem (p.Trajectory ⊤): the
			// reachable-state frontier is finite and eventually exhausts.
			// A history-sensitive trajectory constraint can in principle
			// need revisiting an already-seen state via a different path;
			// this engine accepts that narrower guarantee as the
			// pragmatic default.
			sig := signature(childState)
			if visited[sig] {
				continue
			}
			visited[sig] = true

			firingKey := logic.Key(compile.Apply(scope, ga.Action, argsAsTerms(ga.Args)))
			finalizedLast := cloneValuation(node.state)
			finalizedLast[firingKey] = true

			newTrace := make(ltlf.Trace, 0, len(node.trace)+1)
			newTrace = append(newTrace, node.trace[:len(node.trace)-1]...)
			newTrace = append(newTrace, finalizedLast, cloneValuation(childState))

			queue = append(queue, frontierNode{state: childState, trace: newTrace})
		}
	}

	if hitHorizon {
		return logic.Undefined, nil, nil
	}
	return logic.False, nil, nil
}

func initialValuation(s domain.State) ltlf.Valuation {
	v := make(ltlf.Valuation)
	for _, f := range s.Fluents {
		v[f.Name()] = true
	}
	for _, atom := range s.Predicates {
		v[logic.Key(atom)] = true
	}
	return v
}

func applyGroundEffects(scope *compile.Scope, state ltlf.Valuation, ga groundAction, subst map[string]logic.Term) (ltlf.Valuation, error) {
	next := cloneValuation(state)
	for _, e := range ga.Action.Effects {
		pre := logic.Substitute(e.Precondition, subst)
		fires, err := ltlf.Satisfies(scope, pre, ltlf.Trace{state}, 0)
		if err != nil {
			return nil, fmt.Errorf("planner: evaluating effect precondition of %q: %w", ga.Action.Name, err)
		}
		if !fires {
			continue
		}
		for _, f := range e.Fluents {
			next[f.Name()] = e.Positive
		}
		for _, atom := range e.Predicates {
			ground := logic.Substitute(atom, subst)
			next[logic.Key(ground)] = e.Positive
		}
	}
	return next, nil
}
