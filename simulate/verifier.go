// Package simulate is an independent round-trip checker for plans:
// given a domain/problem and a candidate plan, it replays the plan
// action by action against a small embedded Prolog program and reports
// whether every precondition held and the goal was reached. It shares
// no code with compile or ltlf, on purpose — the point is a second,
// differently-built opinion about whether a plan is actually valid.
//
// Adapted from rfielding-turducken's pkg/prolog.Engine: a
// mutex-guarded *prolog.Interpreter loaded once with a small core
// program, queried per call. Here the core encodes Boolean structure
// (check/1) over a dynamic holds/1 fact base instead of turducken's
// CTL satisfaction relation, and the "spec" loaded per run is the
// planning domain's initial state rather than a user Prolog file.
package simulate

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ichiban/prolog"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// Verifier wraps an ichiban/prolog interpreter used to replay plans.
type Verifier struct {
	mu          sync.Mutex
	interpreter *prolog.Interpreter
}

const core = `
check(true).
check(atom(P)) :- holds(P).
check(not(F)) :- \+ check(F).
check(and(F,G)) :- check(F), check(G).
check(or(F,G)) :- check(F) ; check(G).
`

// New creates a Verifier with its Boolean-structure core loaded.
func New() (*Verifier, error) {
	v := &Verifier{interpreter: prolog.New(nil, nil)}
	if err := v.interpreter.Exec(core); err != nil {
		return nil, fmt.Errorf("simulate: loading core: %w", err)
	}
	return v, nil
}

// Result is the outcome of replaying one plan.
type Result struct {
	Valid bool
	// FailedStep is the 0-based index of the step whose precondition
	// failed to hold, or -1 if every step's precondition held (whether
	// or not the goal was reached at the end).
	FailedStep int
	// GoalHeld reports whether the goal formula held in the state
	// reached after the last step. Only meaningful when FailedStep<0.
	GoalHeld bool
}

// Replay executes plan against d and p's initial state by asserting
// and retracting holds/1 facts in Prolog, checking each step's
// precondition before applying its effects, and finally checking
// p.Goal. It returns an error only for a structural problem (an
// action the plan references that the domain doesn't have, or a goal
// formula using a temporal operator — out of scope for this classical
// single-trace replay; ltlf.Satisfies is where trajectory/temporal
// checking belongs).
func (v *Verifier) Replay(ctx context.Context, scope Scope, d domain.Domain, p domain.Problem, plan domain.Plan) (Result, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.resetFacts(ctx); err != nil {
		return Result{}, err
	}

	actions := make(map[string]domain.Action, len(d.Actions))
	for _, a := range d.Actions {
		actions[a.Name] = a
	}

	for _, f := range p.Init.Fluents {
		if err := v.assert(ctx, f.Name()); err != nil {
			return Result{}, err
		}
	}
	for _, atom := range p.Init.Predicates {
		key := logic.Key(atom)
		if err := v.assert(ctx, key); err != nil {
			return Result{}, err
		}
	}

	for i, step := range plan.Steps {
		a, ok := actions[step.Action.Name]
		if !ok {
			return Result{}, fmt.Errorf("simulate: plan step %d references unknown action %q", i, step.Action.Name)
		}
		subst, err := bind(a, step.Args)
		if err != nil {
			return Result{}, fmt.Errorf("simulate: plan step %d: %w", i, err)
		}

		term, err := translate(scope, a.Precondition, subst)
		if err != nil {
			return Result{}, fmt.Errorf("simulate: plan step %d precondition: %w", i, err)
		}
		ok, err = v.checkTerm(ctx, term)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{Valid: false, FailedStep: i}, nil
		}

		for _, e := range a.Effects {
			eterm, err := translate(scope, e.Precondition, subst)
			if err != nil {
				return Result{}, fmt.Errorf("simulate: plan step %d effect precondition: %w", i, err)
			}
			fires, err := v.checkTerm(ctx, eterm)
			if err != nil {
				return Result{}, err
			}
			if !fires {
				continue
			}
			if err := v.applyEffect(ctx, e, subst); err != nil {
				return Result{}, fmt.Errorf("simulate: plan step %d: %w", i, err)
			}
		}
	}

	goalTerm, err := translate(scope, p.Goal, map[string]logic.Term{})
	if err != nil {
		return Result{}, fmt.Errorf("simulate: goal: %w", err)
	}
	goalHeld, err := v.checkTerm(ctx, goalTerm)
	if err != nil {
		return Result{}, err
	}

	return Result{Valid: goalHeld, FailedStep: -1, GoalHeld: goalHeld}, nil
}

func (v *Verifier) resetFacts(ctx context.Context) error {
	sols, err := v.interpreter.QueryContext(ctx, "retractall(holds(_)).")
	if err != nil {
		return fmt.Errorf("simulate: resetting facts: %w", err)
	}
	defer sols.Close()
	sols.Next()
	return sols.Err()
}

func (v *Verifier) assert(ctx context.Context, key string) error {
	sols, err := v.interpreter.QueryContext(ctx, fmt.Sprintf("assertz(holds(%s)).", quoteAtom(key)))
	if err != nil {
		return fmt.Errorf("simulate: asserting %s: %w", key, err)
	}
	defer sols.Close()
	sols.Next()
	return sols.Err()
}

func (v *Verifier) retract(ctx context.Context, key string) error {
	sols, err := v.interpreter.QueryContext(ctx, fmt.Sprintf("retractall(holds(%s)).", quoteAtom(key)))
	if err != nil {
		return fmt.Errorf("simulate: retracting %s: %w", key, err)
	}
	defer sols.Close()
	sols.Next()
	return sols.Err()
}

func (v *Verifier) checkTerm(ctx context.Context, term string) (bool, error) {
	sols, err := v.interpreter.QueryContext(ctx, fmt.Sprintf("check(%s).", term))
	if err != nil {
		return false, fmt.Errorf("simulate: query check(%s): %w", term, err)
	}
	defer sols.Close()
	ok := sols.Next()
	return ok, sols.Err()
}

func (v *Verifier) applyEffect(ctx context.Context, e domain.Effect, subst map[string]logic.Term) error {
	for _, f := range e.Fluents {
		if e.Positive {
			if err := v.assert(ctx, f.Name()); err != nil {
				return err
			}
		} else if err := v.retract(ctx, f.Name()); err != nil {
			return err
		}
	}
	for _, atom := range e.Predicates {
		ground, err := groundAtom(atom, subst)
		if err != nil {
			return err
		}
		key := logic.Key(ground)
		if e.Positive {
			if err := v.assert(ctx, key); err != nil {
				return err
			}
		} else if err := v.retract(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func quoteAtom(key string) string {
	escaped := strings.ReplaceAll(key, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "\\'")
	return "'" + escaped + "'"
}

// bind builds the variable-name-to-argument substitution for a ground
// instantiation of action a, rejecting an arity mismatch between the
// action's declared parameters and the plan step's argument list.
func bind(a domain.Action, args []logic.Constant) (map[string]logic.Term, error) {
	if len(args) != len(a.Params) {
		return nil, fmt.Errorf("action %q takes %d argument(s), step supplied %d", a.Name, len(a.Params), len(args))
	}
	subst := make(map[string]logic.Term, len(args))
	for i, param := range a.Params {
		subst[param.Name()] = args[i]
	}
	return subst, nil
}
