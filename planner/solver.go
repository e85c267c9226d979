// Package planner implements spec.md §5's solver state machine and
// §4.I's plan extractor, wired to SatEngine, the default forward-search
// backend (engine.go).
package planner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/black-sat/purple/compile"
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

type solverState int

const (
	stateFresh solverState = iota
	stateBound
	stateSolved
)

// Solver is spec.md §5's state machine: Fresh → Bound(d,p) → Solved(verdict, model?).
// A Solver is safe for concurrent use; Bind/Solve are serialized by an
// internal mutex, mirroring logic.Alphabet's own concurrency contract.
type Solver struct {
	mu sync.Mutex

	state   solverState
	d       domain.Domain
	p       domain.Problem
	horizon int
	scope   *compile.Scope

	verdict   logic.Verdict
	plan      *domain.Plan
	bindError error

	// Trace, if set, is called with a one-line progress message for
	// every Bind/Solve milestone — the commented-out tracer hook
	// original_source/solver.cpp left unused, promoted here to a real
	// extension point (SPEC_FULL.md §4).
	Trace func(msg string)

	logger *log.Logger
}

// NewSolver creates a Fresh solver. logger may be nil, matching this
// module's nil-safe logging convention (SPEC_FULL.md §2.1).
func NewSolver(logger *log.Logger) *Solver {
	return &Solver{logger: logger}
}

// Bind compiles d and p (spec.md §4.H) and transitions Fresh → Bound.
// A structural mismatch (compile.BuildScope's contract, §4.A) is not a
// Go error here: it moves the solver straight to Solved(Undefined),
// since spec.md's Open Question on this point is resolved as "an
// ordinary outcome, not an internal bug" (see DESIGN.md). Binding
// twice re-binds: Solve always reflects the most recent Bind.
func (s *Solver) Bind(d domain.Domain, p domain.Problem, horizon int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	s.emit("bind.start id=%s horizon=%d", id, horizon)

	_, scope, err := compile.Compile(d, p)
	if err != nil {
		s.state = stateSolved
		s.verdict = logic.Undefined
		s.bindError = err
		s.plan = nil
		s.emit("bind.undefined id=%s err=%v", id, err)
		return nil
	}

	s.d, s.p, s.horizon, s.scope = d, p, horizon, scope
	s.state = stateBound
	s.verdict = logic.Undefined
	s.bindError = nil
	s.plan = nil
	s.emit("bind.done id=%s", id)
	return nil
}

// Solve runs the default SatEngine against the bound domain/problem. It
// is a no-op returning the cached verdict if the solver is already
// Solved (including the Undefined-from-a-failed-Bind case); it errors
// if called before any Bind (state machine contract violation, a
// caller bug rather than an ordinary planning outcome).
func (s *Solver) Solve(ctx context.Context) (logic.Verdict, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateFresh {
		return logic.Undefined, errors.New("planner: Solve called before Bind")
	}
	if s.state == stateSolved {
		return s.verdict, nil
	}

	id := uuid.New().String()
	s.emit("solve.start id=%s horizon=%d", id, s.horizon)

	verdict, trace, err := (SatEngine{}).Search(s.scope, s.d, s.p, s.horizon)
	if err != nil {
		s.emit("solve.error id=%s err=%v", id, err)
		return logic.Undefined, fmt.Errorf("planner: %w", err)
	}

	s.state = stateSolved
	s.verdict = verdict
	if verdict == logic.True {
		plan, err := ExtractPlan(s.scope, s.d, trace)
		if err != nil {
			s.emit("solve.error id=%s err=%v", id, err)
			return logic.Undefined, fmt.Errorf("planner: %w", err)
		}
		s.plan = &plan
	}

	s.emit("solve.done id=%s verdict=%s", id, verdict)
	return verdict, nil
}

// Solution returns the extracted plan and true iff the solver reached
// verdict True. It returns (nil, false) in every other state.
func (s *Solver) Solution() (*domain.Plan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verdict != logic.True {
		return nil, false
	}
	return s.plan, true
}

func (s *Solver) emit(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.Trace != nil {
		s.Trace(msg)
	}
	if s.logger != nil {
		s.logger.Print(msg)
	}
}
