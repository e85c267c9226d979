package planner

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// stepKey reduces a plan step to a comparable value: its action name
// plus argument names. go-cmp diffs domain.Step directly only through
// this projection, since domain.Action embeds logic.Formula values
// whose concrete cases carry unexported fields go-cmp cannot open up.
func stepKey(s domain.Step) string {
	key := s.Action.Name + "("
	for i, a := range s.Args {
		if i > 0 {
			key += ","
		}
		key += a.Name()
	}
	return key + ")"
}

func planKeys(p domain.Plan) []string {
	keys := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		keys[i] = stepKey(s)
	}
	return keys
}

// homeRooms builds a small move-between-rooms domain: a predicate
// connected(from,to) describing a fixed topology (never itself an
// effect target, so it survives by frame inertia alone) and a single
// fluent-like predicate at(r) moved around by a move(from,to) action.
func homeRooms(edges [][2]string) (domain.Domain, logic.Sort, map[string]logic.Constant) {
	sigma := logic.NewAlphabet()
	room := sigma.Sort("room")

	names := []string{"kitchen", "hallway", "bedroom"}
	objects := make(map[string]logic.Constant, len(names))
	for _, n := range names {
		objects[n] = sigma.NewConstant(n, room)
	}

	from := sigma.NewVariable("from", room)
	to := sigma.NewVariable("to", room)
	r := sigma.NewVariable("r", room)

	connected := domain.NewPredicate(sigma, "connected", []logic.VarDecl{from, to})
	at := domain.NewPredicate(sigma, "at", []logic.VarDecl{r})

	move := domain.NewAction(
		"move",
		[]logic.VarDecl{from, to},
		logic.And(at.Call(from), connected.Call(from, to)),
		[]domain.Effect{
			domain.BareAtomEffect(at.Call(to), true),
			domain.BareAtomEffect(at.Call(from), false),
		},
	)

	d := domain.Domain{
		Sigma:      sigma,
		Types:      []logic.Sort{room},
		Predicates: []domain.Predicate{connected, at},
		Actions:    []domain.Action{move},
	}

	return d, room, objects
}

func homeRoomsProblem(edges [][2]string, objects map[string]logic.Constant, room logic.Sort, connected domain.Predicate, at domain.Predicate, start string) domain.Problem {
	var connFacts []logic.Formula
	for _, e := range edges {
		connFacts = append(connFacts, connected.Call(objects[e[0]], objects[e[1]]))
	}
	initPredicates := append([]logic.Formula{at.Call(objects[start])}, connFacts...)

	return domain.Problem{
		Types: []logic.SortDecl{{Sort: room, Domain: []logic.Constant{objects["kitchen"], objects["hallway"], objects["bedroom"]}}},
		Init:  domain.State{Predicates: initPredicates},
	}
}

func buildHome(edges [][2]string, start, goalRoom string) (domain.Domain, domain.Problem) {
	d, room, objects := homeRooms(edges)
	connected := d.Predicates[0]
	at := d.Predicates[1]
	p := homeRoomsProblem(edges, objects, room, connected, at, start)
	p.Sigma = d.Sigma
	if goalRoom != "" {
		p.Goal = at.Call(objects[goalRoom])
	}
	return d, p
}

func TestHomeRoomsGoalReachable(t *testing.T) {
	edges := [][2]string{{"kitchen", "hallway"}, {"hallway", "bedroom"}}
	d, p := buildHome(edges, "kitchen", "bedroom")

	s := NewSolver(nil)
	if err := s.Bind(d, p, 3); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	verdict, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != logic.True {
		t.Fatalf("verdict = %v, want True", verdict)
	}
	plan, ok := s.Solution()
	if !ok {
		t.Fatal("expected a solution")
	}
	want := []string{"move(kitchen,hallway)", "move(hallway,bedroom)"}
	if diff := cmp.Diff(want, planKeys(*plan)); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestHomeRoomsGoalUnreachable(t *testing.T) {
	edges := [][2]string{{"kitchen", "hallway"}} // no edge reaches bedroom
	d, p := buildHome(edges, "kitchen", "bedroom")

	s := NewSolver(nil)
	if err := s.Bind(d, p, 5); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	verdict, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != logic.False {
		t.Fatalf("verdict = %v, want False (definitive refutation)", verdict)
	}
	if _, ok := s.Solution(); ok {
		t.Fatal("expected no solution for an unreachable goal")
	}
}

func TestHomeRoomsAlreadySatisfied(t *testing.T) {
	edges := [][2]string{{"kitchen", "hallway"}}
	d, p := buildHome(edges, "kitchen", "kitchen")

	s := NewSolver(nil)
	if err := s.Bind(d, p, 5); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	verdict, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != logic.True {
		t.Fatalf("verdict = %v, want True", verdict)
	}
	plan, ok := s.Solution()
	if !ok || len(plan.Steps) != 0 {
		t.Fatalf("expected an empty plan since the goal already holds, got %+v", plan)
	}
}

func TestHomeRoomsTrivialGoal(t *testing.T) {
	edges := [][2]string{{"kitchen", "hallway"}}
	d, p := buildHome(edges, "kitchen", "")
	p.Goal = nil // Compile defaults a nil goal to ⊤

	s := NewSolver(nil)
	if err := s.Bind(d, p, 5); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	verdict, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != logic.True {
		t.Fatalf("verdict = %v, want True for a trivial goal", verdict)
	}
	plan, ok := s.Solution()
	if !ok || len(plan.Steps) != 0 {
		t.Fatalf("expected an empty plan for a trivially-true goal, got %+v", plan)
	}
}

func TestHomeRoomsTrajectoryPrunesTheOnlyPath(t *testing.T) {
	edges := [][2]string{{"kitchen", "hallway"}, {"hallway", "bedroom"}}
	d, p := buildHome(edges, "kitchen", "bedroom")

	at := d.Predicates[1]
	hallway := logic.Term(nil)
	for _, decl := range p.Types {
		for _, c := range decl.Domain {
			if c.Name() == "hallway" {
				hallway = c
			}
		}
	}
	p.Trajectory = logic.G(logic.Not(at.Call(hallway)))

	s := NewSolver(nil)
	if err := s.Bind(d, p, 4); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	verdict, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != logic.False {
		t.Fatalf("verdict = %v, want False: the only path runs through the forbidden room", verdict)
	}
}

func TestPropositionalDomainLightSwitch(t *testing.T) {
	sigma := logic.NewAlphabet()
	lit := sigma.Proposition("lit")

	turnOn := domain.NewAction("turn_on", nil, logic.Not(logic.Proposition(lit)), []domain.Effect{
		domain.BareFluentEffect(lit, true),
	})

	d := domain.Domain{Sigma: sigma, Fluents: []logic.Relation{lit}, Actions: []domain.Action{turnOn}}
	p := domain.Problem{Sigma: sigma, Goal: logic.Proposition(lit)}

	s := NewSolver(nil)
	if err := s.Bind(d, p, 2); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	verdict, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != logic.True {
		t.Fatalf("verdict = %v, want True", verdict)
	}
	plan, ok := s.Solution()
	if !ok || len(plan.Steps) != 1 || plan.Steps[0].Action.Name != "turn_on" {
		t.Fatalf("expected a 1-step turn_on plan, got %+v", plan)
	}
}

func TestSolveBeforeBindErrors(t *testing.T) {
	s := NewSolver(nil)
	if _, err := s.Solve(context.Background()); err == nil {
		t.Fatal("expected an error calling Solve before Bind")
	}
}

func TestBindStructuralMismatchYieldsUndefined(t *testing.T) {
	sigma := logic.NewAlphabet()
	at := domain.NewPredicate(sigma, "at", nil)
	clash := domain.NewAction("at", nil, sigma.Top(), nil)

	d := domain.Domain{Sigma: sigma, Predicates: []domain.Predicate{at}, Actions: []domain.Action{clash}}
	p := domain.Problem{Sigma: sigma}

	s := NewSolver(nil)
	if err := s.Bind(d, p, 1); err != nil {
		t.Fatalf("Bind itself should not error: %v", err)
	}
	verdict, err := s.Solve(context.Background())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if verdict != logic.Undefined {
		t.Fatalf("verdict = %v, want Undefined for a structural mismatch", verdict)
	}
}
