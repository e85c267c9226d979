// Command plannerctl compiles a YAML domain/problem description to an
// LTLf-FO formula, searches for a plan bounded by -horizon, and prints
// the result. Adapted from rfielding-turducken's cmd/turducken: same
// flag-driven single-shot CLI shape, with the HTTP server swapped for
// a direct planner.Solver call.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/black-sat/purple/logic"
	"github.com/black-sat/purple/planner"
)

func main() {
	domainFile := flag.String("domain", "", "YAML domain/problem file to load")
	horizon := flag.Int("horizon", 0, "search horizon (plan-length bound); 0 uses the file's own horizon field")
	verbose := flag.Bool("v", false, "trace bind/solve progress to stderr")
	flag.Parse()

	if *domainFile == "" {
		fmt.Fprintln(os.Stderr, "plannerctl: -domain is required")
		os.Exit(2)
	}

	cfg, err := loadConfig(*domainFile)
	if err != nil {
		log.Fatalf("plannerctl: %v", err)
	}

	d, p, err := cfg.build()
	if err != nil {
		log.Fatalf("plannerctl: %v", err)
	}

	h := cfg.Horizon
	if *horizon > 0 {
		h = *horizon
	}
	if h <= 0 {
		log.Fatalf("plannerctl: no horizon given (set -horizon or the file's horizon field)")
	}

	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	s := planner.NewSolver(logger)
	if *verbose {
		s.Trace = func(msg string) { fmt.Fprintln(os.Stderr, msg) }
	}

	if err := s.Bind(d, p, h); err != nil {
		log.Fatalf("plannerctl: bind: %v", err)
	}

	verdict, err := s.Solve(context.Background())
	if err != nil {
		log.Fatalf("plannerctl: solve: %v", err)
	}

	switch verdict {
	case logic.True:
		plan, _ := s.Solution()
		fmt.Printf("SATISFIABLE, plan length %d\n", len(plan.Steps))
		for i, step := range plan.Steps {
			fmt.Printf("%d: %s(%s)\n", i, step.Action.Name, joinArgs(step.Args))
		}
	case logic.False:
		fmt.Println("UNSATISFIABLE: no plan within the given horizon")
	default:
		fmt.Println("UNDEFINED: the search did not reach a conclusive verdict within the given horizon")
	}
}

func joinArgs(args []logic.Constant) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.Name()
	}
	return s
}
