package compile

import (
	"github.com/black-sat/purple/domain"
	"github.com/black-sat/purple/logic"
)

// EncodeEffect builds spec.md §4.B's literal conjunction for a single
// effect: lit(x) = x if e.Positive else ¬x, conjoined over every
// listed fluent and predicate atom. Ported from
// original_source/solver.cpp's `encode(effect const&)`.
func EncodeEffect(e domain.Effect) logic.Formula {
	lit := func(f logic.Formula) logic.Formula {
		if e.Positive {
			return f
		}
		return logic.Not(f)
	}

	fluents := logic.BigAnd(e.Sigma, e.Fluents, func(r logic.Relation) logic.Formula {
		return lit(logic.Proposition(r))
	})
	predicates := logic.BigAnd(e.Sigma, e.Predicates, func(atom logic.Formula) logic.Formula {
		return lit(atom)
	})

	return logic.And(fluents, predicates)
}
