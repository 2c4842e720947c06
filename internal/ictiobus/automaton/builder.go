package automaton

import (
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/MrTamalampudi/manodae/internal/util"
)

// BuildCanonicalCollection implements items() from spec 4.6: starting from
// I0 = CLOSURE({[S' -> . Start, EOF]}), repeatedly computes GOTO for every
// grammar symbol (non-terminals before terminals, in interning order) of
// every state in turn, appending newly-discovered states to the collection
// and recording outgoing edges, until no unprocessed states remain. States
// are assigned ids by insertion order.
func BuildCanonicalCollection(g *grammar.Grammar) *Automaton {
	ce := newClosureEngine(g)

	startItem := grammar.Item{
		Production: grammar.AugmentedProduction,
		Cursor:     0,
		Lookaheads: util.NewOrderedSet(grammar.EOF),
	}
	startSet := grammar.NewItemSet()
	startSet.Add(startItem)

	a := newAutomaton()
	a.add(&State{
		Items:    ce.closure(startSet),
		Outgoing: map[grammar.SymbolId]StateId{},
	})

	symbolOrder := gotoSymbolOrder(g)

	// the queue is simply "every state not yet processed"; since states are
	// only ever appended, iterating by increasing index and re-checking
	// a.Len() each time is enough to drain it without a separate queue.
	for idx := 0; idx < a.Len(); idx++ {
		s := a.State(StateId(idx))

		for _, x := range symbolOrder {
			closed, kernel, ok := ce.gotoSet(s.Items, x)
			if !ok {
				continue
			}

			if existing, found := a.findByFullKey(closed); found {
				s.Outgoing[x] = existing
				continue
			}

			a.add(&State{
				Items:            closed,
				TransitionItems:  kernel,
				TransitionSymbol: x,
				Outgoing:         map[grammar.SymbolId]StateId{},
			})
			s.Outgoing[x] = a.States[len(a.States)-1].Index
		}
	}

	return a
}

// gotoSymbolOrder returns every grammar symbol in the order GOTO should be
// tried for a state: non-terminals before terminals, each group in
// interning order, per spec 4.6 step 2.
func gotoSymbolOrder(g *grammar.Grammar) []grammar.SymbolId {
	order := make([]grammar.SymbolId, 0, len(g.Symbols.NonTerminals())+len(g.Symbols.Terminals()))
	order = append(order, g.Symbols.NonTerminals()...)
	order = append(order, g.Symbols.Terminals()...)
	return order
}
