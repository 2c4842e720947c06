package table

import (
	"github.com/MrTamalampudi/manodae/internal/ictiobus/automaton"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
)

// Table holds the assembled ACTION and GOTO tables plus any conflicts
// recorded while building them. It is immutable once returned by Build.
type Table struct {
	action map[automaton.StateId]map[grammar.SymbolId]Action
	goTo   map[automaton.StateId]map[grammar.SymbolId]automaton.StateId

	Conflicts    []Conflict
	HasConflicts bool
}

// Action returns the ACTION table entry for (state, terminal), if any.
func (t *Table) Action(state automaton.StateId, terminal grammar.SymbolId) (Action, bool) {
	row, ok := t.action[state]
	if !ok {
		return Action{}, false
	}
	a, ok := row[terminal]
	return a, ok
}

// Goto returns the GOTO table entry for (state, nonterminal), if any.
func (t *Table) Goto(state automaton.StateId, nonterminal grammar.SymbolId) (automaton.StateId, bool) {
	row, ok := t.goTo[state]
	if !ok {
		return 0, false
	}
	target, ok := row[nonterminal]
	return target, ok
}

// DefinedTerminals returns, in insertion order, every terminal for which
// ACTION[state] has an entry. Used by the parse driver to build "Expected
// X, Y or Z" diagnostics.
func (t *Table) DefinedTerminals(state automaton.StateId, g *grammar.Grammar) []grammar.SymbolId {
	row, ok := t.action[state]
	if !ok {
		return nil
	}
	var out []grammar.SymbolId
	for _, term := range g.Symbols.Terminals() {
		if _, ok := row[term]; ok {
			out = append(out, term)
		}
	}
	return out
}

// Build assembles ACTION and GOTO from an LALR(1) automaton, per spec
// section 4.7: for each state and each item in it (both iterated in
// insertion order so that conflict resolution — "the later rule wins" — is
// deterministic), a reduce item contributes Reduce entries for its
// lookaheads (or Accept, if it is the augmented item), and a shift item
// contributes a Shift or GOTO entry depending on whether the symbol after
// the cursor is a terminal or non-terminal.
func Build(a *automaton.Automaton, g *grammar.Grammar) *Table {
	t := &Table{
		action: map[automaton.StateId]map[grammar.SymbolId]Action{},
		goTo:   map[automaton.StateId]map[grammar.SymbolId]automaton.StateId{},
	}

	for i := 0; i < a.Len(); i++ {
		s := a.State(automaton.StateId(i))

		for _, it := range s.Items.Items() {
			nextSym, has := it.NextSymbol(g)

			if !has {
				if it.IsAugmented() {
					t.setAction(s.Index, grammar.EOF, Action{Kind: Accept})
					continue
				}
				for _, la := range it.Lookaheads.Elements() {
					t.setAction(s.Index, la, Action{Kind: Reduce, Production: it.Production})
				}
				continue
			}

			target, ok := s.Outgoing[nextSym]
			if !ok {
				// GOTO must have already been computed for every symbol that
				// appears after a cursor in this state's items; absence here
				// would be an automaton-construction invariant violation.
				continue
			}

			if g.Symbols.IsTerminal(nextSym) {
				t.setAction(s.Index, nextSym, Action{Kind: Shift, Target: target})
			} else {
				t.setGoto(s.Index, nextSym, target)
			}
		}
	}

	return t
}

func (t *Table) setAction(state automaton.StateId, symbol grammar.SymbolId, a Action) {
	row, ok := t.action[state]
	if !ok {
		row = map[grammar.SymbolId]Action{}
		t.action[state] = row
	}

	if existing, already := row[symbol]; already && !existing.Equal(a) {
		kind := ShiftReduce
		if existing.Kind == Reduce && a.Kind == Reduce {
			kind = ReduceReduce
		}
		t.Conflicts = append(t.Conflicts, Conflict{
			Kind:     kind,
			State:    state,
			Symbol:   symbol,
			Existing: existing,
			New:      a,
		})
		t.HasConflicts = true
	}

	row[symbol] = a
}

func (t *Table) setGoto(state automaton.StateId, symbol grammar.SymbolId, target automaton.StateId) {
	row, ok := t.goTo[state]
	if !ok {
		row = map[grammar.SymbolId]automaton.StateId{}
		t.goTo[state] = row
	}
	row[symbol] = target
}

// ActionEntry is one ACTION table cell, named rather than positional so a
// cache snapshot can be decoded straight into the shape FromSnapshot expects.
type ActionEntry struct {
	State  automaton.StateId
	Symbol grammar.SymbolId
	Action Action
}

// GotoEntry is one GOTO table cell.
type GotoEntry struct {
	State  automaton.StateId
	Symbol grammar.SymbolId
	Target automaton.StateId
}

// FromSnapshot rebuilds a Table directly from previously-assembled ACTION
// and GOTO entries, bypassing the CLOSURE/GOTO walk Build performs. Used by
// internal/persist to reconstruct a cached table without rerunning automaton
// construction. Conflicts are not recomputed: a snapshot is only ever taken
// from a Table that already resolved them, per the "later rule wins" policy,
// so there is nothing left to detect.
func FromSnapshot(actions []ActionEntry, gotos []GotoEntry) *Table {
	t := &Table{
		action: map[automaton.StateId]map[grammar.SymbolId]Action{},
		goTo:   map[automaton.StateId]map[grammar.SymbolId]automaton.StateId{},
	}
	for _, e := range actions {
		row, ok := t.action[e.State]
		if !ok {
			row = map[grammar.SymbolId]Action{}
			t.action[e.State] = row
		}
		row[e.Symbol] = e.Action
	}
	for _, e := range gotos {
		row, ok := t.goTo[e.State]
		if !ok {
			row = map[grammar.SymbolId]automaton.StateId{}
			t.goTo[e.State] = row
		}
		row[e.Symbol] = e.Target
	}
	return t
}
