package table

import (
	"testing"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/automaton"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// danglingElseGrammar mirrors the one in the automaton package; duplicated
// here (rather than exported) to keep the two packages' tests independent of
// each other's internal test helpers.
func danglingElseGrammar() *grammar.Grammar {
	g := grammar.NewGrammar("S")
	i := g.InternSymbol(grammar.Terminal, "i")
	tTerm := g.InternSymbol(grammar.Terminal, "t")
	eTerm := g.InternSymbol(grammar.Terminal, "e")
	aTerm := g.InternSymbol(grammar.Terminal, "a")
	bTerm := g.InternSymbol(grammar.Terminal, "b")
	eNonTerm := g.InternSymbol(grammar.NonTerminal, "E")

	g.InternProduction(grammar.StartSymbol, []grammar.SymbolId{i, eNonTerm, tTerm, grammar.StartSymbol}, "", false, nil)
	g.InternProduction(grammar.StartSymbol, []grammar.SymbolId{i, eNonTerm, tTerm, grammar.StartSymbol, eTerm, grammar.StartSymbol}, "", false, nil)
	g.InternProduction(grammar.StartSymbol, []grammar.SymbolId{aTerm}, "", false, nil)
	g.InternProduction(eNonTerm, []grammar.SymbolId{bTerm}, "", false, nil)
	return g
}

func unambiguousGrammar() *grammar.Grammar {
	g := grammar.NewGrammar("Start")
	a := g.InternSymbol(grammar.Terminal, "a")
	b := g.InternSymbol(grammar.Terminal, "b")
	c := g.InternSymbol(grammar.Terminal, "c")
	g.InternProduction(grammar.StartSymbol, []grammar.SymbolId{a, b, c}, "", false, nil)
	return g
}

func Test_Build_NoConflictsForUnambiguousGrammar(t *testing.T) {
	g := unambiguousGrammar()
	lalr := automaton.BuildCanonicalCollection(g).MergeLALR()
	tbl := Build(lalr, g)

	assert.False(t, tbl.HasConflicts)
	assert.Empty(t, tbl.Conflicts)
}

func Test_Build_ReportsShiftReduceConflictAndShiftWins(t *testing.T) {
	g := danglingElseGrammar()
	lalr := automaton.BuildCanonicalCollection(g).MergeLALR()
	tbl := Build(lalr, g)

	require.NotEmpty(t, tbl.Conflicts)
	for _, c := range tbl.Conflicts {
		assert.Equal(t, ShiftReduce, c.Kind)
		// "later rule wins": the table's final entry for the conflicting
		// cell must be the New action recorded on the conflict, and it must
		// be a Shift (the second S-production, which shifts on "e", comes
		// after the first in insertion order).
		final, ok := tbl.Action(c.State, c.Symbol)
		require.True(t, ok)
		assert.Equal(t, c.New, final)
		assert.Equal(t, Shift, final.Kind)
	}
}

func Test_Build_EveryGotoCorrespondsToANonTerminalTransitionItem(t *testing.T) {
	g := unambiguousGrammar()
	lalr := automaton.BuildCanonicalCollection(g).MergeLALR()
	tbl := Build(lalr, g)

	for i := 0; i < lalr.Len(); i++ {
		s := lalr.State(automaton.StateId(i))
		for _, nt := range g.Symbols.NonTerminals() {
			_, hasGoto := tbl.Goto(s.Index, nt)
			hasItem := false
			for _, it := range s.Items.Items() {
				if next, ok := it.NextSymbol(g); ok && next == nt {
					hasItem = true
					break
				}
			}
			assert.Equal(t, hasItem, hasGoto, "state %d, nonterminal %d", i, nt)
		}
	}
}

func Test_Build_AcceptOnlyOnAugmentedItemAtEOF(t *testing.T) {
	g := unambiguousGrammar()
	lalr := automaton.BuildCanonicalCollection(g).MergeLALR()
	tbl := Build(lalr, g)

	accepts := 0
	for i := 0; i < lalr.Len(); i++ {
		for _, term := range g.Symbols.Terminals() {
			if act, ok := tbl.Action(automaton.StateId(i), term); ok && act.Kind == Accept {
				assert.Equal(t, grammar.EOF, term, "state %d has an Accept action off the EOF column", i)
				accepts++
			}
		}
	}
	assert.Equal(t, 1, accepts, "an unambiguous grammar's table must have exactly one Accept action")
}
