package grammar

import (
	"testing"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/icterrors"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/types"
	"github.com/MrTamalampudi/manodae/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcGrammar(t *testing.T) *Grammar {
	t.Helper()
	g := NewGrammar("Start")
	a := g.InternSymbol(Terminal, "a")
	b := g.InternSymbol(Terminal, "b")
	c := g.InternSymbol(Terminal, "c")
	g.InternProduction(StartSymbol, []SymbolId{a, b, c}, "", false, nil)
	return g
}

func recursiveGrammar(t *testing.T) *Grammar {
	t.Helper()
	g := NewGrammar("Start")
	c := g.InternSymbol(NonTerminal, "C")
	lowerC := g.InternSymbol(Terminal, "c")
	d := g.InternSymbol(Terminal, "d")
	g.InternProduction(StartSymbol, []SymbolId{c, c}, "", false, nil)
	g.InternProduction(c, []SymbolId{lowerC, c}, "", false, nil)
	g.InternProduction(c, []SymbolId{d}, "", false, nil)
	return g
}

func Test_InternSymbol_IsIdempotent(t *testing.T) {
	g := NewGrammar("Start")
	id1 := g.InternSymbol(Terminal, "a")
	id2 := g.InternSymbol(Terminal, "a")
	assert.Equal(t, id1, id2)
}

func Test_InternProduction_IsIdempotent(t *testing.T) {
	g := abcGrammar(t)
	a, _ := g.Symbols.ReverseLookup(Symbol{Kind: Terminal, Name: "a"})
	b, _ := g.Symbols.ReverseLookup(Symbol{Kind: Terminal, Name: "b"})
	c, _ := g.Symbols.ReverseLookup(Symbol{Kind: Terminal, Name: "c"})

	before := len(g.Productions())
	id := g.InternProduction(StartSymbol, []SymbolId{a, b, c}, "", false, nil)
	assert.Len(t, g.Productions(), before)
	assert.Equal(t, g.ProductionsOf(StartSymbol)[0], id)
}

func Test_InternProduction_DistinctErrorMessagesAreDistinctProductions(t *testing.T) {
	g := abcGrammar(t)
	a, _ := g.Symbols.ReverseLookup(Symbol{Kind: Terminal, Name: "a"})
	b, _ := g.Symbols.ReverseLookup(Symbol{Kind: Terminal, Name: "b"})
	c, _ := g.Symbols.ReverseLookup(Symbol{Kind: Terminal, Name: "c"})

	before := len(g.Productions())
	id := g.InternProduction(StartSymbol, []SymbolId{a, b, c}, "expected c after a b", true, nil)
	require.Len(t, g.Productions(), before+1, "same head/body but a new error message must intern as a new production")
	assert.NotEqual(t, g.ProductionsOf(StartSymbol)[0], id)

	p := g.Production(id)
	assert.True(t, p.HasError)
	assert.Equal(t, "expected c after a b", p.ErrorMessage)

	original := g.Production(g.ProductionsOf(StartSymbol)[0])
	assert.False(t, original.HasError)
	assert.Empty(t, original.ErrorMessage)
}

func Test_NewGrammar_ReservesWellKnownIds(t *testing.T) {
	g := NewGrammar("Start")
	assert.Equal(t, SymbolId(0), AugmentStart)
	assert.Equal(t, SymbolId(1), EOF)
	assert.Equal(t, SymbolId(2), StartSymbol)
	assert.Equal(t, ProductionId(0), AugmentedProduction)

	aug := g.Production(AugmentedProduction)
	assert.Equal(t, AugmentStart, aug.Head)
	require.Len(t, aug.Body, 1)
	assert.Equal(t, StartSymbol, aug.Body[0])
}

func Test_First_OfTerminal_IsItself(t *testing.T) {
	g := abcGrammar(t)
	a, _ := g.Symbols.ReverseLookup(Symbol{Kind: Terminal, Name: "a"})
	first := g.First(a)
	assert.Equal(t, []SymbolId{a}, first.Elements())
}

func Test_First_OfNonTerminal_IsSubsetOfTerminals(t *testing.T) {
	g := recursiveGrammar(t)
	c, _ := g.Symbols.ReverseLookup(Symbol{Kind: NonTerminal, Name: "C"})
	for _, sym := range g.First(c).Elements() {
		assert.True(t, g.Symbols.IsTerminal(sym), "FIRST(C) must contain only terminals")
	}
	assert.Equal(t, 2, g.First(c).Len())
}

func Test_Follow_OfStartSymbol_ContainsEOF(t *testing.T) {
	g := abcGrammar(t)
	assert.True(t, g.Follow(StartSymbol).Has(EOF))
}

func Test_Follow_PropagatesThroughTailPosition(t *testing.T) {
	g := recursiveGrammar(t)
	c, _ := g.Symbols.ReverseLookup(Symbol{Kind: NonTerminal, Name: "C"})
	// C appears in tail position of "Start -> C C" and of "C -> c C", so
	// FOLLOW(C) should contain EOF (from FOLLOW(Start)) plus "c"/"d" from
	// FIRST(C), since "Start -> C . C" makes the first C's follow include
	// FIRST(C).
	follow := g.Follow(c)
	assert.True(t, follow.Has(EOF))
}

func Test_Production_Equal_IgnoresAction(t *testing.T) {
	g := abcGrammar(t)
	p := g.Production(g.ProductionsOf(StartSymbol)[0])
	withAction := p
	withAction.Action = func(ast any, tokens *util.Stack[types.Token], translator *util.Stack[any], errs *[]icterrors.ParseError) {}
	assert.True(t, p.Equal(withAction), "bound Action closure must not affect equality")
}
