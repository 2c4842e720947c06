// Package grammar is the grammar-analysis core: symbol and production
// interning, the grammar model itself, FIRST/FOLLOW computation, and LR(1)
// items and item sets. Everything in this package operates on interned ids
// rather than on symbol or production values directly; the Grammar is the
// only place that owns those values.
package grammar

import "github.com/MrTamalampudi/manodae/internal/ictiobus/symtern"

// Grammar is the interned grammar model: a symbol table, an ordered
// collection of productions, and the derived index from head symbol to the
// productions it heads. A Grammar is built incrementally by interning
// symbols and productions and is read-only from the point it is handed to
// the automaton builder.
type Grammar struct {
	Symbols     *SymbolTable
	productions *symtern.Interner[prodKey]
	prodList    []Production

	// productionHeadMap indexes productions by head symbol, in the order
	// the productions were interned. Used by CLOSURE to find the
	// productions of a non-terminal without a linear scan.
	productionHeadMap map[SymbolId][]ProductionId

	first  *firstSets
	follow *followSets
}

// prodKey is the identity key a production is interned under: its head,
// body, and custom error message. Two productions with the same head/body
// but different ErrorMessage/HasError are distinct productions, matching the
// original implementation's production identity (it hashes head, body, and
// error_message together); without this, the second of two otherwise-
// identical productions carrying different error messages would silently
// dedupe against the first and lose its own ErrorMessage/HasError.
type prodKey struct {
	head         string
	body         string
	hasError     bool
	errorMessage string
}

// NewGrammar creates a Grammar whose start nonterminal is named startName.
// The constructor reserves AugmentStart, EOF, and startName as symbol ids
// 0, 1, 2 and injects the augmented production S' -> Start as production id
// 0, consistent with the reserved-id contract documented on SymbolTable.
func NewGrammar(startName string) *Grammar {
	g := &Grammar{
		Symbols:           newSymbolTable(startName),
		productions:       symtern.New[prodKey](),
		productionHeadMap: map[SymbolId][]ProductionId{},
	}

	aug := Production{
		Index: AugmentedProduction,
		Head:  AugmentStart,
		Body:  []SymbolId{StartSymbol},
	}
	id := ProductionId(g.productions.Intern(prodKey{head: keyOf(aug.Head), body: keyOf(aug.Body...)}))
	// the augmented production never carries a custom error message, so its
	// key's hasError/errorMessage fields are left at their zero values.
	if id != AugmentedProduction {
		panic("grammar: augmented production did not come out as id 0")
	}
	g.prodList = append(g.prodList, aug)
	g.productionHeadMap[aug.Head] = append(g.productionHeadMap[aug.Head], aug.Index)

	return g
}

// InternSymbol interns a symbol of the given kind and name and returns its
// id, reusing the reserved ids when name/kind match what NewGrammar already
// set up.
func (g *Grammar) InternSymbol(kind SymbolKind, name string) SymbolId {
	return g.Symbols.InternSymbol(kind, name)
}

// InternProduction interns a production with the given head, body, optional
// error message, and optional action, returning its id. A production's index
// equals its insertion order, so the first call after NewGrammar returns id
// 1, the next id 2, and so on.
func (g *Grammar) InternProduction(head SymbolId, body []SymbolId, errorMessage string, hasError bool, action ActionFunc) ProductionId {
	key := prodKey{head: keyOf(head), body: keyOf(body...), hasError: hasError, errorMessage: errorMessage}
	before := g.productions.Len()
	id := ProductionId(g.productions.Intern(key))

	if int(id) < before {
		// already interned: same head, body, AND error message/flag as some
		// earlier call, matching the Interner contract from C1. A head/body
		// repeated with a different error message is not this case; it gets
		// its own id above, exactly as two distinct productions should.
		return id
	}

	p := Production{
		Index:        id,
		Head:         head,
		Body:         append([]SymbolId(nil), body...),
		ErrorMessage: errorMessage,
		HasError:     hasError,
		Action:       action,
	}
	g.prodList = append(g.prodList, p)
	g.productionHeadMap[head] = append(g.productionHeadMap[head], id)

	// a newly-interned production invalidates any already-computed
	// FIRST/FOLLOW sets.
	g.first = nil
	g.follow = nil

	return id
}

// Production returns the production interned under id. Total over every id
// this Grammar has handed out.
func (g *Grammar) Production(id ProductionId) Production {
	return g.prodList[id]
}

// Productions returns every production in insertion-order, including the
// augmented production at index 0.
func (g *Grammar) Productions() []Production {
	return g.prodList
}

// ProductionsOf returns the ids of the productions headed by sym, in the
// order they were interned.
func (g *Grammar) ProductionsOf(sym SymbolId) []ProductionId {
	return g.productionHeadMap[sym]
}

func keyOf(ids ...SymbolId) string {
	// a cheap, collision-free encoding: each id is 4 bytes wide, so joining
	// their fixed-width representations can't produce the same key for two
	// different sequences.
	buf := make([]byte, 0, len(ids)*5)
	for _, id := range ids {
		buf = append(buf, byte(id>>24), byte(id>>16), byte(id>>8), byte(id), '|')
	}
	return string(buf)
}
