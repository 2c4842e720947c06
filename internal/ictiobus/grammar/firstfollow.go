package grammar

import "github.com/MrTamalampudi/manodae/internal/util"

// firstSets holds, for every symbol, the set of terminal ids that can begin
// a string derived from it. For a terminal t, FIRST(t) = {t}; epsilon
// productions are not modeled (see computeFirst).
type firstSets struct {
	bySymbol map[SymbolId]*util.OrderedSet[SymbolId]
}

// followSets holds, for every non-terminal, the set of terminals that may
// immediately follow it in some sentential form.
type followSets struct {
	bySymbol map[SymbolId]*util.OrderedSet[SymbolId]
}

// First returns the FIRST set of sym, computing it (and the FIRST sets of
// every other symbol) on first use and caching the result. The returned set
// must not be mutated.
func (g *Grammar) First(sym SymbolId) *util.OrderedSet[SymbolId] {
	if g.first == nil {
		g.first = computeFirst(g)
	}
	if s, ok := g.first.bySymbol[sym]; ok {
		return s
	}
	return util.NewOrderedSet[SymbolId]()
}

// Follow returns the FOLLOW set of sym (meaningful only for non-terminals),
// computing FIRST and FOLLOW for the whole grammar on first use.
func (g *Grammar) Follow(sym SymbolId) *util.OrderedSet[SymbolId] {
	if g.follow == nil {
		g.follow = computeFollow(g)
	}
	if s, ok := g.follow.bySymbol[sym]; ok {
		return s
	}
	return util.NewOrderedSet[SymbolId]()
}

// computeFirst implements the fixed-point algorithm of spec section 4.3: for
// a terminal, FIRST is the singleton {t}; for a non-terminal A, FIRST(A) is
// the union over its productions A -> alpha of FIRST(first symbol of alpha).
// Epsilon productions are out of scope; a production with an empty body is
// skipped and contributes nothing to its head's FIRST set.
func computeFirst(g *Grammar) *firstSets {
	fs := &firstSets{bySymbol: map[SymbolId]*util.OrderedSet[SymbolId]{}}

	for _, t := range g.Symbols.Terminals() {
		fs.bySymbol[t] = util.NewOrderedSet(t)
	}
	for _, nt := range g.Symbols.NonTerminals() {
		fs.bySymbol[nt] = util.NewOrderedSet[SymbolId]()
	}

	changed := true
	for changed {
		changed = false
		for _, nt := range g.Symbols.NonTerminals() {
			for _, pid := range g.ProductionsOf(nt) {
				body := g.Production(pid).Body
				if len(body) == 0 {
					continue
				}
				head := body[0]
				if fs.bySymbol[nt].AddAll(fs.bySymbol[head]) {
					changed = true
				}
			}
		}
	}

	return fs
}

// computeFollow implements spec section 4.3: FOLLOW(start) seeded with
// {EOF}; for every production A -> alpha B gamma with gamma non-empty,
// FOLLOW(B) gains FIRST(gamma's head symbol); then, to a fixed point, for
// every production A -> alpha B with B as the tail symbol, FOLLOW(B) gains
// FOLLOW(A), skipping the augmented production for that last rule.
func computeFollow(g *Grammar) *followSets {
	fo := &followSets{bySymbol: map[SymbolId]*util.OrderedSet[SymbolId]{}}
	for _, nt := range g.Symbols.NonTerminals() {
		fo.bySymbol[nt] = util.NewOrderedSet[SymbolId]()
	}
	fo.bySymbol[StartSymbol].Add(EOF)

	for _, p := range g.Productions() {
		for i, sym := range p.Body {
			if !g.Symbols.IsTerminal(sym) && i+1 < len(p.Body) {
				gammaHead := p.Body[i+1]
				fo.bySymbol[sym].AddAll(g.First(gammaHead))
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions() {
			if p.Index == AugmentedProduction {
				continue
			}
			if len(p.Body) == 0 {
				continue
			}
			tail := p.Body[len(p.Body)-1]
			if g.Symbols.IsTerminal(tail) {
				continue
			}
			if fo.bySymbol[tail].AddAll(fo.bySymbol[p.Head]) {
				changed = true
			}
		}
	}

	return fo
}
