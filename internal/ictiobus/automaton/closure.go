package automaton

import (
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/MrTamalampudi/manodae/internal/util"
)

// closureEngine holds the memoization caches used by a single automaton
// build. Per spec 4.5, a cache keyed by an input item yields the items it
// contributes to its closure, and a cache keyed by a pre-closure item set
// yields the post-closure set; both are valid only within one build.
type closureEngine struct {
	g *grammar.Grammar

	byItem    map[itemKey][]grammar.Item
	bySetCore map[string]*grammar.ItemSet
}

// itemKey is the cache key for a single item: its core plus its lookahead
// set (closure of an item depends on its lookaheads when the non-terminal
// after its cursor is the last symbol of its body).
type itemKey struct {
	core grammar.ItemCore
	las  string
}

func keyForItem(it grammar.Item) itemKey {
	las := ""
	for i, l := range it.Lookaheads.Elements() {
		if i > 0 {
			las += ","
		}
		las += string(rune(l))
	}
	return itemKey{core: it.Core(), las: las}
}

func newClosureEngine(g *grammar.Grammar) *closureEngine {
	return &closureEngine{g: g, byItem: map[itemKey][]grammar.Item{}, bySetCore: map[string]*grammar.ItemSet{}}
}

// closure computes CLOSURE(I): repeatedly, for every item [A -> alpha . B
// beta, a] with B a non-terminal, add [B -> . gamma, lookaheads] for every
// production B -> gamma, where lookaheads is FIRST(beta's head) if beta is
// non-empty, else the item's own lookaheads. Iterates to a fixed point, then
// merges cores.
func (ce *closureEngine) closure(i *grammar.ItemSet) *grammar.ItemSet {
	// keyed by full LR(1) identity, not core alone: two kernels with the same
	// cores but different lookaheads can close to different item sets, and
	// conflating them here would undo the canonical-collection/LALR-merge
	// separation the automaton builder depends on.
	setKey := i.FullKey()
	if cached, ok := ce.bySetCore[setKey]; ok {
		return cached
	}

	result := i.Copy()

	// worklist over items already in the set; growing result.Items() as we
	// go is safe because ItemSet.Add is keyed by core, so re-adding an item
	// already seen only unions its lookaheads. An item is tracked by core
	// plus lookaheads, so one whose lookaheads grew is expanded again.
	processed := map[itemKey]bool{}
	changed := true
	for changed {
		changed = false
		for _, it := range result.Items() {
			key := keyForItem(it)
			if processed[key] {
				continue
			}

			added := ce.expand(it)
			for _, newItem := range added {
				if result.Add(newItem) {
					changed = true
				}
			}
			processed[key] = true
		}
	}

	ce.bySetCore[setKey] = result
	return result
}

// expand returns the items that a single item [A -> alpha . B beta, a]
// contributes to its closure: one item per production of B, memoized by
// item (core + lookaheads).
func (ce *closureEngine) expand(it grammar.Item) []grammar.Item {
	key := keyForItem(it)
	if cached, ok := ce.byItem[key]; ok {
		return cached
	}

	var added []grammar.Item

	nextSym, ok := it.NextSymbol(ce.g)
	if ok && !ce.g.Symbols.IsTerminal(nextSym) {
		// copied so the memoized items keep the lookaheads they were
		// computed for, even if the source item's set grows later.
		lookaheads := ce.firstOfTail(it).Copy()

		for _, pid := range ce.g.ProductionsOf(nextSym) {
			added = append(added, grammar.Item{
				Production: pid,
				Cursor:     0,
				Lookaheads: lookaheads,
			})
		}
	}

	ce.byItem[key] = added
	return added
}

// firstOfTail computes the lookahead set to propagate to the productions of
// the symbol right after the dot: FIRST of the symbol after *that* one (beta's
// head) if there is one, else the item's own lookaheads (beta is empty).
func (ce *closureEngine) firstOfTail(it grammar.Item) *util.OrderedSet[grammar.SymbolId] {
	body := ce.g.Production(it.Production).Body
	betaStart := int(it.Cursor) + 1
	if betaStart < len(body) {
		return ce.g.First(body[betaStart])
	}
	return it.Lookaheads
}
