package grammar

import (
	"fmt"
	"strings"

	"github.com/MrTamalampudi/manodae/internal/util"
)

// ItemCore is the part of an Item that LALR state-merging compares: the
// production and how far into its body the cursor has advanced. Two items
// with the same core differ only in their lookahead sets.
type ItemCore struct {
	Production ProductionId
	Cursor     uint8
}

// Item is an LR(1) item: a production, a cursor position within its body,
// and a set of lookahead terminals. Lookaheads are compared and merged as a
// set; cursor and production identify the core.
type Item struct {
	Production ProductionId
	Cursor     uint8
	Lookaheads *util.OrderedSet[SymbolId]
}

// Core returns the (production, cursor) pair identifying this item's core,
// ignoring its lookaheads.
func (it Item) Core() ItemCore {
	return ItemCore{Production: it.Production, Cursor: it.Cursor}
}

// NextSymbol returns the symbol immediately after the cursor in the item's
// production body, or false if the cursor is at the end (the item is a
// reduce item).
func (it Item) NextSymbol(g *Grammar) (SymbolId, bool) {
	body := g.Production(it.Production).Body
	if int(it.Cursor) >= len(body) {
		return 0, false
	}
	return body[it.Cursor], true
}

// AdvanceCursor returns a copy of it with the cursor moved one position to
// the right. Panics if the cursor is already at the end of the production
// body; callers must check NextSymbol first.
func (it Item) AdvanceCursor(g *Grammar) Item {
	body := g.Production(it.Production).Body
	if int(it.Cursor) >= len(body) {
		panic("grammar: AdvanceCursor called on an item already at end of production")
	}
	return Item{Production: it.Production, Cursor: it.Cursor + 1, Lookaheads: it.Lookaheads}
}

// IsAugmented reports whether this item is for the augmented production
// S' -> Start.
func (it Item) IsAugmented() bool {
	return it.Production == AugmentedProduction
}

// String renders the item using g's symbol names, e.g. "Start -> A . B, [c]".
func (it Item) String(g *Grammar) string {
	p := g.Production(it.Production)
	var sb strings.Builder
	sb.WriteString(g.Symbols.Lookup(p.Head).Name)
	sb.WriteString(" ->")
	for i, s := range p.Body {
		if i == int(it.Cursor) {
			sb.WriteString(" .")
		}
		sb.WriteRune(' ')
		sb.WriteString(g.Symbols.Lookup(s).Name)
	}
	if int(it.Cursor) == len(p.Body) {
		sb.WriteString(" .")
	}
	sb.WriteString(", ")
	las := make([]string, 0, it.Lookaheads.Len())
	for _, la := range it.Lookaheads.Elements() {
		las = append(las, g.Symbols.Lookup(la).Name)
	}
	sb.WriteString(fmt.Sprintf("%v", las))
	return sb.String()
}
