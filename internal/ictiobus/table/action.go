// Package table assembles ACTION and GOTO tables from an LALR(1) automaton,
// detecting and recording shift/reduce and reduce/reduce conflicts along the
// way instead of rejecting the grammar.
package table

import (
	"fmt"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/automaton"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
)

// ActionKind distinguishes the three shapes an ACTION table entry can take.
type ActionKind int

const (
	Shift ActionKind = iota
	Reduce
	Accept
)

// Action is one ACTION table entry: a Shift to a state, a Reduce by a
// production, or Accept. There is no explicit Error variant; a missing
// entry in the ACTION map for a given (state, terminal) pair is itself the
// error signal consulted by the parse driver.
type Action struct {
	Kind       ActionKind
	Target     automaton.StateId   // valid when Kind == Shift
	Production grammar.ProductionId // valid when Kind == Reduce
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.Target)
	case Reduce:
		return fmt.Sprintf("reduce %d", a.Production)
	case Accept:
		return "accept"
	default:
		return "?"
	}
}

// Equal reports whether a and o describe the same action.
func (a Action) Equal(o Action) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case Shift:
		return a.Target == o.Target
	case Reduce:
		return a.Production == o.Production
	default:
		return true
	}
}

// ConflictKind distinguishes the two ways an ACTION table write can clash
// with an existing entry.
type ConflictKind int

const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records a single ACTION table overwrite: the (state, terminal)
// cell, the action already present, and the action that replaced it. Under
// the "later rule wins" policy New is always the one left in the table.
type Conflict struct {
	Kind     ConflictKind
	State    automaton.StateId
	Symbol   grammar.SymbolId
	Existing Action
	New      Action
}

func (c Conflict) String(g *grammar.Grammar) string {
	return fmt.Sprintf("%s conflict in state %d on %s: %s vs %s (later wins)",
		c.Kind, c.State, g.Symbols.Lookup(c.Symbol).Name, c.Existing, c.New)
}
