package automaton

import "github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"

// MergeLALR collapses the canonical LR(1) collection a into an LALR(1)
// automaton: states with identical cores (ignoring lookaheads) are merged
// into one, with the merged state's items carrying the union of the
// lookaheads of all the states in its group. This never changes which
// states are reachable from which on which symbol, since GOTO targets are
// determined by core alone; only the lookaheads attached to each state's
// items, and hence which reductions it offers, can change.
//
// Each group's representative is the member with the lowest original state
// id, so state 0 (the canonical collection's start state) is always its own
// representative and therefore remains state 0 after merging. States are
// renumbered contiguously in order of first appearance of their
// representative among a's original states.
func (a *Automaton) MergeLALR() *Automaton {
	groupOf := map[string][]StateId{}
	groupOrder := make([]string, 0, a.Len())

	for i := 0; i < a.Len(); i++ {
		key := a.State(StateId(i)).Items.CoreKey()
		if _, seen := groupOf[key]; !seen {
			groupOrder = append(groupOrder, key)
		}
		groupOf[key] = append(groupOf[key], StateId(i))
	}

	// representative[key] = lowest original id in that group; remap[old id]
	// = new, contiguous id of the merged state it belongs to.
	representative := make(map[string]StateId, len(groupOrder))
	for _, key := range groupOrder {
		representative[key] = groupOf[key][0]
	}

	newID := make(map[StateId]StateId, a.Len())
	merged := newAutomaton()

	for _, key := range groupOrder {
		members := groupOf[key]
		items := grammar.NewItemSet()
		for _, m := range members {
			for _, it := range a.State(m).Items.Items() {
				items.Add(it)
			}
		}

		rep := a.State(representative[key])
		ns := &State{
			Items:            items,
			TransitionItems:  rep.TransitionItems,
			TransitionSymbol: rep.TransitionSymbol,
			Outgoing:         map[grammar.SymbolId]StateId{},
		}
		merged.add(ns)

		for _, m := range members {
			newID[m] = ns.Index
		}
	}

	// second pass: now that every old id maps to its merged state's new id,
	// retarget every merged state's outgoing edges. Groups agree on their
	// outgoing edges up to relabeling, since GOTO targets only ever depend
	// on item cores, so any one member's edges (the representative's)
	// suffice.
	for _, key := range groupOrder {
		rep := a.State(representative[key])
		ns := merged.State(newID[representative[key]])
		for sym, target := range rep.Outgoing {
			ns.Outgoing[sym] = newID[target]
		}
	}

	return merged
}
