// Package automaton builds the canonical LR(1) collection of item sets for a
// grammar and merges it into an LALR(1) automaton: CLOSURE and GOTO (memoized
// per build), the items() collection-construction loop, and core-merging.
package automaton

import (
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/MrTamalampudi/manodae/internal/util"
)

// StateId is the compact identifier of an automaton State. Ids are assigned
// by insertion order during collection construction, and reassigned
// (contiguously, still by insertion order) after LALR merging.
type StateId uint32

// State is one state of the automaton: its (closed) item set, the grammar
// symbol that was shifted/goto'd to reach it, and its outgoing transitions.
// TransitionItems holds the non-closed kernel GOTO produced when this state
// was created; error recovery consults it to find a more specific
// diagnostic message when exactly one candidate production applies.
type State struct {
	Index            StateId
	Items            *grammar.ItemSet
	TransitionItems  *grammar.ItemSet
	TransitionSymbol grammar.SymbolId
	Outgoing         map[grammar.SymbolId]StateId
}

// Automaton is an ordered collection of States, indexed both by id and by a
// full LR(1)-identity key (core plus lookaheads) used to detect when GOTO
// produced a state the canonical collection already contains.
type Automaton struct {
	States []*State

	byCore map[string]StateId
}

func newAutomaton() *Automaton {
	return &Automaton{byCore: map[string]StateId{}}
}

// Initial returns the id of the automaton's start state, which is always 0:
// it is the first state appended during collection construction (before and
// after LALR merging alike).
func (a *Automaton) Initial() StateId {
	return 0
}

// State returns the state with the given id.
func (a *Automaton) State(id StateId) *State {
	return a.States[id]
}

// Len returns the number of states in the automaton.
func (a *Automaton) Len() int {
	return len(a.States)
}

func (a *Automaton) add(s *State) {
	s.Index = StateId(len(a.States))
	a.States = append(a.States, s)
	a.byCore[s.Items.FullKey()] = s.Index
}

// findByFullKey looks up a state by full LR(1) identity (core and
// lookaheads), used while building the canonical collection: a state with
// the same core but different lookaheads is a distinct canonical state.
func (a *Automaton) findByFullKey(items *grammar.ItemSet) (StateId, bool) {
	id, ok := a.byCore[items.FullKey()]
	return id, ok
}

// SingleCandidate names the lone production of a state's TransitionItems,
// for states where the non-closed kernel GOTO had exactly one item. Recorded
// by a cache snapshot so panic-mode recovery's "substitute the one candidate
// production's error message" step still works against a reconstructed
// automaton, without needing to preserve every state's full item set.
type SingleCandidate struct {
	State      StateId
	Production grammar.ProductionId
}

// FromSnapshot rebuilds the state topology of an automaton from a cache
// snapshot: stateCount empty states plus, for the states named in
// singleCandidates, a synthetic one-item TransitionItems set carrying just
// the production id parse.Driver's recovery step needs. Outgoing edges and
// full item sets are not reconstructed (nothing downstream of a cache hit
// needs CLOSURE/GOTO's inputs again; table.FromSnapshot supplies ACTION/GOTO
// directly).
func FromSnapshot(stateCount int, singleCandidates []SingleCandidate) *Automaton {
	a := newAutomaton()
	for i := 0; i < stateCount; i++ {
		a.States = append(a.States, &State{Index: StateId(i), Outgoing: map[grammar.SymbolId]StateId{}})
	}
	for _, sc := range singleCandidates {
		if int(sc.State) >= len(a.States) {
			continue
		}
		items := grammar.NewItemSet()
		items.Add(grammar.Item{Production: sc.Production, Cursor: 0, Lookaheads: util.NewOrderedSet[grammar.SymbolId]()})
		a.States[sc.State].TransitionItems = items
	}
	return a
}
