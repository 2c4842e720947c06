// Package persist serializes a compiled parser's ACTION/GOTO tables for
// fast-startup reuse, and caches them keyed by a hash of the grammar they
// were built from. It mirrors the teacher's own generated-parser pattern
// (embed a binary blob, decode it at package init) but targets a runtime
// cache file instead of a compiled-in asset, since this module does not
// carry a DSL/codegen frontend of its own.
package persist

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"fmt"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/automaton"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/table"
)

// TableSnapshot is the portable form of a compiled parser's ACTION/GOTO
// tables: enough to reconstruct a table.Table and the shape of its
// automaton without rerunning CLOSURE/GOTO/LALR-merge, given a Grammar
// whose symbol/production interning reproduces the same ids (guaranteed by
// the determinism invariants of spec section 5, since the snapshot is only
// ever reused against the grammar it was hashed from).
type TableSnapshot struct {
	GrammarHash      string
	StateCount       uint32
	Actions          []actionEntry
	Gotos            []gotoEntry
	SingleCandidates []singleCandidateEntry
	Conflicts        int
}

type actionEntry struct {
	State      uint32
	Symbol     uint32
	Kind       int
	Target     uint32
	Production uint32
}

type gotoEntry struct {
	State  uint32
	Symbol uint32
	Target uint32
}

// singleCandidateEntry records, for a state whose non-closed kernel GOTO had
// exactly one item, the production of that item. Reconstructed into an
// automaton.SingleCandidate on Rebuild, so a cache hit still supports the
// parse driver's panic-mode single-candidate error message substitution.
type singleCandidateEntry struct {
	State      uint32
	Production uint32
}

// Snapshot captures a's states and t's ACTION/GOTO entries into a
// TableSnapshot hashed against g.
func Snapshot(g *grammar.Grammar, a *automaton.Automaton, t *table.Table) *TableSnapshot {
	snap := &TableSnapshot{
		GrammarHash: HashGrammar(g),
		StateCount:  uint32(a.Len()),
		Conflicts:   len(t.Conflicts),
	}

	for i := 0; i < a.Len(); i++ {
		s := a.State(automaton.StateId(i))
		for _, it := range s.Items.Items() {
			nextSym, has := it.NextSymbol(g)
			if !has {
				continue
			}
			target, ok := s.Outgoing[nextSym]
			if !ok {
				continue
			}
			if g.Symbols.IsTerminal(nextSym) {
				if final, ok := t.Action(s.Index, nextSym); !ok || final.Kind != table.Shift {
					continue
				}
				snap.Actions = append(snap.Actions, actionEntry{
					State: uint32(s.Index), Symbol: uint32(nextSym),
					Kind: int(table.Shift), Target: uint32(target),
				})
			} else {
				snap.Gotos = append(snap.Gotos, gotoEntry{
					State: uint32(s.Index), Symbol: uint32(nextSym), Target: uint32(target),
				})
			}
		}

		if s.TransitionItems != nil && s.TransitionItems.Len() == 1 {
			prod := s.TransitionItems.Items()[0].Production
			if g.Production(prod).HasError {
				snap.SingleCandidates = append(snap.SingleCandidates, singleCandidateEntry{
					State: uint32(s.Index), Production: uint32(prod),
				})
			}
		}
	}

	// reduce/accept entries come from each state's reduce items, since they
	// don't derive from an Outgoing edge the way shift/goto do. Shift, reduce
	// and accept entries are all kept only where they match t's final entry
	// for that cell, so a conflict resolved in t rebuilds the same way.
	for i := 0; i < a.Len(); i++ {
		s := a.State(automaton.StateId(i))
		for _, it := range s.Items.Items() {
			if _, has := it.NextSymbol(g); has {
				continue
			}
			if it.IsAugmented() {
				if final, ok := t.Action(s.Index, grammar.EOF); !ok || final.Kind != table.Accept {
					continue
				}
				snap.Actions = append(snap.Actions, actionEntry{
					State: uint32(s.Index), Symbol: uint32(grammar.EOF), Kind: int(table.Accept),
				})
				continue
			}
			for _, la := range it.Lookaheads.Elements() {
				reduce := table.Action{Kind: table.Reduce, Production: it.Production}
				if final, ok := t.Action(s.Index, la); !ok || !final.Equal(reduce) {
					continue
				}
				snap.Actions = append(snap.Actions, actionEntry{
					State: uint32(s.Index), Symbol: uint32(la),
					Kind: int(table.Reduce), Production: uint32(it.Production),
				})
			}
		}
	}

	return snap
}

// Rebuild reconstructs an *automaton.Automaton and *table.Table directly
// from s, skipping CLOSURE/GOTO/LALR-merge/table assembly entirely. Valid
// only against the grammar s.GrammarHash was computed from (the caller is
// expected to have already checked HashGrammar(g) == s.GrammarHash; Rebuild
// itself does not re-check it, since a Cache is keyed by that hash and a
// Lookup miss never reaches here).
func (s *TableSnapshot) Rebuild(g *grammar.Grammar) (*automaton.Automaton, *table.Table) {
	actions := make([]table.ActionEntry, len(s.Actions))
	for i, e := range s.Actions {
		actions[i] = table.ActionEntry{
			State:  automaton.StateId(e.State),
			Symbol: grammar.SymbolId(e.Symbol),
			Action: table.Action{
				Kind:       table.ActionKind(e.Kind),
				Target:     automaton.StateId(e.Target),
				Production: grammar.ProductionId(e.Production),
			},
		}
	}

	gotos := make([]table.GotoEntry, len(s.Gotos))
	for i, e := range s.Gotos {
		gotos[i] = table.GotoEntry{
			State:  automaton.StateId(e.State),
			Symbol: grammar.SymbolId(e.Symbol),
			Target: automaton.StateId(e.Target),
		}
	}

	candidates := make([]automaton.SingleCandidate, len(s.SingleCandidates))
	for i, e := range s.SingleCandidates {
		candidates[i] = automaton.SingleCandidate{
			State:      automaton.StateId(e.State),
			Production: grammar.ProductionId(e.Production),
		}
	}

	a := automaton.FromSnapshot(int(s.StateCount), candidates)
	t := table.FromSnapshot(actions, gotos)
	return a, t
}

// MarshalBinary implements encoding.BinaryMarshaler via gob, the format
// rezi.EncBinary wraps for on-disk/in-DB storage.
func (s *TableSnapshot) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encode table snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the counterpart
// rezi.DecBinary calls into.
func (s *TableSnapshot) UnmarshalBinary(data []byte) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(s); err != nil {
		return fmt.Errorf("decode table snapshot: %w", err)
	}
	return nil
}

// HashGrammar returns a stable digest of g's productions (head and body
// symbol names, in interning order), used as the cache key a snapshot is
// valid against. Hashing the grammar is explicitly out of the core's scope
// (spec.md section 1 lists it as an external collaborator); this is that
// collaborator.
func HashGrammar(g *grammar.Grammar) string {
	h := sha256.New()
	for _, p := range g.Productions() {
		fmt.Fprintf(h, "%s ->", g.Symbols.Lookup(p.Head).Name)
		for _, sym := range p.Body {
			fmt.Fprintf(h, " %s", g.Symbols.Lookup(sym).Name)
		}
		fmt.Fprint(h, "\n")
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
