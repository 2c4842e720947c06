// Package tabledump renders a compiled parser's ACTION/GOTO tables and
// per-state item listings as human-readable grids, for CLI/debug use. It is
// not part of the grammar-analysis core; spec.md lists "pretty-printing
// tables for debugging" as an external collaborator specified only at its
// interface with the core, and this package is that collaborator.
package tabledump

import (
	"fmt"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/automaton"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/table"
	"github.com/dekarrin/rosed"
)

// ActionGoto renders the ACTION and GOTO tables as one grid: one row per
// state, one column per terminal (ACTION) then per non-terminal (GOTO).
func ActionGoto(g *grammar.Grammar, a *automaton.Automaton, t *table.Table) string {
	terms := g.Symbols.Terminals()
	nonTerms := g.Symbols.NonTerminals()

	header := []string{"state"}
	for _, term := range terms {
		header = append(header, g.Symbols.Lookup(term).Name)
	}
	for _, nt := range nonTerms {
		header = append(header, g.Symbols.Lookup(nt).Name)
	}

	data := [][]string{header}

	for i := 0; i < a.Len(); i++ {
		sid := automaton.StateId(i)
		row := []string{fmt.Sprintf("%d", i)}

		for _, term := range terms {
			cell := ""
			if act, ok := t.Action(sid, term); ok {
				cell = act.String()
			}
			row = append(row, cell)
		}

		for _, nt := range nonTerms {
			cell := ""
			if target, ok := t.Goto(sid, nt); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}

		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 12, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// States renders every state's item set, one item per line, using the
// grammar's symbol names.
func States(g *grammar.Grammar, a *automaton.Automaton) string {
	var out string
	for i := 0; i < a.Len(); i++ {
		s := a.State(automaton.StateId(i))
		out += fmt.Sprintf("state %d:\n", i)
		for _, it := range s.Items.Items() {
			out += "  " + it.String(g) + "\n"
		}
	}
	return out
}

// Conflicts renders the conflicts recorded on t, one per line.
func Conflicts(g *grammar.Grammar, t *table.Table) string {
	var out string
	for _, c := range t.Conflicts {
		out += c.String(g) + "\n"
	}
	return out
}
