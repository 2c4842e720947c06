// Package ictiobus is a parser generator and runtime for LALR(1) grammars.
// Given a Grammar built from interned symbols and productions, Compile
// computes the canonical LR(1) collection, merges it into an LALR(1)
// automaton, and assembles ACTION/GOTO tables, reporting any shift/reduce or
// reduce/reduce conflicts it finds along the way rather than rejecting the
// grammar outright. The resulting Parser drives a shift/reduce loop over a
// token stream, invoking the reduction actions bound to productions and
// performing single-report panic-mode recovery on syntax errors.
//
// It's based off of the name for the buffalo fish due to the buffalo's
// relation with bison. Naturally, bison due to its popularity as a
// parser-generator tool.
package ictiobus

import (
	"github.com/MrTamalampudi/manodae/internal/ictiobus/automaton"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/icterrors"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/parse"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/table"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/types"
)

// Parser is a grammar compiled into an LALR(1) automaton and table, ready to
// drive parses. A Parser is immutable and safe to reuse; it does no locking
// of its own.
type Parser struct {
	Grammar   *grammar.Grammar
	Automaton *automaton.Automaton
	Table     *table.Table

	driver *parse.Driver
}

// Compile builds an LALR(1) Parser from g: the canonical LR(1) collection,
// its LALR(1) merge, and the ACTION/GOTO tables. It never fails outright;
// shift/reduce and reduce/reduce conflicts are recorded on the returned
// Parser's Table rather than raised as an error, per the "report, don't
// reject" policy. Callers that want to refuse ambiguous grammars should
// check Table.HasConflicts themselves.
func Compile(g *grammar.Grammar) *Parser {
	canonical := automaton.BuildCanonicalCollection(g)
	lalr := canonical.MergeLALR()
	tbl := table.Build(lalr, g)

	p := &Parser{Grammar: g, Automaton: lalr, Table: tbl}
	p.driver = parse.New(g, lalr, tbl)
	return p
}

// FromParts assembles a Parser from an already-computed automaton and
// table, skipping the CLOSURE/GOTO/LALR-merge/table-assembly Compile
// performs. Used to rehydrate a Parser from a persist.TableSnapshot cache
// hit; a is and t are trusted to already correspond to g (the caller's
// responsibility, since Parser itself has no way to re-derive that here).
func FromParts(g *grammar.Grammar, a *automaton.Automaton, t *table.Table) *Parser {
	p := &Parser{Grammar: g, Automaton: a, Table: t}
	p.driver = parse.New(g, a, t)
	return p
}

// Conflicts returns the shift/reduce and reduce/reduce conflicts recorded
// while assembling p's tables, in the order they were found.
func (p *Parser) Conflicts() []table.Conflict {
	return p.Table.Conflicts
}

// Parse runs the shift/reduce loop over tokens, applying productions'
// reduction actions against ast. See parse.Driver.Parse for the full
// contract.
func (p *Parser) Parse(tokens types.TokenStream, ast any) parse.Result {
	return p.driver.Parse(tokens, ast)
}

// NewGrammar creates an empty Grammar whose start symbol is startName. It is
// the entry point for building up a grammar via InternSymbol/InternProduction
// before handing it to Compile.
func NewGrammar(startName string) *grammar.Grammar {
	return grammar.NewGrammar(startName)
}

// ParseError is re-exported here so callers need not import icterrors
// directly for the common case of inspecting a Parser's diagnostics.
type ParseError = icterrors.ParseError
