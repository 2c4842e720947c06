// Package textgrammar loads a grammar from a minimal line-oriented textual
// form: one production per line, "Head -> Sym1 Sym2 Sym3". This is not the
// grammar DSL's surface syntax (spec.md scopes that out entirely); it is
// just enough of a loader for the lalrgen CLI to build a Grammar from a
// file without requiring callers to write Go to do so.
package textgrammar

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
)

// Load reads productions from r and interns them into a new Grammar whose
// start symbol is the head of the first production. A symbol is treated as
// a non-terminal iff it appears as the head of some production; every other
// symbol is a terminal.
//
// Blank lines and lines beginning with "#" are ignored. Each remaining line
// must have the form "Head -> Sym1 Sym2 ...", with at least one body
// symbol.
func Load(r io.Reader) (*grammar.Grammar, error) {
	type rawRule struct {
		head string
		body []string
	}

	var rules []rawRule
	heads := map[string]bool{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "->", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: missing \"->\": %q", lineNo, line)
		}

		head := strings.TrimSpace(parts[0])
		if head == "" {
			return nil, fmt.Errorf("line %d: empty head", lineNo)
		}

		body := strings.Fields(parts[1])
		if len(body) == 0 {
			return nil, fmt.Errorf("line %d: empty production body (epsilon productions are not supported)", lineNo)
		}

		rules = append(rules, rawRule{head: head, body: body})
		heads[head] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("grammar is empty")
	}

	g := grammar.NewGrammar(rules[0].head)

	kindOf := func(name string) grammar.SymbolKind {
		if heads[name] {
			return grammar.NonTerminal
		}
		return grammar.Terminal
	}

	for _, r := range rules {
		head := g.InternSymbol(grammar.NonTerminal, r.head)
		body := make([]grammar.SymbolId, len(r.body))
		for i, sym := range r.body {
			kind := kindOf(sym)
			name := sym
			if kind == grammar.Terminal {
				// terminal symbol names are matched against
				// types.TokenClass.ID(), which lower-cases by convention
				// (see types.simpleTokenClass); normalize here so a
				// terminal written "A" in the grammar file still resolves
				// against a token whose class id is "a".
				name = strings.ToLower(sym)
			}
			body[i] = g.InternSymbol(kind, name)
		}
		g.InternProduction(head, body, "", false, nil)
	}

	return g, nil
}
