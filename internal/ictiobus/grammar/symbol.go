package grammar

import "github.com/MrTamalampudi/manodae/internal/ictiobus/symtern"

// SymbolId is the compact identifier of an interned Symbol. Ids are assigned
// in insertion order by a SymbolTable and are never reused or invalidated.
type SymbolId symtern.ID

// Reserved symbol ids. Every SymbolTable interns these three symbols first,
// in this order, at construction, so these constants hold for any grammar.
const (
	// AugmentStart is the left-hand side of the injected augmented
	// production S' -> Start.
	AugmentStart SymbolId = 0

	// EOF is the end-of-input terminal.
	EOF SymbolId = 1

	// StartSymbol is the user's start nonterminal, reserved at construction
	// time so that it is always id 2 regardless of what the grammar author
	// chooses to call it.
	StartSymbol SymbolId = 2
)

// SymbolKind distinguishes terminals from non-terminals.
type SymbolKind int

const (
	Terminal SymbolKind = iota
	NonTerminal
)

func (k SymbolKind) String() string {
	if k == Terminal {
		return "TERMINAL"
	}
	return "NONTERMINAL"
}

// Symbol is a tagged grammar symbol: a terminal or non-terminal identified by
// a short name. Symbols are compared and interned by value, so two symbols
// with the same kind and name are the same symbol.
type Symbol struct {
	Kind SymbolKind
	Name string
}

func (s Symbol) String() string {
	return s.Name
}

// SymbolTable is a bidirectional id<->Symbol mapping that additionally
// partitions ids into an ordered list of terminals and an ordered list of
// non-terminals. Every id interned through a SymbolTable is in exactly one
// of those two lists.
type SymbolTable struct {
	interner     *symtern.Interner[Symbol]
	terminals    []SymbolId
	nonTerminals []SymbolId
}

// newSymbolTable creates a SymbolTable with the three reserved symbols
// already interned: AugmentStart (a synthesized non-terminal), EOF (a
// terminal), and the user's chosen start symbol name (a non-terminal).
func newSymbolTable(startName string) *SymbolTable {
	st := &SymbolTable{interner: symtern.New[Symbol]()}

	augID := st.intern(Symbol{Kind: NonTerminal, Name: "$accept"})
	eofID := st.intern(Symbol{Kind: Terminal, Name: "EOF"})
	startID := st.intern(Symbol{Kind: NonTerminal, Name: startName})

	if augID != AugmentStart || eofID != EOF || startID != StartSymbol {
		panic("symtern: reserved symbol ids did not come out in the expected order")
	}

	return st
}

// intern assigns the next id to sym (or returns its existing id) and records
// it in the appropriate terminals/non-terminals list the first time it is
// seen.
func (st *SymbolTable) intern(sym Symbol) SymbolId {
	before := st.interner.Len()
	id := SymbolId(st.interner.Intern(sym))
	if int(id) >= before {
		// newly inserted; file it under the correct partition
		if sym.Kind == Terminal {
			st.terminals = append(st.terminals, id)
		} else {
			st.nonTerminals = append(st.nonTerminals, id)
		}
	}
	return id
}

// InternSymbol interns a symbol of the given kind and name, returning its id.
// Idempotent: interning the same (kind, name) twice returns the same id.
func (st *SymbolTable) InternSymbol(kind SymbolKind, name string) SymbolId {
	return st.intern(Symbol{Kind: kind, Name: name})
}

// Lookup returns the Symbol interned under id. Total over every id ever
// handed out by this table.
func (st *SymbolTable) Lookup(id SymbolId) Symbol {
	return st.interner.Lookup(symtern.ID(id))
}

// ReverseLookup returns the id already assigned to sym, if any.
func (st *SymbolTable) ReverseLookup(sym Symbol) (SymbolId, bool) {
	id, ok := st.interner.ReverseLookup(sym)
	return SymbolId(id), ok
}

// IsTerminal reports whether id names a terminal symbol.
func (st *SymbolTable) IsTerminal(id SymbolId) bool {
	return st.Lookup(id).Kind == Terminal
}

// Terminals returns every interned terminal id, in interning order.
func (st *SymbolTable) Terminals() []SymbolId {
	return st.terminals
}

// NonTerminals returns every interned non-terminal id, in interning order.
func (st *SymbolTable) NonTerminals() []SymbolId {
	return st.nonTerminals
}

// GenerateUniqueTerminal returns a terminal name derived from base that is
// guaranteed not to already be interned in this table, by appending "#"
// until the name is free. Nothing else in this module calls it.
func (st *SymbolTable) GenerateUniqueTerminal(base string) string {
	name := base
	for {
		if _, ok := st.ReverseLookup(Symbol{Kind: Terminal, Name: name}); !ok {
			return name
		}
		name = name + "#"
	}
}
