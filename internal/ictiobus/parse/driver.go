// Package parse is the runtime shift/reduce stack machine (C8): it consults
// the ACTION/GOTO tables assembled by package table, invokes the reduction
// closures bound to productions, and performs single-report panic-mode error
// recovery when a syntax error is found.
package parse

import (
	"fmt"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/automaton"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/icterrors"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/table"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/types"
	"github.com/MrTamalampudi/manodae/internal/util"
)

// Driver runs the shift/reduce loop against a grammar and its assembled
// tables. A Driver is reusable across Parse calls; none of its fields are
// mutated by a parse beyond what's local to that call.
type Driver struct {
	Grammar   *grammar.Grammar
	Automaton *automaton.Automaton
	Table     *table.Table
}

// New creates a Driver over the given grammar, automaton, and table.
func New(g *grammar.Grammar, a *automaton.Automaton, t *table.Table) *Driver {
	return &Driver{Grammar: g, Automaton: a, Table: t}
}

// Result is the outcome of a single Parse call.
type Result struct {
	// Accepted reports whether the parse reached Accept. False whenever
	// Errors is non-empty.
	Accepted bool

	// Errors holds the parse-time diagnostics collected over the run: at
	// most one from the driver's own recovery (a missing ACTION entry is
	// always fatal to the current parse) plus any a reduction action chose
	// to append itself.
	Errors []icterrors.ParseError
}

// Parse runs the shift/reduce loop over tokens against ast, invoking the
// reduction action bound to each production as it is reduced. Per spec
// section 4.8, a missing ACTION entry is reported once via panic-mode
// recovery and terminates the parse; everything else an action wants to
// report it appends to Result.Errors itself.
func (d *Driver) Parse(tokens types.TokenStream, ast any) Result {
	stateStack := util.Stack[automaton.StateId]{}
	stateStack.Push(d.Table0Initial())

	tokenStack := &util.Stack[types.Token]{}
	translatorStack := &util.Stack[any]{}
	var errs []icterrors.ParseError

	for {
		top := stateStack.Peek()

		current := tokens.Peek()
		term, ok := d.resolve(current)
		if !ok {
			wrapped := fmt.Errorf("token %q: %w", current.Lexeme(), icterrors.ErrUnresolvedToken)
			errs = append(errs, icterrors.ParseError{
				Token:         current,
				Message:       wrapped.Error(),
				ProductionEnd: current.Class().Equal(types.TokenEndOfText),
				Err:           icterrors.ErrUnresolvedToken,
			})
			return Result{Errors: errs}
		}

		act, ok := d.Table.Action(top, term)
		if !ok {
			errs = append(errs, d.recover(top, current, term))
			return Result{Errors: errs}
		}

		switch act.Kind {
		case table.Shift:
			stateStack.Push(act.Target)
			tokenStack.Push(tokens.Next())

		case table.Reduce:
			prod := d.Grammar.Production(act.Production)
			if prod.Action != nil {
				prod.Action(ast, tokenStack, translatorStack, &errs)
			}
			for i := 0; i < len(prod.Body); i++ {
				stateStack.Pop()
			}
			newTop := stateStack.Peek()
			target, ok := d.Table.Goto(newTop, prod.Head)
			if !ok {
				wrapped := fmt.Errorf("no GOTO entry for state %d on %s: %w", newTop, d.Grammar.Symbols.Lookup(prod.Head).Name, icterrors.ErrInternalInvariant)
				errs = append(errs, icterrors.ParseError{
					Message:       wrapped.Error(),
					ProductionEnd: current == nil || current.Class().Equal(types.TokenEndOfText),
					Err:           icterrors.ErrInternalInvariant,
				})
				return Result{Errors: errs}
			}
			stateStack.Push(target)

		case table.Accept:
			return Result{Accepted: len(errs) == 0, Errors: errs}
		}
	}
}

// Table0Initial returns the automaton's start state id. It is always 0, but
// named for symmetry with the rest of the driver's table accessors.
func (d *Driver) Table0Initial() automaton.StateId {
	return 0
}

// resolve maps an input token to the terminal SymbolId of the grammar, by
// matching the token's class id against an interned terminal's name. Returns
// false if the token's class does not correspond to any terminal of the
// grammar.
func (d *Driver) resolve(tok types.Token) (grammar.SymbolId, bool) {
	if tok == nil {
		return d.eofSymbol()
	}
	if tok.Class().Equal(types.TokenEndOfText) {
		return grammar.EOF, true
	}
	return d.Grammar.Symbols.ReverseLookup(grammar.Symbol{Kind: grammar.Terminal, Name: tok.Class().ID()})
}

func (d *Driver) eofSymbol() (grammar.SymbolId, bool) {
	return grammar.EOF, true
}

// recover builds the single ParseError reported for a missing ACTION entry,
// per spec section 4.8's panic-mode recovery: list the terminals ACTION[top]
// does define, unless the automaton state was reached by a transition with
// exactly one candidate production carrying a user-supplied error message, in
// which case that message is used instead.
func (d *Driver) recover(top automaton.StateId, tok types.Token, badTerm grammar.SymbolId) icterrors.ParseError {
	message := d.expectedMessage(top)

	if custom, ok := d.singleCandidateErrorMessage(top); ok {
		message = custom
	}

	return icterrors.ParseError{
		Token:         tok,
		Message:       message,
		ProductionEnd: tok == nil || tok.Class().Equal(types.TokenEndOfText),
	}
}

// singleCandidateErrorMessage implements step 2 of panic-mode recovery: if
// the state's transition_items (the un-closed kernel GOTO produced when the
// state was created) contains exactly one item, and that item's production
// carries a user-supplied error message, that message should be substituted
// for the generic "expected ..." diagnostic.
func (d *Driver) singleCandidateErrorMessage(top automaton.StateId) (string, bool) {
	s := d.Automaton.State(top)
	if s.TransitionItems == nil || s.TransitionItems.Len() != 1 {
		return "", false
	}
	it := s.TransitionItems.Items()[0]
	prod := d.Grammar.Production(it.Production)
	if !prod.HasError {
		return "", false
	}
	return prod.ErrorMessage, true
}

func (d *Driver) expectedMessage(top automaton.StateId) string {
	expected := d.Table.DefinedTerminals(top, d.Grammar)
	names := make([]string, 0, len(expected))
	for _, t := range expected {
		names = append(names, d.Grammar.Symbols.Lookup(t).Name)
	}
	return icterrors.TitleFirstWord(fmt.Sprintf("expected %s", util.MakeTextListOr(names)))
}
