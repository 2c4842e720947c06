package grammar

import (
	"strings"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/icterrors"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/symtern"
	"github.com/MrTamalampudi/manodae/internal/ictiobus/types"
	"github.com/MrTamalampudi/manodae/internal/util"
)

// ProductionId is the compact identifier of an interned Production. Id 0 is
// always the augmented production injected by NewGrammar.
type ProductionId symtern.ID

// AugmentedProduction is the id of the production S' -> Start injected by
// NewGrammar. It is always id 0.
const AugmentedProduction ProductionId = 0

// ActionFunc is a reduction action bound to a production. It is invoked by
// the parse driver every time its production is reduced, and is the sole
// side-effect channel available to grammar authors: it may read and write
// the caller-supplied AST value and may append diagnostics to errs.
//
// tokens holds every token shifted so far that hasn't yet been consumed by
// an action; translator holds the values built up by prior reductions. An
// action is responsible for popping exactly as many entries from each as its
// own production's body calls for and for pushing its own result onto
// translator before returning.
type ActionFunc func(ast any, tokens *util.Stack[types.Token], translator *util.Stack[any], errs *[]icterrors.ParseError)

// Production is one rule of a grammar: a head symbol, an ordered body of
// symbols, an optional grammar-author-supplied error message used in place
// of the generic "expected ..." diagnostic, and an optional reduction
// action.
type Production struct {
	Index        ProductionId
	Head         SymbolId
	Body         []SymbolId
	ErrorMessage string
	HasError     bool
	Action       ActionFunc
}

// Equal reports whether two productions are identical for grammar-analysis
// purposes. Per the interning contract, the bound Action closure does not
// participate in equality.
func (p Production) Equal(o Production) bool {
	if p.Index != o.Index || p.Head != o.Head || p.HasError != o.HasError || p.ErrorMessage != o.ErrorMessage {
		return false
	}
	if len(p.Body) != len(o.Body) {
		return false
	}
	for i := range p.Body {
		if p.Body[i] != o.Body[i] {
			return false
		}
	}
	return true
}

// String renders the production using the symbol names from g, e.g.
// "Start -> A B C".
func (p Production) String(g *Grammar) string {
	var sb strings.Builder
	sb.WriteString(g.Symbols.Lookup(p.Head).Name)
	sb.WriteString(" ->")
	for _, s := range p.Body {
		sb.WriteRune(' ')
		sb.WriteString(g.Symbols.Lookup(s).Name)
	}
	return sb.String()
}
