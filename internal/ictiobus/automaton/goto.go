package automaton

import "github.com/MrTamalampudi/manodae/internal/ictiobus/grammar"

// gotoSet computes GOTO(I, X): every item [A -> alpha . X beta, a] in I has
// its cursor advanced, forming kernel set J. If J is empty there is no
// transition on X. Otherwise the closure of J is returned, along with J
// itself (the un-closed kernel, retained by the caller as the resulting
// state's TransitionItems).
func (ce *closureEngine) gotoSet(i *grammar.ItemSet, x grammar.SymbolId) (closed *grammar.ItemSet, kernel *grammar.ItemSet, ok bool) {
	kernel = grammar.NewItemSet()

	for _, it := range i.Items() {
		nextSym, has := it.NextSymbol(ce.g)
		if !has || nextSym != x {
			continue
		}
		kernel.Add(it.AdvanceCursor(ce.g))
	}

	if kernel.Len() == 0 {
		return nil, nil, false
	}

	return ce.closure(kernel), kernel, true
}
