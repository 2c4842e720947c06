package grammar

import "sort"

// ItemSet is an ordered sequence of items with the invariant that no two
// items share a core; adding an item whose core already exists merges its
// lookaheads into the existing item's instead of appending a duplicate.
type ItemSet struct {
	items   []Item
	indexOf map[ItemCore]int
}

// NewItemSet creates an empty ItemSet.
func NewItemSet() *ItemSet {
	return &ItemSet{indexOf: map[ItemCore]int{}}
}

// Add merges it into the set: if an item with the same core is already
// present, it's lookaheads are unioned into the existing entry (preserving
// first-appearance order); otherwise it is appended. Returns whether the set
// changed (a new item was added, or lookaheads were added to an existing
// one).
func (is *ItemSet) Add(it Item) bool {
	core := it.Core()
	if idx, ok := is.indexOf[core]; ok {
		existing := is.items[idx]
		if existing.Lookaheads == nil {
			existing.Lookaheads = it.Lookaheads.Copy()
			is.items[idx] = existing
			return true
		}
		changed := existing.Lookaheads.AddAll(it.Lookaheads)
		return changed
	}

	is.indexOf[core] = len(is.items)
	it.Lookaheads = it.Lookaheads.Copy()
	is.items = append(is.items, it)
	return true
}

// Items returns the set's items in insertion order. The returned slice must
// not be mutated by the caller.
func (is *ItemSet) Items() []Item {
	return is.items
}

// Len returns the number of (core-distinct) items in the set.
func (is *ItemSet) Len() int {
	return len(is.items)
}

// Get returns the item with the given core and whether it was found.
func (is *ItemSet) Get(core ItemCore) (Item, bool) {
	idx, ok := is.indexOf[core]
	if !ok {
		return Item{}, false
	}
	return is.items[idx], true
}

// Cores returns every core in the set, in insertion order.
func (is *ItemSet) Cores() []ItemCore {
	cores := make([]ItemCore, len(is.items))
	for i, it := range is.items {
		cores[i] = it.Core()
	}
	return cores
}

// CoreKey returns a canonical string encoding the set's cores, independent of
// insertion order. Two item sets with the same (production, cursor) pairs,
// regardless of order or lookaheads, produce the same CoreKey; this is what
// LALR state-equality (and hence core-merging) is checked against.
func (is *ItemSet) CoreKey() string {
	cores := is.Cores()
	sort.Slice(cores, func(i, j int) bool {
		if cores[i].Production != cores[j].Production {
			return cores[i].Production < cores[j].Production
		}
		return cores[i].Cursor < cores[j].Cursor
	})

	buf := make([]byte, 0, len(cores)*5)
	for _, c := range cores {
		p := uint32(c.Production)
		buf = append(buf, byte(p>>24), byte(p>>16), byte(p>>8), byte(p), c.Cursor)
	}
	return string(buf)
}

// FullKey returns a canonical string encoding both the set's cores and their
// lookaheads, independent of insertion order. Two item sets produce the same
// FullKey only if they are identical as LR(1) item sets; this is the identity
// used while building the canonical (pre-merge) collection, where a state
// with the same core but different lookaheads than an existing one must
// still be treated as a distinct state.
func (is *ItemSet) FullKey() string {
	cores := is.Cores()
	sort.Slice(cores, func(i, j int) bool {
		if cores[i].Production != cores[j].Production {
			return cores[i].Production < cores[j].Production
		}
		return cores[i].Cursor < cores[j].Cursor
	})

	buf := make([]byte, 0, len(cores)*8)
	for _, c := range cores {
		p := uint32(c.Production)
		buf = append(buf, byte(p>>24), byte(p>>16), byte(p>>8), byte(p), c.Cursor)

		it, _ := is.Get(c)
		las := append([]SymbolId(nil), it.Lookaheads.Elements()...)
		sort.Slice(las, func(i, j int) bool { return las[i] < las[j] })
		buf = append(buf, '|')
		for _, la := range las {
			l := uint32(la)
			buf = append(buf, byte(l>>24), byte(l>>16), byte(l>>8), byte(l))
		}
		buf = append(buf, ';')
	}
	return string(buf)
}

// CoreEqual reports whether is and other contain exactly the same
// (production, cursor) cores, ignoring lookaheads and ordering. This is the
// "core equality" used for LALR state merging.
func (is *ItemSet) CoreEqual(other *ItemSet) bool {
	return is.CoreKey() == other.CoreKey()
}

// Copy returns a deep copy of the item set.
func (is *ItemSet) Copy() *ItemSet {
	cp := NewItemSet()
	for _, it := range is.items {
		cp.Add(it)
	}
	return cp
}
