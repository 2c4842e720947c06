package util

import "strings"

// MakeTextList gives a nice list of things based on their display name, joined
// with "and" before the final item.
func MakeTextList(items []string) string {
	return makeTextList(items, "and")
}

// MakeTextListOr is the same as MakeTextList but joins the final item with
// "or" instead of "and". Used for building expected-input diagnostics, where
// the items are alternatives rather than a conjunction.
func MakeTextListOr(items []string) string {
	return makeTextList(items, "or")
}

func makeTextList(items []string, conj string) string {
	if len(items) < 1 {
		return ""
	}

	if len(items) == 1 {
		return items[0]
	}
	if len(items) == 2 {
		return items[0] + " " + conj + " " + items[1]
	}

	// more than two: commas between the leading items, no comma before conj
	last := len(items) - 1
	return strings.Join(items[:last], ", ") + " " + conj + " " + items[last]
}

// ArticleFor returns "a" or "an" depending on whether s begins with a sound
// that takes "an". If capital is true, the article is capitalized.
func ArticleFor(s string, capital bool) string {
	article := "a"
	if len(s) > 0 {
		switch s[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			article = "an"
		}
	}
	if capital {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}

// Stack is a simple LIFO stack of items of type E. The zero value is an empty
// stack ready to use.
type Stack[E any] struct {
	Of []E
}

// Push places v on top of the stack.
func (s *Stack[E]) Push(v E) {
	s.Of = append(s.Of, v)
}

// Pop removes and returns the item on top of the stack. Panics if the stack is
// empty; callers are expected to check Empty() or Len() first when the grammar
// doesn't already guarantee enough items are present.
func (s *Stack[E]) Pop() E {
	top := s.Of[len(s.Of)-1]
	s.Of = s.Of[:len(s.Of)-1]
	return top
}

// Peek returns the item on top of the stack without removing it. Panics if
// the stack is empty.
func (s *Stack[E]) Peek() E {
	return s.Of[len(s.Of)-1]
}

// Len returns the number of items on the stack.
func (s *Stack[E]) Len() int {
	return len(s.Of)
}

// Empty returns whether the stack has no items.
func (s *Stack[E]) Empty() bool {
	return len(s.Of) == 0
}

// OrderedKeys returns the keys of m sorted by their natural ordering, for
// making map iteration deterministic. Nothing else in this module calls it.
func OrderedKeys[K Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortSlice(keys)
	return keys
}

// Ordered is the set of types usable with OrderedKeys and other sorting
// helpers in this package.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

func sortSlice[T Ordered](s []T) {
	// insertion sort; the key slices this is used on (symbol/state/production
	// ids) are small enough that an O(n^2) sort is not worth pulling in
	// sort.Slice's reflection overhead for.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
