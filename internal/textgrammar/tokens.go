package textgrammar

import (
	"strings"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/types"
)

// simpleToken is a minimal types.Token: a terminal name (used as its class
// id) and the literal text, with no real source-location tracking beyond a
// single synthetic "line" (this is a CLI convenience, not a lexer).
type simpleToken struct {
	class types.TokenClass
	text  string
	pos   int
}

func (t simpleToken) Class() types.TokenClass { return t.class }
func (t simpleToken) Lexeme() string          { return t.text }
func (t simpleToken) LinePos() int            { return t.pos }
func (t simpleToken) Line() int               { return 1 }

// SliceStream is a types.TokenStream backed by a fixed slice of tokens,
// terminated implicitly by TokenEndOfText once exhausted.
type SliceStream struct {
	toks []types.Token
	pos  int
	eof  types.Token
}

// TokenizeLine splits a whitespace-separated line of terminal names into a
// SliceStream, one token per word, each token's lexeme the word itself and
// its class id the lower-cased word. The literal word "EOF" is not included
// as a token;
// reaching the end of the line is what yields end-of-text.
func TokenizeLine(line string) *SliceStream {
	words := strings.Fields(line)
	toks := make([]types.Token, 0, len(words))
	for i, w := range words {
		if w == "EOF" {
			continue
		}
		toks = append(toks, simpleToken{class: types.MakeDefaultClass(w), text: w, pos: i + 1})
	}
	return &SliceStream{
		toks: toks,
		eof:  simpleToken{class: types.TokenEndOfText, text: "", pos: len(words) + 1},
	}
}

func (s *SliceStream) Next() types.Token {
	if s.pos >= len(s.toks) {
		return s.eof
	}
	t := s.toks[s.pos]
	s.pos++
	return t
}

func (s *SliceStream) Peek() types.Token {
	if s.pos >= len(s.toks) {
		return s.eof
	}
	return s.toks[s.pos]
}
