package ictiobus

import (
	"strings"
	"testing"

	"github.com/MrTamalampudi/manodae/internal/textgrammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, grammarSrc string) *Parser {
	t.Helper()
	g, err := textgrammar.Load(strings.NewReader(grammarSrc))
	require.NoError(t, err)
	return Compile(g)
}

func parseLine(t *testing.T, p *Parser, line string) (accepted bool, errs []string, productionEnd []bool) {
	t.Helper()
	stream := textgrammar.TokenizeLine(line)
	result := p.Parse(stream, nil)
	for _, e := range result.Errors {
		errs = append(errs, e.Message)
		productionEnd = append(productionEnd, e.ProductionEnd)
	}
	return result.Accepted, errs, productionEnd
}

func Test_Scenarios(t *testing.T) {
	testCases := []struct {
		name        string
		grammar     string
		input       string
		wantAccept  bool
		wantErrSub  string
		wantProdEnd bool
	}{
		{
			name:       "S1 simple concatenation",
			grammar:    "Start -> A B C",
			input:      "A B C EOF",
			wantAccept: true,
		},
		{
			name:       "S2 right recursion, short alt",
			grammar:    "Start -> C C\nC -> c C\nC -> d",
			input:      "d d EOF",
			wantAccept: true,
		},
		{
			name:       "S3 right recursion, mixed alts",
			grammar:    "Start -> C C\nC -> c C\nC -> d",
			input:      "c d c d EOF",
			wantAccept: true,
		},
		{
			name:       "S4 missing middle symbol",
			grammar:    "Start -> A B C",
			input:      "A C EOF",
			wantAccept: false,
			wantErrSub: "b",
		},
		{
			name:        "S5 missing trailing symbol, error at EOF",
			grammar:     "Start -> A B C",
			input:       "A B EOF",
			wantAccept:  false,
			wantErrSub:  "c",
			wantProdEnd: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := compile(t, tc.grammar)
			require.Empty(t, p.Conflicts(), "grammar should be conflict-free")

			accepted, errs, productionEnd := parseLine(t, p, tc.input)
			assert.Equal(t, tc.wantAccept, accepted)

			if tc.wantAccept {
				assert.Empty(t, errs)
				return
			}

			require.Len(t, errs, 1)
			assert.Contains(t, strings.ToLower(errs[0]), tc.wantErrSub)
			assert.Equal(t, tc.wantProdEnd, productionEnd[0])
		})
	}
}

func Test_DanglingElseShiftReduceConflict(t *testing.T) {
	// S6: classic dangling-else grammar. The conflict on "e" between
	// shifting into the nested-else alternative and reducing the dangling
	// "S -> i E t S" must be reported, with shift winning so that
	// `i b t i b t a e a EOF` still parses to Accept.
	grammarSrc := strings.Join([]string{
		"S -> i E t S",
		"S -> i E t S e S",
		"S -> a",
		"E -> b",
	}, "\n")

	p := compile(t, grammarSrc)
	require.NotEmpty(t, p.Conflicts(), "dangling-else grammar must report a conflict")

	foundShiftReduce := false
	for _, c := range p.Conflicts() {
		if c.Kind.String() == "shift/reduce" {
			foundShiftReduce = true
		}
	}
	assert.True(t, foundShiftReduce)

	accepted, errs, _ := parseLine(t, p, "i b t i b t a e a EOF")
	assert.True(t, accepted, "errors: %v", errs)
}

func Test_Compile_IsDeterministicAcrossRuns(t *testing.T) {
	grammarSrc := "Start -> C C\nC -> c C\nC -> d"

	g1, err := textgrammar.Load(strings.NewReader(grammarSrc))
	require.NoError(t, err)
	g2, err := textgrammar.Load(strings.NewReader(grammarSrc))
	require.NoError(t, err)

	p1 := Compile(g1)
	p2 := Compile(g2)

	assert.Equal(t, p1.Automaton.Len(), p2.Automaton.Len())
	assert.Equal(t, len(p1.Conflicts()), len(p2.Conflicts()))
}
