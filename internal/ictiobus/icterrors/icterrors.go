// Package icterrors holds the error types shared across the grammar,
// automaton, table, and parse packages.
//
// Two very different kinds of failure are represented here. A ParseError is
// an ordinary, expected outcome of running the parser on bad input; it is
// collected and returned to the caller, never panicked. The sentinel errors
// below (ErrUnresolvedToken, ErrInternalInvariant) mark failures that no
// table entry can recover from: an input token outside the grammar's
// terminals, or a bug in the generated table; callers should treat them as
// fatal.
package icterrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MrTamalampudi/manodae/internal/ictiobus/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnresolvedToken is returned when an input token's stringification does
// not match any terminal symbol interned in the grammar. This is a property
// of the input stream, not of the grammar, and is always fatal: there is no
// table entry to consult.
var ErrUnresolvedToken = errors.New("input token does not correspond to any terminal symbol of the grammar")

// ErrInternalInvariant marks a condition that indicates a bug in the table
// generator rather than a problem with the grammar or the input. The parse
// driver wraps it when a reduction finds no GOTO entry for the production's
// head, reports it in a ParseError and stops the parse. The automaton and
// table builders do not check for invariant violations and never return it.
var ErrInternalInvariant = errors.New("internal invariant violated in the parser generator")

// ParseError is produced by the parse driver's panic-mode error recovery. It
// is accumulated in a slice visible to the caller rather than returned
// directly, matching the "never thrown, always reported" policy for
// parse-time syntax errors.
type ParseError struct {
	// Token is the input token at which the error was detected: the one
	// found where none of the expected terminals could be consulted.
	Token types.Token

	// Message is a human-readable description, either the generic
	// "expected ..." message built from the ACTION row, or a production's
	// user-supplied ErrorMessage when exactly one candidate production
	// applies.
	Message string

	// ProductionEnd is true iff the offending token was EOF, i.e. the error
	// was detected at the end of input rather than partway through it.
	ProductionEnd bool

	// Err, when non-nil, is the sentinel this ParseError wraps (ErrUnresolvedToken
	// or ErrInternalInvariant). Left nil for an ordinary panic-mode "expected
	// ..." diagnostic, which has no sentinel to wrap.
	Err error
}

// Error implements the error interface so ParseError can be used wherever a
// plain error is expected, e.g. by a caller that only wants the first one.
func (e ParseError) Error() string {
	if e.Token == nil {
		return e.Message
	}
	return fmt.Sprintf("line %d:%d: %s", e.Token.Line(), e.Token.LinePos(), e.Message)
}

// Unwrap exposes Err so errors.Is(err, icterrors.ErrUnresolvedToken) and
// similar checks work against a ParseError returned up through Result.Errors.
func (e ParseError) Unwrap() error {
	return e.Err
}

var titleCaser = cases.Title(language.English)

// TitleFirstWord capitalizes only the first word of a generic "expected ..."
// diagnostic, leaving grammar-author-supplied messages (which already
// dictate their own casing) untouched by callers that only invoke this on
// the generated form.
func TitleFirstWord(s string) string {
	if s == "" {
		return s
	}
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		return titleCaser.String(s[:idx]) + s[idx:]
	}
	return titleCaser.String(s)
}
