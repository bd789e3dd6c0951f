package tokenizer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrBuilderConsumed is returned by Build when it is called more than once on
// the same Builder.
var ErrBuilderConsumed = errors.New("tokenizer: builder already consumed by Build")

// errStalled is returned if a winning rule would leave the scan position where
// it is. Zero-length matches are dropped from the match set, so reaching this
// means the matching capability broke its contract.
var errStalled = errors.New("tokenizer: internal error: scan made no progress")

// PatternError reports a rule pattern that the regexp engine rejected.
type PatternError struct {
	Index   int    // Position of the rule in declaration order.
	Pattern string // The pattern as declared, without the start anchor.
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern for rule %d %q: %v", e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// maxSnippet bounds how much of the unmatched input is quoted in a NoMatchError.
const maxSnippet = 20

// NoMatchError reports an offset at which no rule matches.
type NoMatchError struct {
	Offset  int
	Snippet string // Up to maxSnippet bytes of the input starting at Offset.
}

func newNoMatchError(source string, offset int) *NoMatchError {
	rest := source[offset:]
	if len(rest) > maxSnippet {
		cut := maxSnippet
		for cut > 0 && !utf8.RuneStart(rest[cut]) {
			cut--
		}
		// No rune boundary in range: the input is not UTF-8 here, cut on bytes.
		if cut == 0 {
			cut = maxSnippet
		}
		rest = rest[:cut]
	}
	return &NoMatchError{Offset: offset, Snippet: rest}
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no rule matches input at offset %d: %q", e.Offset, e.Snippet)
}
