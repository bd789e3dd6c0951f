// Package tokenizer is a table-driven lexer. An ordered list of regular
// expression rules is compiled into a RuleSet, and a Scanner walks a source
// text left to right, classifying it into tokens.
//
// At every position all rules are tried. The longest match wins, and among
// matches of equal length the rule declared last wins, so keywords can be
// declared after a general identifier rule to override it:
//
//	rules, err := tokenizer.NewBuilder[string]().
//		Token(`[A-Za-z]+`, "ident").
//		Token(`let`, "let").
//		Ignore(`\s+`).
//		Build()
//
// Rules added with Ignore consume text without producing tokens. Every byte
// of a successfully scanned source belongs to exactly one emitted or ignored
// span. A position where no rule matches ends the scan with a *NoMatchError.
package tokenizer

import (
	"io"
	"iter"
)

// Scanner is a forward-only cursor over a source text. It is not safe for
// concurrent use; create one Scanner per goroutine from a shared RuleSet.
type Scanner[L any] struct {
	rules    *RuleSet[L]
	source   string
	position int
	err      error // Terminal error, io.EOF once the source is exhausted.
}

// Scan returns a Scanner positioned at the start of source.
func (rs *RuleSet[L]) Scan(source string) *Scanner[L] {
	return &Scanner[L]{rules: rs, source: source}
}

// Tokens is shorthand for rs.Scan(source).All().
func (rs *RuleSet[L]) Tokens(source string) iter.Seq2[Token[L], error] {
	return rs.Scan(source).All()
}

// Offset returns the byte offset of the next unscanned character.
func (s *Scanner[L]) Offset() int {
	return s.position
}

// Next returns the next emitted token. Text matched by ignore rules is passed
// over. At the end of the source Next returns io.EOF; if no rule matches it
// returns a *NoMatchError. Once Next has returned an error it keeps returning
// the same error.
func (s *Scanner[L]) Next() (Token[L], error) {
	for s.err == nil {
		if s.position == len(s.source) {
			s.err = io.EOF
			break
		}

		winner, length, ok := s.rules.match(s.source[s.position:])
		if !ok {
			s.err = newNoMatchError(s.source, s.position)
			break
		}
		if length <= 0 {
			s.err = errStalled
			break
		}

		span := Span{Start: s.position, End: s.position + length}
		s.position = span.End

		act := s.rules.actions[winner]
		if act.skip {
			continue
		}
		return Token[L]{Label: act.label, Span: span, Text: s.source[span.Start:span.End]}, nil
	}
	var zero Token[L]
	return zero, s.err
}

// All iterates over the remaining tokens. A scan failure is reported as a
// final pair with the zero Token; a clean end of input yields nothing extra.
func (s *Scanner[L]) All() iter.Seq2[Token[L], error] {
	return func(yield func(Token[L], error) bool) {
		for {
			tok, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) || err != nil {
				return
			}
		}
	}
}

// Tokenize scans the rest of the source and returns the tokens. If scanning
// fails the tokens produced before the failure are returned with the error.
func (s *Scanner[L]) Tokenize() ([]Token[L], error) {
	var tokens []Token[L]
	for tok, err := range s.All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
