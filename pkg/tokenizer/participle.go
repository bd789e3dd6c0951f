package tokenizer

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
)

// Definition exposes a RuleSet as a participle lexer definition. Each distinct
// label becomes a participle token type of the same name, so grammars can
// refer to it as @label.
type Definition struct {
	rules   *RuleSet[string]
	symbols map[string]lexer.TokenType
}

var (
	_ lexer.Definition       = (*Definition)(nil)
	_ lexer.StringDefinition = (*Definition)(nil)
)

// eofSymbol is the name participle reserves for the end of input.
const eofSymbol = "EOF"

// NewDefinition wraps rules for use with participle.Lexer. A rule labelled
// "EOF" is rejected because participle reserves that name for the end of
// input.
func NewDefinition(rules *RuleSet[string]) (*Definition, error) {
	symbols := map[string]lexer.TokenType{eofSymbol: lexer.EOF}
	next := lexer.EOF - 1
	for _, label := range rules.Labels() {
		if label == eofSymbol {
			return nil, fmt.Errorf("label %q is reserved for the end of input", eofSymbol)
		}
		if _, ok := symbols[label]; ok {
			continue
		}
		symbols[label] = next
		next--
	}
	return &Definition{rules: rules, symbols: symbols}, nil
}

func (d *Definition) Symbols() map[string]lexer.TokenType {
	return d.symbols
}

func (d *Definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.LexString(filename, string(data))
}

func (d *Definition) LexString(filename string, input string) (lexer.Lexer, error) {
	return &participleLexer{
		def:     d,
		scanner: d.rules.Scan(input),
		source:  input,
		pos:     lexer.Position{Filename: filename, Line: 1, Column: 1},
	}, nil
}

type participleLexer struct {
	def     *Definition
	scanner *Scanner[string]
	source  string
	pos     lexer.Position // Position of source[pos.Offset].
}

// advanceTo moves pos forward to offset, counting lines and runes on the way.
func (l *participleLexer) advanceTo(offset int) {
	skipped := l.source[l.pos.Offset:offset]
	if newlines := strings.Count(skipped, "\n"); newlines > 0 {
		l.pos.Line += newlines
		l.pos.Column = 1 + utf8.RuneCountInString(skipped[strings.LastIndex(skipped, "\n")+1:])
	} else {
		l.pos.Column += utf8.RuneCountInString(skipped)
	}
	l.pos.Offset = offset
}

func (l *participleLexer) Next() (lexer.Token, error) {
	tok, err := l.scanner.Next()
	if errors.Is(err, io.EOF) {
		l.advanceTo(len(l.source))
		return lexer.Token{Type: lexer.EOF, Pos: l.pos}, nil
	}
	var noMatch *NoMatchError
	if errors.As(err, &noMatch) {
		l.advanceTo(noMatch.Offset)
		return lexer.Token{}, &lexer.Error{Msg: fmt.Sprintf("invalid input text %q", noMatch.Snippet), Pos: l.pos}
	}
	if err != nil {
		return lexer.Token{}, err
	}

	l.advanceTo(tok.Span.Start)
	return lexer.Token{Type: l.def.symbols[tok.Label], Value: tok.Text, Pos: l.pos}, nil
}
