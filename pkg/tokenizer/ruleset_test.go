package tokenizer

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvalidPattern(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder[string]
		index   int
		pattern string
	}{
		{
			name:    "Unclosed group",
			builder: NewBuilder[string]().Token(`[0-9]+`, "num").Token(`(abc`, "bad"),
			index:   1,
			pattern: `(abc`,
		},
		{
			name:    "Unclosed class in ignore rule",
			builder: NewBuilder[string]().Ignore(`[\s`).Token(`x`, "x"),
			index:   0,
			pattern: `[\s`,
		},
		{
			name:    "Stray closing paren cannot escape the anchor",
			builder: NewBuilder[string]().Token(`a)|(b`, "a"),
			index:   0,
			pattern: `a)|(b`,
		},
		{
			name:    "First of several bad patterns is reported",
			builder: NewBuilder[string]().Token(`*`, "a").Token(`(`, "b"),
			index:   0,
			pattern: `*`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := tt.builder.Build()
			assert.Nil(t, rs)

			var patternErr *PatternError
			require.ErrorAs(t, err, &patternErr)
			assert.Equal(t, tt.index, patternErr.Index)
			assert.Equal(t, tt.pattern, patternErr.Pattern)
			assert.NotNil(t, errors.Unwrap(err))
			assert.Contains(t, err.Error(), strconv.Quote(tt.pattern))
		})
	}
}

func TestBuildConsumesBuilder(t *testing.T) {
	b := NewBuilder[string]().Token(`a`, "a")

	rs, err := b.Build()
	require.NoError(t, err)
	require.NotNil(t, rs)

	again, err := b.Build()
	assert.Nil(t, again)
	assert.ErrorIs(t, err, ErrBuilderConsumed)
}

func TestBuilderIgnoresRulesAfterBuild(t *testing.T) {
	b := NewBuilder[string]().Token(`a`, "a")
	_, err := b.Build()
	require.NoError(t, err)

	assert.Same(t, b, b.Token(`b`, "b").Ignore(`\s+`))
	assert.Empty(t, b.patterns)
	assert.Empty(t, b.actions)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)
}

func TestBuildFailureConsumesBuilder(t *testing.T) {
	b := NewBuilder[string]().Token(`(`, "a")

	_, err := b.Build()
	require.Error(t, err)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilderConsumed)
}

func TestRuleSetIntrospection(t *testing.T) {
	rs, err := NewBuilder[string]().
		Token(`[a-z]+`, "word").
		Ignore(`\s+`).
		Token(`[0-9]+`, "num").
		Token(`let`, "word").
		Build()
	require.NoError(t, err)

	assert.Equal(t, 4, rs.Len())
	assert.Equal(t, `\s+`, rs.Pattern(1))
	assert.Equal(t, []string{"word", "num", "word"}, rs.Labels())
	assert.Len(t, rs.matchers, len(rs.actions))
}

func TestCompileMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		fixed   bool
	}{
		{`let`, true},
		{`\+`, true},
		{`==`, true},
		{`(?i)let`, false},
		{`[0-9]+`, false},
		{`a|b`, false},
		{``, false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			m, err := compileMatcher(tt.pattern)
			require.NoError(t, err)
			_, isFixed := m.(fixedString)
			assert.Equal(t, tt.fixed, isFixed)
		})
	}
}

func TestMatcherIsAnchored(t *testing.T) {
	for _, pattern := range []string{`let`, `[0-9]+`} {
		m, err := compileMatcher(pattern)
		require.NoError(t, err)

		_, ok := m.matchPrefix("x let 42")
		assert.False(t, ok, "pattern %q matched away from the start", pattern)
	}

	m, err := compileMatcher(`[0-9]+`)
	require.NoError(t, err)
	n, ok := m.matchPrefix("42 let")
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestMatchTieBreak(t *testing.T) {
	tests := []struct {
		name    string
		builder *Builder[string]
		input   string
		winner  int
		length  int
	}{
		{
			name:    "Longest wins over later",
			builder: NewBuilder[string]().Token(`[a-z]+`, "ident").Token(`let`, "let"),
			input:   "lettuce",
			winner:  0,
			length:  7,
		},
		{
			name:    "Later wins at equal length",
			builder: NewBuilder[string]().Token(`[a-z]+`, "ident").Token(`let`, "let"),
			input:   "let x",
			winner:  1,
			length:  3,
		},
		{
			name:    "Earlier general rule does not shadow later one at equal length",
			builder: NewBuilder[string]().Token(`let`, "let").Token(`[a-z]+`, "ident"),
			input:   "let x",
			winner:  1,
			length:  3,
		},
		{
			name:    "Earlier longer rule beats later shorter rule",
			builder: NewBuilder[string]().Token(`[0-9]{5}`, "b").Token(`[0-9]{2}`, "a"),
			input:   "123456",
			winner:  0,
			length:  5,
		},
		{
			name:    "Zero-length matches are ignored",
			builder: NewBuilder[string]().Token(`x`, "x").Token(`[0-9]*`, "num"),
			input:   "xyz",
			winner:  0,
			length:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := tt.builder.Build()
			require.NoError(t, err)

			winner, length, ok := rs.match(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.winner, winner)
			assert.Equal(t, tt.length, length)
		})
	}
}

func TestMatchNothing(t *testing.T) {
	rs, err := NewBuilder[string]().Token(`[0-9]*`, "num").Ignore(`\s*`).Build()
	require.NoError(t, err)

	_, _, ok := rs.match("abc")
	assert.False(t, ok)
}

// emptyMatcher claims a zero-length match everywhere.
type emptyMatcher struct{}

func (emptyMatcher) matchPrefix(string) (int, bool) {
	return 0, true
}

func TestEmptyMatcherCannotStallScan(t *testing.T) {
	rs := &RuleSet[string]{
		patterns: []string{"<empty>", `[a-z]`},
		matchers: []matcher{emptyMatcher{}, fixedString("a")},
		actions:  []action[string]{{label: "empty"}, {label: "a"}},
	}

	tokens, err := rs.Scan("ab").Tokenize()
	assert.Equal(t, []Token[string]{{Label: "a", Span: Span{0, 1}, Text: "a"}}, tokens)

	var noMatch *NoMatchError
	require.ErrorAs(t, err, &noMatch)
	assert.Equal(t, 1, noMatch.Offset)
	assert.NotErrorIs(t, err, errStalled)
}
