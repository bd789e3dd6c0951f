package tokenizer

import (
	"regexp"
	"regexp/syntax"
	"strings"
)

type (
	// Abstraction over regexp.Regexp allows serving simple patterns without the regexp engine.
	matcher interface {
		// Report the length of the match anchored at the very start of s. Only a match beginning at s[0] counts;
		// the engine is never allowed to find one further along.
		matchPrefix(s string) (length int, ok bool)
	}

	// Matcher for patterns that are plain literals.
	fixedString string

	// Matcher for everything else. The wrapped regexp is already anchored with `^`.
	anchoredRegexp struct {
		re *regexp.Regexp
	}
)

func (fs fixedString) matchPrefix(s string) (int, bool) {
	if strings.HasPrefix(s, string(fs)) {
		return len(fs), true
	}
	return 0, false
}

func (ar anchoredRegexp) matchPrefix(s string) (int, bool) {
	loc := ar.re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return 0, false
	}
	return loc[1], true
}

// compileMatcher turns one rule pattern into a matcher. The returned error is the one produced by the regexp parser.
func compileMatcher(pattern string) (matcher, error) {
	parsed, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, err
	}
	if parsed.Op == syntax.OpLiteral && parsed.Flags&syntax.FoldCase == 0 {
		return fixedString(string(parsed.Rune)), nil
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, err
	}
	return anchoredRegexp{re: re}, nil
}
