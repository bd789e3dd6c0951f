package tokenizer

// action is what happens when a rule wins: emit a token with label, or skip the matched text.
type action[L any] struct {
	label L
	skip  bool
}

// Builder accumulates rules in declaration order. Patterns are not checked
// until Build. Once Build has been called the builder is spent: further
// Token and Ignore calls are ignored and Build returns ErrBuilderConsumed.
type Builder[L any] struct {
	patterns []string
	actions  []action[L]
	consumed bool
}

// NewBuilder creates an empty Builder.
func NewBuilder[L any]() *Builder[L] {
	return &Builder[L]{}
}

// Token adds a rule that emits a token labelled label when pattern wins.
func (b *Builder[L]) Token(pattern string, label L) *Builder[L] {
	if b.consumed {
		return b
	}
	b.patterns = append(b.patterns, pattern)
	b.actions = append(b.actions, action[L]{label: label})
	return b
}

// Ignore adds a rule whose matches are consumed without emitting a token,
// typically whitespace and comments.
func (b *Builder[L]) Ignore(pattern string) *Builder[L] {
	if b.consumed {
		return b
	}
	b.patterns = append(b.patterns, pattern)
	b.actions = append(b.actions, action[L]{skip: true})
	return b
}

// Build compiles all rules into a RuleSet. Every pattern is anchored to the
// scan position. If any pattern is invalid a *PatternError naming the first
// offending rule is returned and no RuleSet is produced.
//
// The builder is consumed by the first call; later calls return
// ErrBuilderConsumed.
func (b *Builder[L]) Build() (*RuleSet[L], error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	matchers := make([]matcher, len(b.patterns))
	for i, pattern := range b.patterns {
		m, err := compileMatcher(pattern)
		if err != nil {
			return nil, &PatternError{Index: i, Pattern: pattern, Err: err}
		}
		matchers[i] = m
	}

	rs := &RuleSet[L]{
		patterns: b.patterns,
		matchers: matchers,
		actions:  b.actions,
	}
	b.patterns = nil
	b.actions = nil
	return rs, nil
}

// RuleSet is an immutable compiled rule table. It is safe to scan with many
// Scanners concurrently.
type RuleSet[L any] struct {
	patterns []string
	matchers []matcher // matchers[i] belongs to actions[i]
	actions  []action[L]
}

// Len returns the number of rules.
func (rs *RuleSet[L]) Len() int {
	return len(rs.actions)
}

// Pattern returns the pattern of rule i as it was declared.
func (rs *RuleSet[L]) Pattern(i int) string {
	return rs.patterns[i]
}

// Labels returns the labels of all emitting rules in declaration order.
// A label used by several rules appears once per rule.
func (rs *RuleSet[L]) Labels() []L {
	labels := make([]L, 0, len(rs.actions))
	for _, a := range rs.actions {
		if !a.skip {
			labels = append(labels, a.label)
		}
	}
	return labels
}

// match evaluates every rule at the start of rest and returns the index and
// length of the winner. The longest match wins; at equal length the rule
// declared last wins. Zero-length matches never win, so ok is false when
// nothing consumes at least one byte.
func (rs *RuleSet[L]) match(rest string) (winner, length int, ok bool) {
	winner = -1
	for i, m := range rs.matchers {
		n, matched := m.matchPrefix(rest)
		if !matched || n == 0 {
			continue
		}
		if n >= length {
			winner, length = i, n
		}
	}
	return winner, length, winner >= 0
}
