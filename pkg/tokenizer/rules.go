package tokenizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFile represents the structure of a YAML rules file
type RulesFile struct {
	Rules []RuleEntry `yaml:"rules"`
}

// RuleEntry is one rule of a rules file. Exactly one of Label and Skip must
// be set.
type RuleEntry struct {
	Pattern string `yaml:"pattern"`
	Label   string `yaml:"label,omitempty"`
	Skip    bool   `yaml:"skip,omitempty"`
}

// DefaultRules returns the built-in rules, a small expression language.
func DefaultRules() *RulesFile {
	return &RulesFile{
		Rules: []RuleEntry{
			{Pattern: `\s+`, Skip: true},
			{Pattern: `#[^\n]*`, Skip: true},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Label: "identifier"},
			{Pattern: `[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`, Label: "number"},
			{Pattern: `"(?:[^"\\\n]|\\.)*"`, Label: "string"},
			{Pattern: `[-+*/%<>=!&|^~.:]+`, Label: "operator"},
			{Pattern: `[()\[\]{}]`, Label: "bracket"},
			{Pattern: `[,;]`, Label: "separator"},
			{Pattern: `let`, Label: "keyword"},
			{Pattern: `if`, Label: "keyword"},
			{Pattern: `then`, Label: "keyword"},
			{Pattern: `else`, Label: "keyword"},
			{Pattern: `end`, Label: "keyword"},
		},
	}
}

// LoadRulesFile loads and parses a YAML rules file
func LoadRulesFile(filename string) (*RulesFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file '%s': %w", filename, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("rules file '%s': %w", filename, err)
	}
	return rules, nil
}

// ParseRules parses YAML rules and checks that every entry has exactly one
// action.
func ParseRules(data []byte) (*RulesFile, error) {
	var rules RulesFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, entry := range rules.Rules {
		switch {
		case entry.Label == "" && !entry.Skip:
			return nil, fmt.Errorf("rule %d (%q) has neither a label nor skip", i, entry.Pattern)
		case entry.Label != "" && entry.Skip:
			return nil, fmt.Errorf("rule %d (%q) has both a label and skip", i, entry.Pattern)
		}
	}
	return &rules, nil
}

// Marshal renders the rules as YAML.
func (rf *RulesFile) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(rf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}
	return data, nil
}

// Builder returns a Builder holding the file's rules in file order.
func (rf *RulesFile) Builder() *Builder[string] {
	b := NewBuilder[string]()
	for _, entry := range rf.Rules {
		if entry.Skip {
			b.Ignore(entry.Pattern)
		} else {
			b.Token(entry.Pattern, entry.Label)
		}
	}
	return b
}

// Build compiles the rules into a RuleSet.
func (rf *RulesFile) Build() (*RuleSet[string], error) {
	return rf.Builder().Build()
}
