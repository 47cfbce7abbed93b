package lang

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RuleSet holds user-supplied comment rules keyed by language label.
// User rules are tried before the built-in tables.
type RuleSet map[Language][]commentRule

// ruleFile is the YAML shape for custom comment rules:
//
//	python:
//	  - pattern: '^assert\b'
//	    comment: Check an invariant
type ruleFile map[string][]struct {
	Pattern string `yaml:"pattern"`
	Comment string `yaml:"comment"`
}

// LoadRules reads custom comment rules from a YAML file.
func LoadRules(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	rs := make(RuleSet)
	for label, entries := range rf {
		language := Normalize(label)
		if language == Unknown {
			return nil, fmt.Errorf("rules file: unsupported language %q", label)
		}
		for _, e := range entries {
			p, err := regexp.Compile(e.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rules file: bad pattern %q: %w", e.Pattern, err)
			}
			rs[language] = append(rs[language], commentRule{pattern: p, template: e.Comment})
		}
	}
	return rs, nil
}

// AddCommentsWithRules behaves like AddComments but tries the given custom
// rules ahead of the built-in table for the language.
func AddCommentsWithRules(code string, language Language, custom RuleSet) string {
	if len(custom) == 0 || len(custom[language]) == 0 {
		return AddComments(code, language)
	}
	merged := append(append([]commentRule{}, custom[language]...), rulesFor(language)...)
	return addComments(code, language, merged)
}
