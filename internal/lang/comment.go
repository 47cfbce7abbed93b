package lang

import (
	"fmt"
	"regexp"
	"strings"
)

// commentRule pairs a line pattern with a comment template. Templates may
// reference capture groups from the pattern via %s.
type commentRule struct {
	pattern  *regexp.Regexp
	template string
}

func rule(pattern, template string) commentRule {
	return commentRule{pattern: regexp.MustCompile(pattern), template: template}
}

// commentRules is the built-in rule table per language, ordered: the first
// matching rule wins. Lines matching no rule pass through verbatim.
var commentRules = map[Language][]commentRule{
	Python: {
		rule(`^def\s+(\w+)\s*\(`, "Define function %s"),
		rule(`^class\s+(\w+)`, "Define class %s"),
		rule(`^for\s+(\w+)\s+in\b`, "Loop over each %s"),
		rule(`^while\s+`, "Repeat while the condition holds"),
		rule(`^if\s+`, "Branch on a condition"),
		rule(`^elif\s+`, "Alternative condition"),
		rule(`^else\s*:`, "Fallback branch"),
		rule(`^try\s*:`, "Guard the block against errors"),
		rule(`^except\b`, "Handle a raised error"),
		rule(`^return\b`, "Return the result"),
		rule(`^(?:import|from)\s+(\w+)`, "Import module %s"),
		rule(`^with\s+`, "Manage a resource for this block"),
	},
	JavaScript: {
		rule(`^function\s+(\w+)\s*\(`, "Define function %s"),
		rule(`^class\s+(\w+)`, "Define class %s"),
		rule(`^for\s*\(`, "Loop over a range"),
		rule(`^while\s*\(`, "Repeat while the condition holds"),
		rule(`^if\s*\(`, "Branch on a condition"),
		rule(`^\}\s*else\b|^else\b`, "Fallback branch"),
		rule(`^return\b`, "Return the result"),
		rule(`^(?:const|let|var)\s+(\w+)\s*=`, "Declare %s"),
		rule(`^(?:import|require)\b`, "Import a dependency"),
	},
	Java: {
		rule(`^(?:public|private|protected)\s+class\s+(\w+)`, "Define class %s"),
		rule(`^for\s*\(`, "Loop over a range"),
		rule(`^while\s*\(`, "Repeat while the condition holds"),
		rule(`^if\s*\(`, "Branch on a condition"),
		rule(`^return\b`, "Return the result"),
		rule(`^import\s+([\w.]+)`, "Import %s"),
		rule(`^System\.out\.print`, "Print to the console"),
	},
	Go: {
		rule(`^func\s+(\w+)\s*\(`, "Define function %s"),
		rule(`^type\s+(\w+)\s+struct\b`, "Define type %s"),
		rule(`^for\b`, "Loop"),
		rule(`^if\b`, "Branch on a condition"),
		rule(`^return\b`, "Return the result"),
		rule(`^import\b`, "Import dependencies"),
		rule(`^defer\b`, "Run at function exit"),
	},
	CPP: {
		rule(`^#include\s*[<"](\S+)[>"]`, "Include %s"),
		rule(`^class\s+(\w+)`, "Define class %s"),
		rule(`^for\s*\(`, "Loop over a range"),
		rule(`^while\s*\(`, "Repeat while the condition holds"),
		rule(`^if\s*\(`, "Branch on a condition"),
		rule(`^return\b`, "Return the result"),
	},
}

// sharedRules apply when a language has no table of its own.
var sharedRules = []commentRule{
	rule(`^(?:def|function|fn)\s+(\w+)\s*\(`, "Define function %s"),
	rule(`^class\s+(\w+)`, "Define class %s"),
	rule(`^for\b`, "Loop"),
	rule(`^while\b`, "Repeat while the condition holds"),
	rule(`^if\b`, "Branch on a condition"),
	rule(`^return\b`, "Return the result"),
	rule(`^(?:import|#include|use|using)\b`, "Import a dependency"),
}

// AddComments inserts a short synthesized comment above each line matching a
// rule for the given language, preserving the line's indentation. Unmatched
// lines pass through verbatim. Re-running is safe: a line already preceded
// by a comment is skipped, so no duplicates accumulate. Empty input is
// returned unchanged.
func AddComments(code string, language Language) string {
	return addComments(code, language, rulesFor(language))
}

func addComments(code string, language Language, rules []commentRule) string {
	if strings.TrimSpace(code) == "" {
		return code
	}

	prefix := language.CommentPrefix()

	lines := strings.Split(code, "\n")
	out := make([]string, 0, len(lines)*2)
	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || isComment(stripped) {
			out = append(out, line)
			continue
		}
		if i > 0 && isComment(strings.TrimSpace(lines[i-1])) {
			// Already annotated, by us or by the author.
			out = append(out, line)
			continue
		}
		if c := matchRule(rules, stripped); c != "" {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, fmt.Sprintf("%s%s %s", indent, prefix, c))
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func rulesFor(language Language) []commentRule {
	if rules, ok := commentRules[language]; ok {
		return rules
	}
	return sharedRules
}

func matchRule(rules []commentRule, stripped string) string {
	for _, r := range rules {
		m := r.pattern.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		if len(m) > 1 && strings.Contains(r.template, "%s") {
			return fmt.Sprintf(r.template, m[1])
		}
		return r.template
	}
	return ""
}

func isComment(stripped string) bool {
	return strings.HasPrefix(stripped, "#") ||
		strings.HasPrefix(stripped, "//") ||
		strings.HasPrefix(stripped, "/*") ||
		strings.HasPrefix(stripped, "*")
}
