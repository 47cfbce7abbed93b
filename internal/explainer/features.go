package explainer

import (
	"fmt"
	"regexp"
	"strings"
)

// featureRule recognizes one construct in a line of code. Rules with a
// capture group name the captured identifier in the summary.
type featureRule struct {
	pattern  *regexp.Regexp
	describe func(match []string) string
}

var featureRules = []featureRule{
	{
		pattern:  regexp.MustCompile(`^(?:def|func|fn|function)\s+(\w+)`),
		describe: func(m []string) string { return fmt.Sprintf("Function definition: defines %s()", m[1]) },
	},
	{
		pattern:  regexp.MustCompile(`^class\s+(\w+)`),
		describe: func(m []string) string { return fmt.Sprintf("Class definition: defines %s", m[1]) },
	},
	{
		pattern:  regexp.MustCompile(`^(?:if|elif|else if)\b`),
		describe: func([]string) string { return "Conditional logic: branches on a condition" },
	},
	{
		pattern:  regexp.MustCompile(`^for\b`),
		describe: func([]string) string { return "Loop structure: iterates with a for loop" },
	},
	{
		pattern:  regexp.MustCompile(`^while\b`),
		describe: func([]string) string { return "Loop structure: repeats with a while loop" },
	},
	{
		pattern:  regexp.MustCompile(`^(?:try\s*:|try\s*\{)`),
		describe: func([]string) string { return "Error handling: guards a block against failures" },
	},
	{
		pattern:  regexp.MustCompile(`^return\b`),
		describe: func([]string) string { return "Return statement: returns a value" },
	},
	{
		pattern:  regexp.MustCompile(`^(?:import|from|#include|use|using|require)\b`),
		describe: func([]string) string { return "Import: pulls in external modules" },
	},
	{
		pattern:  regexp.MustCompile(`^(?:print|println|console\.log|fmt\.Print|System\.out)`),
		describe: func([]string) string { return "Output: writes to the console" },
	},
	{
		pattern:  regexp.MustCompile(`^(\w+)\s*(?::?=)\s*\S`),
		describe: func(m []string) string { return fmt.Sprintf("Assignment: sets variable %s", m[1]) },
	},
}

// collectFeatures scans code line by line and returns one description per
// recognized construct, deduplicated, in source order.
func collectFeatures(code string) []string {
	var features []string
	seen := map[string]bool{}

	for _, line := range strings.Split(code, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") || strings.HasPrefix(stripped, "//") {
			continue
		}
		for _, rule := range featureRules {
			m := rule.pattern.FindStringSubmatch(stripped)
			if m == nil {
				continue
			}
			desc := rule.describe(m)
			if !seen[desc] {
				seen[desc] = true
				features = append(features, desc)
			}
			break
		}
	}
	return features
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
