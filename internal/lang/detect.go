package lang

import (
	"regexp"
	"strings"
)

// markers holds the per-language detection rule table. Each entry is a
// syntax marker whose presence in code suggests that language. Tables are
// read-only after init; adding a language means adding a table entry and
// appending to detectionOrder, nothing else.
var markers = map[Language][]*regexp.Regexp{
	Python: compileAll(
		`\bdef\s+\w+\s*\(`,
		`\bimport\s+\w+`,
		`\bfrom\s+\w+\s+import\b`,
		`\bprint\s*\(`,
		`\belif\s+.*:`,
		`\bexcept\b.*:`,
		`\bclass\s+\w+.*:`,
		`\bself\.`,
		`\bNone\b`,
		`\bTrue\b|\bFalse\b`,
	),
	JavaScript: compileAll(
		`\bfunction\s+\w+\s*\(`,
		`\bconst\s+\w+`,
		`\blet\s+\w+`,
		`\bvar\s+\w+`,
		`=>`,
		`\bconsole\.log\b`,
		`\bdocument\b`,
		`\bwindow\b`,
		`===|!==`,
		`\b(null|undefined)\b`,
	),
	TypeScript: compileAll(
		`\binterface\s+\w+`,
		`\btype\s+\w+\s*=`,
		`:\s*(string|number|boolean)\b`,
		`\bexport\s+(interface|type|class)\b`,
		`\bnamespace\s+\w+`,
		`\breadonly\s+\w+`,
	),
	Java: compileAll(
		`\bpublic\s+class\s+\w+`,
		`\bpublic\s+static\s+void\s+main\b`,
		`\bSystem\.out\.println\b`,
		`\bprivate\s+\w+\s+\w+`,
		`\bextends\s+\w+`,
		`\bimplements\s+\w+`,
		`\bpackage\s+[\w.]+;`,
		`\bthrows\s+\w+`,
	),
	CSharp: compileAll(
		`\busing\s+System\b`,
		`\bnamespace\s+\w+`,
		`\bConsole\.WriteLine\b`,
		`\bpublic\s+static\s+void\s+Main\b`,
		`\bget\s*;|\bset\s*;`,
		`\boverride\s+\w+`,
	),
	CPP: compileAll(
		`#include\s*<.*>`,
		`\bstd::`,
		`\bint\s+main\s*\(`,
		`\bcout\s*<<`,
		`\bcin\s*>>`,
		`\busing\s+namespace\s+std\b`,
		`\btemplate\s*<`,
	),
	Go: compileAll(
		`\bpackage\s+main\b`,
		`\bfunc\s+\w+\s*\(`,
		`\bfmt\.Print`,
		`\btype\s+\w+\s+struct\b`,
		`\bgo\s+func\b`,
		`\bchan\s+\w+`,
		`\bdefer\s+`,
		`:=`,
	),
	Rust: compileAll(
		`\bfn\s+\w+\s*\(`,
		`\blet\s+mut\s+\w+`,
		`\bprintln!\s*\(`,
		`\bimpl\s+\w+`,
		`\bmatch\s+\w+`,
		`\bpub\s+fn\b`,
		`\bResult\s*<`,
	),
	Ruby: compileAll(
		`\bdef\s+\w+`,
		`\bputs\s+`,
		`\bend\b`,
		`\brescue\b`,
		`\bmodule\s+\w+`,
		`@\w+`,
		`\bunless\s+`,
	),
	PHP: compileAll(
		`<\?php`,
		`\$\w+`,
		`\becho\s+`,
		`\bpublic\s+function\b`,
		`->\w+\(`,
	),
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Detect returns a best-guess language for the given code. Each language is
// scored by the number of its markers present in the text; the highest score
// wins, ties broken by declaration order. Returns Unknown when nothing
// matches, including empty or whitespace-only input. Never fails.
func Detect(code string) Language {
	if strings.TrimSpace(code) == "" {
		return Unknown
	}

	best := Unknown
	bestScore := 0
	for _, language := range detectionOrder {
		score := 0
		for _, marker := range markers[language] {
			if marker.MatchString(code) {
				score++
			}
		}
		if score > bestScore {
			best = language
			bestScore = score
		}
	}
	return best
}
