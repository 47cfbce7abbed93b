package lang

import (
	"regexp"
	"strings"
)

// CodeUnit is one heuristically detected function or class definition plus
// its body. Units are ordered by source position; names are not unique.
type CodeUnit struct {
	Name      string `json:"name"`
	Body      string `json:"body"`
	StartLine int    `json:"start_line"` // 1-indexed
}

// starters maps each language to the patterns that open a new unit. The
// first capture group is the unit name. Declaration order matters: the first
// matching pattern names the unit.
var starters = map[Language][]*regexp.Regexp{
	Python: compileAll(
		`^\s*def\s+(\w+)\s*\(`,
		`^\s*class\s+(\w+)`,
	),
	JavaScript: compileAll(
		`^\s*function\s+(\w+)\s*\(`,
		`^\s*(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\()`,
		`^\s*class\s+(\w+)`,
	),
	TypeScript: compileAll(
		`^\s*(?:export\s+)?function\s+(\w+)\s*\(`,
		`^\s*(?:export\s+)?class\s+(\w+)`,
		`^\s*(?:export\s+)?interface\s+(\w+)`,
	),
	Java: compileAll(
		`^\s*(?:public|private|protected)\s+class\s+(\w+)`,
		`^\s*(?:public|private|protected)?\s*(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*\{`,
	),
	CSharp: compileAll(
		`^\s*(?:public|private|protected|internal)\s+class\s+(\w+)`,
		`^\s*(?:public|private|protected|internal)?\s*(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\([^)]*\)\s*\{?`,
	),
	CPP: compileAll(
		`^\s*class\s+(\w+)`,
		`^[\w:<>,\s\*&]+\s+(\w+)\s*\([^)]*\)\s*\{?\s*$`,
	),
	Go: compileAll(
		`^func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(`,
		`^type\s+(\w+)\s+struct\b`,
	),
	Rust: compileAll(
		`^\s*(?:pub\s+)?fn\s+(\w+)\s*\(`,
		`^\s*(?:pub\s+)?struct\s+(\w+)`,
		`^\s*impl\b.*\b(\w+)\s*\{`,
	),
	Ruby: compileAll(
		`^\s*def\s+(\w+)`,
		`^\s*class\s+(\w+)`,
		`^\s*module\s+(\w+)`,
	),
	PHP: compileAll(
		`^\s*(?:public\s+|private\s+|protected\s+)?function\s+(\w+)\s*\(`,
		`^\s*class\s+(\w+)`,
	),
}

// braceLanguages use running brace depth to decide whether a starter match
// is top-level. Indentation languages instead require the starter to sit at
// an indent no deeper than the previous starter.
var braceLanguages = map[Language]bool{
	JavaScript: true,
	TypeScript: true,
	Java:       true,
	CSharp:     true,
	CPP:        true,
	Go:         true,
	Rust:       true,
	PHP:        true,
}

// Split partitions code into named units by scanning lines for
// function-start patterns. This is intentionally approximate: it is not a
// parser, and nested or multi-line signatures will mis-split. Body extent
// runs to the line before the next top-level starter match, or end of input.
// Lines preceding the first match are emitted as a unit named "preamble"
// when any of them is non-blank. Empty input yields no units; input with no
// starter match yields a single unit named "main" spanning everything.
func Split(code string, language Language) []CodeUnit {
	if strings.TrimSpace(code) == "" {
		return nil
	}

	patterns := starters[language]
	if len(patterns) == 0 {
		// Unknown language: fall back to any language's starters so that
		// obviously function-shaped code still splits.
		patterns = genericStarters
	}

	lines := strings.Split(code, "\n")
	var units []CodeUnit
	var current []string
	name := "preamble"
	start := 1
	depth := 0
	unitIndent := -1
	brace := braceLanguages[language]

	flush := func() {
		body := strings.Join(current, "\n")
		current = nil
		if strings.TrimSpace(body) == "" {
			return
		}
		units = append(units, CodeUnit{Name: name, Body: body, StartLine: start})
	}

	for i, line := range lines {
		topLevel := true
		if brace && depth > 0 {
			topLevel = false
		}
		if !brace && unitIndent >= 0 && indentOf(line) > unitIndent {
			topLevel = false
		}

		matched := ""
		if topLevel {
			for _, p := range patterns {
				if m := p.FindStringSubmatch(line); m != nil {
					matched = m[1]
					break
				}
			}
		}

		if matched != "" {
			flush()
			name = matched
			start = i + 1
			unitIndent = indentOf(line)
		}
		current = append(current, line)

		if brace {
			depth += strings.Count(line, "{") - strings.Count(line, "}")
			if depth < 0 {
				depth = 0
			}
		}
	}
	flush()

	if len(units) == 1 && units[0].Name == "preamble" {
		// Nothing matched at all: one unit spanning the input.
		units[0].Name = "main"
	}
	return units
}

// genericStarters is the union of a few high-signal patterns, used when the
// language is unknown.
var genericStarters = compileAll(
	`^\s*def\s+(\w+)\s*\(`,
	`^\s*function\s+(\w+)\s*\(`,
	`^func\s+(?:\([^)]+\)\s+)?(\w+)\s*\(`,
	`^\s*(?:pub\s+)?fn\s+(\w+)\s*\(`,
	`^\s*class\s+(\w+)`,
)

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}
