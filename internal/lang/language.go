package lang

import "strings"

// Language is a best-guess source language label
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Java       Language = "java"
	CSharp     Language = "csharp"
	CPP        Language = "cpp"
	Go         Language = "go"
	Rust       Language = "rust"
	Ruby       Language = "ruby"
	PHP        Language = "php"
	Unknown    Language = "unknown"
)

// detectionOrder fixes tie-breaking: when two languages score equally,
// the one declared earlier wins.
var detectionOrder = []Language{
	Python, JavaScript, TypeScript, Java, CSharp, CPP, Go, Rust, Ruby, PHP,
}

// All returns the supported language labels (excluding Unknown)
func All() []Language {
	out := make([]Language, len(detectionOrder))
	copy(out, detectionOrder)
	return out
}

// IsSupported reports whether label names a known language
func IsSupported(label string) bool {
	if Language(label) == Unknown {
		return true
	}
	for _, l := range detectionOrder {
		if Language(label) == l {
			return true
		}
	}
	return false
}

// CommentPrefix returns the single-line comment prefix for the language.
// Unknown defaults to "#".
func (l Language) CommentPrefix() string {
	switch l {
	case Python, Ruby:
		return "#"
	case JavaScript, TypeScript, Java, CSharp, CPP, Go, Rust, PHP:
		return "//"
	default:
		return "#"
	}
}

// String implements fmt.Stringer
func (l Language) String() string {
	return string(l)
}

// Normalize maps common aliases and model responses to a canonical label.
// Unrecognized input returns Unknown.
func Normalize(label string) Language {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "c++", "c plus plus", "cplusplus":
		return CPP
	case "c#", "c sharp":
		return CSharp
	case "js":
		return JavaScript
	case "ts":
		return TypeScript
	case "py":
		return Python
	case "rb":
		return Ruby
	case "golang":
		return Go
	}
	if l := Language(label); l != Unknown && IsSupported(label) {
		return l
	}
	return Unknown
}
