package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/codexplain/codexplain-go/internal/models"
)

// Formatter renders an ExplainResult for the caller
type Formatter interface {
	Format(result *models.ExplainResult, w io.Writer) error
}

// NewFormatter selects a formatter. jsonMode emits machine-readable output
// for editor and agent integrations.
func NewFormatter(jsonMode bool) Formatter {
	if jsonMode {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter renders a human-readable report
type TextFormatter struct{}

// Format writes the result section by section
func (f *TextFormatter) Format(result *models.ExplainResult, w io.Writer) error {
	fmt.Fprintf(w, "Language: %s\n", result.Language)
	if result.ModelUsed != "" {
		fmt.Fprintf(w, "Model: %s\n", result.ModelUsed)
	}
	if result.Degraded {
		fmt.Fprintln(w, "Note: remote service unavailable, heuristic output")
	}

	fmt.Fprintf(w, "\nExplanation:\n%s\n", strings.TrimSpace(result.Explanation))

	if len(result.Blocks) > 0 {
		fmt.Fprintln(w, "\nBlock analysis:")
		names := make([]string, 0, len(result.Blocks))
		for name := range result.Blocks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "\n[%s]\n%s\n", name, strings.TrimSpace(result.Blocks[name]))
		}
	}

	if result.CommentedCode != "" {
		fmt.Fprintf(w, "\nCommented code:\n%s\n", result.CommentedCode)
	}
	return nil
}

// JSONFormatter renders the result as indented JSON
type JSONFormatter struct{}

// Format writes the result as a single JSON object
func (f *JSONFormatter) Format(result *models.ExplainResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
