package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/codexplain/codexplain-go/internal/models"
)

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name     string
		result   *models.ExplainResult
		contains []string
		excludes []string
	}{
		{
			name: "full result",
			result: &models.ExplainResult{
				Language:      "python",
				Explanation:   "Adds two numbers.",
				CommentedCode: "# Define function add\ndef add(a, b):\n    return a + b",
				ModelUsed:     "gemini-2.0-flash",
			},
			contains: []string{
				"Language: python",
				"Model: gemini-2.0-flash",
				"Adds two numbers.",
				"Commented code:",
				"# Define function add",
			},
			excludes: []string{"heuristic output"},
		},
		{
			name: "degraded result",
			result: &models.ExplainResult{
				Language:    "unknown",
				Explanation: "Heuristic summary.",
				ModelUsed:   "heuristic",
				Degraded:    true,
			},
			contains: []string{"remote service unavailable", "Heuristic summary."},
			excludes: []string{"Commented code:"},
		},
		{
			name: "block analysis sorted",
			result: &models.ExplainResult{
				Language:    "python",
				Explanation: "Two helpers.",
				Blocks: map[string]string{
					"beta":  "second helper",
					"alpha": "first helper",
				},
			},
			contains: []string{"[alpha]", "[beta]", "Block analysis:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := &TextFormatter{}
			if err := formatter.Format(tt.result, &buf); err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, not := range tt.excludes {
				if strings.Contains(out, not) {
					t.Errorf("output should not contain %q:\n%s", not, out)
				}
			}
		})
	}
}

func TestTextFormatter_BlocksInOrder(t *testing.T) {
	var buf bytes.Buffer
	result := &models.ExplainResult{
		Language:    "python",
		Explanation: "x",
		Blocks:      map[string]string{"zeta": "z", "alpha": "a"},
	}
	if err := (&TextFormatter{}).Format(result, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Index(out, "[alpha]") > strings.Index(out, "[zeta]") {
		t.Errorf("blocks not sorted:\n%s", out)
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	result := &models.ExplainResult{
		Language:      "go",
		Explanation:   "Prints a greeting.",
		CommentedCode: "// Define function main\nfunc main() {}",
		ModelUsed:     "gpt-4o-mini",
	}
	if err := (&JSONFormatter{}).Format(result, &buf); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded models.ExplainResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Language != "go" || decoded.Explanation != "Prints a greeting." {
		t.Errorf("roundtrip mismatch: %+v", decoded)
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(true).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter in json mode")
	}
	if _, ok := NewFormatter(false).(*TextFormatter); !ok {
		t.Error("expected TextFormatter by default")
	}
}
