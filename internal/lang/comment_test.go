package lang

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComments_PythonLoop(t *testing.T) {
	code := "for i in range(10):\n    print(i)"

	commented := AddComments(code, Python)
	lines := strings.Split(commented, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "# Loop over each i", lines[0])
	assert.Equal(t, "for i in range(10):", lines[1])
	// No rule matches a bare call, so print(i) passes through untouched.
	assert.Equal(t, "    print(i)", lines[2])
}

func TestAddComments_FunctionDefinition(t *testing.T) {
	commented := AddComments("def add(a, b):\n    return a + b", Python)

	assert.Contains(t, commented, "# Define function add")
	assert.Contains(t, commented, "    # Return the result")
}

func TestAddComments_IndentationPreserved(t *testing.T) {
	code := "def run():\n    for item in items:\n        pass"

	commented := AddComments(code, Python)
	assert.Contains(t, commented, "\n    # Loop over each item\n    for item in items:")
}

func TestAddComments_Idempotent(t *testing.T) {
	code := "def add(a, b):\n    return a + b"

	once := AddComments(code, Python)
	twice := AddComments(once, Python)
	assert.Equal(t, once, twice)
}

func TestAddComments_ExistingCommentsRespected(t *testing.T) {
	code := "# adds two numbers\ndef add(a, b):\n    return a + b"

	commented := AddComments(code, Python)
	assert.NotContains(t, commented, "Define function add")
	assert.Equal(t, 1, strings.Count(commented, "# adds two numbers"))
}

func TestAddComments_EmptyInputUnchanged(t *testing.T) {
	assert.Equal(t, "", AddComments("", Python))
	assert.Equal(t, "  \n\t", AddComments("  \n\t", Go))
}

func TestAddComments_GoUsesSlashes(t *testing.T) {
	code := "func main() {\n\treturn\n}"

	commented := AddComments(code, Go)
	assert.Contains(t, commented, "// Define function main")
	assert.NotContains(t, commented, "# ")
}

func TestAddComments_UnknownLanguageSharedRules(t *testing.T) {
	commented := AddComments("if x > 0:\n    pass", Unknown)
	assert.Contains(t, commented, "# Branch on a condition")
}

func TestAddCommentsWithRules_CustomFirst(t *testing.T) {
	custom := RuleSet{
		Python: {rule(`^def\s+`, "custom definition note")},
	}

	commented := AddCommentsWithRules("def go():\n    pass", Python, custom)
	assert.Contains(t, commented, "# custom definition note")
	assert.NotContains(t, commented, "Define function")
}

func TestLoadRules(t *testing.T) {
	path := t.TempDir() + "/rules.yaml"
	content := "python:\n  - pattern: '^assert\\b'\n    comment: Check an invariant\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rs, err := LoadRules(path)
	require.NoError(t, err)
	require.Len(t, rs[Python], 1)

	commented := AddCommentsWithRules("assert x > 0", Python, rs)
	assert.Contains(t, commented, "# Check an invariant")
}

func TestLoadRules_BadPattern(t *testing.T) {
	path := t.TempDir() + "/rules.yaml"
	require.NoError(t, os.WriteFile(path, []byte("python:\n  - pattern: '['\n    comment: broken\n"), 0o644))

	_, err := LoadRules(path)
	assert.Error(t, err)
}

func TestLoadRules_UnsupportedLanguage(t *testing.T) {
	path := t.TempDir() + "/rules.yaml"
	require.NoError(t, os.WriteFile(path, []byte("cobol:\n  - pattern: 'x'\n    comment: nope\n"), 0o644))

	_, err := LoadRules(path)
	assert.Error(t, err)
}
