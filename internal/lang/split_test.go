package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_SinglePythonFunction(t *testing.T) {
	code := "def add(a, b):\n    return a + b"

	units := Split(code, Python)
	require.Len(t, units, 1)
	assert.Equal(t, "add", units[0].Name)
	assert.Equal(t, code, units[0].Body)
	assert.Equal(t, 1, units[0].StartLine)
}

func TestSplit_MultiplePythonFunctions(t *testing.T) {
	code := "def one():\n    return 1\n\ndef two():\n    return 2"

	units := Split(code, Python)
	require.Len(t, units, 2)
	assert.Equal(t, "one", units[0].Name)
	assert.Equal(t, "two", units[1].Name)
	assert.Contains(t, units[0].Body, "return 1")
	assert.Contains(t, units[1].Body, "return 2")
	assert.Equal(t, 4, units[1].StartLine)
}

// Lines before the first definition form a "preamble" unit when non-blank.
func TestSplit_PreambleKept(t *testing.T) {
	code := "import os\n\ndef run():\n    pass"

	units := Split(code, Python)
	require.Len(t, units, 2)
	assert.Equal(t, "preamble", units[0].Name)
	assert.Contains(t, units[0].Body, "import os")
	assert.Equal(t, "run", units[1].Name)
}

func TestSplit_BlankPreambleDropped(t *testing.T) {
	code := "\n\ndef run():\n    pass"

	units := Split(code, Python)
	require.Len(t, units, 1)
	assert.Equal(t, "run", units[0].Name)
}

// A nested def is part of its enclosing function, not a new unit. The
// splitter is not a parser; extent is decided by indentation only.
func TestSplit_NestedDefStaysInBody(t *testing.T) {
	code := "def outer():\n    def inner():\n        pass\n    return inner"

	units := Split(code, Python)
	require.Len(t, units, 1)
	assert.Equal(t, "outer", units[0].Name)
	assert.Contains(t, units[0].Body, "def inner")
}

func TestSplit_GoFunctions(t *testing.T) {
	code := "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n\nfunc main() {\n\tprintln(add(1, 2))\n}"

	units := Split(code, Go)
	require.Len(t, units, 3)
	assert.Equal(t, "preamble", units[0].Name)
	assert.Equal(t, "add", units[1].Name)
	assert.Equal(t, "main", units[2].Name)
}

// Inside braces nothing opens a new unit, so a closure assigned within a
// function body does not split it.
func TestSplit_BraceDepthGuards(t *testing.T) {
	code := "function outer() {\n  const inner = function() {\n    return 1;\n  };\n  return inner;\n}"

	units := Split(code, JavaScript)
	require.Len(t, units, 1)
	assert.Equal(t, "outer", units[0].Name)
}

func TestSplit_EmptyInput(t *testing.T) {
	assert.Nil(t, Split("", Python))
	assert.Nil(t, Split("   \n\t  ", Python))
}

// Code with no recognizable definitions comes back as one unit spanning the
// whole input.
func TestSplit_NoMatchesSingleUnit(t *testing.T) {
	code := "x = 1\ny = 2\nprint(x + y)"

	units := Split(code, Python)
	require.Len(t, units, 1)
	assert.Equal(t, "main", units[0].Name)
	assert.Equal(t, code, units[0].Body)
}

func TestSplit_UnknownLanguageUsesGenericPatterns(t *testing.T) {
	code := "def compute():\n    return 42"

	units := Split(code, Unknown)
	require.Len(t, units, 1)
	assert.Equal(t, "compute", units[0].Name)
}

func TestSplit_PythonClass(t *testing.T) {
	code := "class Greeter:\n    def greet(self):\n        return \"hi\""

	units := Split(code, Python)
	require.Len(t, units, 1)
	assert.Equal(t, "Greeter", units[0].Name)
}
