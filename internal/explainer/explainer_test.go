package explainer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codexplain/codexplain-go/internal/config"
	apperrors "github.com/codexplain/codexplain-go/internal/errors"
	"github.com/codexplain/codexplain-go/internal/lang"
)

// fakeRemote scripts the remote collaborator. Responses are matched by a
// substring of the prompt; anything unmatched returns err.
type fakeRemote struct {
	enabled   bool
	responses map[string]string
	err       error
	calls     int
}

func (f *fakeRemote) Query(_ context.Context, prompt string, _ int) (string, error) {
	f.calls++
	for needle, resp := range f.responses {
		if strings.Contains(prompt, needle) {
			return resp, nil
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return "", errors.New("unscripted prompt")
}

func (f *fakeRemote) IsEnabled() bool { return f.enabled }
func (f *fakeRemote) Model() string {
	if f.enabled {
		return "fake-model"
	}
	return ""
}

func unavailable() error {
	return errors.New("gemini service unavailable: connection refused")
}

func TestDetectLanguage_RemotePreferred(t *testing.T) {
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Identify the programming language": "Python\n"},
	}
	e := New(config.Default(), remote)

	got := e.DetectLanguage(context.Background(), "def f():\n    pass")
	assert.Equal(t, lang.Python, got)
	assert.Equal(t, 1, remote.calls)
}

func TestDetectLanguage_FallsBackOnFailure(t *testing.T) {
	remote := &fakeRemote{enabled: true, err: unavailable()}
	e := New(config.Default(), remote)

	got := e.DetectLanguage(context.Background(), "def f():\n    print(1)")
	assert.Equal(t, lang.Python, got)
}

func TestDetectLanguage_FallsBackOnNonsenseAnswer(t *testing.T) {
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Identify the programming language": "I think it might be COBOL"},
	}
	e := New(config.Default(), remote)

	got := e.DetectLanguage(context.Background(), "const x = () => console.log(x)")
	assert.Equal(t, lang.JavaScript, got)
}

func TestDetectLanguage_EmptyInput(t *testing.T) {
	remote := &fakeRemote{enabled: true}
	e := New(config.Default(), remote)

	assert.Equal(t, lang.Unknown, e.DetectLanguage(context.Background(), "   \n"))
	assert.Zero(t, remote.calls, "empty input must not hit the service")
}

func TestExplain_RemoteAnswer(t *testing.T) {
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Explain this python code": "This function adds two numbers and returns the sum."},
	}
	e := New(config.Default(), remote)

	got := e.Explain(context.Background(), "def add(a, b):\n    return a + b", lang.Python, true)
	assert.Contains(t, got, "adds two numbers")
}

func TestExplain_ShortAnswerRejected(t *testing.T) {
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Explain this python code": "ok"},
	}
	e := New(config.Default(), remote)

	got := e.Explain(context.Background(), "def add(a, b):\n    return a + b", lang.Python, true)
	assert.Contains(t, got, "Function definition: defines add()")
}

func TestExplain_DisabledRemoteUsesPlaceholder(t *testing.T) {
	e := New(config.Default(), &fakeRemote{enabled: false})

	got := e.Explain(context.Background(), "def add(a, b):\n    return a + b", lang.Python, true)
	assert.Contains(t, got, PlaceholderExplanation)
	assert.Contains(t, got, "Return statement")
}

func TestAddInlineComments_RejectsTruncatedAnswer(t *testing.T) {
	code := "def add(a, b):\n    return a + b"
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Add brief comments": "short"},
	}
	e := New(config.Default(), remote)

	got := e.AddInlineComments(context.Background(), code, lang.Python)
	assert.Contains(t, got, "# Define function add", "falls back to rule-based comments")
}

func TestAddInlineComments_StripsCodeFences(t *testing.T) {
	code := "x = 1"
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Add brief comments": "```python\nx = 1  # assign one\n```"},
	}
	e := New(config.Default(), remote)

	got := e.AddInlineComments(context.Background(), code, lang.Python)
	assert.Equal(t, "x = 1  # assign one", got)
}

// The headline degradation path: every remote call fails, yet the caller
// still gets a usable result and no error.
func TestExplainCode_FullFallback(t *testing.T) {
	remote := &fakeRemote{enabled: true, err: unavailable()}
	e := New(config.Default(), remote)

	result, err := e.ExplainCode(context.Background(), "def add(a, b):\n    return a + b", true)
	require.NoError(t, err)
	assert.Equal(t, "python", result.Language)
	assert.True(t, result.Degraded)
	assert.NotEmpty(t, result.Explanation)
	assert.Contains(t, result.Explanation, PlaceholderExplanation)
	assert.Contains(t, result.CommentedCode, "# Define function add")
}

func TestExplainCode_EmptyInput(t *testing.T) {
	e := New(config.Default(), &fakeRemote{enabled: true})

	_, err := e.ExplainCode(context.Background(), "  \n\t ", false)
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)
}

func TestExplainCode_HappyPath(t *testing.T) {
	remote := &fakeRemote{
		enabled: true,
		responses: map[string]string{
			"Identify the programming language": "python",
			"Explain this python code":          "A recursive fibonacci implementation with exponential runtime.",
			"Add brief comments":                "def fib(n):  # nth fibonacci\n    if n <= 1:  # base case\n        return n\n    return fib(n-1) + fib(n-2)",
		},
	}
	e := New(config.Default(), remote)

	code := "def fib(n):\n    if n <= 1:\n        return n\n    return fib(n-1) + fib(n-2)"
	result, err := e.ExplainCode(context.Background(), code, true)
	require.NoError(t, err)
	assert.Equal(t, "python", result.Language)
	assert.False(t, result.Degraded)
	assert.Equal(t, "fake-model", result.ModelUsed)
	assert.Contains(t, result.CommentedCode, "# base case")
}

func TestExplainCodeAs_SkipsDetection(t *testing.T) {
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Explain this ruby code": "A small greeting method on every string."},
	}
	e := New(config.Default(), remote)

	result, err := e.ExplainCodeAs(context.Background(), "def greet\n  puts 'hi'\nend", lang.Ruby, false)
	require.NoError(t, err)
	assert.Equal(t, "ruby", result.Language)
	assert.False(t, result.Degraded)
	assert.Equal(t, 1, remote.calls, "language override must not trigger detection")
}

func TestExplainBlocks(t *testing.T) {
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Briefly explain": "This section computes something small."},
	}
	e := New(config.Default(), remote)

	code := "def one():\n    return 1\n\ndef two():\n    return 2"
	blocks := e.ExplainBlocks(context.Background(), code, lang.Python)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks["one"], "computes something")
	assert.Contains(t, blocks["two"], "computes something")
}

func TestExplainBlocks_EmptyCode(t *testing.T) {
	e := New(config.Default(), &fakeRemote{enabled: true})
	assert.Nil(t, e.ExplainBlocks(context.Background(), "", lang.Python))
}

// memCache is an in-memory ResponseCache for tests
type memCache struct{ m map[string]string }

func (c *memCache) Get(key string) string    { return c.m[key] }
func (c *memCache) Put(key, response string) { c.m[key] = response }

func TestQueryCached_SecondCallHitsCache(t *testing.T) {
	remote := &fakeRemote{
		enabled:   true,
		responses: map[string]string{"Explain this python code": "A thorough explanation of the program."},
	}
	cache := &memCache{m: map[string]string{}}
	key := func(op, language, code string) string { return op + "|" + language + "|" + code }
	e := New(config.Default(), remote, WithCache(cache, key))

	code := "def add(a, b):\n    return a + b"
	first := e.Explain(context.Background(), code, lang.Python, true)
	second := e.Explain(context.Background(), code, lang.Python, true)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, remote.calls, "second call must be served from cache")
}
