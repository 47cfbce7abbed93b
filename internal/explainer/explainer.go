package explainer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codexplain/codexplain-go/internal/config"
	apperrors "github.com/codexplain/codexplain-go/internal/errors"
	"github.com/codexplain/codexplain-go/internal/lang"
	"github.com/codexplain/codexplain-go/internal/models"
	"github.com/codexplain/codexplain-go/internal/storage"
)

// PlaceholderExplanation opens the explanation text whenever the remote
// service could not be reached and only heuristics ran.
const PlaceholderExplanation = "Remote explanation service unavailable; heuristic analysis follows."

// minExplanationLen is the floor below which a remote explanation is
// considered junk and the heuristic summary is used instead.
const minExplanationLen = 20

// blockWorkers bounds the fan-out when explaining code block by block.
const blockWorkers = 3

// RemoteClient is what the explainer needs from the LLM layer
type RemoteClient interface {
	Query(ctx context.Context, prompt string, maxTokens int) (string, error)
	IsEnabled() bool
	Model() string
}

// ResponseCache stores successful remote responses between runs. A nil
// cache means every call goes to the service.
type ResponseCache interface {
	Get(key string) string
	Put(key, response string)
}

type keyFunc func(op, language, code string) string

// Explainer composes the heuristic pipeline with the remote collaborator.
// All collaborators are injected at construction; an Explainer is safe for
// concurrent use because it holds no mutable state of its own.
type Explainer struct {
	cfg     *config.Config
	remote  RemoteClient
	cache   ResponseCache
	cacheFn keyFunc
	history storage.HistoryStore
	rules   lang.RuleSet
	logger  *slog.Logger
}

// Option configures an Explainer
type Option func(*Explainer)

// WithCache attaches a response cache
func WithCache(c ResponseCache, key func(op, language, code string) string) Option {
	return func(e *Explainer) {
		e.cache = c
		e.cacheFn = key
	}
}

// WithHistory attaches a history store; completed runs are recorded there
func WithHistory(h storage.HistoryStore) Option {
	return func(e *Explainer) { e.history = h }
}

// WithRules adds custom comment rules tried before the built-in tables
func WithRules(rs lang.RuleSet) Option {
	return func(e *Explainer) { e.rules = rs }
}

// New creates an Explainer
func New(cfg *config.Config, remote RemoteClient, opts ...Option) *Explainer {
	e := &Explainer{
		cfg:    cfg,
		remote: remote,
		logger: slog.Default().With("component", "explainer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DetectLanguage returns the language of code, asking the remote service
// when available and falling back to marker-based detection on any failure
// or unrecognized answer. Total: never returns an error.
func (e *Explainer) DetectLanguage(ctx context.Context, code string) lang.Language {
	language, _ := e.detectLanguage(ctx, code)
	return language
}

func (e *Explainer) detectLanguage(ctx context.Context, code string) (lang.Language, bool) {
	if strings.TrimSpace(code) == "" {
		return lang.Unknown, false
	}
	if !e.remote.IsEnabled() {
		return lang.Detect(code), true
	}

	resp, err := e.queryCached(ctx, "detect", "", detectLanguagePrompt(code), 50)
	if err != nil {
		e.logger.Warn("remote language detection failed, using heuristics", "error", err)
		return lang.Detect(code), true
	}

	normalized := lang.Normalize(strings.ToLower(strings.TrimSpace(resp)))
	if normalized == lang.Unknown {
		e.logger.Debug("remote detection answer unrecognized", "answer", resp)
		return lang.Detect(code), true
	}
	return normalized, false
}

// SplitIntoFunctions partitions code into named units. Purely heuristic.
func (e *Explainer) SplitIntoFunctions(code string, language lang.Language) []lang.CodeUnit {
	return lang.Split(code, language)
}

// Explain produces a natural-language explanation of code. fullCode selects
// the whole-program prompt over the per-section one. Falls back to the
// rule-based summary on service failure or a junk response.
func (e *Explainer) Explain(ctx context.Context, code string, language lang.Language, fullCode bool) string {
	text, _ := e.explain(ctx, code, language, fullCode)
	return text
}

func (e *Explainer) explain(ctx context.Context, code string, language lang.Language, fullCode bool) (string, bool) {
	if !e.remote.IsEnabled() {
		return PlaceholderExplanation + "\n\n" + heuristicExplanation(code, language), true
	}

	prompt := explainBlockPrompt(string(language), code)
	op := "explain_block"
	if fullCode {
		prompt = explainFullPrompt(string(language), code)
		op = "explain_full"
	}

	resp, err := e.queryCached(ctx, op, string(language), prompt, e.maxTokens(800))
	if err != nil {
		e.logger.Warn("remote explanation failed, using heuristics", "error", err)
		return PlaceholderExplanation + "\n\n" + heuristicExplanation(code, language), true
	}
	if len(resp) < minExplanationLen {
		return heuristicExplanation(code, language), true
	}
	return resp, false
}

// AddInlineComments returns code annotated with short comments, remote when
// possible, rule-based otherwise. A remote answer shorter than the input is
// treated as a failure: the model dropped code.
func (e *Explainer) AddInlineComments(ctx context.Context, code string, language lang.Language) string {
	text, _ := e.addInlineComments(ctx, code, language)
	return text
}

func (e *Explainer) addInlineComments(ctx context.Context, code string, language lang.Language) (string, bool) {
	if strings.TrimSpace(code) == "" {
		return code, false
	}
	if !e.remote.IsEnabled() {
		return e.ruleBasedComments(code, language), true
	}

	prompt := inlineCommentsPrompt(string(language), language.CommentPrefix(), code)
	resp, err := e.queryCached(ctx, "comment", string(language), prompt, e.maxTokens(1000))
	if err != nil {
		e.logger.Warn("remote commenting failed, using rule-based comments", "error", err)
		return e.ruleBasedComments(code, language), true
	}

	commented := stripCodeFences(resp)
	if len(commented) < len(code) {
		e.logger.Debug("remote commented code shorter than input, rejecting")
		return e.ruleBasedComments(code, language), true
	}
	return commented, false
}

func (e *Explainer) ruleBasedComments(code string, language lang.Language) string {
	return lang.AddCommentsWithRules(code, language, e.rules)
}

// ExplainBlocks explains each detected unit separately, keyed by unit name.
// Units are processed by a bounded worker group.
func (e *Explainer) ExplainBlocks(ctx context.Context, code string, language lang.Language) map[string]string {
	units := lang.Split(code, language)
	if len(units) == 0 {
		return nil
	}

	blocks := make(map[string]string, len(units))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(blockWorkers)
	for _, unit := range units {
		g.Go(func() error {
			text := e.Explain(ctx, unit.Body, language, false)
			mu.Lock()
			blocks[unit.Name] = text
			mu.Unlock()
			return nil
		})
	}
	g.Wait() // workers never return errors; fallbacks absorb failures
	return blocks
}

// ExplainCode runs the full pipeline: detect language, explain, optionally
// add inline comments, and assemble the result. Remote failures degrade to
// heuristics and never surface as errors; only empty input is rejected.
func (e *Explainer) ExplainCode(ctx context.Context, code string, addComments bool) (*models.ExplainResult, error) {
	return e.ExplainCodeAs(ctx, code, lang.Unknown, addComments)
}

// ExplainCodeAs is ExplainCode with a caller-supplied language, skipping
// detection. Unknown means detect.
func (e *Explainer) ExplainCodeAs(ctx context.Context, code string, language lang.Language, addComments bool) (*models.ExplainResult, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apperrors.ErrEmptyInput
	}

	langDegraded := false
	if language == lang.Unknown {
		language, langDegraded = e.detectLanguage(ctx, code)
	}
	explanation, explDegraded := e.explain(ctx, code, language, true)

	result := &models.ExplainResult{
		Language:    string(language),
		Explanation: explanation,
		ModelUsed:   e.remote.Model(),
		Degraded:    langDegraded || explDegraded,
	}

	if addComments {
		commented, commentDegraded := e.addInlineComments(ctx, code, language)
		result.CommentedCode = commented
		result.Degraded = result.Degraded || commentDegraded
	}

	if result.Degraded && result.ModelUsed == "" {
		result.ModelUsed = "heuristic"
	}

	e.record(ctx, code, result)
	return result, nil
}

// record appends the run to history; history failures are logged only.
func (e *Explainer) record(ctx context.Context, code string, result *models.ExplainResult) {
	if e.history == nil {
		return
	}
	entry := &models.HistoryEntry{
		ID:        uuid.NewString(),
		Code:      code,
		Language:  result.Language,
		ModelUsed: result.ModelUsed,
		Degraded:  result.Degraded,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.history.SaveEntry(ctx, entry); err != nil {
		e.logger.Warn("failed to record history entry", "error", err)
	}
}

// queryCached consults the cache before the remote service and stores
// successful responses.
func (e *Explainer) queryCached(ctx context.Context, op, language, prompt string, maxTokens int) (string, error) {
	var key string
	if e.cache != nil && e.cacheFn != nil {
		key = e.cacheFn(op, language, prompt)
		if hit := e.cache.Get(key); hit != "" {
			e.logger.Debug("cache hit", "op", op)
			return hit, nil
		}
	}

	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	resp, err := e.remote.Query(ctx, prompt, maxTokens)
	if err != nil {
		return "", err
	}
	if key != "" {
		e.cache.Put(key, resp)
	}
	return resp, nil
}

func (e *Explainer) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.cfg.Limits.Timeout > 0 {
		return context.WithTimeout(ctx, e.cfg.Limits.Timeout)
	}
	return ctx, func() {}
}

func (e *Explainer) maxTokens(fallback int) int {
	if e.cfg.Limits.MaxOutputTokens > 0 {
		return e.cfg.Limits.MaxOutputTokens
	}
	return fallback
}

// heuristicExplanation builds a rule-based feature summary of the code, one
// bullet per recognized construct.
func heuristicExplanation(code string, language lang.Language) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s code analysis:\n\n", capitalize(string(language)))

	features := collectFeatures(code)
	if len(features) == 0 {
		sb.WriteString("- Contains basic programming logic and statements\n")
		return sb.String()
	}
	for _, f := range features {
		sb.WriteString("- " + f + "\n")
	}
	return sb.String()
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:] // opening fence with optional language tag
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
