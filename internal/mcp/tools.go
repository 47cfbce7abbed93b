package mcp

import (
	"context"
	"fmt"

	"github.com/codexplain/codexplain-go/internal/explainer"
	"github.com/codexplain/codexplain-go/internal/lang"
)

func codeArg(args map[string]interface{}) (string, error) {
	code, ok := args["code"].(string)
	if !ok || code == "" {
		return "", fmt.Errorf("code is required")
	}
	return code, nil
}

func languageArg(args map[string]interface{}) lang.Language {
	if label, ok := args["language"].(string); ok {
		return lang.Normalize(label)
	}
	return lang.Unknown
}

func codeSchema(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"code": map[string]interface{}{
			"type":        "string",
			"description": "Source code to analyze",
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"code"},
	}
}

var languageProp = map[string]interface{}{
	"language": map[string]interface{}{
		"type":        "string",
		"description": "Language label; auto-detected when omitted",
	},
}

// ExplainCodeTool runs the full pipeline over a snippet
type ExplainCodeTool struct {
	explainer *explainer.Explainer
}

// NewExplainCodeTool creates an ExplainCodeTool
func NewExplainCodeTool(e *explainer.Explainer) *ExplainCodeTool {
	return &ExplainCodeTool{explainer: e}
}

// Execute runs the explanation pipeline
func (t *ExplainCodeTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	code, err := codeArg(args)
	if err != nil {
		return nil, err
	}
	addComments, _ := args["add_comments"].(bool)

	result, err := t.explainer.ExplainCode(ctx, code, addComments)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Description describes the tool for tools/list
func (t *ExplainCodeTool) Description() string {
	return "Explain a code snippet: detect its language, summarize what it does, optionally add inline comments"
}

// Schema returns the tool's input schema
func (t *ExplainCodeTool) Schema() map[string]interface{} {
	return codeSchema(map[string]interface{}{
		"add_comments": map[string]interface{}{
			"type":        "boolean",
			"description": "Also return the code with inline comments",
		},
	})
}

// DetectLanguageTool exposes language detection
type DetectLanguageTool struct {
	explainer *explainer.Explainer
}

// NewDetectLanguageTool creates a DetectLanguageTool
func NewDetectLanguageTool(e *explainer.Explainer) *DetectLanguageTool {
	return &DetectLanguageTool{explainer: e}
}

// Execute detects the language of the snippet
func (t *DetectLanguageTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	code, err := codeArg(args)
	if err != nil {
		return nil, err
	}
	language := t.explainer.DetectLanguage(ctx, code)
	return map[string]string{"language": string(language)}, nil
}

// Description describes the tool for tools/list
func (t *DetectLanguageTool) Description() string {
	return "Detect the programming language of a code snippet"
}

// Schema returns the tool's input schema
func (t *DetectLanguageTool) Schema() map[string]interface{} {
	return codeSchema(nil)
}

// AddCommentsTool exposes inline commenting
type AddCommentsTool struct {
	explainer *explainer.Explainer
}

// NewAddCommentsTool creates an AddCommentsTool
func NewAddCommentsTool(e *explainer.Explainer) *AddCommentsTool {
	return &AddCommentsTool{explainer: e}
}

// Execute returns the snippet with inline comments
func (t *AddCommentsTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	code, err := codeArg(args)
	if err != nil {
		return nil, err
	}
	language := languageArg(args)
	if language == lang.Unknown {
		language = t.explainer.DetectLanguage(ctx, code)
	}
	commented := t.explainer.AddInlineComments(ctx, code, language)
	return map[string]string{
		"language":       string(language),
		"commented_code": commented,
	}, nil
}

// Description describes the tool for tools/list
func (t *AddCommentsTool) Description() string {
	return "Insert short inline comments above recognizable constructs in a code snippet"
}

// Schema returns the tool's input schema
func (t *AddCommentsTool) Schema() map[string]interface{} {
	return codeSchema(languageProp)
}

// SplitFunctionsTool exposes the function splitter
type SplitFunctionsTool struct {
	explainer *explainer.Explainer
}

// NewSplitFunctionsTool creates a SplitFunctionsTool
func NewSplitFunctionsTool(e *explainer.Explainer) *SplitFunctionsTool {
	return &SplitFunctionsTool{explainer: e}
}

// Execute splits the snippet into named units
func (t *SplitFunctionsTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	code, err := codeArg(args)
	if err != nil {
		return nil, err
	}
	language := languageArg(args)
	if language == lang.Unknown {
		language = t.explainer.DetectLanguage(ctx, code)
	}
	units := t.explainer.SplitIntoFunctions(code, language)
	return map[string]interface{}{
		"language": string(language),
		"units":    units,
	}, nil
}

// Description describes the tool for tools/list
func (t *SplitFunctionsTool) Description() string {
	return "Split a code snippet into named function-level units"
}

// Schema returns the tool's input schema
func (t *SplitFunctionsTool) Schema() map[string]interface{} {
	return codeSchema(languageProp)
}
