package explainer

import "fmt"

// detectLanguagePrompt asks the model for a bare language name. Only the
// first 1000 characters of code are sent; more adds cost without accuracy.
func detectLanguagePrompt(code string) string {
	if len(code) > 1000 {
		code = code[:1000]
	}
	return fmt.Sprintf(`Identify the programming language of this code. Respond with ONLY the language name in lowercase (e.g. "python", "javascript", "java", "cpp", "typescript", "go", "rust", "csharp", "ruby", "php").

Code:
%s

Language:`, code)
}

// explainFullPrompt is used for a whole program
func explainFullPrompt(language, code string) string {
	return fmt.Sprintf(`Explain this %s code concisely:

%s

Provide: 1) What it does, 2) Key components, 3) How it works. Keep it under 200 words.`, language, code)
}

// explainBlockPrompt is used for a single function or section
func explainBlockPrompt(language, code string) string {
	return fmt.Sprintf(`Briefly explain this %s code section:

%s

What does this part do? Keep it short and clear.`, language, code)
}

// inlineCommentsPrompt asks for the same code back with short comments
func inlineCommentsPrompt(language, commentPrefix, code string) string {
	return fmt.Sprintf(`Add brief comments to this %s code:

%s

Add %s comments for important lines only. Keep comments short. Return only the commented code, no fences.`, language, code, commentPrefix)
}
