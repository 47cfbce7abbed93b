package main

import (
	"context"
	"os"

	"github.com/codexplain/codexplain-go/internal/lang"
	"github.com/codexplain/codexplain-go/internal/output"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain [file]",
	Short: "Explain what a piece of code does",
	Long: `Detects the language of the given code and produces a plain-language
explanation. Reads from a file argument, --github reference, or stdin.

The hosted model is preferred when an API key is configured; without one,
or when the service fails, a heuristic summary is produced instead and the
result is marked as degraded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().Bool("comments", false, "Also produce a commented copy of the code")
	explainCmd.Flags().Bool("blocks", false, "Explain each function-level unit separately")
	explainCmd.Flags().Bool("json", false, "Emit the result as JSON")
	explainCmd.Flags().Bool("no-remote", false, "Skip the hosted model, heuristics only")
	explainCmd.Flags().String("language", "", "Language label, overrides detection")
	explainCmd.Flags().String("github", "", "Fetch code from GitHub (owner/repo/path)")
}

func runExplain(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	withComments, _ := cmd.Flags().GetBool("comments")
	withBlocks, _ := cmd.Flags().GetBool("blocks")
	jsonMode, _ := cmd.Flags().GetBool("json")
	noRemote, _ := cmd.Flags().GetBool("no-remote")
	label, _ := cmd.Flags().GetString("language")
	githubRef, _ := cmd.Flags().GetString("github")

	code, err := readInput(ctx, args, githubRef)
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, noRemote)
	if err != nil {
		return err
	}
	defer p.close()

	result, err := p.explainer.ExplainCodeAs(ctx, code, lang.Normalize(label), withComments)
	if err != nil {
		return err
	}

	if withBlocks {
		result.Blocks = p.explainer.ExplainBlocks(ctx, code, resolveLanguage(ctx, p.explainer, code, result.Language))
	}

	return output.NewFormatter(jsonMode).Format(result, os.Stdout)
}
