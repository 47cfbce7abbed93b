package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var commentCmd = &cobra.Command{
	Use:   "comment [file]",
	Short: "Insert inline comments above recognizable constructs",
	Long: `Adds short inline comments above loops, conditionals, definitions, and
other recognizable constructs. With a configured API key the hosted model
writes the comments; otherwise rule-based templates are used.

Use --no-remote to force the rule-based path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComment,
}

func init() {
	commentCmd.Flags().Bool("no-remote", false, "Skip the hosted model, rule-based comments only")
	commentCmd.Flags().String("language", "", "Language label (detected when omitted)")
	commentCmd.Flags().String("github", "", "Fetch code from GitHub (owner/repo/path)")
}

func runComment(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	language := resolveLanguage(ctx, p.explainer, code, label)
	fmt.Print(p.explainer.AddInlineComments(ctx, code, language))
	return nil
}
