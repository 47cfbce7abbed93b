package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split code into named function-level units",
	Long: `Splits the code at function and method boundaries using line-based
heuristics. Leading code before the first definition becomes a "preamble"
unit; code with no recognizable definitions becomes a single "main" unit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().Bool("json", false, "Emit the units as JSON")
	splitCmd.Flags().String("language", "", "Language label (detected when omitted)")
	splitCmd.Flags().String("github", "", "Fetch code from GitHub (owner/repo/path)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jsonMode, _ := cmd.Flags().GetBool("json")
	label, _ := cmd.Flags().GetString("language")
	githubRef, _ := cmd.Flags().GetString("github")

	code, err := readInput(ctx, args, githubRef)
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, true)
	if err != nil {
		return err
	}
	defer p.close()

	language := resolveLanguage(ctx, p.explainer, code, label)
	units := p.explainer.SplitIntoFunctions(code, language)

	if jsonMode {
		return json.NewEncoder(os.Stdout).Encode(units)
	}
	for _, unit := range units {
		fmt.Printf("── %s (line %d)\n%s\n", unit.Name, unit.StartLine, unit.Body)
	}
	return nil
}
