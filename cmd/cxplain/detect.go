package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect [file]",
	Short: "Detect the programming language of a code snippet",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().Bool("json", false, "Emit the result as JSON")
	detectCmd.Flags().Bool("no-remote", false, "Skip the hosted model, heuristics only")
	detectCmd.Flags().String("github", "", "Fetch code from GitHub (owner/repo/path)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jsonMode, _ := cmd.Flags().GetBool("json")
	noRemote, _ := cmd.Flags().GetBool("no-remote")
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

	language := p.explainer.DetectLanguage(ctx, code)

	if jsonMode {
		return json.NewEncoder(os.Stdout).Encode(map[string]string{"language": string(language)})
	}
	fmt.Println(language)
	return nil
}
