package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/codexplain/codexplain-go/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past explanations",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one history entry in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum entries to list")
	historyCmd.Flags().Bool("json", false, "Emit entries as JSON")
	historyCmd.AddCommand(historyShowCmd)
}

func openHistory() (storage.HistoryStore, error) {
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled; enable it with cxplain configure")
	}
	return storage.NewSQLiteStore(cfg.History.Path)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	limit, _ := cmd.Flags().GetInt("limit")
	jsonMode, _ := cmd.Flags().GetBool("json")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListEntries(ctx, limit)
	if err != nil {
		return err
	}

	if jsonMode {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tLANGUAGE\tMODEL\tCODE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(e.ID),
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Language,
			e.ModelUsed,
			firstLine(e.Code))
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.GetEntry(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("ID:       %s\n", entry.ID)
	fmt.Printf("When:     %s\n", entry.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Language: %s\n", entry.Language)
	fmt.Printf("Model:    %s\n", entry.ModelUsed)
	if entry.Degraded {
		fmt.Println("Note:     heuristic fallback was used")
	}
	fmt.Printf("\n%s\n", entry.Code)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func firstLine(code string) string {
	line := code
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if len(line) > 48 {
		line = line[:45] + "..."
	}
	return line
}
