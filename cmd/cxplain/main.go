package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/codexplain/codexplain-go/internal/config"
	"github.com/codexplain/codexplain-go/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile string
	verbose bool
	logger  *logrus.Logger
	cfg     *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cxplain",
	Short: "Codexplain - plain-language explanations for source code",
	Long: `Codexplain reads a snippet of source code, figures out what language it
is written in, and explains what the code does. When a hosted model is
configured the explanation comes from it; otherwise a built-in heuristic
pipeline produces a best-effort summary, so the command always answers.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logrus.New()
		level := slog.LevelWarn
		if verbose {
			logger.SetLevel(logrus.DebugLevel)
			level = slog.LevelDebug
		} else {
			logger.SetLevel(logrus.WarnLevel)
		}
		if _, err := logging.Setup(logging.Config{Level: level}); err != nil {
			logger.WithError(err).Warn("Failed to set up structured logging")
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			logger.WithError(err).Warn("Failed to load config, using defaults")
			cfg = config.Default()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.codexplain/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.SetVersionTemplate(`Codexplain {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
}
