package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpad/internal/config"
	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "learnpad",
	Short: "Terminal lessons, quizzes and timed tests",
	Long:  "learnpad walks you through topic lessons, quick quizzes and timed tests, and tracks mastery per topic.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database: SQLite file path or postgres:// URL (overrides LEARNPAD_DB)")
	rootCmd.PersistentFlags().String("content", "", "Directory of topic JSON files (overrides LEARNPAD_CONTENT)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/learnpad/config.yaml)")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration with the command's flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured database, creating the parent directory of
// a SQLite file when needed.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	if store.DialectFor(cfg.DB) == store.DialectSQLite {
		if err := store.EnsureDir(cfg.DB); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	s, err := store.OpenContext(cmd.Context(), cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadLibrary loads topics from the content directory, warning when the
// built-in sample library is used instead.
func loadLibrary(cfg *config.Config) (*content.Library, error) {
	lib, err := content.Load(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load content from %s: %w", cfg.ContentDir, err)
	}
	if _, statErr := os.Stat(cfg.ContentDir); statErr != nil {
		fmt.Fprintln(os.Stderr, "No topics found in", cfg.ContentDir+"; using the built-in samples.")
	}
	return lib, nil
}
