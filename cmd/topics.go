package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpad/internal/progress"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List topics with their mastery",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		lib, err := loadLibrary(cfg)
		if err != nil {
			return err
		}
		s, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		pct, err := progress.Percentages(cmd.Context(), s.VisitRepo(), lib)
		if err != nil {
			return fmt.Errorf("load mastery: %w", err)
		}

		if len(lib.Topics()) == 0 {
			fmt.Println("No topics found.")
			return nil
		}

		fmt.Printf("%-24s  %-32s  %7s  %7s\n", "ID", "Title", "Entries", "Mastery")
		fmt.Println(strings.Repeat("─", 76))
		for _, t := range lib.Topics() {
			fmt.Printf("%-24s  %-32s  %7d  %6d%%\n",
				truncate(t.ID, 24), truncate(t.Title, 32), t.EntryCount(), pct[t.ID])
		}
		return nil
	},
}
