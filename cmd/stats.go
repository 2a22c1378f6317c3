package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpad/internal/content"
	"github.com/abhisek/learnpad/internal/mastery"
	"github.com/abhisek/learnpad/internal/progress"
	"github.com/abhisek/learnpad/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats [topic-id]",
	Short: "Show mastery and timed-test history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

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

		topics := lib.Topics()
		if len(args) == 1 {
			t, ok := lib.Topic(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			topics = []*content.Topic{t}
		}

		ctx := cmd.Context()
		for i, t := range topics {
			if i > 0 {
				fmt.Println()
			}
			state, err := progress.Load(ctx, s.VisitRepo(), t)
			if err != nil {
				return err
			}
			printMastery(t, state)

			attempts, err := s.AttemptRepo().ListByTopic(ctx, t.ID, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("list attempts: %w", err)
			}
			printAttempts(attempts)
		}
		return nil
	},
}

func printMastery(t *content.Topic, state *mastery.State) {
	fmt.Printf("%s  (%s)  mastery %d%%\n", t.Title, t.ID, state.Percentage())
	fmt.Println(strings.Repeat("─", 60))
	for i, su := range t.SubUnits {
		fmt.Printf("%s  %d%%\n", su.Heading, state.SubUnitPercentage(i))
		for _, e := range su.Entries {
			visited := state.Visited(e.ID)
			var marks []string
			for _, a := range mastery.Activities {
				if visited.Has(a) {
					marks = append(marks, a.DisplayName())
				}
			}
			done := "-"
			if len(marks) > 0 {
				done = strings.Join(marks, ", ")
			}
			fmt.Printf("  %-36s  %s\n", truncate(e.Title, 36), done)
		}
	}
}

func printAttempts(attempts []store.Attempt) {
	if len(attempts) == 0 {
		fmt.Println("\nNo timed tests taken yet.")
		return
	}
	fmt.Println()
	fmt.Printf("%-16s  %-24s  %7s  %8s  %6s  %8s  %s\n",
		"Taken", "Entry", "Score", "Accuracy", "Time", "Per min", "")
	fmt.Println(strings.Repeat("─", 86))
	for _, a := range attempts {
		note := ""
		if a.TimedOut {
			note = "timed out"
		}
		fmt.Printf("%-16s  %-24s  %7s  %7d%%  %6s  %8.2f  %s\n",
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			truncate(a.EntryID, 24),
			fmt.Sprintf("%d/%d", a.Correct, a.Correct+a.Incorrect),
			a.AccuracyPercent,
			fmt.Sprintf("%d:%02d", a.TimeTakenSeconds/60, a.TimeTakenSeconds%60),
			a.SpeedPerMinute,
			note,
		)
	}
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of attempts to show per topic")
}
