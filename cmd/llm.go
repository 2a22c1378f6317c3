package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpad/internal/llm"
	"github.com/abhisek/learnpad/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openConfiguredStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		calls, err := s.LLMCallRepo().Query(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query calls: %w", err)
		}
		if len(calls) == 0 {
			fmt.Println("No LLM calls recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-12s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, c := range calls {
			if purpose != "" && c.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !c.Success {
				ok = "✗"
			}
			fmt.Printf("%-5d  %-19s  %-12s  %-28s  %-6d  %-6d  %-7d  %s\n",
				c.ID,
				c.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(c.Purpose, 12),
				truncate(c.Model, 28),
				c.InputTokens,
				c.OutputTokens,
				c.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openConfiguredStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.LLMCallRepo().Get(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get call: %w", err)
		}
		if c == nil {
			return fmt.Errorf("call %d not found", id)
		}

		sep := strings.Repeat("─", 60)
		fmt.Printf("ID:        %d\n", c.ID)
		fmt.Printf("Time:      %s\n", c.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", c.Provider)
		fmt.Printf("Model:     %s\n", c.Model)
		fmt.Printf("Purpose:   %s\n", c.Purpose)
		fmt.Printf("Tokens:    %d in / %d out\n", c.InputTokens, c.OutputTokens)
		fmt.Printf("Latency:   %dms\n", c.LatencyMs)
		fmt.Printf("Success:   %v\n", c.Success)
		if c.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", c.ErrorMessage)
		}

		for _, part := range []struct{ name, body string }{
			{"REQUEST", c.RequestBody},
			{"RESPONSE", c.ResponseBody},
		} {
			fmt.Println()
			fmt.Println(sep)
			fmt.Println(part.name)
			fmt.Println(sep)
			if part.body == "" {
				fmt.Println("(not captured)")
			} else {
				fmt.Println(part.body)
			}
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openConfiguredStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.LLMCallRepo().UsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("%-12s  %-28s  %6s  %6s  %10s  %10s  %9s\n",
			"Purpose", "Model", "Calls", "Failed", "Input", "Output", "Cost")
		fmt.Println(strings.Repeat("─", 92))

		var (
			totalCalls, totalIn, totalOut int
			totalCost                     float64
			unpriced                      []string
		)
		for _, u := range usage {
			cost := "?"
			if p, ok := llm.PriceOf(u.Model); ok {
				c := p.Cost(llm.Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens})
				totalCost += c
				cost = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Printf("%-12s  %-28s  %6d  %6d  %10d  %10d  %9s\n",
				truncate(u.Purpose, 12), truncate(u.Model, 28),
				u.Calls, u.Failures, u.InputTokens, u.OutputTokens, cost)
			totalCalls += u.Calls
			totalIn += u.InputTokens
			totalOut += u.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 92))
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-42s  %6d  %6s  %10d  %10d  %9s\n",
			label, totalCalls, "", totalIn, totalOut, formatCost(totalCost))

		if len(unpriced) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func openConfiguredStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cmd, cfg)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. test-gen)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
