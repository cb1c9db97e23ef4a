package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/proofpal/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM request events",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		st, err := openEventLogStrict(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit:   limit,
			Purpose: purpose,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No LLM events found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-14s  %-20s  %-6s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 120))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 20 {
				model = model[:20]
			}
			fmt.Printf("%-36s  %-19s  %-14s  %-20s  %-6d  %-6d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openEventLogStrict(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %s not found", args[0])
		}

		fmt.Printf("ID:       %s\n", e.ID)
		fmt.Printf("Time:     %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Purpose:  %s\n", e.Purpose)
		fmt.Printf("Model:    %s\n", e.Model)
		fmt.Printf("Tokens:   %d in / %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency:  %dms\n", e.LatencyMs)
		fmt.Printf("Success:  %t\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:    %s\n", e.ErrorMessage)
		}
		fmt.Printf("\n--- request ---\n%s\n", e.RequestBody)
		fmt.Printf("\n--- response ---\n%s\n", e.ResponseBody)
		return nil
	},
}

// openEventLogStrict opens the event log, failing instead of degrading.
// Inspection commands are useless without it.
func openEventLogStrict(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve event log path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return st, nil
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (distractor-gen, hint, problem-gen)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
}
