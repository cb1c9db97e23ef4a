package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/proofpal/internal/llm"
	"github.com/abhisek/proofpal/internal/tutor"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "Inspect and generate proof problems",
}

var problemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded problem collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		ps, err := loadProblems(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-12s  %-8s  %s\n", "TYPE", "LEVEL", "TO PROVE")
		fmt.Println(strings.Repeat("─", 60))
		for _, p := range ps.All() {
			fmt.Printf("%-12s  %-8s  %s\n", p.Type, p.Difficulty, p.ToProve)
		}
		fmt.Printf("\n%d problems\n", ps.Len())
		return nil
	},
}

var problemsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new problem with the LLM and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		proofType, _ := cmd.Flags().GetString("type")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		llmCfg := llm.ConfigFromEnv()
		if err := llmCfg.Validate(); err != nil {
			return fmt.Errorf("LLM configuration: %w", err)
		}

		st, repo, err := openEventLog(cmd)
		if err != nil {
			return err
		}
		if st != nil {
			defer st.Close()
		}

		provider, err := llm.NewProvider(cmd.Context(), llmCfg, repo)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		ps, err := loadProblems(cmd)
		if err != nil {
			return err
		}

		svc := tutor.New(ps, provider)
		problem, err := svc.GenerateNewProblem(cmd.Context(), proofType, difficulty)
		if err != nil {
			return fmt.Errorf("generate problem: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(problem)
	},
}

func init() {
	problemsGenerateCmd.Flags().String("type", "congruence", "Proof type: congruence or similarity")
	problemsGenerateCmd.Flags().String("difficulty", "medium", "Difficulty: easy, medium or hard")

	problemsCmd.AddCommand(problemsListCmd)
	problemsCmd.AddCommand(problemsGenerateCmd)
}
