package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "proofpal",
	Short: "Geometry proof-practice backend",
	Long: "Proofpal serves geometry proof-practice problems and uses an LLM\n" +
		"to generate distractor conditions and next-step hints.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	// A missing .env file is fine; env vars win either way.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite event log (overrides PROOFPAL_DB)")
	rootCmd.PersistentFlags().String("problems", "", "Path to the problem database JSON (default: bundled collection)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(problemsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
