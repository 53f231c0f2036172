package main

import (
	"os"

	"github.com/spf13/cobra"

	"succession-backend/internal/shared/config"
	"succession-backend/internal/shared/telemetry"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "talentctl",
	Short: "Admin tooling for the succession planning backend",
	Long: `talentctl seeds reference data and runs the gap analyzer and the
chat responder offline.

Available subcommands:
  seed    - Write success profiles and learning content to the configured store
  analyze - Compare an assessment file against a catalog success profile
  ask     - Print the assistant reply for one message`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		telemetry.SetOutput(cmd.ErrOrStderr(), cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		telemetry.Sync()
	},
}

func init() {
	seedCmd.Flags().StringVar(&sampleUser, "sample-user", "", "user id that receives the sample assessment")
	analyzeCmd.Flags().StringVar(&assessmentPath, "assessment", "", "YAML or JSON assessment file")
	analyzeCmd.Flags().StringVar(&roleKey, "role", "", "success profile role key")
	_ = analyzeCmd.MarkFlagRequired("assessment")
	_ = analyzeCmd.MarkFlagRequired("role")

	rootCmd.AddCommand(seedCmd, analyzeCmd, askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
