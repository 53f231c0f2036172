package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"succession-backend/internal/assessments"
	"succession-backend/internal/bootstrap"
	"succession-backend/internal/chat/responder"
	"succession-backend/internal/gap"
	"succession-backend/internal/profiles"
	"succession-backend/internal/seed"
	"succession-backend/internal/users"
)

const cliUserID = "talentctl"

var (
	sampleUser     string
	assessmentPath string
	roleKey        string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the embedded catalog to the configured store",
	Long: `Upsert the embedded success profiles and learning content. Uses Postgres
when DATABASE_URL connects and in-memory repositories otherwise, so it is
safe to run repeatedly.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a gap analysis against a catalog success profile",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Print the assistant reply for one message",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func runSeed(cmd *cobra.Command, args []string) error {
	seedCfg := cfg
	seedCfg.SeedOnStart = false
	app, err := bootstrap.Build(seedCfg)
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	res, err := app.Seed(cmd.Context(), strings.TrimSpace(sampleUser))
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(assessmentPath)
	if err != nil {
		return fmt.Errorf("read assessment: %w", err)
	}
	doc, err := seed.ParseAssessment(raw)
	if err != nil {
		return err
	}
	catalog, err := seed.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	if _, err := seed.Apply(ctx, catalog, seed.Targets{Profiles: profileSvc}, seed.Options{}); err != nil {
		return err
	}
	assessmentSvc := assessments.NewService(assessments.NewMemoryRepo())
	if _, err := assessmentSvc.UpsertMine(ctx, cliUserID, doc.Input()); err != nil {
		return err
	}

	svc := gap.NewService(assessmentSvc, profileSvc, nil, nil)
	res, err := svc.Analyze(ctx, users.User{ID: cliUserID, Role: users.RoleEmployee}, roleKey)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), res)
}

func runAsk(cmd *cobra.Command, args []string) error {
	reply := responder.New(nil).Respond(strings.Join(args, " "), "")
	_, err := fmt.Fprintln(cmd.OutOrStdout(), reply.Content)
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
