package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"trivia-quiz-service/internal/config"
)

// NewFetchCmd refreshes today's questions once and exits, for use from cron.
func NewFetchCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch today's questions for every configured topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), *configPath, cmd)
		},
	}
}

func runFetch(ctx context.Context, configPath string, cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if cfg.Redis.Addr == "" && cfg.Postgres.URL == "" {
		return fmt.Errorf("fetch needs redis or postgres configured; in-memory questions would be lost on exit")
	}

	svc, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.close()

	report, err := svc.questions.FetchAndCache(ctx, svc.topics)
	if err != nil {
		return err
	}
	for _, t := range report.Topics {
		if t.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: failed: %v\n", t.Topic, t.Err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", t.Topic, t.Stored)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %d questions for %s\n", report.Stored(), report.Date)
	return nil
}
