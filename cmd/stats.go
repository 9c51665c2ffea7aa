package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghloc/internal/config"
	"github.com/naka-gawa/ghloc/internal/gateway"
	"github.com/naka-gawa/ghloc/internal/report"
	"github.com/naka-gawa/ghloc/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Fetches GitHub stats",
	Long: `Fetches contributor statistics for every repository you own and prints
additions, deletions and commits per repository followed by the totals.

GitHub computes these statistics on demand, so expect retries on the first run.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		out := cmd.OutOrStdout()
		logger := newLogger(cmd)

		store, err := openStore(cmd)
		if err != nil {
			cmd.Printf("Failed to open config: %v\n", err)
			return
		}
		creds, err := store.Load()
		if err != nil {
			cmd.Printf("Failed to load credentials: %v\n", err)
			return
		}
		creds, err = config.WithEnv(creds)
		if err != nil {
			logger.Warnf("%v", err)
		}
		if !creds.Complete() {
			cmd.Printf("Please set your GitHub username and token using the `%s set` command\n", config.AppName)
			return
		}

		settings, err := store.Settings()
		if err != nil {
			cmd.Printf("Failed to load settings: %v\n", err)
			return
		}
		retry, maxWorkers, rps, err := runOptions(cmd, settings)
		if err != nil {
			cmd.Printf("Invalid settings: %v\n", err)
			return
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(creds.Token, logger, gateway.WithRequestsPerSecond(rps))
		if err != nil {
			cmd.Printf("Failed to create GitHub gateway: %v\n", err)
			return
		}
		summary, err := usecase.NewStats(githubGateway, retry, maxWorkers, logger).Run(ctx, creds)
		if err != nil {
			cmd.Printf("Failed to aggregate stats: %v\n", err)
			return
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			err = report.JSON(out, summary)
		} else {
			err = report.Text(out, summary)
		}
		if err != nil {
			cmd.Printf("Failed to print report: %v\n", err)
		}
	},
}

// runOptions resolves the run tuning: defaults, overridden by the config file,
// overridden by flags that were set explicitly.
func runOptions(cmd *cobra.Command, settings config.Settings) (usecase.RetryConfig, int, float64, error) {
	retry := usecase.DefaultRetryConfig()
	delay, err := settings.RetryDelayDuration()
	if err != nil {
		return retry, 0, 0, err
	}
	if delay > 0 {
		retry.BaseDelay = delay
	}
	if settings.MaxRetries > 0 {
		retry.MaxRetries = settings.MaxRetries
	}
	maxWorkers, rps := settings.MaxWorkers, settings.RPS

	flags := cmd.Flags()
	if flags.Changed("retry-delay") {
		retry.BaseDelay, _ = flags.GetDuration("retry-delay")
	}
	if flags.Changed("max-retries") {
		retry.MaxRetries, _ = flags.GetInt("max-retries")
	}
	if flags.Changed("max-workers") {
		maxWorkers, _ = flags.GetInt("max-workers")
	}
	if flags.Changed("rps") {
		rps, _ = flags.GetFloat64("rps")
	}
	return retry, maxWorkers, rps, nil
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("json", false, "Print the summary as JSON")
	statsCmd.Flags().Duration("retry-delay", usecase.DefaultRetryDelay, "Base delay between retries; retry n waits n times this")
	statsCmd.Flags().Int("max-retries", usecase.DefaultMaxRetries, "Retries per repository before giving up")
	statsCmd.Flags().IntP("max-workers", "w", 0, "Maximum concurrent repository fetches (0 = unlimited)")
	statsCmd.Flags().Float64("rps", 0, "Maximum GitHub requests per second (0 = unlimited)")
}
