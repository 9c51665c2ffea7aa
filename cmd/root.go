// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghloc/internal/config"
)

// Version is set by main.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "Fetches your total LOC and commits from all your GitHub repos.",
	Long: `ghloc is a CLI tool that sums additions, deletions and commits over every
GitHub repository you own, using GitHub's contributor statistics.

Run "ghloc example" for an example of usage, or "ghloc token" to learn how to get a token.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Use the `--help` flag for more information, `%[1]s example` for an example of usage, or `%[1]s token` to learn how to get your token\n", config.AppName)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetOut(os.Stdout)
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("config-dir", "", "Directory holding config.toml (default: user config dir)")
}

// newLogger builds the narration logger. Progress goes to the command's output;
// --verbose adds debug details.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := logrus.New()
	logger.SetOutput(cmd.OutOrStdout())
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func openStore(cmd *cobra.Command) (*config.Store, error) {
	dir, _ := cmd.InheritedFlags().GetString("config-dir")
	return config.NewStore(dir)
}
