package cmd

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/ghloc/internal/config"
	"github.com/naka-gawa/ghloc/internal/gateway"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Sets your GitHub credentials",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		token, _ := cmd.Flags().GetString("token")
		if !cmd.Flags().Changed("username") || !cmd.Flags().Changed("token") {
			cmd.Printf("Both username and token must be set at once\nTry: %s set --username <YOUR_NAME> --token <YOUR_TOKEN>\n", config.AppName)
			return
		}

		store, err := openStore(cmd)
		if err != nil {
			cmd.Printf("Failed to open config: %v\n", err)
			return
		}
		if err := store.StoreUsername(username); err != nil {
			cmd.Printf("Failed to save username: %v\n", err)
			return
		}
		if err := store.StoreToken(token); err != nil {
			cmd.Printf("Failed to save token: %v\n", err)
			return
		}
		cmd.Println("Saved credentials.")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clears configuration values",
	Run: func(cmd *cobra.Command, args []string) {
		onlyUsername, _ := cmd.Flags().GetBool("username")
		onlyToken, _ := cmd.Flags().GetBool("token")
		both := !onlyUsername && !onlyToken

		store, err := openStore(cmd)
		if err != nil {
			cmd.Printf("Failed to open config: %v\n", err)
			return
		}
		if both || onlyToken {
			if err := store.ClearToken(); err != nil {
				cmd.Printf("Failed to clear token: %v\n", err)
				return
			}
		}
		if both || onlyUsername {
			if err := store.ClearUsername(); err != nil {
				cmd.Printf("Failed to clear username: %v\n", err)
				return
			}
		}
		cmd.Println("Cleared credentials.")
	},
}

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Displays the current GitHub credentials",
	Run: func(cmd *cobra.Command, args []string) {
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
		cmd.Println(creds.String())

		verify, _ := cmd.Flags().GetBool("verify")
		if !verify || creds.Token == "" {
			return
		}
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		githubGateway, err := gateway.NewGitHubGateway(creds.Token, logger)
		if err != nil {
			cmd.Printf("Failed to create GitHub gateway: %v\n", err)
			return
		}
		login, err := githubGateway.Viewer(context.Background())
		if err != nil {
			cmd.Printf("Token check failed: %v\n", err)
			return
		}
		if login != creds.Username {
			cmd.Printf("Token belongs to %q, not %q\n", login, creds.Username)
			return
		}
		cmd.Printf("Token is valid for %s\n", login)
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Shows an example of usage",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("%s clear\n", config.AppName)
		cmd.Printf("%s creds\n", config.AppName)
		cmd.Printf("%s set --username <YOUR_NAME> --token <YOUR_TOKEN>\n", config.AppName)
		cmd.Printf("%s stats\n", config.AppName)
		cmd.Println("Flags: --help, --version")
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Shows how to get a GitHub token",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(`Create a personal access token at https://github.com/settings/tokens.
A classic token with the "repo" scope (or a fine-grained token with read access
to metadata and contents) lets ghloc read contributor statistics of private repos.`)
	},
}

func init() {
	rootCmd.AddCommand(setCmd, clearCmd, credsCmd, exampleCmd, tokenCmd)

	setCmd.Flags().String("username", "", "Sets the GitHub username")
	setCmd.Flags().String("token", "", "Sets the GitHub token")

	clearCmd.Flags().Bool("username", false, "Clears the GitHub username only")
	clearCmd.Flags().Bool("token", false, "Clears the GitHub token only")

	credsCmd.Flags().Bool("verify", false, "Check the token against the GitHub API")
}
