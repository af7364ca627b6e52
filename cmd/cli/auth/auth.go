package auth

import (
	"fmt"

	"github.com/crucial707/springboard/cmd/cli/config"
	"github.com/spf13/cobra"
)

// InitAuth registers the auth command group (login, logout) on the root command.
func InitAuth(rootCmd *cobra.Command) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the stored login session",
	}
	authCmd.AddCommand(loginCmd(), logoutCmd())
	rootCmd.AddCommand(authCmd)
}

// loginCmd stores the BLOGSESSION cookie of a browser login. The API only
// accepts users logged in through an OAuth2 provider, so the CLI reuses that
// session instead of authenticating itself.
func loginCmd() *cobra.Command {
	var cookie string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a browser session for subsequent commands",
		Long:  "Log in with Google or Naver in the browser, copy the BLOGSESSION cookie value and pass it with --session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cookie == "" {
				return fmt.Errorf("--session is required")
			}
			if err := config.SaveSession(cookie); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			fmt.Println("Session stored locally.")
			return nil
		},
	}

	cmd.Flags().StringVar(&cookie, "session", "", "Value of the BLOGSESSION cookie")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ClearSession(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
