package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove stored credentials",
	Long: `Log out of the portal.

Removes the session token and cached profile from both the durable and
the per-boot credential stores. Safe to run when not logged in.`,
	RunE: runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	app.sessions.Logout()
	fmt.Println("Logged out.")
	return nil
}
