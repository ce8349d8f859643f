package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	if !app.sessions.Authenticated() {
		fmt.Println("Not logged in.")
		return nil
	}

	u := app.sessions.User()
	if u == nil {
		// Token present but profile not yet fetched; an authenticated
		// session without a profile is a legal transient state.
		fmt.Printf("Logged in (%s session), profile unavailable\n", app.sessions.Persistence())
		return nil
	}

	fmt.Printf("Nickname:  %s\n", u.Nickname)
	if u.Company != "" {
		fmt.Printf("Company:   %s\n", u.Company)
	}
	fmt.Printf("Points:    %d\n", u.Point)
	fmt.Printf("Account:   %s\n", u.AccountID)
	fmt.Printf("Session:   %s\n", app.sessions.Persistence())
	return nil
}
