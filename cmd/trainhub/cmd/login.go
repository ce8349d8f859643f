package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trainhub/trainhub/internal/domain/account"
	"github.com/trainhub/trainhub/internal/domain/session"
)

var (
	loginUser     string
	loginPassword string
	loginRemember bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the portal",
	Long: `Log in to the portal and store the session.

With --remember the session is stored durably and survives reboots.
Without it, the session lives in the per-boot runtime dir and lasts
until the next reboot.

The password is read from --password or, when omitted, prompted on
standard input.`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "portal user ID")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginRemember, "remember", false, "keep the session across reboots")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	user := loginUser
	if user == "" {
		user, err = promptLine("User ID: ")
		if err != nil {
			return err
		}
	}
	password := loginPassword
	if password == "" {
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}

	persistence := session.Ephemeral
	if loginRemember {
		persistence = session.Durable
	}

	err = app.gateway.Login(cmd.Context(), account.Credentials{
		UserID:      user,
		Password:    password,
		Persistence: persistence,
	})
	if err != nil {
		return err
	}

	nickname := user
	if u := app.sessions.User(); u != nil {
		nickname = u.Nickname
	}
	fmt.Printf("Logged in as %s (%s session)\n", nickname, persistence)
	return nil
}

// promptLine prints a prompt on stderr and reads one line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
