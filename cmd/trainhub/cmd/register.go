package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trainhub/trainhub/internal/domain/account"
)

var (
	registerUser     string
	registerPassword string
	registerNickname string
	registerTraining int64
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new portal account",
	Long: `Register a new portal account.

Registration requires a training course. Find the course ID with
"trainhub trainings --search <keyword>" and pass it via --training.

Registration does not log you in; run "trainhub login" afterwards.`,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerUser, "user", "u", "", "portal user ID")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "password (prompted when omitted)")
	registerCmd.Flags().StringVarP(&registerNickname, "nickname", "n", "", "display nickname")
	registerCmd.Flags().Int64Var(&registerTraining, "training", 0, "training course ID")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	user := registerUser
	if user == "" {
		user, err = promptLine("User ID: ")
		if err != nil {
			return err
		}
	}
	password := registerPassword
	if password == "" {
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}
	nickname := registerNickname
	if nickname == "" {
		nickname, err = promptLine("Nickname: ")
		if err != nil {
			return err
		}
	}

	err = app.gateway.Register(cmd.Context(), account.Registration{
		UserID:     user,
		Password:   password,
		Nickname:   nickname,
		TrainingID: registerTraining,
	})
	if errors.Is(err, account.ErrMissingCourse) {
		return fmt.Errorf("a training course is required: pick one with \"trainhub trainings --search <keyword>\" and pass --training <id>")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s. Run \"trainhub login\" to sign in.\n", user)
	return nil
}
