// Package cmd provides the CLI commands for trainhub.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trainhub/trainhub/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "trainhub",
	Short: "trainhub - training institution portal client",
	Long: `trainhub is a command-line client for the training-institution portal.

It browses institutions, training courses, the community board, and the
Q&A section, and manages your portal account session.

Quick start:
  1. Browse courses:  trainhub trainings --search backend
  2. Register:        trainhub register --user you --nickname You --training 42
  3. Log in:          trainhub login --user you --remember

Sessions:
  A login with --remember survives reboots (stored in your user config
  dir). Without it, the session lasts until the next reboot (stored in
  the per-boot runtime dir). "trainhub logout" removes both.

Configuration:
  Config is loaded from trainhub.yaml in the current directory,
  $HOME/.trainhub/, or /etc/trainhub/.

  Environment variables can override config values with the TRAINHUB_ prefix.
  Example: TRAINHUB_API_BASE_URL=https://portal.example.com/api

Commands:
  login         Log in to the portal
  logout        Log out and remove stored credentials
  whoami        Show the current session
  register      Register a new portal account
  institutions  List training institutions
  trainings     List or search training courses
  board         Browse and post to the community board
  qna           Browse and post to the Q&A section
  version       Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./trainhub.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
