package main

import (
	"fmt"
	"os"

	"github.com/GabrielSalem-creator/clue-craft-conversation/cmd/cli/play"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	// A missing .env file is fine; the environment may be set by other means.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(play.Group)
	rootCmd.AddCommand(play.Play)
}

var rootCmd = &cobra.Command{
	Use:  "cluecraft-cli",
	Long: `Command line utilities for ClueCraft`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
