package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/myrjola/finbias/cmd/cli/check"
	"github.com/myrjola/finbias/cmd/cli/quiz"
	"github.com/myrjola/finbias/internal/errors"
	"github.com/spf13/cobra"
)

func init() {
	// The CLI works without a .env file.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(quiz.Group)
	rootCmd.AddCommand(quiz.Questions)
	rootCmd.AddCommand(quiz.Score)
	rootCmd.AddGroup(check.Group)
	rootCmd.AddCommand(check.Validate)
}

var rootCmd = &cobra.Command{
	Use:          "finbias-cli",
	Long:         `Command line utilities for the financial bias assessment https://github.com/myrjola/finbias`,
	SilenceUsage: true,
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
