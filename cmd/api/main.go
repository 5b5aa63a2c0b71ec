package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/manageer/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "manageer",
		Short: "Manageer API Server",
		Long:  `Manageer is a task board management service with per-user task lists and session-cookie authentication.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
