package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook/core/cmd/api/commands"
)

// @title Daybook API
// @version 1.0
// @description Personal notes, journal and task board backend

// @contact.name Daybook
// @contact.url https://github.com/daybook/core

// @license.name MIT
// @license.url https://github.com/daybook/core/blob/main/LICENSE

// @host localhost:5001
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "daybook",
		Short: "Daybook API Server",
		Long:  `Daybook is a personal notes, journal and task board application backend.`,
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
