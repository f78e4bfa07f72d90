package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/dash/cmd"
	"github.com/grovetools/dash/cmd/config"
	"github.com/grovetools/dash/pkg/dashboard"
)

var (
	svc     *dashboard.Service
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "dash",
		Short:         "A personal productivity dashboard",
		Long:          "Todos, sticky notes, a calendar and a folder/note explorer, persisted per user.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	config.RegisterFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Runs once before any subcommand.
		config.InitConfig()
		log := config.NewLogger(verbose)

		var err error
		svc, err = config.InitService(log)
		return err
	}

	rootCmd.AddCommand(cmd.NewSignupCmd(&svc))
	rootCmd.AddCommand(cmd.NewLoginCmd(&svc))
	rootCmd.AddCommand(cmd.NewLogoutCmd(&svc))
	rootCmd.AddCommand(cmd.NewWhoamiCmd(&svc))
	rootCmd.AddCommand(cmd.NewTodoCmd(&svc))
	rootCmd.AddCommand(cmd.NewStickyCmd(&svc))
	rootCmd.AddCommand(cmd.NewExplorerCmd(&svc))
	rootCmd.AddCommand(cmd.NewCalCmd(&svc))
	rootCmd.AddCommand(cmd.NewBackupCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
