package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/dash/pkg/dashboard"
)

func NewBackupCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the active user's full dashboard state",
	}

	cmd.AddCommand(newBackupExportCmd(svc))
	cmd.AddCommand(newBackupImportCmd(svc))

	return cmd
}

func newBackupExportCmd(svc **dashboard.Service) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the full state as a YAML document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			return (*svc).ExportBackup(w)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func newBackupImportCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yml>",
		Short: "Replace the active user's state with a backup document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			if err := (*svc).ImportBackup(f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Backup imported")
			return nil
		},
	}
}
