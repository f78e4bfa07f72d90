package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/dash/pkg/dashboard"
	"github.com/grovetools/dash/pkg/sticky"
)

func NewStickyCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sticky",
		Short: "Manage sticky-note cards",
	}

	cmd.AddCommand(newStickyAddCmd(svc))
	cmd.AddCommand(newStickyListCmd(svc))
	cmd.AddCommand(newStickyEditCmd(svc))
	cmd.AddCommand(newStickyRmCmd(svc))

	return cmd
}

func newStickyAddCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Create an empty sticky note with a random card color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).AddSticky(); err != nil {
				return err
			}
			notes := (*svc).Stickies()
			created := notes[len(notes)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", created.ID, created.Color)
			return nil
		},
	}
}

func newStickyListCmd(svc **dashboard.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List sticky notes",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := (*svc).Stickies()

			if jsonOutput {
				data, err := json.MarshalIndent(notes, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal sticky notes: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sticky notes")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, n := range notes {
				title := n.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", n.ID, n.Color, title, n.Content)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newStickyEditCmd(svc **dashboard.Service) *cobra.Command {
	var (
		title   string
		content string
		color   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a sticky note's title, content or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch sticky.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}
			return (*svc).UpdateSticky(args[0], patch)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().StringVar(&color, "color", "", "New card color")
	return cmd
}

func newStickyRmCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a sticky note",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*svc).DeleteSticky(args[0])
		},
	}
}
