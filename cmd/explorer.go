package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/dash/pkg/dashboard"
	"github.com/grovetools/dash/pkg/explorer"
)

func NewExplorerCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ex",
		Short:   "Manage the folder/note explorer",
		Aliases: []string{"explorer"},
	}

	cmd.AddCommand(newExMkdirCmd(svc))
	cmd.AddCommand(newExNewCmd(svc))
	cmd.AddCommand(newExTreeCmd(svc))
	cmd.AddCommand(newExRenameCmd(svc))
	cmd.AddCommand(newExMvCmd(svc))
	cmd.AddCommand(newExRmCmd(svc))
	cmd.AddCommand(newExPinCmd(svc))
	cmd.AddCommand(newExPinnedCmd(svc))
	cmd.AddCommand(newExCatCmd(svc))
	cmd.AddCommand(newExWriteCmd(svc))
	cmd.AddCommand(newExOpenCmd(svc))

	return cmd
}

func newExMkdirCmd(svc **dashboard.Service) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "mkdir",
		Short: "Create a folder at the explorer root",
		Long: `Create a new pinned folder at the explorer root and print its id.

Folders always live at the root; the explorer keeps the filing hierarchy one
folder deep by design.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := (*svc).AddFolder()
			if err != nil {
				return err
			}
			if name != "" {
				if err := (*svc).RenameItem(id, name); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Folder name (default \"Unnamed Folder\")")
	return cmd
}

func newExNewCmd(svc **dashboard.Service) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "new <folder-id>",
		Short: "Create a note inside a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent := (*svc).Forest().Find(args[0])
			if parent == nil || parent.Kind != explorer.KindFolder {
				return fmt.Errorf("no folder with id %s", args[0])
			}
			if err := (*svc).AddExplorerNote(args[0]); err != nil {
				return err
			}

			children := (*svc).Forest().Find(args[0]).Children
			created := children[len(children)-1]
			if name != "" {
				if err := (*svc).RenameItem(created.ID, name); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Note name (default \"New Note\")")
	return cmd
}

func newExTreeCmd(svc **dashboard.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "tree",
		Short:   "Print the explorer tree",
		Aliases: []string{"ls", "list"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			forest := (*svc).Forest()

			if jsonOutput {
				data, err := json.MarshalIndent(forest, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal explorer: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if len(forest) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Empty explorer")
				return nil
			}
			printTree(cmd.OutOrStdout(), forest, 0)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func printTree(w io.Writer, items []explorer.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, it := range items {
		pin := ""
		if it.Pinned {
			pin = " *"
		}
		switch it.Kind {
		case explorer.KindFolder:
			fmt.Fprintf(w, "%s%s/ [%s]%s\n", indent, it.Name, it.ID, pin)
			printTree(w, it.Children, depth+1)
		default:
			fmt.Fprintf(w, "%s%s [%s]%s\n", indent, it.Name, it.ID, pin)
		}
	}
}

func newExRenameCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a folder or note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if name == "" {
				return errors.New("name must not be empty")
			}
			return (*svc).RenameItem(args[0], name)
		},
	}
}

func newExMvCmd(svc **dashboard.Service) *cobra.Command {
	var (
		toFolder string
		toRoot   bool
	)

	cmd := &cobra.Command{
		Use:   "mv <id>",
		Short: "Move an item into a folder or to the root",
		Long: `Move an item to a new parent.

Examples:
  dash ex mv NOTE_ID --to FOLDER_ID   # file a note into a folder
  dash ex mv NOTE_ID --root           # lift an item to the explorer root

Folders cannot be nested: moving a folder into another folder is refused.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if toRoot == (toFolder != "") {
				return errors.New("exactly one of --to or --root is required")
			}
			var newParent *string
			if toFolder != "" {
				newParent = &toFolder
			}
			return (*svc).MoveItem(args[0], newParent)
		},
	}

	cmd.Flags().StringVar(&toFolder, "to", "", "Target folder id")
	cmd.Flags().BoolVar(&toRoot, "root", false, "Move to the explorer root")
	return cmd
}

func newExRmCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete an item (folders take their whole subtree)",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*svc).DeleteItem(args[0])
		},
	}
}

func newExPinCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Toggle an item's pinned flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*svc).TogglePin(args[0])
		},
	}
}

func newExPinnedCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "pinned",
		Short: "List pinned items (the sidebar shortcut list)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, it := range (*svc).Forest().Pinned() {
				suffix := ""
				if it.Kind == explorer.KindFolder {
					suffix = "/"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s [%s]\n", it.Name, suffix, it.ID)
			}
			return nil
		},
	}
}

func newExCatCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <note-id>",
		Short: "Print a note's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := (*svc).Forest().Find(args[0])
			if item == nil || item.Kind != explorer.KindNote {
				return fmt.Errorf("no note with id %s", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), item.Content)
			return nil
		},
	}
}

func newExWriteCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <note-id> [content]",
		Short: "Replace a note's content (from args or stdin)",
		Long: `Replace a note's body.

Examples:
  dash ex write NOTE_ID "updated text"
  cat draft.md | dash ex write NOTE_ID`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item := (*svc).Forest().Find(args[0])
			if item == nil || item.Kind != explorer.KindNote {
				return fmt.Errorf("no note with id %s", args[0])
			}

			var content string
			if len(args) > 1 {
				content = strings.Join(args[1:], " ")
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}
			return (*svc).UpdateNoteContent(args[0], content)
		},
	}
	return cmd
}

func newExOpenCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "open [note-id]",
		Short: "Select the active note (no argument clears the selection)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return (*svc).SelectNote("")
			}
			item := (*svc).Forest().Find(args[0])
			if item == nil || item.Kind != explorer.KindNote {
				return fmt.Errorf("no note with id %s", args[0])
			}
			return (*svc).SelectNote(args[0])
		},
	}
}
