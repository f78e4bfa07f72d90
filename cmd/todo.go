package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/grovetools/dash/pkg/dashboard"
)

func NewTodoCmd(svc **dashboard.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the todo list",
	}

	cmd.AddCommand(newTodoAddCmd(svc))
	cmd.AddCommand(newTodoListCmd(svc))
	cmd.AddCommand(newTodoToggleCmd(svc))
	cmd.AddCommand(newTodoEditCmd(svc))
	cmd.AddCommand(newTodoRmCmd(svc))

	return cmd
}

func newTodoAddCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return errors.New("todo text must not be empty")
			}
			return (*svc).AddTodo(text)
		},
	}
}

func newTodoListCmd(svc **dashboard.Service) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List todos in insertion order",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			todos := (*svc).Todos()

			if jsonOutput {
				data, err := json.MarshalIndent(todos, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal todos: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if len(todos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No todos")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range todos {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				fmt.Fprintf(w, "[%s]\t%s\t%s\n", mark, t.ID, t.Text)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newTodoToggleCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Toggle a todo's completed state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*svc).ToggleTodo(args[0])
		},
	}
}

func newTodoEditCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Replace a todo's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return errors.New("todo text must not be empty")
			}
			return (*svc).UpdateTodoText(args[0], text)
		},
	}
}

func newTodoRmCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a todo",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return (*svc).DeleteTodo(args[0])
		},
	}
}
