package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/grovetools/dash/pkg/dashboard"
)

// readPassword prompts on stderr and reads without echo when stdin is a
// terminal, falling back to the flag value otherwise.
func readPassword(cmd *cobra.Command, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func NewSignupCmd(svc **dashboard.Service) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "signup <email> <name>",
		Short: "Register a new account and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, name := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			if email == "" || name == "" {
				return errors.New("email and name must not be empty")
			}

			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}
			if pw == "" {
				return errors.New("password must not be empty")
			}

			user, err := (*svc).SignUp(email, pw, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed up and logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func NewLoginCmd(svc **dashboard.Service) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and switch the dashboard to that user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := readPassword(cmd, password)
			if err != nil {
				return err
			}

			user, err := (*svc).LogIn(strings.TrimSpace(args[0]), pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", user.Name, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func NewLogoutCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and switch back to the anonymous dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*svc).LogOut(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func NewWhoamiCmd(svc **dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := (*svc).CurrentUser()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in (anonymous)")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", user.Name, user.Email, user.ID)
			return nil
		},
	}
}
