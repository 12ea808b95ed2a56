package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/contactbook/internal/auth"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

func newUsersCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect the credential file and hash passwords",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List accounts and how their passwords are stored",
		Args:  exactArgs(0, "contactbook users ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := auth.FileSource{Path: e.cfg.UsersFile}.Users(cmd.Context())
			if err != nil {
				return err
			}
			t := ui.Current()
			lines := []string{t.Title.Render("Users") + "  " + t.Muted.Render(e.cfg.UsersFile), ""}
			plain := 0
			for _, u := range users {
				kind := t.Success.Render("bcrypt")
				if !auth.IsHashed(u.Password) {
					kind = t.Error.Render("plaintext")
					plain++
				}
				lines = append(lines, fmt.Sprintf("%-16s %-20s %s", u.Username, u.DisplayName, kind))
			}
			if plain > 0 {
				lines = append(lines, "", t.Pending.Render(fmt.Sprintf("%d plaintext password(s): replace them with `contactbook users hash`", plain)))
			}
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}

	hash := &cobra.Command{
		Use:   "hash [password]",
		Short: "Print a bcrypt hash for the credential file (reads stdin without an argument)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usagef("usage: contactbook users hash [password]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return usagef("no password on stdin")
				}
				pw = strings.TrimRight(line, "\r\n")
			}
			h, err := auth.Hash(pw)
			if err != nil {
				return usageError{err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.AddCommand(ls, hash)
	return cmd
}
