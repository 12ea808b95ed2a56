package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/ui"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the views and which ones need a login",
		Args:  exactArgs(0, "contactbook routes"),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := ui.Current()
			lines := []string{t.Title.Render("Routes"), ""}
			for _, r := range route.All() {
				access := t.Muted.Render("public")
				if r.Protected() {
					access = t.Pending.Render("login")
				}
				lines = append(lines, fmt.Sprintf("%-15s %-14s %s", r.Path(), r.Title(), access))
			}
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}
