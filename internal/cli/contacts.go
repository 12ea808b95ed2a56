package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/contactbook/internal/contacts"
	"github.com/Makepad-fr/contactbook/internal/logging"
	"github.com/Makepad-fr/contactbook/internal/model"
	"github.com/Makepad-fr/contactbook/internal/store"
	"github.com/Makepad-fr/contactbook/internal/ui"
	"github.com/Makepad-fr/contactbook/internal/validation"
)

func (e *env) book() (*contacts.Book, error) {
	d, err := e.durable(ScopeContacts)
	if err != nil {
		return nil, err
	}
	return contacts.New(d, time.Now, e.log.Named(logging.Store)), nil
}

func newContactsCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List, add and remove contacts",
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "List contacts",
		Args:  exactArgs(0, "contactbook contacts ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.book()
			if err != nil {
				return err
			}
			entries, err := b.List()
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			ui.Panel(cmd.OutOrStdout(), contactLines(entries))
			return nil
		},
	}

	add := &cobra.Command{
		Use:     "add <full name> <contact number> <email address>",
		Short:   "Add a contact",
		Example: `  contactbook contacts add "Jane Doe" 555-123-4567 jane@example.com`,
		Args:    exactArgs(3, `contactbook contacts add "<full name>" <contact number> <email address>`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if i, msg := validation.New().Contact(args[0], args[1], args[2]); i >= 0 {
				return usagef("%s", msg)
			}
			b, err := e.book()
			if err != nil {
				return err
			}
			key, err := b.Add(model.Contact{FullName: args[0], ContactNumber: args[1], EmailAddress: args[2]})
			if err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "added "+key)
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <index|key>",
		Short: "Remove a contact by list position or storage key",
		Args:  exactArgs(1, "contactbook contacts rm <index|key>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := e.book()
			if err != nil {
				return err
			}
			key := args[0]
			if _, err := b.Get(key); errors.Is(err, store.ErrNotFound) {
				entries, err := b.List()
				if err != nil {
					return fmt.Errorf("load: %w", err)
				}
				i, err := parseIndex(args[0], len(entries))
				if err != nil {
					return err
				}
				key = entries[i].Key
			}
			if err := b.Remove(key); err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "removed "+key)
			return nil
		},
	}

	cmd.AddCommand(ls, add, rm)
	return cmd
}

func contactLines(entries []contacts.Entry) []string {
	t := ui.Current()
	lines := []string{
		fmt.Sprintf("%s  %s %d", t.Title.Render("Contacts"), t.Accent.Render("Total"), len(entries)),
		"",
	}
	if len(entries) == 0 {
		lines = append(lines, t.Muted.Render("no contacts"))
	}
	for i, en := range entries {
		c := en.Contact
		lines = append(lines, fmt.Sprintf("%s %-22s %-18s %s  %s",
			t.Muted.Render(fmt.Sprintf("%2d.", i+1)),
			c.FullName, c.ContactNumber, c.EmailAddress,
			t.Muted.Render(en.Key)))
	}
	lines = append(lines, "", t.Muted.Render(`Tip: add with contactbook contacts add "Jane Doe" 555-123-4567 jane@example.com`))
	return lines
}
