package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/contactbook/internal/tasks"
	"github.com/Makepad-fr/contactbook/internal/ui"
	"github.com/Makepad-fr/contactbook/internal/validation"
)

func (e *env) taskList() (*tasks.List, error) {
	d, err := e.durable(ScopeTasks)
	if err != nil {
		return nil, err
	}
	return tasks.New(d, time.Now), nil
}

func newTasksCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List, add, toggle and remove tasks",
	}

	var group bool
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List tasks",
		Args:  exactArgs(0, "contactbook tasks ls [--group]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := e.taskList()
			if err != nil {
				return err
			}
			entries, err := l.All()
			if err != nil {
				return fmt.Errorf("load: %w", err)
			}
			t := ui.Current()
			d, p := tasks.Stats(entries)
			lines := []string{
				fmt.Sprintf("%s  %s %d  %s %d  %s %d",
					t.Title.Render("Tasks"),
					t.Success.Render("✔"), d,
					t.Pending.Render("•"), p,
					t.Accent.Render("Total"), len(entries)),
				t.Muted.Render(ui.ProgressBar(d, d+p, 28)),
				"",
			}
			if group {
				lines = append(lines, groupLines(entries)...)
			} else {
				lines = append(lines, flatLines(entries)...)
			}
			lines = append(lines, "", t.Muted.Render(`Tip: add with contactbook tasks add "Buy milk"`))
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
	ls.Flags().BoolVar(&group, "group", false, "group output by pending/done")

	add := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a task (title can be multiple words)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usagef("usage: contactbook tasks add <title...>")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args, " ")
			if msg := validation.New().Check(validation.Task, title); msg != "" {
				return usagef("%s", msg)
			}
			l, err := e.taskList()
			if err != nil {
				return err
			}
			if _, err := l.Add(title); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}

	done := &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for the task at a 1-based index",
		Args:  exactArgs(1, "contactbook tasks done <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, entries, i, err := e.pickTask(args[0])
			if err != nil {
				return err
			}
			en := entries[i]
			en.Task.Done = !en.Task.Done
			if err := l.Put(en); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "toggled")
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove the task at a 1-based index",
		Args:  exactArgs(1, "contactbook tasks rm <index>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, entries, i, err := e.pickTask(args[0])
			if err != nil {
				return err
			}
			if err := l.Remove(entries[i].Key); err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}

	cmd.AddCommand(ls, add, done, rm)
	return cmd
}

func (e *env) pickTask(arg string) (*tasks.List, []tasks.Entry, int, error) {
	l, err := e.taskList()
	if err != nil {
		return nil, nil, 0, err
	}
	entries, err := l.All()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("load: %w", err)
	}
	i, err := parseIndex(arg, len(entries))
	if err != nil {
		return nil, nil, 0, err
	}
	return l, entries, i, nil
}

func flatLines(entries []tasks.Entry) []string {
	t := ui.Current()
	if len(entries) == 0 {
		return []string{t.Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(entries))
	for i, en := range entries {
		box := t.Muted.Render(t.BoxUnchecked)
		if en.Task.Done {
			box = t.Success.Render(t.BoxChecked)
		}
		title := en.Task.Title
		if len(title) > 80 {
			title = title[:77] + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), box, title))
	}
	return out
}

func groupLines(entries []tasks.Entry) []string {
	var pend, done []tasks.Entry
	for _, en := range entries {
		if en.Task.Done {
			done = append(done, en)
		} else {
			pend = append(pend, en)
		}
	}
	t := ui.Current()
	section := func(name string, list []tasks.Entry) []string {
		lines := []string{t.Accent.Render(name)}
		if len(list) == 0 {
			return append(lines, t.Muted.Render("(none)"))
		}
		return append(lines, flatLines(list)...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}
