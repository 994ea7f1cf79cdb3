// Package cli is the terminal surface over the task store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/query"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

// Opener returns an opened store and a func releasing its storage.
type Opener func(ctx context.Context) (*taskUC.Store, func(context.Context) error, error)

type app struct {
	open  Opener
	store *taskUC.Store
	close func(context.Context) error
}

// Run executes the tasks command line and releases storage afterwards, even
// when the command fails.
func Run(ctx context.Context, open Opener, args []string, out, errOut io.Writer) error {
	a := &app{open: open}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if a.close != nil {
		if closeErr := a.close(ctx); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close task store: %w", closeErr))
		}
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasks",
		Short:         "Manage a local task list",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			store, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return fmt.Errorf("open task store: %w", err)
			}
			a.store, a.close = store, closeFn
			return nil
		},
	}

	root.AddCommand(
		a.addCommand(),
		a.listCommand(),
		a.showCommand(),
		a.editCommand(),
		a.doneCommand(),
		a.removeCommand(),
	)
	return root
}

func (a *app) addCommand() *cobra.Command {
	var description, priority string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			draft := domain.NewDraft().
				WithTitle(args[0]).
				WithDescription(description).
				WithPriority(p)
			created, ok := a.store.Create(cmd.Context(), draft)
			if !ok {
				return domain.ErrEmptyTitle
			}
			fmt.Fprint(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).task(created))
			return a.checkSaved()
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", domain.PriorityMedium.String(), "high, medium or low")
	return cmd
}

func (a *app) listCommand() *cobra.Command {
	var q string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, open ones first by priority",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			st := newStyles(out)
			all := a.store.All()
			view := query.View(all, q)
			for _, t := range view {
				fmt.Fprint(out, st.task(t))
			}
			fmt.Fprint(out, st.summary(query.Stats(all), len(view), q))
			return nil
		},
	}
	cmd.Flags().StringVarP(&q, "query", "q", "", "only tasks whose title or description contains this text")
	return cmd
}

func (a *app) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).task(t))
			return nil
		},
	}
}

func (a *app) editCommand() *cobra.Command {
	var title, description, priority string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, description or priority of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			edit := domain.EditOf(current)
			flags := cmd.Flags()
			if flags.Changed("title") {
				edit = edit.WithTitle(title)
			}
			if flags.Changed("description") {
				edit = edit.WithDescription(description)
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(priority)
				if err != nil {
					return err
				}
				edit = edit.WithPriority(p)
			}
			if !a.store.Update(cmd.Context(), current.ID, edit) {
				return notFound(current.ID)
			}
			updated, _ := a.store.Get(current.ID)
			fmt.Fprint(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).task(updated))
			return a.checkSaved()
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "new priority")
	return cmd
}

func (a *app) doneCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Mark a task done, or open again if it already is",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.store.ToggleComplete(cmd.Context(), id) {
				return notFound(id)
			}
			t, _ := a.store.Get(id)
			fmt.Fprint(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout()).task(t))
			return a.checkSaved()
		},
	}
}

func (a *app) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !a.store.Delete(cmd.Context(), id) {
				return notFound(id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted #%d\n", id)
			return a.checkSaved()
		},
	}
}

func (a *app) lookup(raw string) (domain.Task, error) {
	id, err := parseID(raw)
	if err != nil {
		return domain.Task{}, err
	}
	t, ok := a.store.Get(id)
	if !ok {
		return domain.Task{}, notFound(id)
	}
	return t, nil
}

// checkSaved reports a failed save. The process exits right after the
// command, so an unsaved change is lost.
func (a *app) checkSaved() error {
	if err := a.store.LastSaveError(); err != nil {
		return fmt.Errorf("change not saved: %w", err)
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.WrapError(domain.ErrCodeInvalid, "task id must be an integer", err)
	}
	return id, nil
}

func notFound(id int64) error {
	return domain.WrapError(domain.ErrCodeNotFound, domain.ErrTaskNotFound.Message, fmt.Errorf("no task #%d", id))
}
