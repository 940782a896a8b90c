package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/spf13/cobra"
)

func newTaskCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add and list tasks",
	}
	cmd.AddCommand(newTaskAddCommand(app), newTaskListCommand(app))
	return cmd
}

func newTaskAddCommand(app func() *App) *cobra.Command {
	var (
		entryID     string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Encrypt and store a new task",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.remoteUser()
			if err != nil {
				return err
			}
			title, err := readText(cmd, args, "Task")
			if err != nil {
				return err
			}

			t, err := a.journal.AddTask(cmd.Context(), userID, models.Task{
				EntryID:     entryID,
				Title:       title,
				Description: description,
			})
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "task %s saved", t.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&entryID, "entry", "", "id of the entry the task came from")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	return cmd
}

func newTaskListCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks, decrypted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.remoteUser()
			if err != nil {
				return err
			}
			tasks, err := a.journal.ListTasks(cmd.Context(), userID)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDONE\tTITLE\tDESCRIPTION")
			for _, t := range tasks {
				done := " "
				if t.Done {
					done = "x"
				}
				fmt.Fprintf(tw, "%s\t[%s]\t%s\t%s\n", t.ID, done, t.Title, oneLine(t.Description))
			}
			return tw.Flush()
		},
	}
}
