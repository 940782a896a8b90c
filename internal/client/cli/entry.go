package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophjournal/internal/client/models"
	"github.com/spf13/cobra"
)

func newEntryCommand(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Add and list journal entries",
	}
	cmd.AddCommand(newEntryAddCommand(app), newEntryListCommand(app))
	return cmd
}

func newEntryAddCommand(app func() *App) *cobra.Command {
	var (
		summary    string
		mood       string
		activities []string
	)

	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "Encrypt and store a new entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.remoteUser()
			if err != nil {
				return err
			}
			content, err := readText(cmd, args, "Entry")
			if err != nil {
				return err
			}

			e, err := a.journal.AddEntry(cmd.Context(), userID, models.Entry{
				Content:    content,
				Summary:    summary,
				Mood:       mood,
				Activities: activities,
			})
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "entry %s saved", e.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "short summary of the entry")
	cmd.Flags().StringVar(&mood, "mood", "", "mood tag")
	cmd.Flags().StringSliceVar(&activities, "activity", nil, "activity tag, repeatable")
	return cmd
}

func newEntryListCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries, decrypted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.remoteUser()
			if err != nil {
				return err
			}
			entries, err := a.journal.ListEntries(cmd.Context(), userID)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tMOOD\tCONTENT")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04"), e.Mood, oneLine(e.Content))
			}
			return tw.Flush()
		},
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
