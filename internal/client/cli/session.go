package cli

import (
	"github.com/spf13/cobra"
)

func newSignInCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "signin",
		Short: "Prepare the session and encrypt records still stored in plaintext",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.remoteUser()
			if err != nil {
				return err
			}

			res, err := a.session.SignIn(cmd.Context(), userID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printOK(w, "signed in as %s", userID)
			if res.Salt == nil {
				printWarn(w, "default salt could not be prepared")
			}
			if !res.Migrated {
				printWarn(w, "migration skipped")
				return nil
			}
			printOK(w, "encrypted %d entries and %d tasks", res.Migration.EntriesUpdated, res.Migration.TasksUpdated)
			return nil
		},
	}
}

func newMigrateCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Encrypt every record of the user that is still plaintext",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.remoteUser()
			if err != nil {
				return err
			}

			res, err := a.session.Migrate(cmd.Context(), userID)
			if err != nil {
				return err
			}
			printOK(cmd.OutOrStdout(), "encrypted %d entries and %d tasks", res.EntriesUpdated, res.TasksUpdated)
			return nil
		},
	}
}
