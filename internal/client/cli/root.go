package cli

import (
	"context"
	"io"

	"github.com/dmitrijs2005/gophjournal/internal/client/config"
	"github.com/spf13/cobra"
)

// Execute runs the CLI with args and returns the command error, if any.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	var app *App
	root := newRootCommand(&app, in, out, errOut)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if app != nil {
		_ = app.Close()
	}
	return err
}

func newRootCommand(app **App, in io.Reader, out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "journal",
		Short:         "End-to-end encrypted journal client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			a, err := NewApp(cmd.Context(), cfg, errOut)
			if err != nil {
				return err
			}
			*app = a
			return nil
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	config.RegisterFlags(root.PersistentFlags())

	get := func() *App { return *app }
	root.AddCommand(
		newEncryptCommand(get),
		newDecryptCommand(get),
		newSaltCommand(get),
		newSignInCommand(get),
		newMigrateCommand(get),
		newEntryCommand(get),
		newTaskCommand(get),
	)
	return root
}
