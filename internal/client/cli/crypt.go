package cli

import (
	"fmt"

	"github.com/dmitrijs2005/gophjournal/internal/client/engine"
	"github.com/spf13/cobra"
)

func newEncryptCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt [text...]",
		Short: "Encrypt text for the user and print the envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.userID()
			if err != nil {
				return err
			}
			text, err := readText(cmd, args, "Text")
			if err != nil {
				return err
			}

			res := a.engine.Seal(cmd.Context(), text, userID)
			if res.Status != engine.StatusOK {
				reportStatus(cmd.ErrOrStderr(), res.Status)
				return fmt.Errorf("text was not encrypted (%s)", res.Status)
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Value)
			return nil
		},
	}
}

func newDecryptCommand(app func() *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <envelope>",
		Short: "Decrypt an envelope for the user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			userID, err := a.userID()
			if err != nil {
				return err
			}
			text, err := readText(cmd, args, "Envelope")
			if err != nil {
				return err
			}

			res := a.engine.Open(cmd.Context(), text, userID)
			reportStatus(cmd.ErrOrStderr(), res.Status)
			fmt.Fprintln(cmd.OutOrStdout(), res.Value)
			return nil
		},
	}
}
