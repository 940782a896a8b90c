package cli

import (
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newSaltCommand(app func() *App) *cobra.Command {
	var list, forget bool

	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Show the user's default salt, creating it on first use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if list {
				users, err := a.salts.Users(cmd.Context())
				if err != nil {
					return err
				}
				sort.Strings(users)
				for _, u := range users {
					fmt.Fprintln(cmd.OutOrStdout(), u)
				}
				return nil
			}

			userID, err := a.userID()
			if err != nil {
				return err
			}
			if forget {
				if err := a.salts.Forget(cmd.Context(), userID); err != nil {
					return err
				}
				printOK(cmd.ErrOrStderr(), "forgot the default salt of %s", userID)
				return nil
			}
			salt, err := a.salts.GetOrCreate(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(salt))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list users with a stored salt")
	cmd.Flags().BoolVar(&forget, "forget", false, "remove the user's stored salt")
	return cmd
}
