package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"formular230/cmd/client/cmd/types"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Завершить сессию",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		if err := app.Logout(ctx); err != nil {
			return err
		}

		fmt.Println(types.Success("✓ Deconectat"))
		return nil
	},
}
