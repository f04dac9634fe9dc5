package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"formular230/cmd/client/cmd/types"
)

// StatusCmd показывает состояние сервера и локальной сессии
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Состояние сервера и сессии",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		health, err := app.CheckConnection(ctx)
		if err != nil {
			fmt.Printf("%s serverul nu răspunde: %v\n", types.Warning("⚠"), err)
		} else {
			storage := health.Storage
			if storage != "ok" {
				storage = types.Warning(storage)
			}
			fmt.Printf("Server: %s, stocare: %s\n", types.Success(health.Status), storage)
		}

		session, err := app.Session()
		if err != nil {
			fmt.Println(types.Warning("Nu sunteți autentificat"))
			return nil
		}
		fmt.Printf("Sesiune activă până la %s\n", session.ExpiresAt.Local().Format("02.01.2006 15:04"))
		return nil
	},
}
