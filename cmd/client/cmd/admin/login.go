package admin

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"formular230/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти как администратор",
	Long: `Запрашивает пароль администратора и сохраняет токен сессии
в ~/.formular230/token для последующих команд.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Parola: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		state, err := app.Login(ctx, string(password))
		if err != nil {
			return fmt.Errorf("ошибка аутентификации: %w", err)
		}

		fmt.Println(types.Success("✓ Autentificare reușită"))
		fmt.Printf("Sesiunea expiră la %s\n", state.ExpiresAt.Local().Format("02.01.2006 15:04"))
		return nil
	},
}
