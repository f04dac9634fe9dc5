package settings

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"formular230/cmd/client/cmd/types"
)

// SettingsCmd - email для уведомлений и пароль администратора
var SettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Настройки администратора",
}

var GetCmd = &cobra.Command{
	Use:   "get",
	Short: "Показать текущие настройки",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		s, err := app.GetSettings(ctx)
		if err != nil {
			return fmt.Errorf("ошибка получения настроек: %w", err)
		}

		fmt.Printf("Email: %s\n", s.Email)
		if !s.Available {
			fmt.Println(types.Warning("⚠ Stocarea nu este disponibilă, se afișează valorile implicite"))
		}
		return nil
	},
}

var newEmail string

var SetCmd = &cobra.Command{
	Use:   "set",
	Short: "Сменить email и пароль",
	Long: `Перезаписывает настройки целиком: email берется из --email,
новый пароль запрашивается дважды.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Parola nouă: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		fmt.Print("Repetați parola: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("пароли не совпадают")
		}

		ctx, cancel := types.WithTimeout(cmd)
		defer cancel()

		if err := app.UpdateSettings(ctx, newEmail, string(password)); err != nil {
			return fmt.Errorf("ошибка сохранения настроек: %w", err)
		}

		fmt.Println(types.Success("✓ Setările au fost salvate"))
		return nil
	},
}

func init() {
	SetCmd.Flags().StringVar(&newEmail, "email", "", "email для уведомлений")
	_ = SetCmd.MarkFlagRequired("email")
}
