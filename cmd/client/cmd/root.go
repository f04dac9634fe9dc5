// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"formular230/cmd/client/cmd/admin"
	"formular230/cmd/client/cmd/forms"
	"formular230/cmd/client/cmd/settings"
	"formular230/cmd/client/cmd/types"
	"formular230/internal/app/client"
	"formular230/internal/app/client/config"
	"formular230/internal/utils/logger"
)

var (
	cfgFile   string
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "formular230",
	Short: "Formular 230 - консоль администратора",
	Long: `Консольный клиент администратора Formular 230.

Позволяет войти по паролю администратора, искать и удалять заявки,
скачивать их в PDF, JSON и Excel и менять настройки.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}

	log := logger.Discard()
	if debug {
		log = logger.New(cfg.Env, "debug")
		slog.SetDefault(log)
	}

	app, err := client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл (по умолчанию ~/.formular230/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL сервера Formular 230")

	rootCmd.AddCommand(admin.LoginCmd, admin.LogoutCmd, admin.StatusCmd)

	rootCmd.AddCommand(forms.FormsCmd)
	forms.FormsCmd.AddCommand(forms.ListCmd, forms.DeleteCmd, forms.DownloadCmd, forms.ExportCmd)

	rootCmd.AddCommand(settings.SettingsCmd)
	settings.SettingsCmd.AddCommand(settings.GetCmd, settings.SetCmd)
}
