package types

import (
	"context"
	"errors"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"formular230/internal/app/client"
)

type contextKey string

// ClientAppKey - ключ *client.App в контексте команды
const ClientAppKey contextKey = "app"

// RequestTimeout - таймаут одной операции с сервером
const RequestTimeout = 60 * time.Second

var (
	Success = color.New(color.FgGreen).SprintFunc()
	Warning = color.New(color.FgYellow).SprintFunc()
	Bold    = color.New(color.Bold).SprintFunc()
)

// App достает приложение, созданное в PersistentPreRunE
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, errors.New("приложение не инициализировано")
	}
	return app, nil
}

// WithTimeout - контекст одной операции
func WithTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), RequestTimeout)
}
