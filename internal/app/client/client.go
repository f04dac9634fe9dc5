package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/exp/slog"

	"formular230/internal/app/client/config"
)

// ErrNotLoggedIn - локальной сессии нет или она истекла
var ErrNotLoggedIn = errors.New("nu sunteți autentificat, rulați: formular230 login")

type App struct {
	config *config.Config
	log    *slog.Logger
	api    *httpClient
	state  *AppState
	now    func() time.Time
}

// AppState - сохраненная сессия администратора
type AppState struct {
	Server    string    `json:"server"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if err := os.MkdirAll(cfg.ConfigDir, 0o700); err != nil {
		return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
	}

	app := &App{
		config: cfg,
		log:    log,
		api:    NewHTTPClient(cfg, log),
		now:    time.Now,
	}

	state, err := loadAppState(cfg.TokenPath)
	if err != nil {
		log.Warn("Не удалось загрузить сессию", "error", err)
	}
	if state != nil && state.Server == cfg.ServerURL && app.now().Before(state.ExpiresAt) {
		app.state = state
		app.api.SetToken(state.Token)
		log.Debug("Токен загружен из файла")
	}

	return app, nil
}

func loadAppState(path string) (*AppState, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (a *App) saveAppState() error {
	data, err := json.MarshalIndent(a.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(a.config.TokenPath, data, 0o600)
}

// IsAuthenticated - есть ли действующая локальная сессия
func (a *App) IsAuthenticated() bool {
	return a.state != nil
}

// Session возвращает текущую сессию или ErrNotLoggedIn
func (a *App) Session() (AppState, error) {
	if a.state == nil {
		return AppState{}, ErrNotLoggedIn
	}
	return *a.state, nil
}

func (a *App) CheckConnection(ctx context.Context) (Health, error) {
	return a.api.HealthCheck(ctx)
}

// Login получает токен и сохраняет его в файл
func (a *App) Login(ctx context.Context, password string) (AppState, error) {
	s, err := a.api.Login(ctx, password)
	if err != nil {
		return AppState{}, err
	}

	a.state = &AppState{Server: a.config.ServerURL, Token: s.Token, ExpiresAt: s.ExpiresAt}
	a.api.SetToken(s.Token)

	if err := a.saveAppState(); err != nil {
		return AppState{}, fmt.Errorf("ошибка сохранения токена: %w", err)
	}
	return *a.state, nil
}

// Logout отзывает токен на сервере и в любом случае удаляет локальный файл
func (a *App) Logout(ctx context.Context) error {
	if a.state == nil {
		return ErrNotLoggedIn
	}

	remoteErr := a.api.Logout(ctx)
	if errors.Is(remoteErr, ErrUnauthorized) {
		remoteErr = nil
	}

	if err := a.clearToken(); err != nil {
		return err
	}
	return remoteErr
}

func (a *App) clearToken() error {
	a.state = nil
	a.api.SetToken("")
	if err := os.Remove(a.config.TokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	return nil
}

func (a *App) ListForms(ctx context.Context, query string) (FormList, error) {
	if err := a.requireSession(); err != nil {
		return FormList{}, err
	}
	list, err := a.api.ListForms(ctx, query)
	return list, a.expire(err)
}

func (a *App) DeleteForm(ctx context.Context, id int64) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	return a.expire(a.api.DeleteForm(ctx, id))
}

// DownloadForm сохраняет заявку в outDir и возвращает путь к файлу
func (a *App) DownloadForm(ctx context.Context, id int64, format, outDir string) (string, error) {
	if err := a.requireSession(); err != nil {
		return "", err
	}
	f, err := a.api.DownloadForm(ctx, id, format)
	if err != nil {
		return "", a.expire(err)
	}
	return a.writeFile(f, outDir)
}

// Export сохраняет общую выгрузку в outDir и возвращает путь к файлу
func (a *App) Export(ctx context.Context, format, query, outDir string) (string, error) {
	if err := a.requireSession(); err != nil {
		return "", err
	}
	f, err := a.api.Export(ctx, format, query)
	if err != nil {
		return "", a.expire(err)
	}
	return a.writeFile(f, outDir)
}

func (a *App) GetSettings(ctx context.Context) (Settings, error) {
	if err := a.requireSession(); err != nil {
		return Settings{}, err
	}
	s, err := a.api.GetSettings(ctx)
	return s, a.expire(err)
}

func (a *App) UpdateSettings(ctx context.Context, email, password string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	return a.expire(a.api.UpdateSettings(ctx, email, password))
}

func (a *App) requireSession() error {
	if a.state == nil {
		return ErrNotLoggedIn
	}
	return nil
}

// expire забывает сессию, которую сервер больше не принимает
func (a *App) expire(err error) error {
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}
	if cerr := a.clearToken(); cerr != nil {
		a.log.Warn("Не удалось удалить токен", "error", cerr)
	}
	return fmt.Errorf("%w (%v)", ErrNotLoggedIn, err)
}

func (a *App) writeFile(f File, outDir string) (string, error) {
	if outDir == "" {
		outDir = a.config.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания директории: %w", err)
	}

	// имя приходит с сервера, каталог из него не берем
	path := filepath.Join(outDir, filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Data, 0o644); err != nil {
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}
	return path, nil
}
