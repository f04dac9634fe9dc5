package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formular230/internal/app/client/config"
	"formular230/internal/domain/form"
	"formular230/internal/utils/logger"
)

const testToken = "tok-123"

// fakeServer повторяет ответы сервера формуляров
func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeProblem(w, http.StatusUnauthorized, "Sesiunea a expirat, autentificați-vă din nou")
			return false
		}
		return true
	}

	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "storage": "ok"})
	})
	mux.HandleFunc("POST /api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "6942" {
			writeProblem(w, http.StatusUnauthorized, "Parolă incorectă")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"token":     testToken,
			"expiresAt": time.Now().Add(time.Hour).UTC(),
		})
	})
	mux.HandleFunc("POST /api/admin/logout", func(w http.ResponseWriter, r *http.Request) {
		if authorized(w, r) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "Ok"})
		}
	})
	mux.HandleFunc("GET /api/admin/forms", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		forms := []form.Form{{ID: 1, LastName: "Popescu", FirstName: "Ioana"}}
		if r.URL.Query().Get("q") == "zzz" {
			forms = []form.Form{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"available": true, "total": len(forms), "forms": forms})
	})
	mux.HandleFunc("GET /api/admin/forms/{id}/{format}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		if r.PathValue("id") != "1" {
			writeProblem(w, http.StatusNotFound, "Formularul nu a fost găsit")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="Formular_230_Popescu_Ioana.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.3 fake"))
	})
	mux.HandleFunc("GET /api/admin/forms/export/{format}", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Header().Set("Content-Disposition", `attachment; filename="../../Formulare_230_2025-05-02.xlsx"`)
		_, _ = w.Write([]byte("PK"))
	})
	mux.HandleFunc("GET /api/admin/settings", func(w http.ResponseWriter, r *http.Request) {
		if authorized(w, r) {
			writeJSON(w, http.StatusOK, map[string]any{"email": "codrut@soundfeedapp.com", "available": true})
		}
	})
	mux.HandleFunc("PUT /api/admin/settings", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		var body struct {
			Email string `json:"email"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if !strings.Contains(body.Email, "@") {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": 422,
				"detail": "email-ul nu este valid",
				"errors": []map[string]string{{"location": "body.email", "message": "invalid"}},
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "Ok"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": status, "detail": detail})
}

func newApp(t *testing.T, serverURL string) (*App, *config.Config) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Env:       "local",
		ServerURL: serverURL,
		Timeout:   5 * time.Second,
		ConfigDir: dir,
		TokenPath: filepath.Join(dir, "token"),
		OutputDir: filepath.Join(dir, "out"),
	}
	app, err := New(cfg, logger.Discard())
	require.NoError(t, err)
	return app, cfg
}

func TestApp_LoginPersistsSession(t *testing.T) {
	srv := fakeServer(t)
	app, cfg := newApp(t, srv.URL)

	require.False(t, app.IsAuthenticated())
	_, err := app.ListForms(context.Background(), "")
	require.ErrorIs(t, err, ErrNotLoggedIn)

	state, err := app.Login(context.Background(), "6942")
	require.NoError(t, err)
	assert.Equal(t, testToken, state.Token)

	info, err := os.Stat(cfg.TokenPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// новый процесс подхватывает сессию из файла
	again, err := New(cfg, logger.Discard())
	require.NoError(t, err)
	assert.True(t, again.IsAuthenticated())

	list, err := again.ListForms(context.Background(), "pop")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "Popescu", list.Forms[0].LastName)
}

func TestApp_LoginWrongPassword(t *testing.T) {
	srv := fakeServer(t)
	app, cfg := newApp(t, srv.URL)

	_, err := app.Login(context.Background(), "1111")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "Parolă incorectă")

	_, statErr := os.Stat(cfg.TokenPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_SessionFromOtherServerIgnored(t *testing.T) {
	srv := fakeServer(t)
	app, cfg := newApp(t, srv.URL)
	_, err := app.Login(context.Background(), "6942")
	require.NoError(t, err)

	cfg.ServerURL = "http://other.example.ro"
	other, err := New(cfg, logger.Discard())
	require.NoError(t, err)
	assert.False(t, other.IsAuthenticated())
}

func TestApp_ExpiredTokenIsForgotten(t *testing.T) {
	srv := fakeServer(t)
	app, cfg := newApp(t, srv.URL)

	app.state = &AppState{Server: srv.URL, Token: "revoked", ExpiresAt: time.Now().Add(time.Hour)}
	app.api.SetToken("revoked")
	require.NoError(t, app.saveAppState())

	_, err := app.GetSettings(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, app.IsAuthenticated())

	_, statErr := os.Stat(cfg.TokenPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_Logout(t *testing.T) {
	srv := fakeServer(t)
	app, cfg := newApp(t, srv.URL)

	require.ErrorIs(t, app.Logout(context.Background()), ErrNotLoggedIn)

	_, err := app.Login(context.Background(), "6942")
	require.NoError(t, err)
	require.NoError(t, app.Logout(context.Background()))

	assert.False(t, app.IsAuthenticated())
	_, statErr := os.Stat(cfg.TokenPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApp_Downloads(t *testing.T) {
	srv := fakeServer(t)
	app, cfg := newApp(t, srv.URL)
	_, err := app.Login(context.Background(), "6942")
	require.NoError(t, err)

	path, err := app.DownloadForm(context.Background(), 1, "pdf", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "Formular_230_Popescu_Ioana.pdf"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))

	_, err = app.DownloadForm(context.Background(), 2, "pdf", "")
	assert.ErrorIs(t, err, ErrNotFound)

	// каталог из имени файла отбрасывается
	dir := t.TempDir()
	path, err = app.Export(context.Background(), "xlsx", "", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Formulare_230_2025-05-02.xlsx"), path)
}

func TestApp_UpdateSettingsValidation(t *testing.T) {
	srv := fakeServer(t)
	app, _ := newApp(t, srv.URL)
	_, err := app.Login(context.Background(), "6942")
	require.NoError(t, err)

	err = app.UpdateSettings(context.Background(), "fara-arond", "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "email-ul nu este valid", apiErr.Detail)
	assert.Equal(t, []string{"body.email: invalid"}, apiErr.Errors)

	require.NoError(t, app.UpdateSettings(context.Background(), "nou@b.ro", "x"))
}

func TestApp_CheckConnection(t *testing.T) {
	srv := fakeServer(t)
	app, _ := newApp(t, srv.URL)

	h, err := app.CheckConnection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Storage)

	down, _ := newApp(t, "http://127.0.0.1:1")
	_, err = down.CheckConnection(context.Background())
	assert.Error(t, err)
}
