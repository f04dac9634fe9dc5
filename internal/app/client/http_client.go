package client

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"

	"formular230/internal/app/client/config"
	"formular230/internal/domain/form"
)

const userAgent = "Formular230-Admin/1.0"

var (
	ErrUnauthorized = errors.New("neautorizat")
	ErrNotFound     = errors.New("nu a fost găsit")
)

// APIError - ответ сервера в формате application/problem+json
type APIError struct {
	Status int
	Detail string
	Errors []string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%d: %s", e.Status, e.Detail)
	for _, d := range e.Errors {
		msg += "\n  - " + d
	}
	return msg
}

type problem struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
	Errors []struct {
		Message  string `json:"message"`
		Location string `json:"location"`
	} `json:"errors"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type FormList struct {
	Available bool        `json:"available"`
	Total     int         `json:"total"`
	Forms     []form.Form `json:"forms"`
}

type Settings struct {
	Email     string `json:"email"`
	Available bool   `json:"available"`
}

type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// File - выгрузка с сервера вместе с предложенным именем
type File struct {
	Name string
	Data []byte
}

type httpClient struct {
	http  *resty.Client
	log   *slog.Logger
	token string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *httpClient {
	c := resty.New().
		SetBaseURL(cfg.ServerURL).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &httpClient{
		http: c,
		log:  log.With("component", "http_client"),
	}
}

// SetToken устанавливает токен аутентификации
func (h *httpClient) SetToken(token string) {
	h.token = token
}

func (h *httpClient) request(ctx context.Context) *resty.Request {
	req := h.http.R().SetContext(ctx).SetError(&problem{})
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) (Health, error) {
	var out Health
	resp, err := h.request(ctx).SetResult(&out).Get("/api/v1/health")
	if err := h.check(resp, err); err != nil {
		return Health{}, err
	}
	return out, nil
}

func (h *httpClient) Login(ctx context.Context, password string) (Session, error) {
	var out Session
	resp, err := h.request(ctx).
		SetBody(map[string]string{"password": password}).
		SetResult(&out).
		Post("/api/admin/login")
	if err := h.check(resp, err); err != nil {
		return Session{}, err
	}
	return out, nil
}

func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.request(ctx).Post("/api/admin/logout")
	return h.check(resp, err)
}

func (h *httpClient) ListForms(ctx context.Context, query string) (FormList, error) {
	var out FormList
	req := h.request(ctx).SetResult(&out)
	if query != "" {
		req.SetQueryParam("q", query)
	}
	resp, err := req.Get("/api/admin/forms")
	if err := h.check(resp, err); err != nil {
		return FormList{}, err
	}
	return out, nil
}

func (h *httpClient) DeleteForm(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/api/admin/forms/{id}")
	return h.check(resp, err)
}

// DownloadForm скачивает одну заявку, format - pdf или json
func (h *httpClient) DownloadForm(ctx context.Context, id int64, format string) (File, error) {
	resp, err := h.request(ctx).
		SetPathParams(map[string]string{
			"id":     strconv.FormatInt(id, 10),
			"format": format,
		}).
		SetHeader("Accept", "*/*").
		Get("/api/admin/forms/{id}/{format}")
	if err := h.check(resp, err); err != nil {
		return File{}, err
	}
	return file(resp, fmt.Sprintf("formular_%d.%s", id, format)), nil
}

// Export скачивает все найденные заявки, format - pdf или xlsx
func (h *httpClient) Export(ctx context.Context, format, query string) (File, error) {
	req := h.request(ctx).
		SetPathParam("format", format).
		SetHeader("Accept", "*/*")
	if query != "" {
		req.SetQueryParam("q", query)
	}
	resp, err := req.Get("/api/admin/forms/export/{format}")
	if err := h.check(resp, err); err != nil {
		return File{}, err
	}
	return file(resp, "formulare."+format), nil
}

func (h *httpClient) GetSettings(ctx context.Context) (Settings, error) {
	var out Settings
	resp, err := h.request(ctx).SetResult(&out).Get("/api/admin/settings")
	if err := h.check(resp, err); err != nil {
		return Settings{}, err
	}
	return out, nil
}

func (h *httpClient) UpdateSettings(ctx context.Context, email, password string) error {
	resp, err := h.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		Put("/api/admin/settings")
	return h.check(resp, err)
}

func (h *httpClient) check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("serverul nu răspunde: %w", err)
	}

	h.log.Debug("response received",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)

	if !resp.IsError() {
		return nil
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail(resp))
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, detail(resp))
	}

	apiErr := &APIError{Status: resp.StatusCode(), Detail: detail(resp)}
	if p, ok := resp.Error().(*problem); ok {
		for _, e := range p.Errors {
			apiErr.Errors = append(apiErr.Errors, e.Location+": "+e.Message)
		}
	}
	return apiErr
}

func detail(resp *resty.Response) string {
	if p, ok := resp.Error().(*problem); ok && p.Detail != "" {
		return p.Detail
	}
	return http.StatusText(resp.StatusCode())
}

// file берет имя из Content-Disposition, fallback - если заголовка нет
func file(resp *resty.Response, fallback string) File {
	name := fallback
	if _, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	return File{Name: name, Data: resp.Body()}
}
