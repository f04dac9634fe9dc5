package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slog"
)

const (
	acceptJSON = "application/vnd.github.v3+json"
	acceptRaw  = "application/vnd.github.raw+json"

	repoDescription = "Formular 230 IVI - Tax Redirection Forms Storage"
)

var (
	ErrNotFound = errors.New("github: not found")
	ErrConflict = errors.New("github: sha mismatch")
)

// Blob - содержимое файла в репозитории и его sha на момент чтения
type Blob struct {
	Path    string
	SHA     string
	Content []byte
}

type Options struct {
	BaseURL    string
	Token      string
	Owner      string
	Repo       string
	Branch     string
	OwnerIsOrg bool
	Timeout    time.Duration
}

// Client работает с Contents API одного репозитория
type Client struct {
	http *resty.Client
	opts Options
	now  func() time.Time
	log  *slog.Logger
}

type contentResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	Size     int    `json:"size"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type createRepoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
	AutoInit    bool   `json:"auto_init"`
}

func NewClient(opts Options, log *slog.Logger) *Client {
	if opts.Branch == "" {
		opts.Branch = "main"
	}

	// Повторы отключены: запись с устаревшим sha повторять бессмысленно
	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetRetryCount(0).
		SetAuthToken(opts.Token).
		SetHeader("Accept", acceptJSON).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: client,
		opts: opts,
		now:  time.Now,
		log:  log.With("component", "github_client"),
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetRawPathParams(map[string]string{
			"owner": c.opts.Owner,
			"repo":  c.opts.Repo,
		})
}

// ReadBlob читает файл. Отсутствующий файл - ErrNotFound.
func (c *Client) ReadBlob(ctx context.Context, path string) (*Blob, error) {
	var body contentResponse
	resp, err := c.request(ctx).
		SetRawPathParam("path", path).
		SetQueryParam("ref", c.opts.Branch).
		SetResult(&body).
		Get("/repos/{owner}/{repo}/contents/{path}")
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := statusError(resp); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	blob := &Blob{Path: path, SHA: body.SHA}

	// Для файлов больше 1 МБ GitHub не отдает content inline
	if body.Encoding == "none" || (body.Content == "" && body.Size > 0) {
		raw, err := c.readRaw(ctx, path)
		if err != nil {
			return nil, err
		}
		blob.Content = raw
		return blob, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	blob.Content = decoded

	return blob, nil
}

func (c *Client) readRaw(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.request(ctx).
		SetRawPathParam("path", path).
		SetQueryParam("ref", c.opts.Branch).
		SetHeader("Accept", acceptRaw).
		Get("/repos/{owner}/{repo}/contents/{path}")
	if err != nil {
		return nil, fmt.Errorf("read raw %s: %w", path, err)
	}
	if err := statusError(resp); err != nil {
		return nil, fmt.Errorf("read raw %s: %w", path, err)
	}
	return resp.Body(), nil
}

// WriteBlob сериализует content в JSON с отступом в два пробела и записывает файл.
// Пустой sha создает файл, иначе sha должен совпадать с текущим.
func (c *Client) WriteBlob(ctx context.Context, path string, content any, sha string) error {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	req := putRequest{
		Message: fmt.Sprintf("Update %s - %s", path, c.now().UTC().Format(time.RFC3339)),
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  c.opts.Branch,
		SHA:     sha,
	}

	resp, err := c.request(ctx).
		SetRawPathParam("path", path).
		SetBody(req).
		Put("/repos/{owner}/{repo}/contents/{path}")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := statusError(resp); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	c.log.Debug("blob written", "path", path, "bytes", len(data))
	return nil
}

func (c *Client) RepositoryExists(ctx context.Context) (bool, error) {
	resp, err := c.request(ctx).Get("/repos/{owner}/{repo}")
	if err != nil {
		return false, fmt.Errorf("check repository: %w", err)
	}
	err = statusError(resp)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("check repository: %w", err)
	}
}

// CreateRepository создает приватный репозиторий с начальным коммитом
func (c *Client) CreateRepository(ctx context.Context) error {
	url := "/user/repos"
	if c.opts.OwnerIsOrg {
		url = "/orgs/{owner}/repos"
	}

	resp, err := c.request(ctx).
		SetBody(createRepoRequest{
			Name:        c.opts.Repo,
			Description: repoDescription,
			Private:     true,
			AutoInit:    true,
		}).
		Post(url)
	if err != nil {
		return fmt.Errorf("create repository: %w", err)
	}
	if err := statusError(resp); err != nil {
		return fmt.Errorf("create repository: %w", err)
	}

	c.log.Info("repository created", "owner", c.opts.Owner, "repo", c.opts.Repo)
	return nil
}

func statusError(resp *resty.Response) error {
	switch code := resp.StatusCode(); {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict || code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: status %d", ErrConflict, code)
	default:
		return fmt.Errorf("unexpected status %d: %s", code, truncate(resp.String(), 200))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Ping проверяет, что репозиторий доступен с текущим токеном
func (c *Client) Ping(ctx context.Context) error {
	exists, err := c.RepositoryExists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("repository %s/%s: %w", c.opts.Owner, c.opts.Repo, ErrNotFound)
	}
	return nil
}
