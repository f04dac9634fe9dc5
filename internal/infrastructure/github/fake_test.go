package github

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/exp/slog"
)

// fakeGitHub - минимальная реализация Contents API в памяти
type fakeGitHub struct {
	mu         sync.Mutex
	repoExists bool
	files      map[string][]byte
	shas       map[string]string
	inlineMax  int
	failStatus int
	created    []createRepoRequest
	puts       []putRequest
	authHeader string
	// beforePut вызывается под mu до проверки sha
	beforePut  func(path string)
}

func newFakeGitHub(t *testing.T) (*fakeGitHub, *httptest.Server) {
	t.Helper()

	f := &fakeGitHub{
		repoExists: true,
		files:      map[string][]byte{},
		shas:       map[string]string{},
		inlineMax:  1 << 20,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/{owner}/{repo}", f.getRepo)
	mux.HandleFunc("POST /user/repos", f.createRepo)
	mux.HandleFunc("POST /orgs/{owner}/repos", f.createRepo)
	mux.HandleFunc("GET /repos/{owner}/{repo}/contents/{path...}", f.getContent)
	mux.HandleFunc("PUT /repos/{owner}/{repo}/contents/{path...}", f.putContent)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.authHeader = r.Header.Get("Authorization")
		fail := f.failStatus
		f.mu.Unlock()
		if fail != 0 {
			w.WriteHeader(fail)
			_, _ = w.Write([]byte(`{"message":"boom"}`))
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	return f, srv
}

func (f *fakeGitHub) client(srv *httptest.Server) *Client {
	return NewClient(Options{
		BaseURL: srv.URL,
		Token:   "ghp_test",
		Owner:   "projectivi",
		Repo:    "formular230-data",
		Branch:  "main",
		Timeout: 5 * time.Second,
	}, slog.Default())
}

func (f *fakeGitHub) put(path string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store(path, data)
}

func (f *fakeGitHub) store(path string, data []byte) {
	sum := sha1.Sum(data)
	f.files[path] = data
	f.shas[path] = hex.EncodeToString(sum[:])
}

func (f *fakeGitHub) getRepo(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.repoExists {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": r.PathValue("repo"), "private": true})
}

func (f *fakeGitHub) createRepo(w http.ResponseWriter, r *http.Request) {
	var req createRepoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	f.repoExists = true
	writeJSON(w, http.StatusCreated, map[string]any{"name": req.Name})
}

func (f *fakeGitHub) getContent(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.PathValue("path")
	data, ok := f.files[path]
	if !ok {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
		return
	}

	if r.Header.Get("Accept") == acceptRaw {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	resp := contentResponse{SHA: f.shas[path], Size: len(data), Encoding: "none"}
	if len(data) <= f.inlineMax {
		resp.Encoding = "base64"
		resp.Content = wrap76(base64.StdEncoding.EncodeToString(data))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (f *fakeGitHub) putContent(w http.ResponseWriter, r *http.Request) {
	var req putRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, req)

	path := r.PathValue("path")
	if f.beforePut != nil {
		f.beforePut(path)
	}
	current, exists := f.shas[path]
	switch {
	case exists && req.SHA != current:
		http.Error(w, `{"message":"sha does not match"}`, http.StatusConflict)
		return
	case !exists && req.SHA != "":
		http.Error(w, `{"message":"sha wasn't supplied"}`, http.StatusUnprocessableEntity)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.store(path, data)

	writeJSON(w, http.StatusOK, map[string]any{"content": map[string]string{"sha": f.shas[path]}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// wrap76 повторяет формат GitHub: base64 с переводами строк
func wrap76(s string) string {
	out := make([]byte, 0, len(s)+len(s)/76)
	for i := 0; i < len(s); i += 76 {
		end := min(i+76, len(s))
		out = append(out, s[i:end]...)
		out = append(out, '\n')
	}
	return string(out)
}
