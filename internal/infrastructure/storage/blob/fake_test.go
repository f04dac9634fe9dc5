package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"formular230/internal/infrastructure/github"
)

// memStore - хранилище в памяти с той же проверкой sha, что и у GitHub
type memStore struct {
	mu       sync.Mutex
	files    map[string][]byte
	shas     map[string]string
	version  int
	readErr  error
	writeErr error
	writes   int
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}, shas: map[string]string{}}
}

func (m *memStore) ReadBlob(_ context.Context, path string) (*github.Blob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.files[path]
	if !ok {
		return nil, github.ErrNotFound
	}
	return &github.Blob{Path: path, SHA: m.shas[path], Content: data}, nil
}

func (m *memStore) WriteBlob(_ context.Context, path string, content any, sha string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	if current, ok := m.shas[path]; (ok && current != sha) || (!ok && sha != "") {
		return fmt.Errorf("write %s: %w", path, github.ErrConflict)
	}

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return err
	}
	m.version++
	m.files[path] = data
	m.shas[path] = fmt.Sprintf("sha-%d", m.version)
	m.writes++
	return nil
}

func (m *memStore) seed(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	m.files[path] = []byte(content)
	m.shas[path] = fmt.Sprintf("sha-%d", m.version)
}

type readiness bool

func (r readiness) EnsureReady(context.Context) bool { return bool(r) }
