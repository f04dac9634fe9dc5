package blob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"formular230/internal/domain/form"
	"formular230/internal/infrastructure/github"
	"formular230/internal/infrastructure/storage"
)

var testNow = time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)

func newFormRepo(store Store, ready bool) *FormRepository {
	clock := form.NewIDClock(func() time.Time { return testNow })
	return NewFormRepository(store, readiness(ready), clock, slog.Default())
}

func TestFormRepository_AppendThenList(t *testing.T) {
	store := newMemStore()
	store.seed(storage.FormsPath, "[]")
	repo := newFormRepo(store, true)

	first, err := repo.Append(context.Background(), form.Form{LastName: "Popescu", FirstName: "Ioana"})
	require.NoError(t, err)
	second, err := repo.Append(context.Background(), form.Form{LastName: "Ionescu", FirstName: "Mihai"})
	require.NoError(t, err)

	assert.Equal(t, testNow.UnixMilli(), first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.Equal(t, testNow, first.CreatedAt)

	res := repo.List(context.Background())
	require.True(t, res.Available)
	if diff := cmp.Diff([]form.Form{first, second}, res.Data); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormRepository_AppendToMissingFile(t *testing.T) {
	store := newMemStore()
	repo := newFormRepo(store, true)

	saved, err := repo.Append(context.Background(), form.Form{LastName: "Vasile"})
	require.NoError(t, err)

	res := repo.List(context.Background())
	require.Len(t, res.Data, 1)
	assert.Equal(t, saved.ID, res.Data[0].ID)
}

func TestFormRepository_AppendNotReady(t *testing.T) {
	store := newMemStore()
	repo := newFormRepo(store, false)

	_, err := repo.Append(context.Background(), form.Form{LastName: "Vasile"})
	require.Error(t, err)
	assert.Zero(t, store.writes)
}

func TestFormRepository_AppendConflict(t *testing.T) {
	store := newMemStore()
	store.seed(storage.FormsPath, "[]")
	store.writeErr = errors.New("write data/forms.json: github: sha mismatch: status 409")
	repo := newFormRepo(store, true)

	_, err := repo.Append(context.Background(), form.Form{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, form.ErrConflict)

	store.writeErr = nil
	store.shas[storage.FormsPath] = "moved"
	stale := &staleStore{memStore: store, sha: "old"}
	repo = newFormRepo(stale, true)
	_, err = repo.Append(context.Background(), form.Form{})
	assert.ErrorIs(t, err, form.ErrConflict)
}

// staleStore отдает устаревший sha, как при параллельной записи
type staleStore struct {
	*memStore
	sha string
}

func (s *staleStore) ReadBlob(ctx context.Context, path string) (*github.Blob, error) {
	b, err := s.memStore.ReadBlob(ctx, path)
	if err != nil {
		return nil, err
	}
	b.SHA = s.sha
	return b, nil
}

func TestFormRepository_ListUnavailable(t *testing.T) {
	store := newMemStore()
	store.readErr = errors.New("connection refused")

	res := newFormRepo(store, true).List(context.Background())
	assert.False(t, res.Available)
	assert.Empty(t, res.Data)
	assert.NotNil(t, res.Data)

	res = newFormRepo(newMemStore(), false).List(context.Background())
	assert.False(t, res.Available)
}

func TestFormRepository_ListCorruptFile(t *testing.T) {
	store := newMemStore()
	store.seed(storage.FormsPath, "{not json")

	res := newFormRepo(store, true).List(context.Background())
	assert.False(t, res.Available)
	assert.Error(t, res.Err)
}

func TestFormRepository_Delete(t *testing.T) {
	store := newMemStore()
	store.seed(storage.FormsPath, `[{"id": 1, "lastName": "A"}, {"id": 2, "lastName": "B"}]`)
	repo := newFormRepo(store, true)

	require.NoError(t, repo.Delete(context.Background(), 1))
	res := repo.List(context.Background())
	require.Len(t, res.Data, 1)
	assert.Equal(t, int64(2), res.Data[0].ID)

	writes := store.writes
	require.NoError(t, repo.Delete(context.Background(), 1))
	assert.Equal(t, writes, store.writes)
}

func TestFormRepository_DeleteMissingFile(t *testing.T) {
	repo := newFormRepo(newMemStore(), true)

	err := repo.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, form.ErrStoreMissing)
}
