package github

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ReadBlob(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	payload := []byte(`[{"id": 1}]` + strings.Repeat(" ", 200))
	fake.put("data/forms.json", payload)

	blob, err := fake.client(srv).ReadBlob(context.Background(), "data/forms.json")
	require.NoError(t, err)

	assert.Equal(t, "data/forms.json", blob.Path)
	assert.Equal(t, fake.shas["data/forms.json"], blob.SHA)
	assert.Equal(t, payload, blob.Content)
	assert.Equal(t, "Bearer ghp_test", fake.authHeader)
}

func TestClient_ReadBlob_NotFound(t *testing.T) {
	fake, srv := newFakeGitHub(t)

	_, err := fake.client(srv).ReadBlob(context.Background(), "data/forms.json")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_ReadBlob_LargeFile(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	fake.inlineMax = 10
	payload := []byte(`{"email":"a@b.ro","password":"1234"}`)
	fake.put("data/admin-settings.json", payload)

	blob, err := fake.client(srv).ReadBlob(context.Background(), "data/admin-settings.json")
	require.NoError(t, err)
	assert.Equal(t, payload, blob.Content)
}

func TestClient_ReadBlob_ServerError(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	fake.failStatus = http.StatusInternalServerError

	_, err := fake.client(srv).ReadBlob(context.Background(), "data/forms.json")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "unexpected status 500")
}

func TestClient_WriteBlob(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	client := fake.client(srv)
	client.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	err := client.WriteBlob(context.Background(), "data/forms.json", []map[string]int{{"id": 1}}, "")
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	put := fake.puts[0]
	assert.Equal(t, "Update data/forms.json - 2025-03-01T12:00:00Z", put.Message)
	assert.Equal(t, "main", put.Branch)
	assert.Empty(t, put.SHA)

	decoded, err := base64.StdEncoding.DecodeString(put.Content)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"id\": 1\n  }\n]", string(decoded))
}

func TestClient_WriteBlob_StaleSHA(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	fake.put("data/forms.json", []byte("[]"))
	client := fake.client(srv)

	blob, err := client.ReadBlob(context.Background(), "data/forms.json")
	require.NoError(t, err)

	require.NoError(t, client.WriteBlob(context.Background(), "data/forms.json", []int{1}, blob.SHA))

	err = client.WriteBlob(context.Background(), "data/forms.json", []int{2}, blob.SHA)
	assert.ErrorIs(t, err, ErrConflict)

	err = client.WriteBlob(context.Background(), "data/other.json", []int{2}, "deadbeef")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClient_Repository(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	fake.repoExists = false
	client := fake.client(srv)

	exists, err := client.RepositoryExists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.CreateRepository(context.Background()))
	require.Len(t, fake.created, 1)
	assert.Equal(t, createRepoRequest{
		Name:        "formular230-data",
		Description: "Formular 230 IVI - Tax Redirection Forms Storage",
		Private:     true,
		AutoInit:    true,
	}, fake.created[0])

	exists, err = client.RepositoryExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestClient_ContextCancelled(t *testing.T) {
	fake, srv := newFakeGitHub(t)
	client := fake.client(srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ReadBlob(ctx, "data/forms.json")
	assert.ErrorIs(t, err, context.Canceled)
}
