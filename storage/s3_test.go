package storage_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/ems/api/config"
	"github.com/dev-mohitbeniwal/ems/api/storage"
)

func newStore(t *testing.T, handler http.HandlerFunc) *storage.S3Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := storage.NewS3Store(t.Context(), config.S3Configuration{
		Region:       "us-east-1",
		BaseEndpoint: srv.URL,
		AccessKey:    "test",
		SecretKey:    "test",
		Bucket:       "policy-attachments",
	})
	require.NoError(t, err)
	return store
}

func TestS3Store_Put(t *testing.T) {
	var gotPath, gotType, gotBody string
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	})

	payload := "handbook v2"
	err := store.Put(t.Context(), "policies/p1/a-handbook.pdf", strings.NewReader(payload), int64(len(payload)), "application/pdf")
	require.NoError(t, err)

	assert.Equal(t, "/policy-attachments/policies/p1/a-handbook.pdf", gotPath)
	assert.Equal(t, "application/pdf", gotType)
	assert.Contains(t, gotBody, payload)
}

func TestS3Store_PutError(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`<Error><Code>AccessDenied</Code><Message>denied</Message></Error>`))
	})

	err := store.Put(t.Context(), "k", strings.NewReader("x"), 1, "")
	assert.Error(t, err)
}

func TestS3Store_PresignGet(t *testing.T) {
	store := newStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("presigning must not call the endpoint")
	})

	raw, err := store.PresignGet(t.Context(), "policies/p1/a-handbook.pdf")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/policy-attachments/policies/p1/a-handbook.pdf", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestAttachmentKey(t *testing.T) {
	key := storage.AttachmentKey("p1", "../../etc/handbook.pdf")
	assert.True(t, strings.HasPrefix(key, "policies/p1/"))
	assert.True(t, strings.HasSuffix(key, "-handbook.pdf"))
	assert.NotContains(t, key, "..")
}
