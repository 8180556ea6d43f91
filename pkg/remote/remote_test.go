package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"docs": []map[string]interface{}{
				{"doc_id": "d1", "title": "Weekly Sync", "created_at": "2025-10-28T15:04:05Z"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d1", docs[0].DocID)
}

func TestListDocumentsEmptyIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"docs": []map[string]interface{}{}})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestNon2xxResponseIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("no token"))
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-token")
	_, err := c.ListDocuments(context.Background())
	assert.Error(t, err)
}

func TestGetTranscriptDecodesSegmentsShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"segments": []map[string]interface{}{
				{"speaker": "Alice", "start": 12.5, "text": "Hello"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	raw, err := c.GetTranscript(context.Background(), "d1")
	require.NoError(t, err)
	require.Len(t, raw.Segments, 1)
	assert.Equal(t, "Alice", raw.Segments[0].Speaker)
}

func TestGetMetadataIgnoresUnknownFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"doc_id":            "d1",
			"created_at":        "2025-10-28T15:04:05Z",
			"some_future_field": "ignored",
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok")
	meta, err := c.GetMetadata(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", meta.DocID)
}
