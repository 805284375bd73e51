package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "mdscli/internal/errors"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("payload"))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, slog.Default())

	body, err := f.Fetch(context.Background(), server.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	_, err = f.Fetch(context.Background(), server.URL+"/missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchFirst_PatternFallback(t *testing.T) {
	var hits []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, r.URL.Path)
		if r.URL.Path == "/alt/2024" {
			w.Write([]byte("data"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, slog.Default())
	patterns := []string{server.URL + "/primary/%d", server.URL + "/alt/%d"}

	body, err := FetchFirst(context.Background(), f, "test", 2024, patterns, slog.Default())
	require.NoError(t, err)
	assert.Equal(t, "data", string(body))
	assert.Equal(t, []string{"/primary/2024", "/alt/2024"}, hits)
}

func TestFetchFirst_AllPatternsExhausted(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	f := NewHTTPFetcher(5*time.Second, slog.Default())
	patterns := []string{server.URL + "/a/%d", server.URL + "/b/%d"}

	_, err := FetchFirst(context.Background(), f, "test", 2024, patterns, slog.Default())
	require.Error(t, err)
	assert.Equal(t, apierrors.ErrTypeDownload, apierrors.TypeOf(err))
}
