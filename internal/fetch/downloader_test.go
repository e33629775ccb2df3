package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdbcli/internal/config"
	"tmdbcli/internal/errors"
	"tmdbcli/internal/shared/testutil"
)

func newServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestDownloader_Download(t *testing.T) {
	server := newServer(t, http.StatusOK, testutil.MovieHeader+"\n")
	logger, handler := testutil.NewTestLogger(t)
	dest := filepath.Join(t.TempDir(), "downloads", "tmdb-movies.csv")

	n, err := NewDownloader(time.Second, logger).Download(context.Background(), server.URL, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, testutil.MovieHeader+"\n", string(data))
	assert.Equal(t, int64(len(data)), n)
	assert.True(t, handler.ContainsMessage("Dataset downloaded"))

	entries, err := os.ReadDir(filepath.Dir(dest))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestDownloader_Download_Failures(t *testing.T) {
	tests := []struct {
		name string
		url  func(t *testing.T) string
	}{
		{
			name: "not found",
			url:  func(t *testing.T) string { return newServer(t, http.StatusNotFound, "nope").URL },
		},
		{
			name: "server error",
			url:  func(t *testing.T) string { return newServer(t, http.StatusInternalServerError, "").URL },
		},
		{
			name: "unreachable",
			url: func(t *testing.T) string {
				server := httptest.NewServer(http.NotFoundHandler())
				server.Close()
				return server.URL
			},
		},
		{
			name: "malformed url",
			url:  func(t *testing.T) string { return "://bad" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest := filepath.Join(t.TempDir(), "tmdb-movies.csv")

			_, err := NewDownloader(time.Second, nil).Download(context.Background(), tt.url(t), dest)
			require.Error(t, err)
			assert.ErrorIs(t, err, errors.ErrIO)

			_, statErr := os.Stat(dest)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestSource_Ensure(t *testing.T) {
	t.Run("local path wins", func(t *testing.T) {
		local := testutil.WriteFile(t, "local.csv", "x")
		src := NewSource(config.SourceConfig{LocalPath: local, URL: "http://unused.invalid"}, nil)

		path, downloaded, err := src.Ensure(context.Background(), filepath.Join(t.TempDir(), "d.csv"))
		require.NoError(t, err)
		assert.Equal(t, local, path)
		assert.False(t, downloaded)
	})

	t.Run("missing local path is an io error", func(t *testing.T) {
		src := NewSource(config.SourceConfig{LocalPath: filepath.Join(t.TempDir(), "absent.csv")}, nil)

		_, _, err := src.Ensure(context.Background(), filepath.Join(t.TempDir(), "d.csv"))
		assert.ErrorIs(t, err, errors.ErrIO)
	})

	t.Run("skip download reuses cached file", func(t *testing.T) {
		cached := testutil.WriteFile(t, "tmdb-movies.csv", "cached")
		src := NewSource(config.SourceConfig{SkipDownload: true, URL: "http://unused.invalid"}, nil)

		path, downloaded, err := src.Ensure(context.Background(), cached)
		require.NoError(t, err)
		assert.Equal(t, cached, path)
		assert.False(t, downloaded)
	})

	t.Run("downloads when nothing is cached", func(t *testing.T) {
		server := newServer(t, http.StatusOK, "fresh")
		dest := filepath.Join(t.TempDir(), "tmdb-movies.csv")
		src := NewSource(config.SourceConfig{SkipDownload: true, URL: server.URL, Timeout: time.Second}, nil)

		path, downloaded, err := src.Ensure(context.Background(), dest)
		require.NoError(t, err)
		assert.Equal(t, dest, path)
		assert.True(t, downloaded)
	})
}
