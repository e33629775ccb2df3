package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"tmdbcli/internal/config"
	"tmdbcli/internal/errors"
)

// Downloader fetches the raw dataset over HTTP
type Downloader struct {
	client *http.Client
	logger *slog.Logger
}

// NewDownloader creates a downloader with the given request timeout
func NewDownloader(timeout time.Duration, logger *slog.Logger) *Downloader {
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Download writes the body of url to dest and returns the number of bytes
// written. The file is written under a temporary name and renamed into place,
// so a failed download never leaves a partial dataset behind.
func (d *Downloader) Download(ctx context.Context, url, dest string) (int64, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.NewIOError("download", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, errors.NewIOError("download", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errors.NewIOError("download", url,
			fmt.Errorf("download failed with status: %d", resp.StatusCode))
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return 0, errors.NewIOError("create directory", filepath.Dir(dest), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".*.part")
	if err != nil {
		return 0, errors.NewIOError("create", dest, err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, errors.NewIOError("download", url, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return 0, errors.NewIOError("rename", dest, err)
	}

	d.logger.InfoContext(ctx, "Dataset downloaded",
		slog.String("url", url),
		slog.String("path", dest),
		slog.Int64("bytes", n),
		slog.Duration("duration", time.Since(start)))

	return n, nil
}

// Source decides where the raw dataset is read from
type Source struct {
	cfg        config.SourceConfig
	downloader *Downloader
	logger     *slog.Logger
}

// NewSource creates a dataset source for the given configuration
func NewSource(cfg config.SourceConfig, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		cfg:        cfg,
		downloader: NewDownloader(cfg.Timeout, logger),
		logger:     logger,
	}
}

// Ensure returns the path of a local copy of the dataset. A configured local
// path is used as is; with SkipDownload an existing file at dest is reused;
// otherwise the dataset is downloaded to dest.
func (s *Source) Ensure(ctx context.Context, dest string) (string, bool, error) {
	if s.cfg.LocalPath != "" {
		if _, err := os.Stat(s.cfg.LocalPath); err != nil {
			return "", false, errors.NewIOError("stat", s.cfg.LocalPath, err)
		}
		s.logger.InfoContext(ctx, "Using local dataset", slog.String("path", s.cfg.LocalPath))
		return s.cfg.LocalPath, false, nil
	}

	if s.cfg.SkipDownload {
		if _, err := os.Stat(dest); err == nil {
			s.logger.InfoContext(ctx, "Reusing downloaded dataset", slog.String("path", dest))
			return dest, false, nil
		}
		s.logger.WarnContext(ctx, "No cached dataset, downloading", slog.String("path", dest))
	}

	if _, err := s.downloader.Download(ctx, s.cfg.URL, dest); err != nil {
		return "", false, err
	}
	return dest, true, nil
}
