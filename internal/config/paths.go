package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved directories of a run.
// This is the single source of truth for every file the pipeline reads or writes.
type Paths struct {
	BaseDir      string
	DownloadsDir string
	ReportsDir   string
	LogsDir      string
}

// NewPaths resolves the configured directories against BaseDir
func NewPaths(cfg PathsConfig) *Paths {
	base := cfg.BaseDir
	if base == "" {
		base = "."
	}
	return &Paths{
		BaseDir:      base,
		DownloadsDir: resolve(base, cfg.DownloadsDir),
		ReportsDir:   resolve(base, cfg.ReportsDir),
		LogsDir:      resolve(base, cfg.LogsDir),
	}
}

func resolve(base, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

// GetDownloadPath returns the full path for a downloaded file
func (p *Paths) GetDownloadPath(filename string) string {
	return filepath.Join(p.DownloadsDir, filename)
}

// GetReportPath returns the full path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// EnsureDirectories creates all directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DownloadsDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	logger.Info("Resolved paths",
		slog.String("base_dir", p.BaseDir),
		slog.String("downloads_dir", p.DownloadsDir),
		slog.String("reports_dir", p.ReportsDir),
		slog.String("logs_dir", p.LogsDir))
}
