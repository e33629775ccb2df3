package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tmdbcli/pkg/contracts/domain"
)

// CleanerConfig holds the tunable policy of the cleaning core
type CleanerConfig struct {
	Window     YearWindow
	Whitelists map[string]Whitelist
}

// DefaultCleanerConfig returns the dataset's default window and whitelists
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		Window:     DefaultYearWindow(),
		Whitelists: DefaultWhitelists(),
	}
}

// CleanResult is the output of one Clean call
type CleanResult struct {
	Movies      []domain.Movie
	Suspicious  []SuspiciousRecord
	Diagnostics *Diagnostics
}

// Cleaner runs the repair, normalise, date, coerce and suspicious stages
type Cleaner struct {
	logger *slog.Logger
	config CleanerConfig
}

// NewCleaner creates a cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger, config CleanerConfig) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Whitelists == nil {
		config.Whitelists = DefaultWhitelists()
	}
	if config.Window == (YearWindow{}) {
		config.Window = DefaultYearWindow()
	}
	return &Cleaner{logger: logger, config: config}
}

// Clean turns the raw table into typed movies. Row anomalies never fail the
// call; only a cancelled context does.
func (c *Cleaner) Clean(ctx context.Context, raw *RawTable) (*CleanResult, error) {
	if raw == nil {
		return nil, fmt.Errorf("clean: nil table")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	diag := NewDiagnostics()
	diag.RowsRead = len(raw.Rows)
	diag.Unreadable = raw.Unreadable

	schema := NewSchema(raw.Header)
	repairer := NewRowRepairer(raw.Width, c.logger, diag)
	normalizer := NewNormalizer(c.config.Whitelists, diag)
	coercer := NewCoercer(NewDateResolver(c.config.Window), normalizer, diag)

	movies := make([]domain.Movie, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		fields := repairer.Repair(row)
		fields = normalizer.Normalize(fields, schema)
		movies = append(movies, coercer.Coerce(fields, schema))
	}

	suspicious := DetectSuspicious(movies)
	diag.Suspicious = len(suspicious)

	c.logger.InfoContext(ctx, "Dataset cleaned",
		slog.String("source", raw.Source),
		slog.Int("rows", len(movies)),
		slog.Int("width", raw.Width),
		slog.Int("unreadable", diag.Unreadable),
		slog.Int("repaired", diag.RepairedRows()),
		slog.Int("rejected_characters", diag.RejectedTotal()),
		slog.Int("null_dates", diag.NullDates),
		slog.Int("coercion_fallbacks", diag.FallbackTotal()),
		slog.Int("suspicious", diag.Suspicious),
		slog.Duration("duration", time.Since(start)))

	return &CleanResult{
		Movies:      movies,
		Suspicious:  suspicious,
		Diagnostics: diag,
	}, nil
}
