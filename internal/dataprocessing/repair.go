package dataprocessing

import (
	"encoding/csv"
	stderrors "errors"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"
)

var errMultipleRecords = stderrors.New("re-joined row spans multiple records")

// RowRepairer brings raw rows to the canonical width
type RowRepairer struct {
	width  int
	logger *slog.Logger
	diag   *Diagnostics
	// warn limits per-row warnings: the first 20, then every 100th.
	warn rate.Sometimes
}

// NewRowRepairer creates a repairer for rows of the given width
func NewRowRepairer(width int, logger *slog.Logger, diag *Diagnostics) *RowRepairer {
	if logger == nil {
		logger = slog.Default()
	}
	if diag == nil {
		diag = NewDiagnostics()
	}
	return &RowRepairer{
		width:  width,
		logger: logger,
		diag:   diag,
		warn:   rate.Sometimes{First: 20, Every: 100},
	}
}

// Repair returns exactly width fields for row. It never fails.
func (r *RowRepairer) Repair(row RawRow) []string {
	fields, outcome := RepairFields(row.Fields, r.width)
	r.diag.RecordRepair(outcome)

	if outcome != RepairNone {
		r.warn.Do(func() {
			r.logger.Warn("Row width repaired",
				slog.Int("line", row.Line),
				slog.Int("fields", len(row.Fields)),
				slog.Int("expected", r.width),
				slog.String("outcome", string(outcome)))
		})
	}
	return fields
}

// RepairFields is the repair rule on its own: accept rows of the right width,
// else try a re-parse of the re-joined line, else truncate or pad.
func RepairFields(fields []string, width int) ([]string, RepairOutcome) {
	if len(fields) == width {
		return fields, RepairNone
	}

	if reparsed, err := reparse(fields); err == nil && len(reparsed) == width {
		return reparsed, RepairReparsed
	}

	if len(fields) > width {
		out := make([]string, width)
		copy(out, fields[:width])
		return out, RepairTruncated
	}

	out := make([]string, width)
	copy(out, fields)
	return out, RepairPadded
}

// reparse tokenises the re-joined row strictly as exactly one record
func reparse(fields []string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(joinRecord(fields)))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err != nil {
		return nil, err
	}
	if _, err := reader.Read(); err != io.EOF {
		return nil, errMultipleRecords
	}
	return record, nil
}
