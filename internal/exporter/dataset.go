package exporter

import (
	"log/slog"
	"strconv"

	"tmdbcli/internal/dataprocessing"
	"tmdbcli/pkg/contracts/domain"
)

// SuspiciousAspectColumn is the extra column of the suspicious records file
const SuspiciousAspectColumn = "suspicious_aspect"

// CharReportHeaders is the header of the character report files
var CharReportHeaders = []string{"column", "character", "occurrences"}

// WriteMovies streams movies to a CSV file in dataset column order
func (w *CSVWriter) WriteMovies(filePath string, movies []domain.Movie, bom bool) error {
	stream, err := w.CreateStreamWriter(filePath, domain.Columns, bom)
	if err != nil {
		return err
	}

	for _, m := range movies {
		if err := stream.WriteRecord(m.Record()); err != nil {
			stream.Close()
			return err
		}
	}

	if err := stream.Close(); err != nil {
		return err
	}

	w.logger.Info("Dataset written",
		slog.String("path", stream.Path()),
		slog.Int("rows", stream.Rows()))
	return nil
}

// WriteSuspicious writes flagged records with their aspect column
func (w *CSVWriter) WriteSuspicious(filePath string, records []dataprocessing.SuspiciousRecord, bom bool) error {
	headers := append(append([]string(nil), domain.Columns...), SuspiciousAspectColumn)

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Record()
	}

	return w.WriteCSV(filePath, WriteOptions{Headers: headers, Records: rows, BOMPrefix: bom})
}

// WriteCharReport writes a column/character/occurrences TSV report
func (w *CSVWriter) WriteCharReport(filePath string, report []dataprocessing.CharCount) error {
	rows := make([][]string, len(report))
	for i, c := range report {
		rows[i] = []string{c.Column, string(c.Character), strconv.Itoa(c.Occurrences)}
	}
	return w.WriteTSV(filePath, CharReportHeaders, rows)
}
