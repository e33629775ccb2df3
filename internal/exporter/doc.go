// Package exporter writes the outputs of a cleaning run.
//
// CSVWriter: core CSV/TSV writing with headers, streaming, and an optional
// UTF-8 BOM for Excel compatibility. Relative names resolve to the reports
// directory.
//
// Dataset writers: the cleaned and deduplicated datasets, the suspicious
// records, and the character reports.
//
// Snapshots: one CSV table per analysis, written concurrently.
//
// Workbook: an XLSX report with ranking sheets and two scatter charts.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths, logger)
//	err := writer.WriteMovies(config.DedupedFileName, movies, false)
//
//	err = exporter.NewWorkbook(paths, logger).Write(config.WorkbookFileName, report)
package exporter
