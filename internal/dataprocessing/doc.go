// Package dataprocessing cleans the raw TMDB movie CSV into typed records.
// It holds one shared set of stage functions; every caller (the cleaning
// step, the audit step, tests) goes through the same code.
//
// # Architecture
//
// The stages run strictly forward over the in-memory table:
//
//  1. Ingest: reads the raw CSV, counts row lengths, derives the canonical width
//  2. RowRepairer: brings every row to exactly the canonical width
//  3. Normalizer: applies the per-column character whitelists
//  4. DateResolver: resolves ambiguous month/day/year release dates
//  5. Coerce: casts each column to its semantic type
//  6. DetectSuspicious: flags titles that look truncated, numeric or date-shaped
//  7. Deduplicate: keeps the first record per id
//
// Cleaner.Clean chains stages 2 to 6. Deduplication runs as its own step so the
// undeduplicated dataset can be written first.
//
// # Usage
//
//	raw, err := dataprocessing.Ingest("tmdb-movies.csv")
//	if err != nil {
//	    return err // *errors.PipelineError of type IO or SCHEMA
//	}
//
//	cleaner := dataprocessing.NewCleaner(logger, dataprocessing.DefaultCleanerConfig())
//	result, err := cleaner.Clean(ctx, raw)
//	movies, dropped := dataprocessing.Deduplicate(result.Movies)
//
// # Error Handling
//
// Only the initial read can fail. Row anomalies are repaired with defined
// fallbacks and tallied in a Diagnostics collector:
//
//   - wrong column counts are re-parsed, truncated or padded
//   - characters outside a column whitelist are removed and counted
//   - invalid dates become the null date
//   - unparseable numbers become zero
package dataprocessing
