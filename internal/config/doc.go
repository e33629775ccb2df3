// Package config provides configuration management for the TMDB cleaning run.
//
// # Configuration Sources
//
// Configuration is layered, later sources winning:
//
//	1. Default values (Default)
//	2. A YAML file (config.yaml, configs/config.yaml or an explicit path)
//	3. Environment variables (TMDB_*)
//
// # Environment Variables
//
// Variables follow the TMDB_<SECTION>_<FIELD> pattern:
//
//	TMDB_SOURCE_URL=https://example.org/tmdb-movies.csv
//	TMDB_SOURCE_SKIP_DOWNLOAD=true
//	TMDB_CLEANING_MIN_YEAR=1900
//	TMDB_CLEANING_MAX_YEAR=2015
//	TMDB_LOGGING_LEVEL=debug
//	TMDB_PATHS_REPORTS_DIR=out
//
// # Validation
//
// Load validates the merged configuration with go-playground/validator:
// URLs must be well formed, the release-year window must be ordered and every
// ranking size must be positive.
//
// # Paths
//
// Paths resolves every input and output file of a run against the configured
// directories:
//
//	paths := config.NewPaths(cfg.Paths)
//	cleanCSV := paths.GetReportPath(config.CleanedFileName)
package config
