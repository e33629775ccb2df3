package config

import (
	"time"

	"tmdbcli/pkg/contracts"
)

// Application constants
const (
	AppName    = "TMDB Movie Cleaner"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable
	EnvPrefix = "TMDB"
)

// Dataset source
const (
	DefaultDatasetURL  = "https://raw.githubusercontent.com/yinghaoz1/tmdb-movie-dataset-analysis/master/tmdb-movies.csv"
	DefaultHTTPTimeout = 60 * time.Second
)

// Release-date disambiguation window. Two-digit years resolve to 20xx when
// that lands inside the window, otherwise to 19xx, otherwise to the null date.
const (
	DefaultMinReleaseYear = 1900
	DefaultMaxReleaseYear = 2015
)

// Report settings
const (
	DefaultTopN              = 10
	DefaultRatingThreshold   = 7.5
	DefaultPopularityTopN    = 100
	DefaultAnnotatedExtremes = 3
)

// Well-known file names
const (
	RawDatasetFileName       = "tmdb-movies.csv"
	UnusualCharsFileName     = "unusual_characters_report.tsv"
	RejectedCharsFileName    = "rejected_characters_report.tsv"
	CleanedFileName          = "movies-clean.csv"
	SuspiciousFileName       = "suspicious_records.csv"
	DedupedFileName          = "clean-data.csv"
	WorkbookFileName         = "tmdb-report.xlsx"
	MetricsFileName          = "metrics.prom"
	TraceFileName            = "traces.json"
	DefaultLogFileName       = "tmdb_analysis.log"
	ReleaseDescFileName      = "release_desc.csv"
	TopRatedFileName         = "avg_rate.csv"
	RevenueBoundsFileName    = "min_max.csv"
	TopProfitFileName        = "top10_profit.csv"
	DirectorActorFileName    = "dir_act.csv"
	GenresFileName           = "genres.csv"
	ProfitAndLossFileName    = "top_pnl.csv"
	TopCompaniesFileName     = "top_company.csv"
	PopularityProfitFileName = "popularity_profit.csv"
	BudgetProfitFileName     = "budget_profit.csv"
)
