package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tmdbcli/internal/analytics"
	"tmdbcli/internal/config"
	"tmdbcli/internal/shared/testutil"
	"tmdbcli/pkg/contracts/domain"
)

// setupTestEnv returns a writer rooted in a temporary reports directory
func setupTestEnv(t *testing.T) (*CSVWriter, string) {
	t.Helper()

	tempDir := t.TempDir()
	paths := config.NewPaths(config.PathsConfig{
		BaseDir:      tempDir,
		DownloadsDir: "downloads",
		ReportsDir:   "reports",
		LogsDir:      "logs",
	})
	logger, _ := testutil.NewTestLogger(t)
	return NewCSVWriter(paths, logger), paths.ReportsDir
}

func readCSV(t *testing.T, path string, comma rune) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	if comma != 0 {
		r.Comma = comma
	}
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func reportPath(dir, name string) string {
	return filepath.Join(dir, name)
}

func sampleMovies() []domain.Movie {
	return []domain.Movie{
		{
			ID: "1", OriginalTitle: "Alpha", ReleaseDate: domain.NewDate(2015, time.June, 9),
			VoteAverage: 7.8, BudgetAdj: 100, RevenueAdj: 1000, Revenue: 900,
		},
		{
			ID: "2", OriginalTitle: "Beta", ReleaseDate: domain.NullDate(),
			VoteAverage: 6.5, BudgetAdj: 500, RevenueAdj: 200, Revenue: 150,
		},
	}
}

func sampleReport() *analytics.Report {
	movies := sampleMovies()
	alpha := analytics.Point{Title: "Alpha", X: 100, Y: 900}
	beta := analytics.Point{Title: "Beta", X: 500, Y: -300}
	return &analytics.Report{
		Movies:            2,
		ReleaseDesc:       movies,
		TopRated:          movies[:1],
		MinRevenue:        movies[1:],
		MaxRevenue:        movies[:1],
		TotalRevenue:      1050,
		TopProfit:         movies,
		TopDirector:       &analytics.NameCount{Name: "Steven Spielberg", Count: 2},
		Genres:            []analytics.NameCount{{Name: "Drama", Count: 2}, {Name: "Action", Count: 1}},
		Winners:           movies,
		Losers:            []domain.Movie{movies[1], movies[0]},
		CompaniesByCount:  []analytics.NameCount{{Name: "Amblin", Count: 2}},
		CompaniesByProfit: []analytics.NameProfit{{Name: "Amblin", Profit: 600}},
		PopularityVsProfit: analytics.Scatter{
			Points:      []analytics.Point{{Title: "Alpha", X: 5.5, Y: 900}, {Title: "Beta", X: 9.1, Y: -300}},
			Correlation: -1,
		},
		BudgetVsProfit: analytics.Scatter{
			Points:     []analytics.Point{beta, alpha},
			Trend:      &analytics.Trend{Intercept: 3900, Slope: -1714.0},
			Highlights: []analytics.Point{alpha},
		},
	}
}
