package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MovieHeader is the header line of the TMDB movie dataset
const MovieHeader = "id,imdb_id,popularity,budget,revenue,original_title,cast,homepage,director," +
	"tagline,keywords,overview,runtime,genres,production_companies,release_date,vote_count," +
	"vote_average,release_year,budget_adj,revenue_adj"

// WriteFile writes content to name inside a fresh temp dir and returns its path
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// MovieCSV joins the dataset header and the given data lines into CSV text
func MovieCSV(lines ...string) string {
	return MovieHeader + "\n" + strings.Join(lines, "\n") + "\n"
}
