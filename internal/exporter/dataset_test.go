package exporter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdbcli/internal/dataprocessing"
	"tmdbcli/pkg/contracts/domain"
)

func TestWriteMovies(t *testing.T) {
	writer, dir := setupTestEnv(t)

	require.NoError(t, writer.WriteMovies("movies.csv", sampleMovies(), true))

	data, err := os.ReadFile(reportPath(dir, "movies.csv"))
	require.NoError(t, err)
	assert.Equal(t, "\uFEFF", string(data[:3]), "BOM prefix")

	require.NoError(t, os.WriteFile(reportPath(dir, "plain.csv"), data[3:], 0644))
	records := readCSV(t, reportPath(dir, "plain.csv"), 0)
	require.Len(t, records, 3)
	assert.Equal(t, domain.Columns, records[0])
	assert.Equal(t, sampleMovies()[0].Record(), records[1])
	assert.Equal(t, "", records[2][15], "null date renders empty")
}

func TestWriteSuspicious(t *testing.T) {
	writer, dir := setupTestEnv(t)
	flagged := dataprocessing.DetectSuspicious([]domain.Movie{
		{ID: "7", OriginalTitle: "42"},
		{ID: "8", OriginalTitle: "Heat"},
	})

	require.NoError(t, writer.WriteSuspicious("suspicious.csv", flagged, false))

	records := readCSV(t, reportPath(dir, "suspicious.csv"), 0)
	require.Len(t, records, 2)
	assert.Equal(t, SuspiciousAspectColumn, records[0][len(records[0])-1])
	assert.Len(t, records[0], len(domain.Columns)+1)
	assert.Equal(t, "7", records[1][0])
	assert.Equal(t, dataprocessing.SuspiciousAspect, records[1][len(records[1])-1])
}

func TestWriteCharReport(t *testing.T) {
	writer, dir := setupTestEnv(t)
	report := []dataprocessing.CharCount{
		{Column: "cast", Character: 'é', Occurrences: 3},
		{Column: "tagline", Character: '#', Occurrences: 1},
	}

	require.NoError(t, writer.WriteCharReport("chars.tsv", report))

	records := readCSV(t, reportPath(dir, "chars.tsv"), '\t')
	assert.Equal(t, [][]string{
		{"column", "character", "occurrences"},
		{"cast", "é", "3"},
		{"tagline", "#", "1"},
	}, records)
}
