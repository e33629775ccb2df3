package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdbcli/internal/shared/testutil"
	"tmdbcli/pkg/contracts/domain"
)

func TestCleaner_Clean(t *testing.T) {
	stray := append(movieFields(map[string]string{
		domain.ColumnID:            "2",
		domain.ColumnOriginalTitle: "Extra",
		domain.ColumnBudget:        "10",
	}), "stray")

	path := testutil.WriteFile(t, "tmdb-movies.csv", testutil.MovieCSV(
		csvLine(t, movieFields(map[string]string{
			domain.ColumnID:            "135397",
			domain.ColumnOriginalTitle: "Jurassic   World",
			domain.ColumnCast:          "Chris Pratt|Bryce Dallas Howard",
			domain.ColumnBudget:        "150000000",
			domain.ColumnVoteAverage:   "6.5",
			domain.ColumnReleaseDate:   "6/9/15",
		})),
		csvLine(t, movieFields(map[string]string{
			domain.ColumnID:            "76341",
			domain.ColumnOriginalTitle: "Mad Max: Fury Road",
			domain.ColumnReleaseDate:   "5/13/15",
		})),
		csvLine(t, movieFields(map[string]string{
			domain.ColumnID:            "1",
			domain.ColumnOriginalTitle: "Up",
			domain.ColumnReleaseDate:   "13/5/99",
		})),
		csvLine(t, stray),
		csvLine(t, movieFields(map[string]string{
			domain.ColumnID:            "135397",
			domain.ColumnOriginalTitle: "Jurassic World Copy",
			domain.ColumnReleaseDate:   "6/9/15",
		})),
	))

	raw, err := Ingest(path)
	require.NoError(t, err)
	assert.Equal(t, len(domain.Columns), raw.Width)

	logger, handler := testutil.NewTestLogger(t)
	result, err := NewCleaner(logger, DefaultCleanerConfig()).Clean(context.Background(), raw)
	require.NoError(t, err)

	require.Len(t, result.Movies, 5)
	first := result.Movies[0]
	assert.Equal(t, "Jurassic World", first.OriginalTitle)
	assert.Equal(t, int64(150000000), first.Budget)
	assert.Equal(t, 6.5, first.VoteAverage)
	assert.Equal(t, "2015-06-09", first.ReleaseDate.String())

	assert.Equal(t, "1999-05-13", result.Movies[2].ReleaseDate.String())

	extra := result.Movies[3]
	assert.Equal(t, "2", extra.ID)
	assert.Equal(t, "Extra", extra.OriginalTitle)
	assert.Equal(t, int64(10), extra.Budget)
	assert.False(t, extra.ReleaseDate.Valid)

	for _, m := range result.Movies {
		assert.Len(t, m.Record(), len(domain.Columns))
	}

	require.Len(t, result.Suspicious, 1)
	assert.Equal(t, "Up", result.Suspicious[0].Movie.OriginalTitle)

	diag := result.Diagnostics
	assert.Equal(t, 5, diag.RowsRead)
	assert.Equal(t, 4, diag.Repairs[RepairNone])
	assert.Equal(t, 1, diag.Repairs[RepairTruncated])
	assert.Equal(t, 1, diag.NullDates)
	assert.Equal(t, 1, diag.Suspicious)

	kept, dropped := Deduplicate(result.Movies)
	assert.Equal(t, 1, dropped)
	assert.Len(t, kept, 4)
	assert.Equal(t, "Jurassic World", kept[0].OriginalTitle)

	assert.True(t, handler.ContainsMessage("Dataset cleaned"))
	assert.True(t, handler.ContainsAttr("line", int64(5)))
	testutil.AssertNoErrors(t, handler)
}

func TestCleaner_Clean_UnreadableRowKeepsWidth(t *testing.T) {
	raw := &RawTable{
		Source:     "memory",
		Header:     domain.Columns,
		Width:      len(domain.Columns),
		Unreadable: 1,
		Rows: []RawRow{
			{Line: 2, Fields: movieFields(map[string]string{domain.ColumnID: "7", domain.ColumnOriginalTitle: "Heat"})},
			{Line: 3},
		},
	}

	logger, handler := testutil.NewTestLogger(t)
	result, err := NewCleaner(logger, DefaultCleanerConfig()).Clean(context.Background(), raw)
	require.NoError(t, err)

	require.Len(t, result.Movies, 2)
	blank := result.Movies[1]
	assert.Len(t, blank.Record(), len(domain.Columns))
	assert.Equal(t, domain.MissingText, blank.ID)
	assert.Equal(t, 1, result.Diagnostics.Unreadable)
	assert.Equal(t, 1, result.Diagnostics.Repairs[RepairPadded])
	testutil.AssertNoErrors(t, handler)
}

func TestCleaner_Clean_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCleaner(nil, CleanerConfig{}).Clean(ctx, &RawTable{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCleaner_Clean_NilTable(t *testing.T) {
	_, err := NewCleaner(nil, DefaultCleanerConfig()).Clean(context.Background(), nil)
	assert.Error(t, err)
}
