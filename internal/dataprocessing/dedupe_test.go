package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tmdbcli/pkg/contracts/domain"
)

func TestDeduplicate(t *testing.T) {
	movies := []domain.Movie{
		{ID: "1", OriginalTitle: "First"},
		{ID: "2", OriginalTitle: "Second"},
		{ID: "1", OriginalTitle: "First again"},
		{ID: "3", OriginalTitle: "Third"},
		{ID: "2", OriginalTitle: "Second again"},
	}

	kept, dropped := Deduplicate(movies)

	assert.Equal(t, 2, dropped)
	assert.Equal(t, []domain.Movie{
		{ID: "1", OriginalTitle: "First"},
		{ID: "2", OriginalTitle: "Second"},
		{ID: "3", OriginalTitle: "Third"},
	}, kept)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	movies := []domain.Movie{
		{ID: "7"}, {ID: "7"}, {ID: "nan"}, {ID: "8"}, {ID: "nan"},
	}

	once, dropped := Deduplicate(movies)
	assert.Equal(t, 2, dropped)

	twice, droppedAgain := Deduplicate(once)
	assert.Zero(t, droppedAgain)
	assert.Equal(t, once, twice)
}

func TestDeduplicate_Empty(t *testing.T) {
	kept, dropped := Deduplicate(nil)
	assert.Empty(t, kept)
	assert.Zero(t, dropped)
}
