package operations

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tmdbcli/internal/config"
	"tmdbcli/internal/shared/testutil"
	"tmdbcli/pkg/contracts/domain"
)

// fakeStep records its execution order and returns err
type fakeStep struct {
	BaseStep
	err  error
	ran  *[]string
	skip string
	hook func(*RunState)
}

func newFakeStep(id string, ran *[]string, err error) *fakeStep {
	return &fakeStep{BaseStep: NewBaseStep(id, strings.ToUpper(id)), ran: ran, err: err}
}

func (s *fakeStep) Execute(ctx context.Context, state *RunState) error {
	*s.ran = append(*s.ran, s.ID())
	if s.hook != nil {
		s.hook(state)
	}
	return s.err
}

// skippingStep always asks to be skipped
type skippingStep struct {
	fakeStep
}

func (s *skippingStep) ShouldSkip(state *RunState) (string, bool) {
	return s.skip, true
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.BaseDir = t.TempDir()
	return cfg
}

// movieLine renders one dataset row; absent columns are empty
func movieLine(t *testing.T, values map[string]string) string {
	t.Helper()

	fields := make([]string, len(domain.Columns))
	for i, column := range domain.Columns {
		fields[i] = values[column]
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(fields))
	w.Flush()
	require.NoError(t, w.Error())
	return strings.TrimSuffix(buf.String(), "\n")
}

func sampleDataset(t *testing.T) string {
	t.Helper()
	return testutil.MovieCSV(
		movieLine(t, map[string]string{
			domain.ColumnID:                  "135397",
			domain.ColumnPopularity:          "32.98",
			domain.ColumnOriginalTitle:       "Jurassic World",
			domain.ColumnCast:                "Chris Pratt|Bryce Dallas Howard",
			domain.ColumnDirector:            "Colin Trevorrow",
			domain.ColumnGenres:              "Action|Adventure",
			domain.ColumnProductionCompanies: "Universal Studios|Amblin Entertainment",
			domain.ColumnReleaseDate:         "6/9/15",
			domain.ColumnRevenue:             "1513528810",
			domain.ColumnVoteAverage:         "6.5",
			domain.ColumnBudgetAdj:           "137999939",
			domain.ColumnRevenueAdj:          "1392445893",
		}),
		movieLine(t, map[string]string{
			domain.ColumnID:                  "76341",
			domain.ColumnPopularity:          "28.41",
			domain.ColumnOriginalTitle:       "Mad Max: Fury Road",
			domain.ColumnCast:                "Tom Hardy|Charlize Theron",
			domain.ColumnDirector:            "George Miller",
			domain.ColumnGenres:              "Action",
			domain.ColumnProductionCompanies: "Village Roadshow Pictures",
			domain.ColumnReleaseDate:         "5/13/15",
			domain.ColumnRevenue:             "378436354",
			domain.ColumnVoteAverage:         "7.1",
			domain.ColumnBudgetAdj:           "137999939",
			domain.ColumnRevenueAdj:          "348161292",
		}),
		movieLine(t, map[string]string{
			domain.ColumnID:            "135397",
			domain.ColumnOriginalTitle: "Jurassic World",
			domain.ColumnReleaseDate:   "6/9/15",
		}),
		movieLine(t, map[string]string{
			domain.ColumnID:            "9",
			domain.ColumnOriginalTitle: "12",
			domain.ColumnReleaseDate:   "1/1/99",
		}),
	)
}
