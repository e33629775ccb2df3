package analytics

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"tmdbcli/pkg/contracts/domain"
)

// Frame column names
const (
	colRow         = "row"
	colReleaseDate = "release_date"
	colVoteAverage = "vote_average"
	colRevenue     = "revenue"
	colBudgetAdj   = "budget_adj"
	colRevenueAdj  = "revenue_adj"
	colProfit      = "profit"
	colPopularity  = "popularity"
)

// Frame is a dataframe view of the dataset. Every row carries its position
// in the dataset so results map back to the movies they came from, and the
// position breaks ties in every ordering.
type Frame struct {
	df     dataframe.DataFrame
	movies []domain.Movie
}

// NewFrame builds the frame over movies
func NewFrame(movies []domain.Movie) (*Frame, error) {
	n := len(movies)
	var (
		rows     = make([]int, n)
		dates    = make([]string, n)
		averages = make([]float64, n)
		revenue  = make([]int, n)
		budgets  = make([]int, n)
		revenues = make([]int, n)
		profits  = make([]int, n)
	)
	for i, m := range movies {
		rows[i] = i
		dates[i] = m.ReleaseDate.String()
		averages[i] = m.VoteAverage
		revenue[i] = int(m.Revenue)
		budgets[i] = int(m.BudgetAdj)
		revenues[i] = int(m.RevenueAdj)
		profits[i] = int(m.Profit())
	}

	df := dataframe.New(
		series.New(rows, series.Int, colRow),
		series.New(dates, series.String, colReleaseDate),
		series.New(averages, series.Float, colVoteAverage),
		series.New(revenue, series.Int, colRevenue),
		series.New(budgets, series.Int, colBudgetAdj),
		series.New(revenues, series.Int, colRevenueAdj),
		series.New(profits, series.Int, colProfit),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("build dataframe: %w", df.Err)
	}
	return &Frame{df: df, movies: movies}, nil
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return f.df.Nrow()
}

// rowsOf maps the first n rows of df back to movies; n <= 0 takes all
func (f *Frame) rowsOf(df dataframe.DataFrame, n int) ([]domain.Movie, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	if df.Nrow() == 0 {
		return nil, nil
	}

	idx, err := df.Col(colRow).Int()
	if err != nil {
		return nil, fmt.Errorf("read row index: %w", err)
	}
	if n > 0 && n < len(idx) {
		idx = idx[:n]
	}

	out := make([]domain.Movie, len(idx))
	for i, row := range idx {
		out[i] = f.movies[row]
	}
	return out, nil
}

// Sorted returns the first n movies ordered by column
func (f *Frame) Sorted(column string, desc bool, n int) ([]domain.Movie, error) {
	return f.rowsOf(arrange(f.df, column, desc), n)
}

// Where returns a frame restricted to rows matching every filter
func (f *Frame) Where(filters ...dataframe.F) *Frame {
	df := f.df
	for _, filter := range filters {
		df = df.Filter(filter)
	}
	return &Frame{df: df, movies: f.movies}
}

// Err returns the first error recorded by the underlying dataframe
func (f *Frame) Err() error {
	return f.df.Err
}

// Equal returns the movies whose integer column equals v
func (f *Frame) Equal(column string, v int) ([]domain.Movie, error) {
	return f.rowsOf(f.df.Filter(dataframe.F{Colname: column, Comparator: series.Eq, Comparando: v}), 0)
}

// Bounds returns the minimum and maximum of a numeric column
func (f *Frame) Bounds(column string) (float64, float64) {
	col := f.df.Col(column)
	return col.Min(), col.Max()
}

// Sum returns the sum of a numeric column
func (f *Frame) Sum(column string) float64 {
	return f.df.Col(column).Sum()
}

func arrange(df dataframe.DataFrame, column string, desc bool) dataframe.DataFrame {
	order := dataframe.Sort(column)
	if desc {
		order = dataframe.RevSort(column)
	}
	return df.Arrange(order, dataframe.Sort(colRow))
}

// newPopularityFrame builds a frame of the movies whose popularity parses as
// a number; the others are left out.
func newPopularityFrame(movies []domain.Movie) (*Frame, error) {
	var (
		rows       []int
		popularity []float64
		profits    []int
	)
	for i, m := range movies {
		p, ok := parsePopularity(m)
		if !ok {
			continue
		}
		rows = append(rows, i)
		popularity = append(popularity, p)
		profits = append(profits, int(m.Profit()))
	}

	df := dataframe.New(
		series.New(rows, series.Int, colRow),
		series.New(popularity, series.Float, colPopularity),
		series.New(profits, series.Int, colProfit),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("build popularity dataframe: %w", df.Err)
	}
	return &Frame{df: df, movies: movies}, nil
}
