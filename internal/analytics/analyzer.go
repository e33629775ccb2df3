// Package analytics computes the descriptive statistics and rankings of the
// cleaned movie dataset.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"tmdbcli/internal/config"
	"tmdbcli/pkg/contracts/domain"
)

// Config controls the size of the rankings
type Config struct {
	TopN              int
	RatingThreshold   float64
	PopularityTopN    int
	AnnotatedExtremes int
}

// DefaultConfig returns the default ranking sizes
func DefaultConfig() Config {
	return Config{
		TopN:              config.DefaultTopN,
		RatingThreshold:   config.DefaultRatingThreshold,
		PopularityTopN:    config.DefaultPopularityTopN,
		AnnotatedExtremes: config.DefaultAnnotatedExtremes,
	}
}

// ConfigFromReports maps the reports section of the application config
func ConfigFromReports(cfg config.ReportsConfig) Config {
	return Config{
		TopN:              cfg.TopN,
		RatingThreshold:   cfg.RatingThreshold,
		PopularityTopN:    cfg.PopularityTopN,
		AnnotatedExtremes: cfg.AnnotatedExtremes,
	}
}

// Report holds every analysis of one dataset
type Report struct {
	Movies int
	// ReleaseDesc is the whole dataset, newest first, null dates last.
	ReleaseDesc []domain.Movie
	// TopRated holds every movie rated at or above the threshold, best first.
	TopRated     []domain.Movie
	MinRevenue   []domain.Movie
	MaxRevenue   []domain.Movie
	TotalRevenue int64
	TopProfit    []domain.Movie
	TopDirector  *NameCount
	TopActor     *NameCount
	Genres       []NameCount
	// Winners and Losers only consider movies with a known budget and revenue.
	Winners            []domain.Movie
	Losers             []domain.Movie
	CompaniesByCount   []NameCount
	CompaniesByProfit  []NameProfit
	PopularityVsProfit Scatter
	BudgetVsProfit     Scatter
}

// Analyzer runs the analyses
type Analyzer struct {
	logger *slog.Logger
	config Config
}

// NewAnalyzer creates an analyzer. Non-positive sizes fall back to defaults.
func NewAnalyzer(logger *slog.Logger, cfg Config) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if cfg.TopN <= 0 {
		cfg.TopN = def.TopN
	}
	if cfg.PopularityTopN <= 0 {
		cfg.PopularityTopN = def.PopularityTopN
	}
	if cfg.AnnotatedExtremes < 0 {
		cfg.AnnotatedExtremes = def.AnnotatedExtremes
	}
	return &Analyzer{logger: logger, config: cfg}
}

// Analyze computes the report over the deduplicated dataset
func (a *Analyzer) Analyze(ctx context.Context, movies []domain.Movie) (*Report, error) {
	start := time.Now()
	report := &Report{Movies: len(movies)}
	if len(movies) == 0 {
		a.logger.WarnContext(ctx, "No movies to analyze")
		return report, nil
	}

	frame, err := NewFrame(movies)
	if err != nil {
		return nil, err
	}

	steps := []struct {
		name string
		run  func(*Frame, *Report) error
	}{
		{"release_desc", a.releaseDesc},
		{"top_rated", a.topRated},
		{"revenue_bounds", a.revenueBounds},
		{"total_revenue", a.totalRevenue},
		{"top_profit", a.topProfit},
		{"director_actor", a.directorActor},
		{"genres", a.genres},
		{"profit_and_loss", a.profitAndLoss},
		{"companies", a.companies},
		{"popularity_profit", a.popularityVsProfit},
		{"budget_profit", a.budgetVsProfit},
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := step.run(frame, report); err != nil {
			return nil, fmt.Errorf("analysis %s: %w", step.name, err)
		}
	}

	a.logger.InfoContext(ctx, "Analyses complete",
		slog.Int("movies", len(movies)),
		slog.Int("analyses", len(steps)),
		slog.Duration("duration", time.Since(start)))

	return report, nil
}

func (a *Analyzer) releaseDesc(f *Frame, r *Report) (err error) {
	r.ReleaseDesc, err = f.Sorted(colReleaseDate, true, 0)
	return err
}

func (a *Analyzer) topRated(f *Frame, r *Report) (err error) {
	rated := f.Where(dataframe.F{
		Colname:    colVoteAverage,
		Comparator: series.GreaterEq,
		Comparando: a.config.RatingThreshold,
	})
	if rated.Len() == 0 {
		return rated.Err()
	}
	r.TopRated, err = rated.Sorted(colVoteAverage, true, 0)
	return err
}

func (a *Analyzer) revenueBounds(f *Frame, r *Report) (err error) {
	lo, hi := f.Bounds(colRevenueAdj)
	if r.MinRevenue, err = f.Equal(colRevenueAdj, int(lo)); err != nil {
		return err
	}
	r.MaxRevenue, err = f.Equal(colRevenueAdj, int(hi))
	return err
}

func (a *Analyzer) totalRevenue(f *Frame, r *Report) error {
	r.TotalRevenue = int64(math.Round(f.Sum(colRevenue)))
	return nil
}

func (a *Analyzer) topProfit(f *Frame, r *Report) (err error) {
	r.TopProfit, err = f.Sorted(colProfit, true, a.config.TopN)
	return err
}

func (a *Analyzer) directorActor(f *Frame, r *Report) error {
	if top := tallyNames(f.movies, func(m domain.Movie) string { return m.Director }).byCount(1); len(top) > 0 {
		r.TopDirector = &top[0]
	}
	if top := tallyNames(f.movies, func(m domain.Movie) string { return m.Cast }).byCount(1); len(top) > 0 {
		r.TopActor = &top[0]
	}
	return nil
}

func (a *Analyzer) genres(f *Frame, r *Report) error {
	r.Genres = tallyNames(f.movies, func(m domain.Movie) string { return m.Genres }).byCount(0)
	return nil
}

func (a *Analyzer) profitAndLoss(f *Frame, r *Report) (err error) {
	known := f.Where(
		dataframe.F{Colname: colBudgetAdj, Comparator: series.Greater, Comparando: 0},
		dataframe.F{Colname: colRevenueAdj, Comparator: series.Greater, Comparando: 0},
	)
	if known.Len() == 0 {
		return known.Err()
	}
	if r.Winners, err = known.Sorted(colProfit, true, a.config.TopN); err != nil {
		return err
	}
	r.Losers, err = known.Sorted(colProfit, false, a.config.TopN)
	return err
}

func (a *Analyzer) companies(f *Frame, r *Report) error {
	tally := tallyNames(f.movies, func(m domain.Movie) string { return m.ProductionCompanies })
	r.CompaniesByCount = tally.byCount(a.config.TopN)
	r.CompaniesByProfit = tally.byProfit(a.config.TopN)
	return nil
}

func (a *Analyzer) popularityVsProfit(f *Frame, r *Report) error {
	pf, err := newPopularityFrame(f.movies)
	if err != nil {
		return err
	}
	if pf.Len() == 0 {
		return nil
	}

	top, err := pf.Sorted(colPopularity, true, a.config.PopularityTopN)
	if err != nil {
		return err
	}

	points := newPoints(top,
		func(m domain.Movie) float64 {
			p, _ := parsePopularity(m)
			return p
		},
		func(m domain.Movie) float64 { return float64(m.Profit()) })

	r.PopularityVsProfit = Scatter{Points: points, Correlation: correlation(points)}
	return nil
}

func (a *Analyzer) budgetVsProfit(f *Frame, r *Report) error {
	budgeted := f.Where(dataframe.F{Colname: colBudgetAdj, Comparator: series.Greater, Comparando: 0})
	if budgeted.Len() == 0 {
		return budgeted.Err()
	}

	movies, err := budgeted.rowsOf(budgeted.df, 0)
	if err != nil {
		return err
	}
	x := func(m domain.Movie) float64 { return float64(m.BudgetAdj) }
	y := func(m domain.Movie) float64 { return float64(m.Profit()) }

	scatter := Scatter{Points: newPoints(movies, x, y)}
	scatter.Trend = logTrend(scatter.Points)

	if k := a.config.AnnotatedExtremes; k > 0 {
		winners, err := budgeted.Sorted(colProfit, true, k)
		if err != nil {
			return err
		}
		losers, err := budgeted.Sorted(colProfit, false, k)
		if err != nil {
			return err
		}
		scatter.Highlights = newPoints(uniqueMovies(winners, losers), x, y)
	}

	r.BudgetVsProfit = scatter
	return nil
}

// uniqueMovies concatenates lists, dropping repeated ids
func uniqueMovies(lists ...[]domain.Movie) []domain.Movie {
	seen := make(map[string]bool)
	var out []domain.Movie
	for _, list := range lists {
		for _, m := range list {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			out = append(out, m)
		}
	}
	return out
}
