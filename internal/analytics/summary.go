package analytics

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"tmdbcli/pkg/contracts/domain"
)

// summaryWriter prints with grouped thousands and keeps the first error
type summaryWriter struct {
	p   *message.Printer
	w   io.Writer
	err error
}

func (s *summaryWriter) printf(format string, args ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = s.p.Fprintf(s.w, format, args...)
}

func (s *summaryWriter) movies(title string, movies []domain.Movie, n int, value func(domain.Movie) interface{}, verb string) {
	s.printf("\n%s\n", title)
	for i, m := range head(movies, n) {
		s.printf("  %2d. %-45s "+verb+"\n", i+1, m.OriginalTitle, value(m))
	}
}

// WriteSummary prints the headline numbers of the report, listing at most n
// entries per ranking
func (r *Report) WriteSummary(w io.Writer, n int) error {
	s := &summaryWriter{p: message.NewPrinter(language.English), w: w}
	profit := func(m domain.Movie) interface{} { return m.Profit() }

	s.printf("Movies analyzed: %d\n", r.Movies)
	s.printf("Total revenue:   %d\n", r.TotalRevenue)

	s.movies("Latest releases", r.ReleaseDesc, n, func(m domain.Movie) interface{} { return m.ReleaseDate.String() }, "%s")
	s.movies("Top rated", r.TopRated, n, func(m domain.Movie) interface{} { return m.VoteAverage }, "%.1f")
	s.movies("Lowest revenue", r.MinRevenue, n, func(m domain.Movie) interface{} { return m.RevenueAdj }, "%d")
	s.movies("Highest revenue", r.MaxRevenue, n, func(m domain.Movie) interface{} { return m.RevenueAdj }, "%d")
	s.movies("Top profit", r.TopProfit, n, profit, "%d")
	s.movies("Most profitable", r.Winners, n, profit, "%d")
	s.movies("Biggest losses", r.Losers, n, profit, "%d")

	if r.TopDirector != nil {
		s.printf("\nTop director: %s (%d movies)\n", r.TopDirector.Name, r.TopDirector.Count)
	}
	if r.TopActor != nil {
		s.printf("Top actor:    %s (%d movies)\n", r.TopActor.Name, r.TopActor.Count)
	}

	s.printf("\nMovies by genre\n")
	for _, g := range r.Genres {
		s.printf("  %-20s %d\n", g.Name, g.Count)
	}

	s.printf("\nTop production companies by movies\n")
	for _, c := range head(r.CompaniesByCount, n) {
		s.printf("  %-45s %d\n", c.Name, c.Count)
	}
	s.printf("\nTop production companies by total profit\n")
	for _, c := range head(r.CompaniesByProfit, n) {
		s.printf("  %-45s %d\n", c.Name, c.Profit)
	}

	s.printf("\nCorrelation between popularity and profit (top %d): %.3f\n",
		len(r.PopularityVsProfit.Points), r.PopularityVsProfit.Correlation)
	if t := r.BudgetVsProfit.Trend; t != nil {
		s.printf("Budget vs profit trend: profit = %.0f + %.0f * log10(budget)\n", t.Intercept, t.Slope)
	}

	return s.err
}
