package exporter

import (
	"context"
	"log/slog"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"tmdbcli/internal/analytics"
	"tmdbcli/internal/config"
	"tmdbcli/pkg/contracts/domain"
)

// Table is one analysis snapshot
type Table struct {
	Name    string
	Headers []string
	Records [][]string
}

// SnapshotTables renders every analysis of the report as a table
func SnapshotTables(r *analytics.Report) []Table {
	return []Table{
		movieTable(config.ReleaseDescFileName, r.ReleaseDesc, "release_date",
			func(m domain.Movie) string { return m.ReleaseDate.String() }),
		movieTable(config.TopRatedFileName, r.TopRated, "vote_average",
			func(m domain.Movie) string { return formatFloat(m.VoteAverage) }),
		revenueBoundsTable(r),
		movieTable(config.TopProfitFileName, r.TopProfit, "profit",
			func(m domain.Movie) string { return formatInt(m.Profit()) }),
		directorActorTable(r),
		nameCountTable(config.GenresFileName, "genre", r.Genres),
		profitAndLossTable(r),
		companiesTable(r),
		popularityTable(r),
		budgetTable(r),
	}
}

func movieTable(name string, movies []domain.Movie, column string, value func(domain.Movie) string) Table {
	t := Table{Name: name, Headers: []string{"rank", "id", "original_title", column}}
	for i, m := range movies {
		t.Records = append(t.Records, []string{strconv.Itoa(i + 1), m.ID, m.OriginalTitle, value(m)})
	}
	return t
}

func revenueBoundsTable(r *analytics.Report) Table {
	t := Table{Name: config.RevenueBoundsFileName, Headers: []string{"bound", "id", "original_title", "revenue_adj"}}
	for _, b := range []struct {
		label  string
		movies []domain.Movie
	}{{"min", r.MinRevenue}, {"max", r.MaxRevenue}} {
		for _, m := range b.movies {
			t.Records = append(t.Records, []string{b.label, m.ID, m.OriginalTitle, formatInt(m.RevenueAdj)})
		}
	}
	return t
}

func directorActorTable(r *analytics.Report) Table {
	t := Table{Name: config.DirectorActorFileName, Headers: []string{"role", "name", "movies"}}
	if r.TopDirector != nil {
		t.Records = append(t.Records, []string{"director", r.TopDirector.Name, strconv.Itoa(r.TopDirector.Count)})
	}
	if r.TopActor != nil {
		t.Records = append(t.Records, []string{"actor", r.TopActor.Name, strconv.Itoa(r.TopActor.Count)})
	}
	return t
}

func nameCountTable(name, column string, counts []analytics.NameCount) Table {
	t := Table{Name: name, Headers: []string{column, "movies"}}
	for _, c := range counts {
		t.Records = append(t.Records, []string{c.Name, strconv.Itoa(c.Count)})
	}
	return t
}

func profitAndLossTable(r *analytics.Report) Table {
	t := Table{
		Name:    config.ProfitAndLossFileName,
		Headers: []string{"kind", "rank", "original_title", "profit", "budget_adj", "revenue_adj"},
	}
	for _, group := range []struct {
		kind   string
		movies []domain.Movie
	}{{"profit", r.Winners}, {"loss", r.Losers}} {
		for i, m := range group.movies {
			t.Records = append(t.Records, []string{
				group.kind, strconv.Itoa(i + 1), m.OriginalTitle,
				formatInt(m.Profit()), formatInt(m.BudgetAdj), formatInt(m.RevenueAdj),
			})
		}
	}
	return t
}

func companiesTable(r *analytics.Report) Table {
	t := Table{Name: config.TopCompaniesFileName, Headers: []string{"ranking", "rank", "company", "value"}}
	for i, c := range r.CompaniesByCount {
		t.Records = append(t.Records, []string{"movies", strconv.Itoa(i + 1), c.Name, strconv.Itoa(c.Count)})
	}
	for i, c := range r.CompaniesByProfit {
		t.Records = append(t.Records, []string{"profit", strconv.Itoa(i + 1), c.Name, formatInt(c.Profit)})
	}
	return t
}

func popularityTable(r *analytics.Report) Table {
	t := Table{Name: config.PopularityProfitFileName, Headers: []string{"original_title", "popularity", "profit"}}
	for _, p := range r.PopularityVsProfit.Points {
		t.Records = append(t.Records, []string{p.Title, formatFloat(p.X), formatFloat(p.Y)})
	}
	return t
}

// budgetTable lists the budget/profit points by ascending budget with the
// trend value at each point and whether the point is annotated
func budgetTable(r *analytics.Report) Table {
	s := r.BudgetVsProfit
	t := Table{
		Name:    config.BudgetProfitFileName,
		Headers: []string{"original_title", "budget_adj", "profit", "trend", "annotated"},
	}

	annotated := make(map[analytics.Point]bool, len(s.Highlights))
	for _, p := range s.Highlights {
		annotated[p] = true
	}

	for _, p := range sortedByX(s.Points) {
		trend := ""
		if s.Trend != nil {
			trend = formatFixed(s.Trend.At(p.X), 2)
		}
		t.Records = append(t.Records, []string{
			p.Title, formatFloat(p.X), formatFloat(p.Y), trend, formatBool(annotated[p]),
		})
	}
	return t
}

func sortedByX(points []analytics.Point) []analytics.Point {
	out := append([]analytics.Point(nil), points...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// WriteSnapshots writes every snapshot table concurrently. Each table goes to
// its own file; the first failure cancels the rest.
func (w *CSVWriter) WriteSnapshots(ctx context.Context, r *analytics.Report, bom bool) error {
	tables := SnapshotTables(r)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, table := range tables {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return w.WriteCSV(table.Name, WriteOptions{
				Headers:   table.Headers,
				Records:   table.Records,
				BOMPrefix: bom,
			})
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "Analysis snapshots written", slog.Int("files", len(tables)))
	return nil
}
