package domain

import (
	"strconv"
)

// Column names of the TMDB movie dataset, in canonical output order.
const (
	ColumnID                  = "id"
	ColumnIMDbID              = "imdb_id"
	ColumnPopularity          = "popularity"
	ColumnBudget              = "budget"
	ColumnRevenue             = "revenue"
	ColumnOriginalTitle       = "original_title"
	ColumnCast                = "cast"
	ColumnHomepage            = "homepage"
	ColumnDirector            = "director"
	ColumnTagline             = "tagline"
	ColumnKeywords            = "keywords"
	ColumnOverview            = "overview"
	ColumnRuntime             = "runtime"
	ColumnGenres              = "genres"
	ColumnProductionCompanies = "production_companies"
	ColumnReleaseDate         = "release_date"
	ColumnVoteCount           = "vote_count"
	ColumnVoteAverage         = "vote_average"
	ColumnReleaseYear         = "release_year"
	ColumnBudgetAdj           = "budget_adj"
	ColumnRevenueAdj          = "revenue_adj"
)

// Columns is the expected header of the dataset.
var Columns = []string{
	ColumnID, ColumnIMDbID, ColumnPopularity, ColumnBudget, ColumnRevenue,
	ColumnOriginalTitle, ColumnCast, ColumnHomepage, ColumnDirector, ColumnTagline,
	ColumnKeywords, ColumnOverview, ColumnRuntime, ColumnGenres, ColumnProductionCompanies,
	ColumnReleaseDate, ColumnVoteCount, ColumnVoteAverage, ColumnReleaseYear,
	ColumnBudgetAdj, ColumnRevenueAdj,
}

// MissingText is how an absent value is rendered in text columns that carry
// no whitelist.
const MissingText = "nan"

// Movie is one cleaned, typed record of the dataset.
type Movie struct {
	ID                  string  `json:"id" csv:"id"`
	IMDbID              string  `json:"imdb_id" csv:"imdb_id"`
	Popularity          string  `json:"popularity" csv:"popularity"`
	Budget              int64   `json:"budget" csv:"budget"`
	Revenue             int64   `json:"revenue" csv:"revenue"`
	OriginalTitle       string  `json:"original_title" csv:"original_title"`
	Cast                string  `json:"cast" csv:"cast"`
	Homepage            string  `json:"homepage" csv:"homepage"`
	Director            string  `json:"director" csv:"director"`
	Tagline             string  `json:"tagline" csv:"tagline"`
	Keywords            string  `json:"keywords" csv:"keywords"`
	Overview            string  `json:"overview" csv:"overview"`
	Runtime             int64   `json:"runtime" csv:"runtime"`
	Genres              string  `json:"genres" csv:"genres"`
	ProductionCompanies string  `json:"production_companies" csv:"production_companies"`
	ReleaseDate         Date    `json:"release_date" csv:"release_date"`
	VoteCount           int64   `json:"vote_count" csv:"vote_count"`
	VoteAverage         float64 `json:"vote_average" csv:"vote_average"`
	ReleaseYear         int64   `json:"release_year" csv:"release_year"`
	BudgetAdj           int64   `json:"budget_adj" csv:"budget_adj"`
	RevenueAdj          int64   `json:"revenue_adj" csv:"revenue_adj"`
}

// Profit is the inflation-adjusted revenue minus the adjusted budget.
func (m Movie) Profit() int64 {
	return m.RevenueAdj - m.BudgetAdj
}

// Record renders the movie as CSV fields in Columns order.
func (m Movie) Record() []string {
	return []string{
		m.ID,
		m.IMDbID,
		m.Popularity,
		formatInt(m.Budget),
		formatInt(m.Revenue),
		m.OriginalTitle,
		m.Cast,
		m.Homepage,
		m.Director,
		m.Tagline,
		m.Keywords,
		m.Overview,
		formatInt(m.Runtime),
		m.Genres,
		m.ProductionCompanies,
		m.ReleaseDate.String(),
		formatInt(m.VoteCount),
		strconv.FormatFloat(m.VoteAverage, 'f', -1, 64),
		formatInt(m.ReleaseYear),
		formatInt(m.BudgetAdj),
		formatInt(m.RevenueAdj),
	}
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
