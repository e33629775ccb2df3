package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"tmdbcli/pkg/contracts/domain"
)

// Coercer casts normalised rows to typed movies
type Coercer struct {
	dates      *DateResolver
	normalizer *Normalizer
	diag       *Diagnostics
}

// NewCoercer creates a coercer. Columns the normalizer whitelists keep empty
// text; the others render missing text as "nan".
func NewCoercer(dates *DateResolver, normalizer *Normalizer, diag *Diagnostics) *Coercer {
	if diag == nil {
		diag = NewDiagnostics()
	}
	return &Coercer{dates: dates, normalizer: normalizer, diag: diag}
}

// Coerce builds a movie from fields. It never fails: unparseable numbers
// become zero and invalid dates become null, each counted as a fallback.
func (c *Coercer) Coerce(fields []string, schema Schema) domain.Movie {
	identifier := func(column string) string {
		if v := strings.TrimSpace(schema.Field(fields, column)); v != "" {
			return v
		}
		return domain.MissingText
	}
	// free text passes through as the normalizer left it
	text := func(column string) string {
		v := schema.Field(fields, column)
		if v == "" && !c.normalizer.Whitelisted(column) {
			return domain.MissingText
		}
		return v
	}
	integer := func(column string) int64 {
		n, ok := ParseInt(schema.Field(fields, column))
		if !ok {
			c.diag.CoercionFallbacks[column]++
		}
		return n
	}

	m := domain.Movie{
		ID:                  identifier(domain.ColumnID),
		IMDbID:              identifier(domain.ColumnIMDbID),
		Popularity:          identifier(domain.ColumnPopularity),
		Budget:              integer(domain.ColumnBudget),
		Revenue:             integer(domain.ColumnRevenue),
		OriginalTitle:       text(domain.ColumnOriginalTitle),
		Cast:                text(domain.ColumnCast),
		Homepage:            text(domain.ColumnHomepage),
		Director:            text(domain.ColumnDirector),
		Tagline:             text(domain.ColumnTagline),
		Keywords:            text(domain.ColumnKeywords),
		Overview:            text(domain.ColumnOverview),
		Runtime:             integer(domain.ColumnRuntime),
		Genres:              text(domain.ColumnGenres),
		ProductionCompanies: text(domain.ColumnProductionCompanies),
		VoteCount:           integer(domain.ColumnVoteCount),
		ReleaseYear:         integer(domain.ColumnReleaseYear),
		BudgetAdj:           integer(domain.ColumnBudgetAdj),
		RevenueAdj:          integer(domain.ColumnRevenueAdj),
	}

	avg, ok := ParseFloat(schema.Field(fields, domain.ColumnVoteAverage))
	if !ok {
		c.diag.CoercionFallbacks[domain.ColumnVoteAverage]++
	}
	m.VoteAverage = avg

	m.ReleaseDate = c.dates.Resolve(schema.Field(fields, domain.ColumnReleaseDate))
	if !m.ReleaseDate.Valid {
		c.diag.NullDates++
	}

	return m
}

// ParseFloat parses a finite decimal number. It returns 0 and false otherwise.
func ParseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseInt parses a decimal number and truncates it toward zero, so "12.9"
// gives 12 and "1.5e3" gives 1500. Values outside int64 fall back to 0.
func ParseInt(s string) (int64, bool) {
	f, ok := ParseFloat(s)
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}
