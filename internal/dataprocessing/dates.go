package dataprocessing

import (
	"strconv"
	"strings"

	"tmdbcli/internal/config"
	"tmdbcli/pkg/contracts/domain"
)

// YearWindow is the inclusive range two-digit years are resolved into
type YearWindow struct {
	Min int
	Max int
}

// Contains reports whether year lies in the window
func (w YearWindow) Contains(year int) bool {
	return year >= w.Min && year <= w.Max
}

// DefaultYearWindow is the valid span of the TMDB dataset
func DefaultYearWindow() YearWindow {
	return YearWindow{Min: config.DefaultMinReleaseYear, Max: config.DefaultMaxReleaseYear}
}

// DateResolver parses month/day/year release dates
type DateResolver struct {
	window YearWindow
}

// NewDateResolver creates a resolver for the given window
func NewDateResolver(window YearWindow) *DateResolver {
	return &DateResolver{window: window}
}

// Resolve parses s as M/D/Y. A month above 12 with a day of at most 12 is
// taken as swapped. Two-digit years resolve to 20YY when that falls in the
// window, else 19YY, else the date is null. Anything else that does not form
// a calendar date is null too.
func (r *DateResolver) Resolve(s string) domain.Date {
	if strings.TrimSpace(s) == "" {
		return domain.NullDate()
	}

	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return domain.NullDate()
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return domain.NullDate()
		}
		nums[i] = n
	}
	month, day, year := nums[0], nums[1], nums[2]

	if month > 12 && day <= 12 {
		month, day = day, month
	}

	if year < 100 {
		switch {
		case r.window.Contains(2000 + year):
			year += 2000
		case r.window.Contains(1900 + year):
			year += 1900
		default:
			return domain.NullDate()
		}
	}

	return domain.CalendarDate(year, month, day)
}
