package dataprocessing

import (
	"tmdbcli/pkg/contracts/domain"
)

// AuditColumns are the free-text columns of the raw file
var AuditColumns = []string{
	domain.ColumnIMDbID,
	domain.ColumnOriginalTitle,
	domain.ColumnCast,
	domain.ColumnHomepage,
	domain.ColumnDirector,
	domain.ColumnTagline,
	domain.ColumnKeywords,
	domain.ColumnOverview,
	domain.ColumnGenres,
	domain.ColumnProductionCompanies,
	domain.ColumnReleaseDate,
}

// AuditCharacters counts, per column, the characters of the raw rows that
// wl does not allow. It reads the rows as ingested, before any repair.
func AuditCharacters(table *RawTable, wl Whitelist, columns []string) []CharCount {
	schema := NewSchema(table.Header)
	tallies := make(map[string]map[rune]int, len(columns))

	for _, column := range columns {
		i, ok := schema[column]
		if !ok {
			continue
		}
		counts := make(map[rune]int)
		for _, row := range table.Rows {
			if i >= len(row.Fields) {
				continue
			}
			for _, ch := range row.Fields[i] {
				if !wl.Allows(ch) {
					counts[ch]++
				}
			}
		}
		tallies[column] = counts
	}

	return charReport(tallies)
}
