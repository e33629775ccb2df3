package dataprocessing

import (
	"tmdbcli/pkg/contracts/domain"
)

// Deduplicate keeps the first movie per id in input order and returns the
// kept movies with the number dropped. Only the id is compared.
func Deduplicate(movies []domain.Movie) ([]domain.Movie, int) {
	seen := make(map[string]struct{}, len(movies))
	kept := make([]domain.Movie, 0, len(movies))

	for _, m := range movies {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		seen[m.ID] = struct{}{}
		kept = append(kept, m)
	}
	return kept, len(movies) - len(kept)
}
