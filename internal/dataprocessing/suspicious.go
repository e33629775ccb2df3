package dataprocessing

import (
	"strings"
	"unicode/utf8"

	"tmdbcli/pkg/contracts/domain"
)

// SuspiciousAspect labels every flagged record
const SuspiciousAspect = "short/numeric/date-like"

// SuspiciousRecord is a cleaned record whose title looks corrupted
type SuspiciousRecord struct {
	Movie  domain.Movie
	Aspect string
}

// Record renders the movie fields followed by the aspect
func (s SuspiciousRecord) Record() []string {
	return append(s.Movie.Record(), s.Aspect)
}

// IsSuspiciousTitle reports whether title is at most two characters,
// all digits, or starts with a YYYY-MM-DD shaped date.
func IsSuspiciousTitle(title string) bool {
	t := strings.TrimSpace(title)
	return utf8.RuneCountInString(t) <= 2 || allDigits(t) || hasDatePrefix(t)
}

// DetectSuspicious returns the flagged records in input order. The input is
// not modified.
func DetectSuspicious(movies []domain.Movie) []SuspiciousRecord {
	var flagged []SuspiciousRecord
	for _, m := range movies {
		if IsSuspiciousTitle(m.OriginalTitle) {
			flagged = append(flagged, SuspiciousRecord{Movie: m, Aspect: SuspiciousAspect})
		}
	}
	return flagged
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// hasDatePrefix matches ####-##-## at the start of s
func hasDatePrefix(s string) bool {
	const shape = "####-##-##"
	if len(s) < len(shape) {
		return false
	}
	for i := 0; i < len(shape); i++ {
		if shape[i] == '-' {
			if s[i] != '-' {
				return false
			}
		} else if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
