package dataprocessing

import (
	"strings"
	"unicode"

	"tmdbcli/pkg/contracts/domain"
)

// Whitelist is the set of characters a column may contain: ASCII letters and
// digits, optionally Unicode whitespace, plus a fixed set of punctuation.
type Whitelist struct {
	Whitespace  bool
	Punctuation string
}

// Allows reports whether ch may appear in the column
func (w Whitelist) Allows(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case w.Whitespace && unicode.IsSpace(ch):
		return true
	}
	return strings.ContainsRune(w.Punctuation, ch)
}

// Filter removes every character not allowed. Filter is idempotent.
func (w Whitelist) Filter(s string) string {
	return w.apply(s, nil)
}

// apply filters s and tallies removed characters into rejected, if non-nil
func (w Whitelist) apply(s string, rejected map[rune]int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if w.Allows(ch) {
			b.WriteRune(ch)
			continue
		}
		if rejected != nil {
			rejected[ch]++
		}
	}
	return b.String()
}

var (
	listWhitelist = Whitelist{Whitespace: true, Punctuation: "|"}

	// BaseWhitelist is the character set the audit treats as usual.
	BaseWhitelist = Whitelist{Whitespace: true, Punctuation: ".,-():"}
)

// DefaultWhitelists returns the per-column whitelist table
func DefaultWhitelists() map[string]Whitelist {
	return map[string]Whitelist{
		domain.ColumnCast:                listWhitelist,
		domain.ColumnDirector:            listWhitelist,
		domain.ColumnKeywords:            listWhitelist,
		domain.ColumnGenres:              listWhitelist,
		domain.ColumnHomepage:            {Punctuation: ":/?#[]@!$&'()*+,;=-._~"},
		domain.ColumnTagline:             {Whitespace: true, Punctuation: `,"!?`},
		domain.ColumnOverview:            {Whitespace: true, Punctuation: "'!?.,-():"},
		domain.ColumnProductionCompanies: {Whitespace: true, Punctuation: "/-&|.,()"},
		domain.ColumnOriginalTitle:       {Whitespace: true, Punctuation: "!'.,-():"},
	}
}

// CollapseSpace replaces whitespace runs with one space and trims the ends
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalizer applies column whitelists to repaired rows
type Normalizer struct {
	whitelists map[string]Whitelist
	diag       *Diagnostics
}

// NewNormalizer creates a normalizer. A nil table selects DefaultWhitelists.
func NewNormalizer(whitelists map[string]Whitelist, diag *Diagnostics) *Normalizer {
	if whitelists == nil {
		whitelists = DefaultWhitelists()
	}
	if diag == nil {
		diag = NewDiagnostics()
	}
	return &Normalizer{whitelists: whitelists, diag: diag}
}

// Normalize returns a copy of fields with the whitelisted columns filtered.
// The title additionally gets its whitespace collapsed.
func (n *Normalizer) Normalize(fields []string, schema Schema) []string {
	fields = append([]string(nil), fields...)
	for column, wl := range n.whitelists {
		i, ok := schema[column]
		if !ok || i >= len(fields) {
			continue
		}
		fields[i] = wl.apply(fields[i], n.diag.rejectCounter(column))
	}

	if i, ok := schema[domain.ColumnOriginalTitle]; ok && i < len(fields) {
		fields[i] = CollapseSpace(fields[i])
	}
	return fields
}

// Whitelisted reports whether column has a whitelist
func (n *Normalizer) Whitelisted(column string) bool {
	_, ok := n.whitelists[column]
	return ok
}
