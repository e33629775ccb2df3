package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tmdbcli/pkg/contracts/domain"
)

func TestWhitelist_Filter(t *testing.T) {
	wl := DefaultWhitelists()

	tests := []struct {
		column string
		input  string
		want   string
	}{
		{domain.ColumnCast, "Chris Pratt|Bryce Dallas Howard", "Chris Pratt|Bryce Dallas Howard"},
		{domain.ColumnCast, "Zoë Saldana|Sam Worthington", "Zo Saldana|Sam Worthington"},
		{domain.ColumnGenres, "Action|Sci-Fi", "Action|SciFi"},
		{domain.ColumnHomepage, "http://www.jurassicworld.com/ ", "http://www.jurassicworld.com/"},
		{domain.ColumnHomepage, "http://example.com/a?b=c&d=[e]~f", "http://example.com/a?b=c&d=[e]~f"},
		{domain.ColumnTagline, `The park is "open"!`, `The park is "open"!`},
		{domain.ColumnTagline, "It's alive.", "Its alive"},
		{domain.ColumnOverview, "Twenty-two years (later): it's back!", "Twenty-two years (later): it's back!"},
		{domain.ColumnOverview, "Café — “quoted”", "Caf  quoted"},
		{domain.ColumnProductionCompanies, "Universal Studios|Amblin Entertainment (US)", "Universal Studios|Amblin Entertainment (US)"},
		{domain.ColumnOriginalTitle, "Mad Max: Fury Road™", "Mad Max: Fury Road"},
	}

	for _, tt := range tests {
		t.Run(tt.column+"/"+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, wl[tt.column].Filter(tt.input))
		})
	}
}

func TestWhitelist_FilterIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Chris Pratt|Bryce Dallas Howard",
		"Zoë Saldana",
		"http://www.example.com/ a b?c=d#e",
		`"Hello", she said. ¿Qué?`,
		"Amélie (2001): le fabuleux destin…",
		"tab\tand\nnewline nbsp",
	}

	for column, wl := range DefaultWhitelists() {
		for _, in := range inputs {
			once := wl.Filter(in)
			assert.Equal(t, once, wl.Filter(once), "column %s input %q", column, in)
		}
	}
}

func TestWhitelist_UnicodeWhitespace(t *testing.T) {
	wl := Whitelist{Whitespace: true}
	assert.True(t, wl.Allows(' '))
	assert.True(t, wl.Allows('\t'))
	assert.False(t, Whitelist{}.Allows(' '))
	assert.False(t, wl.Allows('é'))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "Mad Max: Fury Road", CollapseSpace("  Mad   Max:\tFury\n Road "))
	assert.Equal(t, "", CollapseSpace(" \t "))
}

func TestNormalizer_Normalize(t *testing.T) {
	diag := NewDiagnostics()
	n := NewNormalizer(nil, diag)
	schema := NewSchema(domain.Columns)

	fields := movieFields(map[string]string{
		domain.ColumnID:            "12§",
		domain.ColumnOriginalTitle: "  Mad   Max:\tFury Road ™ ",
		domain.ColumnCast:          "Zoë|Tom",
	})

	got := n.Normalize(fields, schema)

	assert.Equal(t, "Mad Max: Fury Road", schema.Field(got, domain.ColumnOriginalTitle))
	assert.Equal(t, "Zo|Tom", schema.Field(got, domain.ColumnCast))
	assert.Equal(t, "12§", schema.Field(got, domain.ColumnID), "columns without a whitelist are untouched")
	assert.Equal(t, "  Mad   Max:\tFury Road ™ ", schema.Field(fields, domain.ColumnOriginalTitle), "input is not modified")

	assert.Equal(t, 1, diag.Rejected[domain.ColumnOriginalTitle]['™'])
	assert.Equal(t, 1, diag.Rejected[domain.ColumnCast]['ë'])
	assert.Equal(t, 2, diag.RejectedTotal())

	report := diag.RejectedReport()
	assert.Equal(t, []CharCount{
		{Column: domain.ColumnCast, Character: 'ë', Occurrences: 1},
		{Column: domain.ColumnOriginalTitle, Character: '™', Occurrences: 1},
	}, report)
}

func TestNormalizer_Whitelisted(t *testing.T) {
	n := NewNormalizer(nil, nil)
	assert.True(t, n.Whitelisted(domain.ColumnOverview))
	assert.False(t, n.Whitelisted(domain.ColumnIMDbID))
}
