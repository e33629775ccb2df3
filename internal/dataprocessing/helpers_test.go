package dataprocessing

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tmdbcli/pkg/contracts/domain"
)

// movieFields lays values out in dataset column order; absent columns are empty
func movieFields(values map[string]string) []string {
	fields := make([]string, len(domain.Columns))
	for i, column := range domain.Columns {
		fields[i] = values[column]
	}
	return fields
}

// csvLine renders fields as one CSV line without the trailing newline
func csvLine(t *testing.T, fields []string) string {
	t.Helper()

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write(fields))
	w.Flush()
	require.NoError(t, w.Error())
	return strings.TrimSuffix(buf.String(), "\n")
}
