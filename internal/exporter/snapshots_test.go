package exporter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmdbcli/internal/config"
)

func tableByName(t *testing.T, tables []Table, name string) Table {
	t.Helper()
	for _, table := range tables {
		if table.Name == name {
			return table
		}
	}
	require.Failf(t, "missing table", "no snapshot named %s", name)
	return Table{}
}

func TestSnapshotTables(t *testing.T) {
	tables := SnapshotTables(sampleReport())
	require.Len(t, tables, 10)

	t.Run("release dates", func(t *testing.T) {
		table := tableByName(t, tables, config.ReleaseDescFileName)
		assert.Equal(t, [][]string{
			{"1", "1", "Alpha", "2015-06-09"},
			{"2", "2", "Beta", ""},
		}, table.Records)
	})

	t.Run("revenue bounds", func(t *testing.T) {
		table := tableByName(t, tables, config.RevenueBoundsFileName)
		assert.Equal(t, [][]string{
			{"min", "2", "Beta", "200"},
			{"max", "1", "Alpha", "1000"},
		}, table.Records)
	})

	t.Run("director without actor", func(t *testing.T) {
		table := tableByName(t, tables, config.DirectorActorFileName)
		assert.Equal(t, [][]string{{"director", "Steven Spielberg", "2"}}, table.Records)
	})

	t.Run("profit and loss", func(t *testing.T) {
		table := tableByName(t, tables, config.ProfitAndLossFileName)
		require.Len(t, table.Records, 4)
		assert.Equal(t, []string{"profit", "1", "Alpha", "900", "100", "1000"}, table.Records[0])
		assert.Equal(t, []string{"loss", "1", "Beta", "-300", "500", "200"}, table.Records[2])
	})

	t.Run("companies", func(t *testing.T) {
		table := tableByName(t, tables, config.TopCompaniesFileName)
		assert.Equal(t, [][]string{
			{"movies", "1", "Amblin", "2"},
			{"profit", "1", "Amblin", "600"},
		}, table.Records)
	})

	t.Run("budget points ordered by budget with trend", func(t *testing.T) {
		table := tableByName(t, tables, config.BudgetProfitFileName)
		assert.Equal(t, [][]string{
			{"Alpha", "100", "900", "472.00", "true"},
			{"Beta", "500", "-300", "-726.03", "false"},
		}, table.Records)
	})
}

func TestWriteSnapshots(t *testing.T) {
	writer, dir := setupTestEnv(t)

	require.NoError(t, writer.WriteSnapshots(context.Background(), sampleReport(), false))

	for _, table := range SnapshotTables(sampleReport()) {
		records := readCSV(t, reportPath(dir, table.Name), 0)
		require.NotEmpty(t, records, table.Name)
		assert.Equal(t, table.Headers, records[0], table.Name)
		assert.Len(t, records, len(table.Records)+1, table.Name)
	}
}

func TestWriteSnapshots_Cancelled(t *testing.T) {
	writer, _ := setupTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := writer.WriteSnapshots(ctx, sampleReport(), false)
	assert.ErrorIs(t, err, context.Canceled)
}
