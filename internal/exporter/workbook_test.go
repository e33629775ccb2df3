package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tmdbcli/internal/analytics"
	"tmdbcli/internal/config"
	"tmdbcli/internal/shared/testutil"
)

func writeWorkbook(t *testing.T, report *analytics.Report) *excelize.File {
	t.Helper()
	dir := t.TempDir()
	paths := config.NewPaths(config.PathsConfig{BaseDir: dir, ReportsDir: "reports"})
	logger, handler := testutil.NewTestLogger(t)

	require.NoError(t, NewWorkbook(paths, logger).Write(config.WorkbookFileName, report))
	assert.True(t, handler.ContainsMessage("Workbook written"))

	f, err := excelize.OpenFile(filepath.Join(paths.ReportsDir, config.WorkbookFileName))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbook_Sheets(t *testing.T) {
	f := writeWorkbook(t, sampleReport())

	sheets := f.GetSheetList()
	assert.Equal(t, SummarySheet, sheets[0])
	assert.NotContains(t, sheets, "Sheet1")
	for _, name := range []string{
		"release_desc", "avg_rate", "min_max", "top10_profit", "dir_act",
		"genres", "top_pnl", "top_company", PopularityProfitSheet, BudgetProfitSheet,
	} {
		assert.Contains(t, sheets, name)
	}
}

func TestWorkbook_Summary(t *testing.T) {
	f := writeWorkbook(t, sampleReport())

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"metric", "value"}, rows[0])
	assert.Equal(t, []string{"movies", "2"}, rows[1])
	assert.Equal(t, []string{"total_revenue", "1050"}, rows[2])
	assert.Equal(t, []string{"top_director", "Steven Spielberg"}, rows[4])
}

func TestWorkbook_BudgetSheet(t *testing.T) {
	f := writeWorkbook(t, sampleReport())

	title, err := f.GetCellValue(BudgetProfitSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", title, "points are ordered by budget")

	budget, err := f.GetCellValue(BudgetProfitSheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "500", budget)

	annotated, err := f.GetCellValue(BudgetProfitSheet, "F2")
	require.NoError(t, err)
	assert.Equal(t, "Alpha", annotated)
}

func TestWorkbook_EmptyReport(t *testing.T) {
	f := writeWorkbook(t, &analytics.Report{})

	rows, err := f.GetRows(PopularityProfitSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}

func TestColumnRange(t *testing.T) {
	assert.Equal(t, "'Budget vs Profit'!$B$2:$B$11", columnRange(BudgetProfitSheet, "B", 10))
}
