package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"tmdbcli/internal/analytics"
	"tmdbcli/internal/config"
	"tmdbcli/internal/errors"
)

// Sheet names of the report workbook
const (
	SummarySheet          = "Summary"
	PopularityProfitSheet = "Popularity vs Profit"
	BudgetProfitSheet     = "Budget vs Profit"
)

const defaultSheet = "Sheet1"

// Workbook renders the analysis report as an XLSX file with scatter charts
type Workbook struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewWorkbook creates a workbook writer
func NewWorkbook(paths *config.Paths, logger *slog.Logger) *Workbook {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workbook{paths: paths, logger: logger}
}

// Write builds the workbook and saves it under the reports directory
func (w *Workbook) Write(filePath string, r *analytics.Report) (err error) {
	fullPath := filePath
	if !filepath.IsAbs(filePath) && w.paths != nil {
		fullPath = w.paths.GetReportPath(filePath)
	}

	f := excelize.NewFile()
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = errors.NewIOError("close", fullPath, closeErr)
		}
	}()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetName(defaultSheet, SummarySheet); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	if err := writeSummary(f, header, r); err != nil {
		return err
	}

	sheets := 1
	for _, table := range SnapshotTables(r) {
		if table.Name == config.PopularityProfitFileName || table.Name == config.BudgetProfitFileName {
			continue
		}
		if err := writeTableSheet(f, header, sheetName(table.Name), table); err != nil {
			return err
		}
		sheets++
	}

	if err := writePopularitySheet(f, header, r.PopularityVsProfit); err != nil {
		return err
	}
	if err := writeBudgetSheet(f, header, r.BudgetVsProfit); err != nil {
		return err
	}
	sheets += 2

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return errors.NewIOError("create directory", filepath.Dir(fullPath), err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return errors.NewIOError("save", fullPath, err)
	}

	w.logger.Info("Workbook written",
		slog.String("path", fullPath),
		slog.Int("sheets", sheets))
	return nil
}

// sheetName derives a sheet name from a snapshot file name
func sheetName(fileName string) string {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if len(name) > excelize.MaxSheetNameLength {
		name = name[:excelize.MaxSheetNameLength]
	}
	return name
}

func writeSummary(f *excelize.File, header int, r *analytics.Report) error {
	rows := [][]interface{}{
		{"metric", "value"},
		{"movies", r.Movies},
		{"total_revenue", r.TotalRevenue},
		{"popularity_profit_correlation", r.PopularityVsProfit.Correlation},
	}
	if r.TopDirector != nil {
		rows = append(rows, []interface{}{"top_director", r.TopDirector.Name})
	}
	if r.TopActor != nil {
		rows = append(rows, []interface{}{"top_actor", r.TopActor.Name})
	}
	if t := r.BudgetVsProfit.Trend; t != nil {
		rows = append(rows,
			[]interface{}{"budget_trend_intercept", t.Intercept},
			[]interface{}{"budget_trend_slope", t.Slope})
	}

	if err := setRows(f, SummarySheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 32); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return styleHeader(f, SummarySheet, header, 2)
}

func writeTableSheet(f *excelize.File, header int, sheet string, table Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := make([][]interface{}, 0, len(table.Records)+1)
	rows = append(rows, toRow(table.Headers))
	for _, record := range table.Records {
		rows = append(rows, toRow(record))
	}

	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	return styleHeader(f, sheet, header, len(table.Headers))
}

func writePopularitySheet(f *excelize.File, header int, s analytics.Scatter) error {
	sheet := PopularityProfitSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"original_title", "popularity", "profit"}}
	for _, p := range s.Points {
		rows = append(rows, []interface{}{p.Title, p.X, p.Y})
	}
	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, header, 3); err != nil {
		return err
	}
	if len(s.Points) == 0 {
		return nil
	}

	chart := scatterChart(
		fmt.Sprintf("Popularity vs Profit (r = %.2f)", s.Correlation),
		"Popularity", "Profit", false,
		pointSeries("Movies", sheet, "B", "C", len(s.Points), 6),
	)
	if err := f.AddChart(sheet, "E2", chart); err != nil {
		return fmt.Errorf("add chart to %s: %w", sheet, err)
	}
	return nil
}

// writeBudgetSheet lays out the points by ascending budget with the trend
// value beside each one, and the annotated points in a separate block so
// they can be plotted as their own series.
func writeBudgetSheet(f *excelize.File, header int, s analytics.Scatter) error {
	sheet := BudgetProfitSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"original_title", "budget_adj", "profit", "trend", "", "annotated_title", "budget_adj", "profit"}}
	points := sortedByX(s.Points)
	for i, p := range points {
		row := []interface{}{p.Title, p.X, p.Y, nil, nil, nil, nil, nil}
		if s.Trend != nil {
			row[3] = s.Trend.At(p.X)
		}
		if i < len(s.Highlights) {
			h := s.Highlights[i]
			row[5], row[6], row[7] = h.Title, h.X, h.Y
		}
		rows = append(rows, row)
	}
	for i := len(points); i < len(s.Highlights); i++ {
		h := s.Highlights[i]
		rows = append(rows, []interface{}{nil, nil, nil, nil, nil, h.Title, h.X, h.Y})
	}

	if err := setRows(f, sheet, rows); err != nil {
		return err
	}
	if err := styleHeader(f, sheet, header, 8); err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}

	series := []excelize.ChartSeries{pointSeries("Movies", sheet, "B", "C", len(points), 5)}
	if s.Trend != nil {
		series = append(series, excelize.ChartSeries{
			Name:       "Trend",
			Categories: columnRange(sheet, "B", len(points)),
			Values:     columnRange(sheet, "D", len(points)),
			Line:       excelize.ChartLine{Width: 1.5},
			Marker:     excelize.ChartMarker{Symbol: "none"},
		})
	}
	if len(s.Highlights) > 0 {
		series = append(series, pointSeries("Extremes", sheet, "G", "H", len(s.Highlights), 9))
	}

	chart := scatterChart("Budget vs Profit", "Budget (adjusted, log scale)", "Profit", true, series...)
	if err := f.AddChart(sheet, "J2", chart); err != nil {
		return fmt.Errorf("add chart to %s: %w", sheet, err)
	}
	return nil
}

func scatterChart(title, xTitle, yTitle string, logX bool, series ...excelize.ChartSeries) *excelize.Chart {
	chart := &excelize.Chart{
		Type:   excelize.Scatter,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
		XAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: xTitle}},
			MajorGridLines: true,
		},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: yTitle}},
			MajorGridLines: true,
		},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 800, Height: 480},
	}
	if logX {
		chart.XAxis.LogBase = 10
	}
	return chart
}

func pointSeries(name, sheet, xCol, yCol string, n int, size int) excelize.ChartSeries {
	return excelize.ChartSeries{
		Name:       name,
		Categories: columnRange(sheet, xCol, n),
		Values:     columnRange(sheet, yCol, n),
		Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
		Marker:     excelize.ChartMarker{Symbol: "circle", Size: size},
	}
}

// columnRange references rows 2..n+1 of a column
func columnRange(sheet, col string, n int) string {
	return fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, col, col, n+1)
}

func setRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, style, columns int) error {
	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
