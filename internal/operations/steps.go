package operations

import (
	"context"
	"io"
	"log/slog"

	"tmdbcli/internal/analytics"
	"tmdbcli/internal/config"
	"tmdbcli/internal/dataprocessing"
	"tmdbcli/internal/exporter"
	"tmdbcli/internal/fetch"
	"tmdbcli/internal/validation"
)

// Step IDs
const (
	StepIDFetch     = "fetch"
	StepIDAudit     = "audit"
	StepIDClean     = "clean"
	StepIDDedupe    = "dedupe"
	StepIDAnalyze   = "analyze"
	StepIDVisualize = "visualize"
)

// PipelineDeps are the collaborators shared by the pipeline steps
type PipelineDeps struct {
	Logger   *slog.Logger
	Writer   *exporter.CSVWriter
	Workbook *exporter.Workbook
	// Source overrides the dataset source built from the run config.
	Source *fetch.Source
	// Console receives the analysis summary; nil disables it.
	Console io.Writer
}

// NewPipelineRegistry registers the six pipeline steps in execution order
func NewPipelineRegistry(deps PipelineDeps) (*Registry, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	registry := NewRegistry()
	steps := []Step{
		NewFetchStep(deps.Source, deps.Logger),
		NewAuditStep(deps.Writer, deps.Logger),
		NewCleanStep(deps.Writer, deps.Logger),
		NewDedupeStep(deps.Writer, deps.Logger),
		NewAnalyzeStep(deps.Writer, deps.Console, deps.Logger),
		NewVisualizeStep(deps.Workbook, deps.Logger),
	}
	for _, step := range steps {
		if err := registry.Register(step); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// FetchStep makes a local copy of the raw dataset available
type FetchStep struct {
	BaseStep
	source *fetch.Source
	logger *slog.Logger
}

// NewFetchStep creates the fetch step. A nil source is built from the run
// config at execution time.
func NewFetchStep(source *fetch.Source, logger *slog.Logger) *FetchStep {
	return &FetchStep{
		BaseStep: NewBaseStep(StepIDFetch, "Fetch dataset"),
		source:   source,
		logger:   logger,
	}
}

// Execute downloads the dataset unless a local copy is configured, then
// checks the file is readable and not empty
func (s *FetchStep) Execute(ctx context.Context, state *RunState) error {
	source := s.source
	if source == nil {
		source = fetch.NewSource(state.Config.Source, s.logger)
	}

	path, downloaded, err := source.Ensure(ctx, state.Paths.GetDownloadPath(config.RawDatasetFileName))
	if err != nil {
		return err
	}
	if err := validation.NewFileValidator(s.logger).ValidateCSVFile(path); err != nil {
		return err
	}
	state.InputPath = path
	state.Downloaded = downloaded
	return nil
}

// ensureRaw ingests the input file once per run
func ensureRaw(state *RunState, step string) error {
	if state.Raw != nil {
		return nil
	}
	if state.InputPath == "" {
		return NewStateError(step, "no input file")
	}
	raw, err := dataprocessing.Ingest(state.InputPath)
	if err != nil {
		return err
	}
	state.Raw = raw
	return nil
}

// writerFor returns w, or a writer rooted at the run's reports directory
func writerFor(w *exporter.CSVWriter, state *RunState, logger *slog.Logger) *exporter.CSVWriter {
	if w != nil {
		return w
	}
	return exporter.NewCSVWriter(state.Paths, logger)
}

// AuditStep reports the unusual characters of the raw file
type AuditStep struct {
	BaseStep
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// NewAuditStep creates the audit step
func NewAuditStep(writer *exporter.CSVWriter, logger *slog.Logger) *AuditStep {
	return &AuditStep{
		BaseStep: NewBaseStep(StepIDAudit, "Audit characters"),
		writer:   writer,
		logger:   logger,
	}
}

// Execute reads the raw file and writes the unusual characters report
func (s *AuditStep) Execute(ctx context.Context, state *RunState) error {
	if err := ensureRaw(state, s.ID()); err != nil {
		return err
	}

	state.Unusual = dataprocessing.AuditCharacters(state.Raw, dataprocessing.BaseWhitelist, dataprocessing.AuditColumns)
	if err := writerFor(s.writer, state, s.logger).WriteCharReport(config.UnusualCharsFileName, state.Unusual); err != nil {
		return err
	}
	state.AddOutput(state.Paths.GetReportPath(config.UnusualCharsFileName))

	s.logger.InfoContext(ctx, "Character audit complete",
		slog.Int("rows", len(state.Raw.Rows)),
		slog.Int("unusual_characters", len(state.Unusual)))
	return nil
}

// CleanStep runs the cleaning core and writes its outputs
type CleanStep struct {
	BaseStep
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// NewCleanStep creates the clean step
func NewCleanStep(writer *exporter.CSVWriter, logger *slog.Logger) *CleanStep {
	return &CleanStep{
		BaseStep: NewBaseStep(StepIDClean, "Clean dataset"),
		writer:   writer,
		logger:   logger,
	}
}

// Execute cleans the raw table and writes the cleaned dataset, the
// suspicious records and the rejected characters report
func (s *CleanStep) Execute(ctx context.Context, state *RunState) error {
	if err := ensureRaw(state, s.ID()); err != nil {
		return err
	}

	cleaner := dataprocessing.NewCleaner(s.logger, dataprocessing.CleanerConfig{
		Window: dataprocessing.YearWindow{
			Min: state.Config.Cleaning.MinYear,
			Max: state.Config.Cleaning.MaxYear,
		},
		Whitelists: dataprocessing.DefaultWhitelists(),
	})
	result, err := cleaner.Clean(ctx, state.Raw)
	if err != nil {
		return err
	}
	state.Clean = result

	w := writerFor(s.writer, state, s.logger)
	bom := state.Config.Reports.BOMPrefix
	if err := w.WriteMovies(config.CleanedFileName, result.Movies, bom); err != nil {
		return err
	}
	if err := w.WriteSuspicious(config.SuspiciousFileName, result.Suspicious, bom); err != nil {
		return err
	}
	if err := w.WriteCharReport(config.RejectedCharsFileName, result.Diagnostics.RejectedReport()); err != nil {
		return err
	}
	for _, name := range []string{config.CleanedFileName, config.SuspiciousFileName, config.RejectedCharsFileName} {
		state.AddOutput(state.Paths.GetReportPath(name))
	}
	return nil
}

// DedupeStep drops repeated movie ids
type DedupeStep struct {
	BaseStep
	writer *exporter.CSVWriter
	logger *slog.Logger
}

// NewDedupeStep creates the dedupe step
func NewDedupeStep(writer *exporter.CSVWriter, logger *slog.Logger) *DedupeStep {
	return &DedupeStep{
		BaseStep: NewBaseStep(StepIDDedupe, "Remove duplicates"),
		writer:   writer,
		logger:   logger,
	}
}

// Execute deduplicates the cleaned movies and writes the final dataset
func (s *DedupeStep) Execute(ctx context.Context, state *RunState) error {
	if state.Clean == nil {
		return NewStateError(s.ID(), "dataset has not been cleaned")
	}

	movies, dropped := dataprocessing.Deduplicate(state.Clean.Movies)
	state.Movies = movies
	state.Clean.Diagnostics.Duplicates = dropped

	if err := writerFor(s.writer, state, s.logger).WriteMovies(config.DedupedFileName, movies, state.Config.Reports.BOMPrefix); err != nil {
		return err
	}
	state.AddOutput(state.Paths.GetReportPath(config.DedupedFileName))

	s.logger.InfoContext(ctx, "Duplicates removed",
		slog.Int("kept", len(movies)),
		slog.Int("dropped", dropped))
	return nil
}

// AnalyzeStep computes the report and writes one snapshot per analysis
type AnalyzeStep struct {
	BaseStep
	writer  *exporter.CSVWriter
	console io.Writer
	logger  *slog.Logger
}

// NewAnalyzeStep creates the analyze step
func NewAnalyzeStep(writer *exporter.CSVWriter, console io.Writer, logger *slog.Logger) *AnalyzeStep {
	return &AnalyzeStep{
		BaseStep: NewBaseStep(StepIDAnalyze, "Analyze dataset"),
		writer:   writer,
		console:  console,
		logger:   logger,
	}
}

// Execute runs the analytics over the deduplicated movies
func (s *AnalyzeStep) Execute(ctx context.Context, state *RunState) error {
	if state.Clean == nil {
		return NewStateError(s.ID(), "dataset has not been cleaned")
	}

	reports := state.Config.Reports
	report, err := analytics.NewAnalyzer(s.logger, analytics.ConfigFromReports(reports)).Analyze(ctx, state.Movies)
	if err != nil {
		return err
	}
	state.Report = report

	if err := writerFor(s.writer, state, s.logger).WriteSnapshots(ctx, report, reports.BOMPrefix); err != nil {
		return err
	}
	for _, table := range exporter.SnapshotTables(report) {
		state.AddOutput(state.Paths.GetReportPath(table.Name))
	}

	if s.console != nil {
		if err := report.WriteSummary(s.console, reports.TopN); err != nil {
			return err
		}
	}
	return nil
}

// VisualizeStep writes the XLSX workbook with the scatter charts
type VisualizeStep struct {
	BaseStep
	workbook *exporter.Workbook
	logger   *slog.Logger
}

// NewVisualizeStep creates the visualize step
func NewVisualizeStep(workbook *exporter.Workbook, logger *slog.Logger) *VisualizeStep {
	return &VisualizeStep{
		BaseStep: NewBaseStep(StepIDVisualize, "Build workbook"),
		workbook: workbook,
		logger:   logger,
	}
}

// ShouldSkip skips the workbook when it is disabled in the config
func (s *VisualizeStep) ShouldSkip(state *RunState) (string, bool) {
	if !state.Config.Reports.Workbook {
		return "workbook disabled", true
	}
	return "", false
}

// Execute renders the report into the workbook
func (s *VisualizeStep) Execute(ctx context.Context, state *RunState) error {
	if state.Report == nil {
		return NewStateError(s.ID(), "dataset has not been analyzed")
	}

	workbook := s.workbook
	if workbook == nil {
		workbook = exporter.NewWorkbook(state.Paths, s.logger)
	}
	if err := workbook.Write(config.WorkbookFileName, state.Report); err != nil {
		return err
	}
	state.AddOutput(state.Paths.GetReportPath(config.WorkbookFileName))
	return nil
}
