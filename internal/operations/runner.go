package operations

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"tmdbcli/internal/infrastructure"
)

// Runner executes the registered steps in order over one RunState
type Runner struct {
	registry *Registry
	logger   *slog.Logger
	tracer   trace.Tracer
	metrics  *infrastructure.PipelineMetrics
}

// NewRunner creates a runner. With nil providers spans and metrics are
// discarded.
func NewRunner(registry *Registry, logger *slog.Logger, providers *infrastructure.OTelProviders) (*Runner, error) {
	if registry == nil {
		return nil, fmt.Errorf("runner requires a step registry")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var (
		tracer trace.Tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.MeterName)
		meter  metric.Meter = metricnoop.NewMeterProvider().Meter(infrastructure.MeterName)
	)
	if providers != nil {
		tracer, meter = providers.Tracer, providers.Meter
	}

	metrics, err := infrastructure.CreatePipelineMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	return &Runner{
		registry: registry,
		logger:   infrastructure.WithComponent(logger, "operations"),
		tracer:   tracer,
		metrics:  metrics,
	}, nil
}

// Run executes every step strictly in registration order. The first step
// error stops the run; the remaining steps are marked skipped.
func (r *Runner) Run(ctx context.Context, state *RunState) error {
	ctx, span := r.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("run.id", state.ID)))
	defer span.End()

	steps := r.registry.List()
	r.logger.InfoContext(ctx, "Pipeline started",
		slog.Int("step_count", len(steps)),
		slog.String("trace_id", infrastructure.TraceIDFromContext(ctx)))

	var runErr error
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			runErr = NewCancellationError(step.ID(), err)
		} else {
			runErr = r.executeStep(ctx, state, step, i+1, len(steps))
		}
		if runErr != nil {
			for _, rest := range steps[i+1:] {
				state.Step(rest).Skip(fmt.Sprintf("step %s did not complete", step.ID()))
			}
			break
		}
	}

	r.recordDiagnostics(ctx, state)

	if runErr != nil {
		infrastructure.RecordError(ctx, runErr)
		r.logger.ErrorContext(ctx, "Pipeline failed",
			slog.String("step", StepOf(runErr)),
			slog.String("error", runErr.Error()),
			slog.Duration("duration", state.Duration()))
		return runErr
	}

	r.logger.InfoContext(ctx, "Pipeline completed",
		slog.Int("outputs", len(state.Outputs)),
		slog.Duration("duration", state.Duration()))
	return nil
}

// executeStep runs a single step inside its own span
func (r *Runner) executeStep(ctx context.Context, state *RunState, step Step, number, total int) error {
	st := state.Step(step)

	if skipper, ok := step.(Skipper); ok {
		if reason, skip := skipper.ShouldSkip(state); skip {
			st.Skip(reason)
			r.recordStep(ctx, st)
			r.logger.InfoContext(ctx, "Step skipped",
				slog.String("step", step.ID()),
				slog.String("reason", reason))
			return nil
		}
	}

	ctx, span := r.tracer.Start(ctx, "step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
			attribute.Int("step.number", number),
		))
	defer span.End()

	r.logger.InfoContext(ctx, "Executing step",
		slog.String("step", step.ID()),
		slog.Int("step_number", number),
		slog.Int("total_steps", total))

	st.Start()
	err := step.Execute(ctx, state)
	if err != nil {
		st.Fail(err)
		r.recordStep(ctx, st)
		infrastructure.RecordError(ctx, err)
		return NewExecutionError(step.ID(), err)
	}

	st.Complete()
	r.recordStep(ctx, st)
	r.logger.InfoContext(ctx, "Step completed",
		slog.String("step", step.ID()),
		slog.Duration("duration", st.Duration()))
	return nil
}

func (r *Runner) recordStep(ctx context.Context, st *StepState) {
	r.metrics.StepExecutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", st.ID),
		attribute.String("status", string(st.Status)),
	))
	if st.Status != StepStatusSkipped {
		r.metrics.StepDuration.Record(ctx, st.Duration().Seconds(),
			metric.WithAttributes(attribute.String("step", st.ID)))
	}
}

// recordDiagnostics publishes the anomaly counts of the run as metrics and
// run span attributes
func (r *Runner) recordDiagnostics(ctx context.Context, state *RunState) {
	diag := state.Diagnostics()
	if diag == nil {
		return
	}

	r.metrics.RowsRead.Add(ctx, int64(diag.RowsRead))
	for outcome, n := range diag.Repairs {
		if n == 0 {
			continue
		}
		r.metrics.RowsRepaired.Add(ctx, int64(n),
			metric.WithAttributes(attribute.String("outcome", string(outcome))))
	}
	for column, counts := range diag.Rejected {
		total := 0
		for _, n := range counts {
			total += n
		}
		r.metrics.RejectedCharacters.Add(ctx, int64(total),
			metric.WithAttributes(attribute.String("column", column)))
	}
	for column, n := range diag.CoercionFallbacks {
		r.metrics.CoercionFallbacks.Add(ctx, int64(n),
			metric.WithAttributes(attribute.String("column", column)))
	}
	r.metrics.NullDates.Add(ctx, int64(diag.NullDates))
	r.metrics.SuspiciousRecords.Add(ctx, int64(diag.Suspicious))
	r.metrics.DuplicatesRemoved.Add(ctx, int64(diag.Duplicates))

	infrastructure.SetSpanAttributes(ctx, map[string]int{
		"rows.read":          diag.RowsRead,
		"rows.unreadable":    diag.Unreadable,
		"rows.repaired":      diag.RepairedRows(),
		"chars.rejected":     diag.RejectedTotal(),
		"dates.null":         diag.NullDates,
		"values.fallback":    diag.FallbackTotal(),
		"records.suspicious": diag.Suspicious,
		"records.duplicate":  diag.Duplicates,
	})
}
