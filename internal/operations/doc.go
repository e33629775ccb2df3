// Package operations runs the movie cleaning pipeline as an ordered list of
// steps over one in-memory RunState.
//
// Core Components:
//
// Step: a single unit of work (fetch, audit, clean, dedupe, analyze,
// visualize). Steps read what earlier steps left in the RunState and add
// their own results.
//
// Registry: keeps the registered steps in registration order, which is the
// execution order.
//
// Runner: executes the steps strictly sequentially. Every step gets a span,
// a StepState with timing, and a step execution metric. The first failing
// step aborts the run with an *OperationError naming it; anomaly counts
// never fail a step.
//
// Example usage:
//
//	registry, err := operations.NewPipelineRegistry(deps)
//	runner, err := operations.NewRunner(registry, logger, providers)
//	state := operations.NewRunState(runID, cfg, paths)
//	err = runner.Run(ctx, state)
package operations
