package operations

import (
	"time"

	"tmdbcli/internal/analytics"
	"tmdbcli/internal/config"
	"tmdbcli/internal/dataprocessing"
	"tmdbcli/pkg/contracts/domain"
)

// RunState owns everything one pipeline run reads and produces. Steps run
// one at a time, so it carries no locking.
type RunState struct {
	ID        string
	StartTime time.Time

	Config *config.Config
	Paths  *config.Paths

	// InputPath is the local copy of the raw dataset.
	InputPath string
	// Downloaded reports whether InputPath was fetched during this run.
	Downloaded bool

	Raw     *dataprocessing.RawTable
	Unusual []dataprocessing.CharCount
	Clean   *dataprocessing.CleanResult
	Movies  []domain.Movie
	Report  *analytics.Report
	Outputs []string

	steps map[string]*StepState
	order []string
}

// NewRunState creates the state of a new run. A nil config falls back to
// the defaults and nil paths are resolved from the config.
func NewRunState(id string, cfg *config.Config, paths *config.Paths) *RunState {
	if cfg == nil {
		cfg = config.Default()
	}
	if paths == nil {
		paths = config.NewPaths(cfg.Paths)
	}
	return &RunState{
		ID:        id,
		StartTime: time.Now(),
		Config:    cfg,
		Paths:     paths,
		steps:     make(map[string]*StepState),
	}
}

// Diagnostics returns the anomaly counts of the clean step, or nil before it
func (s *RunState) Diagnostics() *dataprocessing.Diagnostics {
	if s.Clean == nil {
		return nil
	}
	return s.Clean.Diagnostics
}

// AddOutput records a file written by the run
func (s *RunState) AddOutput(path string) {
	s.Outputs = append(s.Outputs, path)
}

// Step returns the state of a step, creating it on first use
func (s *RunState) Step(step Step) *StepState {
	st, ok := s.steps[step.ID()]
	if !ok {
		st = NewStepState(step.ID(), step.Name())
		s.steps[step.ID()] = st
		s.order = append(s.order, step.ID())
	}
	return st
}

// Steps returns the step states in execution order
func (s *RunState) Steps() []*StepState {
	out := make([]*StepState, len(s.order))
	for i, id := range s.order {
		out[i] = s.steps[id]
	}
	return out
}

// Duration returns the time elapsed since the run started
func (s *RunState) Duration() time.Duration {
	return time.Since(s.StartTime)
}
