package pipeline

import (
	"context"
	"log/slog"
	"time"
)

// Stage defines the interface that all crawl stages must implement.
// Stages are executed in sequence; each stage runs its own frontier to
// quiescence before returning.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows stages to carry their dependencies as state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., per-stage retry budgets)
type Stage interface {
	// Run executes the stage until its frontier is empty or ctx is
	// cancelled. Failures of individual tasks inside the stage must be
	// isolated by the stage itself; an error return means the stage as a
	// whole could not make progress.
	Run(ctx context.Context) error

	// Name returns the stage's name for logging purposes.
	Name() string
}

// Runner executes stages in order.
type Runner struct {
	// stages contains the ordered list of stages to execute.
	stages []Stage

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing stages
	// after one fails. If false, the runner stops on first error.
	continueOnError bool
}

// Option is a function that configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger for the runner.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithContinueOnError configures the runner to continue execution even when
// a stage fails. A failed stage leaves its frontier intact, so a later run
// picks up where it stopped; subsequent stages can still make useful
// progress on what was discovered so far.
func WithContinueOnError(continueOnError bool) Option {
	return func(r *Runner) {
		r.continueOnError = continueOnError
	}
}

// New creates a new Runner with the given options.
// Stages should be added using AddStage after creation.
func New(opts ...Option) *Runner {
	r := &Runner{
		stages:          make([]Stage, 0),
		continueOnError: false,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// AddStage appends a stage to the runner.
// Stages are executed in the order they are added.
func (r *Runner) AddStage(stage Stage) {
	r.stages = append(r.stages, stage)
}

// AddStages appends multiple stages to the runner.
func (r *Runner) AddStages(stages ...Stage) {
	r.stages = append(r.stages, stages...)
}

// Execute runs all stages in sequence.
// It respects context cancellation and logs each stage's execution.
//
// Design decision: We check context.Done() before each stage rather than
// during, because stages handle their own cancellation between batches.
// A cancelled run leaves every frontier durably intact, so interruption at
// any point is safe.
func (r *Runner) Execute(ctx context.Context) error {
	for _, stage := range r.stages {
		select {
		case <-ctx.Done():
			r.logger.Warn("crawl cancelled",
				"stage", stage.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		r.logger.Info("starting stage", "stage", stage.Name())
		start := time.Now()

		if err := stage.Run(ctx); err != nil {
			r.logger.Error("stage failed",
				"stage", stage.Name(),
				"elapsed", time.Since(start),
				"error", err,
			)
			if !r.continueOnError {
				return err
			}
			continue
		}

		r.logger.Info("stage reached quiescence",
			"stage", stage.Name(),
			"elapsed", time.Since(start),
		)
	}

	return nil
}

// StageCount returns the number of stages in the runner.
func (r *Runner) StageCount() int {
	return len(r.stages)
}

// StageNames returns the names of all stages in execution order.
func (r *Runner) StageNames() []string {
	names := make([]string, len(r.stages))
	for i, stage := range r.stages {
		names[i] = stage.Name()
	}
	return names
}
