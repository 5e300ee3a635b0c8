// Package cleaner implements the one-pass cleaning of policy holder records.
//
// A run loads the CSV file, applies an ordered list of named steps to the
// whole record set, and persists the result:
//
//	load → inspect → drop_incomplete_identity → impute_text → impute_numeric →
//	coerce_types → normalize_formats → deduplicate → validate → persist
//
// Only structural problems fail a run (see core.DataSourceError and
// core.SchemaError). Bad cells are imputed, nulled or filtered.
package cleaner

import (
	"context"
	"fmt"
	"time"

	"github.com/JonMunkholm/policy-cleaner/internal/logging"
)

// StepFunc transforms the record set in place and returns it.
type StepFunc func(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error)

// Step is a named pipeline stage.
type Step struct {
	Name string
	Fn   StepFunc
}

// DefaultSteps returns the cleaning steps in execution order.
func DefaultSteps() []Step {
	return []Step{
		{Name: "inspect", Fn: Inspect},
		{Name: "drop_incomplete_identity", Fn: DropIncompleteIdentity},
		{Name: "impute_text", Fn: ImputeText},
		{Name: "impute_numeric", Fn: ImputeNumeric},
		{Name: "coerce_types", Fn: CoerceTypes},
		{Name: "normalize_formats", Fn: NormalizeFormats},
		{Name: "deduplicate", Fn: Deduplicate},
		{Name: "validate", Fn: Validate},
	}
}

// Pipeline runs steps in order over one record set.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline. With no steps it uses DefaultSteps.
func NewPipeline(steps ...Step) *Pipeline {
	if len(steps) == 0 {
		steps = DefaultSteps()
	}
	return &Pipeline{steps: steps}
}

// Steps returns the step names in order.
func (p *Pipeline) Steps() []string {
	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = s.Name
	}
	return names
}

// Clean applies every step to set.
func (p *Pipeline) Clean(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("cancelled before %s: %w", step.Name, err)
		}

		logger := logging.WithFields(ctx, "step", step.Name)
		before := set.Len()
		start := time.Now()

		out, err := step.Fn(ctx, set, rep)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step.Name, err)
		}
		set = out

		logger.Debug("step completed",
			"rows_in", before,
			"rows_out", set.Len(),
			"duration", time.Since(start),
		)
	}
	return set, nil
}

// Options configures a run.
type Options struct {
	InputPath  string
	OutputPath string
}

// Cleaner loads, cleans and persists one record set per run.
type Cleaner struct {
	opts     Options
	pipeline *Pipeline
}

// New creates a Cleaner using the default pipeline.
func New(opts Options) *Cleaner {
	return &Cleaner{opts: opts, pipeline: NewPipeline()}
}

// Run executes load, the cleaning steps and persist. On error no output file
// is created or modified. The run ID is taken from ctx when present.
func (c *Cleaner) Run(ctx context.Context) (*Report, error) {
	runID := logging.RunID(ctx)
	if runID == "" {
		runID = logging.NewRunID()
		ctx = logging.WithRunID(ctx, runID)
	}
	logger := logging.FromContext(ctx)

	rep := NewReport(runID)
	rep.InputPath = c.opts.InputPath
	rep.OutputPath = c.opts.OutputPath

	logger.Info("cleaning started", "input", c.opts.InputPath, "output", c.opts.OutputPath)

	set, bytesRead, err := Load(ctx, c.opts.InputPath)
	rep.BytesRead = bytesRead
	if err != nil {
		return rep, err
	}

	set, err = c.pipeline.Clean(ctx, set, rep)
	if err != nil {
		return rep, err
	}

	if err := Write(c.opts.OutputPath, set); err != nil {
		return rep, err
	}
	rep.Written = set.Len()
	rep.Duration = time.Since(rep.StartedAt)

	for _, ch := range rep.SortedChanges() {
		logger.Info("cells changed", "column", ch.Column, "operation", string(ch.Operation), "count", rep.Changes[ch])
	}
	logger.Info("cleaning completed",
		"loaded", rep.Loaded,
		"dropped_incomplete", rep.DroppedIncomplete,
		"duplicates_removed", rep.DuplicatesRemoved,
		"invalid_removed", len(rep.Invalid),
		"written", rep.Written,
		"duration", rep.Duration,
	)
	return rep, nil
}
