package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/engine"
	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// RunBatchStore defines the database operations needed to run a batch
type RunBatchStore interface {
	LoadSnapshot(ctx context.Context, window model.DateRange) (*model.Snapshot, error)
	ExistingAssignments(ctx context.Context, window model.DateRange, slotTypeIDs []string) ([]model.Assignment, error)
	InsertAssignments(ctx context.Context, assignments []model.Assignment) error
}

// RunBatchResult contains the staged pipeline output and, after a commit,
// the persistence tallies
type RunBatchResult struct {
	Window   model.DateRange
	Pipeline *engine.PipelineResult
	DryRun   bool
	Inserted int
	Skipped  int
}

// RunBatch executes a unified batch: loads a fresh snapshot, runs the
// step pipeline over it, and (unless dryRun) persists the winning
// assignments with conflict skipping.
func RunBatch(
	ctx context.Context,
	store RunBatchStore,
	logger *zap.Logger,
	steps []engine.Step,
	window model.DateRange,
	trialCount int,
	seed int64,
	dryRun bool,
) (*RunBatchResult, error) {
	logger.Debug("Starting runBatch",
		zap.Int("steps", len(steps)),
		zap.String("start", window.Start),
		zap.String("end", window.End),
		zap.Bool("dry_run", dryRun))

	if len(steps) == 0 {
		return nil, fmt.Errorf("no steps configured")
	}

	// Step 1: load an immutable snapshot for the window
	snapshot, err := store.LoadSnapshot(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	logger.Debug("Snapshot loaded",
		zap.Int("members", len(snapshot.Members)),
		zap.Int("shift_types", len(snapshot.ShiftTypes)),
		zap.Int("presets", len(snapshot.Presets)))

	// Step 2: run the pipeline
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng := engine.New(snapshot, logger)
	pipeline, err := eng.RunPipeline(steps, nil, window, trialCount, engine.NewRand(seed))
	if err != nil {
		return nil, fmt.Errorf("pipeline failed: %w", err)
	}
	logger.Info("Pipeline finished",
		zap.String("run_id", pipeline.RunID),
		zap.Int("assignments", len(pipeline.Assignments)),
		zap.Int("unassigned", len(pipeline.UnassignedDates)))

	result := &RunBatchResult{Window: window, Pipeline: pipeline, DryRun: dryRun}
	if dryRun {
		return result, nil
	}

	// Step 3: persist, skipping anything inserted by another session since
	// the snapshot was taken
	inserted, skipped, err := CommitRoster(ctx, store, logger, pipeline.Assignments, window)
	if err != nil {
		return nil, err
	}
	result.Inserted = inserted
	result.Skipped = skipped

	return result, nil
}
