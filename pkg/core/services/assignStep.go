package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/engine"
	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// AssignStep runs a single assignment step (on-call or general shift) from
// a stored preset. It is RunBatch with a one-step pipeline, so the same
// staging and conflict-skip behaviour applies.
func AssignStep(
	ctx context.Context,
	store RunBatchStore,
	logger *zap.Logger,
	presetID string,
	window model.DateRange,
	trialCount int,
	seed int64,
	dryRun bool,
) (*RunBatchResult, error) {
	logger.Debug("Starting assignStep", zap.String("preset_id", presetID))

	steps := []engine.Step{{PresetID: presetID}}
	return RunBatch(ctx, store, logger, steps, window, trialCount, seed, dryRun)
}
