package engine

import (
	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// DefaultTrialCount is used when a run leaves the trial count unset.
// A trial count of 1 disables multi-trial search.
const DefaultTrialCount = 10

// OptimizeResult keeps every trial so an operator can override the
// automatic choice
type OptimizeResult struct {
	Best      *TrialResult
	BestIndex int
	Trials    []*TrialResult
}

// Optimize runs the configured number of independent trials and keeps the
// one with the fewest unassigned dates, ties broken by first-found.
func (e *Engine) Optimize(members []*model.Member, dates []string, initial map[string]int, cfg *model.RunConfig, rng Rand) (*OptimizeResult, error) {
	if err := e.validateRun(cfg, members, dates); err != nil {
		return nil, err
	}

	trialCount := cfg.TrialCount
	if trialCount <= 0 {
		trialCount = DefaultTrialCount
	}

	result := &OptimizeResult{Trials: make([]*TrialResult, 0, trialCount)}

	for i := 0; i < trialCount; i++ {
		// Each trial gets its own derived source so a single seed
		// reproduces the whole optimizer run
		trial := e.RunTrial(members, dates, initial, cfg, NewRand(rng.Int63()))
		result.Trials = append(result.Trials, trial)

		if result.Best == nil || len(trial.UnassignedDates) < len(result.Best.UnassignedDates) {
			result.Best = trial
			result.BestIndex = i
		}
	}

	e.logger.Info("optimizer finished",
		zap.String("slot_type", cfg.SlotTypeID),
		zap.Int("trials", len(result.Trials)),
		zap.Int("best_unassigned", len(result.Best.UnassignedDates)))

	return result, nil
}
