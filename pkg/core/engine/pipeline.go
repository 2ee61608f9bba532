package engine

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// Step is one stage of a unified batch: a stored preset plus optional
// per-step overrides, or a fully explicit configuration.
type Step struct {
	PresetID string
	Config   *model.RunConfig // explicit config wins over the preset

	SlotTypeID     string // optional slot type override
	MaxAssignments *int   // optional cap override
	DateRRule      string // optional date-selection override
}

// StepResult is the outcome of a single pipeline step
type StepResult struct {
	StepID   string
	PresetID string
	Config   *model.RunConfig
	Result   *OptimizeResult
}

// PipelineResult is the staged outcome of a whole batch run, held for
// operator review before anything is persisted
type PipelineResult struct {
	RunID           string
	Steps           []*StepResult
	Assignments     []model.Assignment
	UnassignedDates []string
}

// RunPipeline processes the steps strictly in order. Each step sees the
// assignments of all prior steps, both in its seeded counts and as a
// read-only overlay on the members' shift data, so caps and eligibility
// hold across the whole batch rather than per step. The member pool
// defaults to the snapshot's members when nil.
func (e *Engine) RunPipeline(steps []Step, pool []*model.Member, window model.DateRange, trialCount int, rng Rand) (*PipelineResult, error) {
	if pool == nil {
		pool = e.snap.Members
	}

	result := &PipelineResult{RunID: uuid.NewString()}
	var prior []model.Assignment

	for i, step := range steps {
		cfg, err := e.resolveStepConfig(step, trialCount)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		stepEngine := New(e.overlaySnapshot(pool, prior), e.logger)

		members := stepEngine.ResolveMembers(cfg.Members)
		dates, err := stepEngine.ResolveDates(cfg.Dates, window)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		seeds := e.seedCounts(members, prior, window, cfg)

		opt, err := stepEngine.Optimize(members, dates, seeds, cfg, rng)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		prior = append(prior, opt.Best.Assignments...)
		result.Assignments = append(result.Assignments, opt.Best.Assignments...)
		result.UnassignedDates = append(result.UnassignedDates, opt.Best.UnassignedDates...)
		result.Steps = append(result.Steps, &StepResult{
			StepID:   uuid.NewString(),
			PresetID: step.PresetID,
			Config:   cfg,
			Result:   opt,
		})

		e.logger.Info("pipeline step finished",
			zap.Int("step", i+1),
			zap.String("slot_type", cfg.SlotTypeID),
			zap.Int("assigned", len(opt.Best.Assignments)),
			zap.Int("unassigned", len(opt.Best.UnassignedDates)))
	}

	return result, nil
}

// resolveStepConfig returns the effective configuration for a step: the
// explicit config, or the named preset's stored configuration, with
// per-step overrides applied to a copy.
func (e *Engine) resolveStepConfig(step Step, trialCount int) (*model.RunConfig, error) {
	var cfg *model.RunConfig
	switch {
	case step.Config != nil:
		cfg = step.Config.Clone()
	case step.PresetID != "":
		preset, ok := e.snap.Presets[step.PresetID]
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", step.PresetID)
		}
		cfg = preset.Config.Clone()
	default:
		return nil, ErrNoSlotType
	}

	if step.SlotTypeID != "" {
		cfg.SlotTypeID = step.SlotTypeID
	}
	if step.MaxAssignments != nil {
		max := *step.MaxAssignments
		cfg.MaxAssignments = &max
	}
	if step.DateRRule != "" {
		cfg.Dates = model.DateRule{RRule: step.DateRRule}
	}
	if cfg.TrialCount <= 0 {
		cfg.TrialCount = trialCount
	}
	return cfg, nil
}

// overlaySnapshot clones the pool members and injects the prior steps'
// assignments into their shift views. The overlay is session-local; the
// underlying snapshot is never written to.
func (e *Engine) overlaySnapshot(pool []*model.Member, prior []model.Assignment) *model.Snapshot {
	byMember := make(map[string][]model.Assignment)
	for _, a := range prior {
		byMember[a.MemberID] = append(byMember[a.MemberID], a)
	}

	members := make([]*model.Member, 0, len(pool))
	for _, m := range pool {
		assignments, ok := byMember[m.ID]
		if !ok {
			members = append(members, m)
			continue
		}
		clone := m.Clone()
		for _, a := range assignments {
			clone.Shifts[a.Date] = append(clone.Shifts[a.Date], model.Entry{
				SlotTypeID: a.SlotTypeID,
				LocationID: a.LocationID,
			})
		}
		members = append(members, clone)
	}

	overlay := *e.snap
	overlay.Members = members
	return &overlay
}

// seedCounts builds the initial per-member counters for a step. Prior
// pipeline assignments of the target slot type always count; pre-existing
// persisted shifts count unconditionally on the on-call path but only under
// a monthly cap scope on the general-shift path.
func (e *Engine) seedCounts(members []*model.Member, prior []model.Assignment, window model.DateRange, cfg *model.RunConfig) map[string]int {
	seeds := make(map[string]int, len(members))

	includeExisting := cfg.Kind == model.StepOnCall || cfg.CapScope == model.CapScopeMonthly

	for _, m := range members {
		count := 0

		if includeExisting {
			original := e.snap.Member(m.ID)
			if original != nil {
				for date, entries := range original.Shifts {
					if !window.Contains(date) {
						continue
					}
					for _, entry := range entries {
						if entry.SlotTypeID == cfg.SlotTypeID {
							count++
						}
					}
				}
			}
		}

		for _, a := range prior {
			if a.MemberID == m.ID && a.SlotTypeID == cfg.SlotTypeID {
				count++
			}
		}

		if count > 0 {
			seeds[m.ID] = count
		}
	}
	return seeds
}
