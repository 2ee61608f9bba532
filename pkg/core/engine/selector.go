package engine

import "github.com/meitohealth/duty-roster/pkg/core/model"

// SelectCandidate picks which eligible member receives the date's slot.
// Fairness first (fewest prior assignments, or lowest weighted score),
// then scarcity of remaining options, then a uniform random pick.
// Returns nil only when the eligible set is empty.
func (e *Engine) SelectCandidate(date string, eligible []*model.Member, slot *model.SlotType, state *RunState, cfg *model.RunConfig, rng Rand) *model.Member {
	if len(eligible) == 0 {
		return nil
	}

	priority := func(m *model.Member) int {
		if cfg.Fairness == model.FairnessScore {
			return e.memberScore(m, state.Ledger, cfg.ScoreRules)
		}
		return state.Counts[m.ID]
	}

	candidates := filterByMin(eligible, priority)

	// Prefer members with the fewest remaining eligible dates in this run:
	// scarce members get scarce slots, which reduces future infeasibility.
	if len(candidates) > 1 {
		candidates = filterByMin(candidates, func(m *model.Member) int {
			return e.remainingOptions(date, m, slot, state, cfg)
		})
	}

	return candidates[rng.Intn(len(candidates))]
}

// remainingOptions counts the not-yet-assigned target dates the member is
// still eligible for, excluding the date under consideration
func (e *Engine) remainingOptions(date string, m *model.Member, slot *model.SlotType, state *RunState, cfg *model.RunConfig) int {
	count := 0
	for _, d := range state.Remaining {
		if d == date {
			continue
		}
		if e.eligibleSafe(d, m, slot, state.Ledger, cfg) {
			count++
		}
	}
	return count
}

// filterByMin returns the subset of members achieving the minimum key.
// Keys are computed once per member; the scarcity key re-runs eligibility
// over the remaining dates, so a second evaluation is not cheap.
func filterByMin(members []*model.Member, key func(*model.Member) int) []*model.Member {
	keys := make([]int, len(members))
	min := 0
	for i, m := range members {
		keys[i] = key(m)
		if i == 0 || keys[i] < min {
			min = keys[i]
		}
	}

	var subset []*model.Member
	for i, m := range members {
		if keys[i] == min {
			subset = append(subset, m)
		}
	}
	return subset
}
