package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// CommitStore defines the database operations needed to persist a reviewed
// roster
type CommitStore interface {
	ExistingAssignments(ctx context.Context, window model.DateRange, slotTypeIDs []string) ([]model.Assignment, error)
	InsertAssignments(ctx context.Context, assignments []model.Assignment) error
}

// CommitRoster persists staged assignments. It re-checks current state
// immediately before writing and silently skips rows that already exist;
// the skipped count is reported back for the operator. Insert-only: no
// updates or deletes.
func CommitRoster(
	ctx context.Context,
	store CommitStore,
	logger *zap.Logger,
	assignments []model.Assignment,
	window model.DateRange,
) (inserted, skipped int, err error) {
	if len(assignments) == 0 {
		return 0, 0, nil
	}

	slotTypeIDs := make([]string, 0, 4)
	seen := make(map[string]bool)
	for _, a := range assignments {
		if !seen[a.SlotTypeID] {
			seen[a.SlotTypeID] = true
			slotTypeIDs = append(slotTypeIDs, a.SlotTypeID)
		}
	}

	// Paired rest days can land one day past the run window, so the
	// recheck range must cover the staged dates, not just the window
	recheck := window
	for _, a := range assignments {
		if a.Date < recheck.Start {
			recheck.Start = a.Date
		}
		if a.Date > recheck.End {
			recheck.End = a.Date
		}
	}

	existing, err := store.ExistingAssignments(ctx, recheck, slotTypeIDs)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to re-check existing assignments: %w", err)
	}
	taken := make(map[model.Key]bool, len(existing))
	for _, a := range existing {
		taken[a.Key()] = true
	}

	toInsert := make([]model.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if taken[a.Key()] {
			skipped++
			continue
		}
		toInsert = append(toInsert, a)
	}

	if len(toInsert) > 0 {
		if err := store.InsertAssignments(ctx, toInsert); err != nil {
			return 0, skipped, fmt.Errorf("failed to insert assignments: %w", err)
		}
	}

	logger.Info("Roster committed",
		zap.Int("inserted", len(toInsert)),
		zap.Int("skipped", skipped))

	return len(toInsert), skipped, nil
}
