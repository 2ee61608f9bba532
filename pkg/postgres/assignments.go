package postgres

import (
	"context"
	"fmt"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// ExistingAssignments returns the persisted shift rows for the window and
// slot types, used for pre-insert de-duplication
func (d *DB) ExistingAssignments(ctx context.Context, window model.DateRange, slotTypeIDs []string) ([]model.Assignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT member_id, date, shift_type_id, kind, location_id
		FROM shifts
		WHERE date >= $1 AND date <= $2 AND shift_type_id = ANY($3)
	`, window.Start, window.End, slotTypeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var kind string
		if err := rows.Scan(&a.MemberID, &a.Date, &a.SlotTypeID, &kind, &a.LocationID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a.Kind = model.AssignmentKind(kind)
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignments: %w", err)
	}

	return assignments, nil
}

// InsertAssignments writes engine output as shift rows. Insert-only; the
// caller has already de-duplicated against current state.
func (d *DB) InsertAssignments(ctx context.Context, assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO shifts (member_id, date, shift_type_id, kind, location_id)
			VALUES ($1, $2, $3, $4, $5)
		`, a.MemberID, a.Date, a.SlotTypeID, string(a.Kind), a.LocationID)
		if err != nil {
			return fmt.Errorf("failed to insert assignment for %s on %s: %w", a.MemberID, a.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}

	return nil
}
