package sqlite

import (
	"context"
	"fmt"

	"github.com/ksuzuki/yaritai/internal/models"
)

// ToggleAvailability flips a member's free-marker for one date: the
// record is inserted if absent and deleted if present. Two toggles in a
// row always land back on the starting state.
func (s *SQLiteStore) ToggleAvailability(ctx context.Context, rec models.AvailabilityRecord) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM availability WHERE group_id = ? AND user_id = ? AND date = ?",
		rec.GroupID, rec.UserID, rec.Date,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove availability: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check availability result: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO availability (group_id, user_id, date) VALUES (?, ?, ?)",
		rec.GroupID, rec.UserID, rec.Date,
	); err != nil {
		return false, fmt.Errorf("failed to insert availability: %w", err)
	}
	return true, nil
}

// ListAvailability retrieves every availability record for a group.
func (s *SQLiteStore) ListAvailability(ctx context.Context, groupID string) ([]models.AvailabilityRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_id, user_id, date FROM availability WHERE group_id = ? ORDER BY date, user_id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()

	var records []models.AvailabilityRecord
	for rows.Next() {
		var rec models.AvailabilityRecord
		if err := rows.Scan(&rec.GroupID, &rec.UserID, &rec.Date); err != nil {
			return nil, fmt.Errorf("failed to scan availability: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate availability: %w", err)
	}
	return records, nil
}
