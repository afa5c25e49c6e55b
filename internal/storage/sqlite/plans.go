package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/storage"
)

// CreatePlan persists a plan with its members and itinerary, generating
// the ID and defaulting the status and creation timestamp when unset.
func (s *SQLiteStore) CreatePlan(ctx context.Context, plan *models.PlanItem) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.Status == "" {
		plan.Status = models.PlanPlanning
	}
	if plan.CreatedAt == 0 {
		plan.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO plans (id, group_id, title, date_start, date_end, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		plan.ID, plan.GroupID, plan.Title, plan.DateStart, plan.DateEnd, plan.Status, plan.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert plan: %w", err)
	}

	for i, userID := range plan.Members {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO plan_members (plan_id, user_id, position) VALUES (?, ?, ?)",
			plan.ID, userID, i,
		); err != nil {
			return fmt.Errorf("failed to insert plan member: %w", err)
		}
	}

	for i, step := range plan.Itinerary {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO plan_itinerary (plan_id, position, time, title, description) VALUES (?, ?, ?, ?, ?)",
			plan.ID, i, step.Time, step.Title, step.Description,
		); err != nil {
			return fmt.Errorf("failed to insert itinerary step: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID with members and itinerary.
func (s *SQLiteStore) GetPlan(ctx context.Context, planID string) (*models.PlanItem, error) {
	plan := &models.PlanItem{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, title, date_start, date_end, status, created_at FROM plans WHERE id = ?",
		planID,
	).Scan(&plan.ID, &plan.GroupID, &plan.Title, &plan.DateStart, &plan.DateEnd, &plan.Status, &plan.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan %s: %w", planID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	if err := s.loadPlanDetails(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListPlans retrieves a group's plans, oldest first.
func (s *SQLiteStore) ListPlans(ctx context.Context, groupID string) ([]models.PlanItem, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, title, date_start, date_end, status, created_at FROM plans WHERE group_id = ? ORDER BY created_at, id",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var plans []models.PlanItem
	for rows.Next() {
		var plan models.PlanItem
		if err := rows.Scan(&plan.ID, &plan.GroupID, &plan.Title, &plan.DateStart, &plan.DateEnd, &plan.Status, &plan.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans: %w", err)
	}

	for i := range plans {
		if err := s.loadPlanDetails(ctx, &plans[i]); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// ConfirmPlan moves a plan from planning to confirmed. The transition is
// one-directional: confirming anything not in planning fails.
func (s *SQLiteStore) ConfirmPlan(ctx context.Context, planID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE plans SET status = ? WHERE id = ? AND status = ?",
		models.PlanConfirmed, planID, models.PlanPlanning,
	)
	if err != nil {
		return fmt.Errorf("failed to confirm plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check confirm result: %w", err)
	}
	if affected == 0 {
		if _, err := s.GetPlan(ctx, planID); err != nil {
			return err
		}
		return fmt.Errorf("plan %s is not in planning: %w", planID, storage.ErrInvalidTransition)
	}
	return nil
}

func (s *SQLiteStore) loadPlanDetails(ctx context.Context, plan *models.PlanItem) error {
	memberRows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM plan_members WHERE plan_id = ? ORDER BY position",
		plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get plan members: %w", err)
	}
	defer memberRows.Close()

	plan.Members = nil
	for memberRows.Next() {
		var userID string
		if err := memberRows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan plan member: %w", err)
		}
		plan.Members = append(plan.Members, userID)
	}
	if err := memberRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate plan members: %w", err)
	}

	stepRows, err := s.db.QueryContext(ctx,
		"SELECT time, title, description FROM plan_itinerary WHERE plan_id = ? ORDER BY position",
		plan.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get itinerary: %w", err)
	}
	defer stepRows.Close()

	plan.Itinerary = nil
	for stepRows.Next() {
		var step models.ItineraryStep
		if err := stepRows.Scan(&step.Time, &step.Title, &step.Description); err != nil {
			return fmt.Errorf("failed to scan itinerary step: %w", err)
		}
		plan.Itinerary = append(plan.Itinerary, step)
	}
	if err := stepRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate itinerary: %w", err)
	}
	return nil
}
