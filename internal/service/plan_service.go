package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ksuzuki/yaritai/internal/calendar"
	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/storage"
)

// ErrDateRequired is returned when a plan is created without a start date.
var ErrDateRequired = errors.New("start date is required")

// PlanService handles the plan lifecycle: creation from converted
// proposals or by hand, listing, and the planning → confirmed transition.
type PlanService struct {
	store storage.Store
}

// NewPlanService creates a new PlanService with the given storage backend.
func NewPlanService(store storage.Store) *PlanService {
	return &PlanService{store: store}
}

// Create validates and persists a plan. Plans always start in planning.
func (s *PlanService) Create(ctx context.Context, plan *models.PlanItem) error {
	slog.Info("Create plan request received", "group_id", plan.GroupID, "title", plan.Title)

	if plan.Title == "" {
		return ErrTitleRequired
	}
	if !models.ValidGroupID(plan.GroupID) {
		return fmt.Errorf("%w: %s", ErrInvalidGroup, plan.GroupID)
	}
	if plan.DateStart == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse(calendar.DateLayout, plan.DateStart); err != nil {
		return fmt.Errorf("invalid start date %q: %w", plan.DateStart, err)
	}
	if plan.DateEnd != "" {
		if _, err := time.Parse(calendar.DateLayout, plan.DateEnd); err != nil {
			return fmt.Errorf("invalid end date %q: %w", plan.DateEnd, err)
		}
	}
	plan.Status = models.PlanPlanning

	if err := s.store.CreatePlan(ctx, plan); err != nil {
		slog.Error("Create plan failed", "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}

	slog.Info("Plan created", "plan_id", plan.ID)
	return nil
}

// Get returns one plan by ID.
func (s *PlanService) Get(ctx context.Context, planID string) (*models.PlanItem, error) {
	return s.store.GetPlan(ctx, planID)
}

// List returns a group's plans, oldest first.
func (s *PlanService) List(ctx context.Context, groupID string) ([]models.PlanItem, error) {
	if !models.ValidGroupID(groupID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGroup, groupID)
	}

	plans, err := s.store.ListPlans(ctx, groupID)
	if err != nil {
		slog.Error("List plans failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// Confirm moves a plan from planning to confirmed. The transition is
// one-directional and fails with storage.ErrInvalidTransition for a plan
// in any other state.
func (s *PlanService) Confirm(ctx context.Context, planID string) (*models.PlanItem, error) {
	slog.Info("Confirm plan request received", "plan_id", planID)

	if err := s.store.ConfirmPlan(ctx, planID); err != nil {
		slog.Error("Confirm plan failed", "plan_id", planID, "error", err)
		return nil, err
	}

	slog.Info("Plan confirmed", "plan_id", planID)
	return s.store.GetPlan(ctx, planID)
}
