// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ksuzuki/yaritai/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	// It is distinct from an empty list result.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyShared is returned when a stock that already belongs to
	// a group is shared again. Sharing is a one-way, one-time move.
	ErrAlreadyShared = errors.New("stock already shared to a group")

	// ErrInvalidTransition is returned for disallowed status changes,
	// e.g. confirming a plan that is not in planning.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// StockUpdate carries the updatable stock fields. Nil pointers leave the
// stored value unchanged; a stock row's fields are otherwise replaced
// wholesale.
type StockUpdate struct {
	Title    *string
	URL      *string
	ImageURL *string
	Category *string
	Location *string
	Note     *string
	Status   *string
}

// Store defines the persistence operations the services need. The
// abstraction allows swapping backends without touching the service
// layer, and lets tests construct a store seeded with fixture data.
type Store interface {
	// Groups. The group set is a fixed enumeration seeded at startup.
	SeedGroups(ctx context.Context, groups []models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)

	// Stocks. CreateStock populates ID, Status and CreatedAt when
	// unset. ListStocks returns active stocks only; groupID "" means
	// the personal scope (no group). ArchiveStock is the soft delete.
	CreateStock(ctx context.Context, stock *models.StockItem) error
	GetStock(ctx context.Context, stockID string) (*models.StockItem, error)
	ListStocks(ctx context.Context, groupID string) ([]models.StockItem, error)
	UpdateStock(ctx context.Context, stockID string, upd StockUpdate) error
	ArchiveStock(ctx context.Context, stockID string) error
	ShareStock(ctx context.Context, stockID, groupID string) error
	MarkStockRead(ctx context.Context, stockID string) error

	// ToggleWantToGo flips userID's reaction on a stock and reports
	// whether the user now wants to go.
	ToggleWantToGo(ctx context.Context, stockID, userID string) (bool, error)

	// Availability. ToggleAvailability inserts the record if absent and
	// deletes it if present, reporting whether the user is now marked
	// available.
	ToggleAvailability(ctx context.Context, rec models.AvailabilityRecord) (bool, error)
	ListAvailability(ctx context.Context, groupID string) ([]models.AvailabilityRecord, error)

	// Plans. ConfirmPlan moves planning → confirmed; the transition is
	// one-directional.
	CreatePlan(ctx context.Context, plan *models.PlanItem) error
	GetPlan(ctx context.Context, planID string) (*models.PlanItem, error)
	ListPlans(ctx context.Context, groupID string) ([]models.PlanItem, error)
	ConfirmPlan(ctx context.Context, planID string) error

	// Close releases any resources held by the store.
	Close() error
}
