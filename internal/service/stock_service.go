// Package service implements the application logic between the HTTP
// handlers and the store: validation, feed assembly, calendar aggregation
// and the plan lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ksuzuki/yaritai/internal/feed"
	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/storage"
)

var (
	// ErrTitleRequired is returned when a stock is created without a title.
	ErrTitleRequired = errors.New("title is required")

	// ErrInvalidCategory is returned for an unknown stock category.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrInvalidGroup is returned when a group ID is not one of the known
	// groups.
	ErrInvalidGroup = errors.New("invalid group")

	// ErrInvalidStatus is returned when an update names a status an edit
	// may not set. Archiving goes through Archive, never a field write.
	ErrInvalidStatus = errors.New("invalid status")
)

// StockService handles stocking, sharing and ranking of saved ideas.
type StockService struct {
	store storage.Store
}

// NewStockService creates a new StockService with the given storage backend.
func NewStockService(store storage.Store) *StockService {
	return &StockService{store: store}
}

// Create validates and persists a new stock. Category defaults to outing
// when empty; the stock starts personal and unread.
func (s *StockService) Create(ctx context.Context, stock *models.StockItem) error {
	slog.Info("Create stock request received", "user_id", stock.UserID, "title", stock.Title)

	if stock.Title == "" {
		return ErrTitleRequired
	}
	if stock.Category == "" {
		stock.Category = models.CategoryOuting
	}
	if !models.ValidCategory(stock.Category) {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, stock.Category)
	}

	if err := s.store.CreateStock(ctx, stock); err != nil {
		slog.Error("Create stock failed", "error", err)
		return fmt.Errorf("failed to create stock: %w", err)
	}

	slog.Info("Stock created", "stock_id", stock.ID)
	return nil
}

// Get returns one stock by ID.
func (s *StockService) Get(ctx context.Context, stockID string) (*models.StockItem, error) {
	return s.store.GetStock(ctx, stockID)
}

// List returns the active stocks of a scope, filtered by category and
// ordered by the given mode. groupID "" is the personal scope.
func (s *StockService) List(ctx context.Context, groupID, category string, mode feed.SortMode) ([]models.StockItem, error) {
	if groupID != "" && !models.ValidGroupID(groupID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGroup, groupID)
	}

	stocks, err := s.store.ListStocks(ctx, groupID)
	if err != nil {
		slog.Error("List stocks failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	return feed.Rank(feed.FilterCategory(stocks, category), mode), nil
}

// Home builds the home-screen feed for a scope: up to three stocks with
// unread ones first, plus the unread badge count.
func (s *StockService) Home(ctx context.Context, groupID string) (*feed.Home, error) {
	if groupID != "" && !models.ValidGroupID(groupID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGroup, groupID)
	}

	stocks, err := s.store.ListStocks(ctx, groupID)
	if err != nil {
		slog.Error("Home feed failed", "group_id", groupID, "error", err)
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	home := feed.BuildHome(stocks)
	return &home, nil
}

// Update applies a partial edit to a stock. Status may only move between
// active and done; archived is a dead end reachable through Archive alone,
// so an archived stock cannot be revived by an edit.
func (s *StockService) Update(ctx context.Context, stockID string, upd storage.StockUpdate) (*models.StockItem, error) {
	if upd.Category != nil && !models.ValidCategory(*upd.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, *upd.Category)
	}
	if upd.Title != nil && *upd.Title == "" {
		return nil, ErrTitleRequired
	}
	if upd.Status != nil {
		switch *upd.Status {
		case models.StockActive, models.StockDone:
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *upd.Status)
		}
		current, err := s.store.GetStock(ctx, stockID)
		if err != nil {
			return nil, err
		}
		if current.Status == models.StockArchived {
			return nil, fmt.Errorf("%w: archived stocks cannot change status", storage.ErrInvalidTransition)
		}
	}

	if err := s.store.UpdateStock(ctx, stockID, upd); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	return s.store.GetStock(ctx, stockID)
}

// Share moves a personal stock into a group. The move is one-way: a stock
// that already belongs to a group stays where it is and the call fails
// with storage.ErrAlreadyShared.
func (s *StockService) Share(ctx context.Context, stockID, groupID string) error {
	slog.Info("Share stock request received", "stock_id", stockID, "group_id", groupID)

	if !models.ValidGroupID(groupID) {
		return fmt.Errorf("%w: %s", ErrInvalidGroup, groupID)
	}

	if err := s.store.ShareStock(ctx, stockID, groupID); err != nil {
		slog.Error("Share stock failed", "stock_id", stockID, "error", err)
		return err
	}

	slog.Info("Stock shared", "stock_id", stockID, "group_id", groupID)
	return nil
}

// Archive soft-deletes a stock. The row survives for any plans that
// reference it.
func (s *StockService) Archive(ctx context.Context, stockID string) error {
	slog.Info("Archive stock request received", "stock_id", stockID)

	if err := s.store.ArchiveStock(ctx, stockID); err != nil {
		slog.Error("Archive stock failed", "stock_id", stockID, "error", err)
		return err
	}
	return nil
}

// React flips userID's want-to-go reaction on a stock and returns the
// updated stock.
func (s *StockService) React(ctx context.Context, stockID, userID string) (*models.StockItem, error) {
	wants, err := s.store.ToggleWantToGo(ctx, stockID, userID)
	if err != nil {
		slog.Error("Toggle reaction failed", "stock_id", stockID, "user_id", userID, "error", err)
		return nil, err
	}
	slog.Info("Reaction toggled", "stock_id", stockID, "user_id", userID, "wants_to_go", wants)

	return s.store.GetStock(ctx, stockID)
}

// MarkRead clears a stock's unread state for the home feed badge.
func (s *StockService) MarkRead(ctx context.Context, stockID string) error {
	return s.store.MarkStockRead(ctx, stockID)
}
