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

// CreateStock persists a new stock, generating the ID and defaulting the
// status and creation timestamp when unset.
func (s *SQLiteStore) CreateStock(ctx context.Context, stock *models.StockItem) error {
	if stock.ID == "" {
		stock.ID = uuid.New().String()
	}
	if stock.Status == "" {
		stock.Status = models.StockActive
	}
	if stock.CreatedAt == 0 {
		stock.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stocks (id, user_id, group_id, title, url, image_url, category, location, note, status, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stock.ID, stock.UserID, nullable(stock.GroupID), stock.Title, stock.URL, stock.ImageURL,
		stock.Category, stock.Location, stock.Note, stock.Status, stock.IsRead, stock.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock: %w", err)
	}
	return nil
}

// GetStock retrieves a stock by ID, including its want-to-go user set.
func (s *SQLiteStore) GetStock(ctx context.Context, stockID string) (*models.StockItem, error) {
	stock, err := s.scanStock(s.db.QueryRowContext(ctx,
		`SELECT id, user_id, group_id, title, url, image_url, category, location, note, status, is_read, created_at
		 FROM stocks WHERE id = ?`, stockID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("stock %s: %w", stockID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	if err := s.loadReactions(ctx, stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// ListStocks retrieves active stocks in a scope, newest first. An empty
// groupID selects the personal scope (stocks with no group).
func (s *SQLiteStore) ListStocks(ctx context.Context, groupID string) ([]models.StockItem, error) {
	query := `SELECT id, user_id, group_id, title, url, image_url, category, location, note, status, is_read, created_at
		 FROM stocks WHERE status = ? AND `
	args := []any{models.StockActive}
	if groupID == "" {
		query += "group_id IS NULL"
	} else {
		query += "group_id = ?"
		args = append(args, groupID)
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	defer rows.Close()

	var stocks []models.StockItem
	for rows.Next() {
		stock, err := s.scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, *stock)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stocks: %w", err)
	}

	for i := range stocks {
		if err := s.loadReactions(ctx, &stocks[i]); err != nil {
			return nil, err
		}
	}
	return stocks, nil
}

// UpdateStock applies the non-nil fields of upd to a stock.
func (s *SQLiteStore) UpdateStock(ctx context.Context, stockID string, upd storage.StockUpdate) error {
	sets := ""
	var args []any
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		if sets != "" {
			sets += ", "
		}
		sets += column + " = ?"
		args = append(args, *value)
	}
	add("title", upd.Title)
	add("url", upd.URL)
	add("image_url", upd.ImageURL)
	add("category", upd.Category)
	add("location", upd.Location)
	add("note", upd.Note)
	add("status", upd.Status)
	if sets == "" {
		return nil
	}

	args = append(args, stockID)
	res, err := s.db.ExecContext(ctx, "UPDATE stocks SET "+sets+" WHERE id = ?", args...)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return requireRow(res, stockID)
}

// ArchiveStock soft-deletes a stock by moving it to the archived status.
// The row is never physically removed.
func (s *SQLiteStore) ArchiveStock(ctx context.Context, stockID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE stocks SET status = ? WHERE id = ?",
		models.StockArchived, stockID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive stock: %w", err)
	}
	return requireRow(res, stockID)
}

// ShareStock moves a personal stock into a group. The transition is
// one-way: a stock that already has a group cannot be re-shared.
func (s *SQLiteStore) ShareStock(ctx context.Context, stockID, groupID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE stocks SET group_id = ? WHERE id = ? AND group_id IS NULL",
		groupID, stockID,
	)
	if err != nil {
		return fmt.Errorf("failed to share stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check share result: %w", err)
	}
	if affected == 0 {
		// Either missing or already shared; look once more to say which.
		stock, err := s.GetStock(ctx, stockID)
		if err != nil {
			return err
		}
		if stock.GroupID != "" {
			return fmt.Errorf("stock %s: %w", stockID, storage.ErrAlreadyShared)
		}
		return fmt.Errorf("stock %s: %w", stockID, storage.ErrNotFound)
	}
	return nil
}

// MarkStockRead sets the viewer-read flag. Marking an already read stock
// again is harmless.
func (s *SQLiteStore) MarkStockRead(ctx context.Context, stockID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE stocks SET is_read = 1 WHERE id = ?", stockID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark stock read: %w", err)
	}
	return requireRow(res, stockID)
}

// ToggleWantToGo flips userID's reaction row for a stock and reports
// whether the user now wants to go. The count is never stored; it is
// always derived from these rows.
func (s *SQLiteStore) ToggleWantToGo(ctx context.Context, stockID, userID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM stocks WHERE id = ?", stockID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check stock: %w", err)
	}
	if exists == 0 {
		return false, fmt.Errorf("stock %s: %w", stockID, storage.ErrNotFound)
	}

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM stock_reactions WHERE stock_id = ? AND user_id = ?",
		stockID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to remove reaction: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check reaction result: %w", err)
	}
	if removed > 0 {
		return false, nil
	}

	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO stock_reactions (stock_id, user_id, created_at) VALUES (?, ?, ?)",
		stockID, userID, time.Now().Unix(),
	); err != nil {
		return false, fmt.Errorf("failed to insert reaction: %w", err)
	}
	return true, nil
}

func (s *SQLiteStore) loadReactions(ctx context.Context, stock *models.StockItem) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM stock_reactions WHERE stock_id = ? ORDER BY created_at, user_id",
		stock.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get reactions: %w", err)
	}
	defer rows.Close()

	stock.WantToGoUsers = nil
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("failed to scan reaction: %w", err)
		}
		stock.WantToGoUsers = append(stock.WantToGoUsers, userID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate reactions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanStock(row rowScanner) (*models.StockItem, error) {
	stock := &models.StockItem{}
	var groupID sql.NullString
	err := row.Scan(&stock.ID, &stock.UserID, &groupID, &stock.Title, &stock.URL, &stock.ImageURL,
		&stock.Category, &stock.Location, &stock.Note, &stock.Status, &stock.IsRead, &stock.CreatedAt)
	if err != nil {
		return nil, err
	}
	stock.GroupID = groupID.String
	return stock, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireRow(res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("stock %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
