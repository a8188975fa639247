package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ankadev/tripnest/internal/models"
	"github.com/ankadev/tripnest/internal/storage"
)

// CreateItem inserts a new item at the end of its checklist. The position is
// computed as the current maximum plus one, with an empty checklist treated
// as maximum -1 so the first item lands at 0.
//
// The read and the insert are deliberately not wrapped in a transaction: two
// concurrent creators may compute the same position and produce a transient
// tie. Position is a sort key, not an identity, and the next reorder rewrites
// every position anyway.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	fillID(&item.ID)
	now := nowUnix()
	if item.CreatedAt == 0 {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	var maxOrder int
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(item_order), -1) FROM checklist_items WHERE checklist_id = ?",
		item.ChecklistID,
	).Scan(&maxOrder)
	if err != nil {
		return fmt.Errorf("failed to get max item order: %w", err)
	}
	item.ItemOrder = maxOrder + 1

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO checklist_items (id, checklist_id, content, is_checked, item_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.ChecklistID, item.Content, item.IsChecked, item.ItemOrder, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetItem retrieves a single item by ID.
func (s *SQLiteStore) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	item := &models.Item{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, checklist_id, content, is_checked, item_order, created_at, updated_at
		FROM checklist_items
		WHERE id = ?`,
		itemID,
	).Scan(&item.ID, &item.ChecklistID, &item.Content, &item.IsChecked, &item.ItemOrder, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems retrieves a checklist's items sorted by position. Creation time
// breaks ties between items that raced to the same position.
func (s *SQLiteStore) ListItems(ctx context.Context, checklistID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, checklist_id, content, is_checked, item_order, created_at, updated_at
		FROM checklist_items
		WHERE checklist_id = ?
		ORDER BY item_order, created_at`,
		checklistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.ChecklistID, &item.Content, &item.IsChecked, &item.ItemOrder, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// UpdateItem writes content and checked state for an existing item.
func (s *SQLiteStore) UpdateItem(ctx context.Context, item *models.Item) error {
	item.UpdatedAt = nowUnix()
	res, err := s.db.ExecContext(ctx,
		"UPDATE checklist_items SET content = ?, is_checked = ?, updated_at = ? WHERE id = ?",
		item.Content, item.IsChecked, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteItem removes a single item.
func (s *SQLiteStore) DeleteItem(ctx context.Context, itemID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM checklist_items WHERE id = ?", itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// UpdateItemOrders rewrites every listed item's position to its index in
// orderedIDs, inside one transaction. The checklist id participates in each
// UPDATE so an id that was moved or deleted after validation rolls the whole
// batch back with storage.ErrNotFound; re-issuing the reorder against the
// fresh item set is always safe.
func (s *SQLiteStore) UpdateItemOrders(ctx context.Context, checklistID string, orderedIDs []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := nowUnix()
	for position, itemID := range orderedIDs {
		res, err := tx.ExecContext(ctx,
			"UPDATE checklist_items SET item_order = ?, updated_at = ? WHERE id = ? AND checklist_id = ?",
			position, now, itemID, checklistID,
		)
		if err != nil {
			return fmt.Errorf("failed to update item order: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if affected == 0 {
			return storage.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
