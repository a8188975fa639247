package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ankadev/tripnest/internal/models"
	"github.com/ankadev/tripnest/internal/storage"
)

// CreateChecklist inserts a new checklist row, generating the ID and
// timestamps if not set. A violation of the one-per-type uniqueness indexes
// surfaces as storage.ErrConflict so the caller can decide whether to
// propagate it (explicit creation) or swallow it (provisioning race).
func (s *SQLiteStore) CreateChecklist(ctx context.Context, checklist *models.Checklist) error {
	fillID(&checklist.ID)
	now := nowUnix()
	if checklist.CreatedAt == 0 {
		checklist.CreatedAt = now
	}
	if checklist.UpdatedAt == 0 {
		checklist.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklists (id, trip_id, owner_id, name, type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		checklist.ID,
		checklist.TripID,
		nullableOwner(checklist.OwnerID),
		checklist.Name,
		string(checklist.Type),
		checklist.CreatedAt,
		checklist.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("failed to insert checklist: %w", err)
	}
	return nil
}

// GetChecklist retrieves a single checklist row without its items.
func (s *SQLiteStore) GetChecklist(ctx context.Context, checklistID string) (*models.Checklist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, trip_id, owner_id, name, type, created_at, updated_at
		FROM checklists
		WHERE id = ?`,
		checklistID,
	)
	return scanChecklist(row)
}

// FindChecklist retrieves the checklist matching (tripID, typ). For personal
// checklists the owner participates in the match; group checklists are
// trip-wide and ignore ownerID.
func (s *SQLiteStore) FindChecklist(ctx context.Context, tripID string, typ models.ChecklistType, ownerID string) (*models.Checklist, error) {
	query := `
		SELECT id, trip_id, owner_id, name, type, created_at, updated_at
		FROM checklists
		WHERE trip_id = ? AND type = ?`
	args := []any{tripID, string(typ)}
	if typ == models.ChecklistTypePersonal {
		query += " AND owner_id = ?"
		args = append(args, ownerID)
	}

	row := s.db.QueryRowContext(ctx, query, args...)
	return scanChecklist(row)
}

// ListChecklistsByTrip retrieves all of a trip's checklists with items
// eagerly loaded. Checklists are ordered by type then creation time; items
// within each checklist by their position.
func (s *SQLiteStore) ListChecklistsByTrip(ctx context.Context, tripID string) ([]models.Checklist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, trip_id, owner_id, name, type, created_at, updated_at
		FROM checklists
		WHERE trip_id = ?
		ORDER BY type, created_at`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	defer rows.Close()

	var checklists []models.Checklist
	index := make(map[string]int)
	for rows.Next() {
		var c models.Checklist
		var owner sql.NullString
		if err := rows.Scan(&c.ID, &c.TripID, &owner, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		c.OwnerID = owner.String
		c.Items = []models.Item{}
		index[c.ID] = len(checklists)
		checklists = append(checklists, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checklists: %w", err)
	}
	if len(checklists) == 0 {
		return checklists, nil
	}

	// One items query for the whole trip instead of a query per checklist.
	itemRows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.checklist_id, i.content, i.is_checked, i.item_order, i.created_at, i.updated_at
		FROM checklist_items i
		JOIN checklists c ON c.id = i.checklist_id
		WHERE c.trip_id = ?
		ORDER BY i.item_order, i.created_at`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.ID, &item.ChecklistID, &item.Content, &item.IsChecked, &item.ItemOrder, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checklist item: %w", err)
		}
		if i, ok := index[item.ChecklistID]; ok {
			checklists[i].Items = append(checklists[i].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate checklist items: %w", err)
	}

	return checklists, nil
}

// RenameChecklist updates the display name of an existing checklist.
func (s *SQLiteStore) RenameChecklist(ctx context.Context, checklistID, name string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE checklists SET name = ?, updated_at = ? WHERE id = ?",
		name, nowUnix(), checklistID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename checklist: %w", err)
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

// DeleteChecklist removes a checklist; the items cascade at the schema level.
func (s *SQLiteStore) DeleteChecklist(ctx context.Context, checklistID string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM checklists WHERE id = ?", checklistID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete checklist: %w", err)
	}
	return nil
}

// scanChecklist maps a single checklist row, translating a NULL owner to the
// empty string and sql.ErrNoRows to storage.ErrNotFound.
func scanChecklist(row *sql.Row) (*models.Checklist, error) {
	c := &models.Checklist{}
	var owner sql.NullString
	err := row.Scan(&c.ID, &c.TripID, &owner, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan checklist: %w", err)
	}
	c.OwnerID = owner.String
	return c, nil
}

// nullableOwner maps the empty owner of a group checklist to NULL so the
// partial unique index on personal checklists only ever sees real owner ids.
func nullableOwner(ownerID string) sql.NullString {
	if ownerID == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: ownerID, Valid: true}
}
