// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/ankadev/tripnest/internal/models"
)

// Sentinel errors returned by Store implementations for the outcomes the
// service layer distinguishes. Anything else is an opaque store failure and
// is propagated unchanged.
var (
	// ErrNotFound indicates the targeted row does not exist (or no longer
	// existed by the time the write landed).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an insert violated a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

// Store defines the interface for trip checklist storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateTrip persists a new trip. Trip lifecycle belongs to the
	// surrounding application; the checklist engine only reads trips.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// TripExists reports whether the trip exists. Used once at the top of
	// checklist provisioning.
	TripExists(ctx context.Context, tripID string) (bool, error)

	// CreateChecklist persists a new checklist, populating ID and
	// timestamps when unset. Returns ErrConflict when the one-per-type
	// uniqueness constraint is violated.
	CreateChecklist(ctx context.Context, checklist *models.Checklist) error

	// GetChecklist retrieves a checklist row by ID, without items.
	// Returns ErrNotFound if it does not exist.
	GetChecklist(ctx context.Context, checklistID string) (*models.Checklist, error)

	// FindChecklist retrieves the checklist matching (tripID, typ) and,
	// for personal checklists, ownerID. Returns ErrNotFound when absent.
	FindChecklist(ctx context.Context, tripID string, typ models.ChecklistType, ownerID string) (*models.Checklist, error)

	// ListChecklistsByTrip retrieves all checklists for a trip with their
	// items eagerly loaded, ordered by type and each item's position.
	ListChecklistsByTrip(ctx context.Context, tripID string) ([]models.Checklist, error)

	// RenameChecklist updates the display name. Returns ErrNotFound if the
	// checklist does not exist.
	RenameChecklist(ctx context.Context, checklistID, name string) error

	// DeleteChecklist removes a checklist and, by cascade, its items.
	// Deleting a missing checklist is not an error.
	DeleteChecklist(ctx context.Context, checklistID string) error

	// CreateItem persists a new item at the end of its checklist,
	// populating ID, position, and timestamps.
	CreateItem(ctx context.Context, item *models.Item) error

	// GetItem retrieves an item by ID. Returns ErrNotFound when absent.
	GetItem(ctx context.Context, itemID string) (*models.Item, error)

	// ListItems retrieves a checklist's items sorted by position ascending.
	ListItems(ctx context.Context, checklistID string) ([]models.Item, error)

	// UpdateItem writes content and checked state for an existing item.
	// Returns ErrNotFound if the item does not exist.
	UpdateItem(ctx context.Context, item *models.Item) error

	// DeleteItem removes an item. Deleting a missing item is not an error.
	DeleteItem(ctx context.Context, itemID string) error

	// UpdateItemOrders rewrites each listed item's position to its 0-based
	// index in orderedIDs. All writes happen in one transaction; if any
	// listed item no longer belongs to the checklist the whole operation
	// rolls back with ErrNotFound.
	UpdateItemOrders(ctx context.Context, checklistID string, orderedIDs []string) error

	// Close releases any resources held by the store.
	Close() error
}
