package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ankadev/tripnest/internal/models"
	"github.com/ankadev/tripnest/internal/storage"
)

// ItemService manages the entries of a single checklist, including the bulk
// reorder operation.
type ItemService struct {
	store storage.Store
}

// NewItemService creates a new ItemService with the given storage backend.
func NewItemService(store storage.Store) *ItemService {
	return &ItemService{store: store}
}

// CreateItem appends a new item to the checklist. Content is trimmed before
// persistence; blank content is rejected without touching the store.
func (s *ItemService) CreateItem(ctx context.Context, checklistID, content string) (*models.Item, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidArgf("item content must not be blank")
	}

	if _, err := s.store.GetChecklist(ctx, checklistID); err != nil {
		return nil, storeErr(err)
	}

	item := &models.Item{
		ChecklistID: checklistID,
		Content:     content,
	}
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, storeErr(err)
	}
	return item, nil
}

// UpdateItem patches an item's content and/or checked state. At least one
// field must be supplied; a nil field leaves the current value untouched.
func (s *ItemService) UpdateItem(ctx context.Context, itemID string, content *string, isChecked *bool) (*models.Item, error) {
	if content == nil && isChecked == nil {
		return nil, invalidArgf("update requires content or isChecked")
	}

	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, storeErr(err)
	}

	if content != nil {
		trimmed := strings.TrimSpace(*content)
		if trimmed == "" {
			return nil, invalidArgf("item content must not be blank")
		}
		item.Content = trimmed
	}
	if isChecked != nil {
		item.IsChecked = *isChecked
	}

	if err := s.store.UpdateItem(ctx, item); err != nil {
		return nil, storeErr(err)
	}
	return item, nil
}

// DeleteItem removes a single item. Deleting an item that is already gone is
// a no-op, not an error.
func (s *ItemService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return storeErr(err)
	}
	return nil
}

// ReorderItems rewrites the checklist's item positions to match orderedIDs.
// The submitted sequence must be an exact permutation of the current item
// set; any mismatch fails before a single position is written. A reorder
// racing an insert or delete on the same checklist can fail validation
// spuriously, which is safe: the caller re-reads and retries against the
// fresh set.
func (s *ItemService) ReorderItems(ctx context.Context, checklistID string, orderedIDs []string) ([]models.Item, error) {
	if len(orderedIDs) == 0 {
		return nil, invalidArgf("ordered item ids must not be empty")
	}

	current, err := s.store.ListItems(ctx, checklistID)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(current) == 0 {
		return nil, invalidArgf("checklist %q has no items to reorder", checklistID)
	}
	if len(orderedIDs) != len(current) {
		return nil, invalidArgf("expected %d item ids, got %d", len(current), len(orderedIDs))
	}

	known := make(map[string]bool, len(current))
	for _, item := range current {
		known[item.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] {
			return nil, invalidArgf("item %q does not belong to checklist %q", id, checklistID)
		}
		if seen[id] {
			return nil, invalidArgf("item %q appears more than once", id)
		}
		seen[id] = true
	}

	if err := s.store.UpdateItemOrders(ctx, checklistID, orderedIDs); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("checklist reordered",
		"checklist_id", checklistID, "items_count", len(orderedIDs))

	items, err := s.store.ListItems(ctx, checklistID)
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}
