package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ankadev/tripnest/internal/models"
	"github.com/ankadev/tripnest/internal/storage"
)

// ChecklistService provisions and manages a trip's checklists.
type ChecklistService struct {
	store storage.Store
}

// NewChecklistService creates a new ChecklistService with the given storage backend.
func NewChecklistService(store storage.Store) *ChecklistService {
	return &ChecklistService{store: store}
}

// EnsureDefaults lazily creates the default personal checklist for
// (tripID, userID) and the default group checklist for tripID. It is
// idempotent and safe to call on every list request: a concurrent caller
// winning the insert race surfaces as a uniqueness conflict, which is
// swallowed because the row the caller wanted now exists.
func (s *ChecklistService) EnsureDefaults(ctx context.Context, tripID, userID string) error {
	exists, err := s.store.TripExists(ctx, tripID)
	if err != nil {
		return storeErr(err)
	}
	if !exists {
		return notFoundf("trip %q not found", tripID)
	}

	if err := s.ensureChecklist(ctx, tripID, models.ChecklistTypePersonal, userID); err != nil {
		return err
	}
	return s.ensureChecklist(ctx, tripID, models.ChecklistTypeGroup, "")
}

func (s *ChecklistService) ensureChecklist(ctx context.Context, tripID string, typ models.ChecklistType, ownerID string) error {
	_, err := s.store.FindChecklist(ctx, tripID, typ, ownerID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return storeErr(err)
	}

	checklist := &models.Checklist{
		TripID:  tripID,
		OwnerID: ownerID,
		Name:    typ.DefaultName(),
		Type:    typ,
	}
	err = s.store.CreateChecklist(ctx, checklist)
	if errors.Is(err, storage.ErrConflict) {
		// Another request created it between our read and our insert.
		slog.Debug("default checklist already provisioned concurrently",
			"trip_id", tripID, "type", typ)
		return nil
	}
	if err != nil {
		return storeErr(err)
	}

	slog.Info("provisioned default checklist",
		"trip_id", tripID, "type", typ, "checklist_id", checklist.ID)
	return nil
}

// ListChecklists returns the trip's checklists visible to userID, with items
// in display order. Defaults are provisioned first, so a trip's first visitor
// always sees a personal and a group checklist.
func (s *ChecklistService) ListChecklists(ctx context.Context, tripID, userID string) ([]models.Checklist, error) {
	if err := s.EnsureDefaults(ctx, tripID, userID); err != nil {
		return nil, err
	}

	checklists, err := s.store.ListChecklistsByTrip(ctx, tripID)
	if err != nil {
		return nil, storeErr(err)
	}
	return visibleTo(checklists, userID), nil
}

// visibleTo drops personal checklists owned by anyone but userID. The store
// may enforce its own row policy; this filter is the last line of defense and
// holds even if the store returns rows crossing the ownership boundary.
func visibleTo(checklists []models.Checklist, userID string) []models.Checklist {
	visible := make([]models.Checklist, 0, len(checklists))
	for _, c := range checklists {
		if c.Type == models.ChecklistTypePersonal && c.OwnerID != userID {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}

// CreateChecklist explicitly creates a checklist beyond the provisioned
// defaults. The one-per-type invariant is not pre-checked here; a duplicate
// surfaces as a conflict from the store's uniqueness constraint and is
// propagated so the caller can tell the user the checklist already exists.
func (s *ChecklistService) CreateChecklist(ctx context.Context, tripID, userID, name string, typ models.ChecklistType) (*models.Checklist, error) {
	if !typ.Valid() {
		return nil, invalidArgf("unknown checklist type %q", typ)
	}

	exists, err := s.store.TripExists(ctx, tripID)
	if err != nil {
		return nil, storeErr(err)
	}
	if !exists {
		return nil, notFoundf("trip %q not found", tripID)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = typ.DefaultName()
	}

	checklist := &models.Checklist{
		TripID: tripID,
		Name:   name,
		Type:   typ,
	}
	if typ == models.ChecklistTypePersonal {
		checklist.OwnerID = userID
	}

	if err := s.store.CreateChecklist(ctx, checklist); err != nil {
		return nil, storeErr(err)
	}

	slog.Info("checklist created",
		"trip_id", tripID, "checklist_id", checklist.ID, "type", typ)
	return checklist, nil
}

// RenameChecklist updates a checklist's display name.
func (s *ChecklistService) RenameChecklist(ctx context.Context, checklistID, name string) (*models.Checklist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidArgf("checklist name must not be blank")
	}

	if err := s.store.RenameChecklist(ctx, checklistID, name); err != nil {
		return nil, storeErr(err)
	}

	checklist, err := s.store.GetChecklist(ctx, checklistID)
	if err != nil {
		return nil, storeErr(err)
	}
	return checklist, nil
}

// DeleteChecklist removes a checklist and all of its items. Deleting a
// checklist that is already gone is a no-op, not an error.
func (s *ChecklistService) DeleteChecklist(ctx context.Context, checklistID string) error {
	if err := s.store.DeleteChecklist(ctx, checklistID); err != nil {
		return storeErr(err)
	}
	slog.Info("checklist deleted", "checklist_id", checklistID)
	return nil
}
