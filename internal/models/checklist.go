package models

// ChecklistType distinguishes a participant's private checklist from the
// trip-wide shared one.
type ChecklistType string

const (
	// ChecklistTypePersonal is visible only to its owner.
	ChecklistTypePersonal ChecklistType = "personal"
	// ChecklistTypeGroup is shared by every trip participant.
	ChecklistTypeGroup ChecklistType = "group"
)

// Valid reports whether t is one of the known checklist types.
func (t ChecklistType) Valid() bool {
	return t == ChecklistTypePersonal || t == ChecklistTypeGroup
}

// DefaultName returns the canonical display label used when a checklist of
// this type is created without an explicit name.
func (t ChecklistType) DefaultName() string {
	if t == ChecklistTypeGroup {
		return "Group Checklist"
	}
	return "Personal Checklist"
}

// Checklist is a named, ordered collection of items scoped to a trip.
//
// For a given trip there is at most one group checklist and at most one
// personal checklist per owner. The store enforces this with uniqueness
// constraints; the provisioner relies on those constraints rather than
// in-process locking, since concurrent creators may be separate requests.
type Checklist struct {
	// ID is the unique identifier for the checklist (UUID format).
	ID string `json:"id"`

	// TripID references the owning trip.
	TripID string `json:"tripId"`

	// OwnerID references the owning user. Set only for personal checklists;
	// empty for group checklists (persisted as NULL).
	OwnerID string `json:"ownerId,omitempty"`

	// Name is the display label, never blank.
	Name string `json:"name"`

	// Type is either personal or group.
	Type ChecklistType `json:"type"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`

	// Items are the checklist's entries, sorted by ItemOrder ascending.
	// Populated on list reads; nil on bare row reads.
	Items []Item `json:"items"`
}

// Item is a single to-do entry on a checklist.
type Item struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// ChecklistID references the owning checklist.
	ChecklistID string `json:"checklistId"`

	// Content is the free-text label, trimmed and never blank.
	Content string `json:"content"`

	// IsChecked marks the entry as done.
	IsChecked bool `json:"isChecked"`

	// ItemOrder is the non-negative sort key among siblings.
	ItemOrder int `json:"itemOrder"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
