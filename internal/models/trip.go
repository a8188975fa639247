package models

// Trip is the owning aggregate for checklists. Planning features (itinerary,
// expenses, participants) belong to the surrounding application; the
// checklist engine only needs a trip to exist before provisioning against it.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Lisbon 2026").
	Name string `json:"name"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"createdAt"`
}
