package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
//
// The one-per-type invariant on checklists is realized as two partial unique
// indexes rather than a single UNIQUE(trip_id, type, owner_id): group
// checklists carry a NULL owner_id, and NULLs never collide under a plain
// SQLite UNIQUE constraint, so the composite form would admit any number of
// group rows per trip.
const schema = `
CREATE TABLE IF NOT EXISTS trips (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS checklists (
    id TEXT PRIMARY KEY,
    trip_id TEXT NOT NULL,
    owner_id TEXT,
    name TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('personal', 'group')),
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (trip_id) REFERENCES trips(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_checklists_one_group_per_trip
    ON checklists(trip_id) WHERE type = 'group';

CREATE UNIQUE INDEX IF NOT EXISTS idx_checklists_one_personal_per_owner
    ON checklists(trip_id, owner_id) WHERE type = 'personal';

CREATE TABLE IF NOT EXISTS checklist_items (
    id TEXT PRIMARY KEY,
    checklist_id TEXT NOT NULL,
    content TEXT NOT NULL,
    is_checked INTEGER NOT NULL DEFAULT 0,
    item_order INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL,
    FOREIGN KEY (checklist_id) REFERENCES checklists(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_checklists_trip_id ON checklists(trip_id);
CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist_id ON checklist_items(checklist_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
