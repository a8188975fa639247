// Package models defines the core domain models for the tripnest checklist
// backend.
//
// # Models
//
//   - Trip: the owning aggregate; trip lifecycle and membership live in the
//     surrounding application, the checklist engine only references trips
//   - Checklist: a named, ordered collection of items scoped to a trip,
//     either personal (one owner) or group (shared by all participants)
//   - Item: a single to-do entry with content, a checked flag, and a position
//
// # Design Principles
//
// 1. **Flat references**: relationships use ID strings, not pointers, to
// avoid circular references between trip, checklist, and item.
//
// 2. **Order is a sort key, not an identity**: Item.ItemOrder defines the
// display order among siblings. Values are not required to be contiguous or
// unique at every instant; two items created concurrently may briefly share
// a position. Sorting by ItemOrder ascending always yields the intended
// sequence after a successful insert or reorder.
//
// 3. **Ownership is single-parented**: a trip owns its checklists, a
// checklist owns its items. Deleting a parent cascades to its children.
package models
