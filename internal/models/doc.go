// Package models defines the core domain models for geopins.
//
// # Current Models
//
//   - Location: a named geographic point persisted in the locations table
//   - EditRequest: the hand-off from the main screen to the edit/create screen
//
// # Design Principles
//
// 1. **Store-assigned identity**: Location IDs come from SQLite AUTOINCREMENT and never change
// 2. **Immutable coordinates**: once saved, only the name of a location can be edited
// 3. **Plain values**: models carry no behavior beyond small helpers, screens own the state
package models
