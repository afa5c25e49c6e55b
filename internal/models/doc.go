// Package models defines the core domain models for the Yaritai backend.
//
// # Model Overview
//
//   - User: a member identity referenced by availability and membership records
//   - Group: a fixed-enumeration circle of users that stocks are shared into
//   - StockItem: a saved idea/link a user wants to act on later
//   - AvailabilityRecord: "this user is free on this date for this group"
//   - PlanItem: a scheduled outing, possibly converted from a proposal
//   - PlanProposal: a canned outing plan suggested for a group
//
// # Design Principles
//
// 1. **Presence-by-existence**: availability has no "busy" state; a record
// existing means free, a missing record means unknown.
// 2. **Counts are derived**: the want-to-go count is always the cardinality
// of the want-to-go user set, never a separately stored counter.
// 3. **Avoid circular references**: relationships use ID strings, not
// pointers.
package models
