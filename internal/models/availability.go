package models

// AvailabilityRecord marks one user as free on one date for one group.
//
// Availability is presence-by-existence: the record existing means "free",
// no record means "unknown". There is no explicit busy state. Records are
// mutated only by toggling (insert if absent, delete if present), and a
// user may only toggle their own records.
type AvailabilityRecord struct {
	// GroupID is the group the availability applies to.
	GroupID string `json:"groupId"`

	// UserID is the member who is free.
	UserID string `json:"userId"`

	// Date is the calendar day in "YYYY-MM-DD" form, Japan time.
	Date string `json:"date"`
}
