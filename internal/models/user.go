package models

// User represents a member identity.
//
// Users are created out-of-band (there is no registration flow in this
// backend) and are immutable for the purposes of aggregation: membership
// lists are stable for the duration of any computation that reads them.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`
}
