package models

// Plan lifecycle states. planning → confirmed is one-directional and
// user-triggered; there is no path back from confirmed.
const (
	PlanPlanning  = "planning"
	PlanConfirmed = "confirmed"
	PlanDone      = "done"
)

// PlanItem is a scheduled outing, created from a converted proposal or
// manually.
type PlanItem struct {
	// ID is the unique identifier for the plan (UUID format).
	ID string `json:"id"`

	// GroupID is the group the plan belongs to.
	GroupID string `json:"groupId"`

	// Title is the display title.
	Title string `json:"title"`

	// DateStart is the first day, "YYYY-MM-DD".
	DateStart string `json:"dateStart"`

	// DateEnd is the last day for multi-day plans, or empty.
	DateEnd string `json:"dateEnd,omitempty"`

	// Status is one of the Plan* constants.
	Status string `json:"status"`

	// Itinerary is the ordered list of steps (the "shiori").
	Itinerary []ItineraryStep `json:"itinerary,omitempty"`

	// Members is the list of participating user IDs.
	Members []string `json:"members"`

	// CreatedAt is the Unix timestamp when the plan was created.
	CreatedAt int64 `json:"createdAt"`
}

// ItineraryStep is a single timed entry in a plan's itinerary.
type ItineraryStep struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}
