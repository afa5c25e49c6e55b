package models

// Stock categories.
const (
	CategoryGourmet = "gourmet"
	CategoryTravel  = "travel"
	CategoryOuting  = "outing"
	CategoryEvent   = "event"
)

// Stock lifecycle states. Deletion is always a soft transition to
// StockArchived; rows are never physically removed.
const (
	StockActive   = "active"
	StockDone     = "done"
	StockArchived = "archived"
)

// StockItem is a saved idea/link a user wants to act on later.
//
// A stock starts personal (empty GroupID) and may be shared to exactly one
// group. Sharing is a one-way move: once GroupID is set it is never
// cleared and never changed to a different group.
type StockItem struct {
	// ID is the unique identifier for the stock (UUID format).
	ID string `json:"id"`

	// UserID is the user who stocked it.
	UserID string `json:"userId"`

	// GroupID is the group the stock is shared to, or empty for personal.
	GroupID string `json:"groupId,omitempty"`

	// Title is the required display title.
	Title string `json:"title"`

	// URL is the source link, if the stock came from one.
	URL string `json:"url,omitempty"`

	// ImageURL is a preview image, usually from OGP metadata.
	ImageURL string `json:"imageUrl,omitempty"`

	// Category is one of the Category* constants.
	Category string `json:"category"`

	// Location is a free-text place hint.
	Location string `json:"location,omitempty"`

	// Note is a free-text memo.
	Note string `json:"note,omitempty"`

	// Status is one of the Stock* constants.
	Status string `json:"status"`

	// IsRead marks whether the viewer has seen this stock.
	IsRead bool `json:"isRead"`

	// WantToGoUsers is the set of user IDs who reacted "want to go",
	// in reaction order. The reaction count is always len of this slice.
	WantToGoUsers []string `json:"wantToGoUsers"`

	// CreatedAt is the Unix timestamp when the stock was created.
	CreatedAt int64 `json:"createdAt"`
}

// WantToGoCount returns the reaction count. It is derived from the user
// set so the two can never drift apart.
func (s *StockItem) WantToGoCount() int {
	return len(s.WantToGoUsers)
}

// WantsToGo reports whether userID has the want-to-go reaction set.
func (s *StockItem) WantsToGo(userID string) bool {
	for _, id := range s.WantToGoUsers {
		if id == userID {
			return true
		}
	}
	return false
}

// ValidCategory reports whether c is a known stock category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryGourmet, CategoryTravel, CategoryOuting, CategoryEvent:
		return true
	}
	return false
}
