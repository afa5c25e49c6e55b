package models

// Group identifiers are a fixed enumeration rather than user-created rows.
// GroupSelf is a pseudo-group meaning "no group, personal only": stocks
// scoped to it carry a NULL group reference and it has no member list.
const (
	GroupFamily  = "family"
	GroupFriends = "friends"
	GroupWork    = "work"
	GroupSolo    = "solo"
	GroupSelf    = "self"
)

// Group represents a circle of users that stocks, availability and plans
// are shared within.
type Group struct {
	// ID is one of the Group* constants.
	ID string `json:"id"`

	// Name is the display name of the group (e.g. "家族", "友人").
	Name string `json:"name"`

	// Members is the ordered member list. Aggregations that report
	// "who is available" preserve this order.
	Members []User `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// Member returns the member with the given user ID, or nil.
func (g *Group) Member(userID string) *User {
	for i := range g.Members {
		if g.Members[i].ID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// ValidGroupID reports whether id names a real group (the self pseudo-group
// is not a real group and has no availability calendar).
func ValidGroupID(id string) bool {
	switch id {
	case GroupFamily, GroupFriends, GroupWork, GroupSolo:
		return true
	}
	return false
}

// DefaultGroups returns the seed group fixture used when the store is
// empty. The viewer identity "me" belongs to every group.
func DefaultGroups() []Group {
	return []Group{
		{
			ID:   GroupFamily,
			Name: "家族",
			Members: []User{
				{ID: "me", Name: "自分"},
				{ID: "papa", Name: "パパ"},
				{ID: "mama", Name: "ママ"},
			},
		},
		{
			ID:   GroupFriends,
			Name: "友人",
			Members: []User{
				{ID: "me", Name: "自分"},
				{ID: "ken", Name: "ケン"},
				{ID: "yui", Name: "ユイ"},
			},
		},
		{
			ID:   GroupWork,
			Name: "会社の同僚",
			Members: []User{
				{ID: "me", Name: "自分"},
				{ID: "tanaka", Name: "田中"},
				{ID: "sato", Name: "佐藤"},
			},
		},
		{
			ID:   GroupSolo,
			Name: "ひとりで",
			Members: []User{
				{ID: "me", Name: "自分"},
			},
		},
	}
}
