// Package feed orders and filters a group's stocked items for the
// "everyone's wants" list and the home screen.
package feed

import (
	"sort"

	"github.com/ksuzuki/yaritai/internal/models"
)

// SortMode selects the feed ordering.
type SortMode string

const (
	SortNewest  SortMode = "newest"
	SortPopular SortMode = "popular"
)

// homeDisplayLimit is how many stocks the home screen surfaces.
const homeDisplayLimit = 3

// FilterCategory keeps only stocks of the given category. The empty
// string and "all" pass everything through. Filtering composes before
// sorting.
func FilterCategory(stocks []models.StockItem, category string) []models.StockItem {
	if category == "" || category == "all" {
		return stocks
	}
	var out []models.StockItem
	for _, s := range stocks {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Rank returns a new slice ordered by mode. The sort is stable: ties keep
// their input order, so insertion order acts as the tiebreak.
func Rank(stocks []models.StockItem, mode SortMode) []models.StockItem {
	out := make([]models.StockItem, len(stocks))
	copy(out, stocks)

	switch mode {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].WantToGoCount() > out[j].WantToGoCount()
		})
	default: // SortNewest
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
	}
	return out
}

// Home is the home-screen view of a stock scope: up to three stocks to
// display (unread ones first, in newest order) and the unread badge count.
type Home struct {
	Display     []models.StockItem `json:"display"`
	UnreadCount int                `json:"unreadCount"`
}

// BuildHome partitions stocks into unread and read. If any unread stocks
// exist the display set is up to three of those; otherwise it is up to
// three stocks overall. Both are in newest order.
func BuildHome(stocks []models.StockItem) Home {
	newest := Rank(stocks, SortNewest)

	var unread []models.StockItem
	for _, s := range newest {
		if !s.IsRead {
			unread = append(unread, s)
		}
	}

	display := newest
	if len(unread) > 0 {
		display = unread
	}
	if len(display) > homeDisplayLimit {
		display = display[:homeDisplayLimit]
	}

	return Home{Display: display, UnreadCount: len(unread)}
}

// ToggleWantToGo flips userID's membership in the stock's want-to-go set
// and reports whether the user is now in it. The count stays derived from
// the set, so it can never drift.
func ToggleWantToGo(stock *models.StockItem, userID string) bool {
	for i, id := range stock.WantToGoUsers {
		if id == userID {
			stock.WantToGoUsers = append(stock.WantToGoUsers[:i], stock.WantToGoUsers[i+1:]...)
			return false
		}
	}
	stock.WantToGoUsers = append(stock.WantToGoUsers, userID)
	return true
}
