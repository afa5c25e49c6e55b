package feed

import (
	"math/rand"
	"testing"

	"github.com/ksuzuki/yaritai/internal/models"
)

func stock(id string, createdAt int64, wants ...string) models.StockItem {
	return models.StockItem{
		ID:            id,
		Title:         id,
		Category:      models.CategoryOuting,
		Status:        models.StockActive,
		CreatedAt:     createdAt,
		WantToGoUsers: wants,
	}
}

func ids(stocks []models.StockItem) []string {
	out := make([]string, len(stocks))
	for i, s := range stocks {
		out[i] = s.ID
	}
	return out
}

func TestRankNewest(t *testing.T) {
	in := []models.StockItem{
		stock("a", 100),
		stock("b", 300),
		stock("c", 200),
	}

	got := Rank(in, SortNewest)
	for i := 1; i < len(got); i++ {
		if got[i-1].CreatedAt < got[i].CreatedAt {
			t.Errorf("not descending by CreatedAt: %v", ids(got))
		}
	}
	if got[0].ID != "b" || got[1].ID != "c" || got[2].ID != "a" {
		t.Errorf("order = %v, want [b c a]", ids(got))
	}

	// Input untouched.
	if in[0].ID != "a" {
		t.Error("Rank mutated its input")
	}
}

func TestRankNewestStableOnTies(t *testing.T) {
	in := []models.StockItem{
		stock("first", 100),
		stock("second", 100),
		stock("third", 100),
	}

	got := Rank(in, SortNewest)
	want := []string{"first", "second", "third"}
	for i, id := range ids(got) {
		if id != want[i] {
			t.Fatalf("tie order = %v, want %v", ids(got), want)
		}
	}
}

func TestRankPopular(t *testing.T) {
	in := []models.StockItem{
		stock("a", 100, "u1"),
		stock("b", 200, "u1", "u2", "u3"),
		stock("c", 300),
		stock("d", 400, "u1", "u2"),
	}

	got := Rank(in, SortPopular)
	for i := 1; i < len(got); i++ {
		if got[i-1].WantToGoCount() < got[i].WantToGoCount() {
			t.Errorf("not descending by want count: %v", ids(got))
		}
	}
	if got[0].ID != "b" || got[1].ID != "d" {
		t.Errorf("order = %v, want b, d first", ids(got))
	}
}

func TestFilterCategory(t *testing.T) {
	gourmet := stock("g", 1)
	gourmet.Category = models.CategoryGourmet
	travel := stock("t", 2)
	travel.Category = models.CategoryTravel
	in := []models.StockItem{gourmet, travel}

	if got := FilterCategory(in, models.CategoryGourmet); len(got) != 1 || got[0].ID != "g" {
		t.Errorf("gourmet filter = %v", ids(got))
	}
	if got := FilterCategory(in, "all"); len(got) != 2 {
		t.Errorf("all filter = %v", ids(got))
	}
	if got := FilterCategory(in, ""); len(got) != 2 {
		t.Errorf("empty filter = %v", ids(got))
	}
}

func TestBuildHome(t *testing.T) {
	t.Run("unread first, capped at three", func(t *testing.T) {
		read := stock("read", 500)
		read.IsRead = true
		in := []models.StockItem{
			read,
			stock("u1", 100),
			stock("u2", 200),
			stock("u3", 300),
			stock("u4", 400),
		}

		home := BuildHome(in)
		if home.UnreadCount != 4 {
			t.Errorf("UnreadCount = %d, want 4", home.UnreadCount)
		}
		want := []string{"u4", "u3", "u2"}
		if len(home.Display) != 3 {
			t.Fatalf("display = %v, want 3 items", ids(home.Display))
		}
		for i, id := range ids(home.Display) {
			if id != want[i] {
				t.Errorf("display = %v, want %v", ids(home.Display), want)
			}
		}
	})

	t.Run("falls back to newest overall when all read", func(t *testing.T) {
		var in []models.StockItem
		for i, id := range []string{"a", "b", "c", "d"} {
			s := stock(id, int64(i))
			s.IsRead = true
			in = append(in, s)
		}

		home := BuildHome(in)
		if home.UnreadCount != 0 {
			t.Errorf("UnreadCount = %d, want 0", home.UnreadCount)
		}
		want := []string{"d", "c", "b"}
		for i, id := range ids(home.Display) {
			if id != want[i] {
				t.Errorf("display = %v, want %v", ids(home.Display), want)
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		home := BuildHome(nil)
		if len(home.Display) != 0 || home.UnreadCount != 0 {
			t.Errorf("empty home = %+v", home)
		}
	})
}

func TestToggleWantToGo(t *testing.T) {
	s := stock("s", 1, "u1")

	if now := ToggleWantToGo(&s, "u2"); !now {
		t.Error("first toggle should add u2")
	}
	if s.WantToGoCount() != 2 {
		t.Errorf("count = %d, want 2", s.WantToGoCount())
	}

	if now := ToggleWantToGo(&s, "u2"); now {
		t.Error("second toggle should remove u2")
	}
	if s.WantToGoCount() != 1 || s.WantsToGo("u2") {
		t.Errorf("after round trip: %v", s.WantToGoUsers)
	}
}

// Count must equal set cardinality under any toggle sequence.
func TestWantToGoCountNeverDesyncs(t *testing.T) {
	users := []string{"u1", "u2", "u3", "u4"}
	rng := rand.New(rand.NewSource(1))
	s := stock("s", 1)

	for i := 0; i < 1000; i++ {
		ToggleWantToGo(&s, users[rng.Intn(len(users))])

		seen := make(map[string]bool)
		for _, id := range s.WantToGoUsers {
			if seen[id] {
				t.Fatalf("duplicate user %s in want-to-go set after %d toggles", id, i+1)
			}
			seen[id] = true
		}
		if s.WantToGoCount() != len(seen) {
			t.Fatalf("count %d != set size %d", s.WantToGoCount(), len(seen))
		}
	}
}
