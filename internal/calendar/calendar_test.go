package calendar

import (
	"testing"
	"time"

	"github.com/ksuzuki/yaritai/internal/models"
)

var familyMembers = []models.User{
	{ID: "me", Name: "自分"},
	{ID: "papa", Name: "パパ"},
	{ID: "mama", Name: "ママ"},
}

func TestToday(t *testing.T) {
	// 2024-08-09 23:30 UTC is already 2024-08-10 in Japan.
	now := time.Date(2024, time.August, 9, 23, 30, 0, 0, time.UTC)
	if got := Today(now); got != "2024-08-10" {
		t.Errorf("Today = %q, want 2024-08-10", got)
	}

	// 2024-08-10 10:00 JST stays on the same civil day.
	now = time.Date(2024, time.August, 10, 10, 0, 0, 0, jst)
	if got := Today(now); got != "2024-08-10" {
		t.Errorf("Today = %q, want 2024-08-10", got)
	}
}

func TestCurrentMonth(t *testing.T) {
	// 2024-12-31 23:30 UTC is already 2025-01-01 in Japan.
	now := time.Date(2024, time.December, 31, 23, 30, 0, 0, time.UTC)
	year, month := CurrentMonth(now)
	if year != 2025 || month != time.January {
		t.Errorf("CurrentMonth = %d-%s, want 2025-January", year, month)
	}

	// Mid-month, mid-day agrees with the local reading.
	now = time.Date(2024, time.August, 10, 12, 0, 0, 0, jst)
	year, month = CurrentMonth(now)
	if year != 2024 || month != time.August {
		t.Errorf("CurrentMonth = %d-%s, want 2024-August", year, month)
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29}, // leap year
		{2025, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestFirstWeekday(t *testing.T) {
	// 2024-08-01 is a Thursday, so the grid needs 4 pad cells.
	if got := FirstWeekday(2024, time.August); got != time.Thursday {
		t.Errorf("FirstWeekday(2024, August) = %v, want Thursday", got)
	}
	// 2024-09-01 is a Sunday: no padding.
	if got := FirstWeekday(2024, time.September); got != time.Sunday {
		t.Errorf("FirstWeekday(2024, September) = %v, want Sunday", got)
	}
}

func TestNavigate(t *testing.T) {
	tests := []struct {
		year      int
		month     time.Month
		delta     int
		wantYear  int
		wantMonth time.Month
	}{
		{2024, time.August, 1, 2024, time.September},
		{2024, time.August, -1, 2024, time.July},
		{2024, time.December, 1, 2025, time.January},
		{2024, time.January, -1, 2023, time.December},
	}

	for _, tt := range tests {
		gotYear, gotMonth := Navigate(tt.year, tt.month, tt.delta)
		if gotYear != tt.wantYear || gotMonth != tt.wantMonth {
			t.Errorf("Navigate(%d, %v, %d) = (%d, %v), want (%d, %v)",
				tt.year, tt.month, tt.delta, gotYear, gotMonth, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestAggregateMonth(t *testing.T) {
	t.Run("counts viewer plus other members", func(t *testing.T) {
		viewerDates := map[string]bool{"2024-08-10": true}
		others := []models.AvailabilityRecord{
			{GroupID: "family", UserID: "papa", Date: "2024-08-10"},
		}

		days := AggregateMonth(2024, time.August, familyMembers, "me", viewerDates, others)
		if len(days) != 31 {
			t.Fatalf("expected 31 days, got %d", len(days))
		}

		day := days[9] // 2024-08-10
		if day.Date != "2024-08-10" {
			t.Fatalf("day 10 has date %s", day.Date)
		}
		if day.AvailableCount != 2 {
			t.Errorf("AvailableCount = %d, want 2", day.AvailableCount)
		}
		if day.AllAvailable {
			t.Error("AllAvailable should be false with 2 of 3 members free")
		}
	})

	t.Run("all available once every member toggles", func(t *testing.T) {
		viewerDates := map[string]bool{"2024-08-10": true}
		others := []models.AvailabilityRecord{
			{GroupID: "family", UserID: "papa", Date: "2024-08-10"},
			{GroupID: "family", UserID: "mama", Date: "2024-08-10"},
		}

		days := AggregateMonth(2024, time.August, familyMembers, "me", viewerDates, others)
		day := days[9]
		if day.AvailableCount != 3 {
			t.Errorf("AvailableCount = %d, want 3", day.AvailableCount)
		}
		if !day.AllAvailable {
			t.Error("AllAvailable should be true with all 3 members free")
		}
	})

	t.Run("viewer record in others is not double counted", func(t *testing.T) {
		viewerDates := map[string]bool{"2024-08-10": true}
		others := []models.AvailabilityRecord{
			{GroupID: "family", UserID: "me", Date: "2024-08-10"},
		}

		days := AggregateMonth(2024, time.August, familyMembers, "me", viewerDates, others)
		if got := days[9].AvailableCount; got != 1 {
			t.Errorf("AvailableCount = %d, want 1", got)
		}
	})

	t.Run("non-member records are ignored", func(t *testing.T) {
		others := []models.AvailabilityRecord{
			{GroupID: "family", UserID: "stranger", Date: "2024-08-10"},
		}

		days := AggregateMonth(2024, time.August, familyMembers, "me", nil, others)
		if got := days[9].AvailableCount; got != 0 {
			t.Errorf("AvailableCount = %d, want 0", got)
		}
	})

	t.Run("empty group is never all available", func(t *testing.T) {
		viewerDates := map[string]bool{"2024-08-10": true}
		days := AggregateMonth(2024, time.August, nil, "me", viewerDates, nil)
		for _, d := range days {
			if d.AllAvailable {
				t.Fatalf("AllAvailable true on %s for empty group", d.Date)
			}
		}
	})

	t.Run("count never exceeds member count", func(t *testing.T) {
		viewerDates := map[string]bool{}
		var others []models.AvailabilityRecord
		for day := 1; day <= 31; day++ {
			date := FormatDate(2024, time.August, day)
			viewerDates[date] = true
			for _, m := range familyMembers {
				// Duplicate records on purpose.
				others = append(others,
					models.AvailabilityRecord{GroupID: "family", UserID: m.ID, Date: date},
					models.AvailabilityRecord{GroupID: "family", UserID: m.ID, Date: date},
				)
			}
		}

		for _, d := range AggregateMonth(2024, time.August, familyMembers, "me", viewerDates, others) {
			if d.AvailableCount > len(familyMembers) {
				t.Fatalf("%s: count %d exceeds member count %d", d.Date, d.AvailableCount, len(familyMembers))
			}
		}
	})

	t.Run("available members keep group order", func(t *testing.T) {
		others := []models.AvailabilityRecord{
			{GroupID: "family", UserID: "mama", Date: "2024-08-10"},
			{GroupID: "family", UserID: "papa", Date: "2024-08-10"},
		}

		days := AggregateMonth(2024, time.August, familyMembers, "me", nil, others)
		got := days[9].AvailableMembers
		if len(got) != 2 || got[0].ID != "papa" || got[1].ID != "mama" {
			t.Errorf("AvailableMembers = %v, want papa then mama", got)
		}
	})
}

func TestAllAvailableDates(t *testing.T) {
	viewerDates := map[string]bool{
		"2024-08-05": true, // past relative to "today" below
		"2024-08-10": true,
		"2024-08-20": true,
	}
	others := []models.AvailabilityRecord{
		{GroupID: "family", UserID: "papa", Date: "2024-08-05"},
		{GroupID: "family", UserID: "mama", Date: "2024-08-05"},
		{GroupID: "family", UserID: "papa", Date: "2024-08-10"},
		{GroupID: "family", UserID: "mama", Date: "2024-08-10"},
		{GroupID: "family", UserID: "papa", Date: "2024-08-20"},
		{GroupID: "family", UserID: "mama", Date: "2024-08-20"},
	}

	days := AggregateMonth(2024, time.August, familyMembers, "me", viewerDates, others)
	got := AllAvailableDates(days, "2024-08-08")

	want := []string{"2024-08-10", "2024-08-20"}
	if len(got) != len(want) {
		t.Fatalf("AllAvailableDates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// Strictly ascending, no duplicates.
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Errorf("dates not strictly ascending: %v", got)
		}
	}
}

func TestCanToggle(t *testing.T) {
	today := "2024-08-10"
	if CanToggle("2024-08-09", today) {
		t.Error("past date should not be togglable")
	}
	if !CanToggle("2024-08-10", today) {
		t.Error("today should be togglable")
	}
	if !CanToggle("2024-09-01", today) {
		t.Error("future date should be togglable")
	}
}
