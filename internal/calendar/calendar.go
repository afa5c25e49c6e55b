// Package calendar computes per-day group availability aggregates for the
// home-screen calendar: how many members are free on each day of a month,
// whether everyone is free, and which future dates the whole group has open.
package calendar

import (
	"time"

	"github.com/ksuzuki/yaritai/internal/models"
)

// DateLayout is the wire format for calendar days. ISO dates compare
// correctly as strings, which the past/future checks rely on.
const DateLayout = "2006-01-02"

// Japan has no daylight saving, so a fixed offset is exact and avoids a
// tzdata dependency in pure-Go builds.
var jst = time.FixedZone("JST", 9*60*60)

// Today returns the current civil date in Japan time. All past/future
// boundaries in the app are anchored to this, never to the process's
// local timezone.
func Today(now time.Time) string {
	return now.In(jst).Format(DateLayout)
}

// CurrentMonth returns the year and month containing Today. Near
// midnight these differ from the process-local month, so callers must not
// derive defaults from now.Year()/now.Month() directly.
func CurrentMonth(now time.Time) (int, time.Month) {
	t := now.In(jst)
	return t.Year(), t.Month()
}

// FormatDate renders a (year, month, day) triple in DateLayout.
func FormatDate(year int, month time.Month, day int) string {
	return time.Date(year, month, day, 0, 0, 0, 0, jst).Format(DateLayout)
}

// DaysIn returns the number of days in the given month. Day 0 of the next
// month is the last day of this one, so leap years come out of the
// standard date arithmetic.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, jst).Day()
}

// FirstWeekday returns the weekday of day 1, which is also the number of
// leading pad cells the calendar grid needs (Sunday = 0).
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, jst).Weekday()
}

// Navigate moves the displayed month by delta months, wrapping year
// boundaries. It is a pure computation and never touches availability.
func Navigate(year int, month time.Month, delta int) (int, time.Month) {
	base := time.Date(year, month, 1, 0, 0, 0, 0, jst).AddDate(0, delta, 0)
	return base.Year(), base.Month()
}

// DayAggregate is the derived availability picture for one (group, date)
// pair. It is recomputed on demand and never stored.
type DayAggregate struct {
	// Date is the day in DateLayout form.
	Date string `json:"date"`

	// AvailableCount is how many group members are free on Date.
	AvailableCount int `json:"availableCount"`

	// AllAvailable is true when every member is free and the group is
	// not empty.
	AllAvailable bool `json:"allAvailable"`

	// AvailableMembers lists the free members in group member order.
	AvailableMembers []models.User `json:"availableMembers"`
}

// AggregateMonth computes a DayAggregate for every day of (year, month).
//
// The viewer's own toggles are passed separately from the rest of the
// group's records so a same-session toggle is reflected before any
// persistence round-trip. Records for the viewer in others are ignored to
// avoid double counting.
func AggregateMonth(year int, month time.Month, members []models.User, viewerID string, viewerDates map[string]bool, others []models.AvailabilityRecord) []DayAggregate {
	// date -> set of available member IDs
	byDate := make(map[string]map[string]bool)
	mark := func(date, userID string) {
		if byDate[date] == nil {
			byDate[date] = make(map[string]bool)
		}
		byDate[date][userID] = true
	}

	for date, ok := range viewerDates {
		if ok {
			mark(date, viewerID)
		}
	}
	for _, rec := range others {
		if rec.UserID == viewerID {
			continue
		}
		mark(rec.Date, rec.UserID)
	}

	days := make([]DayAggregate, 0, DaysIn(year, month))
	for day := 1; day <= DaysIn(year, month); day++ {
		date := FormatDate(year, month, day)
		available := byDate[date]

		agg := DayAggregate{Date: date}
		for _, m := range members {
			if available[m.ID] {
				agg.AvailableMembers = append(agg.AvailableMembers, m)
			}
		}
		agg.AvailableCount = len(agg.AvailableMembers)
		agg.AllAvailable = len(members) > 0 && agg.AvailableCount == len(members)
		days = append(days, agg)
	}
	return days
}

// AllAvailableDates returns the dates from days that are today or later
// and have every member free, in ascending order. days is expected in
// ascending date order, as AggregateMonth produces it.
func AllAvailableDates(days []DayAggregate, today string) []string {
	var dates []string
	for _, d := range days {
		if d.AllAvailable && d.Date >= today {
			dates = append(dates, d.Date)
		}
	}
	return dates
}

// CanToggle reports whether date may still be toggled: past dates are
// frozen, today and future dates are open.
func CanToggle(date, today string) bool {
	return date >= today
}
