package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ksuzuki/yaritai/internal/calendar"
	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/storage"
)

// AvailabilityService handles free-day toggles and the monthly calendar
// view.
type AvailabilityService struct {
	store storage.Store

	// now is replaceable so tests can pin "today".
	now func() time.Time
}

// NewAvailabilityService creates a new AvailabilityService with the given
// storage backend.
func NewAvailabilityService(store storage.Store) *AvailabilityService {
	return &AvailabilityService{store: store, now: time.Now}
}

// Toggle flips the viewer's availability on one date and reports whether
// the viewer is now marked free. Users can only toggle their own records.
// Past dates (Japan time) are frozen: the toggle is a no-op that reports
// the stored state unchanged.
func (s *AvailabilityService) Toggle(ctx context.Context, groupID, userID, date string) (bool, error) {
	slog.Info("Toggle availability request received", "group_id", groupID, "user_id", userID, "date", date)

	if !models.ValidGroupID(groupID) {
		return false, fmt.Errorf("%w: %s", ErrInvalidGroup, groupID)
	}
	if _, err := time.Parse(calendar.DateLayout, date); err != nil {
		return false, fmt.Errorf("invalid date %q: %w", date, err)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return false, fmt.Errorf("failed to load group: %w", err)
	}
	if group.Member(userID) == nil {
		return false, fmt.Errorf("%w: %s is not a member of %s", ErrInvalidGroup, userID, groupID)
	}

	if !calendar.CanToggle(date, calendar.Today(s.now())) {
		return s.isAvailable(ctx, groupID, userID, date)
	}

	available, err := s.store.ToggleAvailability(ctx, models.AvailabilityRecord{
		GroupID: groupID,
		UserID:  userID,
		Date:    date,
	})
	if err != nil {
		slog.Error("Toggle availability failed", "group_id", groupID, "error", err)
		return false, fmt.Errorf("failed to toggle availability: %w", err)
	}

	slog.Info("Availability toggled", "group_id", groupID, "user_id", userID, "date", date, "available", available)
	return available, nil
}

func (s *AvailabilityService) isAvailable(ctx context.Context, groupID, userID, date string) (bool, error) {
	records, err := s.store.ListAvailability(ctx, groupID)
	if err != nil {
		return false, fmt.Errorf("failed to list availability: %w", err)
	}
	for _, rec := range records {
		if rec.UserID == userID && rec.Date == date {
			return true, nil
		}
	}
	return false, nil
}

// MonthView is one month of a group's availability calendar, ready for
// grid rendering.
type MonthView struct {
	// Year and Month identify the displayed month.
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	// Today is the current date in Japan time. Days before it are
	// read-only in the UI.
	Today string `json:"today"`

	// LeadingPad is the number of empty cells before day 1 in a
	// Sunday-first grid.
	LeadingPad int `json:"leadingPad"`

	// Days holds one aggregate per day of the month, in order.
	Days []calendar.DayAggregate `json:"days"`

	// AllAvailableDates lists today-or-later dates where every member is
	// free, ascending. These feed the plan proposal prompt.
	AllAvailableDates []string `json:"allAvailableDates"`
}

// Month builds the calendar view of (year, month) for viewerID. delta
// shifts the requested month, so the handler can pass ?delta=-1 for "previous
// month" without date math of its own.
func (s *AvailabilityService) Month(ctx context.Context, groupID, viewerID string, year int, month time.Month, delta int) (*MonthView, error) {
	if !models.ValidGroupID(groupID) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidGroup, groupID)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	records, err := s.store.ListAvailability(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}

	year, month = calendar.Navigate(year, month, delta)

	// The viewer's persisted records double as the "own dates" input; the
	// aggregate skips viewer rows in the shared list to avoid counting
	// them twice.
	viewerDates := make(map[string]bool)
	for _, rec := range records {
		if rec.UserID == viewerID {
			viewerDates[rec.Date] = true
		}
	}

	days := calendar.AggregateMonth(year, month, group.Members, viewerID, viewerDates, records)
	today := calendar.Today(s.now())

	return &MonthView{
		Year:              year,
		Month:             month,
		Today:             today,
		LeadingPad:        int(calendar.FirstWeekday(year, month)),
		Days:              days,
		AllAvailableDates: calendar.AllAvailableDates(days, today),
	}, nil
}
