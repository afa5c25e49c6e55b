package planner

import (
	"strings"
	"testing"
	"time"

	"github.com/ksuzuki/yaritai/internal/models"
)

func newTestSession() *Session {
	s := NewSession(0)
	// Fixed clock: 2024-08-01 12:00 JST.
	s.now = func() time.Time {
		return time.Date(2024, time.August, 1, 3, 0, 0, 0, time.UTC)
	}
	return s
}

func TestGenerateIsDeterministic(t *testing.T) {
	s := newTestSession()

	first := s.Generate(models.GroupFamily, DayTypeOneDay)
	second := s.Generate(models.GroupFamily, DayTypeOneDay)

	if len(first) == 0 {
		t.Fatal("expected canned proposals for family")
	}
	if len(first) != len(second) {
		t.Fatalf("regeneration changed set size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("proposal %d: id %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestGenerateReplacesGeneratedSet(t *testing.T) {
	s := newTestSession()

	s.Generate(models.GroupFamily, DayTypeOneDay)
	s.Generate(models.GroupFriends, DayTypeWeekend)

	for _, p := range s.Generated() {
		if !strings.HasPrefix(p.ID, "friends-") {
			t.Errorf("stale proposal %s after regeneration", p.ID)
		}
	}
}

func TestKeepMovesProposal(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	id := generated[0].ID

	if !s.Keep(id) {
		t.Fatal("Keep returned false for a generated proposal")
	}

	if got := len(s.Generated()); got != len(generated)-1 {
		t.Errorf("generated size = %d, want %d", got, len(generated)-1)
	}
	kept := s.Kept()
	if len(kept) != 1 || kept[0].ID != id {
		t.Errorf("kept = %v", kept)
	}

	// Keeping an id no longer in generated is a no-op.
	if s.Keep(id) {
		t.Error("second Keep should be a no-op")
	}
	if len(s.Kept()) != 1 {
		t.Error("kept set grew on repeated Keep")
	}
}

func TestUnkeepRoundTrip(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	id := generated[0].ID

	s.Keep(id)
	if !s.Unkeep(id) {
		t.Fatal("Unkeep returned false for a kept proposal")
	}
	if len(s.Kept()) != 0 {
		t.Errorf("kept = %v, want empty", s.Kept())
	}

	// Unknown id is a no-op, not an error.
	if s.Unkeep("nope") {
		t.Error("Unkeep of unknown id should return false")
	}
}

func TestConvertProducesPlanningPlan(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	id := generated[0].ID
	s.Keep(id)

	plan, ok := s.Convert(id, models.GroupFamily, "me")
	if !ok {
		t.Fatal("Convert returned ok=false")
	}

	if plan.Status != models.PlanPlanning {
		t.Errorf("status = %s, want planning", plan.Status)
	}
	if plan.Title != generated[0].Title {
		t.Errorf("title = %s, want %s", plan.Title, generated[0].Title)
	}
	// Fixed clock is 2024-08-01 JST, so the plan lands one week out.
	if plan.DateStart != "2024-08-08" {
		t.Errorf("DateStart = %s, want 2024-08-08", plan.DateStart)
	}
	if len(plan.Members) != 1 || plan.Members[0] != "me" {
		t.Errorf("members = %v, want [me]", plan.Members)
	}

	// Consumed from every pending collection.
	if len(s.Kept()) != 0 {
		t.Errorf("kept still holds %v", s.Kept())
	}
	for _, p := range s.Generated() {
		if p.ID == id {
			t.Error("converted proposal still generated")
		}
	}

	// Converting again is a no-op.
	if _, ok := s.Convert(id, models.GroupFamily, "me"); ok {
		t.Error("second Convert should return ok=false")
	}
}

func TestPlanForLeavesSessionUntouched(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	id := generated[0].ID
	s.Keep(id)

	plan, ok := s.PlanFor(id, models.GroupFamily, "me")
	if !ok {
		t.Fatal("PlanFor returned ok=false")
	}
	if plan.Status != models.PlanPlanning {
		t.Errorf("status = %s, want planning", plan.Status)
	}

	// Nothing is consumed until Discard.
	kept := s.Kept()
	if len(kept) != 1 || kept[0].ID != id {
		t.Errorf("kept = %v, want the proposal still present", kept)
	}

	if !s.Discard(id) {
		t.Fatal("Discard returned false for a kept proposal")
	}
	if len(s.Kept()) != 0 {
		t.Errorf("kept = %v, want empty after Discard", s.Kept())
	}
	if s.Discard(id) {
		t.Error("second Discard should be a no-op")
	}
}

func TestAdjustChatFlow(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	original := generated[0]

	msgs, err := s.StartAdjust(original.ID)
	if err != nil {
		t.Fatalf("StartAdjust: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Role != RoleAssistant {
		t.Fatalf("expected a single greeting, got %v", msgs)
	}
	if !strings.Contains(msgs[0].Content, original.EstimatedBudget) ||
		!strings.Contains(msgs[0].Content, original.Highlight) {
		t.Errorf("greeting should quote budget and highlight: %q", msgs[0].Content)
	}

	if _, err := s.Send("もっと安くしたい"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	msgs, _ = s.Messages()
	last := msgs[len(msgs)-1]
	if last.Role != RoleAssistant || last.Suggestion == nil {
		t.Fatalf("expected assistant reply with suggestion, got %+v", last)
	}
	if last.Suggestion.Field != FieldBudget {
		t.Errorf("suggestion field = %s, want budget", last.Suggestion.Field)
	}

	// Nothing mutates until the suggestion is applied.
	p, _ := s.AdjustedProposal()
	if p.EstimatedBudget != original.EstimatedBudget {
		t.Error("budget changed before ApplySuggestion")
	}

	if _, err := s.ApplySuggestion(); err != nil {
		t.Fatalf("ApplySuggestion: %v", err)
	}
	p, _ = s.AdjustedProposal()
	if p.EstimatedBudget != "約3万円/人" {
		t.Errorf("budget = %s, want 約3万円/人", p.EstimatedBudget)
	}

	// The suggestion is consumed.
	if _, err := s.ApplySuggestion(); err != ErrNoSuggestion {
		t.Errorf("second apply: err = %v, want ErrNoSuggestion", err)
	}

	// Transcript is append-only: greeting, user, reply, confirmation.
	msgs, _ = s.Messages()
	if len(msgs) != 4 {
		t.Errorf("transcript length = %d, want 4", len(msgs))
	}
}

func TestAdjustFallbackHasNoSuggestion(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	s.StartAdjust(generated[0].ID)

	s.Send("よろしくお願いします")
	msgs, _ := s.Messages()
	last := msgs[len(msgs)-1]
	if last.Suggestion != nil {
		t.Errorf("fallback reply carried a suggestion: %+v", last.Suggestion)
	}
	if _, err := s.ApplySuggestion(); err != ErrNoSuggestion {
		t.Errorf("apply after fallback: err = %v, want ErrNoSuggestion", err)
	}
}

func TestSendWhileReplyPending(t *testing.T) {
	s := newTestSession()
	s.replyDelay = time.Hour // reply never lands during the test
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	s.StartAdjust(generated[0].ID)

	if _, err := s.Send("安くして"); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if _, err := s.Send("もう一声"); err != ErrReplyPending {
		t.Errorf("second send: err = %v, want ErrReplyPending", err)
	}
}

func TestStartAdjustReplacesSession(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)

	s.StartAdjust(generated[0].ID)
	s.Send("安くして")

	// Opening adjustment on another proposal starts a fresh transcript.
	msgs, err := s.StartAdjust(generated[1].ID)
	if err != nil {
		t.Fatalf("StartAdjust: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("fresh session transcript length = %d, want 1", len(msgs))
	}
	if !strings.Contains(msgs[0].Content, generated[1].Title) {
		t.Errorf("greeting should reference the new proposal: %q", msgs[0].Content)
	}
}

func TestKeepAdjusted(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	original := generated[0]

	s.StartAdjust(original.ID)
	s.Send("安くして")
	s.ApplySuggestion()

	adjusted, err := s.KeepAdjusted()
	if err != nil {
		t.Fatalf("KeepAdjusted: %v", err)
	}
	if adjusted.ID == original.ID {
		t.Error("adjusted copy should get a fresh id")
	}
	if !strings.HasSuffix(adjusted.Title, "（調整済み）") {
		t.Errorf("title = %s, want 調整済み suffix", adjusted.Title)
	}
	if adjusted.EstimatedBudget != "約3万円/人" {
		t.Errorf("budget = %s, want adjusted value", adjusted.EstimatedBudget)
	}

	kept := s.Kept()
	if len(kept) != 1 || kept[0].ID != adjusted.ID {
		t.Errorf("kept = %v", kept)
	}

	// Chat closed.
	if _, err := s.Messages(); err != ErrNoAdjustSession {
		t.Errorf("Messages after KeepAdjusted: err = %v, want ErrNoAdjustSession", err)
	}
}

func TestConvertUsesAdjustedCopy(t *testing.T) {
	s := newTestSession()
	generated := s.Generate(models.GroupFamily, DayTypeOneDay)
	id := generated[0].ID

	s.StartAdjust(id)
	s.Send("子供向けにして")
	s.ApplySuggestion()

	plan, ok := s.Convert(id, models.GroupFamily, "me")
	if !ok {
		t.Fatal("Convert returned ok=false")
	}
	if plan.Title != generated[0].Title {
		t.Errorf("title = %s", plan.Title)
	}
	if _, err := s.Messages(); err != ErrNoAdjustSession {
		t.Error("chat should close when its proposal is converted")
	}
}

func TestManagerSessionLifecycle(t *testing.T) {
	m := NewManager(0)

	s1 := m.Session("sess-1")
	s1.Generate(models.GroupFamily, DayTypeOneDay)
	if m.Session("sess-1") != s1 {
		t.Error("same id should return the same session")
	}

	m.Reset("sess-1")
	s2 := m.Session("sess-1")
	if s2 == s1 {
		t.Error("reset should discard the session")
	}
	if len(s2.Generated()) != 0 || len(s2.Kept()) != 0 {
		t.Error("new session should start empty")
	}
}
