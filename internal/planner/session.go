// Package planner is the canned "AI" plan proposal engine: it generates
// scripted proposals for a group, answers free-text adjustment requests
// through a fixed keyword rule table, and tracks each proposal's
// lifecycle from generated through kept to converted into a plan.
//
// All state here is session-scoped and ephemeral. A new session starts
// with empty generated, kept and chat state; nothing survives a reset.
package planner

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ksuzuki/yaritai/internal/calendar"
	"github.com/ksuzuki/yaritai/internal/models"
)

// convertDateOffset is how far out a converted plan is scheduled: the
// product always books "one week from today" and lets the group adjust
// the date afterwards.
const convertDateOffsetDays = 7

var (
	// ErrNoAdjustSession is returned when a chat operation runs without
	// an open adjustment session.
	ErrNoAdjustSession = errors.New("no adjustment session open")

	// ErrReplyPending is returned when a message is sent while the
	// previous canned reply has not been delivered yet.
	ErrReplyPending = errors.New("reply pending")

	// ErrNoSuggestion is returned when there is no suggestion waiting
	// for confirmation.
	ErrNoSuggestion = errors.New("no suggestion to apply")

	// ErrProposalNotFound is returned when an adjustment is requested
	// for an id that is in neither the generated nor the kept set.
	ErrProposalNotFound = errors.New("proposal not found")
)

// Role values for chat messages.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry in an adjustment chat. The chat is
// append-only; messages are never edited or removed.
type ChatMessage struct {
	ID         string      `json:"id"`
	Role       string      `json:"role"`
	Content    string      `json:"content"`
	Suggestion *Suggestion `json:"suggestion,omitempty"`
}

// chatState is the adjustment session for one proposal: a working copy
// being mutated, the transcript, and at most one suggestion in flight.
type chatState struct {
	proposal models.PlanProposal
	messages []ChatMessage
	pending  *Suggestion
	replying bool
}

// Session holds one user session's ephemeral proposal state.
type Session struct {
	mu         sync.Mutex
	replyDelay time.Duration
	now        func() time.Time

	generated []models.PlanProposal
	kept      []models.PlanProposal
	chat      *chatState
}

// NewSession returns an empty session. replyDelay is how long the canned
// assistant "thinks" before its reply lands; zero delivers replies
// synchronously, which tests rely on.
func NewSession(replyDelay time.Duration) *Session {
	return &Session{
		replyDelay: replyDelay,
		now:        time.Now,
	}
}

// Generate replaces the generated set with the canned proposals for the
// group and day type. Calling it again re-fetches the same set; it never
// touches kept proposals.
func (s *Session) Generate(groupID string, dayType DayType) []models.PlanProposal {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generated = cannedProposals(groupID, dayType)
	return copyProposals(s.generated)
}

// Generated returns the current generated set.
func (s *Session) Generated() []models.PlanProposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProposals(s.generated)
}

// Kept returns the current kept set.
func (s *Session) Kept() []models.PlanProposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyProposals(s.kept)
}

// Keep pins a generated proposal: it joins the kept set (unless already
// there, by id) and leaves the generated set. Keeping an id that is not
// generated is a no-op.
func (s *Session) Keep(proposalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.generated, proposalID)
	if idx < 0 {
		return false
	}
	p := s.generated[idx]
	s.generated = append(s.generated[:idx], s.generated[idx+1:]...)
	if indexOf(s.kept, proposalID) < 0 {
		s.kept = append(s.kept, p)
	}
	return true
}

// Unkeep removes a proposal from the kept set only. Unknown ids are a
// no-op.
func (s *Session) Unkeep(proposalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.kept, proposalID)
	if idx < 0 {
		return false
	}
	s.kept = append(s.kept[:idx], s.kept[idx+1:]...)
	return true
}

// StartAdjust opens a fresh adjustment chat for the proposal with the
// given id, replacing any chat for a different proposal. The transcript
// starts with a greeting quoting the proposal's current budget and
// highlight.
func (s *Session) StartAdjust(proposalID string) ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findProposal(proposalID)
	if !ok {
		return nil, ErrProposalNotFound
	}

	greeting := fmt.Sprintf(
		"「%s」のプランを調整しますね！\n\n現在のプラン：\n・予算：%s\n・%s\n\nどんな調整をしたいですか？",
		p.Title, p.EstimatedBudget, p.Highlight,
	)
	s.chat = &chatState{
		proposal: p,
		messages: []ChatMessage{{
			ID:      uuid.New().String(),
			Role:    RoleAssistant,
			Content: greeting,
		}},
	}
	return s.messagesLocked(), nil
}

// Messages returns the adjustment transcript so far.
func (s *Session) Messages() ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chat == nil {
		return nil, ErrNoAdjustSession
	}
	return s.messagesLocked(), nil
}

// AdjustedProposal returns the working copy the open chat is mutating.
func (s *Session) AdjustedProposal() (models.PlanProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chat == nil {
		return models.PlanProposal{}, ErrNoAdjustSession
	}
	return s.chat.proposal, nil
}

// Send appends a user message and schedules the canned reply. While a
// reply is pending further sends are rejected, so replies never overlap.
// The reply timer is single-shot and not cancelable.
func (s *Session) Send(text string) (ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chat == nil {
		return ChatMessage{}, ErrNoAdjustSession
	}
	if s.chat.replying {
		return ChatMessage{}, ErrReplyPending
	}
	if text == "" {
		return ChatMessage{}, errors.New("message must not be empty")
	}

	userMsg := ChatMessage{
		ID:      uuid.New().String(),
		Role:    RoleUser,
		Content: text,
	}
	s.chat.messages = append(s.chat.messages, userMsg)

	reply, suggestion := classify(s.chat.proposal, text)
	chat := s.chat
	deliver := func() {
		chat.messages = append(chat.messages, ChatMessage{
			ID:         uuid.New().String(),
			Role:       RoleAssistant,
			Content:    reply,
			Suggestion: suggestion,
		})
		chat.pending = suggestion
		chat.replying = false
	}

	if s.replyDelay == 0 {
		deliver()
		return userMsg, nil
	}

	s.chat.replying = true
	time.AfterFunc(s.replyDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// The session may have moved to another proposal meanwhile;
		// deliver only into the chat the message belonged to.
		if s.chat == chat {
			deliver()
		}
	})
	return userMsg, nil
}

// ApplySuggestion confirms the suggestion waiting in the open chat,
// mutating the working copy. Only the budget and highlight fields exist
// on a proposal; suggestions for other fields are acknowledged without a
// field write.
func (s *Session) ApplySuggestion() (ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chat == nil {
		return ChatMessage{}, ErrNoAdjustSession
	}
	if s.chat.replying {
		return ChatMessage{}, ErrReplyPending
	}
	sg := s.chat.pending
	if sg == nil {
		return ChatMessage{}, ErrNoSuggestion
	}

	switch sg.Field {
	case FieldBudget:
		s.chat.proposal.EstimatedBudget = sg.After
	case FieldHighlight:
		s.chat.proposal.Highlight = sg.After
	}
	s.chat.pending = nil

	confirm := ChatMessage{
		ID:      uuid.New().String(),
		Role:    RoleAssistant,
		Content: fmt.Sprintf("%sを「%s」に変更しました！\n\n他にも調整したいことがあれば教えてくださいね。", sg.Field, sg.After),
	}
	s.chat.messages = append(s.chat.messages, confirm)
	return confirm, nil
}

// KeepAdjusted pins the chat's working copy as a new kept proposal with a
// fresh id and a "（調整済み）" title suffix, then closes the chat.
func (s *Session) KeepAdjusted() (models.PlanProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chat == nil {
		return models.PlanProposal{}, ErrNoAdjustSession
	}

	adjusted := s.chat.proposal
	adjusted.ID = "adjusted-" + uuid.New().String()
	adjusted.Title += "（調整済み）"
	s.kept = append(s.kept, adjusted)
	s.chat = nil
	return adjusted, nil
}

// PlanFor builds the plan a proposal would convert into, without touching
// the session: status planning, the acting user as sole member, and a
// start date one week from today in Japan time. If the open chat is
// adjusting the proposal, the adjusted copy wins. Callers persist the
// plan first and Discard the proposal only once that succeeds, so a
// failed persist never loses the proposal. Unknown ids return ok=false.
func (s *Session) PlanFor(proposalID, groupID, actorID string) (*models.PlanItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildPlanLocked(proposalID, groupID, actorID)
}

// Discard removes a proposal from the generated and kept sets and closes
// the chat if it was adjusting it. Unknown ids are a no-op.
func (s *Session) Discard(proposalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discardLocked(proposalID)
}

// Convert is PlanFor plus Discard in one step, for callers that do not
// persist the plan anywhere.
func (s *Session) Convert(proposalID, groupID, actorID string) (*models.PlanItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, ok := s.buildPlanLocked(proposalID, groupID, actorID)
	if !ok {
		return nil, false
	}
	s.discardLocked(proposalID)
	return plan, true
}

func (s *Session) buildPlanLocked(proposalID, groupID, actorID string) (*models.PlanItem, bool) {
	var p models.PlanProposal
	found := false
	if s.chat != nil && s.chat.proposal.ID == proposalID {
		p = s.chat.proposal
		found = true
	} else if pr, ok := s.findProposal(proposalID); ok {
		p = pr
		found = true
	}
	if !found {
		return nil, false
	}

	return &models.PlanItem{
		ID:        uuid.New().String(),
		GroupID:   groupID,
		Title:     p.Title,
		DateStart: calendar.Today(s.now().AddDate(0, 0, convertDateOffsetDays)),
		Status:    models.PlanPlanning,
		Members:   []string{actorID},
		CreatedAt: s.now().Unix(),
	}, true
}

func (s *Session) discardLocked(proposalID string) bool {
	removed := false
	if s.chat != nil && s.chat.proposal.ID == proposalID {
		s.chat = nil
		removed = true
	}
	if idx := indexOf(s.kept, proposalID); idx >= 0 {
		s.kept = append(s.kept[:idx], s.kept[idx+1:]...)
		removed = true
	}
	if idx := indexOf(s.generated, proposalID); idx >= 0 {
		s.generated = append(s.generated[:idx], s.generated[idx+1:]...)
		removed = true
	}
	return removed
}

func (s *Session) findProposal(id string) (models.PlanProposal, bool) {
	if idx := indexOf(s.generated, id); idx >= 0 {
		return s.generated[idx], true
	}
	if idx := indexOf(s.kept, id); idx >= 0 {
		return s.kept[idx], true
	}
	return models.PlanProposal{}, false
}

func (s *Session) messagesLocked() []ChatMessage {
	out := make([]ChatMessage, len(s.chat.messages))
	copy(out, s.chat.messages)
	return out
}

func indexOf(proposals []models.PlanProposal, id string) int {
	for i := range proposals {
		if proposals[i].ID == id {
			return i
		}
	}
	return -1
}

func copyProposals(in []models.PlanProposal) []models.PlanProposal {
	out := make([]models.PlanProposal, len(in))
	copy(out, in)
	return out
}
