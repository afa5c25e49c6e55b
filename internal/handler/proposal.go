package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/planner"
	"github.com/ksuzuki/yaritai/internal/service"
)

// sessionHeader carries the client's proposal session id. Proposal state
// is ephemeral and scoped to this id; clients without one share "default".
const sessionHeader = "X-Session-Id"

type ProposalHandler struct {
	manager *planner.Manager
	plans   *service.PlanService
}

func NewProposalHandler(manager *planner.Manager, plans *service.PlanService) *ProposalHandler {
	return &ProposalHandler{manager: manager, plans: plans}
}

func (h *ProposalHandler) session(c *gin.Context) *planner.Session {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id = "default"
	}
	return h.manager.Session(id)
}

func abortPlanner(c *gin.Context, err error) {
	switch {
	case errors.Is(err, planner.ErrProposalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrReplyPending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrNoAdjustSession), errors.Is(err, planner.ErrNoSuggestion):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// POST /api/proposals/generate  body: {"groupId":"family","dayType":"1DAY"}
func (h *ProposalHandler) Generate(c *gin.Context) {
	var req struct {
		GroupID string `json:"groupId"`
		DayType string `json:"dayType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if !models.ValidGroupID(req.GroupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group"})
		return
	}
	if req.DayType != "" && !planner.ValidDayType(planner.DayType(req.DayType)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid day type"})
		return
	}

	proposals := h.session(c).Generate(req.GroupID, planner.DayType(req.DayType))
	c.JSON(http.StatusOK, proposals)
}

// GET /api/proposals
func (h *ProposalHandler) List(c *gin.Context) {
	s := h.session(c)
	c.JSON(http.StatusOK, gin.H{
		"generated": s.Generated(),
		"kept":      s.Kept(),
	})
}

// POST /api/proposals/:id/keep
//
// Keeping an id that is not in the generated set (already kept, already
// converted, or never generated) is a no-op, not an error.
func (h *ProposalHandler) Keep(c *gin.Context) {
	kept := h.session(c).Keep(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"kept": kept})
}

// DELETE /api/proposals/:id/keep
func (h *ProposalHandler) Unkeep(c *gin.Context) {
	removed := h.session(c).Unkeep(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// POST /api/proposals/:id/adjust
func (h *ProposalHandler) StartAdjust(c *gin.Context) {
	messages, err := h.session(c).StartAdjust(c.Param("id"))
	if err != nil {
		abortPlanner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GET /api/proposals/adjust
func (h *ProposalHandler) Adjust(c *gin.Context) {
	s := h.session(c)
	proposal, err := s.AdjustedProposal()
	if err != nil {
		abortPlanner(c, err)
		return
	}
	messages, err := s.Messages()
	if err != nil {
		abortPlanner(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposal": proposal, "messages": messages})
}

// POST /api/proposals/adjust/messages  body: {"text":"もっと安くしたい"}
func (h *ProposalHandler) Send(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.session(c).Send(req.Text)
	if err != nil {
		abortPlanner(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// POST /api/proposals/adjust/apply
func (h *ProposalHandler) ApplySuggestion(c *gin.Context) {
	msg, err := h.session(c).ApplySuggestion()
	if err != nil {
		abortPlanner(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// POST /api/proposals/adjust/keep
func (h *ProposalHandler) KeepAdjusted(c *gin.Context) {
	proposal, err := h.session(c).KeepAdjusted()
	if err != nil {
		abortPlanner(c, err)
		return
	}
	c.JSON(http.StatusOK, proposal)
}

// POST /api/proposals/:id/convert  body: {"groupId":"family","userId":"me"}
//
// Converting persists the resulting plan; the proposal itself is gone
// from the session afterwards.
func (h *ProposalHandler) Convert(c *gin.Context) {
	var req struct {
		GroupID string `json:"groupId"`
		UserID  string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.UserID == "" {
		req.UserID = "me"
	}
	if !models.ValidGroupID(req.GroupID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group"})
		return
	}

	// An absent id means the proposal was already converted or never
	// existed; both are no-ops.
	sess := h.session(c)
	plan, ok := sess.PlanFor(c.Param("id"), req.GroupID, req.UserID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"converted": false})
		return
	}

	// Persist before discarding: a failed create must leave the proposal
	// in the session.
	if err := h.plans.Create(c.Request.Context(), plan); err != nil {
		abort(c, err)
		return
	}
	sess.Discard(c.Param("id"))
	c.JSON(http.StatusCreated, plan)
}

// POST /api/proposals/reset
func (h *ProposalHandler) Reset(c *gin.Context) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id = "default"
	}
	h.manager.Reset(id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
