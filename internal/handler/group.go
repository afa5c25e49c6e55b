package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ksuzuki/yaritai/internal/calendar"
	"github.com/ksuzuki/yaritai/internal/service"
	"github.com/ksuzuki/yaritai/internal/storage"
)

type GroupHandler struct {
	store storage.Store
	avail *service.AvailabilityService
}

func NewGroupHandler(store storage.Store, avail *service.AvailabilityService) *GroupHandler {
	return &GroupHandler{store: store, avail: avail}
}

// GET /api/groups
func (h *GroupHandler) List(c *gin.Context) {
	groups, err := h.store.ListGroups(c.Request.Context())
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GET /api/groups/:id
func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.store.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

// POST /api/groups/:id/availability  body: {"userId":"me","date":"2024-08-10"}
func (h *GroupHandler) ToggleAvailability(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
		Date   string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.UserID == "" {
		req.UserID = "me"
	}

	available, err := h.avail.Toggle(c.Request.Context(), c.Param("id"), req.UserID, req.Date)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// GET /api/groups/:id/calendar?year=2024&month=8&delta=0&user=me
//
// year and month default to the current month in Japan time; delta shifts
// the result by whole months for prev/next navigation.
func (h *GroupHandler) Calendar(c *gin.Context) {
	curYear, curMonth := calendar.CurrentMonth(time.Now())
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(curYear)))
	monthNum, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(curMonth))))
	delta, _ := strconv.Atoi(c.DefaultQuery("delta", "0"))
	if monthNum < 1 || monthNum > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
		return
	}
	viewerID := c.DefaultQuery("user", "me")

	view, err := h.avail.Month(c.Request.Context(), c.Param("id"), viewerID, year, time.Month(monthNum), delta)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
