package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/service"
)

type PlanHandler struct {
	svc *service.PlanService
}

func NewPlanHandler(svc *service.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// POST /api/plans
func (h *PlanHandler) Create(c *gin.Context) {
	var plan models.PlanItem
	if err := c.ShouldBindJSON(&plan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.svc.Create(c.Request.Context(), &plan); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// GET /api/plans?group=
func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.svc.List(c.Request.Context(), c.Query("group"))
	if err != nil {
		abort(c, err)
		return
	}
	if plans == nil {
		plans = []models.PlanItem{}
	}
	c.JSON(http.StatusOK, plans)
}

// GET /api/plans/:id
func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// POST /api/plans/:id/confirm
func (h *PlanHandler) Confirm(c *gin.Context) {
	plan, err := h.svc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
