package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksuzuki/yaritai/internal/feed"
	"github.com/ksuzuki/yaritai/internal/models"
	"github.com/ksuzuki/yaritai/internal/service"
	"github.com/ksuzuki/yaritai/internal/storage"
)

type StockHandler struct {
	svc *service.StockService
}

func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// POST /api/stocks
func (h *StockHandler) Create(c *gin.Context) {
	var req struct {
		UserID   string `json:"userId"`
		Title    string `json:"title"`
		URL      string `json:"url"`
		ImageURL string `json:"imageUrl"`
		Category string `json:"category"`
		Location string `json:"location"`
		Note     string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.UserID == "" {
		req.UserID = "me"
	}

	stock := &models.StockItem{
		UserID:   req.UserID,
		Title:    req.Title,
		URL:      req.URL,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Location: req.Location,
		Note:     req.Note,
	}
	if err := h.svc.Create(c.Request.Context(), stock); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, stock)
}

// GET /api/stocks?group=&category=&sort=
func (h *StockHandler) List(c *gin.Context) {
	mode := feed.SortMode(c.DefaultQuery("sort", string(feed.SortNewest)))
	stocks, err := h.svc.List(c.Request.Context(), c.Query("group"), c.Query("category"), mode)
	if err != nil {
		abort(c, err)
		return
	}
	if stocks == nil {
		stocks = []models.StockItem{}
	}
	c.JSON(http.StatusOK, stocks)
}

// GET /api/stocks/:id
func (h *StockHandler) Get(c *gin.Context) {
	stock, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// PATCH /api/stocks/:id
func (h *StockHandler) Update(c *gin.Context) {
	var upd storage.StockUpdate
	var req struct {
		Title    *string `json:"title"`
		URL      *string `json:"url"`
		ImageURL *string `json:"imageUrl"`
		Category *string `json:"category"`
		Location *string `json:"location"`
		Note     *string `json:"note"`
		Status   *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	upd = storage.StockUpdate(req)

	stock, err := h.svc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// DELETE /api/stocks/:id
func (h *StockHandler) Delete(c *gin.Context) {
	if err := h.svc.Archive(c.Request.Context(), c.Param("id")); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/stocks/:id/share  body: {"groupId":"family"}
func (h *StockHandler) Share(c *gin.Context) {
	var req struct {
		GroupID string `json:"groupId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.svc.Share(c.Request.Context(), c.Param("id"), req.GroupID); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/stocks/:id/reaction  body: {"userId":"me"}
func (h *StockHandler) React(c *gin.Context) {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	stock, err := h.svc.React(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// POST /api/stocks/:id/read
func (h *StockHandler) MarkRead(c *gin.Context) {
	if err := h.svc.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/home?group=
func (h *StockHandler) Home(c *gin.Context) {
	home, err := h.svc.Home(c.Request.Context(), c.Query("group"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, home)
}
