package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ksuzuki/yaritai/internal/ogp"
)

type OGPHandler struct {
	client *ogp.Client
}

func NewOGPHandler(client *ogp.Client) *OGPHandler {
	return &OGPHandler{client: client}
}

// GET /api/ogp?url=https://...
//
// Fetch failures are the upstream page's fault as often as ours, but the
// client only needs to know the metadata is unavailable.
func (h *OGPHandler) Fetch(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	meta, err := h.client.Fetch(c.Request.Context(), pageURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch metadata"})
		return
	}
	c.JSON(http.StatusOK, meta)
}
