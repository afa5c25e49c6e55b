package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ksuzuki/yaritai/internal/share"
)

// ShareHandler receives Web Share Target requests from the installed PWA
// and bounces them to the frontend with the extracted link.
type ShareHandler struct{}

func NewShareHandler() *ShareHandler {
	return &ShareHandler{}
}

// POST /share (form-encoded) and GET /share (query params).
//
// Redirects to /?shared=true&url=...&title=... so the frontend opens its
// stock-creation sheet pre-filled. A payload without any link still
// redirects; the sheet then starts from the title text alone.
func (h *ShareHandler) Receive(c *gin.Context) {
	var payload share.Payload
	if c.Request.Method == http.MethodPost {
		payload = share.Payload{
			URL:   c.PostForm("url"),
			Text:  c.PostForm("text"),
			Title: c.PostForm("title"),
		}
	} else {
		payload = share.Payload{
			URL:   c.Query("url"),
			Text:  c.Query("text"),
			Title: c.Query("title"),
		}
	}

	q := url.Values{}
	q.Set("shared", "true")
	if link := share.ExtractURL(payload); link != "" {
		q.Set("url", link)
	}
	if payload.Title != "" {
		q.Set("title", payload.Title)
	}

	c.Redirect(http.StatusSeeOther, "/?"+q.Encode())
}
