// Package ogp fetches Open Graph metadata from external pages so stocked
// links get a title and preview image.
package ogp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const defaultUserAgent = "Mozilla/5.0 (compatible; YaritaiBot/1.0)"

// Metadata is the subset of Open Graph tags the app cares about.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	SiteName    string `json:"siteName"`
	URL         string `json:"url"`
}

// Client fetches and parses page metadata.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a Client with the given request timeout. An empty
// userAgent falls back to the bot default.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Fetch downloads pageURL and extracts its metadata. og: tags win, then
// name= meta tags, then the <title> element. URL always falls back to the
// input so callers can echo it without checking.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch page: status %d", resp.StatusCode)
	}

	meta := parse(resp.Body)
	if meta.URL == "" {
		meta.URL = pageURL
	}
	return meta, nil
}

// parse walks the token stream instead of building a full tree; metadata
// lives in <head> and a walk stops as soon as <body> starts.
func parse(r io.Reader) *Metadata {
	meta := &Metadata{}
	var fallbackTitle, fallbackDesc string

	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return finish(meta, fallbackTitle, fallbackDesc)
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.Data {
			case "meta":
				applyMeta(meta, tok.Attr, &fallbackDesc)
			case "title":
				if z.Next() == html.TextToken {
					fallbackTitle = strings.TrimSpace(string(z.Text()))
				}
			case "body":
				return finish(meta, fallbackTitle, fallbackDesc)
			}
		}
	}
}

func applyMeta(meta *Metadata, attrs []html.Attribute, fallbackDesc *string) {
	var property, name, content string
	for _, a := range attrs {
		switch a.Key {
		case "property":
			property = a.Val
		case "name":
			name = a.Val
		case "content":
			content = a.Val
		}
	}
	if content == "" {
		return
	}

	switch property {
	case "og:title":
		meta.Title = content
	case "og:description":
		meta.Description = content
	case "og:image":
		meta.Image = content
	case "og:site_name":
		meta.SiteName = content
	case "og:url":
		meta.URL = content
	}
	if name == "description" {
		*fallbackDesc = content
	}
}

func finish(meta *Metadata, fallbackTitle, fallbackDesc string) *Metadata {
	if meta.Title == "" {
		meta.Title = fallbackTitle
	}
	if meta.Description == "" {
		meta.Description = fallbackDesc
	}
	return meta
}
