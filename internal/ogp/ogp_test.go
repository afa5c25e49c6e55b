package ogp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetch(t *testing.T) {
	client := NewClient(5*time.Second, "")
	ctx := context.Background()

	t.Run("og tags win", func(t *testing.T) {
		server := servePage(t, `<html><head>
			<title>Page Title</title>
			<meta name="description" content="plain description">
			<meta property="og:title" content="箱根の日帰り温泉5選">
			<meta property="og:description" content="OG description">
			<meta property="og:image" content="https://example.com/hero.jpg">
			<meta property="og:site_name" content="Travel Mag">
			<meta property="og:url" content="https://example.com/canonical">
		</head><body></body></html>`)

		meta, err := client.Fetch(ctx, server.URL)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if meta.Title != "箱根の日帰り温泉5選" {
			t.Errorf("title = %q", meta.Title)
		}
		if meta.Description != "OG description" {
			t.Errorf("description = %q", meta.Description)
		}
		if meta.Image != "https://example.com/hero.jpg" {
			t.Errorf("image = %q", meta.Image)
		}
		if meta.SiteName != "Travel Mag" {
			t.Errorf("siteName = %q", meta.SiteName)
		}
		if meta.URL != "https://example.com/canonical" {
			t.Errorf("url = %q", meta.URL)
		}
	})

	t.Run("falls back to name meta and title element", func(t *testing.T) {
		server := servePage(t, `<html><head>
			<title>  Fallback Title  </title>
			<meta name="description" content="name description">
		</head><body></body></html>`)

		meta, err := client.Fetch(ctx, server.URL)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if meta.Title != "Fallback Title" {
			t.Errorf("title = %q, want trimmed <title> text", meta.Title)
		}
		if meta.Description != "name description" {
			t.Errorf("description = %q", meta.Description)
		}
		if meta.URL != server.URL {
			t.Errorf("url = %q, want input URL", meta.URL)
		}
	})

	t.Run("empty page yields empty metadata", func(t *testing.T) {
		server := servePage(t, `<html><head></head><body><p>no tags</p></body></html>`)

		meta, err := client.Fetch(ctx, server.URL)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if meta.Title != "" || meta.Image != "" {
			t.Errorf("meta = %+v, want empty fields", meta)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		t.Cleanup(server.Close)

		if _, err := client.Fetch(ctx, server.URL); err == nil {
			t.Error("expected error for 404 response")
		}
	})

	t.Run("sends bot user agent", func(t *testing.T) {
		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			w.Write([]byte("<html></html>"))
		}))
		t.Cleanup(server.Close)

		if _, err := client.Fetch(ctx, server.URL); err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if gotUA != defaultUserAgent {
			t.Errorf("user agent = %q", gotUA)
		}
	})
}
