package scrape_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wishloop/models"
	"wishloop/services/scrape"
)

const productPage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="Noise Cancelling Headphones" />
<meta property="og:description" content="Over-ear, 30h battery." />
<meta property="og:image" content="https://cdn.example.com/headphones.jpg" />
<meta property="og:site_name" content="Example Shop" />
<meta property="og:price:amount" content="199.99" />
<meta property="og:price:currency" content="USD" />
</head>
<body><h1>Headphones</h1></body>
</html>`

func TestFetchExtractsOpenGraphMeta(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(productPage))
	}))
	defer srv.Close()

	svc := scrape.NewService(srv.Client())
	meta, err := svc.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	if meta.Title != "Noise Cancelling Headphones" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.Description != "Over-ear, 30h battery." {
		t.Fatalf("unexpected description %q", meta.Description)
	}
	if meta.ImageURL != "https://cdn.example.com/headphones.jpg" {
		t.Fatalf("unexpected image %q", meta.ImageURL)
	}
	if meta.SiteName != "Example Shop" {
		t.Fatalf("unexpected site name %q", meta.SiteName)
	}
	if meta.Price != "$199.99" {
		t.Fatalf("unexpected price %q", meta.Price)
	}
}

func TestFetchFallsBackToTitleTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Plain Page</title></head><body></body></html>`))
	}))
	defer srv.Close()

	svc := scrape.NewService(srv.Client())
	meta, err := svc.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if meta.Title != "Plain Page" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.Price != "" {
		t.Fatalf("expected no price, got %q", meta.Price)
	}
}

func TestFetchRejectsInvalidURL(t *testing.T) {
	svc := scrape.NewService(nil)
	for _, raw := range []string{"", "not a url", "ftp://example.com/file", "javascript:alert(1)"} {
		if _, err := svc.Fetch(context.Background(), raw); !errors.Is(err, models.ErrInvalidState) {
			t.Fatalf("Fetch(%q): expected invalid state error, got %v", raw, err)
		}
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := scrape.NewService(srv.Client())
	if _, err := svc.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected an error on 404")
	}
	if hits != 1 {
		t.Fatalf("expected a single request for a client error, got %d", hits)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 2 {
			http.Error(w, "flaky", http.StatusBadGateway)
			return
		}
		w.Write([]byte(`<html><head><title>Recovered</title></head></html>`))
	}))
	defer srv.Close()

	svc := scrape.NewService(srv.Client())
	meta, err := svc.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if meta.Title != "Recovered" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if hits != 2 {
		t.Fatalf("expected one retry, got %d requests", hits)
	}
}
