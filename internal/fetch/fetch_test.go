package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGet_Success(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	body, ct, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(ct, "text/html") || len(body) == 0 {
		t.Fatalf("expected html content type and body, got ct=%q len=%d", ct, len(body))
	}
	if !strings.HasPrefix(gotUA, "Mozilla/5.0") {
		t.Fatalf("expected browser-like user agent, got %q", gotUA)
	}
}

func TestGet_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	_, _, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected status code in error, got %v", err)
	}
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := &Client{Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, _, err := c.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if time.Since(start) > 400*time.Millisecond {
		t.Fatalf("timeout not enforced, took %v", time.Since(start))
	}
}

func TestGet_RejectsNonHTTPScheme(t *testing.T) {
	c := &Client{}
	_, _, err := c.Get(context.Background(), "ftp://example.org/doc.pdf")
	if err == nil {
		t.Fatal("expected scheme rejection")
	}
}

func TestGet_PDFContentTypePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4\n"))
	}))
	defer srv.Close()

	c := &Client{Timeout: 2 * time.Second}
	body, ct, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct != "application/pdf" || len(body) == 0 {
		t.Fatalf("expected pdf body, got ct=%q len=%d", ct, len(body))
	}
}

func TestIsPDF(t *testing.T) {
	cases := []struct {
		ct, url string
		want    bool
	}{
		{"application/pdf", "https://example.org/report", true},
		{"application/pdf; charset=binary", "https://example.org/report", true},
		{"text/html", "https://example.org/files/informe.PDF", true},
		{"text/html", "https://example.org/files/informe.pdf?utm=1", true},
		{"text/html", "https://example.org/article", false},
	}
	for _, tc := range cases {
		if got := IsPDF(tc.ct, tc.url); got != tc.want {
			t.Errorf("IsPDF(%q, %q) = %v, want %v", tc.ct, tc.url, got, tc.want)
		}
	}
}
