package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPSourceFetch(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r.Clone(context.Background())
		w.Write([]byte("<p>antwort</p>"))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL + "/")
	body, err := src.Fetch(context.Background(), "/github_content/seite1.0.html")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if string(body) != "<p>antwort</p>" {
		t.Errorf("Fetch() = %q", body)
	}

	if gotReq.URL.Path != "/github_content/seite1.0.html" {
		t.Errorf("request path = %q", gotReq.URL.Path)
	}
	if gotReq.URL.Query().Get("t") == "" {
		t.Error("cache-busting query parameter missing")
	}
	if gotReq.Header.Get("Cache-Control") != "no-cache" {
		t.Error("no-cache header missing")
	}
}

func TestHTTPSourceStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "weg", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background(), "fehlt.html")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch() error = %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestFileSourceFetch(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "github_content")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "seite1.0.html"), []byte("lokal"), 0644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(dir)
	body, err := src.Fetch(context.Background(), "github_content/seite1.0.html")
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if string(body) != "lokal" {
		t.Errorf("Fetch() = %q", body)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	src := NewFileSource(t.TempDir())

	_, err := src.Fetch(context.Background(), "github_content/fehlt.html")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch() error = %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestForBase(t *testing.T) {
	if _, ok := ForBase("https://example.com", "").(*HTTPSource); !ok {
		t.Error("non-empty base URL must yield an HTTPSource")
	}
	if _, ok := ForBase("", "assets").(*FileSource); !ok {
		t.Error("empty base URL must yield a FileSource")
	}
}
