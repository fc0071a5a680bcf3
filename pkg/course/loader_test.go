package course

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/caching"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/content"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/extractor"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/fetcher"
)

const manifestJSON = `{
  "courseName": "BauMax",
  "description": "Softwaretechnik Situation 1",
  "version": "1.0",
  "institution": "HTL",
  "chapters": [
    {"id": "1.0", "title": "Einführung", "type": "intro", "duration": "10 min"},
    {"id": "1.1", "title": "Grundlagen", "type": "lesson", "duration": "5 min", "exercise": "uebung1.1.html"}
  ]
}`

// fakeSource serves canned assets and counts fetches. A gate channel per
// path lets tests hold a fetch open to provoke overlapping selections.
type fakeSource struct {
	mu    sync.Mutex
	calls map[string]int
	files map[string]string
	gates map[string]chan struct{}
}

func newFakeSource(files map[string]string) *fakeSource {
	return &fakeSource{
		calls: make(map[string]int),
		files: files,
		gates: make(map[string]chan struct{}),
	}
}

func (s *fakeSource) Fetch(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	s.calls[path]++
	body, ok := s.files[path]
	gate := s.gates[path]
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if !ok {
		return nil, &fetcher.StatusError{URL: path, StatusCode: http.StatusNotFound}
	}
	return []byte(body), nil
}

func (s *fakeSource) callCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func framed(body string) string {
	return "<head></head>" + extractor.Marker + "\n" + body + "\n" + extractor.Marker + "<footer></footer>"
}

func testFiles() map[string]string {
	return map[string]string{
		"courses/baumax/config.json":    manifestJSON,
		"github_content/seite1.0.html":  framed("<p>eins</p>"),
		"github_content/seite1.1.html":  framed("<p>zwei</p>"),
		"github_content/uebung1.1.html": framed("<p>aufgabe</p>"),
	}
}

func newTestLoader(t *testing.T, src fetcher.Source, cache *caching.Cache) *Loader {
	t.Helper()
	cf := content.NewFetcher("baumax", src, cache, true, content.DefaultFileMap(), nil)
	return NewLoader("baumax", src, cache, true, cf, nil)
}

func newTestCache(t *testing.T) *caching.Cache {
	t.Helper()
	return caching.New(caching.NewMemoryBackend(), time.Hour, nil)
}

func TestLoadConfigIsIdempotent(t *testing.T) {
	src := newFakeSource(testFiles())
	loader := newTestLoader(t, src, newTestCache(t))

	for i := 0; i < 3; i++ {
		cfg, err := loader.LoadConfig(context.Background())
		if err != nil {
			t.Fatalf("LoadConfig() failed: %v", err)
		}
		if cfg.CourseName != "BauMax" || len(cfg.Chapters) != 2 {
			t.Fatalf("unexpected manifest: %+v", cfg)
		}
	}
	if n := src.callCount("courses/baumax/config.json"); n != 1 {
		t.Errorf("manifest fetched %d times, want 1", n)
	}
}

func TestLoadConfigServesFromCacheWithoutNetwork(t *testing.T) {
	src := newFakeSource(testFiles())
	cache := newTestCache(t)

	if _, err := newTestLoader(t, src, cache).LoadConfig(context.Background()); err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	// A second loader sharing the cache must not touch the network,
	// even though the upstream manifest could have changed.
	cfg, err := newTestLoader(t, src, cache).LoadConfig(context.Background())
	if err != nil {
		t.Fatalf("LoadConfig() from cache failed: %v", err)
	}
	if cfg.CourseName != "BauMax" {
		t.Errorf("cached manifest courseName = %q, want BauMax", cfg.CourseName)
	}
	if n := src.callCount("courses/baumax/config.json"); n != 1 {
		t.Errorf("manifest fetched %d times, want 1", n)
	}
}

func TestLoadConfigFailsOnStatusError(t *testing.T) {
	src := newFakeSource(map[string]string{})
	loader := newTestLoader(t, src, newTestCache(t))

	_, err := loader.LoadConfig(context.Background())
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	var statusErr *fetcher.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error %v does not carry the HTTP status", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", statusErr.StatusCode)
	}
}

func TestSelectChapter(t *testing.T) {
	src := newFakeSource(testFiles())
	loader := newTestLoader(t, src, newTestCache(t))
	if _, err := loader.LoadConfig(context.Background()); err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	sel, err := loader.SelectChapter(context.Background(), "1.1")
	if err != nil {
		t.Fatalf("SelectChapter() failed: %v", err)
	}
	if sel.Content != "<p>zwei</p>" {
		t.Errorf("Content = %q, want extracted fragment", sel.Content)
	}
	if sel.Exercise != "<p>aufgabe</p>" {
		t.Errorf("Exercise = %q, want extracted fragment", sel.Exercise)
	}
	if sel.Superseded {
		t.Error("lone selection reported as superseded")
	}
	if got := loader.ActiveChapter(); got != "1.1" {
		t.Errorf("ActiveChapter() = %q, want 1.1", got)
	}
}

func TestSelectChapterUnknownID(t *testing.T) {
	src := newFakeSource(testFiles())
	loader := newTestLoader(t, src, newTestCache(t))
	if _, err := loader.LoadConfig(context.Background()); err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	_, err := loader.SelectChapter(context.Background(), "9.9")
	if !errors.Is(err, ErrUnknownChapter) {
		t.Errorf("SelectChapter(9.9) error = %v, want ErrUnknownChapter", err)
	}
}

func TestOverlappingSelectionsAreFenced(t *testing.T) {
	src := newFakeSource(testFiles())
	gate := make(chan struct{})
	src.gates["github_content/seite1.0.html"] = gate

	loader := newTestLoader(t, src, newTestCache(t))
	if _, err := loader.LoadConfig(context.Background()); err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	type result struct {
		sel Selection
		err error
	}
	slow := make(chan result, 1)
	go func() {
		sel, err := loader.SelectChapter(context.Background(), "1.0")
		slow <- result{sel: sel, err: err}
	}()

	// Wait until the slow selection is holding its fetch open.
	deadline := time.Now().Add(2 * time.Second)
	for src.callCount("github_content/seite1.0.html") == 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow selection never reached the source")
		}
		time.Sleep(time.Millisecond)
	}

	fast, err := loader.SelectChapter(context.Background(), "1.1")
	if err != nil {
		t.Fatalf("fast SelectChapter() failed: %v", err)
	}
	if fast.Superseded {
		t.Error("newest selection reported as superseded")
	}

	close(gate)
	got := <-slow
	if got.err != nil {
		t.Fatalf("slow SelectChapter() failed: %v", got.err)
	}
	if !got.sel.Superseded {
		t.Error("stale selection not marked superseded")
	}
	if !strings.Contains(got.sel.Content, "eins") {
		t.Errorf("stale selection content = %q, still valid for its requester", got.sel.Content)
	}
	if active := loader.ActiveChapter(); active != "1.1" {
		t.Errorf("ActiveChapter() = %q, want 1.1 (stale response must not win)", active)
	}
}
