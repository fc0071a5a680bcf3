// Package content fetches chapter and exercise fragments from the asset
// store, with cache lookups in front of every network round trip.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/models"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/caching"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/extractor"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/fetcher"
)

// Fetcher retrieves chapter fragments. Its public methods never fail:
// chapter errors degrade to an inline error block, exercise errors to an
// empty string.
type Fetcher struct {
	courseID     string
	source       fetcher.Source
	cache        *caching.Cache
	cacheEnabled bool
	files        FileMap
	logger       *slog.Logger
}

// NewFetcher creates a content Fetcher for one course.
func NewFetcher(courseID string, source fetcher.Source, cache *caching.Cache, cacheEnabled bool, files FileMap, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if files == nil {
		files = DefaultFileMap()
	}
	return &Fetcher{
		courseID:     courseID,
		source:       source,
		cache:        cache,
		cacheEnabled: cacheEnabled,
		files:        files,
		logger:       logger,
	}
}

// FetchChapterContent returns the chapter fragment. The caller always
// receives a displayable string; unmapped ids and fetch failures come
// back as an inline error block.
func (f *Fetcher) FetchChapterContent(ctx context.Context, ch models.Chapter) string {
	fragment, err := f.chapterHTML(ctx, ch)
	if err != nil {
		f.logger.Warn("chapter fetch failed", "chapter", ch.ID, "error", err)
		return ErrorFragment(ch.ID, err)
	}
	return fragment
}

func (f *Fetcher) chapterHTML(ctx context.Context, ch models.Chapter) (string, error) {
	key := caching.ChapterKey(f.courseID, ch.ID)
	if fragment, ok := f.cached(key); ok {
		return fragment, nil
	}

	name, err := f.files.Resolve(ch.ID)
	if err != nil {
		return "", err
	}

	body, err := f.source.Fetch(ctx, "github_content/"+name)
	if err != nil {
		return "", err
	}

	fragment := extractor.Extract(string(body))
	if f.cacheEnabled {
		f.cache.Set(key, fragment)
	}
	return fragment, nil
}

// FetchExerciseContent returns the exercise fragment for chapters that
// declare one. Exercises are optional enhancements: any failure yields
// the empty string and never blocks the chapter display.
func (f *Fetcher) FetchExerciseContent(ctx context.Context, ch models.Chapter) string {
	if !ch.HasExercise() {
		return ""
	}

	key := caching.ExerciseKey(f.courseID, ch.ID)
	if fragment, ok := f.cached(key); ok {
		return fragment
	}

	body, err := f.source.Fetch(ctx, "github_content/"+ch.Exercise)
	if err != nil {
		f.logger.Warn("exercise fetch failed", "chapter", ch.ID, "error", err)
		return ""
	}

	fragment := extractor.Extract(string(body))
	if f.cacheEnabled {
		f.cache.Set(key, fragment)
	}
	return fragment
}

// CachedChapter returns the cached fragment for a chapter without
// touching the network. Used for previews, which must stay cheap.
func (f *Fetcher) CachedChapter(ch models.Chapter) (string, bool) {
	return f.cached(caching.ChapterKey(f.courseID, ch.ID))
}

func (f *Fetcher) cached(key string) (string, bool) {
	if !f.cacheEnabled {
		return "", false
	}
	raw, ok := f.cache.Get(key)
	if !ok {
		return "", false
	}
	var fragment string
	if err := json.Unmarshal(raw, &fragment); err != nil {
		f.logger.Warn("unexpected cache payload", "key", key, "error", err)
		return "", false
	}
	return fragment, true
}

// ErrorFragment is the inline error block shown in place of a chapter
// that could not be loaded. The block speaks to the reader; the
// underlying error goes to the log, not into the page.
func ErrorFragment(chapterID string, err error) string {
	return fmt.Sprintf(`<div class="kapitel-fehler">
  <h3>&#9888; Kapitel %s konnte nicht geladen werden</h3>
  <p>%s</p>
  <p><a href="" onclick="location.reload(); return false;">Seite neu laden</a></p>
</div>`, html.EscapeString(chapterID), errorMessage(err))
}

func errorMessage(err error) string {
	var unmapped *UnmappedChapterError
	if errors.As(err, &unmapped) {
		return "F&uuml;r dieses Kapitel ist kein Inhalt hinterlegt."
	}
	var status *fetcher.StatusError
	if errors.As(err, &status) && status.StatusCode == http.StatusNotFound {
		return "Der Kapitelinhalt wurde nicht gefunden."
	}
	return "Der Inhalt ist zurzeit nicht verf&uuml;gbar. Bitte versuchen Sie es sp&auml;ter erneut."
}
