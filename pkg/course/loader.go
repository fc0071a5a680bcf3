// Package course loads the course manifest and coordinates chapter
// selection on top of the cache.
package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/models"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/caching"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/content"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/fetcher"
)

// ErrUnknownChapter reports a chapter id that is not in the manifest.
var ErrUnknownChapter = errors.New("chapter not in manifest")

// Loader owns the per-session state: the manifest, the active chapter
// and the cache wiring. One Loader lives for the whole process.
type Loader struct {
	courseID     string
	source       fetcher.Source
	cache        *caching.Cache
	cacheEnabled bool
	content      *content.Fetcher
	logger       *slog.Logger

	gen atomic.Uint64 // selection generation, fences overlapping loads

	mu     sync.Mutex
	config *models.CourseConfig
	active string
}

// NewLoader creates a Loader. The content fetcher must be configured for
// the same course id and cache.
func NewLoader(courseID string, source fetcher.Source, cache *caching.Cache, cacheEnabled bool, cf *content.Fetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{
		courseID:     courseID,
		source:       source,
		cache:        cache,
		cacheEnabled: cacheEnabled,
		content:      cf,
		logger:       logger,
	}
}

// LoadConfig returns the course manifest. The first call resolves it
// from the cache or the network; later calls return the same manifest.
// A cache hit makes no network request, even if the manifest changed
// upstream: the staleness window is the full cache TTL. Fetch and parse
// failures are fatal for initialization.
func (l *Loader) LoadConfig(ctx context.Context) (*models.CourseConfig, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.config != nil {
		return l.config, nil
	}

	key := caching.ConfigKey(l.courseID)
	if l.cacheEnabled {
		if raw, ok := l.cache.Get(key); ok {
			var cfg models.CourseConfig
			if err := json.Unmarshal(raw, &cfg); err == nil {
				l.config = &cfg
				return l.config, nil
			}
			l.logger.Warn("cached manifest unreadable, refetching", "key", key)
		}
	}

	body, err := l.source.Fetch(ctx, fmt.Sprintf("courses/%s/config.json", l.courseID))
	if err != nil {
		return nil, fmt.Errorf("failed to load course manifest: %w", err)
	}

	var cfg models.CourseConfig
	if err := json.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse course manifest: %w", err)
	}

	if l.cacheEnabled {
		// Stored verbatim, not re-marshalled.
		l.cache.Set(key, json.RawMessage(body))
	}

	l.config = &cfg
	return l.config, nil
}

// Config returns the loaded manifest, nil before LoadConfig succeeded.
func (l *Loader) Config() *models.CourseConfig {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.config
}

// ActiveChapter returns the id of the most recently selected chapter.
func (l *Loader) ActiveChapter() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Chapter finds a manifest chapter by id.
func (l *Loader) Chapter(id string) (models.Chapter, error) {
	l.mu.Lock()
	cfg := l.config
	l.mu.Unlock()
	if cfg == nil {
		return models.Chapter{}, ErrUnknownChapter
	}
	for _, ch := range cfg.Chapters {
		if ch.ID == id {
			return ch, nil
		}
	}
	return models.Chapter{}, fmt.Errorf("%w: %s", ErrUnknownChapter, id)
}

// Selection is the outcome of a chapter selection. Content is always
// displayable; fetch failures arrive as an inline error block.
type Selection struct {
	Chapter  models.Chapter
	Content  string
	Exercise string

	// Superseded is set when a newer selection was started while this
	// one was in flight. The content is still valid for the requester,
	// but the active-chapter highlight belongs to the newer selection.
	Superseded bool
}

// SelectChapter fetches a chapter (and its optional exercise) and makes
// it the active chapter, unless a competing selection overtook the fetch.
// Overlapping calls are fenced with a generation counter so a slow
// response cannot clobber the highlight of a later choice.
func (l *Loader) SelectChapter(ctx context.Context, id string) (Selection, error) {
	ch, err := l.Chapter(id)
	if err != nil {
		return Selection{}, err
	}

	gen := l.gen.Add(1)

	sel := Selection{
		Chapter:  ch,
		Content:  l.content.FetchChapterContent(ctx, ch),
		Exercise: l.content.FetchExerciseContent(ctx, ch),
	}

	l.mu.Lock()
	if gen == l.gen.Load() {
		l.active = ch.ID
	} else {
		sel.Superseded = true
	}
	l.mu.Unlock()

	return sel, nil
}

// Content exposes the content fetcher, for preview generation.
func (l *Loader) Content() *content.Fetcher {
	return l.content
}
