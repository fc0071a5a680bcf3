// Package caching provides the versioned, TTL'd key-value cache that
// backs manifest and chapter lookups.
package caching

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// Version namespaces every physical key. Bumping it orphans entries
// written by incompatible prior cache formats instead of misreading them.
const Version = "v2"

// Backend is the raw key-value store underneath the cache.
// Implementations must tolerate concurrent use from HTTP handlers.
type Backend interface {
	Load(key string) ([]byte, bool, error)
	Store(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
}

// envelope wraps a cached payload with its write time.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // epoch millis
}

// Cache is a TTL cache over a Backend. Backend and decode failures are
// swallowed: Get degrades to a miss and Set to a no-op, never an error
// for the caller.
type Cache struct {
	backend Backend
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a Cache with the given backend and TTL. An entry older
// than ttl at read time is treated as absent and deleted.
func New(backend Backend, ttl time.Duration, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cache{
		backend: backend,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// ConfigKey returns the logical key for a course manifest.
func ConfigKey(courseID string) string {
	return fmt.Sprintf("course_config_%s", courseID)
}

// ChapterKey returns the logical key for a chapter fragment.
func ChapterKey(courseID, chapterID string) string {
	return fmt.Sprintf("chapter_%s_%s", courseID, chapterID)
}

// ExerciseKey returns the logical key for an exercise fragment.
func ExerciseKey(courseID, chapterID string) string {
	return fmt.Sprintf("exercise_%s_%s", courseID, chapterID)
}

func physicalKey(logical string) string {
	return Version + "_" + logical
}

// Get retrieves the payload stored under the logical key. It returns the
// payload and true on a fresh hit. Stale and malformed entries are
// deleted and reported as a miss.
func (c *Cache) Get(logical string) (json.RawMessage, bool) {
	key := physicalKey(logical)

	raw, ok, err := c.backend.Load(key)
	if err != nil {
		c.logger.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		c.logger.Warn("corrupt cache entry, dropping", "key", key, "error", err)
		c.drop(key)
		return nil, false
	}

	age := c.now().UnixMilli() - env.Timestamp
	if age > c.ttl.Milliseconds() {
		c.drop(key)
		return nil, false
	}

	return env.Data, true
}

// Set stores the payload under the logical key, stamped with the current
// time. Existing entries are overwritten silently.
func (c *Cache) Set(logical string, data any) {
	key := physicalKey(logical)

	payload, err := json.Marshal(data)
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	raw, err := json.Marshal(envelope{Data: payload, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Warn("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.backend.Store(key, raw); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

// Clear removes every entry of the current cache version and returns the
// number of entries removed. Entries of other versions are left alone.
func (c *Cache) Clear() int {
	keys, err := c.backend.Keys()
	if err != nil {
		c.logger.Warn("cache enumeration failed", "error", err)
		return 0
	}
	removed := 0
	for _, key := range keys {
		if strings.HasPrefix(key, Version+"_") {
			c.drop(key)
			removed++
		}
	}
	return removed
}

// Keys returns the physical keys of the current cache version.
func (c *Cache) Keys() []string {
	keys, err := c.backend.Keys()
	if err != nil {
		c.logger.Warn("cache enumeration failed", "error", err)
		return nil
	}
	var out []string
	for _, key := range keys {
		if strings.HasPrefix(key, Version+"_") {
			out = append(out, key)
		}
	}
	return out
}

func (c *Cache) drop(key string) {
	if err := c.backend.Delete(key); err != nil {
		c.logger.Warn("cache delete failed", "key", key, "error", err)
	}
}
