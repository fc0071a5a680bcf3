// Package common wires the shared runtime pieces (config, logger, cache
// store, loader) for the CLI commands.
package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/models"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/caching"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/content"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/course"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/fetcher"
)

// Env bundles everything a command needs at runtime.
type Env struct {
	Cfg    *models.LoaderConfig
	Logger *slog.Logger
	Cache  *caching.Cache
	Loader *course.Loader

	closer io.Closer
}

// NewLogger builds the process logger; quiet limits it to errors.
func NewLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Setup builds the Env from the config file, with CLI flags overriding
// individual keys.
func Setup(c *cli.Context) (*Env, error) {
	logger := NewLogger(c.Bool("quiet"))

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("course") {
		cfg.CourseID = c.String("course")
	}
	if c.IsSet("listen") {
		cfg.Listen = c.String("listen")
	}
	if c.IsSet("assets-dir") {
		cfg.AssetsDir = c.String("assets-dir")
	}
	if c.Bool("no-cache") {
		off := false
		cfg.CacheEnabled = &off
	}

	backend, closer := openBackend(c.String("cache-db"), logger)
	cache := caching.New(backend, cfg.CacheTTL(), logger)

	source := fetcher.ForBase(cfg.ResolveBaseURL(cfg.Listen), cfg.AssetsDir)

	files := content.DefaultFileMap()
	if cfg.ChapterMap != "" {
		files, err = content.LoadFileMap(cfg.ChapterMap)
		if err != nil {
			return nil, fmt.Errorf("failed to load chapter map: %w", err)
		}
	}

	cf := content.NewFetcher(cfg.CourseID, source, cache, cfg.CacheIsEnabled(), files, logger)
	loader := course.NewLoader(cfg.CourseID, source, cache, cfg.CacheIsEnabled(), cf, logger)

	return &Env{
		Cfg:    cfg,
		Logger: logger,
		Cache:  cache,
		Loader: loader,
		closer: closer,
	}, nil
}

// openBackend opens the persistent cache store, falling back to an
// in-memory store when the database is unavailable. Cache trouble is
// never fatal.
func openBackend(path string, logger *slog.Logger) (caching.Backend, io.Closer) {
	if path == "" {
		path = caching.DefaultDBName
	}
	backend, err := caching.OpenSQLite(path)
	if err != nil {
		logger.Warn("cache database unavailable, using in-memory cache", "path", path, "error", err)
		return caching.NewMemoryBackend(), nil
	}
	return backend, backend
}

// Close releases the cache backend.
func (e *Env) Close() {
	if e.closer != nil {
		_ = e.closer.Close()
	}
}
