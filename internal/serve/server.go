// Package serve hosts the course viewer over HTTP.
package serve

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/models"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/caching"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/content"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/course"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/detector"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/links"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/preview"
	"github.com/andrkelb-school/SW-Situation-1-BauMax/pkg/renderer"
)

// Server renders the course viewer. One Loader instance backs every
// request; the manifest is loaded once and reused.
type Server struct {
	router   chi.Router
	loader   *course.Loader
	cache    *caching.Cache
	renderer *renderer.Renderer
	detector *detector.Detector
	logger   *slog.Logger
	strip    bool
}

// NewServer creates and configures the HTTP server.
func NewServer(loader *course.Loader, cache *caching.Cache, rend *renderer.Renderer, logger *slog.Logger, stripScripts bool) *Server {
	s := &Server{
		loader:   loader,
		cache:    cache,
		renderer: rend,
		detector: detector.New(),
		logger:   logger,
		strip:    stripScripts,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleCourse)
	r.Get("/kapitel/{id}", s.handleCourse)
	r.Post("/cache/clear", s.handleCacheClear)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleCourse renders the full course page with the requested chapter
// active. Without an id the first manifest chapter is shown.
func (s *Server) handleCourse(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.loader.LoadConfig(r.Context())
	if err != nil {
		s.logger.Error("manifest load failed", "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		_ = s.renderer.WriteErrorPage(w, "Das Kursverzeichnis ist zurzeit nicht erreichbar.")
		return
	}

	// Chapter links are relative "?kapitel=" hrefs and keep the current
	// path, so from /kapitel/{id} pages the query carries the newer
	// selection. The query wins over the path param.
	id := r.URL.Query().Get("kapitel")
	if id == "" {
		id = chi.URLParam(r, "id")
	}
	if id == "" && len(cfg.Chapters) > 0 {
		id = cfg.Chapters[0].ID
	}

	status := http.StatusOK
	var active *renderer.ChapterView
	if id != "" {
		active, status = s.chapterView(r, id)
	}

	data := renderer.PageData{
		Course:       cfg,
		TOC:          renderer.BuildTOC(cfg, id, s.previews(cfg)),
		TotalMinutes: course.TotalMinutes(cfg.Chapters),
		Active:       active,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.renderer.WritePage(w, data); err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

func (s *Server) chapterView(r *http.Request, id string) (*renderer.ChapterView, int) {
	sel, err := s.loader.SelectChapter(r.Context(), id)
	if err != nil {
		if !errors.Is(err, course.ErrUnknownChapter) {
			s.logger.Error("chapter selection failed", "chapter", id, "error", err)
		}
		view := &renderer.ChapterView{
			Chapter:   models.Chapter{ID: id, Title: "Unbekanntes Kapitel"},
			TypeLabel: renderer.TypeLabel(""),
			Content:   template.HTML(content.ErrorFragment(id, err)),
		}
		return view, http.StatusNotFound
	}

	body := links.Process(sel.Content, links.Options{StripScripts: s.strip})
	exercise := links.Process(sel.Exercise, links.Options{StripScripts: s.strip})
	lang := s.detector.Code(preview.Excerpt(sel.Content), "de")

	return &renderer.ChapterView{
		Chapter:   sel.Chapter,
		TypeLabel: renderer.TypeLabel(sel.Chapter.Type),
		Lang:      lang,
		Content:   template.HTML(body),
		Exercise:  template.HTML(exercise),
	}, http.StatusOK
}

// previews builds TOC tooltips from cached fragments only. Chapters not
// yet in the cache simply get no preview; no network calls here.
func (s *Server) previews(cfg *models.CourseConfig) map[string]string {
	out := make(map[string]string, len(cfg.Chapters))
	for _, ch := range cfg.Chapters {
		if fragment, ok := s.loader.Content().CachedChapter(ch); ok {
			if text := preview.Excerpt(fragment); text != "" {
				out[ch.ID] = text
			}
		}
	}
	return out
}

// handleCacheClear drops every entry of the current cache version and
// sends the client back to a fresh page load.
func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	removed := s.cache.Clear()
	s.logger.Info("cache cleared", "removed", removed)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RequestLogger logs incoming requests.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
