// Package renderer materializes the manifest and chapter fragments into
// HTML pages. Presentation only; fetch and cache logic live elsewhere.
package renderer

import (
	"html/template"
	"io"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/models"
)

// TOCEntry is one rendered row of the table of contents.
type TOCEntry struct {
	Chapter models.Chapter
	Icon    string
	Active  bool
	Preview string // tooltip text, may be empty
	Href    string
}

// ChapterView is the content pane for the active chapter. Content and
// Exercise are raw fragment HTML from the controlled course source and
// are injected as-is.
type ChapterView struct {
	Chapter   models.Chapter
	TypeLabel string
	Lang      string
	Content   template.HTML
	Exercise  template.HTML
}

// PageData feeds the full-page template.
type PageData struct {
	Course       *models.CourseConfig
	ContainerID  string
	TOC          []TOCEntry
	TotalMinutes int
	Active       *ChapterView
}

// Renderer renders course pages from pre-parsed templates.
type Renderer struct {
	page      *template.Template
	errorPage *template.Template
	container string
}

// New creates a Renderer. container is the id of the mount element the
// page content is wrapped in.
func New(container string) *Renderer {
	if container == "" {
		container = models.DefaultContainer
	}
	return &Renderer{
		page:      template.Must(template.New("page").Parse(pageTemplate)),
		errorPage: template.Must(template.New("error").Parse(errorTemplate)),
		container: container,
	}
}

// Icon returns the TOC icon for a chapter type.
func Icon(chapterType string) string {
	if chapterType == models.ChapterTypeIntro {
		return "\U0001F4D6" // open book
	}
	return "\U0001F4C4" // page
}

// TypeLabel returns the human-readable chapter type label.
func TypeLabel(chapterType string) string {
	if chapterType == models.ChapterTypeIntro {
		return "Einführung"
	}
	return "Lektion"
}

// BuildTOC builds the TOC rows in manifest order. Every entry is
// restyled on each call; the one matching activeID gets the highlight.
func BuildTOC(cfg *models.CourseConfig, activeID string, previews map[string]string) []TOCEntry {
	entries := make([]TOCEntry, 0, len(cfg.Chapters))
	for _, ch := range cfg.Chapters {
		entries = append(entries, TOCEntry{
			Chapter: ch,
			Icon:    Icon(ch.Type),
			Active:  ch.ID == activeID,
			Preview: previews[ch.ID],
			Href:    "?kapitel=" + ch.ID,
		})
	}
	return entries
}

// WritePage renders the full course page.
func (r *Renderer) WritePage(w io.Writer, data PageData) error {
	if data.ContainerID == "" {
		data.ContainerID = r.container
	}
	return r.page.Execute(w, data)
}

// WriteErrorPage renders the top-level error panel shown when the
// manifest cannot be loaded. The only offered action is a reload.
func (r *Renderer) WriteErrorPage(w io.Writer, message string) error {
	return r.errorPage.Execute(w, struct{ Message string }{Message: message})
}
