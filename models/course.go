// Package models defines the shared data structures for the course
// manifest and the loader configuration.
package models

// CourseConfig is the course manifest as served by
// {baseUrl}/courses/{courseId}/config.json. It is loaded once per
// session and treated as immutable afterwards.
type CourseConfig struct {
	CourseName  string    `json:"courseName"`
	Description string    `json:"description"`
	Version     string    `json:"version"`
	Institution string    `json:"institution"`
	Chapters    []Chapter `json:"chapters"`
}

// ChapterTypeIntro marks introductory chapters; anything else gets the
// default lesson treatment.
const ChapterTypeIntro = "intro"

// Chapter is one manifest entry. Identity is ID (dotted numeric, e.g.
// "1.2"); uniqueness within the manifest is assumed, not enforced.
type Chapter struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Duration string `json:"duration"` // free text with a leading count, e.g. "10 min"
	Exercise string `json:"exercise,omitempty"`
}

// HasExercise reports whether the chapter references an optional
// exercise fragment.
func (c Chapter) HasExercise() bool { return c.Exercise != "" }
