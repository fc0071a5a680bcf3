package content

import "fmt"

// UnmappedChapterError reports a chapter id that has no entry in the
// filename map. It is caught at the fetch boundary and degraded to an
// inline error block, never surfaced to callers.
type UnmappedChapterError struct {
	ChapterID string
}

func (e *UnmappedChapterError) Error() string {
	return fmt.Sprintf("no content file mapped for chapter %s", e.ChapterID)
}
