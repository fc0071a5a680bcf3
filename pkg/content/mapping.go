package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileMap resolves chapter ids to content filenames under
// github_content/. The map is supplied externally so that new chapters
// do not require a rebuild.
type FileMap map[string]string

// DefaultFileMap is the compiled-in table for the BauMax course.
func DefaultFileMap() FileMap {
	return FileMap{
		"1.0": "seite1.0.html",
		"1.1": "seite1.1.html",
		"1.2": "seite1.2.html",
		"1.3": "seite1.3.html",
		"1.4": "seite1.4.html",
		"2.0": "seite2.0.html",
		"2.1": "seite2.1.html",
		"2.2": "seite2.2.html",
		"2.3": "seite2.3.html",
	}
}

// LoadFileMap reads an id -> filename map from a YAML file.
func LoadFileMap(path string) (FileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapter map %s: %w", path, err)
	}
	var m FileMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse chapter map %s: %w", path, err)
	}
	return m, nil
}

// Resolve returns the content filename for a chapter id.
func (m FileMap) Resolve(chapterID string) (string, error) {
	name, ok := m[chapterID]
	if !ok {
		return "", &UnmappedChapterError{ChapterID: chapterID}
	}
	return name, nil
}
