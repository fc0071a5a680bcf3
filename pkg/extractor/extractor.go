// Package extractor cuts the chapter body out of a raw content document.
package extractor

import "strings"

// Marker is the literal sentinel delimiting the chapter body inside a
// content document. The body sits between the first and second
// occurrence.
const Marker = "<!-- HIER_STARTET_DER_INHALT -->"

// Extract returns the trimmed text between the first two occurrences of
// the default marker. See ExtractWith.
func Extract(raw string) string {
	return ExtractWith(raw, Marker)
}

// ExtractWith splits raw on the marker. Documents containing the marker
// fewer than two times are returned unchanged: undelimited content is
// served whole rather than rejected. Anything after the second marker is
// discarded.
func ExtractWith(raw, marker string) string {
	parts := strings.Split(raw, marker)
	if len(parts) < 3 {
		return raw
	}
	return strings.TrimSpace(parts[1])
}
