package course

import (
	"regexp"
	"strconv"

	"github.com/andrkelb-school/SW-Situation-1-BauMax/models"
)

var leadingInt = regexp.MustCompile(`^\s*(\d+)`)

// Minutes returns the leading integer of a chapter duration string
// ("10 min" -> 10). Strings without a leading integer count as 0.
func Minutes(duration string) int {
	m := leadingInt.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// TotalMinutes sums the chapter durations for the table of contents
// summary line.
func TotalMinutes(chapters []models.Chapter) int {
	total := 0
	for _, ch := range chapters {
		total += Minutes(ch.Duration)
	}
	return total
}
