// Package util provides common utility functions used across massprops.
package util

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the timestamp format used in generated file names.
const TimestampLayout = "20060102_150405"

// TrimQuotes removes leading and trailing double quotes from a string.
func TrimQuotes(s string) string {
	return strings.Trim(s, `"`)
}

// SafeFileName replaces characters that are awkward in file names with
// underscores. An empty or all-blank name becomes "unnamed".
func SafeFileName(s string) string {
	s = strings.TrimSpace(TrimQuotes(s))
	if s == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '/', '\\', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
}

// ReportFileName builds "<name>_<timestamp>.json", with ".gz" appended when
// compressed.
func ReportFileName(name string, at time.Time, compressed bool) string {
	filename := fmt.Sprintf("%s_%s.json", SafeFileName(name), at.UTC().Format(TimestampLayout))
	if compressed {
		filename += ".gz"
	}
	return filename
}
