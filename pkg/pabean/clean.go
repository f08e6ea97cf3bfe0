package pabean

import (
	"regexp"
	"strconv"
	"strings"
)

var spacesRe = regexp.MustCompile(`\s+`)

// clean trims a capture and maps the empty and dash placeholders to nil.
func clean(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil
	}
	return &s
}

func ptr(s string) *string { return &s }

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

// parseAngka reads a numeric capture the way the legacy pipeline did:
// thousands commas and stray dashes are stripped, the dot stays decimal.
func parseAngka(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "-", "")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
