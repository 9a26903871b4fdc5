package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace squashes runs of whitespace into single spaces and
// trims the ends. Upstream name fields occasionally carry doubled spaces
// or stray newlines.
func CollapseWhitespace(s string) string {
	s = strings.TrimSpace(s)
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// SplitLastFirst splits a combined "Last, First ..." name on the first
// comma. Everything before the comma is the last name, everything after
// is the first name, both trimmed. A name without a comma is treated as
// a bare last name.
func SplitLastFirst(name string) (last, first string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, ",", 2)
	last = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		first = strings.TrimSpace(parts[1])
	}
	return last, first
}
