// Package dedup finds Markdown files with identical content and plans which
// copies to keep, delete, or rename.
package dedup

import (
	"regexp"
	"strconv"
)

// Matches both "file.md" and "file (123).md" (case-insensitive on extension).
var numberedRe = regexp.MustCompile(`^(?P<stem>.*?)(?: \((?P<num>\d+)\))?\.(?i:md)$`)

// NumericSuffix returns the copy-number suffix of a filename, or 0 when the
// name carries none. "note.md" is 0, "note (2).md" is 2.
func NumericSuffix(name string) int {
	m := numberedRe.FindStringSubmatch(name)
	if m == nil {
		return 0
	}
	num := m[numberedRe.SubexpIndex("num")]
	if num == "" {
		return 0
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0
	}
	return n
}

// StripSuffix returns the filename with its copy-number suffix removed, and
// whether there was one to remove. "note (2).md" becomes "note.md".
func StripSuffix(name string) (string, bool) {
	m := numberedRe.FindStringSubmatch(name)
	if m == nil || m[numberedRe.SubexpIndex("num")] == "" {
		return name, false
	}
	return m[numberedRe.SubexpIndex("stem")] + ".md", true
}
