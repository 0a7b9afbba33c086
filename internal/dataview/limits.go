// Package dataview rewrites Obsidian Dataview query blocks in Markdown
// notes. Unbounded queries can freeze Obsidian on large vaults, so every
// query gets a LIMIT clause unless it already has one.
package dataview

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultLimit is the LIMIT value applied when the caller does not choose
// one.
const DefaultLimit = 1000

var (
	startBlockRe = regexp.MustCompile(`(?i)^` + "```" + `\s*dataview\s*$`)
	endBlockRe   = regexp.MustCompile(`^` + "```" + `\s*$`)
	limitRe      = regexp.MustCompile(`(?i)\blimit\s+\d+\b`)
)

// AddLimits inserts "LIMIT <limit>" as the last line of every dataview code
// block that has no LIMIT clause. Returns the new content and the number of
// insertions; zero insertions means content came back unchanged. Unclosed
// blocks are left alone.
func AddLimits(content string, limit int) (string, int) {
	lines := strings.SplitAfter(content, "\n")

	inBlock := false
	limitFound := false
	inserted := 0
	var out strings.Builder
	out.Grow(len(content))

	for _, line := range lines {
		trimmed := strings.TrimRight(line, "\r\n")
		switch {
		case !inBlock && startBlockRe.MatchString(trimmed):
			inBlock = true
			limitFound = false
		case inBlock:
			if endBlockRe.MatchString(trimmed) {
				if !limitFound {
					fmt.Fprintf(&out, "LIMIT %d\n", limit)
					inserted++
				}
				inBlock = false
			} else if limitRe.MatchString(trimmed) {
				limitFound = true
			}
		}
		out.WriteString(line)
	}

	if inserted == 0 {
		return content, 0
	}
	return out.String(), inserted
}
