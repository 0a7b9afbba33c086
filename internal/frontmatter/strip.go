package frontmatter

import "strings"

// Strip removes the first front matter block by delimiter position alone,
// without parsing the YAML between the delimiters. The block must open on
// the very first line; unclosed or absent blocks leave content unchanged.
//
// Content hashing and front matter removal both want this looser cut: a
// block too mangled to parse should still be stripped, not preserved.
func Strip(content string) string {
	lines := strings.Split(content, "\n")
	if !isDelimiter(lines[0]) {
		return content
	}
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			starts := lineStarts(content)
			if i+1 < len(starts) {
				return content[starts[i+1]:]
			}
			return ""
		}
	}
	return content
}
