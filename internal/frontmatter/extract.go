package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pair is one key/value entry from a block, in source order. Duplicate keys
// within a block appear as separate pairs.
type Pair struct {
	Key   string
	Value Value
}

// Block is a single delimited front matter block.
type Block struct {
	pairs []Pair

	// StartLine and EndLine are the 1-indexed lines of the opening and
	// closing delimiters.
	StartLine int
	EndLine   int
}

// Pairs returns the block's key/value pairs in source order.
func (b Block) Pairs() []Pair {
	return b.pairs
}

// Keys returns the block's keys in source order, duplicates included.
func (b Block) Keys() []string {
	keys := make([]string, 0, len(b.pairs))
	for _, p := range b.pairs {
		keys = append(keys, p.Key)
	}
	return keys
}

// Get returns the first value for key.
func (b Block) Get(key string) (Value, bool) {
	for _, p := range b.pairs {
		if p.Key == key {
			return p.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of pairs in the block.
func (b Block) Len() int {
	return len(b.pairs)
}

// ParseError reports malformed YAML inside a closed front matter block.
// Malformed YAML between delimiters is an error, never silently demoted to
// body text: rewriting such a document would destroy whatever the author
// meant that block to say.
type ParseError struct {
	// Block is the 1-indexed ordinal of the offending block.
	Block int
	// Line is the 1-indexed line of the block's opening delimiter.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("front matter block %d (line %d): %v", e.Block, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extracted is the raw scan result: the leading blocks and the remaining
// body.
type Extracted struct {
	Blocks []Block
	Body   string
}

// Extract scans content for consecutive front matter blocks at the top of
// the document.
//
// A delimiter is a line whose trimmed content is exactly "---". Blank lines
// before the first block and between blocks are consumed. Scanning stops at
// the first line after a closing delimiter that opens neither a block nor
// another delimiter; everything from there on is the body, byte for byte.
//
// A delimited region only counts as front matter when it parses as a YAML
// mapping (or is empty). Regions that are unclosed, hold a non-mapping
// document, or contain an implicit null value (a key with nothing after the
// colon, as in a Markdown horizontal rule sandwich) are left in the body
// untouched. Malformed YAML in a closed region returns a *ParseError.
func Extract(content string) (*Extracted, error) {
	lines := strings.Split(content, "\n")
	starts := lineStarts(content)

	i := 0
	for i < len(lines) && isBlank(lines[i]) {
		i++
	}

	var blocks []Block
	for i < len(lines) && isDelimiter(lines[i]) {
		end := -1
		for j := i + 1; j < len(lines); j++ {
			if isDelimiter(lines[j]) {
				end = j
				break
			}
		}
		if end == -1 {
			break
		}

		region := strings.Join(lines[i+1:end], "\n")
		blk, ok, perr := parseRegion(region, i+1, end+1, len(blocks)+1)
		if perr != nil {
			return nil, perr
		}
		if !ok {
			break
		}

		blocks = append(blocks, blk)
		i = end + 1
		for i < len(lines) && isBlank(lines[i]) {
			i++
		}
	}

	if len(blocks) == 0 {
		return &Extracted{Body: content}, nil
	}

	body := ""
	if i < len(lines) {
		body = content[starts[i]:]
	}
	return &Extracted{Blocks: blocks, Body: body}, nil
}

func isDelimiter(line string) bool {
	return strings.TrimSpace(line) == "---"
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func lineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// parseRegion parses the text between a delimiter pair. ok is false when the
// region is legal YAML but not a front matter mapping.
func parseRegion(region string, startLine, endLine, ordinal int) (Block, bool, *ParseError) {
	blk := Block{StartLine: startLine, EndLine: endLine}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(region), &doc); err != nil {
		return Block{}, false, &ParseError{Block: ordinal, Line: startLine, Err: err}
	}

	// Empty or comment-only regions are genuine, empty front matter.
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return blk, true, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Block{}, false, nil
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return Block{}, false, nil
		}
		// A key with nothing after the colon reads like prose framed by
		// horizontal rules, not metadata someone wrote. Reject the whole
		// region so the document stays untouched.
		if valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!null" && valNode.Value == "" {
			return Block{}, false, nil
		}
		blk.pairs = append(blk.pairs, Pair{Key: keyNode.Value, Value: newValue(valNode)})
	}
	return blk, true, nil
}
