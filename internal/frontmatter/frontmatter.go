// Package frontmatter extracts, merges, and re-serializes YAML front matter
// blocks in Markdown documents.
//
// A document can accumulate several consecutive front matter blocks when sync
// tools or plugins prepend a fresh block instead of updating the one already
// there. Merge folds those blocks back into a single block, resolving what it
// safely can and reporting everything else as conflicts rather than guessing.
package frontmatter

import "fmt"

// Result is the outcome of merging one document's front matter.
type Result struct {
	// Blocks are the extracted front matter blocks, in document order.
	Blocks []Block

	// Merged holds the resolved key/value pairs in first-seen order.
	// Conflicted keys are absent.
	Merged *Merged

	// Conflicts lists keys the merge could not resolve, with every
	// candidate value and the blocks that carried it.
	Conflicts []Conflict

	// Body is the document content after the final block, byte for byte.
	// When no blocks were found it is the entire original document.
	Body string
}

// MergeDocument extracts all leading front matter blocks from content and
// merges them. Returns a *ParseError when a closed block contains malformed
// YAML.
func MergeDocument(content string, opts ...MergeOption) (*Result, error) {
	ex, err := Extract(content)
	if err != nil {
		return nil, err
	}
	merged, conflicts := Merge(ex.Blocks, opts...)
	return &Result{
		Blocks:    ex.Blocks,
		Merged:    merged,
		Conflicts: conflicts,
		Body:      ex.Body,
	}, nil
}

// Render serializes the merged document: a single front matter block followed
// by the untouched body. Documents without front matter come back unchanged.
// Rendering is refused while conflicts remain unresolved.
func (r *Result) Render() (string, error) {
	if len(r.Conflicts) > 0 {
		return "", fmt.Errorf("%d unresolved conflicts", len(r.Conflicts))
	}
	if len(r.Blocks) == 0 {
		return r.Body, nil
	}
	front, err := Render(r.Merged)
	if err != nil {
		return "", err
	}
	return Compose(front, r.Body), nil
}

// ConflictKeys returns the conflicted key names in document order.
func (r *Result) ConflictKeys() []string {
	keys := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		keys = append(keys, c.Key)
	}
	return keys
}
