package dedup

import (
	"path/filepath"
	"sort"
)

// Group is one set of files sharing a content hash, split into the copy to
// keep and the copies to remove.
type Group struct {
	Hash string

	// Keep is the surviving copy: the member with the lowest numeric
	// suffix, ties broken by scan order.
	Keep Hashed

	// Delete lists the remaining members.
	Delete []Hashed

	// RenameTo is the absolute path the keeper should move to when every
	// copy carried a numeric suffix, so "note (1).md" can become
	// "note.md". Empty when the keeper already has its final name.
	RenameTo string
}

// Plan groups hashed files by content and decides the fate of each
// duplicate. Files with unique content produce no group. Groups come back
// ordered by the keeper's relative path.
func Plan(files []Hashed) []Group {
	buckets := make(map[string][]Hashed)
	for _, f := range files {
		buckets[f.Hash] = append(buckets[f.Hash], f)
	}

	var groups []Group
	for hash, members := range buckets {
		if len(members) < 2 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return NumericSuffix(filepath.Base(members[i].Path)) < NumericSuffix(filepath.Base(members[j].Path))
		})

		g := Group{Hash: hash, Keep: members[0], Delete: members[1:]}
		name := filepath.Base(g.Keep.Path)
		if NumericSuffix(name) > 0 {
			if unsuffixed, ok := StripSuffix(name); ok {
				g.RenameTo = filepath.Join(filepath.Dir(g.Keep.Path), unsuffixed)
			}
		}
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Keep.RelPath < groups[j].Keep.RelPath })
	return groups
}
