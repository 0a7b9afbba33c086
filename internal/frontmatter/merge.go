package frontmatter

import "time"

// Merged holds the resolved front matter: key/value pairs in first-seen
// order across all blocks.
type Merged struct {
	keys   []string
	fields map[string]Value
}

// Keys returns the resolved keys in first-seen order.
func (m *Merged) Keys() []string {
	return m.keys
}

// Get returns the resolved value for key.
func (m *Merged) Get(key string) (Value, bool) {
	v, ok := m.fields[key]
	return v, ok
}

// Len returns the number of resolved keys.
func (m *Merged) Len() int {
	return len(m.keys)
}

func (m *Merged) set(key string, v Value) {
	if _, ok := m.fields[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.fields[key] = v
}

// Candidate is one distinct value proposed for a key, with the 1-indexed
// blocks that carried it.
type Candidate struct {
	Value  Value
	Blocks []int
}

// Conflict records a key whose candidate values could not be resolved
// automatically. Candidates appear in first-seen order.
type Conflict struct {
	Key        string
	Candidates []Candidate
}

// MergeOption adjusts how Merge resolves keys.
type MergeOption func(*mergeConfig)

type mergeConfig struct {
	resolutions map[string]Value
}

// WithResolutions pins keys to chosen values, overriding the automatic
// rules. Keys absent from all blocks are ignored. This is how an
// interactive caller feeds answers back into a second merge.
func WithResolutions(resolutions map[string]Value) MergeOption {
	return func(cfg *mergeConfig) {
		if cfg.resolutions == nil {
			cfg.resolutions = make(map[string]Value, len(resolutions))
		}
		for k, v := range resolutions {
			cfg.resolutions[k] = v
		}
	}
}

// Merge folds blocks into a single front matter mapping.
//
// Per key, in first-seen order:
//   - one distinct value across all blocks keeps that value
//   - timestamps keep the earliest
//   - lists keep the union, first-seen item order, duplicates dropped
//   - anything else is reported as a Conflict and omitted from Merged
//
// Values compare by canonical YAML value, so `"a"` and `a` are one
// candidate. Duplicate keys within a single block fold under the same rules.
func Merge(blocks []Block, opts ...MergeOption) (*Merged, []Conflict) {
	var cfg mergeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var keys []string
	candidates := make(map[string][]Candidate)

	for bi, b := range blocks {
		for _, p := range b.Pairs() {
			list, seen := candidates[p.Key]
			if !seen {
				keys = append(keys, p.Key)
			}
			matched := false
			for ci := range list {
				if list[ci].Value.Equal(p.Value) {
					list[ci].Blocks = appendBlock(list[ci].Blocks, bi+1)
					matched = true
					break
				}
			}
			if !matched {
				list = append(list, Candidate{Value: p.Value, Blocks: []int{bi + 1}})
			}
			candidates[p.Key] = list
		}
	}

	merged := &Merged{fields: make(map[string]Value)}
	var conflicts []Conflict
	for _, key := range keys {
		list := candidates[key]
		if v, ok := cfg.resolutions[key]; ok {
			merged.set(key, v)
			continue
		}
		if len(list) == 1 {
			merged.set(key, list[0].Value)
			continue
		}
		if v, ok := earliestTimestamp(list); ok {
			merged.set(key, v)
			continue
		}
		if v, ok := unionLists(list); ok {
			merged.set(key, v)
			continue
		}
		conflicts = append(conflicts, Conflict{Key: key, Candidates: list})
	}
	return merged, conflicts
}

func appendBlock(blocks []int, n int) []int {
	for _, b := range blocks {
		if b == n {
			return blocks
		}
	}
	return append(blocks, n)
}

// earliestTimestamp resolves candidates that are all timestamps to the
// earliest one. Ties keep the first-seen candidate.
func earliestTimestamp(list []Candidate) (Value, bool) {
	best := -1
	var bestTime time.Time
	for i, c := range list {
		t, ok := c.Value.Timestamp()
		if !ok {
			return Value{}, false
		}
		if best == -1 || t.Before(bestTime) {
			best = i
			bestTime = t
		}
	}
	return list[best].Value, true
}

// unionLists resolves candidates that are all lists to their union, keeping
// the first-seen order of items and the first candidate's list style.
func unionLists(list []Candidate) (Value, bool) {
	var union []Value
	for _, c := range list {
		items, ok := c.Value.AsList()
		if !ok {
			return Value{}, false
		}
		for _, item := range items {
			dup := false
			for _, have := range union {
				if have.Equal(item) {
					dup = true
					break
				}
			}
			if !dup {
				union = append(union, item)
			}
		}
	}
	return newListValue(union, list[0].Value.flowStyle()), true
}
