package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sort"
	"sync"

	"github.com/crypdick/obsidian-tools/internal/frontmatter"
	"github.com/crypdick/obsidian-tools/internal/vault"
)

// ContentHash returns the SHA-256 of a note's content with any leading front
// matter block removed. Two copies of a note that differ only in metadata
// therefore hash the same.
func ContentHash(data []byte) string {
	stripped := frontmatter.Strip(string(data))
	sum := sha256.Sum256([]byte(stripped))
	return hex.EncodeToString(sum[:])
}

// Hashed pairs a vault file with its content hash.
type Hashed struct {
	vault.File
	Hash string
}

// HashError records a file that could not be read for hashing.
type HashError struct {
	vault.File
	Err error
}

type hashJob struct {
	idx  int
	file vault.File
}

type hashResult struct {
	idx  int
	hash string
	err  error
}

// HashFiles computes content hashes for files, fanning reads out across
// workers. known, when non-nil, is consulted first and lets a cache skip the
// read entirely. progress, when non-nil, is called once per file as its hash
// resolves, possibly from worker goroutines. Results come back in input
// order; unreadable files are reported separately.
func HashFiles(files []vault.File, workers int, known func(vault.File) (string, bool), progress func()) ([]Hashed, []HashError) {
	if len(files) == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}
	if progress == nil {
		progress = func() {}
	}

	out := make([]hashResult, len(files))
	var pending []hashJob
	for i, f := range files {
		if known != nil {
			if h, ok := known(f); ok {
				out[i] = hashResult{idx: i, hash: h}
				progress()
				continue
			}
		}
		pending = append(pending, hashJob{idx: i, file: f})
	}

	if len(pending) > 0 {
		jobs := make(chan hashJob, len(pending))
		results := make(chan hashResult, len(pending))

		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for job := range jobs {
					data, err := os.ReadFile(job.file.Path)
					if err != nil {
						results <- hashResult{idx: job.idx, err: err}
					} else {
						results <- hashResult{idx: job.idx, hash: ContentHash(data)}
					}
					progress()
				}
			}()
		}

		for _, job := range pending {
			jobs <- job
		}
		close(jobs)
		wg.Wait()
		close(results)

		for res := range results {
			out[res.idx] = res
		}
	}

	var hashed []Hashed
	var failed []HashError
	for i, res := range out {
		if res.err != nil {
			failed = append(failed, HashError{File: files[i], Err: res.err})
			continue
		}
		hashed = append(hashed, Hashed{File: files[i], Hash: res.hash})
	}
	sort.SliceStable(failed, func(i, j int) bool { return failed[i].RelPath < failed[j].RelPath })
	return hashed, failed
}
