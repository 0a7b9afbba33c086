package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/crypdick/obsidian-tools/internal/cache"
	"github.com/crypdick/obsidian-tools/internal/dedup"
	"github.com/crypdick/obsidian-tools/internal/frontmatter"
	"github.com/crypdick/obsidian-tools/internal/markdown"
	"github.com/crypdick/obsidian-tools/internal/session"
	"github.com/crypdick/obsidian-tools/internal/ui"
	"github.com/crypdick/obsidian-tools/internal/vault"
)

var (
	dedupNoCache bool
	dedupWorkers int
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [dir]",
	Short: "Delete duplicate notes by content hash",
	Long: `Finds notes whose content is identical once front matter is stripped, and
deletes all but one copy. Within a duplicate set the copy with the lowest
numeric " (N)" suffix survives; when every copy is suffixed, the survivor is
renamed to the unsuffixed name unless a different note already holds it.

Hashes are cached in .obsidian-tools/cache.db and reused while a file's size
and modification time are unchanged.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, root, err := resolveScanDir(args)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}
		plan := planDedup(dir, root)
		return runPlan(plan)
	},
}

func init() {
	addRunFlags(dedupCmd)
	dedupCmd.Flags().BoolVar(&dedupNoCache, "no-cache", false, "Hash every file, ignoring the cache")
	dedupCmd.Flags().IntVar(&dedupWorkers, "workers", 0, "Hashing workers (default: config or CPU count)")
	rootCmd.AddCommand(dedupCmd)
}

func planDedup(dir, root string) *Plan {
	plan := &Plan{Op: "dedup", Dir: dir, Root: root, Started: time.Now()}
	log := session.NewTermLogger(verbose)

	files := scanFiles(plan)
	if len(files) == 0 {
		return plan
	}

	workers := dedupWorkers
	if workers <= 0 && cfg != nil {
		workers = cfg.Dedup.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var c *cache.Cache
	var known func(vault.File) (string, bool)
	hits := 0
	if !dedupNoCache {
		var err error
		c, err = cache.Open(root)
		if err != nil {
			log.Warn("hash cache unavailable, hashing everything", "err", err)
		} else {
			defer c.Close()
			known = func(f vault.File) (string, bool) {
				h, ok := c.Lookup(f)
				if ok {
					hits++
				}
				return h, ok
			}
		}
	}

	prog := ui.NewProgress("Hashing", len(files))
	hashed, hashErrs := dedup.HashFiles(files, workers, known, prog.Increment)
	prog.Done()
	for _, he := range hashErrs {
		plan.Errors = append(plan.Errors, FileError{Path: he.RelPath, Err: he.Err})
	}
	log.Debug("hashed files", "files", len(files), "cache_hits", hits, "workers", workers)

	if c != nil {
		current := make(map[string]bool, len(hashed))
		for _, h := range hashed {
			current[h.RelPath] = true
			if err := c.Store(h.File, h.Hash); err != nil {
				log.Debug("cache store failed", "path", h.RelPath, "err", err)
			}
		}
		if removed, err := c.Prune(current); err != nil {
			log.Debug("cache prune failed", "err", err)
		} else if removed > 0 {
			log.Debug("pruned stale cache entries", "removed", removed)
		}
	}

	for _, g := range dedup.Plan(hashed) {
		title := noteTitle(g.Keep.Path)
		for _, d := range g.Delete {
			plan.Changes = append(plan.Changes, Change{
				File:   d.File,
				Action: ActionDelete,
				Detail: fmt.Sprintf("duplicate of %s", g.Keep.RelPath),
				Title:  title,
			})
		}
		if g.RenameTo == "" {
			continue
		}
		// A note already holding the unsuffixed name would share this
		// group if its content matched, so an existing file here means
		// different content: keep the suffixed name.
		if _, err := os.Stat(g.RenameTo); err == nil {
			plan.Skips = append(plan.Skips, Skip{
				File:   g.Keep.File,
				Code:   WarnRenameDestExists,
				Reason: fmt.Sprintf("keeping suffixed name, %s exists", filepath.Base(g.RenameTo)),
			})
			continue
		}
		plan.Changes = append(plan.Changes, Change{
			File:     g.Keep.File,
			Action:   ActionRename,
			RenameTo: g.RenameTo,
			Detail:   fmt.Sprintf("rename to %s", filepath.Base(g.RenameTo)),
			Title:    title,
		})
	}

	return plan
}

// noteTitle reads a note's first heading for the preview table.
func noteTitle(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return markdown.Title(frontmatter.Strip(string(data)))
}
