package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/crypdick/obsidian-tools/internal/frontmatter"
	"github.com/crypdick/obsidian-tools/internal/markdown"
	"github.com/crypdick/obsidian-tools/internal/ui"
	"github.com/crypdick/obsidian-tools/internal/vault"
)

var unclobberInteractive bool

var unclobberCmd = &cobra.Command{
	Use:   "unclobber [dir]",
	Short: "Merge duplicated front-matter blocks into one",
	Long: `Sync conflicts and misbehaving plugins can stack several YAML front-matter
blocks at the top of a note. unclobber folds them back into a single block:

  - identical values collapse,
  - timestamps keep the earliest value,
  - lists merge into a deduplicated union,
  - anything else is a conflict: the file is skipped so no data is lost.

Run with --interactive to resolve conflicts key by key.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, root, err := resolveScanDir(args)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}
		plan := planUnclobber(dir, root)
		return runPlan(plan)
	},
}

func init() {
	addRunFlags(unclobberCmd)
	unclobberCmd.Flags().BoolVarP(&unclobberInteractive, "interactive", "i", false, "Resolve conflicts key by key (requires a TTY)")
	rootCmd.AddCommand(unclobberCmd)
}

func planUnclobber(dir, root string) *Plan {
	plan := &Plan{Op: "unclobber", Dir: dir, Root: root, Started: time.Now()}
	files := scanFiles(plan)

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			plan.Errors = append(plan.Errors, FileError{Path: f.RelPath, Err: err})
			continue
		}
		content := string(data)

		res, err := frontmatter.MergeDocument(content)
		if err != nil {
			var pe *frontmatter.ParseError
			if errors.As(err, &pe) {
				plan.Skips = append(plan.Skips, Skip{
					File: f,
					Code: WarnSkippedParseError,
					Reason: fmt.Sprintf("malformed front matter in block %d (line %d): %v",
						pe.Block, pe.Line, pe.Err),
				})
			} else {
				plan.Errors = append(plan.Errors, FileError{Path: f.RelPath, Err: err})
			}
			continue
		}

		// Only files with stacked blocks get rewritten; a single healthy
		// block is left byte-for-byte alone.
		if len(res.Blocks) < 2 {
			continue
		}

		resolved := 0
		if len(res.Conflicts) > 0 {
			if !canResolveInteractively() {
				plan.Skips = append(plan.Skips, Skip{
					File:   f,
					Code:   WarnSkippedConflict,
					Reason: fmt.Sprintf("unresolved conflicts: %s", strings.Join(res.ConflictKeys(), ", ")),
				})
				continue
			}
			resolutions, skip := resolveConflicts(f, res)
			if skip {
				plan.Skips = append(plan.Skips, Skip{
					File:   f,
					Code:   WarnSkippedConflict,
					Reason: fmt.Sprintf("conflicts left unresolved: %s", strings.Join(res.ConflictKeys(), ", ")),
				})
				continue
			}
			resolved = len(resolutions)
			res, err = frontmatter.MergeDocument(content, frontmatter.WithResolutions(resolutions))
			if err != nil {
				plan.Errors = append(plan.Errors, FileError{Path: f.RelPath, Err: err})
				continue
			}
		}

		merged, err := res.Render()
		if err != nil {
			plan.Errors = append(plan.Errors, FileError{Path: f.RelPath, Err: err})
			continue
		}
		if merged == content {
			continue
		}

		detail := fmt.Sprintf("merge %d front-matter blocks", len(res.Blocks))
		if resolved > 0 {
			detail += fmt.Sprintf(", %d %s resolved", resolved, plural(resolved, "conflict"))
		}
		plan.Changes = append(plan.Changes, Change{
			File:    f,
			Action:  ActionModify,
			Detail:  detail,
			Title:   markdown.Title(res.Body),
			Content: []byte(merged),
		})
	}

	return plan
}

func canResolveInteractively() bool {
	return unclobberInteractive && !isJSONOutput() && ui.IsInteractive()
}

// resolveConflicts prompts for each conflicted key. The answers feed a
// second merge pass; returning skip leaves the file untouched.
func resolveConflicts(f vault.File, res *frontmatter.Result) (map[string]frontmatter.Value, bool) {
	fmt.Printf("\n%s %s\n", ui.Header("Conflicts in"), ui.FilePath(f.RelPath))
	resolutions := make(map[string]frontmatter.Value)
	reader := bufio.NewReader(os.Stdin)

	for _, c := range res.Conflicts {
		fmt.Printf("\n  %s\n", ui.AccentBold.Render(c.Key))
		for i, cand := range c.Candidates {
			fmt.Printf("    %s %s %s\n",
				ui.Muted.Render(fmt.Sprintf("[%d]", i+1)),
				cand.Value.String(),
				ui.Hint(fmt.Sprintf("(%s %s)", plural(len(cand.Blocks), "block"), joinInts(cand.Blocks))))
		}
		fmt.Printf("  Choose 1-%d, =<value> for a custom value, or s to skip this file: ", len(c.Candidates))

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		switch {
		case input == "" || strings.EqualFold(input, "s"):
			return nil, true
		case strings.HasPrefix(input, "="):
			v, err := frontmatter.ParseValue(strings.TrimPrefix(input, "="))
			if err != nil {
				fmt.Println(ui.Errorf("invalid value: %v", err))
				return nil, true
			}
			resolutions[c.Key] = v
		default:
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 || n > len(c.Candidates) {
				return nil, true
			}
			resolutions[c.Key] = c.Candidates[n-1].Value
		}
	}
	return resolutions, false
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
