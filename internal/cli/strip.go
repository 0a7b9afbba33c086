package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crypdick/obsidian-tools/internal/frontmatter"
	"github.com/crypdick/obsidian-tools/internal/markdown"
)

var stripCmd = &cobra.Command{
	Use:   "strip [dir]",
	Short: "Remove leading front-matter blocks",
	Long: `Removes the leading front-matter block from each note, keeping only the
body. Meant for export directories where metadata is noise, like flashcard
decks.

Without a directory argument, strip works on FLASHCARDS_PATH or
<vault>/flashcards rather than the whole vault.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, root, err := resolveScanDir(stripArgs(args))
		if err != nil {
			return handleError(ErrDirNotFound, err, "Create the directory or set FLASHCARDS_PATH")
		}
		plan := planStrip(dir, root)
		return runPlan(plan)
	},
}

func init() {
	addRunFlags(stripCmd)
	rootCmd.AddCommand(stripCmd)
}

// stripArgs substitutes the flashcards default when no directory is given.
func stripArgs(args []string) []string {
	if len(args) > 0 {
		return args
	}
	if resolvedVaultPath == "" {
		return args
	}
	return []string{flashcardsDir(resolvedVaultPath)}
}

func planStrip(dir, root string) *Plan {
	plan := &Plan{Op: "strip", Dir: dir, Root: root, Started: time.Now()}

	for _, f := range scanFiles(plan) {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			plan.Errors = append(plan.Errors, FileError{Path: f.RelPath, Err: err})
			continue
		}
		content := string(data)
		stripped := frontmatter.Strip(content)
		if stripped == content {
			continue
		}
		plan.Changes = append(plan.Changes, Change{
			File:    f,
			Action:  ActionModify,
			Detail:  "remove front matter",
			Title:   markdown.Title(stripped),
			Content: []byte(stripped),
		})
	}

	return plan
}
