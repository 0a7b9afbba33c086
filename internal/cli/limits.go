package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/crypdick/obsidian-tools/internal/dataview"
	"github.com/crypdick/obsidian-tools/internal/frontmatter"
	"github.com/crypdick/obsidian-tools/internal/markdown"
)

var limitsFlag int

var limitsCmd = &cobra.Command{
	Use:   "limits [dir]",
	Short: "Add LIMIT clauses to dataview queries",
	Long: `Inserts a LIMIT clause into every dataview code block that lacks one, so
unbounded queries stop rendering thousands of rows. Blocks that already
contain a LIMIT are left alone, as is everything outside dataview fences.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, root, err := resolveScanDir(args)
		if err != nil {
			return handleError(ErrDirNotFound, err, "")
		}
		limit := limitsFlag
		if limit <= 0 && cfg != nil && cfg.Limits.DefaultLimit > 0 {
			limit = cfg.Limits.DefaultLimit
		}
		if limit <= 0 {
			limit = dataview.DefaultLimit
		}
		plan := planLimits(dir, root, limit)
		return runPlan(plan)
	},
}

func init() {
	addRunFlags(limitsCmd)
	limitsCmd.Flags().IntVarP(&limitsFlag, "limit", "l", 0,
		fmt.Sprintf("LIMIT value to insert (default %d)", dataview.DefaultLimit))
	rootCmd.AddCommand(limitsCmd)
}

func planLimits(dir, root string, limit int) *Plan {
	plan := &Plan{Op: "limits", Dir: dir, Root: root, Started: time.Now()}

	for _, f := range scanFiles(plan) {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			plan.Errors = append(plan.Errors, FileError{Path: f.RelPath, Err: err})
			continue
		}
		content := string(data)
		updated, added := dataview.AddLimits(content, limit)
		if added == 0 {
			continue
		}
		noun := "queries"
		if added == 1 {
			noun = "query"
		}
		plan.Changes = append(plan.Changes, Change{
			File:    f,
			Action:  ActionModify,
			Detail:  fmt.Sprintf("add LIMIT %d to %d %s", limit, added, noun),
			Title:   markdown.Title(frontmatter.Strip(content)),
			Content: []byte(updated),
		})
	}

	return plan
}
