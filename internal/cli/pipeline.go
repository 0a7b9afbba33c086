package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crypdick/obsidian-tools/internal/session"
	"github.com/crypdick/obsidian-tools/internal/ui"
	"github.com/crypdick/obsidian-tools/internal/vault"
)

// goFlag switches a command from dry-run (the default) to apply.
var goFlag bool

// Plan actions.
const (
	ActionModify = "modify"
	ActionDelete = "delete"
	ActionRename = "rename"
)

// Result statuses.
const (
	StatusModified = "modified"
	StatusDeleted  = "deleted"
	StatusRenamed  = "renamed"
	StatusSkipped  = "skipped"
	StatusError    = "error"
)

// Change is one planned file-level change.
type Change struct {
	File     vault.File
	Action   string // modify, delete, rename
	Detail   string // human-readable description for previews and reports
	Title    string // note title for the preview table
	Content  []byte // new content for modify
	RenameTo string // absolute destination for rename
}

// Skip is a file the plan deliberately leaves alone.
type Skip struct {
	File   vault.File
	Code   string // warning code
	Reason string
}

// FileError is a per-file failure during planning. It never aborts the batch.
type FileError struct {
	Path string
	Err  error
}

// Plan is the outcome of a scan: everything an apply run would do.
type Plan struct {
	Op      string
	Dir     string
	Root    string // vault root anchoring sessions and the cache
	Started time.Time
	Scanned int
	Changes []Change
	Skips   []Skip
	Errors  []FileError
}

// planItem is the JSON shape of one planned change.
type planItem struct {
	Path   string `json:"path"`
	Title  string `json:"title,omitempty"`
	Action string `json:"action"`
	Detail string `json:"detail,omitempty"`
}

// planPreview is the JSON shape of a dry run.
type planPreview struct {
	Op      string     `json:"op"`
	Dir     string     `json:"dir"`
	DryRun  bool       `json:"dry_run"`
	Scanned int        `json:"scanned"`
	Items   []planItem `json:"items"`
}

// resultItem is the JSON shape of one applied outcome.
type resultItem struct {
	Path   string `json:"path"`
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
	Backup string `json:"backup,omitempty"`
}

// runSummary is the JSON shape of a completed apply run.
type runSummary struct {
	Op       string       `json:"op"`
	Dir      string       `json:"dir"`
	Session  string       `json:"session"`
	Results  []resultItem `json:"results"`
	Scanned  int          `json:"scanned"`
	Modified int          `json:"modified,omitempty"`
	Deleted  int          `json:"deleted,omitempty"`
	Renamed  int          `json:"renamed,omitempty"`
	Skipped  int          `json:"skipped,omitempty"`
	Errors   int          `json:"errors,omitempty"`
}

// scanFiles walks the plan's directory with a spinner and folds unreadable
// paths into the plan's errors. Relative paths are rebased onto the vault
// root so previews, backups, and the hash cache all agree on names.
func scanFiles(plan *Plan) []vault.File {
	spinner := ui.NewSpinner(fmt.Sprintf("Scanning %s", plan.Dir))
	spinner.Start()
	files, failures, err := vault.CollectMarkdownFiles(plan.Dir)
	spinner.Stop()

	if err != nil {
		plan.Errors = append(plan.Errors, FileError{Path: plan.Dir, Err: err})
		return nil
	}
	for _, f := range failures {
		plan.Errors = append(plan.Errors, FileError{Path: f.Path, Err: f.Error})
	}

	if plan.Dir != plan.Root {
		for i := range files {
			if rel, relErr := filepath.Rel(plan.Root, files[i].Path); relErr == nil {
				files[i].RelPath = filepath.ToSlash(rel)
			}
		}
	}

	plan.Scanned = len(files)
	return files
}

// runPlan drives the shared dry-run/confirm/apply workflow. A plan with
// nothing to change never prompts and never opens a session, even under
// --go; skips and errors are still reported.
func runPlan(plan *Plan) error {
	if len(plan.Changes) == 0 {
		if len(plan.Skips) == 0 && len(plan.Errors) == 0 {
			if isJSONOutput() {
				outputSuccess(previewOf(plan, !goFlag), planMeta(plan, ""))
				return nil
			}
			fmt.Println("Nothing to do.")
			return nil
		}
		printOrEmitPreview(plan)
		return nil
	}

	if !goFlag {
		printOrEmitPreview(plan)
		return nil
	}

	return applyPlan(plan)
}

func previewOf(plan *Plan, dryRun bool) planPreview {
	items := make([]planItem, 0, len(plan.Changes))
	for _, c := range plan.Changes {
		items = append(items, planItem{
			Path:   c.File.RelPath,
			Title:  c.Title,
			Action: c.Action,
			Detail: c.Detail,
		})
	}
	return planPreview{
		Op:      plan.Op,
		Dir:     plan.Dir,
		DryRun:  dryRun,
		Scanned: plan.Scanned,
		Items:   items,
	}
}

func planWarnings(plan *Plan) []Warning {
	var warnings []Warning
	for _, s := range plan.Skips {
		warnings = append(warnings, Warning{Code: s.Code, Message: s.Reason, Path: s.File.RelPath})
	}
	for _, e := range plan.Errors {
		warnings = append(warnings, Warning{Code: WarnFileError, Message: e.Err.Error(), Path: e.Path})
	}
	return warnings
}

func planMeta(plan *Plan, sessionID string) *Meta {
	return &Meta{
		Count:     len(plan.Changes),
		ElapsedMs: time.Since(plan.Started).Milliseconds(),
		Session:   sessionID,
	}
}

func printOrEmitPreview(plan *Plan) {
	if isJSONOutput() {
		outputSuccessWithWarnings(previewOf(plan, true), planWarnings(plan), planMeta(plan, ""))
		return
	}

	if len(plan.Changes) > 0 {
		display := ui.NewDisplayContext()
		tbl := ui.NewPlanTable(display, ui.PlanLayout)
		detailWidth := tbl.ContentWidth("detail")
		for i, c := range plan.Changes {
			tbl.AddRow(ui.PlanRow{
				Num: i + 1,
				Cells: []string{
					ui.FormatRowNum(i+1, len(plan.Changes)),
					c.File.RelPath,
					c.Title,
					ui.TruncateWithEllipsis(c.Detail, detailWidth),
				},
			})
		}
		fmt.Println(tbl.Render())
	}

	printSkipsAndErrors(plan)

	fmt.Println()
	fmt.Printf("%d %s scanned, %d to change", plan.Scanned, plural(plan.Scanned, "file"), len(plan.Changes))
	if len(plan.Skips) > 0 {
		fmt.Printf(", %d skipped", len(plan.Skips))
	}
	if len(plan.Errors) > 0 {
		fmt.Printf(", %d %s", len(plan.Errors), plural(len(plan.Errors), "error"))
	}
	fmt.Println()
	if len(plan.Changes) > 0 {
		fmt.Println(ui.Hint("Dry run. Re-run with --go to apply."))
	}
}

func printSkipsAndErrors(plan *Plan) {
	if len(plan.Skips) > 0 {
		fmt.Printf("\n%s\n", ui.Header(fmt.Sprintf("Skipped %d %s:", len(plan.Skips), plural(len(plan.Skips), "file"))))
		list := ui.NewList()
		for _, s := range plan.Skips {
			list.Add(fmt.Sprintf("%s %s", ui.FilePath(s.File.RelPath), ui.Hint(s.Reason)))
		}
		fmt.Print(list.String())
	}
	if len(plan.Errors) > 0 {
		fmt.Println()
		for _, e := range plan.Errors {
			fmt.Println(ui.Errorf("%s: %v", e.Path, e.Err))
		}
	}
}

func applyPlan(plan *Plan) error {
	message := fmt.Sprintf("About to modify %d %s. Continue?", len(plan.Changes), plural(len(plan.Changes), "file"))
	if isJSONOutput() && !yesFlag {
		return handleErrorMsg(ErrConfirmationRequired,
			"apply requires confirmation", "Pass --yes to apply in JSON mode")
	}
	ok, err := confirmApply(message)
	if err != nil {
		return handleError(ErrConfirmationRequired, err, "Pass --yes to apply non-interactively")
	}
	if !ok {
		if !isJSONOutput() {
			fmt.Println("Aborted.")
		}
		return nil
	}

	s, err := session.New(plan.Root, plan.Op, verbose)
	if err != nil {
		return handleError(ErrSessionError, err, "")
	}
	defer s.Close()

	results := executeChanges(plan, s)
	for _, skip := range plan.Skips {
		results = append(results, resultItem{Path: skip.File.RelPath, Status: StatusSkipped, Detail: skip.Reason})
	}
	for _, fe := range plan.Errors {
		results = append(results, resultItem{Path: fe.Path, Status: StatusError, Detail: fe.Err.Error()})
	}

	summary := summarize(plan, s.ID, results)
	writeSessionReport(plan, s, summary)

	if isJSONOutput() {
		outputSuccessWithWarnings(summary, planWarnings(plan), planMeta(plan, s.ID))
		return nil
	}
	printRunSummary(plan, s, summary)
	return nil
}

func executeChanges(plan *Plan, s *session.Session) []resultItem {
	results := make([]resultItem, 0, len(plan.Changes))
	for _, c := range plan.Changes {
		item := resultItem{Path: c.File.RelPath, Detail: c.Detail}

		backup, err := s.Backup(c.File)
		if err != nil {
			item.Status = StatusError
			item.Detail = err.Error()
			s.Log.Error("backup failed", "path", c.File.RelPath, "err", err)
			results = append(results, item)
			continue
		}
		item.Backup = backup

		switch c.Action {
		case ActionModify:
			if err := vault.WriteFileAtomic(c.File.Path, c.Content); err != nil {
				item.Status = StatusError
				item.Detail = err.Error()
				s.Log.Error("write failed", "path", c.File.RelPath, "err", err)
				break
			}
			item.Status = StatusModified
			s.Log.Info("modified", "path", c.File.RelPath, "detail", c.Detail)

		case ActionDelete:
			if err := os.Remove(c.File.Path); err != nil {
				item.Status = StatusError
				item.Detail = err.Error()
				s.Log.Error("delete failed", "path", c.File.RelPath, "err", err)
				break
			}
			item.Status = StatusDeleted
			s.Log.Info("deleted", "path", c.File.RelPath, "detail", c.Detail)

		case ActionRename:
			if err := vault.EnsureWithin(plan.Root, c.RenameTo); err != nil {
				item.Status = StatusError
				item.Detail = err.Error()
				s.Log.Error("rename refused", "path", c.File.RelPath, "err", err)
				break
			}
			// The destination may have appeared since planning.
			if _, err := os.Stat(c.RenameTo); err == nil {
				item.Status = StatusSkipped
				item.Detail = fmt.Sprintf("destination exists: %s", filepath.Base(c.RenameTo))
				s.Log.Warn("rename skipped", "path", c.File.RelPath, "dest", filepath.Base(c.RenameTo))
				break
			}
			if err := os.Rename(c.File.Path, c.RenameTo); err != nil {
				item.Status = StatusError
				item.Detail = err.Error()
				s.Log.Error("rename failed", "path", c.File.RelPath, "err", err)
				break
			}
			item.Status = StatusRenamed
			s.Log.Info("renamed", "path", c.File.RelPath, "dest", filepath.Base(c.RenameTo))

		default:
			item.Status = StatusError
			item.Detail = fmt.Sprintf("unknown action %q", c.Action)
		}

		results = append(results, item)
	}
	return results
}

func summarize(plan *Plan, sessionID string, results []resultItem) *runSummary {
	summary := &runSummary{
		Op:      plan.Op,
		Dir:     plan.Dir,
		Session: sessionID,
		Results: results,
		Scanned: plan.Scanned,
	}
	for _, r := range results {
		switch r.Status {
		case StatusModified:
			summary.Modified++
		case StatusDeleted:
			summary.Deleted++
		case StatusRenamed:
			summary.Renamed++
		case StatusSkipped:
			summary.Skipped++
		case StatusError:
			summary.Errors++
		}
	}
	return summary
}

func writeSessionReport(plan *Plan, s *session.Session, summary *runSummary) {
	report := &session.Report{
		Scanned: plan.Scanned,
		Changed: summary.Modified + summary.Deleted + summary.Renamed,
		Skipped: summary.Skipped,
		Failed:  summary.Errors,
	}
	for _, r := range summary.Results {
		report.Changes = append(report.Changes, session.Change{
			Path:   r.Path,
			Action: r.Status,
			Detail: r.Detail,
			Backup: r.Backup,
		})
	}
	if err := s.WriteReport(report); err != nil {
		s.Log.Error("failed to write session report", "err", err)
	}
}

func printRunSummary(plan *Plan, s *session.Session, summary *runSummary) {
	changed := summary.Modified + summary.Deleted + summary.Renamed
	fmt.Println(ui.Successf("%s: %d %s changed", plan.Op, changed, plural(changed, "file")))
	if summary.Skipped > 0 {
		fmt.Printf("  Skipped: %d\n", summary.Skipped)
	}
	if summary.Errors > 0 {
		fmt.Printf("  Errors: %d\n", summary.Errors)
	}
	fmt.Println(ui.Hint(fmt.Sprintf("Session: %s", s.Dir())))
}

// plural returns the plural form of a word for a count.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
