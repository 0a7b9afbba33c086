package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	builtindocs "github.com/crypdick/obsidian-tools/docs"
	"github.com/crypdick/obsidian-tools/internal/markdown"
	"github.com/crypdick/obsidian-tools/internal/ui"
)

const docsRoot = "guide"

// docTopic is one embedded guide page.
type docTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

var docsStdoutIsTerminal = func() bool { return isatty.IsTerminal(os.Stdout.Fd()) }

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse the bundled guides",
	Long: `Long-form documentation shipped inside the binary: the workflow, the
session/backup layout, and the JSON envelope. Without arguments, lists the
available topics; with a topic, prints it (rendered on a terminal, raw
markdown otherwise).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runDocsList()
		}
		return runDocsShow(args[0])
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}

func loadDocTopics() ([]docTopic, error) {
	entries, err := fs.ReadDir(builtindocs.FS, docsRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundled docs: %w", err)
	}

	var topics []docTopic
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		fsPath := path.Join(docsRoot, e.Name())
		data, err := fs.ReadFile(builtindocs.FS, fsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", fsPath, err)
		}
		id := strings.TrimSuffix(e.Name(), ".md")
		title := markdown.Title(string(data))
		if title == "" {
			title = id
		}
		topics = append(topics, docTopic{ID: id, Title: title, Path: fsPath})
	}

	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

func runDocsList() error {
	topics, err := loadDocTopics()
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(struct {
			Topics []docTopic `json:"topics"`
		}{topics}, &Meta{Count: len(topics)})
		return nil
	}

	fmt.Println(ui.Header("Guides"))
	fmt.Println()
	tbl := ui.NewTable(2)
	for _, t := range topics {
		tbl.AddRow(t.ID, t.Title)
	}
	fmt.Print(tbl.String())
	fmt.Println()
	fmt.Println(ui.Hint("obt docs <topic> to read one."))
	return nil
}

func runDocsShow(id string) error {
	id = strings.TrimSuffix(id, ".md")
	topics, err := loadDocTopics()
	if err != nil {
		return handleError(ErrInternal, err, "")
	}

	var topic *docTopic
	for i := range topics {
		if topics[i].ID == id {
			topic = &topics[i]
			break
		}
	}
	if topic == nil {
		return handleErrorMsg(ErrInvalidInput,
			fmt.Sprintf("unknown topic: %s", id), "Run 'obt docs' to list topics")
	}

	data, err := fs.ReadFile(builtindocs.FS, topic.Path)
	if err != nil {
		return handleError(ErrInternal, err, "")
	}
	content := string(data)

	if isJSONOutput() {
		outputSuccess(struct {
			Topic   string `json:"topic"`
			Title   string `json:"title"`
			Content string `json:"content"`
		}{topic.ID, topic.Title, content}, nil)
		return nil
	}

	if docsStdoutIsTerminal() {
		display := ui.NewDisplayContext()
		if rendered, err := ui.RenderMarkdown(content, display.TermWidth); err == nil {
			fmt.Print(rendered)
			return nil
		}
	}
	fmt.Print(content)
	return nil
}
