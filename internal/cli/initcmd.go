package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crypdick/obsidian-tools/internal/config"
	"github.com/crypdick/obsidian-tools/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Prepare a vault for obsidian-tools",
	Long: `Sets up a vault directory for use with obt.

Creates:
  - <path>/.obsidian-tools/   (sessions, backups, hash cache)
  - .gitignore entry for it   (derived files, never content)
  - the global config file    (commented template, if missing)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(args[0])
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}

	if err := os.MkdirAll(filepath.Join(abs, ".obsidian-tools"), 0755); err != nil {
		return handleError(ErrFileWriteError,
			fmt.Errorf("failed to create .obsidian-tools directory: %w", err), "")
	}

	gitignoreStatus, err := ensureGitignore(abs)
	if err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	configPath, configExisted := config.DefaultPath(), true
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configExisted = false
	}
	if configPath, err = config.CreateDefault(); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(struct {
			Vault         string `json:"vault"`
			Config        string `json:"config"`
			ConfigCreated bool   `json:"config_created"`
			Gitignore     string `json:"gitignore"`
		}{abs, configPath, !configExisted, gitignoreStatus}, nil)
		return nil
	}

	fmt.Println(ui.Successf("Ready: %s", ui.FilePath(filepath.Join(abs, ".obsidian-tools"))))
	switch gitignoreStatus {
	case "created":
		fmt.Println(ui.Success("Created .gitignore"))
	case "updated":
		fmt.Println(ui.Success("Updated .gitignore (ignores .obsidian-tools/)"))
	default:
		fmt.Println(ui.Info(".gitignore already ignores .obsidian-tools/"))
	}
	if configExisted {
		fmt.Println(ui.Infof("Config kept: %s", ui.FilePath(configPath)))
	} else {
		fmt.Println(ui.Successf("Created config: %s", ui.FilePath(configPath)))
	}
	fmt.Println()
	fmt.Println(ui.Hint(fmt.Sprintf("Add the vault to %s and set default_vault to skip --vault-path.", configPath)))
	return nil
}

// ensureGitignore makes the vault's .gitignore ignore the session and cache
// directory. Session backups hold full copies of notes; committing them
// would double every changed file in history.
func ensureGitignore(root string) (string, error) {
	const entry = ".obsidian-tools/"
	gitignorePath := filepath.Join(root, ".gitignore")

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read .gitignore: %w", err)
	}

	for _, line := range strings.Split(existing, "\n") {
		if strings.TrimSpace(line) == entry {
			return "unchanged", nil
		}
	}

	if existing == "" {
		content := "# obsidian-tools derived files (sessions, backups, hash cache)\n" + entry + "\n"
		if err := os.WriteFile(gitignorePath, []byte(content), 0644); err != nil {
			return "", fmt.Errorf("failed to write .gitignore: %w", err)
		}
		return "created", nil
	}

	content := strings.TrimRight(existing, "\n") + "\n\n# obsidian-tools\n" + entry + "\n"
	if err := os.WriteFile(gitignorePath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return "updated", nil
}
