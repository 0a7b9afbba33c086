// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crypdick/obsidian-tools/internal/config"
	"github.com/crypdick/obsidian-tools/internal/ui"
	"github.com/crypdick/obsidian-tools/internal/vault"
)

// Environment variables honored by directory resolution, typically set in a
// .env file next to where the tool is run.
const (
	EnvVaultPath      = "VAULT_PATH"
	EnvFlashcardsPath = "FLASHCARDS_PATH"
)

var (
	// Global flags
	vaultName     string // Named vault from config
	vaultPathFlag string // Explicit path
	configPath    string
	verbose       bool

	// Resolved values
	resolvedVaultPath string
	cfg               *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "obt",
	Short: "obsidian-tools - batch maintenance for Obsidian vaults",
	Long: `obt runs batch maintenance over an Obsidian vault: merge duplicated
front-matter blocks, delete duplicate notes, strip front matter, and add
LIMIT clauses to dataview queries.

Every command previews its changes first; nothing is written without --go.
Applied runs back up every touched file under .obsidian-tools/sessions/.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip vault resolution for commands that don't need it
		switch cmd.Name() {
		case "version", "completion", "help", "docs", "init":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		config.LoadEnv()

		var err error
		cfg, err = loadGlobalConfig()
		if err != nil {
			return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "")
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		// Resolve vault path: explicit path > named vault > environment > default.
		// Left empty when nothing is configured; commands that received a
		// directory argument treat it as the root instead.
		if vaultPathFlag != "" {
			resolvedVaultPath = vaultPathFlag
		} else if vaultName != "" {
			resolvedVaultPath, err = cfg.GetVaultPath(vaultName)
			if err != nil {
				return handleErrorMsg(ErrVaultNotFound,
					fmt.Sprintf("vault '%s' not found in config", vaultName),
					"Check the [vaults] table in your config.toml")
			}
		} else if env := os.Getenv(EnvVaultPath); env != "" {
			resolvedVaultPath = env
		} else if cfg.DefaultVault != "" {
			resolvedVaultPath, err = cfg.GetVaultPath("")
			if err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
		}

		if resolvedVaultPath != "" {
			if _, err := os.Stat(resolvedVaultPath); os.IsNotExist(err) {
				return handleErrorMsg(ErrVaultNotFound,
					fmt.Sprintf("vault not found: %s", resolvedVaultPath), "")
			}
		}

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&vaultName, "vault", "v", "", "Named vault from config")
	rootCmd.PersistentFlags().StringVar(&vaultPathFlag, "vault-path", "", "Explicit path to vault directory")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging on stderr")
}

func loadGlobalConfig() (*config.Config, error) {
	var loaded *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loaded, err = config.LoadFrom(config.ResolveConfigPath(configPath))
	} else {
		loaded, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		loaded = &config.Config{}
	}
	return loaded, nil
}

// resolveScanDir resolves the directory a command operates on and the vault
// root that anchors sessions and the hash cache.
//
// An explicit directory argument wins; relative arguments are joined to the
// configured vault. Without an argument the vault root itself is scanned.
// When no vault is configured at all, the argument becomes its own root.
func resolveScanDir(args []string) (dir, root string, err error) {
	root = resolvedVaultPath

	if len(args) > 0 && args[0] != "" {
		dir = args[0]
		if !filepath.IsAbs(dir) && root != "" {
			dir = filepath.Join(root, dir)
		}
		if abs, absErr := filepath.Abs(dir); absErr == nil {
			dir = abs
		}
		// A directory outside the configured vault anchors its own
		// sessions and cache; rebasing paths onto a foreign root would
		// let backups escape the session directory.
		if root == "" || vault.EnsureWithin(root, dir) != nil {
			root = dir
		}
	} else {
		if root == "" {
			return "", "", fmt.Errorf(`no vault specified

Either:
  1. Pass a directory argument
  2. Use --vault <name> (from config)
  3. Use --vault-path /path/to/vault
  4. Set VAULT_PATH in the environment or a .env file
  5. Set default_vault in ~/.config/obsidian-tools/config.toml`)
		}
		dir = root
	}

	info, statErr := os.Stat(dir)
	if statErr != nil || !info.IsDir() {
		return "", "", fmt.Errorf("directory not found: %s", dir)
	}
	return dir, root, nil
}

// addRunFlags registers the flags shared by every batch command.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&goFlag, "go", false, "Apply changes (default is a dry run)")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
}

// flashcardsDir returns the default directory for the strip command:
// FLASHCARDS_PATH (joined to the vault when relative) or <vault>/flashcards.
func flashcardsDir(root string) string {
	if env := os.Getenv(EnvFlashcardsPath); env != "" {
		if filepath.IsAbs(env) {
			return env
		}
		return filepath.Join(root, env)
	}
	return filepath.Join(root, "flashcards")
}
