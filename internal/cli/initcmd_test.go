package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crypdick/obsidian-tools/internal/config"
)

func TestRunInitCreatesLayout(t *testing.T) {
	withJSONOutput(t, false)
	home := t.TempDir()
	t.Setenv(config.EnvConfigPath, filepath.Join(home, "config.toml"))
	vaultDir := filepath.Join(t.TempDir(), "vault")

	out := captureStdout(t, func() {
		if err := runInit(vaultDir); err != nil {
			t.Fatalf("runInit: %v", err)
		}
	})

	if _, err := os.Stat(filepath.Join(vaultDir, ".obsidian-tools")); err != nil {
		t.Errorf(".obsidian-tools not created: %v", err)
	}
	gi, err := os.ReadFile(filepath.Join(vaultDir, ".gitignore"))
	if err != nil {
		t.Fatalf(".gitignore not created: %v", err)
	}
	if !strings.Contains(string(gi), ".obsidian-tools/") {
		t.Errorf(".gitignore missing entry:\n%s", gi)
	}
	cfg, err := os.ReadFile(filepath.Join(home, "config.toml"))
	if err != nil {
		t.Fatalf("config not created: %v", err)
	}
	if !strings.Contains(string(cfg), "default_vault") {
		t.Errorf("config template missing default_vault:\n%s", cfg)
	}
	if !strings.Contains(out, "Created config") {
		t.Errorf("output missing config line:\n%s", out)
	}
}

func TestRunInitKeepsExistingGitignore(t *testing.T) {
	withJSONOutput(t, false)
	home := t.TempDir()
	t.Setenv(config.EnvConfigPath, filepath.Join(home, "config.toml"))
	vaultDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(vaultDir, ".gitignore"), []byte("node_modules/\n"), 0644); err != nil {
		t.Fatal(err)
	}

	captureStdout(t, func() {
		if err := runInit(vaultDir); err != nil {
			t.Fatalf("runInit: %v", err)
		}
	})

	gi, err := os.ReadFile(filepath.Join(vaultDir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(gi)
	if !strings.Contains(content, "node_modules/") {
		t.Errorf("existing entries dropped:\n%s", content)
	}
	if !strings.Contains(content, ".obsidian-tools/") {
		t.Errorf("entry not appended:\n%s", content)
	}
}

func TestRunInitIdempotent(t *testing.T) {
	withJSONOutput(t, false)
	home := t.TempDir()
	t.Setenv(config.EnvConfigPath, filepath.Join(home, "config.toml"))
	vaultDir := t.TempDir()

	for i := 0; i < 2; i++ {
		captureStdout(t, func() {
			if err := runInit(vaultDir); err != nil {
				t.Fatalf("runInit pass %d: %v", i+1, err)
			}
		})
	}

	gi, err := os.ReadFile(filepath.Join(vaultDir, ".gitignore"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(gi), ".obsidian-tools/"); n != 1 {
		t.Errorf("entry appears %d times, want 1:\n%s", n, gi)
	}
}

func TestRunInitJSON(t *testing.T) {
	withJSONOutput(t, true)
	home := t.TempDir()
	t.Setenv(config.EnvConfigPath, filepath.Join(home, "config.toml"))
	vaultDir := t.TempDir()

	out := captureStdout(t, func() {
		if err := runInit(vaultDir); err != nil {
			t.Fatalf("runInit: %v", err)
		}
	})

	var resp struct {
		OK   bool `json:"ok"`
		Data struct {
			Vault         string `json:"vault"`
			Config        string `json:"config"`
			ConfigCreated bool   `json:"config_created"`
			Gitignore     string `json:"gitignore"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("failed to parse JSON output: %v\n%s", err, out)
	}
	if !resp.OK {
		t.Error("expected ok=true")
	}
	if resp.Data.Vault != vaultDir {
		t.Errorf("vault = %q, want %q", resp.Data.Vault, vaultDir)
	}
	if !resp.Data.ConfigCreated {
		t.Error("expected config_created=true")
	}
	if resp.Data.Gitignore != "created" {
		t.Errorf("gitignore = %q, want created", resp.Data.Gitignore)
	}
}
