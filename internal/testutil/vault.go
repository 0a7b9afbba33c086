// Package testutil builds throwaway vaults for tests that need real
// files on disk.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestVault is a temporary vault populated from a builder chain:
//
//	v := testutil.NewTestVault(t).WithFile("a.md", "# A\n").Build()
type TestVault struct {
	Path string

	t     *testing.T
	files map[string]string
}

// NewTestVault starts an empty vault description. Nothing touches disk
// until Build.
func NewTestVault(t *testing.T) *TestVault {
	t.Helper()
	return &TestVault{t: t, files: map[string]string{}}
}

// WithFile stages a file at a vault-relative path.
func (v *TestVault) WithFile(rel, content string) *TestVault {
	v.files[rel] = content
	return v
}

// WithNote stages a Markdown note from a front matter block and a body.
func (v *TestVault) WithNote(rel, frontMatter, body string) *TestVault {
	return v.WithFile(rel, frontMatter+"\n"+body)
}

// Build creates the vault under t.TempDir and writes every staged file.
func (v *TestVault) Build() *TestVault {
	v.t.Helper()
	v.Path = v.t.TempDir()
	for rel, content := range v.files {
		v.WriteFile(rel, content)
	}
	return v
}

func (v *TestVault) abs(rel string) string {
	return filepath.Join(v.Path, rel)
}

// WriteFile writes a file into the built vault, creating parent
// directories as needed.
func (v *TestVault) WriteFile(rel, content string) {
	v.t.Helper()
	path := v.abs(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		v.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		v.t.Fatalf("write %s: %v", rel, err)
	}
}

// ReadFile returns a vault file's content, failing the test if it cannot
// be read.
func (v *TestVault) ReadFile(rel string) string {
	v.t.Helper()
	data, err := os.ReadFile(v.abs(rel))
	if err != nil {
		v.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// FileExists reports whether rel exists in the vault.
func (v *TestVault) FileExists(rel string) bool {
	_, err := os.Stat(v.abs(rel))
	return err == nil
}
