package testutil

import (
	"os"
	"strings"
)

// AssertFileExists fails the test unless rel exists.
func (v *TestVault) AssertFileExists(rel string) {
	v.t.Helper()
	if !v.FileExists(rel) {
		v.t.Errorf("%s: expected file to exist", rel)
	}
}

// AssertFileNotExists fails the test if rel exists.
func (v *TestVault) AssertFileNotExists(rel string) {
	v.t.Helper()
	if v.FileExists(rel) {
		v.t.Errorf("%s: file should not exist", rel)
	}
}

// AssertFileContains fails the test unless rel's content includes substr.
func (v *TestVault) AssertFileContains(rel, substr string) {
	v.t.Helper()
	if got := v.ReadFile(rel); !strings.Contains(got, substr) {
		v.t.Errorf("%s: missing %q in:\n%s", rel, substr, got)
	}
}

// AssertFileNotContains fails the test if rel's content includes substr.
func (v *TestVault) AssertFileNotContains(rel, substr string) {
	v.t.Helper()
	if got := v.ReadFile(rel); strings.Contains(got, substr) {
		v.t.Errorf("%s: unexpected %q in:\n%s", rel, substr, got)
	}
}

// AssertFileEquals fails the test unless rel's content is exactly want.
func (v *TestVault) AssertFileEquals(rel, want string) {
	v.t.Helper()
	if got := v.ReadFile(rel); got != want {
		v.t.Errorf("%s content mismatch\ngot:\n%s\nwant:\n%s", rel, got, want)
	}
}

// AssertDirExists fails the test unless rel exists and is a directory.
func (v *TestVault) AssertDirExists(rel string) {
	v.t.Helper()
	info, err := os.Stat(v.abs(rel))
	if err != nil {
		v.t.Errorf("%s: expected directory: %v", rel, err)
		return
	}
	if !info.IsDir() {
		v.t.Errorf("%s: expected a directory, found a file", rel)
	}
}
