package cli

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

// stdoutMu serializes tests that swap os.Stdout.
var stdoutMu sync.Mutex

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything fn wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	stdoutMu.Lock()
	defer stdoutMu.Unlock()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	var out strings.Builder
	done := make(chan error, 1)
	go func() {
		_, copyErr := io.Copy(&out, r)
		done <- copyErr
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	if err := <-done; err != nil {
		t.Fatalf("read captured output: %v", err)
	}
	_ = r.Close()
	return out.String()
}
