package ui

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a braille spinner on stderr while a long operation
// runs. Stdout stays untouched so command output and --json are never
// interleaved with animation frames.
type Spinner struct {
	message   string
	done      chan struct{}
	wg        sync.WaitGroup
	animating bool
}

// NewSpinner returns a stopped spinner labeled with message.
func NewSpinner(message string) *Spinner {
	return &Spinner{message: message, done: make(chan struct{})}
}

// Start begins animating. Off a terminal it prints the message once
// and returns.
func (s *Spinner) Start() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintf(os.Stderr, "%s...\n", s.message)
		return
	}

	s.animating = true
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-s.done:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				glyph := spinnerFrames[frame%len(spinnerFrames)]
				fmt.Fprintf(os.Stderr, "\r%s %s", Bold.Render(glyph), s.message)
			}
		}
	}()
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	if !s.animating {
		return
	}
	s.animating = false
	close(s.done)
	s.wg.Wait()
}

// Progress counts completed units of a sized operation on stderr, as
// "message (done/total)". Increment is safe to call from multiple
// goroutines.
type Progress struct {
	message string
	total   int
	count   atomic.Int64
	tty     bool
}

// NewProgress returns a progress counter for total units.
func NewProgress(message string, total int) *Progress {
	return &Progress{
		message: message,
		total:   total,
		tty:     isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Increment records one completed unit and redraws the counter.
func (p *Progress) Increment() {
	n := p.count.Add(1)
	if p.tty {
		fmt.Fprintf(os.Stderr, "\r%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d)", n, p.total)))
	}
}

// Done clears the counter line.
func (p *Progress) Done() {
	if p.tty {
		fmt.Fprint(os.Stderr, "\r\033[K")
	}
}
