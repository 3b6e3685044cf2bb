// Package spinner shows progress for slow media checks on the terminal.
package spinner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const interval = 80 * time.Millisecond

// Spinner animates a message on a terminal. When the writer is not a
// terminal it prints each message once on its own line instead.
type Spinner struct {
	w           io.Writer
	interactive bool

	mu      sync.Mutex
	message string
	width   int

	done     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once
}

// New returns a spinner writing to w. Animation is enabled only when w is
// an *os.File attached to a terminal.
func New(w io.Writer) *Spinner {
	interactive := false
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		interactive = true
	}
	return &Spinner{
		w:           w,
		interactive: interactive,
		done:        make(chan struct{}),
		cleared:     make(chan struct{}),
	}
}

// Start begins showing message. It returns s so callers can defer Stop.
func (s *Spinner) Start(message string) *Spinner {
	s.Update(message)
	if !s.interactive {
		close(s.cleared)
		return s
	}
	go s.loop()
	return s
}

// Update replaces the message shown next to the spinner.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if message == s.message {
		return
	}
	s.message = message
	if w := runewidth.StringWidth(message) + 2; w > s.width {
		s.width = w
	}
	if !s.interactive {
		fmt.Fprintln(s.w, message) //nolint:errcheck
	}
}

// Stop halts the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.cleared
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for i := 0; ; i++ {
		select {
		case <-s.done:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width)) //nolint:errcheck
			s.mu.Unlock()
			close(s.cleared)
			return
		case <-ticker.C:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s %s", frames[i%len(frames)], runewidth.FillRight(s.message, s.width-2)) //nolint:errcheck
			s.mu.Unlock()
		}
	}
}

// Start is shorthand for New(w).Start(message). Call the returned function
// to stop the spinner.
func Start(w io.Writer, message string) (stop func()) {
	return New(w).Start(message).Stop
}
