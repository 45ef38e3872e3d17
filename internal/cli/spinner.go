package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/chartfit/pkg/pipeline"
)

// Spinner animates batch progress: how many of the charts are built, how
// many came from the cache and which spec finished last. It stops when its
// context is cancelled.
type Spinner struct {
	w       io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string

	mu      sync.Mutex
	total   int
	built   int
	cached  int
	last    string
	drawn   int // width of the last rendered line
	running bool
}

// newSpinner creates a spinner for a batch of total charts drawing to w.
func newSpinner(ctx context.Context, w io.Writer, total int) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		parent:  ctx,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		total:   total,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				msg := s.message()
				fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(s.frames[i%len(s.frames)]), StyleDim.Render(msg))
				s.drawn = len(msg) + 2
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// Record counts a finished chart. It is safe to call from the batch's
// worker goroutines.
func (s *Spinner) Record(res *pipeline.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.built++
	if res.CacheInfo.ConfigHit {
		s.cached++
	}
	s.last = res.Name
}

// message is the in-flight status line. Callers hold mu.
func (s *Spinner) message() string {
	msg := fmt.Sprintf("Building charts %d/%d", s.built, s.total)
	if s.last != "" {
		msg += " (" + s.last + ")"
	}
	return msg
}

// Summary describes the finished batch, e.g. "Built 12 charts, 4 cached".
func (s *Spinner) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	noun := "charts"
	if s.built == 1 {
		noun = "chart"
	}
	msg := fmt.Sprintf("Built %d %s", s.built, noun)
	if s.cached > 0 {
		msg += fmt.Sprintf(", %d cached", s.cached)
	}
	return msg
}

// Stop stops the spinner and clears the line. It is a no-op when the spinner
// was never started.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	if !running {
		return
	}
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.drawn))
	s.drawn = 0
}

// StopWithSuccess stops the spinner and prints the batch summary.
func (s *Spinner) StopWithSuccess() {
	s.Stop()
	printSuccess("%s", s.Summary())
}

// StopWithError stops the spinner and reports how far the batch got.
func (s *Spinner) StopWithError() {
	s.Stop()
	s.mu.Lock()
	built, total := s.built, s.total
	s.mu.Unlock()
	printError("Batch failed after %d/%d charts", built, total)
}

// Cancelled reports whether the batch's context was cancelled, as opposed to
// the spinner being stopped.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
