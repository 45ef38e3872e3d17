package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/chartfit/pkg/pipeline"
)

// syncBuffer guards a buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func chartResult(name string, cached bool) *pipeline.Result {
	return &pipeline.Result{Name: name, CacheInfo: pipeline.CacheInfo{ConfigHit: cached}}
}

func TestSpinnerSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []*pipeline.Result
		want    string
	}{
		{"empty", nil, "Built 0 charts"},
		{"single fresh", []*pipeline.Result{chartResult("revenue", false)}, "Built 1 chart"},
		{"all fresh", []*pipeline.Result{chartResult("revenue", false), chartResult("signups", false)}, "Built 2 charts"},
		{"mixed", []*pipeline.Result{
			chartResult("revenue", true),
			chartResult("signups", false),
			chartResult("browsers", true),
		}, "Built 3 charts, 2 cached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSpinner(context.Background(), &bytes.Buffer{}, len(tt.results))
			for _, res := range tt.results {
				s.Record(res)
			}
			if got := s.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpinnerMessage(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, 3)
	if got, want := s.message(), "Building charts 0/3"; got != want {
		t.Errorf("message() = %q, want %q", got, want)
	}
	s.Record(chartResult("revenue", false))
	s.Record(chartResult("signups", true))
	if got, want := s.message(), "Building charts 2/3 (signups)"; got != want {
		t.Errorf("message() = %q, want %q", got, want)
	}
}

func TestSpinnerRendersProgress(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, 2)
	s.Start()
	s.Record(chartResult("revenue", false))
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if got := out.String(); !strings.Contains(got, "Building charts 1/2 (revenue)") {
		t.Errorf("spinner output = %q, want progress for revenue", got)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerRecordConcurrent(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, 40)
	var wg sync.WaitGroup
	for i := range 40 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Record(chartResult("chart", i%4 == 0))
		}()
	}
	wg.Wait()
	if got, want := s.Summary(), "Built 40 charts, 10 cached"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &bytes.Buffer{}, 5)
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Cancelled() = false after the batch context was cancelled")
	}
	s.Stop()
}

func TestSpinnerStop(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		s := newSpinner(context.Background(), &bytes.Buffer{}, 1)
		s.Start()
		s.Stop()
		s.Stop()
	})
	t.Run("never started", func(t *testing.T) {
		var out bytes.Buffer
		s := newSpinner(context.Background(), &out, 1)
		s.Stop()
		if out.Len() != 0 {
			t.Errorf("unstarted spinner wrote %q", out.String())
		}
	})
}
