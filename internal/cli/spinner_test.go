package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Testing...")
	s.Start()
	if s.Cancelled() {
		t.Error("Spinner cancelled before Stop")
	}
	time.Sleep(100 * time.Millisecond)
	s.Stop()
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	// Cancel the context
	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()

	// Wait for timeout
	time.Sleep(100 * time.Millisecond)

	// Spinner should be cancelled due to timeout
	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Testing idempotent stop...")
	s.Start()

	// Stop multiple times should not panic
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Testing success...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")
}

func TestSpinnerStopWithError(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Testing error...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed!")
}

func TestNewSpinnerWithContextNilParent(t *testing.T) {
	s := newSpinnerWithContext(context.Background(), "Test")
	s.Start()
	s.Stop()
}

func TestSpinnerUpdate(t *testing.T) {
	var buf syncBuffer
	s := newSpinnerWithContext(context.Background(), "Loading dashboard")
	s.out = &buf
	s.Start()
	s.Update("Rendering 3 panels")
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if got := s.Message(); got != "Rendering 3 panels" {
		t.Errorf("Message() = %q", got)
	}
	if !strings.Contains(buf.String(), "Rendering 3 panels") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSpinnerFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newSpinnerWithContext(ctx, "Loading dashboard")
	s.out = &syncBuffer{}
	s.Start()
	s.Update("Rendering 3 panels")

	if got := spinnerFailure(s); got != "Rendering 3 panels: failed" {
		t.Errorf("spinnerFailure() = %q, want %q", got, "Rendering 3 panels: failed")
	}
	cancel()
	if got := spinnerFailure(s); got != "Rendering 3 panels: cancelled" {
		t.Errorf("spinnerFailure() after cancel = %q, want %q", got, "Rendering 3 panels: cancelled")
	}
	failSpinner(s)
	failSpinner(nil)
}

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
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
