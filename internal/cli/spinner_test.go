package cli

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSpinnerSilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Computing frame...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal writer", buf.String())
	}
}

func TestSpinnerDrawsWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinnerTo(context.Background(), &buf, "Computing frame...")
	s.enabled = true
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !bytes.Contains(buf.Bytes(), []byte("Computing frame...")) {
		t.Errorf("spinner output %q lacks its message", buf.String())
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\r")) {
		t.Error("spinner should clear its line on stop")
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()
	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner("Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessages(t *testing.T) {
	s := newSpinner("Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")

	s = newSpinner("Testing error...")
	s.Start()
	s.StopWithError("Failed!")
}
