package emu

import (
	"context"
	"testing"
	"time"

	"ntsctv/hw"
)

// testingOutput captures decoded frames, headless.
type testingOutput struct {
	framebuf []byte
	frames   int
	closed   bool
}

func newTestingOutput() *testingOutput {
	return &testingOutput{
		framebuf: make([]byte, hw.FrameWidth*hw.FrameHeight*4),
	}
}

func (to *testingOutput) BeginFrame() []byte  { return to.framebuf }
func (to *testingOutput) EndFrame(buf []byte) { to.frames++ }
func (to *testingOutput) Poll() bool          { return true }
func (to *testingOutput) Close()              { to.closed = true }

func TestEmulatorRunMaxFrames(t *testing.T) {
	out := newTestingOutput()
	cfg := Config{Headless: true, MaxFrames: 4}
	e, err := LaunchWithOutput(cfg, out)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := e.Video.FrameCount(); got != 4 {
		t.Errorf("synthesized %d frames, want 4", got)
	}
	// The first frame straddles the startup replay of the two prefilled
	// lines, so the decoder completes at least MaxFrames-1 frames.
	if out.frames < 3 {
		t.Errorf("decoded %d frames, want at least 3", out.frames)
	}
	if !out.closed {
		t.Error("output not closed")
	}
}

func TestEmulatorStop(t *testing.T) {
	out := newTestingOutput()
	e, err := LaunchWithOutput(Config{Headless: true}, out)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()
	time.Sleep(50 * time.Millisecond)
	e.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestEmulatorContextCancel(t *testing.T) {
	out := newTestingOutput()
	e, err := LaunchWithOutput(Config{Headless: true}, out)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// A decoded frame of the demo pattern uses a wide spread of palette
// indexes, which shows up as a wide spread of decoded colors.
func TestEmulatorPatternVariety(t *testing.T) {
	out := newTestingOutput()
	cfg := Config{Headless: true, MaxFrames: 3}
	e, err := LaunchWithOutput(cfg, out)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	seen := make(map[[3]byte]bool)
	frame := out.framebuf
	for o := 0; o < hw.VisibleRows*hw.FrameWidth*4; o += 4 {
		seen[[3]byte{frame[o], frame[o+1], frame[o+2]}] = true
	}
	if len(seen) < 16 {
		t.Errorf("decoded frame has only %d distinct colors", len(seen))
	}
}
