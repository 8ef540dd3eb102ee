package hw

import (
	"testing"
)

type frameCollector struct {
	frames [][]byte
}

func (c *frameCollector) BeginFrame() []byte {
	return make([]byte, FrameWidth*FrameHeight*4)
}

func (c *frameCollector) EndFrame(buf []byte) {
	c.frames = append(c.frames, buf)
}

// The signal carries about four bits of amplitude, so decoded channels only
// come back within quantization error of the source color.
const decodeTolerance = 48

func closeEnough(got uint8, want uint8) bool {
	d := int(got) - int(want)
	return d >= -decodeTolerance && d <= decodeTolerance
}

// Full pipeline round trip: palette encoding, scanline synthesis, the
// simulated transfer engine, and composite decoding on the far end. The
// framebuffer shows vertical color bands; the decoded frame must show the
// same bands, within quantization error.
func TestMonitorRoundTrip(t *testing.T) {
	bands := []struct {
		name    string
		r, g, b uint8
	}{
		{"white", 255, 255, 255},
		{"gray", 128, 128, 128},
		{"red", 255, 0, 0},
		{"green", 0, 255, 0},
		{"blue", 0, 0, 255},
	}

	coll := &frameCollector{}
	d := NewSimDMA(NewMonitor(coll))
	fb := make([]uint8, FrameWidth*FrameHeight)
	v := NewVideoOut(fb, d)
	for i, band := range bands {
		v.SetColor(uint8(i), band.r, band.g, band.b)
	}
	bandWidth := FrameWidth / len(bands)
	for y := 0; y < FrameHeight; y++ {
		for x := 0; x < FrameWidth; x++ {
			fb[y*FrameWidth+x] = uint8(x / bandWidth)
		}
	}

	if err := v.Start(); err != nil {
		t.Fatal(err)
	}
	// Two frames of lines: the first replays the prefilled lines, so the
	// decoder's first complete frame spills into the second pass.
	d.RunFrame()
	d.RunFrame()
	if len(coll.frames) == 0 {
		t.Fatal("no frame decoded")
	}

	frame := coll.frames[len(coll.frames)-1]
	for i, band := range bands {
		// Sample the band center, away from edge transitions.
		x := i*bandWidth + bandWidth/2
		o := (FrameHeight/2*FrameWidth + x) * 4
		r, g, b := frame[o], frame[o+1], frame[o+2]
		if !closeEnough(r, band.r) || !closeEnough(g, band.g) || !closeEnough(b, band.b) {
			t.Errorf("band %s: decoded rgb(%d,%d,%d), want near rgb(%d,%d,%d)",
				band.name, r, g, b, band.r, band.g, band.b)
		}
		if frame[o+3] != 0xff {
			t.Errorf("band %s: alpha = %d", band.name, frame[o+3])
		}
	}
}

// The decoder must lock onto the broad vertical sync pulses rather than
// count lines from whatever point the stream started.
func TestMonitorVSyncLock(t *testing.T) {
	coll := &frameCollector{}
	m := NewMonitor(coll)

	ref := testVideo()
	ref.Palette.SetColor(0, 128, 128, 128)
	var buf [SamplesPerLine]uint16
	push := func(line int) {
		ref.generate(buf[:], line)
		for _, s := range buf {
			m.PushSample(s)
		}
	}

	// Start mid-frame, then play two full frames.
	for line := 100; line < TotalLines; line++ {
		push(line)
	}
	for frame := 0; frame < 2; frame++ {
		for line := 0; line < TotalLines; line++ {
			push(line)
		}
	}
	if len(coll.frames) != 2 {
		t.Fatalf("decoded %d frames, want 2", len(coll.frames))
	}
	// Locked alignment decodes the uniform gray across the visible rows.
	frame := coll.frames[0]
	rows := []int{0, VisibleRows / 2, VisibleRows - 1}
	for _, row := range rows {
		o := row * FrameWidth * 4
		if !closeEnough(frame[o], 128) {
			t.Errorf("row %d: r = %d, want near 128", row, frame[o])
		}
	}
	// Untransmitted framebuffer rows decode as opaque black.
	o := (FrameHeight - 1) * FrameWidth * 4
	if frame[o] != 0 || frame[o+3] != 0xff {
		t.Errorf("bottom row: rgba(%d,%d,%d,%d), want opaque black",
			frame[o], frame[o+1], frame[o+2], frame[o+3])
	}
}
