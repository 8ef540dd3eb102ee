package hw

import (
	"errors"
	"sync/atomic"

	"ntsctv/emu/log"
)

// VideoOut is the composite video generator. It owns the palette, a pair of
// scanline sample buffers, and the double-buffer scheduling that keeps the
// transfer engine fed: while one buffer streams out, the completion handler
// synthesizes the next scanline into the other.
type VideoOut struct {
	// Palette is filled via SetColor during setup and must not change
	// once Start has been called.
	Palette Palette

	fb  []uint8
	eng TransferEngine

	bufs  [2][SamplesPerLine]uint16
	chans [2]Channel
	line  int
	curs  int

	started bool

	// Observability, updated at the active-region boundaries. Safe to
	// read from other goroutines.
	active atomic.Bool
	frames atomic.Uint32
}

// NewVideoOut creates a video generator reading pixels from fb, which must
// hold one palette index per framebuffer pixel. The producer may keep
// writing fb while video runs; each pixel is read once per frame, when its
// scanline is synthesized.
func NewVideoOut(fb []uint8, eng TransferEngine) *VideoOut {
	if len(fb) != FrameWidth*FrameHeight {
		panic("video: framebuffer size mismatch")
	}
	return &VideoOut{fb: fb, eng: eng}
}

// SetColor encodes an RGB color into the palette at the given index.
func (v *VideoOut) SetColor(index, r, g, b uint8) {
	v.Palette.SetColor(index, r, g, b)
}

// Start claims a channel pair, prefills both buffers with the first two
// scanlines, and triggers the first transfer. The line counter begins at
// zero, so the two prefilled lines repeat once before the sequence settles;
// both are equalizing lines, so the stream is well formed from the first
// sample.
func (v *VideoOut) Start() error {
	if v.started {
		return errors.New("video output already started")
	}
	a, b, err := v.eng.ClaimChannelPair()
	if err != nil {
		return err
	}
	v.chans = [2]Channel{a, b}
	v.eng.SetOnComplete(v.OnTransferComplete)

	v.line = 0
	v.curs = 0
	v.generate(v.bufs[0][:], 0)
	v.generate(v.bufs[1][:], 1)
	v.eng.SetSource(a, v.bufs[0][:])
	v.eng.SetSource(b, v.bufs[1][:])

	v.started = true
	log.ModVideo.InfoZ("video output started").
		Uint8("cha", uint8(a)).
		Uint8("chb", uint8(b)).
		End()
	return v.eng.Start(a)
}

// OnTransferComplete refills the buffer that just finished streaming with
// the current scanline and re-arms its channel. Hardware chaining already
// switched the stream to the other buffer before this runs.
func (v *VideoOut) OnTransferComplete(ch Channel) {
	slot := 0
	if ch == v.chans[1] {
		slot = 1
	}
	v.generate(v.bufs[slot][:], v.line)
	v.eng.SetSource(ch, v.bufs[slot][:])

	v.line++
	if v.line >= TotalLines {
		// The wrap doubles as the end of the picture: the last line of
		// the frame is still active video.
		v.line = 0
		v.active.Store(false)
		n := v.frames.Add(1)
		if n%60 == 0 {
			log.ModVideo.DebugZ("frame synthesized").Uint32("frame", n).End()
		}
	}
}

// InActiveRegion reports whether scanline synthesis is currently inside the
// visible picture. Producers can use it to time framebuffer updates.
func (v *VideoOut) InActiveRegion() bool {
	return v.active.Load()
}

// FrameCount returns the number of complete frames synthesized since Start
// or the last reset.
func (v *VideoOut) FrameCount() uint32 {
	return v.frames.Load()
}

// ResetFrameCount zeroes the frame counter.
func (v *VideoOut) ResetFrameCount() {
	v.frames.Store(0)
}
