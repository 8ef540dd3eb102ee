package hw

// lineKind classifies a scanline number into the region of the NTSC frame
// that determines its waveform.
type lineKind int

const (
	kindEqualizing lineKind = iota // broad sync pulse, frame start
	kindVSync                      // burst reference after vertical sync
	kindBlank                      // blanking line, hsync and burst only
	kindActive                     // visible picture
	kindPostActive                 // first blanking lines after the picture
)

//go:generate go tool stringer -type=lineKind -trimprefix=kind

func classify(line int) lineKind {
	switch {
	case line < 2:
		return kindEqualizing
	case line == VSyncStartLine || line == VSyncStartLine+1:
		return kindVSync
	case line >= FirstActiveLine && line < PostActiveLine:
		return kindActive
	case line == PostActiveLine || line == PostActiveLine+1:
		return kindPostActive // see PostActiveLine: out of schedule
	default:
		return kindBlank
	}
}

// generate synthesizes scanline number line into buf, writing all
// SamplesPerLine elements. Entering the active region resets the render
// cursor and raises the active flag; each active line then advances the
// cursor one framebuffer row.
func (v *VideoOut) generate(buf []uint16, line int) {
	switch classify(line) {
	case kindEqualizing:
		// Broad pulse: sync for all but the last hsync-width samples.
		fill(buf[:SamplesPerLine-HSyncWidth], levelSync)
		fill(buf[SamplesPerLine-HSyncWidth:], levelBlank)

	case kindVSync, kindBlank:
		hblankPrefix(buf)
		fill(buf[ActiveStart:], levelBlank)

	case kindActive:
		if line == FirstActiveLine {
			v.curs = 0
			v.active.Store(true)
		}
		hblankPrefix(buf)
		pixels := v.fb[v.curs : v.curs+FrameWidth]
		out := buf[ActiveStart : ActiveStart+2*FrameWidth]
		for i, color := range pixels {
			// Two samples per pixel; odd pixels pick up where the
			// subcarrier left off, half a cycle in.
			phase := (i & 1) * 2
			out[2*i] = v.Palette[int(color)*4+phase]
			out[2*i+1] = v.Palette[int(color)*4+phase+1]
		}
		fill(buf[ActiveStart+2*FrameWidth:], levelBlank)
		v.curs += FrameWidth

	case kindPostActive:
		// Nominal region only: these line numbers lie past the frame
		// wrap, so the scheduler never requests them. Frame bookkeeping
		// happens at the wrap instead.
		hblankPrefix(buf)
		fill(buf[ActiveStart:], levelBlank)
	}
}

// hblankPrefix writes the standard horizontal blanking interval into the
// first ActiveStart samples: sync pulse, back porch, nine burst cycles and
// the breezeway up to active video.
func hblankPrefix(buf []uint16) {
	fill(buf[:HSyncWidth], levelSync)
	fill(buf[HSyncWidth:HSyncWidth+8], levelBlank)
	for i := 0; i < 9; i++ {
		c := buf[HSyncWidth+8+i*4:]
		c[0] = levelBlank
		c[1] = levelBurstLow
		c[2] = levelBlank
		c[3] = levelBurstHigh
	}
	fill(buf[HSyncWidth+8+9*4:ActiveStart], levelBlank)
}

func fill(buf []uint16, level uint16) {
	for i := range buf {
		buf[i] = level
	}
}
