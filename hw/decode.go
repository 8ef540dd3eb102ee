package hw

import (
	"ntsctv/emu/log"
)

// FrameSink receives decoded RGBA frames. BeginFrame returns a buffer of
// FrameWidth*FrameHeight*4 bytes for the decoder to paint; EndFrame hands
// the painted buffer back for display.
type FrameSink interface {
	BeginFrame() []byte
	EndFrame(buf []byte)
}

// Monitor is a software composite decoder: it consumes the raw quantized
// sample stream, locks onto the frame structure by counting samples,
// recovers luma and the two chroma axes from the four subcarrier phases and
// paints RGBA frames into its sink. It is the inverse of the palette
// encoder, up to quantization error.
type Monitor struct {
	out FrameSink

	line      int
	pos       int
	prevBroad bool
	samples   [SamplesPerLine]uint16
	frame     []byte
}

func NewMonitor(out FrameSink) *Monitor {
	return &Monitor{out: out}
}

// PushSample implements SampleSink.
func (m *Monitor) PushSample(level uint16) {
	m.samples[m.pos] = level
	m.pos++
	if m.pos < SamplesPerLine {
		return
	}
	m.pos = 0
	m.lockVSync()
	m.scanline()
	m.line++
	if m.line >= TotalLines {
		m.line = 0
	}
}

// lockVSync recovers vertical sync from the signal itself: a broad pulse,
// sync level for well over half the line, only occurs in the two equalizing
// lines at frame start. Locking on it keeps the decoder aligned whatever
// line the generator happened to start on.
func (m *Monitor) lockVSync() {
	run := 0
	for run < SamplesPerLine && m.samples[run] == levelSync {
		run++
	}
	broad := run > SamplesPerLine/2
	if broad {
		if m.prevBroad {
			m.line = 1
		} else {
			m.line = 0
		}
	}
	m.prevBroad = broad
}

// The picture occupies every line from FirstActiveLine to the end of the
// frame, so the last active line doubles as the frame boundary. Framebuffer
// rows past VisibleRows are never transmitted; they come out black.
func (m *Monitor) scanline() {
	if m.line < FirstActiveLine {
		return
	}
	if m.line == FirstActiveLine {
		m.frame = m.out.BeginFrame()
	}
	if m.frame == nil {
		return
	}
	m.decodeRow(m.line - FirstActiveLine)
	if m.line == TotalLines-1 {
		for i := VisibleRows * FrameWidth * 4; i < len(m.frame); i += 4 {
			m.frame[i+0] = 0
			m.frame[i+1] = 0
			m.frame[i+2] = 0
			m.frame[i+3] = 0xff
		}
		log.ModMonitor.DebugZ("frame decoded").End()
		m.out.EndFrame(m.frame)
		m.frame = nil
	}
}

// Inverse of the encoder's fixed-point chroma matrix:
//
//	d0 = 441*(B-Y) + 1361*(R-Y)
//	d1 = 764*(B-Y) -  786*(R-Y)
const chromaDet = 441*-786 - 1361*764

// decodeRow recovers one row of pixels from the active portion of the
// buffered scanline. Each four-sample subcarrier cycle covers two pixels,
// which share the decoded color.
func (m *Monitor) decodeRow(row int) {
	dst := m.frame[row*FrameWidth*4 : (row+1)*FrameWidth*4]
	for x := 0; x < FrameWidth; x += 2 {
		base := ActiveStart + 2*x
		s0 := float64(m.samples[base+0])
		s1 := float64(m.samples[base+1])
		s2 := float64(m.samples[base+2])
		s3 := float64(m.samples[base+3])

		// The subcarrier cancels in the mean; opposite phases isolate
		// the two modulated chroma sums.
		avg := (s0 + s1 + s2 + s3) / 4
		c0 := (s0 - s2) / 2 * 65536
		c1 := (s1 - s3) / 2 * 65536

		bY := (-786*c0 - 1361*c1) / chromaDet
		rY := (-764*c0 + 441*c1) / chromaDet
		luma := (avg*65536 - paletteBias) / 1792

		r := clamp255(luma + rY)
		b := clamp255(luma + bY)
		g := clamp255((luma*256 - 77*(luma+rY) - 29*(luma+bY)) / 150)

		for px := 0; px < 2; px++ {
			o := (x + px) * 4
			dst[o+0] = r
			dst[o+1] = g
			dst[o+2] = b
			dst[o+3] = 0xff
		}
	}
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
