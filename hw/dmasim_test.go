package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type captureSink struct {
	samples []uint16
}

func (s *captureSink) PushSample(level uint16) {
	s.samples = append(s.samples, level)
}

func TestSimDMAStartErrors(t *testing.T) {
	d := NewSimDMA(&captureSink{})
	if err := d.Start(0); err == nil {
		t.Error("start before claim did not fail")
	}
	a, _, err := d.ClaimChannelPair()
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Start(a); err == nil {
		t.Error("start with no source did not fail")
	}
	if _, _, err := d.ClaimChannelPair(); err == nil {
		t.Error("second claim did not fail")
	}
}

// One transfer streams the armed buffer, sample for sample, through the
// quantizer register and out the sink.
func TestSimDMAStreams(t *testing.T) {
	sink := &captureSink{}
	d := NewSimDMA(sink)
	a, b, err := d.ClaimChannelPair()
	if err != nil {
		t.Fatal(err)
	}

	buf0 := []uint16{0, 1, 2, 3, 4, 5, 6, 7}
	buf1 := []uint16{9, 9, 9, 9}
	d.SetSource(a, buf0)
	d.SetSource(b, buf1)
	if err := d.Start(a); err != nil {
		t.Fatal(err)
	}

	d.RunLine()
	if diff := cmp.Diff(buf0, sink.samples); diff != "" {
		t.Fatalf("first transfer (-want +got):\n%s", diff)
	}

	// Chaining moved the stream to the paired channel.
	sink.samples = nil
	d.RunLine()
	if diff := cmp.Diff(buf1, sink.samples); diff != "" {
		t.Fatalf("chained transfer (-want +got):\n%s", diff)
	}
}

// Completions report the channel that finished, alternating with the
// hardware chain, and a handler re-arming with fresh data takes effect on
// the channel's next turn.
func TestSimDMACompletions(t *testing.T) {
	sink := &captureSink{}
	d := NewSimDMA(sink)
	a, b, err := d.ClaimChannelPair()
	if err != nil {
		t.Fatal(err)
	}

	bufs := [2][]uint16{{10, 11}, {20, 21}}
	var completed []Channel
	d.SetOnComplete(func(ch Channel) {
		completed = append(completed, ch)
		// Refill with a value tagging the pass number.
		n := uint16(len(completed))
		bufs[ch][0] = 100*n + 0
		bufs[ch][1] = 100*n + 1
		d.SetSource(ch, bufs[ch])
	})
	d.SetSource(a, bufs[0])
	d.SetSource(b, bufs[1])
	if err := d.Start(a); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		d.RunLine()
	}
	if diff := cmp.Diff([]Channel{0, 1, 0, 1}, completed); diff != "" {
		t.Fatalf("completion order (-want +got):\n%s", diff)
	}
	want := []uint16{10, 11, 20, 21, 100, 101, 200, 201}
	if diff := cmp.Diff(want, sink.samples); diff != "" {
		t.Fatalf("streamed samples (-want +got):\n%s", diff)
	}
}

// The engine registers stay observable through the bus, and completion
// interrupts are acknowledged after the handler runs.
func TestSimDMARegisters(t *testing.T) {
	d := NewSimDMA(&captureSink{})
	a, b, err := d.ClaimChannelPair()
	if err != nil {
		t.Fatal(err)
	}

	ctrl := d.Bus.Read32(dmaBase + 0x0c)
	if ctrl&ctrlEnable == 0 || (ctrl&ctrlChainMask)>>ctrlChainShift != 1 {
		t.Errorf("channel 0 CTRL = %08x", ctrl)
	}
	ctrl = d.Bus.Read32(dmaBase + dmaChanStride + 0x0c)
	if (ctrl&ctrlChainMask)>>ctrlChainShift != 0 {
		t.Errorf("channel 1 CTRL = %08x", ctrl)
	}
	if inte := d.Bus.Read32(dmaBase + dmaEngineOffs + 0x04); inte != 0b11 {
		t.Errorf("INTE = %08x", inte)
	}

	buf := []uint16{1, 2, 3}
	d.SetSource(a, buf)
	d.SetSource(b, buf)
	if tc := d.Bus.Read32(dmaBase + 0x08); tc != 3 {
		t.Errorf("TRANSCOUNT = %d", tc)
	}

	if err := d.Start(a); err != nil {
		t.Fatal(err)
	}
	d.RunLine()
	if ints := d.Bus.Read32(dmaBase + dmaEngineOffs + 0x0c); ints != 0 {
		t.Errorf("INTS = %08x after acknowledge", ints)
	}
}

// Full path: video generator feeding the simulated engine. One frame of
// lines streams TotalLines*SamplesPerLine quantized samples, all within
// the encoder's output range.
func TestSimDMAVideoFrame(t *testing.T) {
	sink := &captureSink{}
	d := NewSimDMA(sink)
	fb := make([]uint8, FrameWidth*FrameHeight)
	v := NewVideoOut(fb, d)
	v.SetColor(0, 255, 255, 255)
	if err := v.Start(); err != nil {
		t.Fatal(err)
	}

	d.RunFrame()
	if len(sink.samples) != TotalLines*SamplesPerLine {
		t.Fatalf("streamed %d samples, want %d",
			len(sink.samples), TotalLines*SamplesPerLine)
	}
	for i, s := range sink.samples {
		if s > PWMPeriod {
			t.Fatalf("sample %d = %d out of range", i, s)
		}
	}
	// First streamed line is the frame-start broad pulse.
	if sink.samples[0] != levelSync || sink.samples[SamplesPerLine-1] != levelBlank {
		t.Error("stream does not open with an equalizing line")
	}
}
