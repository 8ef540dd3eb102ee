package hw

import (
	"errors"
	"unsafe"

	"ntsctv/emu/log"
	"ntsctv/hw/hwio"
)

// Register-level simulation of the streaming hardware: a two-channel DMA
// engine chained to a PWM slice acting as the sample quantizer. Scanline
// buffers are mapped into a simulated SRAM window, and every transferred
// sample travels the full path: SRAM read, PWM counter-compare write,
// then out to the sample sink.
const (
	sramBase = 0x2000_0000
	pwmBase  = 0x4005_0000
	dmaBase  = 0x5000_0000

	dmaChanStride = 0x40
	dmaEngineOffs = 0x400

	// The composite output pin sits on PWM slice 5, channel B: the
	// sample value goes in the upper half of the counter-compare
	// register.
	pwmSliceNum    = 5
	pwmSliceStride = 0x14
	pwmCCOffset    = 0x0c
)

// Channel CTRL bits.
const (
	ctrlEnable     = 1 << 0
	ctrlChainShift = 11
	ctrlChainMask  = 0xf << ctrlChainShift
	ctrlBusy       = 1 << 24
)

type simChannel struct {
	READADDR   hwio.Reg32 `hwio:"offset=0x00"`
	WRITEADDR  hwio.Reg32 `hwio:"offset=0x04"`
	TRANSCOUNT hwio.Reg32 `hwio:"offset=0x08"`
	CTRL       hwio.Reg32 `hwio:"offset=0x0c"`
}

type pwmSlice struct {
	sink SampleSink

	CSR hwio.Reg32 `hwio:"offset=0x00"`
	DIV hwio.Reg32 `hwio:"offset=0x04,reset=0x20"` // 8.4 fixed point, divider 2
	CTR hwio.Reg32 `hwio:"offset=0x08"`
	CC  hwio.Reg32 `hwio:"offset=0x0c,wcb"`
	TOP hwio.Reg32 `hwio:"offset=0x10,reset=0xa"` // PWMPeriod - 1
}

func (s *pwmSlice) WriteCC(old, val uint32) {
	if s.sink != nil {
		s.sink.PushSample(uint16(val >> 16))
	}
}

// SimDMA implements TransferEngine over a simulated register bus. It is not
// cycle accurate: RunLine moves a whole scanline at once and then raises the
// completion interrupt, which matches how the real engine is programmed
// (one buffer per transfer, interrupt on completion, hardware chaining to
// the paired channel).
type SimDMA struct {
	Bus *hwio.Table

	INTE    hwio.Reg32 `hwio:"offset=0x04"`
	INTS    hwio.Reg32 `hwio:"offset=0x0c,wcb"`
	TRIGGER hwio.Reg32 `hwio:"offset=0x30,writeonly,wcb"`

	chans      [2]simChannel
	pwm        pwmSlice
	claimed    bool
	running    int // streaming channel, -1 when stopped
	onComplete CompletionFunc

	bufAddrs map[*uint16]uint32
	sramNext uint32
}

// NewSimDMA builds the engine and its register bus, wiring the PWM output
// to sink.
func NewSimDMA(sink SampleSink) *SimDMA {
	d := &SimDMA{
		Bus:      hwio.NewTable("sim"),
		running:  -1,
		bufAddrs: make(map[*uint16]uint32),
		sramNext: sramBase,
	}
	d.pwm.sink = sink

	for i := range d.chans {
		hwio.MustInitRegs(&d.chans[i])
		d.Bus.MapBank(dmaBase+uint32(i)*dmaChanStride, &d.chans[i], 0)
	}
	hwio.MustInitRegs(d)
	d.Bus.MapBank(dmaBase+dmaEngineOffs, d, 0)
	hwio.MustInitRegs(&d.pwm)
	d.Bus.MapBank(pwmBase+pwmSliceNum*pwmSliceStride, &d.pwm, 0)
	return d
}

// WriteINTS implements write-1-to-clear.
func (d *SimDMA) WriteINTS(old, val uint32) {
	d.INTS.Value = old &^ val
}

// WriteTRIGGER starts every channel whose bit is set. The register itself
// is a self-clearing strobe.
func (d *SimDMA) WriteTRIGGER(old, val uint32) {
	for ch := range d.chans {
		if val&(1<<ch) != 0 {
			d.startChannel(ch)
		}
	}
	d.TRIGGER.Value = 0
}

func (d *SimDMA) startChannel(ch int) {
	c := &d.chans[ch]
	if c.CTRL.Value&ctrlEnable == 0 {
		log.ModDMA.WarnZ("trigger on disabled channel").Int("ch", ch).End()
		return
	}
	c.CTRL.SetBits(ctrlBusy)
	d.running = ch
}

// ClaimChannelPair allocates the two channels, chains each to the other and
// enables both completion interrupts.
func (d *SimDMA) ClaimChannelPair() (Channel, Channel, error) {
	if d.claimed {
		return 0, 0, errors.New("dma: no free channel pair")
	}
	d.claimed = true

	ccAddr := uint32(pwmBase + pwmSliceNum*pwmSliceStride + pwmCCOffset)
	for i := range d.chans {
		chain := uint32(1-i) << ctrlChainShift
		d.Bus.Write32(d.chanAddr(i, 0x04), ccAddr+2) // CC upper half
		d.Bus.Write32(d.chanAddr(i, 0x0c), ctrlEnable|chain)
	}
	d.INTE.SetBits(0b11)
	log.ModDMA.InfoZ("channel pair claimed").End()
	return Channel(0), Channel(1), nil
}

// SetOnComplete installs the completion handler.
func (d *SimDMA) SetOnComplete(fn CompletionFunc) {
	d.onComplete = fn
}

// SetSource arms ch with buf, mapping the buffer into the simulated SRAM
// window the first time it is seen.
func (d *SimDMA) SetSource(ch Channel, buf []uint16) {
	addr, ok := d.bufAddrs[&buf[0]]
	if !ok {
		addr = d.mapBuffer(buf)
	}
	d.Bus.Write32(d.chanAddr(int(ch), 0x00), addr)
	d.Bus.Write32(d.chanAddr(int(ch), 0x08), uint32(len(buf)))
}

// Start triggers the first transfer on ch through the strobe register.
func (d *SimDMA) Start(ch Channel) error {
	if int(ch) >= len(d.chans) || !d.claimed {
		return errors.New("dma: start on unclaimed channel")
	}
	if d.running >= 0 {
		return errors.New("dma: engine already running")
	}
	if d.chans[ch].TRANSCOUNT.Value == 0 {
		return errors.New("dma: start with no source armed")
	}
	d.Bus.Write32(dmaBase+dmaEngineOffs+0x30, 1<<ch)
	return nil
}

// RunLine streams one complete buffer on the running channel, chains to the
// paired channel and invokes the completion handler. It is a no-op when the
// engine is stopped.
func (d *SimDMA) RunLine() {
	ch := d.running
	if ch < 0 {
		return
	}
	c := &d.chans[ch]
	src := c.READADDR.Value
	dst := c.WRITEADDR.Value
	for n := c.TRANSCOUNT.Value; n > 0; n-- {
		d.Bus.Write16(dst, d.Bus.Read16(src))
		src += 2
	}

	// Chain before raising the interrupt: when the handler runs, the
	// next buffer is already streaming.
	c.CTRL.ClearBits(ctrlBusy)
	next := int((c.CTRL.Value & ctrlChainMask) >> ctrlChainShift)
	d.startChannel(next)

	d.INTS.SetBits(1 << ch)
	if d.INTE.GetBit(uint(ch)) && d.onComplete != nil {
		d.onComplete(Channel(ch))
	}
	d.Bus.Write32(dmaBase+dmaEngineOffs+0x0c, 1<<ch) // acknowledge
}

// RunFrame streams one full frame of scanlines.
func (d *SimDMA) RunFrame() {
	for i := 0; i < TotalLines; i++ {
		d.RunLine()
	}
}

func (d *SimDMA) chanAddr(ch int, off uint32) uint32 {
	return dmaBase + uint32(ch)*dmaChanStride + off
}

func (d *SimDMA) mapBuffer(buf []uint16) uint32 {
	addr := d.sramNext
	view := unsafe.Slice((*byte)(unsafe.Pointer(&buf[0])), len(buf)*2)
	mem := &hwio.Mem{Name: "scanline", Data: view}
	d.Bus.MapMem(addr, mem)
	d.bufAddrs[&buf[0]] = addr
	d.sramNext += uint32(len(buf)*2+3) &^ 3
	log.ModDMA.DebugZ("buffer mapped").Hex32("addr", addr).End()
	return addr
}
