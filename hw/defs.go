package hw

// NTSC frame geometry. The sample clock runs at 4x the color subcarrier
// frequency, so one 63.5us scanline is 227 subcarrier cycles, 908 samples.
const (
	FrameWidth  = 320
	FrameHeight = 240

	SamplesPerLine = 908
	TotalLines     = 262

	VSyncStartLine = 10 // first of the two burst-reference lines
	VBlankTop      = 26 // blanking lines between vsync and the picture
	HSyncWidth     = 68 // horizontal sync pulse, ~4.7us

	// First sample of active video within a line: hsync, back porch, nine
	// color-burst cycles, then breezeway up to the picture.
	ActiveStart = HSyncWidth + 8 + 9*4 + 60

	FirstActiveLine = VSyncStartLine + VBlankTop

	// Nominal end of the picture. It overruns the frame (36+240 > 262),
	// so the line counter wraps before reaching it: only VisibleRows of
	// the framebuffer ever reach the screen, and the two post-active
	// blanking lines are never scheduled.
	PostActiveLine = FirstActiveLine + FrameHeight
	VisibleRows    = TotalLines - FirstActiveLine
)

// Composite signal levels, in quantizer steps.
const (
	levelSync      = 0
	levelBlank     = 2
	levelBurstLow  = 1
	levelBurstHigh = 3
)

// Clock plan: a 315 MHz system clock is an exact 88x multiple of the NTSC
// color subcarrier, so the derived 14.318 MHz sample clock never drifts in
// phase against the burst.
const (
	SysClockHz   = 315_000_000
	SampleRateHz = SysClockHz / 22 // 14_318_181, 4x subcarrier
	SubcarrierHz = SampleRateHz / 4

	PWMPeriod   = 11 // quantizer period in sys clock / 2 cycles
	PWMClockDiv = 2
)
