package emu

import (
	"math"

	"ntsctv/hw"
)

// Pattern is the demo framebuffer producer: a wavy checkerboard cycling
// through all 256 palette indexes. All per-pixel math is 8-bit phase
// accumulation through a precomputed sine table; the uint8 wraparound is
// the modulo.
type Pattern struct {
	lut [256]int8

	stepX  uint8 // phase step per pixel along x
	stepY  uint8 // phase step per pixel along y
	tstep1 uint8 // phase step per frame for the first wave
	tstep2 uint8 // phase step per frame for the second wave (0.8x speed)

	frame int
}

func NewPattern(cfg PatternConfig) *Pattern {
	p := &Pattern{}
	for i := range p.lut {
		s := math.Sin(2 * math.Pi * float64(i) / 256)
		v := math.Round(cfg.Amplitude * s)
		p.lut[i] = int8(max(-128, min(127, int(v))))
	}
	phaseScale := 256 / (2 * math.Pi)
	p.stepX = uint8(math.Round(cfg.FreqX * phaseScale))
	p.stepY = uint8(math.Round(cfg.FreqY * phaseScale))
	p.tstep1 = uint8(math.Round(cfg.Speed * phaseScale))
	p.tstep2 = uint8(math.Round(cfg.Speed * 0.8 * phaseScale))
	return p
}

func (p *Pattern) colorAt(x, y int) uint8 {
	phaseY := uint8(y*int(p.stepY) + p.frame*int(p.tstep1))
	// cos = sin(+90 degrees), 90 degrees = 64 in a 256-step cycle
	phaseX := uint8(x*int(p.stepX) + p.frame*int(p.tstep2) + 64)

	// Warp the grid coordinates, then derive checker parity from the
	// warped position.
	sx := x + int(p.lut[phaseY])
	sy := y + int(p.lut[phaseX])
	parity := (sx/16 ^ sy/16) & 1

	// Diagonal gradient plus time sweep covers all 256 indexes; opposite
	// squares take the shifted half of the gradient to keep contrast.
	base := uint8(sx + sy + p.frame<<1)
	if parity != 0 {
		return base ^ 0x80
	}
	return base
}

// Paint fills fb with the next animation frame.
func (p *Pattern) Paint(fb []uint8) {
	for y := 0; y < hw.FrameHeight; y++ {
		row := fb[y*hw.FrameWidth : (y+1)*hw.FrameWidth]
		for x := range row {
			row[x] = p.colorAt(x, y)
		}
	}
	p.frame++
}
