package hw

import (
	"ntsctv/emu/log"
)

// Palette holds the NTSC encoding of each of the 256 color indexes: the four
// composite sample values at the four subcarrier phases (0, 90, 180 and 270
// degrees). Entries are widened to 16 bits, the element size the transfer
// engine streams.
type Palette [256 * 4]uint16

// Encoding bias: the blanking pedestal (two quantizer steps) plus half a
// step of rounding, in 16.16 fixed point.
const paletteBias = 2*65536 + 32768

// SetColor encodes an RGB color and stores it at the given palette index.
// Negative results are floored at zero, though no valid RGB input reaches
// below zero. There is no upper clamp: saturated colors can hit level 11,
// one past the quantizer top, which the PWM renders as full duty.
func (p *Palette) SetColor(index, r, g, b uint8) {
	// Y = 0.299R + 0.587G + 0.114B, in 1/256 fixed point.
	luma := (77*int32(r) + 150*int32(g) + 29*int32(b) + 128) / 256

	// Chroma contributions of the (B-Y) and (R-Y) axes at phase 0 and at
	// phase 90; phases 180 and 270 are their negations.
	cb0 := (int32(b) - luma) * 441
	cr0 := (int32(r) - luma) * 1361
	cb90 := (int32(b) - luma) * 764
	cr90 := (int32(r) - luma) * -786

	y := luma * 1792
	p[int(index)*4+0] = quantize(y + cb0 + cr0)
	p[int(index)*4+1] = quantize(y + cb90 + cr90)
	p[int(index)*4+2] = quantize(y - cb0 - cr0)
	p[int(index)*4+3] = quantize(y - cb90 - cr90)

	log.ModPalette.DebugZ("encode color").
		Uint8("idx", index).
		Uint8("r", r).Uint8("g", g).Uint8("b", b).
		Uint16("p0", p[int(index)*4+0]).
		Uint16("p1", p[int(index)*4+1]).
		Uint16("p2", p[int(index)*4+2]).
		Uint16("p3", p[int(index)*4+3]).
		End()
}

func quantize(v int32) uint16 {
	v = (v + paletteBias) / 65536
	if v < 0 {
		v = 0
	}
	return uint16(v)
}
