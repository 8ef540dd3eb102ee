package hw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPaletteKnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    [4]uint16
	}{
		{"black", 0, 0, 0, [4]uint16{2, 2, 2, 2}},
		{"white", 255, 255, 255, [4]uint16{9, 9, 9, 9}},
		{"gray", 128, 128, 128, [4]uint16{6, 6, 6, 6}},
		{"red", 255, 0, 0, [4]uint16{7, 1, 1, 7}},
		{"green", 0, 255, 0, [4]uint16{2, 6, 10, 6}},
		{"blue", 0, 0, 255, [4]uint16{4, 6, 2, 0}},
		{"cyan", 0, 255, 255, [4]uint16{4, 10, 10, 4}},
		{"magenta", 255, 0, 255, [4]uint16{9, 5, 1, 5}},
		{"yellow", 255, 255, 0, [4]uint16{7, 5, 9, 11}},
	}

	var pal Palette
	for i, tt := range tests {
		pal.SetColor(uint8(i), tt.r, tt.g, tt.b)
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got [4]uint16
			copy(got[:], pal[i*4:i*4+4])
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("phases mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Grays carry no chroma, so the four phase samples must be identical.
func TestPaletteMonochrome(t *testing.T) {
	var pal Palette
	for v := 0; v < 256; v++ {
		pal.SetColor(0, uint8(v), uint8(v), uint8(v))
		p := pal[0:4]
		if p[0] != p[1] || p[0] != p[2] || p[0] != p[3] {
			t.Fatalf("gray %d: phases differ: %v", v, p)
		}
		if p[0] < levelBlank {
			t.Fatalf("gray %d: level %d below blanking", v, p[0])
		}
	}
}

// Averaging the four phases cancels the subcarrier, leaving luma plus the
// pedestal. Check the encoded mean tracks the luma equation for every
// primary-axis sweep.
func TestPaletteLumaMean(t *testing.T) {
	var pal Palette
	for v := 0; v < 256; v++ {
		pal.SetColor(0, uint8(v), uint8(v), uint8(v))
		sum := int(pal[0]) + int(pal[1]) + int(pal[2]) + int(pal[3])
		luma := (77*v + 150*v + 29*v + 128) / 256
		want := (luma*1792 + paletteBias) / 65536 * 4
		if sum != want {
			t.Errorf("gray %d: phase sum = %d, want %d", v, sum, want)
		}
	}
}

func TestPaletteRange(t *testing.T) {
	var pal Palette
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				pal.SetColor(0, uint8(r), uint8(g), uint8(b))
				for ph, lvl := range pal[0:4] {
					if lvl > PWMPeriod {
						t.Fatalf("rgb(%d,%d,%d) phase %d: level %d out of range",
							r, g, b, ph, lvl)
					}
				}
			}
		}
	}
}

func TestPaletteIndexIsolation(t *testing.T) {
	var pal Palette
	pal.SetColor(10, 255, 0, 0)
	pal.SetColor(11, 0, 0, 255)
	want := []uint16{7, 1, 1, 7, 4, 6, 2, 0}
	if diff := cmp.Diff(want, pal[40:48]); diff != "" {
		t.Errorf("adjacent entries (-want +got):\n%s", diff)
	}
}
