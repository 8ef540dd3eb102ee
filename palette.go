package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-faster/jx"

	"ntsctv/emu"
	"ntsctv/hw"
)

// paletteMain encodes the VGA reference palette and dumps it as JSON: for
// each color index, the source RGB and the four phase-quantized composite
// levels.
func paletteMain(args Palette) {
	w := io.Writer(os.Stdout)
	if args.Out != nil {
		w = args.Out
		defer args.Out.Close()
	}

	var pal hw.Palette
	for i := 0; i < 256; i++ {
		r, g, b := emu.VGAColor(i)
		pal.SetColor(uint8(i), r, g, b)
	}
	checkf(writePaletteJSON(w, &pal), "failed to write palette")
}

func writePaletteJSON(w io.Writer, pal *hw.Palette) error {
	var e jx.Encoder
	e.SetIdent(2)

	e.ObjStart()
	e.FieldStart("colors")
	e.ArrStart()
	for i := 0; i < 256; i++ {
		r, g, b := emu.VGAColor(i)
		e.ObjStart()
		e.FieldStart("index")
		e.Int(i)
		e.FieldStart("rgb")
		e.Str(fmt.Sprintf("#%02X%02X%02X", r, g, b))
		e.FieldStart("phases")
		e.ArrStart()
		for ph := 0; ph < 4; ph++ {
			e.Int(int(pal[i*4+ph]))
		}
		e.ArrEnd()
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()

	if _, err := w.Write(e.Bytes()); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}
