package hw

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"ntsctv/emu/log"
)

type OutputConfig struct {
	Width          int
	Height         int
	NumBackBuffers int

	Title        string
	ScaleFactor  int
	DisableVSync bool
	Monitor      int32
	Shader       string
}

// Output displays decoded frames in a window. It implements FrameSink with
// a small ring of back buffers, so the decoder can start painting the next
// frame while the previous one is being presented. Without EnableVideo it
// runs headless and discards frames.
type Output struct {
	cfg OutputConfig
	win *window

	framebufidx int
	framebuf    [][]byte

	pending []byte
	last    []byte
}

func NewOutput(cfg OutputConfig) *Output {
	if cfg.NumBackBuffers == 0 {
		cfg.NumBackBuffers = 2
	}
	vb := make([][]byte, cfg.NumBackBuffers)
	for i := range vb {
		vb[i] = make([]byte, cfg.Width*cfg.Height*4)
	}
	return &Output{
		cfg:      cfg,
		framebuf: vb,
	}
}

// EnableVideo shows or destroys the video window.
func (o *Output) EnableVideo(enable bool) error {
	if !enable {
		if o.win != nil {
			err := o.win.Close()
			o.win = nil
			return err
		}
		return nil
	}
	if o.win != nil {
		return fmt.Errorf("video output already enabled")
	}

	win, err := newWindow(windowConfig{
		title:   o.cfg.Title,
		texw:    o.cfg.Width,
		texh:    o.cfg.Height,
		scale:   o.cfg.ScaleFactor,
		monitor: o.cfg.Monitor,
		vsync:   !o.cfg.DisableVSync,
		shader:  o.cfg.Shader,
	})
	if err != nil {
		return err
	}
	o.win = win
	log.ModEmu.InfoZ("video window enabled").
		Int("w", o.cfg.Width).
		Int("h", o.cfg.Height).
		Int("scale", o.cfg.ScaleFactor).
		String("shader", o.cfg.Shader).
		End()
	return nil
}

// BeginFrame implements FrameSink.
func (o *Output) BeginFrame() []byte {
	o.framebufidx++
	if o.framebufidx == o.cfg.NumBackBuffers {
		o.framebufidx = 0
	}
	return o.framebuf[o.framebufidx]
}

// EndFrame implements FrameSink. The frame is presented on the next Poll.
func (o *Output) EndFrame(video []byte) {
	o.pending = video
}

// Poll presents any pending frame and processes window events. It returns
// false when the user asked to quit.
func (o *Output) Poll() bool {
	if o.win == nil {
		o.pending = nil
		return true
	}

	quit := false
	pending := o.pending
	o.pending = nil
	sdl.Do(func() {
		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch ev := ev.(type) {
			case *sdl.QuitEvent:
				quit = true
			case *sdl.KeyboardEvent:
				if ev.Type == sdl.KEYUP && ev.Keysym.Sym == sdl.K_ESCAPE {
					quit = true
				}
			}
		}
		if pending != nil {
			o.win.draw(pending)
		}
	})
	if pending != nil {
		o.last = pending
	}
	return !quit
}

// FocusWindow raises the window above others and sets the input focus.
func (o *Output) FocusWindow() {
	if o.win != nil {
		sdl.Do(o.win.Raise)
	}
}

func (o *Output) Close() {
	if o.win != nil {
		if err := o.win.Close(); err != nil {
			log.ModEmu.WarnZ("window close").Error("err", err).End()
		}
		o.win = nil
	}
}

// Screenshot returns a copy of the last presented frame, or nil if no frame
// has been presented yet.
func (o *Output) Screenshot() *image.RGBA {
	if o.last == nil {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, o.cfg.Width, o.cfg.Height))
	copy(img.Pix, o.last)
	return img
}

func SaveAsPNG(img *image.RGBA, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
