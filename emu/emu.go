package emu

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"ntsctv/emu/log"
	"ntsctv/hw"
)

type Output interface {
	BeginFrame() []byte
	EndFrame([]byte)
	Poll() bool
	Close()
}

const frameDuration = time.Second / 60

// Emulator ties the whole signal path together: the pattern producer
// overwrites the framebuffer while the video generator feeds scanlines
// through the simulated transfer engine into the composite decoder, which
// paints frames into the output.
type Emulator struct {
	Video  *hw.VideoOut
	Engine *hw.SimDMA

	out     Output
	pattern *Pattern
	fb      []uint8
	cfg     Config

	quit atomic.Bool
}

// Launch builds the signal path and shows the window (unless headless). It
// does not start streaming frames, call Run for that.
func Launch(cfg Config) (*Emulator, error) {
	cfg.Video.Check()
	cfg.Pattern.Check()

	out := hw.NewOutput(hw.OutputConfig{
		Width:          hw.FrameWidth,
		Height:         hw.FrameHeight,
		NumBackBuffers: 2,
		Title:          "ntsctv",
		ScaleFactor:    cfg.Video.Scale,
		DisableVSync:   cfg.Video.DisableVSync,
		Monitor:        cfg.Video.Monitor,
		Shader:         cfg.Video.Shader,
	})
	if !cfg.Headless {
		if err := out.EnableVideo(true); err != nil {
			return nil, err
		}
	}
	return LaunchWithOutput(cfg, out)
}

// LaunchWithOutput is Launch with a caller-provided frame sink, used by
// tests to capture decoded frames.
func LaunchWithOutput(cfg Config, out Output) (*Emulator, error) {
	cfg.Video.Check()
	cfg.Pattern.Check()

	engine := hw.NewSimDMA(hw.NewMonitor(out))
	fb := make([]uint8, hw.FrameWidth*hw.FrameHeight)
	video := hw.NewVideoOut(fb, engine)

	// Full palette before the first transfer.
	SetupPalette(video)

	pattern := NewPattern(cfg.Pattern)
	pattern.Paint(fb)

	if err := video.Start(); err != nil {
		out.Close()
		return nil, err
	}

	log.ModEmu.InfoZ("signal path up").
		Int("lines", hw.TotalLines).
		Int("samples", hw.SamplesPerLine).
		End()

	return &Emulator{
		Video:   video,
		Engine:  engine,
		out:     out,
		pattern: pattern,
		fb:      fb,
		cfg:     cfg,
	}, nil
}

// Run streams frames until the context is cancelled, the user closes the
// window, or MaxFrames is reached.
func (e *Emulator) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e.produce(ctx)
		return nil
	})

	e.loop(ctx)
	cancel()
	err := g.Wait()

	e.out.Close()
	log.ModEmu.InfoZ("emulation loop exited").
		Uint32("frames", e.Video.FrameCount()).
		End()
	return err
}

// Stop makes Run return. Safe to call from any goroutine.
func (e *Emulator) Stop() {
	e.quit.Store(true)
}

// produce repaints the framebuffer at its own pace, with no synchronization
// toward the scanline reads. Tearing between the two is part of the deal.
func (e *Emulator) produce(ctx context.Context) {
	tick := time.NewTicker(frameDuration)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			e.pattern.Paint(e.fb)
		}
	}
}

func (e *Emulator) loop(ctx context.Context) {
	// The window swap paces the loop when vsync is on; otherwise pace it
	// ourselves.
	var tick *time.Ticker
	if e.cfg.Headless || e.cfg.Video.DisableVSync {
		tick = time.NewTicker(frameDuration)
		defer tick.Stop()
	}

	start := time.Now()
	for !e.quit.Load() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !e.out.Poll() {
			return
		}
		e.Engine.RunFrame()

		frames := e.Video.FrameCount()
		if frames > 0 && frames%600 == 0 {
			fps := float64(frames) / time.Since(start).Seconds()
			log.ModEmu.DebugZ("heartbeat").
				Uint32("frames", frames).
				String("fps", strconv.FormatFloat(fps, 'f', 1, 64)).
				End()
		}
		if e.cfg.MaxFrames > 0 && frames >= e.cfg.MaxFrames {
			return
		}
		if tick != nil {
			<-tick.C
		}
	}
}
