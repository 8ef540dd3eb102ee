package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"runtime/pprof"

	"github.com/veandco/go-sdl2/sdl"

	"ntsctv/emu"
)

// runMain generates the composite signal and displays the decoded frames.
func runMain(args Run) {
	var exitcode int
	sdl.Main(func() {
		cfg := emu.LoadConfigOrDefault()
		if args.Scale > 0 {
			cfg.Video.Scale = args.Scale
		}
		if args.Shader != "" {
			cfg.Video.Shader = args.Shader
		}
		if args.NoVSync {
			cfg.Video.DisableVSync = true
		}
		cfg.Video.Monitor = args.Monitor
		cfg.Headless = args.Headless
		cfg.MaxFrames = args.Frames

		emulator, err := emu.Launch(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
			exitcode = 1
			return
		}

		if args.CPUProfile != "" {
			f, err := os.Create(args.CPUProfile)
			checkf(err, "failed to create cpu profile file")
			checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
			defer func() {
				pprof.StopCPUProfile()
				f.Close()
				fmt.Println("CPU profile written to", args.CPUProfile)
			}()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := emulator.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "run error: %v\n", err)
			exitcode = 1
		}
	})
	os.Exit(exitcode)
}

func versionMain() {
	version := "(devel)"
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		version = bi.Main.Version
	}
	fmt.Println("ntsctv", version)
}
