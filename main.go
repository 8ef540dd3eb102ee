package main

import (
	"os"
)

func main() {
	cli := parseArgs(os.Args[1:])

	switch cli.mode {
	case runMode:
		runMain(cli.Run)
	case paletteMode:
		paletteMain(cli.Palette)
	case versionMode:
		versionMain()
	}
}
