// Package main implements the cyclenes emulator executable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/golang/glog"

	"cyclenes/internal/app"
	"cyclenes/internal/cartridge"
	"cyclenes/internal/statsview"
	"cyclenes/internal/version"
)

func main() {
	var (
		romFile    = flag.String("rom", "", "Path to iNES ROM file")
		configFile = flag.String("config", app.GetDefaultConfigPath(), "Path to configuration file")
		nogui      = flag.Bool("nogui", false, "Run without a window (headless mode)")
		frames     = flag.Int("frames", 0, "Stop after this many frames (0 = run until closed; headless default 600)")
		wavFile    = flag.String("wav", "", "Record audio output to this WAV file")
		screenshot = flag.String("screenshot", "", "Write the last frame to this PNG file on exit")
		stats      = flag.Bool("statsview", false, "Serve runtime statistics over HTTP")
		showVer    = flag.Bool("version", false, "Show version information")
	)
	flag.Usage = printUsage
	flag.Parse()

	os.Exit(run(*romFile, *configFile, *nogui, *frames, *wavFile, *screenshot, *stats, *showVer))
}

func run(romFile, configFile string, nogui bool, frames int, wavFile, screenshot string, stats, showVer bool) int {
	defer glog.Flush()

	if showVer {
		version.PrintBuildInfo(os.Stdout)
		return 0
	}
	if romFile == "" {
		fmt.Fprintln(os.Stderr, "a ROM file is required (-rom)")
		flag.Usage()
		return 2
	}

	config := app.NewConfig()
	if err := config.LoadFromFile(configFile); err != nil {
		glog.Warningf("could not load config from %s, using defaults: %v", configFile, err)
		config = app.NewConfig()
	}
	if wavFile != "" {
		config.Audio.RecordWAV = wavFile
	}
	applyVerbosity(config.LogVerbosity())
	glog.Infof("%s", version.GetBuildInfo())

	if stats {
		statsview.Launch(os.Stdout)
	}

	application, err := app.NewApplicationWithConfig(config, nogui)
	if err != nil {
		glog.Errorf("failed to create application: %v", err)
		return 1
	}
	defer func() {
		if err := application.Cleanup(); err != nil {
			glog.Errorf("cleanup: %v", err)
		}
	}()

	if err := application.LoadROM(romFile); err != nil {
		glog.Errorf("%v", err)
		switch {
		case errors.Is(err, cartridge.ErrUnsupportedMapper):
			fmt.Fprintf(os.Stderr, "%s uses a mapper this emulator does not support\n", romFile)
		case errors.Is(err, cartridge.ErrInvalidMagic), errors.Is(err, cartridge.ErrSizeMismatch), errors.Is(err, cartridge.ErrNoPRG):
			fmt.Fprintf(os.Stderr, "%s is not a valid iNES image\n", romFile)
		default:
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}

	if application.IsHeadless() && frames <= 0 {
		frames = 600
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx, frames); err != nil {
		glog.Errorf("run: %v", err)
		return 1
	}

	if screenshot != "" {
		if err := application.Screenshot(screenshot); err != nil {
			glog.Errorf("%v", err)
			return 1
		}
	}

	emulator := application.GetEmulator()
	glog.Infof("ran %d frames in %v (%.1fx real time)",
		application.GetFrameCount(), application.GetUptime(), emulator.GetEmulationSpeed())
	return 0
}

// applyVerbosity sets glog's -v from the config unless given on the command line
func applyVerbosity(level int) {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "v" {
			set = true
		}
	})
	if !set && level > 0 {
		if err := flag.Set("v", strconv.Itoa(level)); err != nil {
			glog.Warningf("could not set log verbosity %d: %v", level, err)
		}
	}
}

func printUsage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "cyclenes - cycle-accurate NES emulator")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "USAGE:")
	fmt.Fprintln(out, "  cyclenes -rom <file> [options]")
	fmt.Fprintln(out, "  cyclenes -nogui -rom <file> -frames 300 -screenshot out.png")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "OPTIONS:")
	flag.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "CONTROLS (default):")
	fmt.Fprintln(out, "  Player 1: WASD d-pad, J = A, K = B, Enter = Start, Space = Select")
	fmt.Fprintln(out, "  Player 2: 1-4 d-pad, 5 = A, 6 = B, 7 = Start, 8 = Select")
	fmt.Fprintln(out, "  Escape quit, P pause, F5 reset, F12 screenshot")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Supported mappers: NROM (0), MMC1 (1), UxROM (2), CNROM (3), MMC3 (4)\n")
	fmt.Fprintf(out, "Config file: %s\n", app.GetDefaultConfigPath())
}
