package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"scanline/app"
	"scanline/hal"
	"scanline/internal/buildinfo"
	"scanline/scene"
	"scanline/snapshot"
)

func main() {
	var (
		cfg       hal.HeadlessConfig
		win       hal.WindowConfig
		appCfg    app.Config
		verbose   bool
		version   bool
		outPath   string
		scenePath string
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate (ticks per second).")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&cfg.Progress, "progress", true, "Show a progress bar in headless mode when -ticks is set.")
	flag.IntVar(&cfg.Width, "width", 0, "Frame width (0 = scene preference or 600).")
	flag.IntVar(&cfg.Height, "height", 0, "Frame height (0 = scene preference or 600).")
	flag.IntVar(&win.Scale, "scale", 1, "Window scale; also the upscale factor for -out and screenshots.")
	flag.StringVar(&scenePath, "scene", "", "Scene file (.yaml, .yml or .toml). Empty draws the reference triangle.")
	flag.BoolVar(&appCfg.Watch, "watch", false, "Reload the scene file when it changes.")
	flag.IntVar(&appCfg.Workers, "workers", runtime.GOMAXPROCS(0), "Triangles rasterized in parallel (<=1 = serial).")
	flag.DurationVar(&appCfg.Budget, "budget", 0, "Per-frame rasterization budget; slower frames are dropped (0 = none).")
	flag.BoolVar(&appCfg.HUD, "hud", false, "Show the stats overlay.")
	flag.StringVar(&appCfg.ShotPath, "shot", "", "Screenshot file name; a %d verb receives the counter.")
	flag.StringVar(&outPath, "out", "", "Save the last frame here on exit (.png, .jpg, .bmp, .tiff).")
	flag.BoolVar(&verbose, "v", false, "Debug logging.")
	flag.BoolVar(&version, "version", false, "Print version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	appCfg.Scene = scene.Default()
	if scenePath != "" {
		s, err := scene.LoadFile(scenePath)
		if err != nil {
			fatal(log, "load scene", err)
		}
		appCfg.Scene = s
		appCfg.ScenePath = scenePath
	}
	if cfg.Width <= 0 {
		cfg.Width = appCfg.Scene.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = appCfg.Scene.Height
	}
	cfg.Logger = log
	appCfg.ShotScale = win.Scale

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var fb hal.Framebuffer
	newApp := func(h hal.HAL) func() error {
		fb = h.Display().Framebuffer()
		return app.New(ctx, h, appCfg)
	}

	start := time.Now()
	var err error
	if cfg.Enabled {
		err = hal.RunHeadless(ctx, newApp, cfg)
	} else {
		win.HostConfig = cfg.HostConfig
		win.TPS = cfg.Hz
		err = hal.RunWindow(win, newApp)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fatal(log, "run", err)
	}
	log.Info("stopped", slog.Duration("uptime", time.Since(start)))

	if outPath != "" && fb != nil {
		if err := snapshot.Save(outPath, fb.Snapshot(), win.Scale); err != nil {
			fatal(log, "save frame", err)
		}
		log.Info("frame saved", slog.String("path", outPath))
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, slog.Any("err", err))
	os.Exit(1)
}
