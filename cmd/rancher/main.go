package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"go.hasen.dev/rancher"
	"go.hasen.dev/rancher/giobackend"
	"go.hasen.dev/rancher/termbackend"
)

var (
	configPath = flag.String("config", "rancher.toml", "path to the config file; a missing file means defaults")
	backend    = flag.String("backend", "", "gio or term; overrides the config")
	sheetPath  = flag.String("sheet", "", "style sheet file; overrides the config")
	imagePath  = flag.String("image", "", "image shown in the demo")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (rancher.Config, error) {
	cfg, err := rancher.LoadConfig(*configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = rancher.DefaultConfig(), nil
	}
	if err != nil {
		return cfg, err
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *sheetPath != "" {
		cfg.SheetPath = *sheetPath
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Backend == "term" && cfg.Log.File == "" {
		// stderr belongs to the terminal screen
		cfg.Log.File = os.DevNull
	}
	logger, err := rancher.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()
	rancher.SetLogger(logger)

	cells := cfg.Backend == "term"
	opts := []rancher.Option{rancher.WithLogger(logger)}

	sheet := demoSheet(cells)
	if cfg.SheetPath != "" {
		sheet, err = rancher.LoadSheet(cfg.SheetPath)
		if err != nil {
			return err
		}
		watcher, err := rancher.WatchSheet(cfg.SheetPath)
		if err != nil {
			logger.Warn("sheet will not reload", zap.Error(err))
		} else {
			defer watcher.Close()
			opts = append(opts, rancher.WithSheetUpdates(watcher.Updates))
		}
	}
	opts = append(opts, rancher.WithSheet(sheet))

	images, err := rancher.NewImageCache()
	if err != nil {
		return err
	}
	defer images.Close()
	opts = append(opts, rancher.WithImages(images))

	switch cfg.Backend {
	case "term":
		root := demoTree(1, *imagePath, cfg.BlinkInterval())
		opts = append(opts, rancher.WithMetrics(termbackend.Metrics))
		en := rancher.NewEngine(&root, opts...)

		screen, err := termbackend.NewScreen()
		if err != nil {
			return err
		}
		term := termbackend.New(en, screen, cfg)
		term.WatchImages(images)
		return term.Run()

	default:
		registry := rancher.NewFontRegistry()
		registry.AddDirs(cfg.FontDirs...)
		registry.AddSystemDirs()
		logger.Info("fonts indexed", zap.Int("faces", registry.Len()))
		metrics := rancher.NewFaceMetrics(registry)

		root := demoTree(8, *imagePath, cfg.BlinkInterval())
		opts = append(opts,
			rancher.WithMetrics(metrics),
			rancher.WithWindowSize(rancher.Vec{X: float32(cfg.Window.Width), Y: float32(cfg.Window.Height)}),
		)
		en := rancher.NewEngine(&root, opts...)

		renderer := giobackend.NewRenderer(metrics, images)
		driver := giobackend.NewDriver(en, renderer, cfg)
		driver.WatchImages(images)
		driver.Run()
		return nil
	}
}
