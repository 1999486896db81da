package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"asset-preview/internal/batch"
	"asset-preview/internal/config"
	"asset-preview/internal/raster"
	"asset-preview/internal/texture"

	"github.com/sirupsen/logrus"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	modelFlag := flag.String("model", "", "Render only this model (relative .obj path)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	baseDir := flag.String("base", "", "Path to base directory (default: auto-detect)")
	outputDir := flag.String("output", "", "Output directory (default: previews)")
	quality := flag.Int("quality", 0, "WebP quality 1-100 (default: 90)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			logrus.WithError(err).Fatal("loading config")
		}
	}

	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		OutputDir: *outputDir,
		Quality:   *quality,
		Workers:   *workers,
	})

	if cfg.BaseDir == "" {
		logrus.Fatal("cannot find resources directory; use -base or config.json")
	}

	var jobs []batch.Job
	if *modelFlag != "" {
		stem := filepath.Base(*modelFlag)
		jobs = []batch.Job{{Name: stem[:len(stem)-len(filepath.Ext(stem))], File: *modelFlag}}
	} else {
		var err error
		jobs, err = batch.FindModels(cfg.ModelDir)
		if err != nil {
			logrus.WithError(err).Fatal("scanning models")
		}
	}

	if len(jobs) == 0 {
		fmt.Println("No models to render.")
		return
	}

	logrus.WithFields(logrus.Fields{
		"models":  len(jobs),
		"workers": cfg.Workers,
		"output":  cfg.OutputDir,
	}).Info("rendering previews")

	start := time.Now()

	results := batch.Run(batch.Config{
		ModelDir:    cfg.ModelDir,
		OutputDir:   cfg.OutputDir,
		TexResolver: texture.NewCache(),
		Camera:      raster.Camera{Yaw: cfg.CameraYaw, Pitch: cfg.CameraPitch},
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Workers:     cfg.Workers,
	}, jobs)

	success, failed := 0, 0
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			logrus.WithField("model", r.Name).Error(r.Error)
		}
	}

	logrus.WithFields(logrus.Fields{
		"rendered": success,
		"failed":   failed,
		"elapsed":  fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
	}).Info("done")

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, jobs); err != nil {
		logrus.WithError(err).Warn("manifest write failed")
	}

	if failed > 0 {
		os.Exit(1)
	}
}
