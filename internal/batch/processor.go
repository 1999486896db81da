package batch

import (
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"asset-preview/internal/obj"
	"asset-preview/internal/postprocess"
	"asset-preview/internal/raster"
	"asset-preview/internal/texture"

	"github.com/HugoSmits86/nativewebp"
	"github.com/sirupsen/logrus"
)

// Config holds all shared resources for a batch run.
type Config struct {
	ModelDir    string
	OutputDir   string
	TexResolver texture.Resolver
	Camera      raster.Camera
	RenderSize  int
	Supersample int
	Workers     int
}

// Job is one model file to preview, relative to ModelDir.
type Job struct {
	Name string // output stem, e.g. "plane"
	File string // relative path, e.g. "plane/plane.obj"
}

// Result holds the outcome of processing one job.
type Result struct {
	Name    string
	Success bool
	Error   string
}

// FindModels walks dir for .obj files and returns one Job per model.
func FindModels(dir string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !strings.EqualFold(filepath.Ext(path), ".obj") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		jobs = append(jobs, Job{Name: stem, File: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("batch: scan %s: %w", dir, err)
	}
	return jobs, nil
}

// Run processes all jobs using a worker pool.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logrus.WithFields(logrus.Fields{
						"done":  p,
						"total": total,
						"rate":  fmt.Sprintf("%.1f/s", float64(p)/elapsed),
					}).Info("rendering")
				}
			}
		}
	}()

	// Worker pool
	jobChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job) Result {
	fail := func(err error) Result {
		return Result{Name: job.Name, Error: err.Error()}
	}

	// The mesh decoder takes a base directory and a filename so the
	// material library resolves next to the model.
	modelDir := filepath.Join(cfg.ModelDir, filepath.Dir(job.File))
	model, err := obj.Load(filepath.ToSlash(modelDir), filepath.Base(job.File))
	if err != nil {
		return fail(err)
	}

	var tex *image.NRGBA
	if cfg.TexResolver != nil {
		tex = cfg.TexResolver.Resolve(model.Material.TexturePath)
	}
	if model.Material.TexturePath != "" && tex == nil {
		logrus.WithField("model", job.Name).
			WithField("texture", model.Material.TexturePath).
			Warn("texture missing, rendering untextured")
	}

	img := raster.RenderModel(model, tex, cfg.Camera, cfg.RenderSize, cfg.Supersample)
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	outPath := filepath.Join(cfg.OutputDir, job.Name+".webp")
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fail(err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fail(err)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return fail(fmt.Errorf("webp encode: %w", err))
	}

	return Result{Name: job.Name, Success: true}
}
