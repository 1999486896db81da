package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	BaseDir   string `json:"base_dir"`
	ModelDir  string `json:"model_dir"`
	AudioDir  string `json:"audio_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	WebPQuality int     `json:"webp_quality"`
	Workers     int     `json:"workers"`
	CameraYaw   float64 `json:"camera_yaw"`
	CameraPitch float64 `json:"camera_pitch"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BaseDir   string
	OutputDir string
	Quality   int
	Workers   int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.BaseDir != "" {
		c.BaseDir = flags.BaseDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Quality > 0 {
		c.WebPQuality = flags.Quality
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.BaseDir == "" {
		c.BaseDir = detectBaseDir()
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		if c.ModelDir == "" {
			c.ModelDir = filepath.Join(c.BaseDir, "resources", "models")
		} else if !filepath.IsAbs(c.ModelDir) {
			c.ModelDir = filepath.Join(c.BaseDir, c.ModelDir)
		}

		if c.AudioDir == "" {
			c.AudioDir = filepath.Join(c.BaseDir, "resources", "audio")
		} else if !filepath.IsAbs(c.AudioDir) {
			c.AudioDir = filepath.Join(c.BaseDir, c.AudioDir)
		}

		if c.OutputDir == "" {
			c.OutputDir = filepath.Join(c.BaseDir, "previews")
		} else if !filepath.IsAbs(c.OutputDir) {
			c.OutputDir = filepath.Join(c.BaseDir, c.OutputDir)
		}
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPQuality <= 0 {
		c.WebPQuality = 90
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.CameraYaw == 0 && c.CameraPitch == 0 {
		c.CameraYaw = 30
		c.CameraPitch = -20
	}
}

func detectBaseDir() string {
	// Try relative to executable, then the working directory
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir)} {
			if _, err := os.Stat(filepath.Join(base, "resources", "models")); err == nil {
				return base
			}
		}
	}

	cwd, _ := os.Getwd()
	if _, err := os.Stat(filepath.Join(cwd, "resources", "models")); err == nil {
		return cwd
	}

	return ""
}
