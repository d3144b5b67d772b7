// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/devblok/glowl/core"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
)

// viewerConfig is assembled from the environment first, flags override it.
type viewerConfig struct {
	Width     int
	Height    int
	Archive   string
	Model     string
	Texture   string
	Shaders   string
	Instances int
	Debug     bool
	Core      core.Configuration
}

// loadEnv reads the optional env file named by GLOWL_ENV_FILE.
func loadEnv() error {
	file := envy.Get("GLOWL_ENV_FILE", "glowl.env")
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(file); err != nil {
		return fmt.Errorf("loading %s: %w", file, err)
	}
	envy.Reload()
	return nil
}

func envInt(key string, fallback int) (int, error) {
	raw := envy.Get(key, strconv.Itoa(fallback))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := envy.Get(key, strconv.FormatBool(fallback))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func parseConfig(args []string) (viewerConfig, error) {
	cfg := viewerConfig{Core: core.DefaultConfiguration()}
	var err error

	if cfg.Width, err = envInt("GLOWL_WIDTH", 800); err != nil {
		return cfg, err
	}
	if cfg.Height, err = envInt("GLOWL_HEIGHT", 600); err != nil {
		return cfg, err
	}
	if cfg.Core.Time.FramesPerSecond, err = envInt("GLOWL_FPS", cfg.Core.Time.FramesPerSecond); err != nil {
		return cfg, err
	}
	if cfg.Instances, err = envInt("GLOWL_INSTANCES", 4); err != nil {
		return cfg, err
	}
	if cfg.Debug, err = envBool("GLOWL_DEBUG", false); err != nil {
		return cfg, err
	}
	if cfg.Core.Resources.CheckErrors, err = envBool("GLOWL_CHECK_ERRORS", true); err != nil {
		return cfg, err
	}
	if cfg.Core.Resources.BindlessTextures, err = envBool("GLOWL_BINDLESS", false); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("glowl", flag.ContinueOnError)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Window height")
	fs.IntVar(&cfg.Core.Time.FramesPerSecond, "fps", cfg.Core.Time.FramesPerSecond, "Frame cap, 0 for unlimited")
	fs.IntVar(&cfg.Instances, "instances", cfg.Instances, "Number of mesh instances drawn")
	fs.StringVar(&cfg.Archive, "archive", envy.Get("GLOWL_ARCHIVE", ""), "kar archive to load assets from")
	fs.StringVar(&cfg.Model, "model", envy.Get("GLOWL_MODEL", "quad.dae"), "COLLADA model to display")
	fs.StringVar(&cfg.Texture, "texture", envy.Get("GLOWL_TEXTURE", ""), "Image applied to the model, a checker pattern when empty")
	fs.StringVar(&cfg.Shaders, "shaders", envy.Get("GLOWL_SHADERS", ""), "Directory with basic.vert and basic.frag, built-in shaders when empty")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "Log every resource created and released")
	fs.BoolVar(&cfg.Core.Resources.CheckErrors, "check", cfg.Core.Resources.CheckErrors, "Check driver errors after every operation")
	fs.BoolVar(&cfg.Core.Resources.BindlessTextures, "bindless", cfg.Core.Resources.BindlessTextures, "Make textures resident through ARB_bindless_texture")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Core.Resources.DebugLabels = cfg.Debug
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Instances < 1 {
		cfg.Instances = 1
	}
	return cfg, nil
}
