// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command glowl opens a window and draws a textured model with every
// wrapper of the core package: a program, a mesh, a texture, a shader
// storage buffer and an offscreen framebuffer blitted to the window.
package main

import (
	"errors"
	"flag"
	"os"
	"runtime"

	"github.com/devblok/glowl/core"
	"github.com/devblok/glowl/device"
	"github.com/devblok/glowl/utility/kar"
	"github.com/gobuffalo/packr"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/exp/mmap"
)

func init() {
	runtime.LockOSThread()
}

// Assets holds the built-in shaders and the default model
var Assets = packr.NewBox("./assets")

func newWindow(cfg viewerConfig) (*sdl.Window, sdl.GLContext, error) {
	attributes := []struct {
		attr  sdl.GLattr
		value int
	}{
		{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
		{sdl.GL_CONTEXT_MINOR_VERSION, 5},
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_DOUBLEBUFFER, 1},
	}
	if cfg.Debug {
		attributes = append(attributes, struct {
			attr  sdl.GLattr
			value int
		}{sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG})
	}
	for _, a := range attributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			return nil, nil, err
		}
	}

	window, err := sdl.CreateWindow("glowl",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, nil, err
	}

	glContext, err := window.GLCreateContext()
	if err != nil {
		window.Destroy()
		return nil, nil, err
	}
	if err := sdl.GLSetSwapInterval(1); err != nil {
		log.WithError(err).Warn("VSync unavailable")
	}
	return window, glContext, nil
}

func openAssets(cfg viewerConfig) (assetSource, func(), error) {
	sources := layeredSource{dirSource(".")}
	closer := func() {}
	if cfg.Archive != "" {
		r, err := mmap.Open(cfg.Archive)
		if err != nil {
			return nil, nil, err
		}
		archive, err := kar.Open(r)
		if err != nil {
			r.Close()
			return nil, nil, err
		}
		log.WithFields(log.Fields{
			"archive": cfg.Archive,
			"entries": len(archive.Index()),
			"author":  archive.Header().Author,
		}).Info("Archive opened")
		sources = append(layeredSource{archiveSource{archive}}, sources...)
		closer = func() { r.Close() }
	}
	return append(sources, boxSource{Assets}), closer, nil
}

func run(cfg viewerConfig) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	window, glContext, err := newWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()
	defer sdl.GLDeleteContext(glContext)

	driver, err := device.NewGLDriver()
	if err != nil {
		return err
	}
	info := device.Query(driver)
	log.WithFields(log.Fields{
		"vendor":   info.Vendor,
		"renderer": info.Renderer,
		"version":  info.Version,
	}).Info("OpenGL context created")
	if cfg.Core.Resources.BindlessTextures && !info.Bindless() {
		log.Warn("ARB_bindless_texture not supported, disabling")
		cfg.Core.Resources.BindlessTextures = false
	}

	src, closeAssets, err := openAssets(cfg)
	if err != nil {
		return err
	}
	defer closeAssets()

	ctx := core.NewContext(driver, cfg.Core.Resources, log.WithField("component", "core"))
	s, err := newScene(ctx, cfg, Assets, src, info)
	if err != nil {
		return err
	}
	defer func() {
		s.Release()
		if live := ctx.Live(); live != 0 {
			log.WithField("live", live).Warn("Resources leaked")
		}
	}()

	time := core.NewTime(cfg.Core.Time)
	defer time.Stop()

	for {
		select {
		case <-time.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						return nil
					}
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_SIZE_CHANGED && et.Data1 > 0 && et.Data2 > 0 {
						if err := s.resize(int(et.Data1), int(et.Data2)); err != nil {
							return err
						}
					}
				case *sdl.QuitEvent:
					return nil
				}
			}
		case now := <-time.FpsTicker().C:
			if err := s.render(now); err != nil {
				return err
			}
			window.GLSwap()
		}
	}
}

func main() {
	if err := loadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := parseConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	} else if err != nil {
		log.Fatal(err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
	log.Info("Event loop exited")
}
