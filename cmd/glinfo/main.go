// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command glinfo creates a hidden OpenGL 4.5 context and prints what the
// driver reports about itself as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/devblok/glowl/device"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	runtime.LockOSThread()
}

var (
	indent     = flag.Bool("indent", false, "Indent the JSON output")
	extensions = flag.Bool("extensions", true, "Include the extension list")
)

type glAttribute struct {
	attr  sdl.GLattr
	value int
}

var contextAttributes = []glAttribute{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 5},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
}

// setAttributes stops at the first attribute the platform refuses.
func setAttributes(set func(sdl.GLattr, int) error, attrs []glAttribute) error {
	for _, a := range attrs {
		if err := set(a.attr, a.value); err != nil {
			return fmt.Errorf("gl attribute %d=%d: %w", a.attr, a.value, err)
		}
	}
	return nil
}

func query() (device.Info, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return device.Info{}, err
	}
	defer sdl.Quit()

	if err := setAttributes(sdl.GLSetAttribute, contextAttributes); err != nil {
		return device.Info{}, err
	}

	window, err := sdl.CreateWindow("glinfo", 0, 0, 1, 1, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
	if err != nil {
		return device.Info{}, err
	}
	defer window.Destroy()

	glContext, err := window.GLCreateContext()
	if err != nil {
		return device.Info{}, err
	}
	defer sdl.GLDeleteContext(glContext)

	driver, err := device.NewGLDriver()
	if err != nil {
		return device.Info{}, err
	}
	return device.Query(driver), nil
}

func main() {
	flag.Parse()

	info, err := query()
	if err != nil {
		log.Fatal(err)
	}
	if !*extensions {
		info.Extensions = nil
	}

	enc := json.NewEncoder(os.Stdout)
	if *indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(info); err != nil {
		log.Fatal(err)
	}
}
