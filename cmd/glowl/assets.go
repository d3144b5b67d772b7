// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // texture decoders
	_ "image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/devblok/glowl/core"
	"github.com/devblok/glowl/utility/kar"
	"github.com/gobuffalo/packr"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

var errAssetNotFound = errors.New("asset not found")

// assetSource opens named assets.
type assetSource interface {
	Open(name string) (io.ReadCloser, error)
}

type boxSource struct {
	box packr.Box
}

func (b boxSource) Open(name string) (io.ReadCloser, error) {
	if !b.box.Has(name) {
		return nil, fmt.Errorf("%s: %w", name, errAssetNotFound)
	}
	data, err := b.box.Find(name)
	if err != nil {
		return nil, err
	}
	return ioutil.NopCloser(bytes.NewReader(data)), nil
}

type archiveSource struct {
	archive *kar.Archive
}

func (a archiveSource) Open(name string) (io.ReadCloser, error) {
	r, err := a.archive.Open(name)
	if errors.Is(err, kar.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", name, errAssetNotFound)
	} else if err != nil {
		return nil, err
	}
	return ioutil.NopCloser(r), nil
}

type dirSource string

func (d dirSource) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(d), name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, errAssetNotFound)
	}
	return f, err
}

// layeredSource tries every source in order, the first hit wins.
type layeredSource []assetSource

func (l layeredSource) Open(name string) (io.ReadCloser, error) {
	for _, src := range l {
		r, err := src.Open(name)
		if errors.Is(err, errAssetNotFound) {
			continue
		}
		return r, err
	}
	return nil, fmt.Errorf("%s: %w", name, errAssetNotFound)
}

// builtinShaders collects the stages of program from the box.
func builtinShaders(box packr.Box, program string) (map[core.ShaderType]string, error) {
	sources := make(map[core.ShaderType]string)
	for _, name := range box.List() {
		prog, stage := core.ParseShaderName(name)
		if prog != program || stage == core.UnknownShaderType {
			continue
		}
		src, err := box.FindString(name)
		if err != nil {
			return nil, err
		}
		sources[stage] = src
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("program %s: %w", program, errAssetNotFound)
	}
	return sources, nil
}

func loadShaders(box packr.Box, dir, program string) (map[core.ShaderType]string, error) {
	if dir == "" {
		return builtinShaders(box, program)
	}
	programs, err := core.LoadProgramSources(dir)
	if err != nil {
		return nil, err
	}
	sources, ok := programs[program]
	if !ok {
		return nil, fmt.Errorf("program %s in %s: %w", program, dir, errAssetNotFound)
	}
	return sources, nil
}

func decodeImage(src assetSource, name string) (image.Image, error) {
	r, err := src.Open(name)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return img, nil
}

// checker is the fallback texture.
func checker(size, cells int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := size / cells
	light := color.RGBA{R: 220, G: 220, B: 220, A: 255}
	dark := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, light)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}

// fitTexture scales img down so neither side exceeds max.
func fitTexture(img image.Image, max int) image.Image {
	b := img.Bounds()
	if max <= 0 || (b.Dx() <= max && b.Dy() <= max) {
		return img
	}
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = h * max / w
		w = max
	} else {
		w = w * max / h
		h = max
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return core.ScaleImage(img, w, h)
}
