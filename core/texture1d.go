// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/devblok/glowl/device"
)

// NewTexture1D creates a 1D texture and uploads data to level zero.
func NewTexture1D(ctx *Context, id string, layout TextureLayout, data []byte, opts ...TextureOption) (*Texture1D, error) {
	t := &Texture1D{
		texture: texture{
			ctx:    ctx,
			id:     id,
			kind:   "Texture1D",
			target: device.TEXTURE_1D,
		},
	}
	if err := t.load("Texture1D.New", layout, data, collectOptions(opts)); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// Texture1D encapsulates a one dimensional texture.
type Texture1D struct {
	texture

	width int
}

// Width returns the width of level zero.
func (t *Texture1D) Width() int { return t.width }

// Layout implements Texture
func (t *Texture1D) Layout() TextureLayout {
	return t.layout(t.width, 1, 1)
}

// Reload recreates the texture with a new layout and contents.
func (t *Texture1D) Reload(layout TextureLayout, data []byte, opts ...TextureOption) error {
	if err := checkPixels(layout, data, layout.Width); err != nil {
		return err
	}
	t.Release()
	return t.load("Texture1D.Reload", layout, data, collectOptions(opts))
}

func (t *Texture1D) load(op string, layout TextureLayout, data []byte, o textureOptions) error {
	t.width = layout.Width

	d := t.ctx.driver
	return t.allocate(op, layout, data, o, []int{t.width},
		func(name uint32, levels int32) {
			d.TextureStorage1D(name, levels, t.internalFormat, int32(t.width))
		},
		func(name uint32) {
			d.TextureSubImage1D(name, 0, 0, int32(t.width), t.format, t.xtype, data)
		})
}
