// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/devblok/glowl/device"
)

// NewTexture3D creates a 3D texture and uploads data to level zero.
func NewTexture3D(ctx *Context, id string, layout TextureLayout, data []byte, opts ...TextureOption) (*Texture3D, error) {
	t := &Texture3D{
		texture: texture{
			ctx:    ctx,
			id:     id,
			kind:   "Texture3D",
			target: device.TEXTURE_3D,
		},
	}
	if err := t.load("Texture3D.New", layout, data, collectOptions(opts)); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// Texture3D encapsulates a three dimensional texture.
type Texture3D struct {
	texture

	width  int
	height int
	depth  int
}

// Width returns the width of level zero.
func (t *Texture3D) Width() int { return t.width }

// Height returns the height of level zero.
func (t *Texture3D) Height() int { return t.height }

// Depth returns the depth of level zero.
func (t *Texture3D) Depth() int { return t.depth }

// Layout implements Texture
func (t *Texture3D) Layout() TextureLayout {
	return t.layout(t.width, t.height, t.depth)
}

// Reload recreates the texture with a new layout and contents.
func (t *Texture3D) Reload(layout TextureLayout, data []byte, opts ...TextureOption) error {
	if err := checkPixels(layout, data, layout.Width, layout.Height, layout.Depth); err != nil {
		return err
	}
	t.Release()
	return t.load("Texture3D.Reload", layout, data, collectOptions(opts))
}

func (t *Texture3D) load(op string, layout TextureLayout, data []byte, o textureOptions) error {
	t.width = layout.Width
	t.height = layout.Height
	t.depth = layout.Depth

	d := t.ctx.driver
	return t.allocate(op, layout, data, o, []int{t.width, t.height, t.depth},
		func(name uint32, levels int32) {
			d.TextureStorage3D(name, levels, t.internalFormat, int32(t.width), int32(t.height), int32(t.depth))
		},
		func(name uint32) {
			d.TextureSubImage3D(name, 0, 0, 0, 0, int32(t.width), int32(t.height), int32(t.depth), t.format, t.xtype, data)
		})
}
