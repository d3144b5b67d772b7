// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/devblok/glowl/device"
)

// NewTexture2D creates a 2D texture and uploads data to level zero.
// A nil data only allocates storage.
func NewTexture2D(ctx *Context, id string, layout TextureLayout, data []byte, opts ...TextureOption) (*Texture2D, error) {
	t := &Texture2D{
		texture: texture{
			ctx:    ctx,
			id:     id,
			kind:   "Texture2D",
			target: device.TEXTURE_2D,
		},
	}
	if err := t.load("Texture2D.New", layout, data, collectOptions(opts)); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

// Texture2D encapsulates a two dimensional texture.
type Texture2D struct {
	texture

	width  int
	height int
}

// Width returns the width of level zero.
func (t *Texture2D) Width() int { return t.width }

// Height returns the height of level zero.
func (t *Texture2D) Height() int { return t.height }

// Layout implements Texture
func (t *Texture2D) Layout() TextureLayout {
	return t.layout(t.width, t.height, 1)
}

// Reload deletes the texture and creates it again with a new layout
// and contents. Storage is immutable, so the handle changes.
func (t *Texture2D) Reload(layout TextureLayout, data []byte, opts ...TextureOption) error {
	if err := checkPixels(layout, data, layout.Width, layout.Height); err != nil {
		return err
	}
	t.Release()
	return t.load("Texture2D.Reload", layout, data, collectOptions(opts))
}

// Copy copies level zero of src into this texture by attaching src to a
// temporary framebuffer. The previously bound draw and read framebuffers
// are restored.
func (t *Texture2D) Copy(src *Texture2D) error {
	if t.name == 0 || src.name == 0 {
		return ErrReleased
	}
	d := t.ctx.driver

	activeDraw := uint32(d.GetInteger(device.DRAW_FRAMEBUFFER_BINDING))
	activeRead := uint32(d.GetInteger(device.READ_FRAMEBUFFER_BINDING))

	fbo := d.CreateFramebuffer()
	d.BindFramebuffer(device.FRAMEBUFFER, fbo)
	d.NamedFramebufferTexture(fbo, device.COLOR_ATTACHMENT0, src.name, 0)

	d.BindTexture(device.TEXTURE_2D, t.name)
	d.CopyTexSubImage2D(device.TEXTURE_2D, 0, 0, 0, 0, 0, int32(t.width), int32(t.height))

	d.BindFramebuffer(device.DRAW_FRAMEBUFFER, activeDraw)
	d.BindFramebuffer(device.READ_FRAMEBUFFER, activeRead)

	d.BindTexture(device.TEXTURE_2D, 0)
	d.DeleteFramebuffer(fbo)

	return t.ctx.Check("Texture2D.Copy", textureKind, t.id)
}

func (t *Texture2D) load(op string, layout TextureLayout, data []byte, o textureOptions) error {
	t.width = layout.Width
	t.height = layout.Height

	d := t.ctx.driver
	return t.allocate(op, layout, data, o, []int{t.width, t.height},
		func(name uint32, levels int32) {
			d.TextureStorage2D(name, levels, t.internalFormat, int32(t.width), int32(t.height))
		},
		func(name uint32) {
			d.TextureSubImage2D(name, 0, 0, 0, int32(t.width), int32(t.height), t.format, t.xtype, data)
		})
}
