// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"math"

	"github.com/devblok/glowl/device"
)

const textureKind = "texture"

// IntParameter is a texture parameter set with glTextureParameteri.
type IntParameter struct {
	Name  uint32
	Value int32
}

// FloatParameter is a texture parameter set with glTextureParameterf.
type FloatParameter struct {
	Name  uint32
	Value float32
}

// TextureLayout specifies size, format and parameters of a texture.
// Unused dimensions are ignored by textures of lower dimensionality.
type TextureLayout struct {
	InternalFormat uint32
	Width          int
	Height         int
	Depth          int
	Format         uint32
	Type           uint32

	// Levels is the number of mip levels to allocate, at least one.
	Levels int

	IntParameters   []IntParameter
	FloatParameters []FloatParameter
}

// TextureOption modifies how a texture is created or reloaded.
type TextureOption func(*textureOptions)

type textureOptions struct {
	generateMipmap bool
	customLevels   bool
}

// GenerateMipmap generates the mip chain after uploading level zero.
// Unless CustomLevels is given, the level count is raised to a full chain.
func GenerateMipmap() TextureOption {
	return func(o *textureOptions) { o.generateMipmap = true }
}

// CustomLevels keeps the level count of the layout when generating mipmaps.
func CustomLevels() TextureOption {
	return func(o *textureOptions) { o.customLevels = true }
}

func collectOptions(opts []TextureOption) textureOptions {
	var o textureOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// MipLevels returns the length of a full mip chain for the given extent.
func MipLevels(dims ...int) int {
	largest := 1
	for _, d := range dims {
		if d > largest {
			largest = d
		}
	}
	return 1 + int(math.Floor(math.Log2(float64(largest))))
}

// Texture is implemented by all texture wrappers.
type Texture interface {
	Resource

	// Target returns the texture target, e.g. TEXTURE_2D.
	Target() uint32

	Bind()
	Unbind()
	BindUnit(unit uint32)
	BindImage(unit, access uint32)

	// Handle returns the bindless handle, zero when bindless is disabled.
	Handle() uint64
	MakeResident() error
	MakeNonResident()

	Layout() TextureLayout
}

// texture holds the state shared by all dimensionalities.
type texture struct {
	ctx *Context

	id     string
	kind   string
	name   uint32
	target uint32

	internalFormat uint32
	format         uint32
	xtype          uint32
	levels         int

	handle   uint64
	resident bool
}

// ID implements Resource
func (t *texture) ID() string { return t.id }

// Name implements Resource
func (t *texture) Name() uint32 { return t.name }

// Target implements Texture
func (t *texture) Target() uint32 { return t.target }

// Handle implements Texture
func (t *texture) Handle() uint64 { return t.handle }

// Levels returns the number of allocated mip levels.
func (t *texture) Levels() int { return t.levels }

// InternalFormat returns the sized internal format.
func (t *texture) InternalFormat() uint32 { return t.internalFormat }

// Bind binds the texture to its target on the active texture unit.
func (t *texture) Bind() {
	t.ctx.driver.BindTexture(t.target, t.name)
}

// Unbind clears the texture target on the active texture unit.
func (t *texture) Unbind() {
	t.ctx.driver.BindTexture(t.target, 0)
}

// BindUnit binds the texture to a texture unit.
func (t *texture) BindUnit(unit uint32) {
	t.ctx.driver.BindTextureUnit(unit, t.name)
}

// BindImage binds level zero to an image unit for load/store access.
func (t *texture) BindImage(unit, access uint32) {
	t.ctx.driver.BindImageTexture(unit, t.name, 0, t.target == device.TEXTURE_3D, 0, access, t.internalFormat)
}

// MakeResident makes the bindless handle resident.
func (t *texture) MakeResident() error {
	if t.name == 0 {
		return ErrReleased
	}
	if t.handle == 0 || t.resident {
		return nil
	}
	t.ctx.driver.MakeTextureHandleResident(t.handle)
	t.resident = true
	return t.ctx.Check(t.kind+".MakeResident", textureKind, t.id)
}

// MakeNonResident reverts MakeResident.
func (t *texture) MakeNonResident() {
	if t.handle == 0 || !t.resident {
		return
	}
	t.ctx.driver.MakeTextureHandleNonResident(t.handle)
	t.resident = false
}

// UpdateMipmaps regenerates the mip chain from level zero.
func (t *texture) UpdateMipmaps() {
	t.ctx.driver.GenerateTextureMipmap(t.name)
}

// Clear fills a level with data, one texel in the texture's format and type.
// A nil data clears to zero.
func (t *texture) Clear(data []byte, level int) error {
	if t.name == 0 {
		return ErrReleased
	}
	if data != nil {
		texel := device.TexelSize(t.format, t.xtype)
		if texel == 0 {
			return ErrPixelFormat
		}
		if len(data) < texel {
			return fmt.Errorf("%d bytes for a %d byte texel: %w", len(data), texel, ErrOutOfRange)
		}
	}
	t.ctx.driver.ClearTexImage(t.name, int32(level), t.format, t.xtype, data)
	return t.ctx.Check(t.kind+".Clear", textureKind, t.id)
}

// Read copies a level back into dst using the texture's format and type.
func (t *texture) Read(level int, dst []byte) error {
	if t.name == 0 {
		return ErrReleased
	}
	t.ctx.driver.GetTextureImage(t.name, int32(level), t.format, t.xtype, dst)
	return t.ctx.Check(t.kind+".Read", textureKind, t.id)
}

// Release deletes the texture.
func (t *texture) Release() {
	if t.name == 0 {
		return
	}
	t.MakeNonResident()
	t.ctx.driver.DeleteTexture(t.name)
	t.ctx.released(textureKind, t.id, t.name)
	t.name = 0
	t.handle = 0
}

// allocate creates the handle and runs the shared creation sequence:
// parameters, storage, upload, mipmaps, bindless handle, error check.
// dims are the extents used for a full mip chain.
func (t *texture) allocate(op string, layout TextureLayout, data []byte, o textureOptions, dims []int,
	storage func(name uint32, levels int32), upload func(name uint32)) error {
	if err := checkPixels(layout, data, dims...); err != nil {
		return err
	}
	d := t.ctx.driver

	t.internalFormat = layout.InternalFormat
	t.format = layout.Format
	t.xtype = layout.Type
	t.levels = layout.Levels
	if t.levels < 1 {
		t.levels = 1
	}

	t.name = d.CreateTexture(t.target)
	t.ctx.acquired(textureKind, t.id, t.name)

	for _, p := range layout.IntParameters {
		d.TextureParameteri(t.name, p.Name, p.Value)
	}
	for _, p := range layout.FloatParameters {
		d.TextureParameterf(t.name, p.Name, p.Value)
	}

	if o.generateMipmap && !o.customLevels {
		t.levels = MipLevels(dims...)
	}

	storage(t.name, int32(t.levels))

	if data != nil {
		upload(t.name)
	}

	if o.generateMipmap {
		d.GenerateTextureMipmap(t.name)
	}

	if t.ctx.config.BindlessTextures {
		t.handle = d.GetTextureHandle(t.name)
	}

	t.ctx.label(device.TEXTURE, t.name, t.id)

	return t.ctx.Check(op, textureKind, t.id)
}

// checkPixels makes sure data covers the extent in dims, in the layout's
// format and type. Missing dimensions count as one.
func checkPixels(layout TextureLayout, data []byte, dims ...int) error {
	if data == nil {
		return nil
	}
	extent := [3]int{1, 1, 1}
	copy(extent[:], dims)
	need := device.ImageSize(layout.Format, layout.Type, extent[0], extent[1], extent[2])
	if need < 0 {
		return fmt.Errorf("format 0x%X type 0x%X: %w", layout.Format, layout.Type, ErrPixelFormat)
	}
	if len(data) < need {
		return fmt.Errorf("%d bytes for a %dx%dx%d image of %d bytes: %w",
			len(data), extent[0], extent[1], extent[2], need, ErrOutOfRange)
	}
	return nil
}

func (t *texture) layout(width, height, depth int) TextureLayout {
	return TextureLayout{
		InternalFormat: t.internalFormat,
		Width:          width,
		Height:         height,
		Depth:          depth,
		Format:         t.format,
		Type:           t.xtype,
		Levels:         t.levels,
	}
}
