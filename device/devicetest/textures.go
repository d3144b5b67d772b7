// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package devicetest

import "github.com/devblok/glowl/device"

const (
	handleBase = 0x10000000

	// binding keys for texture and image units
	textureUnits = device.TEXTURE
	imageUnits   = 0x8F3A
)

// BoundUnit returns the texture bound to a texture unit.
func (d *Driver) BoundUnit(unit uint32) uint32 {
	return d.BoundIndexed(textureUnits, unit)
}

// BoundImage returns the texture bound to an image unit.
func (d *Driver) BoundImage(unit uint32) uint32 {
	return d.BoundIndexed(imageUnits, unit)
}

// CreateTexture implements device.Driver
func (d *Driver) CreateTexture(target uint32) uint32 {
	o := d.create(KindTexture, target)
	d.record("CreateTexture", target, o.Name)
	return o.Name
}

// DeleteTexture implements device.Driver
func (d *Driver) DeleteTexture(texture uint32) {
	d.record("DeleteTexture", texture)
	d.delete(KindTexture, texture)
}

// BindTexture implements device.Driver
func (d *Driver) BindTexture(target, texture uint32) {
	d.record("BindTexture", target, texture)
	if texture != 0 {
		o := d.lookup(KindTexture, texture)
		if o == nil {
			return
		}
		if o.Target != target {
			d.setError(device.INVALID_OPERATION)
			return
		}
	}
	d.bind(target, -1, texture)
}

// BindTextureUnit implements device.Driver
func (d *Driver) BindTextureUnit(unit, texture uint32) {
	d.record("BindTextureUnit", unit, texture)
	if texture != 0 && d.lookup(KindTexture, texture) == nil {
		return
	}
	d.bind(textureUnits, int32(unit), texture)
}

// BindImageTexture implements device.Driver
func (d *Driver) BindImageTexture(unit, texture uint32, level int32, layered bool, layer int32, access, format uint32) {
	d.record("BindImageTexture", unit, texture, level, layered, layer, access, format)
	if texture != 0 && d.lookup(KindTexture, texture) == nil {
		return
	}
	d.bind(imageUnits, int32(unit), texture)
}

// TextureParameteri implements device.Driver
func (d *Driver) TextureParameteri(texture, pname uint32, param int32) {
	d.record("TextureParameteri", texture, pname, param)
	if o := d.lookup(KindTexture, texture); o != nil {
		o.IntParams[pname] = param
	}
}

// TextureParameterf implements device.Driver
func (d *Driver) TextureParameterf(texture, pname uint32, param float32) {
	d.record("TextureParameterf", texture, pname, param)
	if o := d.lookup(KindTexture, texture); o != nil {
		o.FloatParams[pname] = param
	}
}

func (d *Driver) storage(texture uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	o := d.lookup(KindTexture, texture)
	if o == nil {
		return
	}
	if o.Levels != 0 {
		// immutable storage cannot be respecified
		d.setError(device.INVALID_OPERATION)
		return
	}
	if levels < 1 || width < 1 || height < 1 || depth < 1 {
		d.setError(device.INVALID_VALUE)
		return
	}
	o.Levels = levels
	o.InternalFormat = internalFormat
	o.Width, o.Height, o.Depth = width, height, depth
}

// TextureStorage1D implements device.Driver
func (d *Driver) TextureStorage1D(texture uint32, levels int32, internalFormat uint32, width int32) {
	d.record("TextureStorage1D", texture, levels, internalFormat, width)
	d.storage(texture, levels, internalFormat, width, 1, 1)
}

// TextureStorage2D implements device.Driver
func (d *Driver) TextureStorage2D(texture uint32, levels int32, internalFormat uint32, width, height int32) {
	d.record("TextureStorage2D", texture, levels, internalFormat, width, height)
	d.storage(texture, levels, internalFormat, width, height, 1)
}

// TextureStorage3D implements device.Driver
func (d *Driver) TextureStorage3D(texture uint32, levels int32, internalFormat uint32, width, height, depth int32) {
	d.record("TextureStorage3D", texture, levels, internalFormat, width, height, depth)
	d.storage(texture, levels, internalFormat, width, height, depth)
}

func (d *Driver) subImage(texture uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, xtype uint32, pixels []byte) {
	o := d.lookup(KindTexture, texture)
	if o == nil {
		return
	}
	if o.Levels == 0 || level >= o.Levels {
		d.setError(device.INVALID_OPERATION)
		return
	}
	if xoffset < 0 || yoffset < 0 || zoffset < 0 ||
		xoffset+width > o.Width || yoffset+height > o.Height || zoffset+depth > o.Depth {
		d.setError(device.INVALID_VALUE)
		return
	}
	need := device.ImageSize(format, xtype, int(width), int(height), int(depth))
	if need < 0 {
		d.setError(device.INVALID_ENUM)
		return
	}
	// the real driver would read past the end of pixels
	if pixels != nil && len(pixels) < need {
		d.setError(device.INVALID_VALUE)
		return
	}
	if level == 0 && xoffset == 0 && yoffset == 0 && zoffset == 0 {
		o.Image = append([]byte(nil), pixels...)
	}
}

// TextureSubImage1D implements device.Driver
func (d *Driver) TextureSubImage1D(texture uint32, level, xoffset, width int32, format, xtype uint32, pixels []byte) {
	d.record("TextureSubImage1D", texture, level, xoffset, width, format, xtype, len(pixels))
	d.subImage(texture, level, xoffset, 0, 0, width, 1, 1, format, xtype, pixels)
}

// TextureSubImage2D implements device.Driver
func (d *Driver) TextureSubImage2D(texture uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels []byte) {
	d.record("TextureSubImage2D", texture, level, xoffset, yoffset, width, height, format, xtype, len(pixels))
	d.subImage(texture, level, xoffset, yoffset, 0, width, height, 1, format, xtype, pixels)
}

// TextureSubImage3D implements device.Driver
func (d *Driver) TextureSubImage3D(texture uint32, level, xoffset, yoffset, zoffset, width, height, depth int32, format, xtype uint32, pixels []byte) {
	d.record("TextureSubImage3D", texture, level, xoffset, yoffset, zoffset, width, height, depth, format, xtype, len(pixels))
	d.subImage(texture, level, xoffset, yoffset, zoffset, width, height, depth, format, xtype, pixels)
}

// GenerateTextureMipmap implements device.Driver
func (d *Driver) GenerateTextureMipmap(texture uint32) {
	d.record("GenerateTextureMipmap", texture)
	o := d.lookup(KindTexture, texture)
	if o == nil {
		return
	}
	if o.Levels == 0 {
		d.setError(device.INVALID_OPERATION)
		return
	}
	o.MipmapUpdates++
}

// ClearTexImage implements device.Driver
func (d *Driver) ClearTexImage(texture uint32, level int32, format, xtype uint32, data []byte) {
	d.record("ClearTexImage", texture, level, format, xtype, len(data))
	o := d.lookup(KindTexture, texture)
	if o == nil {
		return
	}
	if o.Levels == 0 || level >= o.Levels {
		d.setError(device.INVALID_OPERATION)
		return
	}
	if level != 0 {
		return
	}
	texels := int(o.Width * o.Height * o.Depth)
	if len(data) == 0 {
		o.Image = make([]byte, len(o.Image))
		return
	}
	texel := device.TexelSize(format, xtype)
	if texel == 0 {
		d.setError(device.INVALID_ENUM)
		return
	}
	if len(data) < texel {
		d.setError(device.INVALID_VALUE)
		return
	}
	o.Image = make([]byte, 0, texels*texel)
	for i := 0; i < texels; i++ {
		o.Image = append(o.Image, data[:texel]...)
	}
}

// GetTextureImage implements device.Driver
func (d *Driver) GetTextureImage(texture uint32, level int32, format, xtype uint32, pixels []byte) {
	d.record("GetTextureImage", texture, level, format, xtype, len(pixels))
	o := d.lookup(KindTexture, texture)
	if o == nil {
		return
	}
	if o.Levels == 0 || level >= o.Levels {
		d.setError(device.INVALID_OPERATION)
		return
	}
	copy(pixels, o.Image)
}

// CopyTexSubImage2D implements device.Driver. The copy reads the first
// colour attachment of the bound read framebuffer.
func (d *Driver) CopyTexSubImage2D(target uint32, level, xoffset, yoffset, x, y, width, height int32) {
	d.record("CopyTexSubImage2D", target, level, xoffset, yoffset, x, y, width, height)
	dst := d.lookup(KindTexture, d.Bound(target))
	if dst == nil {
		return
	}
	fb := d.lookup(KindFramebuffer, d.Bound(device.READ_FRAMEBUFFER))
	if fb == nil {
		d.setError(device.INVALID_FRAMEBUFFER_OPERATION)
		return
	}
	readBuffer := fb.ReadBuffer
	if readBuffer == 0 {
		readBuffer = device.COLOR_ATTACHMENT0
	}
	src := d.Objects[fb.Attachments[readBuffer]]
	if src == nil {
		d.setError(device.INVALID_OPERATION)
		return
	}
	if level == 0 && xoffset == 0 && yoffset == 0 {
		dst.Image = append([]byte(nil), src.Image...)
	}
}

// GetTextureHandle implements device.Driver
func (d *Driver) GetTextureHandle(texture uint32) uint64 {
	d.record("GetTextureHandle", texture)
	o := d.lookup(KindTexture, texture)
	if o == nil {
		return 0
	}
	o.Handle = handleBase + uint64(texture)
	return o.Handle
}

func (d *Driver) byHandle(handle uint64) *Object {
	for _, o := range d.Objects {
		if o.Kind == KindTexture && o.Handle == handle && handle != 0 {
			return o
		}
	}
	d.setError(device.INVALID_OPERATION)
	return nil
}

// MakeTextureHandleResident implements device.Driver
func (d *Driver) MakeTextureHandleResident(handle uint64) {
	d.record("MakeTextureHandleResident", handle)
	if o := d.byHandle(handle); o != nil {
		o.Resident = true
	}
}

// MakeTextureHandleNonResident implements device.Driver
func (d *Driver) MakeTextureHandleNonResident(handle uint64) {
	d.record("MakeTextureHandleNonResident", handle)
	if o := d.byHandle(handle); o != nil {
		o.Resident = false
	}
}
